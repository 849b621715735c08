package requests

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	custom_error "github.com/thejas-1999/Assets-Management/pkg/errors"
	"github.com/thejas-1999/Assets-Management/pkg/models"
)

// RequestStore is the persistence slice the service needs.
type RequestStore interface {
	InsertRequest(userID int, req models.SubmitAssetRequest) (int, error)
	GetRequest(requestID int) (*models.AssetRequest, error)
	GetRequests() ([]models.AssetRequest, error)
	GetRequestsByUser(userID int) ([]models.AssetRequest, error)
	DecideRequest(requestID int, status string, responseNote string, handledBy int, handledAt time.Time) error
}

// AssetTypeSource supplies the asset type allow-list.
type AssetTypeSource interface {
	AssetTypes() ([]string, error)
}

// AssetChecker verifies an optionally referenced asset exists.
type AssetChecker interface {
	GetAsset(id int) (*models.Asset, error)
}

type RequestService struct {
	store  RequestStore
	types  AssetTypeSource
	assets AssetChecker
	logger *zap.Logger
}

func NewRequestService(store RequestStore, types AssetTypeSource, assets AssetChecker, logger *zap.Logger) *RequestService {
	return &RequestService{
		store:  store,
		types:  types,
		assets: assets,
		logger: logger,
	}
}

// Submit files a request for an asset type, optionally pointing at a
// specific asset the employee has in mind.
func (s *RequestService) Submit(userID int, req models.SubmitAssetRequest) (*models.AssetRequest, error) {
	allowed, err := s.types.AssetTypes()
	if err != nil {
		return nil, fmt.Errorf("unable to load asset types: %w", err)
	}

	valid := false
	for _, assetType := range allowed {
		if assetType == req.AssetType {
			valid = true
			break
		}
	}
	if !valid {
		return nil, custom_error.NewValidation("Invalid asset type. Please select from available asset types in settings.")
	}

	if req.AssetID != nil {
		if _, err := s.assets.GetAsset(*req.AssetID); err != nil {
			return nil, err
		}
	}

	requestID, err := s.store.InsertRequest(userID, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("asset request submitted",
		zap.Int("request_id", requestID),
		zap.Int("user_id", userID),
		zap.String("asset_type", req.AssetType),
	)

	return s.store.GetRequest(requestID)
}

// Decide approves or rejects a pending request. Each request is decided
// at most once.
func (s *RequestService) Decide(requestID int, decision models.DecideAssetRequest, handledBy int) (*models.AssetRequest, error) {
	if decision.Status != models.RequestStatusApproved && decision.Status != models.RequestStatusRejected {
		return nil, custom_error.NewValidation("Status must be either approved or rejected")
	}

	if err := s.store.DecideRequest(requestID, decision.Status, decision.ResponseNote, handledBy, time.Now().UTC()); err != nil {
		return nil, err
	}

	s.logger.Info("asset request decided",
		zap.Int("request_id", requestID),
		zap.String("status", decision.Status),
		zap.Int("handled_by", handledBy),
	)

	return s.store.GetRequest(requestID)
}

func (s *RequestService) GetRequests() ([]models.AssetRequest, error) {
	return s.store.GetRequests()
}

func (s *RequestService) GetRequestsByUser(userID int) ([]models.AssetRequest, error) {
	return s.store.GetRequestsByUser(userID)
}
