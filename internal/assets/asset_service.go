package assets

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"go.uber.org/zap"

	custom_error "github.com/thejas-1999/Assets-Management/pkg/errors"
	"github.com/thejas-1999/Assets-Management/pkg/metadata"
	"github.com/thejas-1999/Assets-Management/pkg/models"
)

// AssetStore is the CRUD slice of the assets repository.
type AssetStore interface {
	GetAsset(id int) (*models.Asset, error)
	GetAssetList() ([]models.Asset, error)
	GetAssetsByUser(userID int) ([]models.Asset, error)
	InsertAsset(tx *goqu.TxDatabase, req models.AssetCreateRequest, serial string) (int, error)
	UpdateAsset(tx *goqu.TxDatabase, assetID int, changes goqu.Record) error
	DeleteAsset(tx *goqu.TxDatabase, assetID int) error
}

// SettingsStore supplies the category allow-list, fetched per call.
type SettingsStore interface {
	AssetTypes() ([]string, error)
}

type AssetService struct {
	db       TxRunner
	store    AssetStore
	settings SettingsStore
	audit    AuditWriter
	logger   *zap.Logger
}

func NewAssetService(db TxRunner, store AssetStore, settings SettingsStore, audit AuditWriter, logger *zap.Logger) *AssetService {
	return &AssetService{
		db:       db,
		store:    store,
		settings: settings,
		audit:    audit,
		logger:   logger,
	}
}

// CreateAssets fans the request out into one asset row per serial number,
// each with quantity one. The whole batch commits or rolls back together,
// one created audit entry per asset.
func (s *AssetService) CreateAssets(req models.AssetCreateRequest, actorID int) ([]models.Asset, error) {
	if len(req.SerialNumbers) == 0 || req.Quantity != len(req.SerialNumbers) {
		return nil, custom_error.NewValidation("Quantity must match the number of serial numbers provided")
	}

	seen := make(map[string]bool, len(req.SerialNumbers))
	for _, serial := range req.SerialNumbers {
		if serial == "" {
			return nil, custom_error.NewValidation("Serial numbers must not be empty")
		}
		if seen[serial] {
			return nil, custom_error.NewValidation("Serial number %s appears more than once in the request", serial)
		}
		seen[serial] = true
	}

	if err := s.validateCategory(req.Category); err != nil {
		return nil, err
	}

	if req.HasWarranty && (req.WarrantyStartDate == nil || req.WarrantyEndDate == nil) {
		return nil, custom_error.NewValidation("Warranty start and end dates are required when warranty exists")
	}

	var createdIDs []int

	err := s.db.InTransaction(func(tx *goqu.TxDatabase) error {
		for _, serial := range req.SerialNumbers {
			assetID, err := s.store.InsertAsset(tx, req, serial)
			if err != nil {
				return err
			}

			logEntry := models.AssetLog{
				AssetID:     &assetID,
				Action:      models.ActionCreated,
				PerformedBy: &actorID,
				Note:        fmt.Sprintf("Asset created: %s with serial %s", req.Name, serial),
			}
			if err := s.audit.Record(tx, logEntry); err != nil {
				return err
			}

			createdIDs = append(createdIDs, assetID)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("assets created",
		zap.Int("count", len(createdIDs)),
		zap.String("category", req.Category),
		zap.Int("actor_id", actorID),
	)

	createdAssets := make([]models.Asset, 0, len(createdIDs))
	for _, assetID := range createdIDs {
		asset, err := s.store.GetAsset(assetID)
		if err != nil {
			return nil, err
		}
		createdAssets = append(createdAssets, *asset)
	}

	return createdAssets, nil
}

func (s *AssetService) UpdateAsset(assetID int, req models.AssetUpdateRequest, actorID int) (*models.Asset, error) {
	asset, err := s.store.GetAsset(assetID)
	if err != nil {
		return nil, err
	}

	changes := goqu.Record{}

	if req.Name != nil && *req.Name != "" {
		changes["name"] = *req.Name
	}
	if req.Specifications != nil {
		changes["specifications"] = *req.Specifications
	}
	if req.SerialNumber != nil && *req.SerialNumber != "" {
		changes["serial_number"] = *req.SerialNumber
	}

	if req.Category != nil && *req.Category != "" {
		if err := s.validateCategory(*req.Category); err != nil {
			return nil, err
		}
		changes["category"] = *req.Category
	}

	if req.Status != nil {
		status, err := metadata.NewStatus(*req.Status)
		if err != nil {
			return nil, custom_error.NewValidation("Invalid status value: %s", *req.Status)
		}
		changes["status"] = string(status)
	}

	if req.HasWarranty != nil {
		changes["has_warranty"] = *req.HasWarranty
		if *req.HasWarranty {
			if req.WarrantyStartDate == nil || req.WarrantyEndDate == nil {
				return nil, custom_error.NewValidation("Warranty start and end dates are required when warranty exists")
			}
			changes["warranty_start_date"] = *req.WarrantyStartDate
			changes["warranty_end_date"] = *req.WarrantyEndDate
		} else {
			changes["warranty_start_date"] = nil
			changes["warranty_end_date"] = nil
		}
	}

	err = s.db.InTransaction(func(tx *goqu.TxDatabase) error {
		if len(changes) > 0 {
			if err := s.store.UpdateAsset(tx, asset.ID, changes); err != nil {
				return err
			}
		}

		return s.audit.Record(tx, models.AssetLog{
			AssetID:     &asset.ID,
			Action:      models.ActionUpdated,
			PerformedBy: &actorID,
			Note:        "Asset updated",
		})
	})

	if err != nil {
		return nil, err
	}

	return s.store.GetAsset(assetID)
}

func (s *AssetService) DeleteAsset(assetID, actorID int) error {
	asset, err := s.store.GetAsset(assetID)
	if err != nil {
		return err
	}

	// The deleted entry is written first so it rides the same
	// transaction; its asset reference goes NULL with the delete.
	err = s.db.InTransaction(func(tx *goqu.TxDatabase) error {
		logEntry := models.AssetLog{
			AssetID:     &asset.ID,
			Action:      models.ActionDeleted,
			PerformedBy: &actorID,
			Note:        fmt.Sprintf("Asset deleted: %s with serial %s", asset.Name, asset.SerialNumber),
		}
		if err := s.audit.Record(tx, logEntry); err != nil {
			return err
		}

		return s.store.DeleteAsset(tx, asset.ID)
	})

	if err != nil {
		return err
	}

	s.logger.Info("asset deleted",
		zap.Int("asset_id", assetID),
		zap.Int("actor_id", actorID),
	)

	return nil
}

func (s *AssetService) GetAsset(assetID int) (*models.Asset, error) {
	return s.store.GetAsset(assetID)
}

func (s *AssetService) GetAssetList() ([]models.Asset, error) {
	return s.store.GetAssetList()
}

func (s *AssetService) GetAssetsByUser(userID int) ([]models.Asset, error) {
	return s.store.GetAssetsByUser(userID)
}

func (s *AssetService) validateCategory(category string) error {
	allowed, err := s.settings.AssetTypes()
	if err != nil {
		return fmt.Errorf("unable to load asset types: %w", err)
	}

	for _, assetType := range allowed {
		if assetType == category {
			return nil
		}
	}

	return custom_error.NewValidation("Invalid category. Please select from available asset types in settings.")
}
