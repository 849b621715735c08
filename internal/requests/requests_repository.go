package requests

import (
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/thejas-1999/Assets-Management/internal/repository"
	custom_error "github.com/thejas-1999/Assets-Management/pkg/errors"
	"github.com/thejas-1999/Assets-Management/pkg/models"
)

type RequestsRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *RequestsRepository {
	return &RequestsRepository{repository: r}
}

func (r *RequestsRepository) InsertRequest(userID int, req models.SubmitAssetRequest) (int, error) {
	var requestID int
	inserted, err := r.repository.GoquDBWrapper.Insert("asset_requests").
		Rows(goqu.Record{
			"user_id":    userID,
			"asset_type": req.AssetType,
			"asset_id":   req.AssetID,
			"reason":     req.Reason,
			"status":     models.RequestStatusPending,
		}).
		Returning("id").
		Executor().
		ScanVal(&requestID)

	if err != nil {
		return 0, fmt.Errorf("failed to insert asset request: %w", err)
	}
	if !inserted {
		return 0, fmt.Errorf("failed to read inserted asset request id")
	}

	return requestID, nil
}

func (r *RequestsRepository) GetRequest(requestID int) (*models.AssetRequest, error) {
	var flatRequest models.FlatAssetRequestRecord
	found, err := r.getRequestQuery().
		Where(goqu.Ex{"q.id": requestID}).
		Executor().
		ScanStruct(&flatRequest)

	if err != nil {
		return nil, fmt.Errorf("unable to select asset request from database: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFound("asset request", requestID)
	}

	request := flatRequest.TransformToRequest()
	return &request, nil
}

func (r *RequestsRepository) GetRequests() ([]models.AssetRequest, error) {
	return r.scanRequests(r.getRequestQuery().Order(goqu.I("q.created_at").Desc()))
}

func (r *RequestsRepository) GetRequestsByUser(userID int) ([]models.AssetRequest, error) {
	query := r.getRequestQuery().
		Where(goqu.Ex{"q.user_id": userID}).
		Order(goqu.I("q.created_at").Desc())

	return r.scanRequests(query)
}

// DecideRequest resolves a pending request. The status condition makes
// the decision single-shot: a request someone already handled matches
// nothing and the failure is classified from a re-read.
func (r *RequestsRepository) DecideRequest(requestID int, status string, responseNote string, handledBy int, handledAt time.Time) error {
	result, err := r.repository.GoquDBWrapper.Update("asset_requests").
		Set(goqu.Record{
			"status":        status,
			"response_note": responseNote,
			"handled_by":    handledBy,
			"handled_at":    handledAt,
		}).
		Where(goqu.Ex{
			"id":     requestID,
			"status": models.RequestStatusPending,
		}).
		Executor().
		Exec()

	if err != nil {
		return fmt.Errorf("failed to decide asset request: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return r.classifyDecisionFailure(requestID)
	}

	return nil
}

func (r *RequestsRepository) classifyDecisionFailure(requestID int) error {
	var status string
	found, err := r.repository.GoquDBWrapper.Select("status").
		From("asset_requests").
		Where(goqu.Ex{"id": requestID}).
		Executor().
		ScanVal(&status)

	if err != nil {
		return fmt.Errorf("failed to re-read asset request status: %w", err)
	}
	if !found {
		return custom_error.NewNotFound("asset request", requestID)
	}
	if status == models.RequestStatusPending {
		return custom_error.NewConflict("asset request", requestID)
	}

	return custom_error.NewValidation("Request has already been %s", status)
}

func (r *RequestsRepository) CountPendingRequests() (int, error) {
	var count int
	_, err := r.repository.GoquDBWrapper.
		Select(goqu.COUNT("*")).
		From("asset_requests").
		Where(goqu.Ex{"status": models.RequestStatusPending}).
		Executor().
		ScanVal(&count)

	if err != nil {
		return 0, fmt.Errorf("failed to count pending requests: %w", err)
	}

	return count, nil
}

func (r *RequestsRepository) scanRequests(query *goqu.SelectDataset) ([]models.AssetRequest, error) {
	var flatRequests []models.FlatAssetRequestRecord
	if err := query.Executor().ScanStructs(&flatRequests); err != nil {
		return nil, fmt.Errorf("unable to select asset requests from database: %w", err)
	}

	requests := make([]models.AssetRequest, 0, len(flatRequests))
	for _, flatRequest := range flatRequests {
		requests = append(requests, flatRequest.TransformToRequest())
	}

	return requests, nil
}

func (r *RequestsRepository) getRequestQuery() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.Select(
		goqu.I("q.id").As("id"),
		goqu.I("q.user_id").As("user_id"),
		goqu.I("q.asset_type").As("asset_type"),
		goqu.I("q.asset_id").As("asset_id"),
		goqu.I("q.status").As("status"),
		goqu.I("q.reason").As("reason"),
		goqu.I("q.handled_by").As("handled_by_id"),
		goqu.I("q.response_note").As("response_note"),
		goqu.I("q.created_at").As("created_at"),
		goqu.I("q.handled_at").As("handled_at"),
		goqu.I("u.name").As("request_user_name"),
		goqu.I("u.email").As("request_user_email"),
		goqu.I("a.name").As("request_asset_name"),
		goqu.I("a.category").As("request_asset_category"),
		goqu.I("a.serial_number").As("request_asset_serial"),
		goqu.I("h.name").As("handled_by_name"),
		goqu.I("h.email").As("handled_by_email"),
	).
		From(goqu.T("asset_requests").As("q")).
		LeftJoin(
			goqu.T("users").As("u"),
			goqu.On(goqu.Ex{"q.user_id": goqu.I("u.id")}),
		).
		LeftJoin(
			goqu.T("assets").As("a"),
			goqu.On(goqu.Ex{"q.asset_id": goqu.I("a.id")}),
		).
		LeftJoin(
			goqu.T("users").As("h"),
			goqu.On(goqu.Ex{"q.handled_by": goqu.I("h.id")}),
		)
}
