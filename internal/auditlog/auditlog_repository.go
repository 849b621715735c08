package auditlog

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/thejas-1999/Assets-Management/internal/repository"
	"github.com/thejas-1999/Assets-Management/pkg/models"
)

type AssetLogRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *AssetLogRepository {
	return &AssetLogRepository{repository: r}
}

// PersistLog appends one audit record. Entries are never updated; the
// insert runs on the caller's transaction when one is given.
func (r *AssetLogRepository) PersistLog(tx *goqu.TxDatabase, entry models.AssetLog) error {
	record := goqu.Record{
		"asset_id":      entry.AssetID,
		"action":        entry.Action,
		"performed_by":  entry.PerformedBy,
		"target_user":   entry.TargetUser,
		"assigned_date": entry.AssignedDate,
		"returned_date": entry.ReturnedDate,
		"duration":      entry.Duration,
		"note":          entry.Note,
	}

	var err error
	if tx != nil {
		_, err = tx.Insert("asset_logs").Rows(record).Executor().Exec()
	} else {
		_, err = r.repository.GoquDBWrapper.Insert("asset_logs").Rows(record).Executor().Exec()
	}

	if err != nil {
		return fmt.Errorf("failed to insert asset log: %w", err)
	}

	return nil
}

func (r *AssetLogRepository) GetAllLogs() ([]models.AssetLogView, error) {
	query := r.getLogQuery().Order(goqu.I("l.created_at").Desc())
	return r.scanLogViews(query)
}

func (r *AssetLogRepository) GetAssetLogs(assetID int) ([]models.AssetLogView, error) {
	query := r.getLogQuery().
		Where(goqu.Ex{"l.asset_id": assetID}).
		Order(goqu.I("l.created_at").Desc())
	return r.scanLogViews(query)
}

// GetUserLogs returns every log row involving the user as actor or
// target, ascending by timestamp so callers can fold them
// chronologically.
func (r *AssetLogRepository) GetUserLogs(userID int) ([]models.FlatAssetLogRecord, error) {
	query := r.getLogQuery().
		Where(goqu.Or(
			goqu.Ex{"l.performed_by": userID},
			goqu.Ex{"l.target_user": userID},
		)).
		Order(goqu.I("l.created_at").Asc())

	var flatLogs []models.FlatAssetLogRecord
	if err := query.Executor().ScanStructs(&flatLogs); err != nil {
		return nil, fmt.Errorf("unable to select asset logs from database: %w", err)
	}

	return flatLogs, nil
}

// DeleteLog removes a single entry. Manual admin cleanup only; nothing in
// the lifecycle engine deletes log rows.
func (r *AssetLogRepository) DeleteLog(logID int) (int, error) {
	var id int
	query := r.repository.GoquDBWrapper.
		Delete("asset_logs").
		Where(goqu.Ex{"id": logID}).
		Returning("id")

	found, err := query.Executor().ScanVal(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete asset log: %w", err)
	}
	if !found {
		return 0, nil
	}

	return id, nil
}

func (r *AssetLogRepository) scanLogViews(query *goqu.SelectDataset) ([]models.AssetLogView, error) {
	var flatLogs []models.FlatAssetLogRecord
	if err := query.Executor().ScanStructs(&flatLogs); err != nil {
		return nil, fmt.Errorf("unable to select asset logs from database: %w", err)
	}

	views := make([]models.AssetLogView, 0, len(flatLogs))
	for _, flatLog := range flatLogs {
		views = append(views, flatLog.TransformToView())
	}

	return views, nil
}

func (r *AssetLogRepository) getLogQuery() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.Select(
		goqu.I("l.id").As("id"),
		goqu.I("l.asset_id").As("asset_id"),
		goqu.I("l.action").As("action"),
		goqu.I("l.performed_by").As("performed_by_id"),
		goqu.I("l.target_user").As("target_user_id"),
		goqu.I("l.assigned_date").As("assigned_date"),
		goqu.I("l.returned_date").As("returned_date"),
		goqu.I("l.duration").As("duration"),
		goqu.I("l.note").As("note"),
		goqu.I("l.created_at").As("created_at"),
		goqu.I("a.name").As("log_asset_name"),
		goqu.I("a.category").As("log_asset_category"),
		goqu.I("a.serial_number").As("log_asset_serial"),
		goqu.I("p.name").As("performed_by_name"),
		goqu.I("p.email").As("performed_by_email"),
		goqu.I("t.name").As("target_user_name"),
		goqu.I("t.email").As("target_user_email"),
	).
		From(goqu.T("asset_logs").As("l")).
		LeftJoin(
			goqu.T("assets").As("a"),
			goqu.On(goqu.Ex{"l.asset_id": goqu.I("a.id")}),
		).
		LeftJoin(
			goqu.T("users").As("p"),
			goqu.On(goqu.Ex{"l.performed_by": goqu.I("p.id")}),
		).
		LeftJoin(
			goqu.T("users").As("t"),
			goqu.On(goqu.Ex{"l.target_user": goqu.I("t.id")}),
		)
}
