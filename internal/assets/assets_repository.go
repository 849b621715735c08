package assets

import (
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/thejas-1999/Assets-Management/internal/repository"
	custom_error "github.com/thejas-1999/Assets-Management/pkg/errors"
	"github.com/thejas-1999/Assets-Management/pkg/metadata"
	"github.com/thejas-1999/Assets-Management/pkg/models"
)

type AssetsRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *AssetsRepository {
	return &AssetsRepository{
		repository: r,
	}
}

func (r *AssetsRepository) GetAsset(id int) (*models.Asset, error) {
	asset, err := r.fetchFlatAssetByCondition(goqu.Ex{"a.id": id}, id)
	if err != nil {
		return nil, err
	}

	if err := r.loadHistory(asset); err != nil {
		return nil, err
	}

	return asset, nil
}

func (r *AssetsRepository) GetAssetList() ([]models.Asset, error) {
	query := r.getAssetQuery().Order(goqu.I("a.id").Asc())

	var flatAssets []models.FlatAssetRecord
	if err := query.Executor().ScanStructs(&flatAssets); err != nil {
		return nil, fmt.Errorf("unable to select assets from database: %w", err)
	}

	assets := make([]models.Asset, 0, len(flatAssets))
	for _, flatAsset := range flatAssets {
		assets = append(assets, flatAsset.TransformToAsset())
	}

	return assets, nil
}

func (r *AssetsRepository) GetAssetsByUser(userID int) ([]models.Asset, error) {
	query := r.getAssetQuery().
		Where(goqu.Ex{"a.assigned_to": userID}).
		Order(goqu.I("a.id").Asc())

	var flatAssets []models.FlatAssetRecord
	if err := query.Executor().ScanStructs(&flatAssets); err != nil {
		return nil, fmt.Errorf("unable to select assets from database: %w", err)
	}

	assets := make([]models.Asset, 0, len(flatAssets))
	for _, flatAsset := range flatAssets {
		assets = append(assets, flatAsset.TransformToAsset())
	}

	return assets, nil
}

// GetCurrentAssets returns the assets a user currently holds.
func (r *AssetsRepository) GetCurrentAssets(userID int) ([]models.Asset, error) {
	query := r.getAssetQuery().
		Where(goqu.Ex{
			"a.assigned_to": userID,
			"a.status":      string(metadata.StatusAssigned),
		}).
		Order(goqu.I("a.id").Asc())

	var flatAssets []models.FlatAssetRecord
	if err := query.Executor().ScanStructs(&flatAssets); err != nil {
		return nil, fmt.Errorf("unable to select assets from database: %w", err)
	}

	assets := make([]models.Asset, 0, len(flatAssets))
	for _, flatAsset := range flatAssets {
		assets = append(assets, flatAsset.TransformToAsset())
	}

	return assets, nil
}

func (r *AssetsRepository) CountAssetsByStatus() (map[string]int, error) {
	var rows []struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}

	err := r.repository.GoquDBWrapper.
		Select(goqu.I("status"), goqu.COUNT("*").As("count")).
		From("assets").
		GroupBy("status").
		Executor().
		ScanStructs(&rows)

	if err != nil {
		return nil, fmt.Errorf("failed to count assets by status: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}

	return counts, nil
}

func (r *AssetsRepository) InsertAsset(tx *goqu.TxDatabase, req models.AssetCreateRequest, serial string) (int, error) {
	var assetID int

	record := goqu.Record{
		"name":           req.Name,
		"category":       req.Category,
		"serial_number":  serial,
		"specifications": req.Specifications,
		"status":         string(metadata.StatusAvailable),
		"purchase_date":  req.PurchaseDate,
		"purchase_value": req.PurchaseValue,
		"has_warranty":   req.HasWarranty,
	}
	if req.HasWarranty {
		record["warranty_start_date"] = req.WarrantyStartDate
		record["warranty_end_date"] = req.WarrantyEndDate
	}

	query := tx.Insert("assets").
		Rows(record).
		Returning("id")

	if _, err := query.Executor().ScanVal(&assetID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return 0, custom_error.WrapDBError(
				fmt.Sprintf("Serial number %s already exists in another asset", serial),
				string(pqErr.Code),
			)
		}
		return 0, fmt.Errorf("failed to insert asset record: %w", err)
	}

	return assetID, nil
}

func (r *AssetsRepository) UpdateAsset(tx *goqu.TxDatabase, assetID int, changes goqu.Record) error {
	result, err := tx.Update("assets").
		Set(changes).
		Where(goqu.Ex{"id": assetID}).
		Executor().
		Exec()

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("Serial number already exists in another asset", string(pqErr.Code))
		}
		return fmt.Errorf("failed to update asset: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return custom_error.NewNotFound("asset", assetID)
	}

	return nil
}

func (r *AssetsRepository) DeleteAsset(tx *goqu.TxDatabase, assetID int) error {
	result, err := tx.Delete("assets").
		Where(goqu.Ex{"id": assetID}).
		Executor().
		Exec()

	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return custom_error.NewNotFound("asset", assetID)
	}

	return nil
}

// ApplyTransition performs the status change as a single conditional
// update: the WHERE clause carries the allowed source statuses, so a
// concurrent writer that got there first makes this a zero-row update.
func (r *AssetsRepository) ApplyTransition(tx *goqu.TxDatabase, assetID int, action string, allowed []metadata.Status, changes goqu.Record) error {
	statuses := make([]string, 0, len(allowed))
	for _, status := range allowed {
		statuses = append(statuses, string(status))
	}

	result, err := tx.Update("assets").
		Set(changes).
		Where(goqu.Ex{
			"id":     assetID,
			"status": statuses,
		}).
		Executor().
		Exec()

	if err != nil {
		return fmt.Errorf("failed to apply %s transition: %w", action, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return r.classifyTransitionFailure(tx, assetID, action, statuses)
	}

	return nil
}

// classifyTransitionFailure decides why a conditional update matched
// nothing: the asset is gone, its status forbids the action, or the
// status would allow it and we raced another writer.
func (r *AssetsRepository) classifyTransitionFailure(tx *goqu.TxDatabase, assetID int, action string, allowed []string) error {
	var status string
	found, err := tx.Select("status").
		From("assets").
		Where(goqu.Ex{"id": assetID}).
		Executor().
		ScanVal(&status)

	if err != nil {
		return fmt.Errorf("failed to re-read asset status: %w", err)
	}
	if !found {
		return custom_error.NewNotFound("asset", assetID)
	}

	for _, allowedStatus := range allowed {
		if allowedStatus == status {
			return custom_error.NewConflict("asset", assetID)
		}
	}

	return custom_error.NewInvalidTransition(action, status)
}

func (r *AssetsRepository) OpenUsageEntry(tx *goqu.TxDatabase, assetID, userID int, assignedAt time.Time) error {
	record := goqu.Record{
		"asset_id":      assetID,
		"user_id":       userID,
		"assigned_date": assignedAt,
	}

	if _, err := tx.Insert("asset_usage_history").Rows(record).Executor().Exec(); err != nil {
		return fmt.Errorf("failed to insert usage history entry: %w", err)
	}

	return nil
}

func (r *AssetsRepository) OpenUsageEntryFor(tx *goqu.TxDatabase, assetID int) (*models.UsageEntry, error) {
	var entry models.UsageEntry
	query := tx.Select("id", "asset_id", "user_id", "assigned_date", "returned_date", "days_used").
		From("asset_usage_history").
		Where(goqu.Ex{
			"asset_id":      assetID,
			"returned_date": nil,
		}).
		Order(goqu.I("assigned_date").Desc()).
		Limit(1)

	found, err := query.Executor().ScanStruct(&entry)
	if err != nil {
		return nil, fmt.Errorf("failed to select open usage entry: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &entry, nil
}

func (r *AssetsRepository) CloseUsageEntry(tx *goqu.TxDatabase, entryID int, returnedAt time.Time, daysUsed int) error {
	result, err := tx.Update("asset_usage_history").
		Set(goqu.Record{
			"returned_date": returnedAt,
			"days_used":     daysUsed,
		}).
		Where(goqu.Ex{"id": entryID}).
		Executor().
		Exec()

	if err != nil {
		return fmt.Errorf("failed to close usage entry: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no usage entry found with id: %d", entryID)
	}

	return nil
}

func (r *AssetsRepository) OpenMaintenanceEntry(tx *goqu.TxDatabase, assetID int, startedAt time.Time, description string) error {
	record := goqu.Record{
		"asset_id":         assetID,
		"maintenance_date": startedAt,
		"description":      description,
	}

	if _, err := tx.Insert("asset_maintenance_logs").Rows(record).Executor().Exec(); err != nil {
		return fmt.Errorf("failed to insert maintenance entry: %w", err)
	}

	return nil
}

func (r *AssetsRepository) OpenMaintenanceEntryFor(tx *goqu.TxDatabase, assetID int) (*models.MaintenanceEntry, error) {
	var entry models.MaintenanceEntry
	query := tx.Select("id", "asset_id", "maintenance_date", "days_taken", "cost", "description").
		From("asset_maintenance_logs").
		Where(goqu.Ex{
			"asset_id":   assetID,
			"days_taken": nil,
		}).
		Order(goqu.I("maintenance_date").Desc()).
		Limit(1)

	found, err := query.Executor().ScanStruct(&entry)
	if err != nil {
		return nil, fmt.Errorf("failed to select open maintenance entry: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &entry, nil
}

func (r *AssetsRepository) FillMaintenanceEntry(tx *goqu.TxDatabase, entryID int, daysTaken *int, cost *float64, description *string) error {
	changes := goqu.Record{}
	if daysTaken != nil {
		changes["days_taken"] = *daysTaken
	}
	if cost != nil {
		changes["cost"] = *cost
	}
	if description != nil {
		changes["description"] = *description
	}

	if len(changes) == 0 {
		return nil
	}

	result, err := tx.Update("asset_maintenance_logs").
		Set(changes).
		Where(goqu.Ex{"id": entryID}).
		Executor().
		Exec()

	if err != nil {
		return fmt.Errorf("failed to update maintenance entry: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no maintenance entry found with id: %d", entryID)
	}

	return nil
}

func (r *AssetsRepository) loadHistory(asset *models.Asset) error {
	usageQuery := r.repository.GoquDBWrapper.
		Select("id", "asset_id", "user_id", "assigned_date", "returned_date", "days_used").
		From("asset_usage_history").
		Where(goqu.Ex{"asset_id": asset.ID}).
		Order(goqu.I("assigned_date").Asc(), goqu.I("id").Asc())

	if err := usageQuery.Executor().ScanStructs(&asset.UsageHistory); err != nil {
		return fmt.Errorf("unable to select usage history: %w", err)
	}

	maintenanceQuery := r.repository.GoquDBWrapper.
		Select("id", "asset_id", "maintenance_date", "days_taken", "cost", "description").
		From("asset_maintenance_logs").
		Where(goqu.Ex{"asset_id": asset.ID}).
		Order(goqu.I("maintenance_date").Asc(), goqu.I("id").Asc())

	if err := maintenanceQuery.Executor().ScanStructs(&asset.MaintenanceLogs); err != nil {
		return fmt.Errorf("unable to select maintenance logs: %w", err)
	}

	return nil
}

func (r *AssetsRepository) fetchFlatAssetByCondition(condition goqu.Expression, assetID int) (*models.Asset, error) {
	query := r.getAssetQuery().Where(condition)

	var flatAsset models.FlatAssetRecord
	found, err := query.Executor().ScanStruct(&flatAsset)
	if err != nil {
		return nil, fmt.Errorf("unable to select asset from database: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFound("asset", assetID)
	}

	asset := flatAsset.TransformToAsset()
	return &asset, nil
}

func (r *AssetsRepository) getAssetQuery() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.Select(
		goqu.I("a.id").As("asset_id"),
		goqu.I("a.name").As("asset_name"),
		goqu.I("a.category").As("category"),
		goqu.I("a.serial_number").As("serial_number"),
		goqu.I("a.specifications").As("specifications"),
		goqu.I("a.status").As("status"),
		goqu.I("a.assigned_to").As("assigned_to_id"),
		goqu.I("u.name").As("assigned_to_name"),
		goqu.I("u.email").As("assigned_to_email"),
		goqu.I("a.assigned_by").As("assigned_by_id"),
		goqu.I("b.name").As("assigned_by_name"),
		goqu.I("b.email").As("assigned_by_email"),
		goqu.I("a.assigned_date").As("assigned_date"),
		goqu.I("a.returned_date").As("returned_date"),
		goqu.I("a.purchase_date").As("purchase_date"),
		goqu.I("a.purchase_value").As("purchase_value"),
		goqu.I("a.has_warranty").As("has_warranty"),
		goqu.I("a.warranty_start_date").As("warranty_start_date"),
		goqu.I("a.warranty_end_date").As("warranty_end_date"),
		goqu.I("a.created_at").As("created_at"),
	).
		From(goqu.T("assets").As("a")).
		LeftJoin(
			goqu.T("users").As("u"),
			goqu.On(goqu.Ex{"a.assigned_to": goqu.I("u.id")}),
		).
		LeftJoin(
			goqu.T("users").As("b"),
			goqu.On(goqu.Ex{"a.assigned_by": goqu.I("b.id")}),
		)
}
