package models

import (
	"database/sql"
	"time"
)

// Actions recorded in the append-only asset_logs table.
const (
	ActionCreated              = "created"
	ActionUpdated              = "updated"
	ActionDeleted              = "deleted"
	ActionAssigned             = "assigned"
	ActionReturned             = "returned"
	ActionMaintenanceStarted   = "maintenance_started"
	ActionMaintenanceCompleted = "maintenance_completed"
)

// AssetLog is one append-only audit record. Rows are never updated; the
// asset reference may become NULL after the asset itself is deleted.
type AssetLog struct {
	ID           int        `json:"id"`
	AssetID      *int       `json:"asset,omitempty"`
	Action       string     `json:"action"`
	PerformedBy  *int       `json:"performedBy,omitempty"`
	TargetUser   *int       `json:"targetUser,omitempty"`
	AssignedDate *time.Time `json:"assignedDate,omitempty"`
	ReturnedDate *time.Time `json:"returnedDate,omitempty"`
	Duration     *int       `json:"duration,omitempty"`
	Note         string     `json:"note"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// FlatAssetLogRecord is the scan target for log selects with asset and
// user joins. Every joined column is nullable: the asset or either user
// may have been deleted since the log row was written.
type FlatAssetLogRecord struct {
	ID                int            `db:"id"`
	AssetID           sql.NullInt64  `db:"asset_id"`
	Action            string         `db:"action"`
	PerformedByID     sql.NullInt64  `db:"performed_by_id"`
	TargetUserID      sql.NullInt64  `db:"target_user_id"`
	AssignedDate      sql.NullTime   `db:"assigned_date"`
	ReturnedDate      sql.NullTime   `db:"returned_date"`
	Duration          sql.NullInt64  `db:"duration"`
	Note              sql.NullString `db:"note"`
	CreatedAt         time.Time      `db:"created_at"`
	AssetName         sql.NullString `db:"log_asset_name"`
	AssetCategory     sql.NullString `db:"log_asset_category"`
	AssetSerial       sql.NullString `db:"log_asset_serial"`
	PerformedByName   sql.NullString `db:"performed_by_name"`
	PerformedByEmail  sql.NullString `db:"performed_by_email"`
	TargetUserName    sql.NullString `db:"target_user_name"`
	TargetUserEmail   sql.NullString `db:"target_user_email"`
}

// AssetLogView is the resolved API form of a log row.
type AssetLogView struct {
	ID           int           `json:"id"`
	Asset        *AssetLogRef  `json:"asset,omitempty"`
	Action       string        `json:"action"`
	PerformedBy  *UserRef      `json:"performedBy,omitempty"`
	TargetUser   *UserRef      `json:"targetUser,omitempty"`
	AssignedDate *time.Time    `json:"assignedDate,omitempty"`
	ReturnedDate *time.Time    `json:"returnedDate,omitempty"`
	Duration     *int          `json:"duration,omitempty"`
	Note         string        `json:"note"`
	CreatedAt    time.Time     `json:"createdAt"`
}

type AssetLogRef struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	SerialNumber string `json:"serialNumber"`
}

func (f *FlatAssetLogRecord) TransformToView() AssetLogView {
	view := AssetLogView{
		ID:        f.ID,
		Action:    f.Action,
		CreatedAt: f.CreatedAt,
	}

	if f.Note.Valid {
		view.Note = f.Note.String
	}
	if f.AssetID.Valid {
		view.Asset = &AssetLogRef{
			ID:           int(f.AssetID.Int64),
			Name:         f.AssetName.String,
			Category:     f.AssetCategory.String,
			SerialNumber: f.AssetSerial.String,
		}
	}
	if f.PerformedByID.Valid {
		view.PerformedBy = &UserRef{
			ID:    int(f.PerformedByID.Int64),
			Name:  f.PerformedByName.String,
			Email: f.PerformedByEmail.String,
		}
	}
	if f.TargetUserID.Valid {
		view.TargetUser = &UserRef{
			ID:    int(f.TargetUserID.Int64),
			Name:  f.TargetUserName.String,
			Email: f.TargetUserEmail.String,
		}
	}
	if f.AssignedDate.Valid {
		assigned := f.AssignedDate.Time
		view.AssignedDate = &assigned
	}
	if f.ReturnedDate.Valid {
		returned := f.ReturnedDate.Time
		view.ReturnedDate = &returned
	}
	if f.Duration.Valid {
		duration := int(f.Duration.Int64)
		view.Duration = &duration
	}

	return view
}
