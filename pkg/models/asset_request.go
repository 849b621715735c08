package models

import (
	"database/sql"
	"time"
)

// Asset request statuses. A request leaves pending exactly once.
const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

type AssetRequest struct {
	ID           int          `json:"id"`
	User         *UserRef     `json:"user,omitempty"`
	AssetType    string       `json:"assetType"`
	Asset        *AssetLogRef `json:"asset,omitempty"`
	Status       string       `json:"status"`
	Reason       string       `json:"reason,omitempty"`
	HandledBy    *UserRef     `json:"handledBy,omitempty"`
	ResponseNote string       `json:"responseNote,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	HandledAt    *time.Time   `json:"handledAt,omitempty"`
}

type FlatAssetRequestRecord struct {
	ID            int            `db:"id"`
	UserID        sql.NullInt64  `db:"user_id"`
	UserName      sql.NullString `db:"request_user_name"`
	UserEmail     sql.NullString `db:"request_user_email"`
	AssetType     string         `db:"asset_type"`
	AssetID       sql.NullInt64  `db:"asset_id"`
	AssetName     sql.NullString `db:"request_asset_name"`
	AssetCategory sql.NullString `db:"request_asset_category"`
	AssetSerial   sql.NullString `db:"request_asset_serial"`
	Status        string         `db:"status"`
	Reason        sql.NullString `db:"reason"`
	HandledByID   sql.NullInt64  `db:"handled_by_id"`
	HandledByName sql.NullString `db:"handled_by_name"`
	HandledByMail sql.NullString `db:"handled_by_email"`
	ResponseNote  sql.NullString `db:"response_note"`
	CreatedAt     time.Time      `db:"created_at"`
	HandledAt     sql.NullTime   `db:"handled_at"`
}

func (f *FlatAssetRequestRecord) TransformToRequest() AssetRequest {
	request := AssetRequest{
		ID:        f.ID,
		AssetType: f.AssetType,
		Status:    f.Status,
		CreatedAt: f.CreatedAt,
	}

	if f.UserID.Valid {
		request.User = &UserRef{
			ID:    int(f.UserID.Int64),
			Name:  f.UserName.String,
			Email: f.UserEmail.String,
		}
	}
	if f.AssetID.Valid {
		request.Asset = &AssetLogRef{
			ID:           int(f.AssetID.Int64),
			Name:         f.AssetName.String,
			Category:     f.AssetCategory.String,
			SerialNumber: f.AssetSerial.String,
		}
	}
	if f.HandledByID.Valid {
		request.HandledBy = &UserRef{
			ID:    int(f.HandledByID.Int64),
			Name:  f.HandledByName.String,
			Email: f.HandledByMail.String,
		}
	}
	if f.Reason.Valid {
		request.Reason = f.Reason.String
	}
	if f.ResponseNote.Valid {
		request.ResponseNote = f.ResponseNote.String
	}
	if f.HandledAt.Valid {
		handledAt := f.HandledAt.Time
		request.HandledAt = &handledAt
	}

	return request
}

type SubmitAssetRequest struct {
	AssetType string `json:"assetType" binding:"required"`
	Reason    string `json:"reason"`
	AssetID   *int   `json:"assetId"`
}

type DecideAssetRequest struct {
	Status       string `json:"status" binding:"required"`
	ResponseNote string `json:"responseNote"`
}
