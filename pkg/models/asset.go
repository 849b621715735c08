package models

import (
	"database/sql"
	"time"

	"github.com/thejas-1999/Assets-Management/pkg/metadata"
)

type Asset struct {
	ID                int                `json:"id"`
	Name              string             `json:"name"`
	Category          string             `json:"category"`
	SerialNumber      string             `json:"serialNumber"`
	Specifications    string             `json:"specifications,omitempty"`
	Status            metadata.Status    `json:"status"`
	AssignedTo        *UserRef           `json:"assignedTo,omitempty"`
	AssignedBy        *UserRef           `json:"assignedBy,omitempty"`
	AssignedDate      *time.Time         `json:"assignedDate,omitempty"`
	ReturnedDate      *time.Time         `json:"returnedDate,omitempty"`
	PurchaseDate      time.Time          `json:"purchaseDate"`
	PurchaseValue     float64            `json:"purchaseValue"`
	HasWarranty       bool               `json:"hasWarranty"`
	WarrantyStartDate *time.Time         `json:"warrantyStartDate,omitempty"`
	WarrantyEndDate   *time.Time         `json:"warrantyEndDate,omitempty"`
	UsageHistory      []UsageEntry       `json:"usageHistory,omitempty"`
	MaintenanceLogs   []MaintenanceEntry `json:"maintenanceLogs,omitempty"`
	CreatedAt         time.Time          `json:"createdAt"`
}

// UserRef is the resolved display form of a user reference on an asset.
type UserRef struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UsageEntry is one assignment interval. An open entry has a NULL
// returned_date and NULL days_used.
type UsageEntry struct {
	ID           int        `json:"id" db:"id"`
	AssetID      int        `json:"-" db:"asset_id"`
	UserID       int        `json:"user" db:"user_id"`
	AssignedDate time.Time  `json:"assignedDate" db:"assigned_date"`
	ReturnedDate *time.Time `json:"returnedDate" db:"returned_date"`
	DaysUsed     *int       `json:"daysUsed" db:"days_used"`
}

// MaintenanceEntry is one repair interval. An open entry has NULL
// days_taken.
type MaintenanceEntry struct {
	ID              int       `json:"id" db:"id"`
	AssetID         int       `json:"-" db:"asset_id"`
	MaintenanceDate time.Time `json:"maintenanceDate" db:"maintenance_date"`
	DaysTaken       *int      `json:"daysTaken" db:"days_taken"`
	Cost            *float64  `json:"cost" db:"cost"`
	Description     string    `json:"description" db:"description"`
}

// FlatAssetRecord is the scan target for the asset select with user joins.
type FlatAssetRecord struct {
	ID                int             `db:"asset_id"`
	Name              string          `db:"asset_name"`
	Category          string          `db:"category"`
	SerialNumber      string          `db:"serial_number"`
	Specifications    sql.NullString  `db:"specifications"`
	Status            string          `db:"status"`
	AssignedToID      sql.NullInt64   `db:"assigned_to_id"`
	AssignedToName    sql.NullString  `db:"assigned_to_name"`
	AssignedToEmail   sql.NullString  `db:"assigned_to_email"`
	AssignedByID      sql.NullInt64   `db:"assigned_by_id"`
	AssignedByName    sql.NullString  `db:"assigned_by_name"`
	AssignedByEmail   sql.NullString  `db:"assigned_by_email"`
	AssignedDate      sql.NullTime    `db:"assigned_date"`
	ReturnedDate      sql.NullTime    `db:"returned_date"`
	PurchaseDate      time.Time       `db:"purchase_date"`
	PurchaseValue     float64         `db:"purchase_value"`
	HasWarranty       bool            `db:"has_warranty"`
	WarrantyStartDate sql.NullTime    `db:"warranty_start_date"`
	WarrantyEndDate   sql.NullTime    `db:"warranty_end_date"`
	CreatedAt         time.Time       `db:"created_at"`
}

func (fa *FlatAssetRecord) TransformToAsset() Asset {
	asset := Asset{
		ID:            fa.ID,
		Name:          fa.Name,
		Category:      fa.Category,
		SerialNumber:  fa.SerialNumber,
		Status:        metadata.Status(fa.Status),
		PurchaseDate:  fa.PurchaseDate,
		PurchaseValue: fa.PurchaseValue,
		HasWarranty:   fa.HasWarranty,
		CreatedAt:     fa.CreatedAt,
	}

	if fa.Specifications.Valid {
		asset.Specifications = fa.Specifications.String
	}
	if fa.AssignedToID.Valid {
		asset.AssignedTo = &UserRef{
			ID:    int(fa.AssignedToID.Int64),
			Name:  fa.AssignedToName.String,
			Email: fa.AssignedToEmail.String,
		}
	}
	if fa.AssignedByID.Valid {
		asset.AssignedBy = &UserRef{
			ID:    int(fa.AssignedByID.Int64),
			Name:  fa.AssignedByName.String,
			Email: fa.AssignedByEmail.String,
		}
	}
	if fa.AssignedDate.Valid {
		assignedDate := fa.AssignedDate.Time
		asset.AssignedDate = &assignedDate
	}
	if fa.ReturnedDate.Valid {
		returnedDate := fa.ReturnedDate.Time
		asset.ReturnedDate = &returnedDate
	}
	if fa.WarrantyStartDate.Valid {
		start := fa.WarrantyStartDate.Time
		asset.WarrantyStartDate = &start
	}
	if fa.WarrantyEndDate.Valid {
		end := fa.WarrantyEndDate.Time
		asset.WarrantyEndDate = &end
	}

	return asset
}

// AssetCreateRequest fans out into one asset row per serial number.
type AssetCreateRequest struct {
	Name              string     `json:"name" binding:"required"`
	Category          string     `json:"category" binding:"required"`
	SerialNumbers     []string   `json:"serialNumbers" binding:"required"`
	Quantity          int        `json:"quantity" binding:"required"`
	Specifications    string     `json:"specifications"`
	PurchaseDate      time.Time  `json:"purchaseDate" binding:"required"`
	PurchaseValue     float64    `json:"purchaseValue"`
	HasWarranty       bool       `json:"hasWarranty"`
	WarrantyStartDate *time.Time `json:"warrantyStartDate"`
	WarrantyEndDate   *time.Time `json:"warrantyEndDate"`
}

type AssetUpdateRequest struct {
	Name              *string    `json:"name"`
	Category          *string    `json:"category"`
	SerialNumber      *string    `json:"serialNumber"`
	Specifications    *string    `json:"specifications"`
	Status            *string    `json:"status"`
	HasWarranty       *bool      `json:"hasWarranty"`
	WarrantyStartDate *time.Time `json:"warrantyStartDate"`
	WarrantyEndDate   *time.Time `json:"warrantyEndDate"`
}
