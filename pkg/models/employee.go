package models

import "time"

// AssetHistoryRow is one merged assignment interval in the reconstructed
// employee history. Asset and actor display fields fall back to
// placeholders when the referenced records no longer resolve.
type AssetHistoryRow struct {
	AssetName    string     `json:"assetName"`
	Category     string     `json:"category"`
	SerialNumber string     `json:"serialNumber"`
	AssignedDate *time.Time `json:"assignedDate"`
	ReturnedDate *time.Time `json:"returnedDate"`
	PerformedBy  string     `json:"performedBy"`
	TargetUser   string     `json:"targetUser"`
}

type CurrentAsset struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	SerialNumber string `json:"serialNumber"`
	Status       string `json:"status"`
}

type EmployeeProfile struct {
	ID            int               `json:"id"`
	Name          string            `json:"name"`
	Email         string            `json:"email"`
	Designation   string            `json:"designation"`
	CreatedAt     time.Time         `json:"createdAt"`
	CurrentAssets []CurrentAsset    `json:"currentAssets"`
	AssetHistory  []AssetHistoryRow `json:"assetHistory"`
}
