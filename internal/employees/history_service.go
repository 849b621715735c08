package employees

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/thejas-1999/Assets-Management/pkg/models"
)

// LogSource supplies a user's audit trail, oldest entry first.
type LogSource interface {
	GetUserLogs(userID int) ([]models.FlatAssetLogRecord, error)
}

// EmployeeDirectory resolves the employee record itself.
type EmployeeDirectory interface {
	GetUser(id int) (*models.User, error)
}

// AssetSource lists the assets an employee currently holds.
type AssetSource interface {
	GetCurrentAssets(userID int) ([]models.Asset, error)
}

// HistoryService rebuilds an employee's assignment history from the audit
// trail instead of the live asset rows, so intervals survive asset edits
// and deletions.
type HistoryService struct {
	logs   LogSource
	users  EmployeeDirectory
	assets AssetSource
	logger *zap.Logger
}

func NewHistoryService(logs LogSource, users EmployeeDirectory, assets AssetSource, logger *zap.Logger) *HistoryService {
	return &HistoryService{
		logs:   logs,
		users:  users,
		assets: assets,
		logger: logger,
	}
}

// historyKey pairs an asset with the user the interval belongs to. Logs
// with a missing asset or user reference still fold, keyed on zero.
type historyKey struct {
	assetID int
	userID  int
}

// AssetHistory folds the employee's assigned and returned log entries
// into assignment intervals: per asset-and-user pair, the earliest
// assignment date opens the interval and the latest return date closes
// it. A pair with no return entry yields an open interval.
func (s *HistoryService) AssetHistory(userID int) ([]models.AssetHistoryRow, error) {
	if _, err := s.users.GetUser(userID); err != nil {
		return nil, err
	}

	logs, err := s.logs.GetUserLogs(userID)
	if err != nil {
		return nil, err
	}

	merged := make(map[historyKey]*models.AssetHistoryRow)
	order := make([]historyKey, 0)

	for i := range logs {
		log := &logs[i]
		if log.Action != models.ActionAssigned && log.Action != models.ActionReturned {
			continue
		}

		key := historyKey{userID: subjectID(log)}
		if log.AssetID.Valid {
			key.assetID = int(log.AssetID.Int64)
		}

		row, ok := merged[key]
		if !ok {
			row = &models.AssetHistoryRow{
				AssetName:   "Unknown Asset",
				PerformedBy: "System",
				TargetUser:  "System",
			}
			if log.AssetName.Valid {
				row.AssetName = log.AssetName.String
				row.Category = log.AssetCategory.String
				row.SerialNumber = log.AssetSerial.String
			}
			merged[key] = row
			order = append(order, key)
		}

		if log.PerformedByName.Valid {
			row.PerformedBy = log.PerformedByName.String
		}
		if log.TargetUserName.Valid {
			row.TargetUser = log.TargetUserName.String
		}

		switch log.Action {
		case models.ActionAssigned:
			assignedAt := log.CreatedAt
			if log.AssignedDate.Valid {
				assignedAt = log.AssignedDate.Time
			}
			if row.AssignedDate == nil || assignedAt.Before(*row.AssignedDate) {
				row.AssignedDate = &assignedAt
			}
		case models.ActionReturned:
			returnedAt := log.CreatedAt
			if log.ReturnedDate.Valid {
				returnedAt = log.ReturnedDate.Time
			}
			if row.ReturnedDate == nil || returnedAt.After(*row.ReturnedDate) {
				row.ReturnedDate = &returnedAt
			}
		}
	}

	history := make([]models.AssetHistoryRow, 0, len(order))
	for _, key := range order {
		history = append(history, *merged[key])
	}

	sort.SliceStable(history, func(i, j int) bool {
		return laterAssigned(history[i].AssignedDate, history[j].AssignedDate)
	})

	return history, nil
}

// Profile assembles the employee view: the user record, the assets they
// hold right now and their reconstructed assignment history.
func (s *HistoryService) Profile(userID int) (*models.EmployeeProfile, error) {
	user, err := s.users.GetUser(userID)
	if err != nil {
		return nil, err
	}

	current, err := s.assets.GetCurrentAssets(userID)
	if err != nil {
		return nil, err
	}

	history, err := s.AssetHistory(userID)
	if err != nil {
		return nil, err
	}

	profile := &models.EmployeeProfile{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		Designation:   user.Designation,
		CreatedAt:     user.CreatedAt,
		CurrentAssets: make([]models.CurrentAsset, 0, len(current)),
		AssetHistory:  history,
	}

	for _, asset := range current {
		profile.CurrentAssets = append(profile.CurrentAssets, models.CurrentAsset{
			ID:           asset.ID,
			Name:         asset.Name,
			Category:     asset.Category,
			SerialNumber: asset.SerialNumber,
			Status:       asset.Status.String(),
		})
	}

	s.logger.Debug("employee profile assembled",
		zap.Int("user_id", userID),
		zap.Int("current_assets", len(profile.CurrentAssets)),
		zap.Int("history_rows", len(profile.AssetHistory)),
	)

	return profile, nil
}

// subjectID picks the user an interval belongs to: the assignment target
// when the log carries one, the acting user otherwise.
func subjectID(log *models.FlatAssetLogRecord) int {
	if log.TargetUserID.Valid {
		return int(log.TargetUserID.Int64)
	}
	if log.PerformedByID.Valid {
		return int(log.PerformedByID.Int64)
	}
	return 0
}

// laterAssigned orders rows newest assignment first, undated rows last.
func laterAssigned(a, b *time.Time) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return a.After(*b)
}
