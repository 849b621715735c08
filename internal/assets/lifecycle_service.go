package assets

import (
	"fmt"
	"math"
	"time"

	"github.com/doug-martin/goqu/v9"
	"go.uber.org/zap"

	custom_error "github.com/thejas-1999/Assets-Management/pkg/errors"
	"github.com/thejas-1999/Assets-Management/pkg/metadata"
	"github.com/thejas-1999/Assets-Management/pkg/models"
)

// TxRunner starts a transaction and runs the given unit inside it.
type TxRunner interface {
	InTransaction(fn func(tx *goqu.TxDatabase) error) error
}

// LifecycleStore is the slice of the assets repository the lifecycle
// engine needs. Every mutation takes the transaction so the status
// change, the history row and the audit entry commit or roll back as one
// unit.
type LifecycleStore interface {
	GetAsset(id int) (*models.Asset, error)
	ApplyTransition(tx *goqu.TxDatabase, assetID int, action string, allowed []metadata.Status, changes goqu.Record) error
	OpenUsageEntry(tx *goqu.TxDatabase, assetID, userID int, assignedAt time.Time) error
	OpenUsageEntryFor(tx *goqu.TxDatabase, assetID int) (*models.UsageEntry, error)
	CloseUsageEntry(tx *goqu.TxDatabase, entryID int, returnedAt time.Time, daysUsed int) error
	OpenMaintenanceEntry(tx *goqu.TxDatabase, assetID int, startedAt time.Time, description string) error
	OpenMaintenanceEntryFor(tx *goqu.TxDatabase, assetID int) (*models.MaintenanceEntry, error)
	FillMaintenanceEntry(tx *goqu.TxDatabase, entryID int, daysTaken *int, cost *float64, description *string) error
}

// UserDirectory resolves user references for validation and log notes.
type UserDirectory interface {
	GetUser(id int) (*models.User, error)
}

// AuditWriter appends one audit entry on the given transaction.
type AuditWriter interface {
	Record(tx *goqu.TxDatabase, entry models.AssetLog) error
}

// LifecycleService owns the asset status state machine:
//
//	available --assign(user)--> assigned
//	assigned  --return()------> available
//	available --startMaintenance(desc)--> maintenance
//	maintenance --completeMaintenance(days,cost,desc)--> available
//
// in-repair and retired are reachable only through a direct edit.
type LifecycleService struct {
	db     TxRunner
	store  LifecycleStore
	users  UserDirectory
	audit  AuditWriter
	logger *zap.Logger
}

func NewLifecycleService(db TxRunner, store LifecycleStore, users UserDirectory, audit AuditWriter, logger *zap.Logger) *LifecycleService {
	return &LifecycleService{
		db:     db,
		store:  store,
		users:  users,
		audit:  audit,
		logger: logger,
	}
}

// assignableFrom lists the statuses assign and startMaintenance accept.
// Everything except assigned and maintenance: an asset someone holds must
// come back first, and a maintenance interval cannot be stacked.
var assignableFrom = []metadata.Status{
	metadata.StatusAvailable,
	metadata.StatusInRepair,
	metadata.StatusRetired,
}

func (s *LifecycleService) Assign(assetID, userID, actorID int) (*models.Asset, error) {
	user, err := s.users.GetUser(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	err = s.db.InTransaction(func(tx *goqu.TxDatabase) error {
		changes := goqu.Record{
			"status":        string(metadata.StatusAssigned),
			"assigned_to":   userID,
			"assigned_by":   actorID,
			"assigned_date": now,
			"returned_date": nil,
		}

		if err := s.store.ApplyTransition(tx, assetID, "assign", assignableFrom, changes); err != nil {
			return err
		}

		if err := s.store.OpenUsageEntry(tx, assetID, userID, now); err != nil {
			return err
		}

		return s.audit.Record(tx, models.AssetLog{
			AssetID:      &assetID,
			Action:       models.ActionAssigned,
			PerformedBy:  &actorID,
			TargetUser:   &userID,
			AssignedDate: &now,
			Note:         fmt.Sprintf("Asset assigned to %s", user.Name),
		})
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("asset assigned",
		zap.Int("asset_id", assetID),
		zap.Int("user_id", userID),
		zap.Int("actor_id", actorID),
	)

	return s.store.GetAsset(assetID)
}

func (s *LifecycleService) Return(assetID, actorID int) (*models.Asset, error) {
	now := time.Now().UTC()

	err := s.db.InTransaction(func(tx *goqu.TxDatabase) error {
		changes := goqu.Record{
			"status":        string(metadata.StatusAvailable),
			"assigned_to":   nil,
			"assigned_by":   nil,
			"assigned_date": nil,
			"returned_date": now,
		}

		if err := s.store.ApplyTransition(tx, assetID, "return", []metadata.Status{metadata.StatusAssigned}, changes); err != nil {
			return err
		}

		entry := models.AssetLog{
			AssetID:      &assetID,
			Action:       models.ActionReturned,
			PerformedBy:  &actorID,
			ReturnedDate: &now,
			Note:         "Asset returned",
		}

		usage, err := s.store.OpenUsageEntryFor(tx, assetID)
		if err != nil {
			return err
		}
		if usage != nil {
			daysUsed := daysBetween(usage.AssignedDate, now)
			if err := s.store.CloseUsageEntry(tx, usage.ID, now, daysUsed); err != nil {
				return err
			}
			holder := usage.UserID
			entry.TargetUser = &holder
			entry.Duration = &daysUsed
		}

		return s.audit.Record(tx, entry)
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("asset returned",
		zap.Int("asset_id", assetID),
		zap.Int("actor_id", actorID),
	)

	return s.store.GetAsset(assetID)
}

func (s *LifecycleService) StartMaintenance(assetID int, description string, actorID int) (*models.Asset, error) {
	if description == "" {
		description = "Maintenance started"
	}

	now := time.Now().UTC()

	err := s.db.InTransaction(func(tx *goqu.TxDatabase) error {
		changes := goqu.Record{
			"status":        string(metadata.StatusMaintenance),
			"assigned_to":   nil,
			"assigned_by":   nil,
			"assigned_date": nil,
			"returned_date": nil,
		}

		if err := s.store.ApplyTransition(tx, assetID, "start maintenance", assignableFrom, changes); err != nil {
			return err
		}

		if err := s.store.OpenMaintenanceEntry(tx, assetID, now, description); err != nil {
			return err
		}

		return s.audit.Record(tx, models.AssetLog{
			AssetID:     &assetID,
			Action:      models.ActionMaintenanceStarted,
			PerformedBy: &actorID,
			Note:        fmt.Sprintf("Maintenance started: %s", description),
		})
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("asset maintenance started",
		zap.Int("asset_id", assetID),
		zap.Int("actor_id", actorID),
	)

	return s.store.GetAsset(assetID)
}

func (s *LifecycleService) CompleteMaintenance(assetID int, daysTaken *int, cost *float64, description string, actorID int) (*models.Asset, error) {
	if daysTaken != nil && *daysTaken < 0 {
		return nil, custom_error.NewValidation("daysTaken must not be negative")
	}
	if cost != nil && *cost < 0 {
		return nil, custom_error.NewValidation("cost must not be negative")
	}

	err := s.db.InTransaction(func(tx *goqu.TxDatabase) error {
		changes := goqu.Record{
			"status": string(metadata.StatusAvailable),
		}

		if err := s.store.ApplyTransition(tx, assetID, "complete maintenance", []metadata.Status{metadata.StatusMaintenance}, changes); err != nil {
			return err
		}

		entry, err := s.store.OpenMaintenanceEntryFor(tx, assetID)
		if err != nil {
			return err
		}
		if entry == nil {
			return custom_error.NewValidation("no maintenance record found to complete")
		}

		// A description given here replaces the one from start; omitted
		// fields keep their current values, so an entry closed without
		// daysTaken stays open by the days_taken IS NULL rule.
		var descriptionChange *string
		if description != "" {
			descriptionChange = &description
		}

		if err := s.store.FillMaintenanceEntry(tx, entry.ID, daysTaken, cost, descriptionChange); err != nil {
			return err
		}

		return s.audit.Record(tx, models.AssetLog{
			AssetID:     &assetID,
			Action:      models.ActionMaintenanceCompleted,
			PerformedBy: &actorID,
			Duration:    daysTaken,
			Note:        maintenanceCompletedNote(description, daysTaken, cost),
		})
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("asset maintenance completed",
		zap.Int("asset_id", assetID),
		zap.Int("actor_id", actorID),
	)

	return s.store.GetAsset(assetID)
}

// daysBetween rounds a usage interval up to whole days.
func daysBetween(from, to time.Time) int {
	days := int(math.Ceil(to.Sub(from).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

func maintenanceCompletedNote(description string, daysTaken *int, cost *float64) string {
	if description == "" {
		description = "No description"
	}

	days := "n/a"
	if daysTaken != nil {
		days = fmt.Sprintf("%d", *daysTaken)
	}

	costText := "n/a"
	if cost != nil {
		costText = fmt.Sprintf("%.2f", *cost)
	}

	return fmt.Sprintf("Maintenance completed: %s. Days taken: %s, Cost: %s", description, days, costText)
}
