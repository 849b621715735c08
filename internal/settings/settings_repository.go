package settings

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/thejas-1999/Assets-Management/internal/repository"
)

type SettingsRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *SettingsRepository {
	return &SettingsRepository{repository: r}
}

// AssetTypes returns the category allow-list. Fetched per validation
// call, not cached: admins edit the list at runtime.
func (r *SettingsRepository) AssetTypes() ([]string, error) {
	var types []string
	query := r.repository.GoquDBWrapper.
		Select("name").
		From("asset_types").
		Order(goqu.I("name").Asc())

	if err := query.Executor().ScanVals(&types); err != nil {
		return nil, fmt.Errorf("unable to select asset types from database: %w", err)
	}

	return types, nil
}

// ReplaceAssetTypes swaps the whole allow-list in one transaction.
func (r *SettingsRepository) ReplaceAssetTypes(types []string) error {
	return repository.WithTransaction(r.repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		if _, err := tx.Delete("asset_types").Executor().Exec(); err != nil {
			return fmt.Errorf("failed to clear asset types: %w", err)
		}

		if len(types) == 0 {
			return nil
		}

		records := make([]goqu.Record, 0, len(types))
		for _, name := range types {
			records = append(records, goqu.Record{"name": name})
		}

		if _, err := tx.Insert("asset_types").Rows(records).Executor().Exec(); err != nil {
			return fmt.Errorf("failed to insert asset types: %w", err)
		}

		return nil
	})
}
