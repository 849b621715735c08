package repository

import (
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
)

type Repository struct {
	DB            *sql.DB
	GoquDBWrapper *goqu.Database
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		DB:            db,
		GoquDBWrapper: goqu.New("postgres", db),
	}
}

// InTransaction runs fn inside a transaction on this repository's
// database. Services depend on this method through a small interface so
// tests can substitute a pass-through runner.
func (r *Repository) InTransaction(fn func(tx *goqu.TxDatabase) error) error {
	return WithTransaction(r.GoquDBWrapper, fn)
}

func WithTransaction(db *goqu.Database, fn func(tx *goqu.TxDatabase) error) (err error) {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	err = fn(tx)
	return
}
