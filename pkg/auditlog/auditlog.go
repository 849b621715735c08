package auditlog

import (
	"github.com/doug-martin/goqu/v9"
	"go.uber.org/zap"

	"github.com/thejas-1999/Assets-Management/pkg/models"
)

// LogStore persists append-only asset log entries.
type LogStore interface {
	PersistLog(tx *goqu.TxDatabase, entry models.AssetLog) error
}

// Writer records audit entries inside the caller's transaction. The write
// is synchronous on purpose: a status mutation must not commit without
// its log entry, so the entry rides the same transaction and a failed
// insert rolls the whole unit back.
type Writer struct {
	store  LogStore
	logger *zap.Logger
}

func NewWriter(store LogStore, logger *zap.Logger) *Writer {
	return &Writer{store: store, logger: logger}
}

func (w *Writer) Record(tx *goqu.TxDatabase, entry models.AssetLog) error {
	if err := w.store.PersistLog(tx, entry); err != nil {
		w.logger.Error("unable to create asset log entry",
			zap.String("action", entry.Action),
			zap.Error(err),
		)
		return err
	}

	return nil
}
