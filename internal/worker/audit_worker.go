package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/akasha-nadeel/Budget-app/internal/amqp"
	"github.com/akasha-nadeel/Budget-app/internal/storage"
)

// AuditWorker consumes the ledger change feed and records each event in
// the sqlite audit trail.
type AuditWorker struct {
	storage *storage.Repository
}

func NewAuditWorker(storage *storage.Repository) *AuditWorker {
	return &AuditWorker{storage: storage}
}

// HandleChange records a single ledger change event. Returning an error
// makes the consumer nack-requeue the delivery.
func (w *AuditWorker) HandleChange(ctx context.Context, msg *amqp.LedgerChangeMessage) error {
	if err := w.storage.AppendLedgerEvent(ctx, msg.Kind, msg.EntityID, msg.Timestamp); err != nil {
		return fmt.Errorf("record ledger event: %w", err)
	}

	slog.InfoContext(ctx, "Recorded ledger event",
		"change_kind", msg.Kind,
		"entity_id", msg.EntityID)
	return nil
}
