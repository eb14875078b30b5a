package worker

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/akasha-nadeel/Budget-app/internal/amqp"
	"github.com/akasha-nadeel/Budget-app/internal/core"
	"github.com/akasha-nadeel/Budget-app/internal/storage"
)

func TestHandleChangeRecordsEvent(t *testing.T) {
	repo, err := storage.NewRepository(filepath.Join(t.TempDir(), "budget.db"))
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	defer repo.Close()

	w := NewAuditWorker(repo)
	ctx := context.Background()

	msg := &amqp.LedgerChangeMessage{
		Kind:      core.ChangeTransactionAdded,
		EntityID:  "txn_1",
		Timestamp: time.Date(2025, time.March, 12, 9, 0, 0, 0, time.UTC),
	}
	if err := w.HandleChange(ctx, msg); err != nil {
		t.Fatalf("HandleChange: %v", err)
	}

	events, err := repo.ListLedgerEvents(ctx, 10)
	if err != nil {
		t.Fatalf("ListLedgerEvents: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("event count = %d, want 1", len(events))
	}
	if events[0].ChangeKind != core.ChangeTransactionAdded || events[0].EntityID != "txn_1" {
		t.Errorf("event = %+v, want transaction_added/txn_1", events[0])
	}
}
