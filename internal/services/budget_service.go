package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/akasha-nadeel/Budget-app/internal/amqp"
	"github.com/akasha-nadeel/Budget-app/internal/core"
	"github.com/akasha-nadeel/Budget-app/internal/storage"
)

const persistTimeout = 5 * time.Second

// BudgetService wires the ledger's change feed to snapshot persistence
// and AMQP event publication. The ledger stays persistence-agnostic;
// persistence and publish failures are logged and never surface to the
// mutating caller.
type BudgetService struct {
	ledger     *core.Ledger
	storage    *storage.Repository
	amqpClient *amqp.Client
}

func NewBudgetService(ledger *core.Ledger, storage *storage.Repository, amqpClient *amqp.Client) *BudgetService {
	s := &BudgetService{
		ledger:     ledger,
		storage:    storage,
		amqpClient: amqpClient,
	}
	ledger.Subscribe(s.handleChange)
	return s
}

// Ledger exposes the underlying store to consumers (HTTP handlers).
func (s *BudgetService) Ledger() *core.Ledger {
	return s.ledger
}

// LoadLedger builds a ledger from persisted snapshots. Absent or
// malformed state falls back to safe defaults: an empty transaction
// sequence and the seed account set. Categories are always re-seeded.
func LoadLedger(ctx context.Context, repo *storage.Repository) *core.Ledger {
	transactions, err := repo.LoadTransactions(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Discarding unreadable transaction snapshot",
			"error", err)
		transactions = nil
	}

	accounts, found, err := repo.LoadAccounts(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Discarding unreadable account snapshot",
			"error", err)
		found = false
	}
	if !found {
		accounts = core.SeedAccounts()
	}

	return core.NewLedger(transactions, accounts, core.SeedCategories())
}

// handleChange persists the collections touched by a mutation and
// publishes the change event. Fire and forget: the mutation has already
// happened in memory and is never rolled back.
func (s *BudgetService) handleChange(c core.Change) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	switch c.Kind {
	case core.ChangeTransactionAdded, core.ChangeTransactionDeleted:
		// Transaction mutations also move account balances.
		s.persistTransactions(ctx, c)
		s.persistAccounts(ctx, c)
	case core.ChangeAccountAdded, core.ChangeBalanceUpdated:
		s.persistAccounts(ctx, c)
	}

	if err := s.publishChange(ctx, c); err != nil {
		slog.ErrorContext(ctx, "Failed to publish ledger change",
			"change_kind", c.Kind,
			"entity_id", c.ID,
			"error", err)
	}
}

func (s *BudgetService) persistTransactions(ctx context.Context, c core.Change) {
	if err := s.storage.SaveTransactions(ctx, s.ledger.Transactions()); err != nil {
		slog.ErrorContext(ctx, "Failed to persist transaction snapshot",
			"change_kind", c.Kind,
			"entity_id", c.ID,
			"error", err)
	}
}

func (s *BudgetService) persistAccounts(ctx context.Context, c core.Change) {
	if err := s.storage.SaveAccounts(ctx, s.ledger.Accounts()); err != nil {
		slog.ErrorContext(ctx, "Failed to persist account snapshot",
			"change_kind", c.Kind,
			"entity_id", c.ID,
			"error", err)
	}
}

func (s *BudgetService) publishChange(ctx context.Context, c core.Change) error {
	if s.amqpClient == nil {
		slog.DebugContext(ctx, "AMQP client not configured, skipping change event")
		return nil
	}
	return s.amqpClient.PublishLedgerChange(ctx, amqp.NewLedgerChangeMessage(c))
}

// Close closes both storage and AMQP connections.
func (s *BudgetService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close budget service: %v", errs)
	}

	return nil
}
