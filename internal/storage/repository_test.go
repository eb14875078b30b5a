package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/akasha-nadeel/Budget-app/internal/core"
	"github.com/shopspring/decimal"
)

func testRepository(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(filepath.Join(t.TempDir(), "budget.db"))
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSnapshotRoundTrip(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	date := time.Date(2025, time.March, 12, 10, 30, 0, 0, time.UTC)
	transactions := []core.Transaction{
		{
			ID:          "txn_1",
			Amount:      decimal.NewFromInt(500),
			Date:        date,
			Description: "Lunch",
			AccountID:   "acc_1",
			CategoryID:  "cat_e_1",
			Type:        core.TransactionExpense,
		},
	}
	if err := repo.SaveTransactions(ctx, transactions); err != nil {
		t.Fatalf("SaveTransactions: %v", err)
	}

	got, err := repo.LoadTransactions(ctx)
	if err != nil {
		t.Fatalf("LoadTransactions: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("loaded %d transactions, want 1", len(got))
	}
	if got[0].ID != "txn_1" || !got[0].Amount.Equal(decimal.NewFromInt(500)) {
		t.Errorf("loaded transaction = %+v, want id txn_1 amount 500", got[0])
	}
	if !got[0].Date.Equal(date) {
		t.Errorf("loaded date = %s, want %s", got[0].Date, date)
	}

	accounts := core.SeedAccounts()
	if err := repo.SaveAccounts(ctx, accounts); err != nil {
		t.Fatalf("SaveAccounts: %v", err)
	}
	gotAccounts, found, err := repo.LoadAccounts(ctx)
	if err != nil {
		t.Fatalf("LoadAccounts: %v", err)
	}
	if !found {
		t.Fatal("LoadAccounts found = false after save")
	}
	if len(gotAccounts) != 3 || !gotAccounts[1].Balance.Equal(decimal.NewFromInt(25000)) {
		t.Errorf("loaded accounts = %+v, want seed set", gotAccounts)
	}
}

func TestLoadMissingSnapshots(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	transactions, err := repo.LoadTransactions(ctx)
	if err != nil {
		t.Fatalf("LoadTransactions: %v", err)
	}
	if len(transactions) != 0 {
		t.Errorf("loaded %d transactions from empty db, want 0", len(transactions))
	}

	_, found, err := repo.LoadAccounts(ctx)
	if err != nil {
		t.Fatalf("LoadAccounts: %v", err)
	}
	if found {
		t.Error("LoadAccounts found = true on empty db")
	}
}

func TestLoadMalformedSnapshot(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO snapshots (key, payload, updated_at) VALUES (?, ?, ?)`,
		KeyTransactions, "{not json", time.Now().UTC())
	if err != nil {
		t.Fatalf("insert malformed payload: %v", err)
	}

	if _, err := repo.LoadTransactions(ctx); err == nil {
		t.Error("LoadTransactions should fail on malformed payload so the caller can fall back")
	}
}

func TestSnapshotLastWriterWins(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	if err := repo.SaveAccounts(ctx, core.SeedAccounts()); err != nil {
		t.Fatalf("SaveAccounts: %v", err)
	}
	if err := repo.SaveAccounts(ctx, core.SeedAccounts()[:1]); err != nil {
		t.Fatalf("SaveAccounts (overwrite): %v", err)
	}

	accounts, _, err := repo.LoadAccounts(ctx)
	if err != nil {
		t.Fatalf("LoadAccounts: %v", err)
	}
	if len(accounts) != 1 {
		t.Errorf("loaded %d accounts, want 1 (latest snapshot)", len(accounts))
	}
}

func TestLedgerEvents(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	at := time.Date(2025, time.March, 12, 9, 0, 0, 0, time.UTC)
	if err := repo.AppendLedgerEvent(ctx, core.ChangeTransactionAdded, "txn_1", at); err != nil {
		t.Fatalf("AppendLedgerEvent: %v", err)
	}
	if err := repo.AppendLedgerEvent(ctx, core.ChangeTransactionDeleted, "txn_1", at.Add(time.Minute)); err != nil {
		t.Fatalf("AppendLedgerEvent: %v", err)
	}

	events, err := repo.ListLedgerEvents(ctx, 10)
	if err != nil {
		t.Fatalf("ListLedgerEvents: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("event count = %d, want 2", len(events))
	}
	if events[0].ChangeKind != core.ChangeTransactionDeleted {
		t.Errorf("events[0].ChangeKind = %s, want newest first", events[0].ChangeKind)
	}
}
