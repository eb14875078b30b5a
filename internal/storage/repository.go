package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/akasha-nadeel/Budget-app/internal/core"

	_ "modernc.org/sqlite"
)

// Fixed snapshot keys. These match the data format the app has always
// persisted under.
const (
	KeyTransactions = "sb_transactions"
	KeyAccounts     = "sb_accounts"
)

// Repository persists ledger snapshots as JSON payloads under fixed keys,
// plus an append-only audit trail of ledger change events.
type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// SaveTransactions snapshots the full transaction sequence. Last writer
// wins; there is no batching across keys.
func (r *Repository) SaveTransactions(ctx context.Context, transactions []core.Transaction) error {
	return r.saveSnapshot(ctx, KeyTransactions, transactions)
}

// LoadTransactions returns the persisted transaction sequence. A missing
// snapshot yields an empty sequence; a malformed one yields an error so
// the caller can fall back to defaults.
func (r *Repository) LoadTransactions(ctx context.Context) ([]core.Transaction, error) {
	var transactions []core.Transaction
	found, err := r.loadSnapshot(ctx, KeyTransactions, &transactions)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return transactions, nil
}

// SaveAccounts snapshots the full account list.
func (r *Repository) SaveAccounts(ctx context.Context, accounts []core.Account) error {
	return r.saveSnapshot(ctx, KeyAccounts, accounts)
}

// LoadAccounts returns the persisted account list, or found=false when no
// snapshot exists yet.
func (r *Repository) LoadAccounts(ctx context.Context) ([]core.Account, bool, error) {
	var accounts []core.Account
	found, err := r.loadSnapshot(ctx, KeyAccounts, &accounts)
	if err != nil {
		return nil, false, err
	}
	return accounts, found, nil
}

func (r *Repository) saveSnapshot(ctx context.Context, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal snapshot %s: %w", key, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO snapshots (key, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		key, string(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("write snapshot %s: %w", key, err)
	}
	return nil
}

func (r *Repository) loadSnapshot(ctx context.Context, key string, dst any) (bool, error) {
	var payload string
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM snapshots WHERE key = ?`, key).Scan(&payload)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read snapshot %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(payload), dst); err != nil {
		return false, fmt.Errorf("decode snapshot %s: %w", key, err)
	}
	return true, nil
}

// AppendLedgerEvent records one ledger change in the audit trail.
func (r *Repository) AppendLedgerEvent(ctx context.Context, kind core.ChangeKind, entityID string, occurredAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ledger_events (change_kind, entity_id, occurred_at) VALUES (?, ?, ?)`,
		string(kind), entityID, occurredAt.UTC())
	if err != nil {
		return fmt.Errorf("append ledger event: %w", err)
	}
	return nil
}

// LedgerEvent is one row of the audit trail.
type LedgerEvent struct {
	ID         int64
	ChangeKind core.ChangeKind
	EntityID   string
	OccurredAt time.Time
}

// ListLedgerEvents returns the most recent audit rows, newest first.
func (r *Repository) ListLedgerEvents(ctx context.Context, limit int) ([]LedgerEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, change_kind, entity_id, occurred_at
		FROM ledger_events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list ledger events: %w", err)
	}
	defer rows.Close()

	var events []LedgerEvent
	for rows.Next() {
		var ev LedgerEvent
		var kind string
		if err := rows.Scan(&ev.ID, &kind, &ev.EntityID, &ev.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan ledger event: %w", err)
		}
		ev.ChangeKind = core.ChangeKind(kind)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger events: %w", err)
	}
	return events, nil
}
