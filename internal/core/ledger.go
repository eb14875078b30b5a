package core

import (
	"sync"

	"github.com/shopspring/decimal"
)

const (
	ChangeTransactionAdded   ChangeKind = "transaction_added"
	ChangeTransactionDeleted ChangeKind = "transaction_deleted"
	ChangeAccountAdded       ChangeKind = "account_added"
	ChangeBalanceUpdated     ChangeKind = "balance_updated"
)

type (
	ChangeKind string

	// Change describes a single ledger mutation. It carries the id of the
	// entity that changed so listeners can persist or publish selectively.
	Change struct {
		Kind ChangeKind
		ID   string
	}
)

// Ledger is the single source of truth for accounts, categories and
// transactions. Mutations keep account balances consistent and emit a
// Change to registered listeners; the ledger itself knows nothing about
// persistence. All operations are total: dangling references degrade to
// no-ops or fallback names, never errors.
type Ledger struct {
	mu           sync.Mutex
	transactions []Transaction
	accounts     []Account
	categories   []Category
	listeners    []func(Change)
}

// NewLedger builds a ledger from previously persisted snapshots plus the
// category seed set.
func NewLedger(transactions []Transaction, accounts []Account, categories []Category) *Ledger {
	return &Ledger{
		transactions: append([]Transaction(nil), transactions...),
		accounts:     append([]Account(nil), accounts...),
		categories:   append([]Category(nil), categories...),
	}
}

// Subscribe registers a listener invoked after every mutation. Listeners
// run outside the ledger lock, so they may call the snapshot accessors.
func (l *Ledger) Subscribe(fn func(Change)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.listeners = append(l.listeners, fn)
}

func (l *Ledger) notify(c Change) {
	l.mu.Lock()
	listeners := append([](func(Change))(nil), l.listeners...)
	l.mu.Unlock()
	for _, fn := range listeners {
		fn(c)
	}
}

// AddTransaction prepends t to the transaction sequence (newest first) and
// applies its balance effect to the referenced account: expenses decrement,
// income increments. A dangling account reference stores the transaction
// without a balance effect.
func (l *Ledger) AddTransaction(t Transaction) {
	l.mu.Lock()
	l.transactions = append([]Transaction{t}, l.transactions...)
	l.applyBalanceLocked(t, false)
	l.mu.Unlock()

	l.notify(Change{Kind: ChangeTransactionAdded, ID: t.ID})
}

// DeleteTransaction removes the transaction with the given id, reversing
// its balance effect using the originally stored amount and type. Unknown
// ids are a silent no-op.
func (l *Ledger) DeleteTransaction(id string) {
	l.mu.Lock()
	idx := -1
	for i, t := range l.transactions {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		l.mu.Unlock()
		return
	}
	t := l.transactions[idx]
	l.applyBalanceLocked(t, true)
	l.transactions = append(l.transactions[:idx], l.transactions[idx+1:]...)
	l.mu.Unlock()

	l.notify(Change{Kind: ChangeTransactionDeleted, ID: id})
}

func (l *Ledger) applyBalanceLocked(t Transaction, reverse bool) {
	for i := range l.accounts {
		if l.accounts[i].ID != t.AccountID {
			continue
		}
		delta := t.Amount
		if (t.Type == TransactionExpense) != reverse {
			delta = delta.Neg()
		}
		l.accounts[i].Balance = l.accounts[i].Balance.Add(delta)
		return
	}
}

// AddAccount appends a to the account collection. Id uniqueness is the
// caller's responsibility.
func (l *Ledger) AddAccount(a Account) {
	l.mu.Lock()
	l.accounts = append(l.accounts, a)
	l.mu.Unlock()

	l.notify(Change{Kind: ChangeAccountAdded, ID: a.ID})
}

// UpdateAccountBalance overwrites an account balance directly, bypassing
// transaction-derived computation. Unknown ids are a no-op.
func (l *Ledger) UpdateAccountBalance(id string, balance decimal.Decimal) {
	l.mu.Lock()
	found := false
	for i := range l.accounts {
		if l.accounts[i].ID == id {
			l.accounts[i].Balance = balance
			found = true
			break
		}
	}
	l.mu.Unlock()

	if found {
		l.notify(Change{Kind: ChangeBalanceUpdated, ID: id})
	}
}

// Transactions returns a copy of the transaction sequence, newest first.
func (l *Ledger) Transactions() []Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Transaction(nil), l.transactions...)
}

// Accounts returns a copy of the account collection.
func (l *Ledger) Accounts() []Account {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Account(nil), l.accounts...)
}

// Categories returns a copy of the category collection.
func (l *Ledger) Categories() []Category {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Category(nil), l.categories...)
}

// AccountName resolves an account id to its display name.
func (l *Ledger) AccountName(id string) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, a := range l.accounts {
		if a.ID == id {
			return a.Name
		}
	}
	return UnknownAccountName
}

// CategoryName resolves a category id to its display name.
func (l *Ledger) CategoryName(id string) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, c := range l.categories {
		if c.ID == id {
			return c.Name
		}
	}
	return UnknownCategoryName
}
