package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	AccountCash        AccountType = "CASH"
	AccountBankBOC     AccountType = "BANK_BOC"
	AccountBankPeoples AccountType = "BANK_PEOPLES"
	AccountBankOther   AccountType = "BANK_OTHER"
)

const (
	CategoryEssential    CategoryType = "ESSENTIAL"
	CategoryNonEssential CategoryType = "NON_ESSENTIAL"
)

const (
	TransactionExpense TransactionType = "EXPENSE"
	TransactionIncome  TransactionType = "INCOME"
)

// Fallback display names for dangling account/category references.
const (
	UnknownAccountName  = "Unknown Account"
	UnknownCategoryName = "Unknown Category"
)

type (
	AccountType     string
	CategoryType    string
	TransactionType string

	// Account is a money source (cash or bank-like) with a tracked balance.
	// The balance reflects every non-deleted transaction applied since
	// creation or since the last manual override.
	Account struct {
		ID      string          `json:"id"`
		Name    string          `json:"name"`
		Type    AccountType     `json:"type"`
		Balance decimal.Decimal `json:"balance"`
	}

	// Category classifies spending as essential or non-essential.
	Category struct {
		ID   string       `json:"id"`
		Name string       `json:"name"`
		Type CategoryType `json:"type"`
	}

	// Transaction is immutable once recorded; the only lifecycle operation
	// beyond creation is deletion, which reverses its balance effect.
	Transaction struct {
		ID          string          `json:"id"`
		Amount      decimal.Decimal `json:"amount"`
		Date        time.Time       `json:"date"`
		Description string          `json:"description"`
		AccountID   string          `json:"accountId"`
		CategoryID  string          `json:"categoryId"`
		Type        TransactionType `json:"type"`
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidDate     = errors.New("invalid date")
	ErrMissingAccount  = errors.New("no account selected")
	ErrMissingCategory = errors.New("no category selected")
	ErrInvalidTxnType  = errors.New("invalid transaction type")
)

func (t TransactionType) Valid() bool {
	return t == TransactionExpense || t == TransactionIncome
}

func (t AccountType) Valid() bool {
	switch t {
	case AccountCash, AccountBankBOC, AccountBankPeoples, AccountBankOther:
		return true
	}
	return false
}

// Validate enforces the input rules applied before a transaction is
// accepted. Invalid input never reaches the ledger.
func (t Transaction) Validate() error {
	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if t.Date.IsZero() {
		return ErrInvalidDate
	}
	if strings.TrimSpace(t.AccountID) == "" {
		return ErrMissingAccount
	}
	if strings.TrimSpace(t.CategoryID) == "" {
		return ErrMissingCategory
	}
	if !t.Type.Valid() {
		return ErrInvalidTxnType
	}
	return nil
}

// SeedAccounts returns the built-in account set used when no persisted
// accounts exist.
func SeedAccounts() []Account {
	return []Account{
		{ID: "acc_1", Name: "Wallet Cash", Type: AccountCash, Balance: decimal.NewFromInt(5000)},
		{ID: "acc_2", Name: "BOC Account", Type: AccountBankBOC, Balance: decimal.NewFromInt(25000)},
		{ID: "acc_3", Name: "People's Bank", Type: AccountBankPeoples, Balance: decimal.NewFromInt(15000)},
	}
}

// SeedCategories returns the fixed category set. Categories are never
// persisted; this set is re-seeded on every startup. Display names may
// repeat across buckets ("Transport", "Other"); identity is the id.
func SeedCategories() []Category {
	return []Category{
		{ID: "cat_e_1", Name: "Food/Dining", Type: CategoryEssential},
		{ID: "cat_e_2", Name: "Transport", Type: CategoryEssential},
		{ID: "cat_e_3", Name: "University", Type: CategoryEssential},
		{ID: "cat_e_4", Name: "Other", Type: CategoryEssential},
		{ID: "cat_n_1", Name: "Passion", Type: CategoryNonEssential},
		{ID: "cat_n_2", Name: "Foods", Type: CategoryNonEssential},
		{ID: "cat_n_3", Name: "Transport", Type: CategoryNonEssential},
		{ID: "cat_n_4", Name: "Other", Type: CategoryNonEssential},
	}
}
