package core

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// FallbackCategoryType is the classification applied to expense
// transactions whose category cannot be resolved. Ambiguous spending is
// counted against the non-essential bucket.
const FallbackCategoryType = CategoryNonEssential

const (
	WindowDay   WindowMode = "DAY"
	WindowWeek  WindowMode = "WEEK"
	WindowMonth WindowMode = "MONTH"
	WindowYear  WindowMode = "YEAR"
)

type (
	// WindowMode selects the date window for WindowStats.
	WindowMode string

	// Split is an essential vs non-essential breakdown of expense totals.
	Split struct {
		Essential    decimal.Decimal `json:"essential"`
		NonEssential decimal.Decimal `json:"nonEssential"`
	}

	// AccountSpend is the expense total grouped under one account name.
	AccountSpend struct {
		Name   string          `json:"name"`
		Amount decimal.Decimal `json:"value"`
	}

	// CategorySpend is the expense total for a single category.
	CategorySpend struct {
		ID     string          `json:"id"`
		Name   string          `json:"name"`
		Type   CategoryType    `json:"type"`
		Amount decimal.Decimal `json:"total"`
	}

	// CategoryBreakdown groups per-category totals by bucket, each sorted
	// by total descending.
	CategoryBreakdown struct {
		Essential    []CategorySpend `json:"essential"`
		NonEssential []CategorySpend `json:"nonEssential"`
	}

	// WindowTotals are the expense aggregates for one date window.
	WindowTotals struct {
		Total        decimal.Decimal `json:"total"`
		Essential    decimal.Decimal `json:"essential"`
		NonEssential decimal.Decimal `json:"nonEssential"`
	}
)

func (m WindowMode) Valid() bool {
	switch m {
	case WindowDay, WindowWeek, WindowMonth, WindowYear:
		return true
	}
	return false
}

// TotalSpent sums the amounts of all expense transactions, unfiltered by
// date.
func TotalSpent(transactions []Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range transactions {
		if t.Type == TransactionExpense {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// TotalBalance sums all account balances.
func TotalBalance(accounts []Account) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(a.Balance)
	}
	return total
}

// EssentialSplit classifies expense totals by category type. Expenses
// whose category is unknown fall into the FallbackCategoryType bucket.
func EssentialSplit(transactions []Transaction, categories []Category) Split {
	split := Split{Essential: decimal.Zero, NonEssential: decimal.Zero}
	types := categoryTypes(categories)
	for _, t := range transactions {
		if t.Type != TransactionExpense {
			continue
		}
		if ct, ok := types[t.CategoryID]; ok && ct == CategoryEssential {
			split.Essential = split.Essential.Add(t.Amount)
		} else {
			split.NonEssential = split.NonEssential.Add(t.Amount)
		}
	}
	return split
}

// SpendingByAccount groups expense totals by resolved account name, in
// order of first appearance in the transaction sequence. Accounts with no
// expenses are omitted; unresolved accounts group under "Unknown".
func SpendingByAccount(transactions []Transaction, accounts []Account) []AccountSpend {
	names := make(map[string]string, len(accounts))
	for _, a := range accounts {
		names[a.ID] = a.Name
	}

	totals := make(map[string]decimal.Decimal)
	var order []string
	for _, t := range transactions {
		if t.Type != TransactionExpense {
			continue
		}
		name, ok := names[t.AccountID]
		if !ok {
			name = "Unknown"
		}
		if _, seen := totals[name]; !seen {
			order = append(order, name)
		}
		totals[name] = totals[name].Add(t.Amount)
	}

	out := make([]AccountSpend, 0, len(order))
	for _, name := range order {
		out = append(out, AccountSpend{Name: name, Amount: totals[name]})
	}
	return out
}

// SpendingByCategory sums expenses per category and buckets the results by
// category type. Categories with a zero total are excluded. Within each
// bucket items are sorted by total descending; ties keep the category
// definition order.
func SpendingByCategory(transactions []Transaction, categories []Category) CategoryBreakdown {
	var breakdown CategoryBreakdown
	for _, cat := range categories {
		total := decimal.Zero
		for _, t := range transactions {
			if t.Type == TransactionExpense && t.CategoryID == cat.ID {
				total = total.Add(t.Amount)
			}
		}
		if !total.IsPositive() {
			continue
		}
		spend := CategorySpend{ID: cat.ID, Name: cat.Name, Type: cat.Type, Amount: total}
		if cat.Type == CategoryEssential {
			breakdown.Essential = append(breakdown.Essential, spend)
		} else {
			breakdown.NonEssential = append(breakdown.NonEssential, spend)
		}
	}

	byAmountDesc := func(items []CategorySpend) func(i, j int) bool {
		return func(i, j int) bool {
			return items[i].Amount.GreaterThan(items[j].Amount)
		}
	}
	sort.SliceStable(breakdown.Essential, byAmountDesc(breakdown.Essential))
	sort.SliceStable(breakdown.NonEssential, byAmountDesc(breakdown.NonEssential))
	return breakdown
}

// WindowStats computes expense totals for the window containing ref.
//
// DAY and MONTH match the calendar date of ref exactly; MONTH keeps the
// shipped day-level behavior of the calendar view. WEEK covers the
// Monday-start week of ref through the following Sunday. YEAR covers
// January 1 through December 31 of ref's year.
func WindowStats(transactions []Transaction, categories []Category, ref time.Time, mode WindowMode) WindowTotals {
	totals := WindowTotals{Total: decimal.Zero, Essential: decimal.Zero, NonEssential: decimal.Zero}
	types := categoryTypes(categories)
	for _, t := range transactions {
		if t.Type != TransactionExpense {
			continue
		}
		if !inWindow(t.Date, ref, mode) {
			continue
		}
		totals.Total = totals.Total.Add(t.Amount)
		if ct, ok := types[t.CategoryID]; ok && ct == CategoryEssential {
			totals.Essential = totals.Essential.Add(t.Amount)
		} else {
			totals.NonEssential = totals.NonEssential.Add(t.Amount)
		}
	}
	return totals
}

// HasTransactionsOnDate reports whether any transaction falls on the
// calendar date of the given day.
func HasTransactionsOnDate(transactions []Transaction, date time.Time) bool {
	for _, t := range transactions {
		if sameCalendarDay(t.Date, date) {
			return true
		}
	}
	return false
}

func inWindow(date, ref time.Time, mode WindowMode) bool {
	switch mode {
	case WindowWeek:
		start := weekStart(ref)
		end := start.AddDate(0, 0, 7)
		d := dayStart(date)
		return !d.Before(start) && d.Before(end)
	case WindowYear:
		return date.Year() == ref.Year()
	default:
		// MONTH intentionally matches the selected day only, same as DAY.
		return sameCalendarDay(date, ref)
	}
}

// weekStart returns midnight of the Monday of ref's week; a Sunday ref
// belongs to the week starting six days earlier.
func weekStart(ref time.Time) time.Time {
	offset := int(ref.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	return dayStart(ref).AddDate(0, 0, -offset)
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameCalendarDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func categoryTypes(categories []Category) map[string]CategoryType {
	types := make(map[string]CategoryType, len(categories))
	for _, c := range categories {
		types[c.ID] = c.Type
	}
	return types
}
