package http

import (
	"net/http"

	"github.com/akasha-nadeel/Budget-app/internal/core"
	"github.com/shopspring/decimal"
)

type dashboardResponse struct {
	TotalBalance decimal.Decimal     `json:"totalBalance"`
	TotalSpent   decimal.Decimal     `json:"totalSpent"`
	Breakdown    core.Split          `json:"breakdown"`
	ByAccount    []core.AccountSpend `json:"byAccount"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ledger := s.budget.Ledger()
	transactions := ledger.Transactions()
	accounts := ledger.Accounts()
	categories := ledger.Categories()

	writeJSON(w, http.StatusOK, dashboardResponse{
		TotalBalance: core.TotalBalance(accounts),
		TotalSpent:   core.TotalSpent(transactions),
		Breakdown:    core.EssentialSplit(transactions, categories),
		ByAccount:    core.SpendingByAccount(transactions, accounts),
	})
}

type categoriesResponse struct {
	EssentialTotal    decimal.Decimal        `json:"essentialTotal"`
	NonEssentialTotal decimal.Decimal        `json:"nonEssentialTotal"`
	Breakdown         core.CategoryBreakdown `json:"breakdown"`
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	ledger := s.budget.Ledger()
	transactions := ledger.Transactions()
	categories := ledger.Categories()

	breakdown := core.SpendingByCategory(transactions, categories)
	essentialTotal := decimal.Zero
	for _, c := range breakdown.Essential {
		essentialTotal = essentialTotal.Add(c.Amount)
	}
	nonEssentialTotal := decimal.Zero
	for _, c := range breakdown.NonEssential {
		nonEssentialTotal = nonEssentialTotal.Add(c.Amount)
	}

	writeJSON(w, http.StatusOK, categoriesResponse{
		EssentialTotal:    essentialTotal,
		NonEssentialTotal: nonEssentialTotal,
		Breakdown:         breakdown,
	})
}
