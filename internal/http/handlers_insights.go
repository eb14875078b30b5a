package http

import (
	"net/http"

	applog "github.com/akasha-nadeel/Budget-app/internal/log"
)

type insightsResponse struct {
	Insights string `json:"insights"`
}

// handleInsights triggers one insights generation. Only a single request
// may be in flight; concurrent triggers get 409 so the UI can keep its
// generate affordance disabled.
func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	ledger := s.budget.Ledger()

	text, ok := s.insights.Generate(r.Context(),
		ledger.Transactions(), ledger.Categories(), ledger.Accounts())
	if !ok {
		writeError(w, http.StatusConflict, "insights generation already in progress")
		return
	}

	s.logger.InfoContext(r.Context(), "Insights generated",
		applog.FieldOperation, "generate")

	writeJSON(w, http.StatusOK, insightsResponse{Insights: text})
}
