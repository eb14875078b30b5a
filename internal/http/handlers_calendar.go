package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/akasha-nadeel/Budget-app/internal/core"
)

type calendarResponse struct {
	Date        string            `json:"date"`
	Mode        core.WindowMode   `json:"mode"`
	Stats       core.WindowTotals `json:"stats"`
	MarkedDates []string          `json:"markedDates"`
}

// handleCalendar returns window stats for the selected date plus markers
// for every day of the surrounding month that has transactions.
func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	date := time.Now()
	if v := strings.TrimSpace(r.URL.Query().Get("date")); v != "" {
		parsed, err := parseDate(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
		date = parsed
	}

	mode := core.WindowMonth
	if v := strings.TrimSpace(r.URL.Query().Get("mode")); v != "" {
		mode = core.WindowMode(strings.ToUpper(v))
		if !mode.Valid() {
			writeError(w, http.StatusBadRequest, "invalid mode, expected DAY, WEEK, MONTH or YEAR")
			return
		}
	}

	ledger := s.budget.Ledger()
	transactions := ledger.Transactions()
	categories := ledger.Categories()

	var marked []string
	first := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	for d := first; d.Month() == date.Month(); d = d.AddDate(0, 0, 1) {
		if core.HasTransactionsOnDate(transactions, d) {
			marked = append(marked, d.Format("2006-01-02"))
		}
	}

	writeJSON(w, http.StatusOK, calendarResponse{
		Date:        date.Format("2006-01-02"),
		Mode:        mode,
		Stats:       core.WindowStats(transactions, categories, date, mode),
		MarkedDates: marked,
	})
}
