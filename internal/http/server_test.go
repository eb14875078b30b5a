package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/akasha-nadeel/Budget-app/internal/core"
	"github.com/akasha-nadeel/Budget-app/internal/insights"
	applog "github.com/akasha-nadeel/Budget-app/internal/log"
	"github.com/akasha-nadeel/Budget-app/internal/services"
	"github.com/akasha-nadeel/Budget-app/internal/storage"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	repo, err := storage.NewRepository(filepath.Join(t.TempDir(), "budget.db"))
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}

	ledger := core.NewLedger(nil, core.SeedAccounts(), core.SeedCategories())
	budget := services.NewBudgetService(ledger, repo, nil)
	t.Cleanup(func() { budget.Close() })

	logger := applog.New(applog.ComponentHTTP, applog.Config{})
	return NewServer(":0", budget, insights.New("", "gemini-2.0-flash"), logger)
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(dst); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestCreateTransaction(t *testing.T) {
	s := testServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/transactions",
		`{"amount": 500, "date": "2025-03-12", "description": "Lunch", "accountId": "acc_1", "categoryId": "cat_e_1", "type": "EXPENSE"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body: %s)", rec.Code, rec.Body)
	}

	var txn core.Transaction
	decodeBody(t, rec, &txn)
	if txn.ID == "" {
		t.Error("created transaction has no id")
	}
	if !txn.Amount.Equal(decimal.NewFromInt(500)) {
		t.Errorf("amount = %s, want 500", txn.Amount)
	}

	var dash dashboardResponse
	decodeBody(t, doRequest(t, s, http.MethodGet, "/api/dashboard", ""), &dash)
	if !dash.TotalBalance.Equal(decimal.NewFromInt(44500)) {
		t.Errorf("total balance = %s, want 44500", dash.TotalBalance)
	}
	if !dash.TotalSpent.Equal(decimal.NewFromInt(500)) {
		t.Errorf("total spent = %s, want 500", dash.TotalSpent)
	}
}

func TestCreateTransactionValidation(t *testing.T) {
	s := testServer(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{
			"zero amount",
			`{"amount": 0, "accountId": "acc_1", "categoryId": "cat_e_1", "type": "EXPENSE"}`,
			http.StatusUnprocessableEntity,
		},
		{
			"amount not a number",
			`{"amount": "abc", "accountId": "acc_1", "categoryId": "cat_e_1", "type": "EXPENSE"}`,
			http.StatusBadRequest,
		},
		{
			"missing account",
			`{"amount": 100, "categoryId": "cat_e_1", "type": "EXPENSE"}`,
			http.StatusUnprocessableEntity,
		},
		{
			"missing category",
			`{"amount": 100, "accountId": "acc_1", "type": "EXPENSE"}`,
			http.StatusUnprocessableEntity,
		},
		{
			"bad type",
			`{"amount": 100, "accountId": "acc_1", "categoryId": "cat_e_1", "type": "TRANSFER"}`,
			http.StatusUnprocessableEntity,
		},
		{
			"bad date",
			`{"amount": 100, "date": "12/03/2025", "accountId": "acc_1", "categoryId": "cat_e_1", "type": "EXPENSE"}`,
			http.StatusUnprocessableEntity,
		},
		{
			"malformed body",
			`{not json`,
			http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, s, http.MethodPost, "/api/transactions", tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body: %s)", rec.Code, tt.want, rec.Body)
			}
		})
	}

	// Rejected mutations must leave the ledger untouched.
	var txns []core.Transaction
	decodeBody(t, doRequest(t, s, http.MethodGet, "/api/transactions", ""), &txns)
	if len(txns) != 0 {
		t.Errorf("transaction count = %d, want 0 after rejected input", len(txns))
	}
}

func TestDeleteTransaction(t *testing.T) {
	s := testServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/transactions",
		`{"amount": 300, "date": "2025-03-12", "accountId": "acc_2", "categoryId": "cat_n_1", "type": "EXPENSE"}`)
	var txn core.Transaction
	decodeBody(t, rec, &txn)

	if rec := doRequest(t, s, http.MethodDelete, "/api/transactions/"+txn.ID, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", rec.Code)
	}

	var dash dashboardResponse
	decodeBody(t, doRequest(t, s, http.MethodGet, "/api/dashboard", ""), &dash)
	if !dash.TotalBalance.Equal(decimal.NewFromInt(45000)) {
		t.Errorf("total balance = %s, want restored 45000", dash.TotalBalance)
	}

	// Unknown ids are still 204.
	if rec := doRequest(t, s, http.MethodDelete, "/api/transactions/nope", ""); rec.Code != http.StatusNoContent {
		t.Errorf("delete unknown status = %d, want 204", rec.Code)
	}
}

func TestAccounts(t *testing.T) {
	s := testServer(t)

	t.Run("create", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodPost, "/api/accounts",
			`{"name": "NSB Savings", "type": "BANK_OTHER", "balance": 2000}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201 (body: %s)", rec.Code, rec.Body)
		}
		var acc core.Account
		decodeBody(t, rec, &acc)
		if !strings.HasPrefix(acc.ID, "acc_") {
			t.Errorf("account id = %s, want acc_ prefix", acc.ID)
		}
	})

	t.Run("create rejects bad type", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodPost, "/api/accounts", `{"name": "X", "type": "CRYPTO"}`)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("status = %d, want 422", rec.Code)
		}
	})

	t.Run("balance override", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodPut, "/api/accounts/acc_1/balance", `{"balance": 1000}`)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want 204", rec.Code)
		}

		var accounts []core.Account
		decodeBody(t, doRequest(t, s, http.MethodGet, "/api/accounts", ""), &accounts)
		for _, a := range accounts {
			if a.ID == "acc_1" && !a.Balance.Equal(decimal.NewFromInt(1000)) {
				t.Errorf("acc_1 balance = %s, want exactly 1000", a.Balance)
			}
		}
	})
}

func TestCalendar(t *testing.T) {
	s := testServer(t)

	doRequest(t, s, http.MethodPost, "/api/transactions",
		`{"amount": 200, "date": "2025-03-12", "accountId": "acc_1", "categoryId": "cat_e_1", "type": "EXPENSE"}`)
	doRequest(t, s, http.MethodPost, "/api/transactions",
		`{"amount": 300, "date": "2025-03-12", "accountId": "acc_1", "categoryId": "cat_e_1", "type": "EXPENSE"}`)

	t.Run("day stats", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/api/calendar?date=2025-03-12&mode=DAY", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var resp calendarResponse
		decodeBody(t, rec, &resp)
		if !resp.Stats.Total.Equal(decimal.NewFromInt(500)) ||
			!resp.Stats.Essential.Equal(decimal.NewFromInt(500)) ||
			!resp.Stats.NonEssential.Equal(decimal.Zero) {
			t.Errorf("stats = %+v, want total 500 essential 500 nonEssential 0", resp.Stats)
		}
		if len(resp.MarkedDates) != 1 || resp.MarkedDates[0] != "2025-03-12" {
			t.Errorf("marked dates = %v, want [2025-03-12]", resp.MarkedDates)
		}
	})

	t.Run("invalid mode", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/api/calendar?date=2025-03-12&mode=QUARTER", "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("invalid date", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/api/calendar?date=12-03-2025", "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestCategoriesEndpoint(t *testing.T) {
	s := testServer(t)

	doRequest(t, s, http.MethodPost, "/api/transactions",
		`{"amount": 400, "date": "2025-03-12", "accountId": "acc_1", "categoryId": "cat_e_2", "type": "EXPENSE"}`)
	doRequest(t, s, http.MethodPost, "/api/transactions",
		`{"amount": 150, "date": "2025-03-12", "accountId": "acc_1", "categoryId": "cat_n_3", "type": "EXPENSE"}`)

	var resp categoriesResponse
	decodeBody(t, doRequest(t, s, http.MethodGet, "/api/categories", ""), &resp)
	if !resp.EssentialTotal.Equal(decimal.NewFromInt(400)) {
		t.Errorf("essential total = %s, want 400", resp.EssentialTotal)
	}
	if !resp.NonEssentialTotal.Equal(decimal.NewFromInt(150)) {
		t.Errorf("non-essential total = %s, want 150", resp.NonEssentialTotal)
	}
	if len(resp.Breakdown.Essential) != 1 || resp.Breakdown.Essential[0].ID != "cat_e_2" {
		t.Errorf("essential breakdown = %+v, want single cat_e_2 entry", resp.Breakdown.Essential)
	}
}

func TestInsightsFallback(t *testing.T) {
	s := testServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/insights", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp insightsResponse
	decodeBody(t, rec, &resp)
	if resp.Insights != insights.MsgUnavailable {
		t.Errorf("insights = %q, want fixed unavailable message", resp.Insights)
	}
}

func TestMethodRouting(t *testing.T) {
	s := testServer(t)

	if rec := doRequest(t, s, http.MethodGet, "/api/insights", ""); rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /api/insights status = %d, want 405", rec.Code)
	}
	if rec := doRequest(t, s, http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Errorf("GET /healthz status = %d, want 200", rec.Code)
	}
}
