package http

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/akasha-nadeel/Budget-app/internal/core"
	applog "github.com/akasha-nadeel/Budget-app/internal/log"
)

type createAccountRequest struct {
	Name    string      `json:"name"`
	Type    string      `json:"type"`
	Balance json.Number `json:"balance"`
}

type updateBalanceRequest struct {
	Balance json.Number `json:"balance"`
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.budget.Ledger().Accounts())
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	name := sanitizeInput(req.Name)
	if name == "" {
		writeError(w, http.StatusUnprocessableEntity, "account name cannot be empty")
		return
	}
	accType := core.AccountType(req.Type)
	if !accType.Valid() {
		writeError(w, http.StatusUnprocessableEntity, "invalid account type")
		return
	}

	balance := decimal.Zero
	if req.Balance != "" {
		parsed, err := decimal.NewFromString(req.Balance.String())
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid balance")
			return
		}
		balance = parsed
	}

	account := core.Account{
		ID:      "acc_" + uuid.NewString(),
		Name:    name,
		Type:    accType,
		Balance: balance,
	}
	s.budget.Ledger().AddAccount(account)

	s.logger.InfoContext(r.Context(), "Account created",
		applog.FieldAccountID, account.ID,
		applog.FieldOperation, "create")

	writeJSON(w, http.StatusCreated, account)
}

func (s *Server) handleUpdateBalance(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req updateBalanceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	balance, err := decimal.NewFromString(req.Balance.String())
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid balance")
		return
	}

	// Manual override; unknown ids are a no-op.
	s.budget.Ledger().UpdateAccountBalance(id, balance)

	s.logger.InfoContext(r.Context(), "Account balance overridden",
		applog.FieldAccountID, id,
		applog.FieldAmount, balance.String(),
		applog.FieldOperation, "update")

	w.WriteHeader(http.StatusNoContent)
}
