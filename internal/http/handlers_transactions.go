package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/akasha-nadeel/Budget-app/internal/core"
	applog "github.com/akasha-nadeel/Budget-app/internal/log"
)

type createTransactionRequest struct {
	Amount      json.Number `json:"amount"`
	Date        string      `json:"date"`
	Description string      `json:"description"`
	AccountID   string      `json:"accountId"`
	CategoryID  string      `json:"categoryId"`
	Type        string      `json:"type"`
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.budget.Ledger().Transactions())
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	amount, err := decimal.NewFromString(req.Amount.String())
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, core.ErrInvalidAmount.Error())
		return
	}

	date := time.Now()
	if req.Date != "" {
		date, err = parseDate(req.Date)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, core.ErrInvalidDate.Error())
			return
		}
	}

	txn := core.Transaction{
		ID:          uuid.NewString(),
		Amount:      amount,
		Date:        date,
		Description: sanitizeInput(req.Description),
		AccountID:   sanitizeInput(req.AccountID),
		CategoryID:  sanitizeInput(req.CategoryID),
		Type:        core.TransactionType(req.Type),
	}
	// Rejected input never reaches the ledger.
	if err := txn.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.budget.Ledger().AddTransaction(txn)

	s.logger.InfoContext(r.Context(), "Transaction recorded",
		applog.FieldTransactionID, txn.ID,
		applog.FieldAccountID, txn.AccountID,
		applog.FieldCategoryID, txn.CategoryID,
		applog.FieldAmount, txn.Amount.String(),
		applog.FieldOperation, "create")

	writeJSON(w, http.StatusCreated, txn)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	// Unknown ids are a silent no-op.
	s.budget.Ledger().DeleteTransaction(id)

	s.logger.InfoContext(r.Context(), "Transaction deleted",
		applog.FieldTransactionID, id,
		applog.FieldOperation, "delete")

	w.WriteHeader(http.StatusNoContent)
}
