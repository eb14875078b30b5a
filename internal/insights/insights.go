package insights

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"google.golang.org/genai"

	"github.com/akasha-nadeel/Budget-app/internal/core"
)

// Fixed user-facing strings. Failures at this boundary never propagate as
// errors; callers always get a displayable string.
const (
	MsgUnavailable = "AI services are currently unavailable. Please check your API configuration."
	MsgFailed      = "Failed to retrieve insights. Please try again later."
	MsgEmpty       = "No insights could be generated at this time."
)

// maxDigestTransactions bounds the digest sent to the model.
const maxDigestTransactions = 50

// Service generates natural-language spending insights from a bounded
// transaction digest. One request may be in flight at a time.
type Service struct {
	apiKey string
	model  string
	busy   atomic.Bool
}

func New(apiKey, model string) *Service {
	return &Service{apiKey: apiKey, model: model}
}

// Generate produces an insights string for the given ledger snapshot. The
// second return is false when another generation is already in flight.
// All failure modes resolve to one of the fixed fallback strings.
func (s *Service) Generate(ctx context.Context, transactions []core.Transaction, categories []core.Category, accounts []core.Account) (string, bool) {
	if !s.busy.CompareAndSwap(false, true) {
		return "", false
	}
	defer s.busy.Store(false)

	if s.apiKey == "" {
		slog.WarnContext(ctx, "Insights requested without an API key configured")
		return MsgUnavailable, true
	}

	prompt := promptPreamble + buildDigest(transactions, categories, accounts)

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      s.apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		slog.ErrorContext(ctx, "Failed to create genai client", "error", err)
		return MsgFailed, true
	}

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, s.model, contents, nil)
	if err != nil {
		slog.ErrorContext(ctx, "Insights generation failed", "error", err, "model", s.model)
		return MsgFailed, true
	}

	text := resp.Text()
	if text == "" {
		return MsgEmpty, true
	}
	return text, true
}

// buildDigest renders one line per transaction, newest first, capped at
// maxDigestTransactions. Dangling references render as "Unknown".
func buildDigest(transactions []core.Transaction, categories []core.Category, accounts []core.Account) string {
	catByID := make(map[string]core.Category, len(categories))
	for _, c := range categories {
		catByID[c.ID] = c
	}
	accNames := make(map[string]string, len(accounts))
	for _, a := range accounts {
		accNames[a.ID] = a.Name
	}

	recent := transactions
	if len(recent) > maxDigestTransactions {
		recent = recent[:maxDigestTransactions]
	}

	var b strings.Builder
	for _, t := range recent {
		catName := "Unknown"
		if c, ok := catByID[t.CategoryID]; ok {
			catName = fmt.Sprintf("%s (%s)", c.Name, c.Type)
		}
		accName, ok := accNames[t.AccountID]
		if !ok {
			accName = "Unknown"
		}
		fmt.Fprintf(&b, "- %s: Rs. %s on %s (%s)\n",
			t.Date.Format("2006-01-02"), t.Amount.String(), catName, accName)
	}
	return b.String()
}
