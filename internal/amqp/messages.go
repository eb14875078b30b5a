package amqp

import (
	"encoding/json"
	"time"

	"github.com/akasha-nadeel/Budget-app/internal/core"
)

// LedgerChangeMessage describes one ledger mutation. It carries only the
// change kind and entity id; consumers read current state from storage.
type LedgerChangeMessage struct {
	Kind      core.ChangeKind `json:"kind"`
	EntityID  string          `json:"entity_id"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewLedgerChangeMessage creates a message for the given ledger change.
func NewLedgerChangeMessage(c core.Change) *LedgerChangeMessage {
	return &LedgerChangeMessage{
		Kind:      c.Kind,
		EntityID:  c.ID,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *LedgerChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerChangeMessageFromJSON creates a message from JSON bytes
func LedgerChangeMessageFromJSON(data []byte) (*LedgerChangeMessage, error) {
	var msg LedgerChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
