package audit

import (
	"encoding/json"
	"time"
)

// Actions recorded on the audit trail.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// ExpenseAuditMessage records one successful mutation against the remote
// API. It carries only the action and the expense ID; consumers that need
// the full record fetch it from the API themselves.
type ExpenseAuditMessage struct {
	Action    string    `json:"action"`
	ExpenseID string    `json:"expense_id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewExpenseAuditMessage creates an audit message stamped with now.
func NewExpenseAuditMessage(action, expenseID string) *ExpenseAuditMessage {
	return &ExpenseAuditMessage{
		Action:    action,
		ExpenseID: expenseID,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ExpenseAuditMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpenseAuditMessageFromJSON creates a message from JSON bytes
func ExpenseAuditMessageFromJSON(data []byte) (*ExpenseAuditMessage, error) {
	var msg ExpenseAuditMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
