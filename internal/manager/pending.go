package manager

import "speseadmin/internal/core"

// PendingKind tags a staged confirmation request.
type PendingKind int

const (
	PendingUpdate PendingKind = iota + 1
	PendingDelete
)

func (k PendingKind) String() string {
	switch k {
	case PendingUpdate:
		return "update"
	case PendingDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// PendingAction is a staged mutation awaiting explicit confirmation. It
// exists only between user intent and confirmation or cancellation, and
// carries the exact payload the confirmed call will send. Input is
// populated for updates only.
type PendingAction struct {
	Kind  PendingKind
	ID    string
	Title string
	Input core.ExpenseInput
}
