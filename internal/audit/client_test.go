package audit

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{0, 1 * time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{4, 16 * time.Second},
		{5, 30 * time.Second},  // capped at 30s
		{10, 30 * time.Second}, // capped at 30s
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("attempt_%d", tt.attempt), func(t *testing.T) {
			result := exponentialBackoff(tt.attempt)
			if result != tt.expected {
				t.Errorf("exponentialBackoff(%d) = %v, want %v", tt.attempt, result, tt.expected)
			}
		})
	}
}

func TestIsConnectionError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "connection error",
			err:      errors.New("connection refused"),
			expected: true,
		},
		{
			name:     "closed connection error",
			err:      errors.New("connection closed"),
			expected: true,
		},
		{
			name:     "EOF error",
			err:      errors.New("unexpected EOF"),
			expected: true,
		},
		{
			name:     "broken pipe error",
			err:      errors.New("broken pipe"),
			expected: true,
		},
		{
			name:     "closed network connection error",
			err:      errors.New("use of closed network connection"),
			expected: true,
		},
		{
			name:     "other error",
			err:      errors.New("some other error"),
			expected: false,
		},
		{
			name:     "validation error",
			err:      errors.New("invalid input"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := isConnectionError(tt.err)
			if result != tt.expected {
				t.Errorf("isConnectionError(%v) = %v, want %v", tt.err, result, tt.expected)
			}
		})
	}
}

func TestExpenseAuditMessageRoundTrip(t *testing.T) {
	msg := NewExpenseAuditMessage(ActionDelete, "42")
	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	decoded, err := ExpenseAuditMessageFromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if decoded.Action != ActionDelete || decoded.ExpenseID != "42" {
		t.Fatalf("decoded = %+v", decoded)
	}
	if decoded.Timestamp.IsZero() {
		t.Fatal("timestamp lost in round trip")
	}
}

func TestExpenseAuditMessageFromJSONRejectsGarbage(t *testing.T) {
	if _, err := ExpenseAuditMessageFromJSON([]byte("not json")); err == nil {
		t.Fatal("expected error")
	}
}

func TestDispatch(t *testing.T) {
	good, err := NewExpenseAuditMessage(ActionUpdate, "7").ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	tests := []struct {
		name        string
		body        []byte
		handlerErr  error
		wantAck     bool
		wantRequeue bool
		wantHandled bool
	}{
		{
			name:        "handled message is acked",
			body:        good,
			wantAck:     true,
			wantHandled: true,
		},
		{
			name:        "handler failure requeues",
			body:        good,
			handlerErr:  errors.New("trail unavailable"),
			wantRequeue: true,
			wantHandled: true,
		},
		{
			name: "garbage is dropped without requeue",
			body: []byte("not json"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var handled bool
			ack, requeue := dispatch(context.Background(), tt.body, func(msg *ExpenseAuditMessage) error {
				handled = true
				if msg.Action != ActionUpdate || msg.ExpenseID != "7" {
					t.Fatalf("msg = %+v", msg)
				}
				return tt.handlerErr
			})
			if ack != tt.wantAck || requeue != tt.wantRequeue {
				t.Fatalf("dispatch = ack %v requeue %v, want ack %v requeue %v",
					ack, requeue, tt.wantAck, tt.wantRequeue)
			}
			if handled != tt.wantHandled {
				t.Fatalf("handled = %v, want %v", handled, tt.wantHandled)
			}
		})
	}
}
