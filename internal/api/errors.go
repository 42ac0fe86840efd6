package api

import (
	"errors"
	"fmt"
)

// ErrSessionExpired signals a 401 from the remote API. It is a hard
// session-expiry contract: the caller must stop processing the call and
// send the user back to the login page, never retry.
var ErrSessionExpired = errors.New("session expired")

// RequestError is a non-2xx response from the remote API. Message carries
// the server-provided error text when the body was decodable.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("request failed (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("request failed (%d)", e.StatusCode)
}

// UserMessage extracts the text to surface to the user: the server's own
// message for request errors when present, a generic fallback otherwise.
func UserMessage(err error) string {
	var re *RequestError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	return "operation failed, please try again"
}
