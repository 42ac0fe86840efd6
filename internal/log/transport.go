package log

import (
	"net/http"
	"time"
)

// Transport is an http.RoundTripper that logs every outgoing request with
// method, path, status and duration. It wraps the API client's transport
// the way server middleware would wrap a handler.
type Transport struct {
	Base   http.RoundTripper
	Logger *Logger
}

// NewTransport wraps base with request logging. A nil base falls back to
// http.DefaultTransport.
func NewTransport(base http.RoundTripper, logger *Logger) *Transport {
	return &Transport{Base: base, Logger: logger}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	start := time.Now()
	resp, err := base.RoundTrip(req)
	elapsed := time.Since(start).Milliseconds()

	if t.Logger == nil {
		return resp, err
	}
	if err != nil {
		t.Logger.ErrorContext(req.Context(), "Request failed",
			FieldMethod, req.Method,
			FieldPath, req.URL.Path,
			FieldDuration, elapsed,
			FieldError, err.Error())
		return resp, err
	}
	t.Logger.DebugContext(req.Context(), "Request completed",
		FieldMethod, req.Method,
		FieldPath, req.URL.Path,
		FieldStatusCode, resp.StatusCode,
		FieldDuration, elapsed)
	return resp, err
}
