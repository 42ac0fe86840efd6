// Package api implements the client for the remote general-expenses API.
// The server owns aggregation, pagination and persistence; this side only
// shapes requests and classifies failures.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"speseadmin/internal/core"
	"speseadmin/internal/log"
	"speseadmin/internal/session"
)

const errorBodyLimit = 64 << 10

// Client talks to the remote general-expenses API with a bearer token
// attached from the session store. A client with no base URL is disabled:
// it performs no network activity at all.
type Client struct {
	baseURL string
	httpc   *http.Client
	session *session.Store
	logger  *log.Logger
}

// PeriodSummary is the aggregation response for one period. DateRange is
// nil when the server omitted it; callers fall back to a locally computed
// range.
type PeriodSummary struct {
	DateRange *core.DateRange
	Groups    []core.PeriodGroup
}

func NewClient(baseURL string, sess *session.Store, timeout time.Duration, logger *log.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc: &http.Client{
			Timeout:   timeout,
			Transport: log.NewTransport(nil, logger),
		},
		session: sess,
		logger:  logger.WithComponent(log.ComponentAPI),
	}
}

// Enabled reports whether the client may touch the network.
func (c *Client) Enabled() bool {
	return c != nil && c.baseURL != ""
}

// PeriodSummary fetches the server-aggregated buckets for the period.
func (c *Client) PeriodSummary(ctx context.Context, p core.Period) (PeriodSummary, error) {
	q := url.Values{}
	q.Set("period", p.QueryValue())

	var resp periodResponse
	if err := c.do(ctx, http.MethodGet, "/api/general-expenses/period", q, nil, &resp); err != nil {
		return PeriodSummary{}, err
	}

	out := PeriodSummary{Groups: make([]core.PeriodGroup, 0, len(resp.Data))}
	for _, g := range resp.Data {
		out.Groups = append(out.Groups, core.PeriodGroup{
			Label: g.Period,
			Count: g.Count,
			Total: core.MoneyFromFloat(g.Total),
		})
	}
	if resp.DateRange != nil {
		rng, err := resp.DateRange.toRange()
		if err != nil {
			return PeriodSummary{}, fmt.Errorf("decode date range: %w", err)
		}
		out.DateRange = &rng
	}
	return out, nil
}

// ListExpenses fetches one page of raw records inside the range. It
// returns the page's records and the total page count the server reports.
func (c *Client) ListExpenses(ctx context.Context, rng core.DateRange, page, limit int) ([]core.Expense, int, error) {
	q := url.Values{}
	q.Set("startDate", rng.Start.Wire())
	q.Set("endDate", rng.End.Wire())
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	var resp listResponse
	if err := c.do(ctx, http.MethodGet, "/api/general-expenses", q, nil, &resp); err != nil {
		return nil, 0, err
	}

	expenses := make([]core.Expense, 0, len(resp.Data))
	for _, dto := range resp.Data {
		e, err := dto.toExpense()
		if err != nil {
			return nil, 0, fmt.Errorf("decode expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	return expenses, resp.Pagination.Pages, nil
}

// CreateExpense posts a new record.
func (c *Client) CreateExpense(ctx context.Context, in core.ExpenseInput) (core.Expense, error) {
	var dto expenseDTO
	if err := c.do(ctx, http.MethodPost, "/api/general-expenses", nil, inputBody(in), &dto); err != nil {
		return core.Expense{}, err
	}
	return dto.toExpense()
}

// UpdateExpense replaces the record with the given ID.
func (c *Client) UpdateExpense(ctx context.Context, id string, in core.ExpenseInput) (core.Expense, error) {
	var dto expenseDTO
	path := "/api/general-expenses/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodPut, path, nil, inputBody(in), &dto); err != nil {
		return core.Expense{}, err
	}
	return dto.toExpense()
}

// DeleteExpense removes the record with the given ID.
func (c *Client) DeleteExpense(ctx context.Context, id string) error {
	path := "/api/general-expenses/" + url.PathEscape(id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if !c.Enabled() {
		return errors.New("no API base URL configured")
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			c.logger.ErrorContext(ctx, "Failed to marshal request body",
				log.FieldMethod, method, log.FieldPath, path, log.FieldError, err.Error())
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		c.logger.ErrorContext(ctx, "Failed to build request",
			log.FieldMethod, method, log.FieldPath, path, log.FieldError, err.Error())
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	// Session gone. The body is not processed any further.
	if resp.StatusCode == http.StatusUnauthorized {
		return ErrSessionExpired
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &RequestError{
			StatusCode: resp.StatusCode,
			Message:    decodeErrorMessage(resp.Body),
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// decodeErrorMessage pulls the server-provided message out of an error
// body, accepting both {"error": ...} and {"message": ...} shapes.
func decodeErrorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, errorBodyLimit))
	if err != nil {
		return ""
	}
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if body.Error != "" {
		return body.Error
	}
	return body.Message
}
