// internal/repository/rest/client.go
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/loopitalfinance/loopitalfrontend-sub001/internal/domain"
	"github.com/loopitalfinance/loopitalfrontend-sub001/internal/repository"
)

// TokenProvider supplies the current session token, or "" when no session
// is active. Injected so the client never owns token state.
type TokenProvider func() string

// Client is the HTTP implementation of repository.Gateway.
type Client struct {
	baseURL string
	http    *http.Client
	token   TokenProvider
	logger  *slog.Logger
}

// NewClient creates a Gateway talking to the given base URL.
func NewClient(baseURL string, timeout time.Duration, token TokenProvider, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		token:   token,
		logger:  logger,
	}
}

var _ repository.Gateway = (*Client)(nil)

// envelope is the standard response wrapper the API uses.
type envelope[T any] struct {
	Data T `json:"data"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("rest: marshal %s %s body: %w", method, path, err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("rest: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("rest: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		// Body is drained for connection reuse; its content is not trusted.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("rest: %s %s: unexpected status %d", method, path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("rest: decode %s %s response: %w", method, path, err)
	}
	return nil
}

func getList[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var resp envelope[[]T]
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) GetUser(ctx context.Context) (domain.RawUser, error) {
	var resp envelope[domain.RawUser]
	if err := c.do(ctx, http.MethodGet, "/api/users/me", nil, &resp); err != nil {
		return domain.RawUser{}, err
	}
	return resp.Data, nil
}

func (c *Client) GetProjects(ctx context.Context) ([]domain.Project, error) {
	return getList[domain.Project](ctx, c, "/api/projects")
}

func (c *Client) GetInvestments(ctx context.Context) ([]domain.Investment, error) {
	return getList[domain.Investment](ctx, c, "/api/investments")
}

func (c *Client) GetTransactions(ctx context.Context) ([]domain.Transaction, error) {
	return getList[domain.Transaction](ctx, c, "/api/transactions")
}

func (c *Client) GetNotifications(ctx context.Context) ([]domain.Notification, error) {
	return getList[domain.Notification](ctx, c, "/api/notifications")
}

func (c *Client) MarkNotificationsRead(ctx context.Context, scopeID domain.ID) error {
	path := "/api/notifications/read"
	if !scopeID.IsZero() {
		path += "?id=" + url.QueryEscape(scopeID.String())
	}
	return c.do(ctx, http.MethodPut, path, nil, nil)
}

func (c *Client) GetMyListings(ctx context.Context) ([]domain.Project, error) {
	return getList[domain.Project](ctx, c, "/api/projects/mine")
}

func (c *Client) GetRecentActivities(ctx context.Context) ([]domain.Activity, error) {
	return getList[domain.Activity](ctx, c, "/api/activities/recent")
}

func (c *Client) GetFundingStats(ctx context.Context) (*domain.FundingStats, error) {
	var resp envelope[domain.FundingStats]
	if err := c.do(ctx, http.MethodGet, "/api/stats/funding", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) GetProjectWithdrawals(ctx context.Context) ([]domain.WithdrawalRequest, error) {
	return getList[domain.WithdrawalRequest](ctx, c, "/api/withdrawals")
}

// withdrawalRequestBody is the request body for submitting a withdrawal.
type withdrawalRequestBody struct {
	ProjectID domain.ID       `json:"project_id"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason"`
	Phase     int             `json:"phase"`
}

func (c *Client) RequestProjectWithdrawal(ctx context.Context, projectID domain.ID, amount decimal.Decimal, reason string, phase int) error {
	body := withdrawalRequestBody{
		ProjectID: projectID,
		Amount:    amount,
		Reason:    reason,
		Phase:     phase,
	}
	return c.do(ctx, http.MethodPost, "/api/withdrawals", body, nil)
}
