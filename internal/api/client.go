// Package api is the authorized HTTP client for the inventory backend.
// It attaches the current access token to every call and implements the
// one-shot refresh-and-replay policy on token expiry. The CRUD methods
// for products, sales, and users live here as thin consumers of the
// wrapper.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/me/invdash/internal/tokenstore"
	"github.com/me/invdash/pkg/model"
)

// tokenExpiredDiscriminator is the error body the backend emits for an
// expired access token. Other 401 causes carry different bodies and
// must not trigger a refresh.
const tokenExpiredDiscriminator = "Token has expired"

// Refresher mints a new access token. Satisfied by *authgw.Gateway.
type Refresher interface {
	Refresh(ctx context.Context) (string, error)
}

// Client performs authorized calls against the backend.
type Client struct {
	baseURL   string
	tokens    *tokenstore.Store
	refresher Refresher
	client    *http.Client
	logger    *slog.Logger
}

// New creates an authorized client for the backend at baseURL.
func New(baseURL string, tokens *tokenstore.Store, refresher Refresher, logger *slog.Logger) *Client {
	return &Client{
		baseURL:   baseURL,
		tokens:    tokens,
		refresher: refresher,
		client:    &http.Client{Timeout: 10 * time.Second},
		logger:    logger.With("component", "api"),
	}
}

// SetHTTPClient overrides the HTTP client (useful in tests).
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.client = hc
}

// Do performs an authorized request and decodes the JSON response into
// out (which may be nil). If the backend signals an expired access
// token, the token is refreshed once and the request replayed once with
// the new token; the replay's outcome is returned as-is, even if it
// signals expiry again.
func (c *Client) Do(ctx context.Context, method, path string, payload, out any) error {
	reqID := uuid.NewString()
	logger := c.logger.With("request_id", reqID, "method", method, "path", path)

	token := ""
	if pair := c.tokens.Load(ctx); pair != nil {
		token = pair.AccessToken
	}

	status, body, err := c.doOnce(ctx, method, path, payload, token)
	if err != nil {
		return err
	}

	if isTokenExpired(status, body) {
		logger.Debug("access token expired, refreshing")

		newToken, err := c.refresher.Refresh(ctx)
		if err != nil {
			// The gateway has already torn the session down on a
			// rejected refresh token; surface that to the caller.
			return err
		}

		status, body, err = c.doOnce(ctx, method, path, payload, newToken)
		if err != nil {
			return err
		}
		logger.Debug("request replayed with refreshed token", "status", status)
	}

	if status < 200 || status >= 300 {
		return errorFromResponse(status, body)
	}

	if out != nil && len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("parse response (status %d): %w", status, err)
		}
	}
	return nil
}

// doOnce performs a single HTTP exchange. Transport failures are
// wrapped as network errors; HTTP-level failures are returned as
// status+body for the caller to classify.
func (c *Client) doOnce(ctx context.Context, method, path string, payload any, token string) (int, []byte, error) {
	var bodyReader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", model.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: read response: %v", model.ErrNetwork, err)
	}
	return resp.StatusCode, body, nil
}

// isTokenExpired reports whether the response is the backend's
// distinguishable expiry signal.
func isTokenExpired(status int, body []byte) bool {
	if status != http.StatusUnauthorized {
		return false
	}
	var eb struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &eb); err != nil {
		return false
	}
	return eb.Error == tokenExpiredDiscriminator
}

// errorFromResponse maps a non-2xx response to the error taxonomy.
func errorFromResponse(status int, body []byte) error {
	var eb struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &eb)
	msg := eb.Error
	if msg == "" {
		msg = eb.Message
	}

	switch status {
	case http.StatusForbidden:
		return &model.ForbiddenError{Message: msg}
	case http.StatusUnauthorized:
		if eb.Error == tokenExpiredDiscriminator {
			// Expiry signaled again after the single replay; the policy
			// forbids further refreshes within this call.
			return model.ErrTokenExpired
		}
		return &model.APIError{StatusCode: status, Message: msg}
	default:
		return &model.APIError{StatusCode: status, Message: msg}
	}
}
