// Package authgw implements the auth gateway: login, signup, logout,
// token refresh, and the startup bootstrap that restores a persisted
// session. It is the single writer of the session state.
package authgw

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/me/invdash/internal/session"
	"github.com/me/invdash/internal/tokenstore"
	"github.com/me/invdash/pkg/model"
)

const (
	defaultTimeout = 10 * time.Second

	// Budget for the fire-and-forget logout notification. The local
	// logout never waits longer than this.
	logoutNotifyTimeout = 2 * time.Second
)

// PasswordResetMessage is reported for every accepted password-reset
// request, regardless of whether the email is registered.
const PasswordResetMessage = "Password reset instructions sent."

// Gateway performs authentication calls against the backend and owns
// all mutations of the session state.
type Gateway struct {
	baseURL string
	tokens  *tokenstore.Store
	state   *session.State
	client  *http.Client
	logger  *slog.Logger

	// Serializes state-mutating operations: two concurrent logins
	// resolve last-write-wins rather than interleaving their writes.
	mu sync.Mutex
}

// New creates a Gateway for the backend at baseURL.
func New(baseURL string, tokens *tokenstore.Store, state *session.State, logger *slog.Logger) *Gateway {
	return &Gateway{
		baseURL: baseURL,
		tokens:  tokens,
		state:   state,
		client:  &http.Client{Timeout: defaultTimeout},
		logger:  logger.With("component", "authgw"),
	}
}

// SetHTTPClient overrides the HTTP client (useful in tests).
func (g *Gateway) SetHTTPClient(c *http.Client) {
	g.client = c
}

// Bootstrap resolves the initial session status from persisted tokens.
// It never hits the network: a stored access token plus a cached user
// record is trusted as-is, and an expired token self-corrects on the
// first protected call via the refresh path.
func (g *Gateway) Bootstrap(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()

	pair := g.tokens.Load(ctx)
	if pair == nil {
		g.state.SetUnauthenticated()
		return
	}

	user := g.tokens.LoadUser(ctx)
	if user == nil {
		// A token without an identity cannot satisfy the
		// status==authenticated <=> user!=nil invariant.
		if err := g.tokens.Clear(ctx); err != nil {
			g.logger.Warn("clear orphaned tokens", "error", err)
		}
		g.state.SetUnauthenticated()
		return
	}

	g.logger.Info("session restored", "username", user.Username, "role", user.Role)
	g.state.SetAuthenticated(user)
}

type loginResponse struct {
	Message      string      `json:"message"`
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         *model.User `json:"user"`
}

// Login authenticates with the backend credential endpoint. On success
// the tokens and user record are persisted and the session becomes
// authenticated. Credential rejections and network failures mutate
// nothing.
func (g *Gateway) Login(ctx context.Context, email, password string) (*model.User, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	payload := map[string]string{"email": email, "password": password}
	resp, body, err := g.post(ctx, "/auth/login", payload, "")
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := errorMessage(body)
		if msg == "" {
			msg = "Invalid login credentials"
		}
		g.logger.Warn("login rejected", "status", resp.StatusCode)
		return nil, &model.CredentialError{Message: msg}
	}

	var lr loginResponse
	if err := json.Unmarshal(body, &lr); err != nil {
		return nil, fmt.Errorf("malformed login response: %w", err)
	}
	if lr.User == nil || lr.AccessToken == "" {
		return nil, fmt.Errorf("malformed login response: missing user or token")
	}
	if lr.User.Email == "" {
		lr.User.Email = email
	}

	if err := g.tokens.Save(ctx, tokenstore.Pair{
		AccessToken:  lr.AccessToken,
		RefreshToken: lr.RefreshToken,
	}); err != nil {
		return nil, fmt.Errorf("persist tokens: %w", err)
	}
	if err := g.tokens.SaveUser(ctx, lr.User); err != nil {
		g.logger.Warn("cache user record", "error", err)
	}

	g.state.SetAuthenticated(lr.User)
	g.logger.Info("login successful", "username", lr.User.Username, "role", lr.User.Role)
	return lr.User, nil
}

// Signup creates a new account. It does not log the new user in.
func (g *Gateway) Signup(ctx context.Context, username, email, password string) error {
	payload := map[string]string{"username": username, "email": email, "password": password}
	resp, body, err := g.post(ctx, "/auth/signup", payload, "")
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := errorMessage(body)
		if msg == "" {
			msg = "Signup failed"
		}
		return &model.CredentialError{Message: msg}
	}
	return nil
}

// Logout clears stored tokens and transitions to unauthenticated. The
// local transition always succeeds; the backend is notified on a best
// effort basis so it can blacklist the token.
func (g *Gateway) Logout(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()

	pair := g.tokens.Load(ctx)

	if err := g.tokens.Clear(ctx); err != nil {
		g.logger.Warn("clear tokens on logout", "error", err)
	}
	g.state.SetUnauthenticated()
	g.logger.Info("logged out")

	if pair == nil {
		return
	}
	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), logoutNotifyTimeout)
	defer cancel()
	if _, _, err := g.post(notifyCtx, "/auth/logout", nil, pair.AccessToken); err != nil {
		g.logger.Debug("logout notification failed", "error", err)
	}
}

type refreshResponse struct {
	AccessToken string `json:"access_token"`
}

// Refresh mints a new access token from the stored refresh token.
//
// A rejected (or absent) refresh token is terminal: tokens are cleared,
// the session becomes unauthenticated, and RefreshFailedError tells the
// caller to abandon the in-flight request. A transport failure is not
// terminal — the session outcome is unknown, so nothing is mutated.
func (g *Gateway) Refresh(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	pair := g.tokens.Load(ctx)
	if pair == nil || pair.RefreshToken == "" {
		return "", g.failRefresh(ctx, fmt.Errorf("no refresh token stored"))
	}

	resp, body, err := g.post(ctx, "/refresh", nil, pair.RefreshToken)
	if err != nil {
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", g.failRefresh(ctx, &model.APIError{StatusCode: resp.StatusCode, Message: errorMessage(body)})
	}

	var rr refreshResponse
	if err := json.Unmarshal(body, &rr); err != nil || rr.AccessToken == "" {
		return "", g.failRefresh(ctx, fmt.Errorf("malformed refresh response"))
	}

	if err := g.tokens.SetAccessToken(ctx, rr.AccessToken); err != nil {
		return "", fmt.Errorf("persist refreshed token: %w", err)
	}
	g.logger.Debug("access token refreshed")
	return rr.AccessToken, nil
}

// failRefresh performs the terminal transition for a rejected refresh
// token. The transition happens at most once: a session that is already
// unauthenticated is left untouched.
func (g *Gateway) failRefresh(ctx context.Context, cause error) error {
	if g.state.Snapshot().Status == model.StatusAuthenticated {
		if err := g.tokens.Clear(ctx); err != nil {
			g.logger.Warn("clear tokens after refresh failure", "error", err)
		}
		g.state.SetUnauthenticated()
		g.logger.Info("session expired", "cause", cause)
	}
	return &model.RefreshFailedError{Err: cause}
}

// RequestPasswordReset asks the backend to send reset instructions.
// Every server response maps to the same generic message so the caller
// cannot learn whether the email is registered. Only a transport
// failure is reported as an error.
func (g *Gateway) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	payload := map[string]string{"email": email}
	if _, _, err := g.post(ctx, "/auth/forgot-password", payload, ""); err != nil {
		return "", err
	}
	return PasswordResetMessage, nil
}

// post sends a JSON POST and reads the full response body. A transport
// failure is wrapped as a network error. The caller owns status-code
// interpretation.
func (g *Gateway) post(ctx context.Context, path string, payload any, bearer string) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bodyReader)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", model.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: read response: %v", model.ErrNetwork, err)
	}
	return resp, body, nil
}

// errorMessage extracts the human-readable message from an error body.
// The backend uses "message" for auth endpoints and "error" elsewhere.
func errorMessage(body []byte) string {
	var eb struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}
	if eb.Message != "" {
		return eb.Message
	}
	return eb.Error
}
