package ui

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/me/invdash/internal/api"
	"github.com/me/invdash/internal/authgw"
	"github.com/me/invdash/internal/session"
	"github.com/me/invdash/internal/store"
	"github.com/me/invdash/internal/tokenstore"
	"github.com/me/invdash/pkg/model"
)

type testUI struct {
	router chi.Router
	state  *session.State
	gw     *authgw.Gateway
}

// newTestUI builds the full UI stack against a backend URL with an
// in-memory token store.
func newTestUI(t *testing.T, backendURL string) *testUI {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	kv, err := store.NewSQLiteKV(":memory:", logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := kv.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate store: %v", err)
	}
	t.Cleanup(func() { kv.Close() })

	tokens := tokenstore.New(kv, logger)
	state := session.NewState()
	gw := authgw.New(backendURL, tokens, state, logger)
	apiClient := api.New(backendURL, tokens, gw, logger)

	u := New(state, gw, apiClient, logger)
	r := chi.NewRouter()
	u.RegisterRoutes(r)

	return &testUI{router: r, state: state, gw: gw}
}

// startBackend serves the endpoints the dashboard views read from.
func startBackend(t *testing.T) string {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "Invalid login credentials"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "T1",
			"refresh_token": "R1",
			"user":          map[string]any{"id": 1, "username": "amy", "role": "admin"},
		})
	})
	mux.HandleFunc("GET /products/count-total", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]int{"total_products": 12})
	})
	mux.HandleFunc("GET /sales/total", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"total_revenue": 1234.5, "total_sales": 7})
	})
	mux.HandleFunc("GET /products/count-by-category", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{{"category": "bikes", "count": 4}})
	})
	mux.HandleFunc("GET /sales/count-by-category", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{{"category": "bikes", "count": 3}})
	})
	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": 1, "name": "Road Bike", "category": "bikes", "price": 899.99, "stock_quantity": 4},
		})
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts.URL
}

func get(router chi.Router, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func postForm(router chi.Router, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGuard_BootstrappingShowsPlaceholder(t *testing.T) {
	tu := newTestUI(t, "http://unused.invalid")

	rec := get(tu.router, "/dashboard")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 while bootstrapping, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Loading") {
		t.Errorf("expected loading placeholder, got: %s", rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "" {
		t.Errorf("bootstrapping must not redirect, got Location %q", loc)
	}
}

func TestGuard_UnauthenticatedRedirectsWithNext(t *testing.T) {
	tu := newTestUI(t, "http://unused.invalid")
	tu.state.SetUnauthenticated()

	rec := get(tu.router, "/products?low=1")

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	want := "/login?next=" + url.QueryEscape("/products?low=1")
	if loc := rec.Header().Get("Location"); loc != want {
		t.Errorf("expected redirect to %q, got %q", want, loc)
	}
}

func TestGuard_AuthenticatedPassesThrough(t *testing.T) {
	backend := startBackend(t)
	tu := newTestUI(t, backend)
	tu.state.SetAuthenticated(&model.User{ID: 1, Username: "amy", Role: "admin"})

	rec := get(tu.router, "/dashboard")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Dashboard") || !strings.Contains(body, "12") {
		t.Errorf("expected dashboard content, got: %s", body)
	}
}

func TestGuard_StaffCannotOpenSettings(t *testing.T) {
	tu := newTestUI(t, "http://unused.invalid")
	tu.state.SetAuthenticated(&model.User{ID: 2, Username: "bob", Role: "staff"})

	rec := get(tu.router, "/settings")

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for staff, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Admin access required") {
		t.Errorf("expected forbidden page, got: %s", rec.Body.String())
	}
}

func TestLoginPage_RedirectsWhenAuthenticated(t *testing.T) {
	tu := newTestUI(t, "http://unused.invalid")
	tu.state.SetAuthenticated(&model.User{ID: 1, Username: "amy", Role: "admin"})

	rec := get(tu.router, "/login")

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/dashboard" {
		t.Errorf("expected redirect to /dashboard, got %q", loc)
	}
}

func TestLoginPost_Success(t *testing.T) {
	backend := startBackend(t)
	tu := newTestUI(t, backend)
	tu.state.SetUnauthenticated()

	rec := postForm(tu.router, "/login", url.Values{
		"email":    {"amy@shop.test"},
		"password": {"secret"},
		"next":     {"/sales"},
	})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/sales" {
		t.Errorf("expected redirect to /sales, got %q", loc)
	}
	if !tu.state.Snapshot().IsAuthenticated() {
		t.Error("expected authenticated session after login")
	}
}

func TestLoginPost_RejectsExternalNext(t *testing.T) {
	backend := startBackend(t)
	tu := newTestUI(t, backend)
	tu.state.SetUnauthenticated()

	rec := postForm(tu.router, "/login", url.Values{
		"email":    {"amy@shop.test"},
		"password": {"secret"},
		"next":     {"https://evil.example/phish"},
	})

	if loc := rec.Header().Get("Location"); loc != "/dashboard" {
		t.Errorf("external next must be discarded, got redirect to %q", loc)
	}
}

func TestLoginPost_InvalidCredentials(t *testing.T) {
	backend := startBackend(t)
	tu := newTestUI(t, backend)
	tu.state.SetUnauthenticated()

	rec := postForm(tu.router, "/login", url.Values{
		"email":    {"amy@shop.test"},
		"password": {"wrong"},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected re-rendered form, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid login credentials") {
		t.Errorf("expected backend message verbatim, got: %s", rec.Body.String())
	}
	if tu.state.Snapshot().IsAuthenticated() {
		t.Error("failed login must not authenticate the session")
	}
}

func TestLoginPost_NetworkFailure(t *testing.T) {
	backend := httptest.NewServer(http.NotFoundHandler())
	backendURL := backend.URL
	backend.Close() // connection refused from here on
	tu := newTestUI(t, backendURL)
	tu.state.SetUnauthenticated()

	rec := postForm(tu.router, "/login", url.Values{
		"email":    {"amy@shop.test"},
		"password": {"secret"},
	})

	if !strings.Contains(rec.Body.String(), "Something went wrong. Please try again.") {
		t.Errorf("expected generic network message, got: %s", rec.Body.String())
	}
}

func TestForgotPassword_GenericMessage(t *testing.T) {
	backend := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(backend.Close)
	tu := newTestUI(t, backend.URL)

	rec := postForm(tu.router, "/forgot-password", url.Values{"email": {"nobody@shop.test"}})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), authgw.PasswordResetMessage) {
		t.Errorf("expected generic reset message, got: %s", rec.Body.String())
	}
}

func TestSafeNext(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"/products", "/products"},
		{"/products?low=1", "/products?low=1"},
		{"https://evil.example", ""},
		{"//evil.example", ""},
		{"products", ""},
	}
	for _, tc := range cases {
		if got := safeNext(tc.in); got != tc.want {
			t.Errorf("safeNext(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
