// Package ui is the web frontend of the dashboard: the login and
// password-reset pages, the route guard, and the protected views for
// products, sales, and user administration. All views consume the
// session core through its public operations; none of them mutate
// session state directly.
package ui

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/me/invdash/internal/api"
	"github.com/me/invdash/internal/authgw"
	"github.com/me/invdash/internal/session"
	"github.com/me/invdash/pkg/model"
)

// UI handles the web user interface.
type UI struct {
	state  *session.State
	gw     *authgw.Gateway
	api    *api.Client
	logger *slog.Logger
}

// New creates a UI bound to the session core.
func New(state *session.State, gw *authgw.Gateway, apiClient *api.Client, logger *slog.Logger) *UI {
	return &UI{
		state:  state,
		gw:     gw,
		api:    apiClient,
		logger: logger.With("component", "ui"),
	}
}

// HandleLoginPage renders the login form. An already authenticated
// visitor is sent straight to the dashboard.
func (ui *UI) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	if ui.state.Snapshot().IsAuthenticated() {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	ui.render(w, "login", map[string]any{
		"Title": "Login - invdash",
		"Next":  safeNext(r.URL.Query().Get("next")),
	})
}

// HandleLoginPost processes the login form.
func (ui *UI) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")
	next := safeNext(r.FormValue("next"))

	_, err := ui.gw.Login(r.Context(), email, password)
	if err != nil {
		ui.render(w, "login", map[string]any{
			"Title": "Login - invdash",
			"Next":  next,
			"Error": loginErrorText(err),
		})
		return
	}

	if next == "" {
		next = "/dashboard"
	}
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// HandleLogout ends the session and returns to the login page.
func (ui *UI) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ui.gw.Logout(r.Context())
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// HandleSignupPage renders the account creation form.
func (ui *UI) HandleSignupPage(w http.ResponseWriter, r *http.Request) {
	ui.render(w, "signup", map[string]any{"Title": "Sign up - invdash"})
}

// HandleSignupPost processes the signup form.
func (ui *UI) HandleSignupPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	err := ui.gw.Signup(r.Context(), r.FormValue("username"), r.FormValue("email"), r.FormValue("password"))
	if err != nil {
		ui.render(w, "signup", map[string]any{
			"Title": "Sign up - invdash",
			"Error": loginErrorText(err),
		})
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// HandleForgotPasswordPage renders the password reset form.
func (ui *UI) HandleForgotPasswordPage(w http.ResponseWriter, r *http.Request) {
	ui.render(w, "forgot", map[string]any{"Title": "Forgot password - invdash"})
}

// HandleForgotPasswordPost submits the reset request. The message shown
// is the gateway's generic one regardless of the email's existence.
func (ui *UI) HandleForgotPasswordPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	msg, err := ui.gw.RequestPasswordReset(r.Context(), r.FormValue("email"))
	data := map[string]any{"Title": "Forgot password - invdash"}
	if err != nil {
		data["Error"] = loginErrorText(err)
	} else {
		data["Message"] = msg
	}
	ui.render(w, "forgot", data)
}

// loginErrorText maps a gateway error to the text shown on the form.
// Credential rejections are surfaced verbatim; everything else gets the
// generic retry suggestion.
func loginErrorText(err error) string {
	var ce *model.CredentialError
	if errors.As(err, &ce) {
		return ce.Message
	}
	return "Something went wrong. Please try again."
}

// safeNext keeps redirect targets local to this application. Anything
// that is not a plain absolute path is discarded.
func safeNext(next string) string {
	if next == "" {
		return ""
	}
	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || u.Host != "" || next[0] != '/' {
		return ""
	}
	return next
}
