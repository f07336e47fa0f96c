package ui

import (
	"context"
	"net/http"
	"net/url"

	"github.com/me/invdash/internal/session"
	"github.com/me/invdash/pkg/model"
)

// Context keys for session data.
type contextKey string

const sessionContextKey contextKey = "session"

// SessionFromContext retrieves the session snapshot placed in the
// request context by RequireSession.
func SessionFromContext(ctx context.Context) model.Session {
	sess, _ := ctx.Value(sessionContextKey).(model.Session)
	return sess
}

// RequireSession gates a protected subtree on the session state.
//
// While the session is still bootstrapping it renders a neutral
// placeholder — never a redirect, so a stored token is not flashed away
// before it has been checked. An unauthenticated visitor is redirected
// to the login page, carrying the originally requested path so login
// can return there. An authenticated request proceeds with the session
// snapshot in its context.
func (ui *UI) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := ui.state.Snapshot()

		switch sess.Status {
		case model.StatusBootstrapping:
			ui.render(w, "loading", map[string]any{"Title": "invdash"})
			return
		case model.StatusUnauthenticated:
			target := r.URL.Path
			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}
			http.Redirect(w, r, "/login?next="+url.QueryEscape(target), http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin ensures the session may manage users.
// Must be used after RequireSession.
func (ui *UI) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFromContext(r.Context())
		if !session.CanManageUsers(sess) {
			w.WriteHeader(http.StatusForbidden)
			ui.render(w, "forbidden", map[string]any{
				"Title":   "Forbidden - invdash",
				"Session": sess,
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
