package model

// Status describes where the session is in its lifecycle.
type Status string

const (
	// StatusBootstrapping is the initial state, before the stored token
	// (if any) has been loaded.
	StatusBootstrapping Status = "bootstrapping"
	// StatusAuthenticated means a user identity is established.
	StatusAuthenticated Status = "authenticated"
	// StatusUnauthenticated means no user is logged in.
	StatusUnauthenticated Status = "unauthenticated"
)

// Session is a point-in-time snapshot of the current session.
//
// Invariant: Status == StatusAuthenticated exactly when User != nil.
type Session struct {
	User   *User  `json:"user"`
	Status Status `json:"status"`
}

// IsAuthenticated reports whether a user is logged in.
func (s Session) IsAuthenticated() bool {
	return s.Status == StatusAuthenticated
}

// IsAdmin reports whether the session belongs to an admin user.
func (s Session) IsAdmin() bool {
	return s.User != nil && s.User.IsAdmin()
}
