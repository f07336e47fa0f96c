// Package session holds the process-wide session state: the current
// user identity and where the session is in its lifecycle.
//
// Valid transitions:
//
//	bootstrapping   -> authenticated    (stored token restored)
//	bootstrapping   -> unauthenticated  (no stored token)
//	unauthenticated -> authenticated    (login)
//	authenticated   -> unauthenticated  (logout, refresh failure)
//
// Bootstrapping is revisited only on a full process restart.
package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/me/invdash/pkg/model"
)

// Subscriber receives the new session snapshot after each state change.
type Subscriber func(model.Session)

// State is the single mutable session object. The auth gateway is its
// only writer; every other package reads snapshots or subscribes.
type State struct {
	mu          sync.Mutex
	current     model.Session
	subscribers map[string]Subscriber
}

// NewState creates a State in the bootstrapping status.
func NewState() *State {
	return &State{
		current:     model.Session{Status: model.StatusBootstrapping},
		subscribers: make(map[string]Subscriber),
	}
}

// Snapshot returns the current session value.
func (s *State) Snapshot() model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Subscribe registers fn to be called synchronously after every state
// change, with the new snapshot. The returned function cancels the
// subscription.
func (s *State) Subscribe(fn Subscriber) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.subscribers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// SetAuthenticated records user as the current identity. Invoked by the
// auth gateway only.
func (s *State) SetAuthenticated(user *model.User) {
	s.set(model.Session{User: user, Status: model.StatusAuthenticated})
}

// SetUnauthenticated clears the current identity. Invoked by the auth
// gateway only.
func (s *State) SetUnauthenticated() {
	s.set(model.Session{Status: model.StatusUnauthenticated})
}

func (s *State) set(next model.Session) {
	s.mu.Lock()
	s.current = next
	subs := make([]Subscriber, 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
}

// CanManageUsers reports whether the session may administer user
// accounts (add users, change roles).
func CanManageUsers(sess model.Session) bool {
	return sess.IsAdmin()
}

// CanRecordSales reports whether the session may record sales and edit
// the catalog. Any authenticated user qualifies.
func CanRecordSales(sess model.Session) bool {
	return sess.IsAuthenticated()
}
