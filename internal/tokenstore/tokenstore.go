// Package tokenstore persists the credential pair issued by the backend.
//
// It is pure storage: no validation of token shape or expiry happens
// here. A missing token and an unreadable store are deliberately
// indistinguishable to callers — both read as "never logged in".
package tokenstore

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/me/invdash/internal/store"
	"github.com/me/invdash/pkg/model"
)

// Storage keys. Fixed so that restarts of the same data directory see
// the same session.
const (
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
	keyUser         = "user"
)

// Pair holds the access/refresh tokens issued on login.
type Pair struct {
	AccessToken  string
	RefreshToken string
}

// Store wraps the key-value store with token-specific accessors.
type Store struct {
	kv     store.KV
	logger *slog.Logger
}

// New creates a token store backed by kv.
func New(kv store.KV, logger *slog.Logger) *Store {
	return &Store{kv: kv, logger: logger.With("component", "tokenstore")}
}

// Save persists both tokens of the pair.
func (s *Store) Save(ctx context.Context, pair Pair) error {
	if err := s.kv.Set(ctx, keyAccessToken, pair.AccessToken); err != nil {
		return err
	}
	if pair.RefreshToken == "" {
		// Login responses may omit the refresh token; drop any stale one.
		return s.kv.Delete(ctx, keyRefreshToken)
	}
	return s.kv.Set(ctx, keyRefreshToken, pair.RefreshToken)
}

// SetAccessToken replaces only the access token, keeping the refresh
// token. Used by the refresh flow.
func (s *Store) SetAccessToken(ctx context.Context, token string) error {
	return s.kv.Set(ctx, keyAccessToken, token)
}

// Load returns the stored pair, or nil when no access token is stored
// or the storage is unavailable.
func (s *Store) Load(ctx context.Context) *Pair {
	access, ok, err := s.kv.Get(ctx, keyAccessToken)
	if err != nil {
		s.logger.Warn("token storage unavailable", "error", err)
		return nil
	}
	if !ok || access == "" {
		return nil
	}

	refresh, _, err := s.kv.Get(ctx, keyRefreshToken)
	if err != nil {
		s.logger.Warn("token storage unavailable", "error", err)
		return nil
	}
	return &Pair{AccessToken: access, RefreshToken: refresh}
}

// Clear removes the tokens and the cached user record.
func (s *Store) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, keyAccessToken, keyRefreshToken, keyUser)
}

// SaveUser caches the user record returned on login, so a restart can
// restore the session without a server round-trip.
func (s *Store) SaveUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, keyUser, string(data))
}

// LoadUser returns the cached user record, or nil when absent,
// unreadable, or unparsable.
func (s *Store) LoadUser(ctx context.Context) *model.User {
	data, ok, err := s.kv.Get(ctx, keyUser)
	if err != nil || !ok {
		return nil
	}
	var user model.User
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		s.logger.Warn("cached user record unparsable", "error", err)
		return nil
	}
	return &user
}
