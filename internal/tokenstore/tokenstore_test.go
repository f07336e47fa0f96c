package tokenstore

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/me/invdash/internal/store"
	"github.com/me/invdash/pkg/model"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	kv, err := store.NewSQLiteKV(":memory:", logger)
	if err != nil {
		t.Fatalf("NewSQLiteKV failed: %v", err)
	}
	t.Cleanup(func() { kv.Close() })
	if err := kv.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	return New(kv, logger)
}

func TestStore_SaveLoadClear(t *testing.T) {
	ts := setupTestStore(t)
	ctx := context.Background()

	if got := ts.Load(ctx); got != nil {
		t.Fatalf("expected nil pair before save, got %+v", got)
	}

	if err := ts.Save(ctx, Pair{AccessToken: "T1", RefreshToken: "R1"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	pair := ts.Load(ctx)
	if pair == nil {
		t.Fatal("expected pair after save")
	}
	if pair.AccessToken != "T1" || pair.RefreshToken != "R1" {
		t.Errorf("unexpected pair: %+v", pair)
	}

	if err := ts.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if got := ts.Load(ctx); got != nil {
		t.Errorf("expected nil pair after clear, got %+v", got)
	}
}

func TestStore_Save_NoRefreshToken(t *testing.T) {
	ts := setupTestStore(t)
	ctx := context.Background()

	// A stale refresh token must not survive a login that issued none.
	if err := ts.Save(ctx, Pair{AccessToken: "T1", RefreshToken: "R1"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := ts.Save(ctx, Pair{AccessToken: "T2"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	pair := ts.Load(ctx)
	if pair == nil {
		t.Fatal("expected pair")
	}
	if pair.AccessToken != "T2" {
		t.Errorf("expected access token 'T2', got %q", pair.AccessToken)
	}
	if pair.RefreshToken != "" {
		t.Errorf("expected empty refresh token, got %q", pair.RefreshToken)
	}
}

func TestStore_SetAccessToken(t *testing.T) {
	ts := setupTestStore(t)
	ctx := context.Background()

	if err := ts.Save(ctx, Pair{AccessToken: "T1", RefreshToken: "R1"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := ts.SetAccessToken(ctx, "T2"); err != nil {
		t.Fatalf("SetAccessToken failed: %v", err)
	}

	pair := ts.Load(ctx)
	if pair.AccessToken != "T2" {
		t.Errorf("expected access token 'T2', got %q", pair.AccessToken)
	}
	if pair.RefreshToken != "R1" {
		t.Errorf("expected refresh token 'R1' to survive, got %q", pair.RefreshToken)
	}
}

func TestStore_UserCache(t *testing.T) {
	ts := setupTestStore(t)
	ctx := context.Background()

	if got := ts.LoadUser(ctx); got != nil {
		t.Fatalf("expected nil user before save, got %+v", got)
	}

	user := &model.User{ID: 1, Username: "alice", Email: "a@b.com", Role: "staff"}
	if err := ts.SaveUser(ctx, user); err != nil {
		t.Fatalf("SaveUser failed: %v", err)
	}

	got := ts.LoadUser(ctx)
	if got == nil {
		t.Fatal("expected cached user")
	}
	if got.ID != 1 || got.Email != "a@b.com" || got.Role != "staff" {
		t.Errorf("unexpected user: %+v", got)
	}

	if err := ts.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if got := ts.LoadUser(ctx); got != nil {
		t.Errorf("expected nil user after clear, got %+v", got)
	}
}

// failingKV simulates unavailable storage.
type failingKV struct{}

func (failingKV) Get(ctx context.Context, key string) (string, bool, error) {
	return "", false, errors.New("storage unavailable")
}
func (failingKV) Set(ctx context.Context, key, value string) error {
	return errors.New("storage unavailable")
}
func (failingKV) Delete(ctx context.Context, keys ...string) error {
	return errors.New("storage unavailable")
}
func (failingKV) Close() error                      { return nil }
func (failingKV) Migrate(ctx context.Context) error { return nil }

func TestStore_Load_StorageUnavailable(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ts := New(failingKV{}, logger)

	// Storage failure must read the same as "never logged in".
	if got := ts.Load(context.Background()); got != nil {
		t.Errorf("expected nil pair on storage failure, got %+v", got)
	}
	if got := ts.LoadUser(context.Background()); got != nil {
		t.Errorf("expected nil user on storage failure, got %+v", got)
	}
}
