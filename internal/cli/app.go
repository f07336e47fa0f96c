package cli

import (
	"context"
	"log/slog"

	"github.com/me/invdash/internal/api"
	"github.com/me/invdash/internal/authgw"
	"github.com/me/invdash/internal/config"
	"github.com/me/invdash/internal/session"
	"github.com/me/invdash/internal/store"
	"github.com/me/invdash/internal/tokenstore"
)

// App wires the local store, the session state, and the backend clients
// for one invdash process.
type App struct {
	Config  config.Config
	KV      store.KV
	Tokens  *tokenstore.Store
	State   *session.State
	Gateway *authgw.Gateway
	API     *api.Client
}

// NewApp opens the local database and builds the client stack on top of it.
func NewApp(cfg config.Config, logger *slog.Logger) (*App, error) {
	dbPath, err := cfg.DBPath()
	if err != nil {
		return nil, err
	}

	kv, err := store.NewSQLiteKV(dbPath, logger)
	if err != nil {
		return nil, err
	}
	if err := kv.Migrate(context.Background()); err != nil {
		kv.Close()
		return nil, err
	}

	tokens := tokenstore.New(kv, logger)
	state := session.NewState()
	gw := authgw.New(cfg.Server, tokens, state, logger)
	apiClient := api.New(cfg.Server, tokens, gw, logger)

	return &App{
		Config:  cfg,
		KV:      kv,
		Tokens:  tokens,
		State:   state,
		Gateway: gw,
		API:     apiClient,
	}, nil
}

// Close releases the local database.
func (a *App) Close() error {
	return a.KV.Close()
}
