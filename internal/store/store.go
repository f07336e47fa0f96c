package store

import "context"

// KV defines the durable key-value storage used for client state.
// It is the process-wide analog of the browser's localStorage: a small
// set of string values under fixed keys, scoped to the local data
// directory.
type KV interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes the given keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	// Lifecycle
	Close() error
	Migrate(ctx context.Context) error
}
