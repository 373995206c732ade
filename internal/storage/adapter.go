package storage

import (
	"context"
	"encoding/json"
	"log/slog"
)

// Adapter reads and writes JSON-encoded values in a Store. Reads recover to a
// caller-supplied default and writes are fire-and-forget: neither direction
// ever returns an error to the caller. Failures are logged as warnings.
type Adapter struct {
	store  Store
	logger *slog.Logger
}

// NewAdapter wraps store
func NewAdapter(store Store, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{store: store, logger: logger}
}

// Store returns the underlying key/value store
func (a *Adapter) Store() Store {
	return a.store
}

// Get decodes the value stored under key into a T. A missing key, a store
// error or malformed content all yield def.
func Get[T any](ctx context.Context, a *Adapter, key string, def T) T {
	raw, ok, err := a.store.Get(ctx, key)
	if err != nil {
		a.logger.Warn("Failed to read stored value", "key", key, "error", err)
		return def
	}
	if !ok {
		return def
	}

	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		a.logger.Warn("Failed to parse stored value", "key", key, "error", err)
		return def
	}
	return value
}

// Set JSON-encodes value and stores it under key
func Set[T any](ctx context.Context, a *Adapter, key string, value T) {
	data, err := json.Marshal(value)
	if err != nil {
		a.logger.Warn("Failed to encode value for storage", "key", key, "error", err)
		return
	}
	if err := a.store.Set(ctx, key, string(data)); err != nil {
		a.logger.Warn("Failed to save value", "key", key, "error", err)
	}
}

// Remove deletes keys, logging rather than returning failures
func (a *Adapter) Remove(ctx context.Context, keys ...string) {
	if err := a.store.Del(ctx, keys...); err != nil {
		a.logger.Warn("Failed to remove stored values", "keys", keys, "error", err)
	}
}

// ClearAll removes every key this application owns
func (a *Adapter) ClearAll(ctx context.Context) {
	a.Remove(ctx, AllKeys...)
}
