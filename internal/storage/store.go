package storage

import "context"

// Store is a durable string key/value store. Values are opaque to the store;
// the Adapter layers JSON encoding and default recovery on top.
type Store interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Get returns the stored value and whether the key exists
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Del(ctx context.Context, keys ...string) error
}
