package storage

import (
	"context"
	"fmt"
	"log/slog"
)

// Backend names accepted by Open
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

type Options struct {
	Backend  string
	Path     string // file backend
	RedisURL string // redis backend
	Logger   *slog.Logger
}

// Open creates the configured store and checks that it is reachable. For
// redis it waits for the server until ctx expires.
func Open(ctx context.Context, opts Options) (Store, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	switch opts.Backend {
	case BackendMemory:
		return NewMemoryStore(), nil

	case BackendFile:
		fs, err := NewFileStore(opts.Path, logger)
		if err != nil {
			return nil, err
		}
		if err := fs.Ping(ctx); err != nil {
			return nil, fmt.Errorf("checking state file: %w", err)
		}
		return fs, nil

	case BackendRedis:
		rs, err := NewRedisStore(opts.RedisURL, logger)
		if err != nil {
			return nil, err
		}
		if err := rs.WaitForConnection(ctx); err != nil {
			rs.Close()
			return nil, err
		}
		return rs, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}
