package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

const lockRetryDelay = 10 * time.Millisecond

// FileStore keeps every key in one JSON object on disk. A sibling .lock file
// serialises access between processes sharing the same state file.
type FileStore struct {
	path   string
	lock   *flock.Flock
	mu     sync.Mutex
	logger *slog.Logger
}

// Ensure FileStore implements Store interface
var _ Store = (*FileStore)(nil)

// NewFileStore creates a store backed by path. Missing parent directories are created.
func NewFileStore(path string, logger *slog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	return &FileStore{
		path:   path,
		lock:   flock.New(path + ".lock"),
		logger: logger,
	}, nil
}

// Path returns the state file location
func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Ping(ctx context.Context) error {
	_, err := os.Stat(filepath.Dir(f.path))
	if err != nil {
		return fmt.Errorf("state directory unavailable: %w", err)
	}
	return nil
}

func (f *FileStore) Close() error {
	return f.lock.Close()
}

func (f *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	locked, err := f.lock.TryRLockContext(ctx, lockRetryDelay)
	if err != nil || !locked {
		return "", false, fmt.Errorf("failed to acquire read lock: %w", err)
	}
	defer func() {
		_ = f.lock.Unlock()
	}()

	data, err := f.read()
	if err != nil {
		return "", false, err
	}
	value, ok := data[key]
	return value, ok, nil
}

func (f *FileStore) Set(ctx context.Context, key string, value string) error {
	return f.update(ctx, func(data map[string]string) {
		data[key] = value
	})
}

func (f *FileStore) Del(ctx context.Context, keys ...string) error {
	return f.update(ctx, func(data map[string]string) {
		for _, k := range keys {
			delete(data, k)
		}
	})
}

// update applies fn to the stored object under an exclusive lock
func (f *FileStore) update(ctx context.Context, fn func(map[string]string)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	locked, err := f.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil || !locked {
		return fmt.Errorf("failed to acquire write lock: %w", err)
	}
	defer func() {
		_ = f.lock.Unlock()
	}()

	data, err := f.read()
	if err != nil {
		// A corrupt state file would otherwise block every future write
		f.logger.Warn("Discarding unreadable state file", "path", f.path, "error", err)
		data = make(map[string]string)
	}
	fn(data)
	return f.write(data)
}

func (f *FileStore) read() (map[string]string, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}
	data := make(map[string]string)
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}
	return data, nil
}

func (f *FileStore) write(data map[string]string) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}
