package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrNotFound       = errors.New("storage: not found")
	ErrUnknownBackend = errors.New("storage: unknown backend")
)

const (
	BackendSQLite = "sqlite"
	BackendDiskv  = "diskv"
)

// Repository is the raw durable key/value layer under the settings store.
type Repository interface {
	GetSetting(ctx context.Context, key string) (Setting, error)
	PutSetting(ctx context.Context, in Setting) error
	Close() error
}

// Open creates the repository for backend rooted at dir.
func Open(backend, dir string) (Repository, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("storage: data dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendSQLite:
		repo, err := OpenSQLite(filepath.Join(dir, "remindd.db"))
		if err != nil {
			return nil, err
		}
		if err := MigrateUp(repo.db); err != nil {
			_ = repo.Close()
			return nil, err
		}
		return repo, nil
	case BackendDiskv:
		return NewDiskvRepository(filepath.Join(dir, "settings")), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
