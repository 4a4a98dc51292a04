package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/peterbourgon/diskv/v3"
)

type diskvRecord struct {
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DiskvRepository keeps each setting in its own file under a base directory.
type DiskvRepository struct {
	d *diskv.Diskv
}

func NewDiskvRepository(basePath string) *DiskvRepository {
	return &DiskvRepository{d: diskv.New(diskv.Options{
		BasePath:  basePath,
		Transform: func(string) []string { return []string{} },
		// No cache: the daemon and the UI write the same files.
		CacheSizeMax: 0,
	})}
}

func (r *DiskvRepository) GetSetting(ctx context.Context, key string) (Setting, error) {
	if err := ctx.Err(); err != nil {
		return Setting{}, err
	}
	raw, err := r.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Setting{}, ErrNotFound
		}
		return Setting{}, err
	}
	var rec diskvRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return Setting{}, fmt.Errorf("decode setting %s: %w", key, err)
	}
	return Setting{Key: key, Value: rec.Value, UpdatedAt: rec.UpdatedAt}, nil
}

func (r *DiskvRepository) PutSetting(ctx context.Context, in Setting) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := json.Marshal(diskvRecord{Value: in.Value, UpdatedAt: in.UpdatedAt.UTC()})
	if err != nil {
		return err
	}
	return r.d.WriteStream(in.Key, bytes.NewReader(raw), true)
}

// Close is a no-op; every write is synced to disk.
func (r *DiskvRepository) Close() error {
	return nil
}
