package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Dir stores each key as <dir>/<key>.json.
type Dir struct {
	dir string
}

// NewDir returns a Dir rooted at dir. The directory is created on first write.
func NewDir(dir string) *Dir {
	return &Dir{dir: dir}
}

func (d *Dir) path(key string) string {
	return filepath.Join(d.dir, filepath.Base(key)+".json")
}

func (d *Dir) Read(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(d.path(key)) // #nosec G304 -- key is sanitized
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// Write replaces the file atomically via a temp file and rename.
func (d *Dir) Write(_ context.Context, key string, data []byte) error {
	if err := os.MkdirAll(d.dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(d.dir, filepath.Base(key)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Chmod(0600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := os.Rename(tmpName, d.path(key)); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (d *Dir) Close() error { return nil }
