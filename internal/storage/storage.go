// Package storage persists the dashboard's small JSON documents.
//
// A Backend is a key/value store of opaque byte slices. Implementations are
// in-memory (tests), one file per key in a directory, a SQLite table and
// Redis. Document binds a backend to a single fixed key.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/rastogi30/Personalized-Dashboard/internal/metrics"
)

// ErrNotFound is returned by Read when nothing is stored under the key.
var ErrNotFound = errors.New("document not found")

// Backend kinds accepted by Open.
const (
	KindMemory = "memory"
	KindFile   = "file"
	KindSQLite = "sqlite"
	KindRedis  = "redis"
)

// Backend stores opaque values by key.
type Backend interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, data []byte) error
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Kind       string
	Dir        string
	SQLitePath string
	RedisAddr  string
}

// Open creates the backend named by opts.Kind.
func Open(ctx context.Context, opts Options) (Backend, error) {
	switch opts.Kind {
	case KindMemory:
		return NewMemory(), nil
	case KindFile, "":
		return NewDir(opts.Dir), nil
	case KindSQLite:
		return OpenSQLite(ctx, opts.SQLitePath)
	case KindRedis:
		return OpenRedis(ctx, opts.RedisAddr)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Kind)
	}
}

// Document is a single value stored under a fixed key.
type Document struct {
	backend Backend
	key     string
}

// NewDocument binds key on backend.
func NewDocument(backend Backend, key string) Document {
	return Document{backend: backend, key: key}
}

// Key returns the storage key.
func (d Document) Key() string {
	return d.key
}

// Read returns the stored bytes or ErrNotFound.
func (d Document) Read(ctx context.Context) ([]byte, error) {
	data, err := d.backend.Read(ctx, d.key)
	if err != nil && !errors.Is(err, ErrNotFound) {
		metrics.RecordStorageError(d.key, "read")
	}
	return data, err
}

// Write replaces the stored bytes.
func (d Document) Write(ctx context.Context, data []byte) error {
	if err := d.backend.Write(ctx, d.key, data); err != nil {
		metrics.RecordStorageError(d.key, "write")
		return err
	}
	return nil
}
