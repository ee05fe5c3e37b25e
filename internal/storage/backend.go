package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound       = errors.New("storage: not found")
	ErrUnknownBackend = errors.New("storage: unknown backend")
)

// Backend persists opaque values in named slots.
type Backend interface {
	// Get returns ErrNotFound when the slot has never been written.
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

type Kind string

const (
	KindSQLite Kind = "sqlite"
	KindFile   Kind = "file"
	KindMemory Kind = "memory"
)

// Open builds a backend by kind. For sqlite, path is the database file; for
// file, it is the directory holding one JSON document per slot.
func Open(kind Kind, path string) (Backend, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(string(kind)))) {
	case KindSQLite, "":
		return OpenSQLite(path)
	case KindFile:
		return NewFileBackend(path)
	case KindMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, kind)
	}
}
