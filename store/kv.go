// Package store persists orders in a key-value backend, one entry per phone.
package store

import (
	"context"

	"github.com/pkg/errors"
)

// ErrNotFound is returned when a key has no entry
var ErrNotFound = errors.New("store: key not found")

// ErrExists is returned by Create when the key already has an entry
var ErrExists = errors.New("store: key already exists")

// KV is the persistent key-value store orders are written to
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Create writes value only when key has no entry, otherwise ErrExists
	Create(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
	Close() error
}
