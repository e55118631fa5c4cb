// Package kv provides the namespaced key-value persistence layer backing the
// record stores. Each namespace key holds one serialized collection; writes
// always replace the full payload.
package kv

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned when a namespace key has no stored payload.
var ErrKeyNotFound = errors.New("kv: key not found")

// Store abstracts durable key-value storage.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
