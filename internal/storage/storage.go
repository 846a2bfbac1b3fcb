// Package storage provides the single-key persistence the appointment store is built on.
// Every backend behaves like a browser's local storage: opaque values addressed by string keys,
// each write replacing the whole value.
package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("key not found")

type KeyValue interface {
	// Get returns ErrNotFound when nothing is stored under key.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete is a no-op for absent keys.
	Delete(ctx context.Context, key string) error
}
