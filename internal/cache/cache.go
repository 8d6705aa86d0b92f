package cache

import (
	"context"
	"errors"
)

// Stash is a durable key/value slot for small opaque payloads. Values are
// raw bytes; callers own serialization.
type Stash interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// ErrMiss is returned by Get when the key has no value.
var ErrMiss = errors.New("cache miss")
