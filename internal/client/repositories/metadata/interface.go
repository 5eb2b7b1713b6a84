// Package metadata is the client's durable key/value storage: the Go
// counterpart of browser local storage. Values are opaque bytes.
package metadata

import (
	"context"
)

// Repository is implemented by the SQLite and Redis backends.
//
// Get returns (nil, nil) for a missing key. SetMany writes all pairs or
// none. Clear removes every key owned by the repository.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetMany(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
