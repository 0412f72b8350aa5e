// Package kv is a byte-valued key/value table in the local SQLite database.
// It backs the session store.
package kv

import "context"

// Repository stores opaque values by key.
//
// Get returns (nil, nil) for a missing key. Delete of a missing key is not an
// error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
