// pkg/kvstore/kvstore.go
package kvstore

import "errors"

// ErrNotFound is returned by Get when a key has no value.
var ErrNotFound = errors.New("key not found")

// Store is a durable, synchronous string-keyed persistence abstraction.
// It backs the session token, the cached user snapshot, the notification
// read-id overlay and the wishlist. Every Set and Delete is durable before
// it returns; there is no batching.
//
// Values are opaque strings; callers layer their own serialization on top.
// Malformed persisted state is treated as empty by callers, never as an
// error (there is no schema versioning).
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}
