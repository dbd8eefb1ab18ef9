package kvstore

import (
	"context"
	"errors"
)

// ErrClosed is returned by operations on a store after Close.
var ErrClosed = errors.New("kvstore: store is closed")

// KeyValueStore is a string key/value capability. Each Set replaces the whole value
// stored under a key; readers never observe a partially written value.
type KeyValueStore interface {
	// Get returns the value stored under key. found is false when the key was never set.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key string, value string) error
	Close() error
}
