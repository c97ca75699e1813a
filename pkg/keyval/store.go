package keyval

import (
	"context"
	"errors"
)

// Store is the interface persistence backends implement.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get retrieves the value stored under key.
	// Returns (nil, nil) if the key doesn't exist.
	// Returns (data, nil) if found.
	// Returns (nil, err) on backend errors.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores data under key, overwriting any previous value.
	Set(ctx context.Context, key string, data []byte) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}

// ErrClosed is returned when operations are attempted on a closed store.
var ErrClosed = errors.New("keyval: store is closed")
