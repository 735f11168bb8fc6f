package port

import (
	"context"
	"errors"

	"github.com/bnema/themesync/internal/domain/entity"
)

// ErrKeyNotFound is returned by a KeyValueStore when no value is stored under a key.
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore is durable string storage for the declared preference.
type KeyValueStore interface {
	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}

// SchemeMirror publishes the resolved scheme on a channel a server-side
// renderer can read before any client code runs (a cookie).
type SchemeMirror interface {
	Mirror(ctx context.Context, name string, scheme entity.Scheme) error
}
