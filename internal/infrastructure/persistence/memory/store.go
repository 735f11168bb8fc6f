// Package memory provides a process-local key/value store.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/bnema/themesync/internal/application/port"
)

// ErrStorageDenied is returned while the store is in denied mode.
var ErrStorageDenied = errors.New("storage access denied")

// Store is an in-memory port.KeyValueStore. Deny switches it into a mode
// where every access fails, the way disabled browser storage behaves.
type Store struct {
	mu     sync.RWMutex
	values map[string]string
	denied bool
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{values: make(map[string]string)}
}

// Get implements port.KeyValueStore.
func (s *Store) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.denied {
		return "", ErrStorageDenied
	}
	v, ok := s.values[key]
	if !ok {
		return "", port.ErrKeyNotFound
	}
	return v, nil
}

// Set implements port.KeyValueStore.
func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.denied {
		return ErrStorageDenied
	}
	s.values[key] = value
	return nil
}

// Deny toggles denied mode.
func (s *Store) Deny(denied bool) {
	s.mu.Lock()
	s.denied = denied
	s.mu.Unlock()
}

var _ port.KeyValueStore = (*Store)(nil)
