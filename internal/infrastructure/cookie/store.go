package cookie

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/bnema/themesync/internal/application/port"
	"github.com/bnema/themesync/internal/domain/entity"
)

// storeKeyPrefix namespaces mirror rows away from the preference key, which
// often shares the cookie's name.
const storeKeyPrefix = "cookie."

// StoreKey returns the key the mirror cookie named name is persisted under.
func StoreKey(name string) string {
	if name == "" {
		name = DefaultName
	}
	return storeKeyPrefix + name
}

// StoreMirror implements port.SchemeMirror by persisting the Set-Cookie line
// in durable key/value storage. Later processes (the bootstrap script
// generator, a server renderer) read it back with Cookie or Lookup.
type StoreMirror struct {
	kv     port.KeyValueStore
	secure bool
}

// NewStoreMirror creates a mirror over kv for origin. An https origin marks
// the cookie Secure.
func NewStoreMirror(kv port.KeyValueStore, origin string) (*StoreMirror, error) {
	if kv == nil {
		return nil, errors.New("key/value store cannot be nil")
	}
	secure := false
	if origin != "" {
		u, err := url.Parse(origin)
		if err != nil {
			return nil, fmt.Errorf("parse origin: %w", err)
		}
		secure = u.Scheme == "https"
	}
	return &StoreMirror{kv: kv, secure: secure}, nil
}

func (m *StoreMirror) build(name string, scheme entity.Scheme) *http.Cookie {
	c := New(name, scheme)
	c.Secure = m.secure
	return c
}

// Mirror implements port.SchemeMirror.
func (m *StoreMirror) Mirror(ctx context.Context, name string, scheme entity.Scheme) error {
	if !scheme.Valid() {
		return fmt.Errorf("refusing to mirror scheme %q", scheme)
	}
	return m.kv.Set(ctx, StoreKey(name), m.build(name, scheme).String())
}

// Cookie returns the last mirrored cookie named name.
func (m *StoreMirror) Cookie(ctx context.Context, name string) (*http.Cookie, error) {
	raw, err := m.kv.Get(ctx, StoreKey(name))
	if err != nil {
		return nil, err
	}
	c, err := http.ParseSetCookie(raw)
	if err != nil {
		return nil, fmt.Errorf("parse stored cookie %q: %w", name, err)
	}
	return c, nil
}

// Lookup returns the last mirrored scheme under name.
func (m *StoreMirror) Lookup(ctx context.Context, name string) (entity.Scheme, bool) {
	c, err := m.Cookie(ctx, name)
	if err != nil {
		return "", false
	}
	return entity.ParseScheme(c.Value)
}

var _ port.SchemeMirror = (*StoreMirror)(nil)
