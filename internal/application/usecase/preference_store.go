// Package usecase contains application use cases that orchestrate domain logic.
package usecase

import (
	"context"
	"errors"

	"github.com/bnema/themesync/internal/application/port"
	"github.com/bnema/themesync/internal/domain/entity"
	"github.com/bnema/themesync/internal/logging"
)

// PreferenceStore persists the declared preference on a best-effort basis.
// In-memory state stays authoritative for the session, so storage failures
// never reach the caller.
type PreferenceStore struct {
	kv     port.KeyValueStore
	mirror port.SchemeMirror
}

// NewPreferenceStore creates a store. kv and mirror may be nil, which makes
// the corresponding operations no-ops (no storage in this environment).
func NewPreferenceStore(kv port.KeyValueStore, mirror port.SchemeMirror) *PreferenceStore {
	return &PreferenceStore{kv: kv, mirror: mirror}
}

// Load returns the preference stored under key. Missing storage, read
// failures and unrecognized values all return def.
func (s *PreferenceStore) Load(ctx context.Context, key string, def entity.Preference) entity.Preference {
	log := logging.FromContext(ctx)

	if s.kv == nil {
		return def
	}

	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, port.ErrKeyNotFound) {
			log.Debug().Err(err).Str("key", key).Msg("preference storage unavailable, using default")
		}
		return def
	}

	pref, ok := entity.ParsePreference(raw)
	if !ok {
		log.Debug().Str("key", key).Str("value", raw).Msg("discarding unrecognized stored preference")
		return def
	}
	return pref
}

// Save stores value under key. Failures are logged and swallowed.
func (s *PreferenceStore) Save(ctx context.Context, key string, value entity.Preference) {
	if s.kv == nil || !value.Valid() {
		return
	}
	if err := s.kv.Set(ctx, key, string(value)); err != nil {
		logging.FromContext(ctx).Debug().Err(err).Str("key", key).Msg("failed to persist preference")
	}
}

// Mirror publishes the resolved scheme on the secondary channel.
// Failures are logged and swallowed.
func (s *PreferenceStore) Mirror(ctx context.Context, name string, scheme entity.Scheme) {
	if s.mirror == nil || !scheme.Valid() {
		return
	}
	if err := s.mirror.Mirror(ctx, name, scheme); err != nil {
		logging.FromContext(ctx).Debug().Err(err).Str("name", name).Msg("failed to mirror scheme")
	}
}
