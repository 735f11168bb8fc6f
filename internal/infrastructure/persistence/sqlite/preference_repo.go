package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bnema/themesync/internal/application/port"
	"github.com/bnema/themesync/internal/logging"
)

type preferenceRepo struct {
	provider port.DatabaseProvider
}

// NewPreferenceRepository creates a SQLite-backed key/value store.
func NewPreferenceRepository(provider port.DatabaseProvider) port.KeyValueStore {
	return &preferenceRepo{provider: provider}
}

const (
	getPreferenceQuery = `SELECT value FROM preferences WHERE key = ?`
	setPreferenceQuery = `INSERT INTO preferences (key, value, updated_at)
VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
)

func (r *preferenceRepo) Get(ctx context.Context, key string) (string, error) {
	db, err := r.provider.DB(ctx)
	if err != nil {
		return "", err
	}

	var value string
	err = db.QueryRowContext(ctx, getPreferenceQuery, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", port.ErrKeyNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (r *preferenceRepo) Set(ctx context.Context, key, value string) error {
	log := logging.FromContext(ctx)
	log.Debug().Str("key", key).Str("value", value).Msg("setting preference")

	db, err := r.provider.DB(ctx)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, setPreferenceQuery, key, value)
	return err
}
