package sqlite_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/bnema/themesync/internal/application/port"
	"github.com/bnema/themesync/internal/infrastructure/persistence/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCtx() context.Context {
	return context.Background()
}

func TestLazyDB_NotInitializedByDefault(t *testing.T) {
	lazy := sqlite.NewLazyDB(filepath.Join(t.TempDir(), "test.db"))

	assert.False(t, lazy.IsInitialized(), "LazyDB should not be initialized before DB() is called")
}

func TestLazyDB_ReturnsSameConnection(t *testing.T) {
	ctx := testCtx()
	lazy := sqlite.NewLazyDB(filepath.Join(t.TempDir(), "test.db"))

	db1, err := lazy.DB(ctx)
	require.NoError(t, err)
	assert.True(t, lazy.IsInitialized())

	db2, err := lazy.DB(ctx)
	require.NoError(t, err)
	assert.Same(t, db1, db2, "DB() should return the same connection instance")

	require.NoError(t, lazy.Close())
}

func TestLazyDB_ConcurrentAccess(t *testing.T) {
	ctx := testCtx()
	lazy := sqlite.NewLazyDB(filepath.Join(t.TempDir(), "test.db"))

	const goroutines = 10
	var wg sync.WaitGroup
	errs := make(chan error, goroutines)
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := lazy.DB(ctx)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	require.NoError(t, lazy.Close())
}

func TestLazyDB_CloseBeforeInit(t *testing.T) {
	lazy := sqlite.NewLazyDB(filepath.Join(t.TempDir(), "test.db"))
	assert.NoError(t, lazy.Close())
}

func TestLazyDB_InitFailureIsSticky(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	// The parent "directory" is a regular file, so MkdirAll fails.
	lazy := sqlite.NewLazyDB(filepath.Join(blocker, "sub", "test.db"))
	_, err := lazy.DB(testCtx())
	require.Error(t, err)
	_, err = lazy.DB(testCtx())
	require.Error(t, err)
	assert.False(t, lazy.IsInitialized())
}

func TestPreferenceRepository_RoundTrip(t *testing.T) {
	ctx := testCtx()
	dbPath := filepath.Join(t.TempDir(), "prefs.db")
	lazy := sqlite.NewLazyDB(dbPath)
	repo := sqlite.NewPreferenceRepository(lazy)

	_, err := repo.Get(ctx, "theme")
	require.ErrorIs(t, err, port.ErrKeyNotFound)

	require.NoError(t, repo.Set(ctx, "theme", "dark"))
	require.NoError(t, repo.Set(ctx, "theme", "light"))

	value, err := repo.Get(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, "light", value)
	require.NoError(t, lazy.Close())

	// A fresh process sees the stored value.
	reopened := sqlite.NewLazyDB(dbPath)
	value, err = sqlite.NewPreferenceRepository(reopened).Get(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, "light", value)
	require.NoError(t, reopened.Close())
}

func TestDatabaseFiles(t *testing.T) {
	assert.Equal(t, []string{"/x/db.sqlite", "/x/db.sqlite-wal", "/x/db.sqlite-journal"}, sqlite.DatabaseFiles("/x/db.sqlite"))
	assert.Nil(t, sqlite.DatabaseFiles(":memory:"))
	assert.Nil(t, sqlite.DatabaseFiles(""))
}
