package colorscheme

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPollNotifier_SignalsAndStops(t *testing.T) {
	n := NewPollNotifier(5 * time.Millisecond)
	var count atomic.Int32

	require.NoError(t, n.Start(func() { count.Add(1) }))
	require.Error(t, n.Start(func() {}), "second start must fail")

	assert.Eventually(t, func() bool { return count.Load() >= 2 }, time.Second, 5*time.Millisecond)

	require.NoError(t, n.Stop())
	require.NoError(t, n.Stop())
	stopped := count.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, count.Load())
}

func TestFileNotifier_SignalsOnWatchedFile(t *testing.T) {
	dir := t.TempDir()
	settings := filepath.Join(dir, "settings.ini")
	other := filepath.Join(dir, "other.ini")

	n := NewFileNotifier(settings)
	require.True(t, n.Watchable())

	var count atomic.Int32
	require.NoError(t, n.Start(func() { count.Add(1) }))
	defer func() { _ = n.Stop() }()

	require.NoError(t, os.WriteFile(other, []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(settings, []byte("gtk-application-prefer-dark-theme=1\n"), 0o600))

	assert.Eventually(t, func() bool { return count.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestFileNotifier_NotWatchable(t *testing.T) {
	n := NewFileNotifier(filepath.Join(t.TempDir(), "missing", "settings.ini"))
	assert.False(t, n.Watchable())
	assert.Error(t, n.Start(func() {}))
	assert.NoError(t, n.Stop())
}

func TestSelectNotifier(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	events := SelectNotifier(ctx, true, time.Second, filepath.Join(dir, "settings.ini"))
	assert.Equal(t, "fsnotify", events.Name())

	poll := SelectNotifier(ctx, false, time.Second, filepath.Join(dir, "settings.ini"))
	assert.Equal(t, "poll", poll.Name())

	missing := SelectNotifier(ctx, true, time.Second, filepath.Join(dir, "nope", "settings.ini"))
	assert.Equal(t, "poll", missing.Name())
}
