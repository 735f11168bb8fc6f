package memory

import (
	"context"
	"testing"

	"github.com/bnema/themesync/internal/application/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	_, err := s.Get(ctx, "theme")
	require.ErrorIs(t, err, port.ErrKeyNotFound)

	require.NoError(t, s.Set(ctx, "theme", "dark"))
	v, err := s.Get(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", v)

	s.Deny(true)
	_, err = s.Get(ctx, "theme")
	require.ErrorIs(t, err, ErrStorageDenied)
	require.ErrorIs(t, s.Set(ctx, "theme", "light"), ErrStorageDenied)

	s.Deny(false)
	v, err = s.Get(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", v)
}
