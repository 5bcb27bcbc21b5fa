package session

import (
	"context"
	"testing"
	"time"

	"github.com/otcheredev/hms-console/internal/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheStorageNamespaces(t *testing.T) {
	ctx := context.Background()
	mc := cache.NewMemoryCache()
	t.Cleanup(func() { mc.Close() })

	a := NewCacheStorage(mc, "a", time.Hour)
	b := NewCacheStorage(mc, "b", time.Hour)

	require.NoError(t, a.Set(ctx, KeyToken, "tok-a"))
	require.NoError(t, b.Set(ctx, KeyToken, "tok-b"))

	raw, err := mc.Get(ctx, cache.SessionKey("a", KeyToken))
	require.NoError(t, err)
	assert.Equal(t, "tok-a", string(raw))

	require.NoError(t, a.Remove(ctx, KeyToken, KeyRole))
	_, ok, err := a.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.False(t, ok)

	v, ok, err := b.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok-b", v)
}

func TestCacheStorageTouchKeepsLogin(t *testing.T) {
	ctx := context.Background()
	mc := cache.NewMemoryCache()
	t.Cleanup(func() { mc.Close() })

	storage := NewCacheStorage(mc, "s", time.Hour)
	store := NewStore(storage)

	_, err := store.Login(ctx, RoleDoctor, "tok", LandingNone)
	require.NoError(t, err)
	require.NoError(t, storage.Touch(ctx))

	sess, err := store.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, Session{IsAuthenticated: true, Role: RoleDoctor, Token: "tok"}, sess)

	// touching a logged-out browser does not resurrect anything
	_, err = store.Logout(ctx)
	require.NoError(t, err)
	require.NoError(t, storage.Touch(ctx))
	sess, err = store.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, Session{}, sess)
}
