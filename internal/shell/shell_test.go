package shell

import (
	"context"
	"testing"
	"time"

	"github.com/otcheredev/hms-console/internal/cache"
	"github.com/otcheredev/hms-console/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *session.Store {
	t.Helper()
	mc := cache.NewMemoryCache()
	t.Cleanup(func() { mc.Close() })
	return session.NewStore(session.NewCacheStorage(mc, "sid", time.Hour))
}

func TestMountGuardsOnce(t *testing.T) {
	ctx := context.Background()
	sh, err := New(ctx, "sid", newStore(t))
	require.NoError(t, err)

	target, redirected := sh.Mount("/admin/reports")
	assert.True(t, redirected)
	assert.Equal(t, "/", target)

	target, redirected = sh.Mount("/admin/reports")
	assert.False(t, redirected, "guard runs only on the first mount")
	assert.Equal(t, "/admin/reports", target)
}

func TestMountOpenRoute(t *testing.T) {
	sh, err := New(context.Background(), "sid", newStore(t))
	require.NoError(t, err)

	target, redirected := sh.Mount("/register")
	assert.False(t, redirected)
	assert.Equal(t, "/register", target)
}

func TestLoginLogoutRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	sh, err := New(ctx, "sid", store)
	require.NoError(t, err)
	assert.False(t, sh.Authenticated())

	path, err := sh.Login(ctx, session.RoleDoctor, "opaque-token", session.LandingNone)
	require.NoError(t, err)
	assert.Equal(t, "/doctor/dashboard", path)
	assert.True(t, sh.Authenticated())
	assert.Equal(t, "doctor", sh.DisplayName(), "opaque tokens fall back to the role")

	restored, err := New(ctx, "sid", store)
	require.NoError(t, err)
	_, redirected := restored.Mount("/doctor/profile")
	assert.False(t, redirected)
	assert.Equal(t, "opaque-token", restored.Token())

	path, err = restored.Logout(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/", path)
	assert.False(t, restored.Authenticated())

	again, err := New(ctx, "sid", store)
	require.NoError(t, err)
	assert.Equal(t, session.Session{}, again.Session())
}

func TestContext(t *testing.T) {
	sh, err := New(context.Background(), "sid", newStore(t))
	require.NoError(t, err)

	ctx := WithShell(context.Background(), sh)
	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, sh, got)

	_, ok = FromContext(context.Background())
	assert.False(t, ok)
}

func TestLoginMovesToRenewedSession(t *testing.T) {
	ctx := context.Background()
	mc := cache.NewMemoryCache()
	t.Cleanup(func() { mc.Close() })
	storeFor := func(id string) *session.Store {
		return session.NewStore(session.NewCacheStorage(mc, id, time.Hour))
	}

	sh, err := New(ctx, "before", storeFor("before"))
	require.NoError(t, err)
	sh.RenewOnLogin(func() (string, *session.Store) { return "after", storeFor("after") })

	_, err = sh.Login(ctx, session.RoleAdmin, "tok", session.LandingNone)
	require.NoError(t, err)
	assert.Equal(t, "after", sh.ID())

	renewed, err := storeFor("after").Restore(ctx)
	require.NoError(t, err)
	assert.True(t, renewed.IsAuthenticated)

	old, err := storeFor("before").Restore(ctx)
	require.NoError(t, err)
	assert.False(t, old.IsAuthenticated)
}
