package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenDenylist(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	client, err := NewCache(ctx, mr.Addr(), "", "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	denylist := NewTokenDenylist(client)

	revoked, err := denylist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, denylist.Revoke(ctx, "jti-1", time.Minute))
	revoked, err = denylist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	mr.FastForward(2 * time.Minute)
	revoked, err = denylist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked, "entry should expire with the token")
}

func TestTokenDenylist_IgnoresExpiredTokens(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()
	client, err := NewCache(ctx, mr.Addr(), "", "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	denylist := NewTokenDenylist(client)
	require.NoError(t, denylist.Revoke(ctx, "jti-2", 0))
	assert.False(t, mr.Exists(denylistPrefix+"jti-2"))
}

func TestNewCache_EmptyAddr(t *testing.T) {
	_, err := NewCache(context.Background(), "", "", "", 0)
	assert.Error(t, err)
}
