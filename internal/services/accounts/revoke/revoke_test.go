package revoke

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevokeLifecycle(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	l := New(rdb)
	ctx := context.Background()

	ok, err := l.Revoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, l.Revoke(ctx, "jti-1", time.Now().Add(10*time.Minute)))
	ok, err = l.Revoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.InDelta(t, (10 * time.Minute).Seconds(), mr.TTL(Key("jti-1")).Seconds(), 2)

	mr.FastForward(11 * time.Minute)
	ok, _ = l.Revoked(ctx, "jti-1")
	assert.False(t, ok, "revocation ends with the token")

	require.NoError(t, l.Revoke(ctx, "jti-2", time.Now().Add(-time.Minute)))
	assert.False(t, mr.Exists(Key("jti-2")), "expired token needs no entry")

	require.NoError(t, l.Revoke(ctx, "jti-3", time.Time{}))
	assert.Equal(t, maxTTL, mr.TTL(Key("jti-3")))
}

func TestRedisErrors(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	l := New(rdb)
	mr.Close()

	_, err := l.Revoked(context.Background(), "jti-1")
	assert.Error(t, err)
	assert.Error(t, l.Revoke(context.Background(), "jti-1", time.Now().Add(time.Minute)))
}

func TestTokenID(t *testing.T) {
	assert.Equal(t, "jti-1", TokenID("jti-1", "raw"))
	d := TokenID("", "header.payload.sig")
	assert.True(t, strings.HasPrefix(d, "sha256:"))
	assert.NotContains(t, d, "payload")
	assert.Equal(t, d, TokenID("", "header.payload.sig"))
}

func TestNoop(t *testing.T) {
	l := New(nil)
	require.IsType(t, Noop{}, l)
	require.NoError(t, l.Revoke(context.Background(), "x", time.Now().Add(time.Hour)))
	ok, err := l.Revoked(context.Background(), "x")
	assert.NoError(t, err)
	assert.False(t, ok)
}
