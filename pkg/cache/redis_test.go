package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Client {
	t.Helper()
	mr := miniredis.RunT(t)

	client, err := NewClient("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return client
}

func TestSetAndGet(t *testing.T) {
	client := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "key", "value", time.Minute))

	got, err := client.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "value", got)
}

func TestGet_MissingKeyReturnsEmpty(t *testing.T) {
	client := newTestCache(t)

	got, err := client.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDelete(t *testing.T) {
	client := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "key", "value", 0))
	require.NoError(t, client.Delete(ctx, "key"))

	exists, err := client.Exists(ctx, "key")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestExists(t *testing.T) {
	client := newTestCache(t)
	ctx := context.Background()

	exists, err := client.Exists(ctx, "key")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, client.Set(ctx, "key", "value", 0))

	exists, err = client.Exists(ctx, "key")
	require.NoError(t, err)
	assert.True(t, exists)
}
