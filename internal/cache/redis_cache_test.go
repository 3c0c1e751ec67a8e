package cache

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedQuiz struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

func newTestCache(t *testing.T) (CacheService, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRedisCache(client, logger), server
}

func TestRedisCache_SetGet(t *testing.T) {
	c, server := newTestCache(t)
	ctx := context.Background()

	var got []cachedQuiz
	assert.ErrorIs(t, c.Get(ctx, KeyActiveQuizzes, &got), ErrCacheMiss)

	want := []cachedQuiz{{ID: 1, Title: "Fractions"}, {ID: 2, Title: "Verbs"}}
	require.NoError(t, c.Set(ctx, KeyActiveQuizzes, want, time.Minute))
	assert.True(t, server.Exists(keyPrefix+KeyActiveQuizzes))

	require.NoError(t, c.Get(ctx, KeyActiveQuizzes, &got))
	assert.Equal(t, want, got)

	server.FastForward(2 * time.Minute)
	assert.ErrorIs(t, c.Get(ctx, KeyActiveQuizzes, &got), ErrCacheMiss)
}

func TestRedisCache_UndecodableEntryIsMiss(t *testing.T) {
	c, server := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, server.Set(keyPrefix+"broken", "{not json"))

	var got []cachedQuiz
	assert.ErrorIs(t, c.Get(ctx, "broken", &got), ErrCacheMiss)
	assert.False(t, server.Exists(keyPrefix+"broken"))
}

func TestRedisCache_DeletePattern(t *testing.T) {
	c, server := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "quizzes:active", 1, 0))
	require.NoError(t, c.Set(ctx, "quizzes:teacher:3", 1, 0))
	require.NoError(t, c.Set(ctx, KeyRevokedTokens+"abc", true, 0))

	require.NoError(t, c.DeletePattern(ctx, "quizzes:*"))

	assert.False(t, server.Exists(keyPrefix+"quizzes:active"))
	assert.False(t, server.Exists(keyPrefix+"quizzes:teacher:3"))
	assert.True(t, server.Exists(keyPrefix+KeyRevokedTokens+"abc"))
}

func TestTokenStore(t *testing.T) {
	c, server := newTestCache(t)
	store := NewTokenStore(c)
	ctx := context.Background()

	revoked, err := store.IsRevoked(ctx, "token-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "token-1", time.Hour))
	require.NoError(t, store.Revoke(ctx, "token-2", 0))

	revoked, err = store.IsRevoked(ctx, "token-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = store.IsRevoked(ctx, "token-2")
	require.NoError(t, err)
	assert.False(t, revoked)

	server.FastForward(2 * time.Hour)
	revoked, err = store.IsRevoked(ctx, "token-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestNoopCache(t *testing.T) {
	c := NewNoopCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", 1, time.Minute))
	var v int
	assert.ErrorIs(t, c.Get(ctx, "k", &v), ErrCacheMiss)
	exists, err := c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, exists)
}
