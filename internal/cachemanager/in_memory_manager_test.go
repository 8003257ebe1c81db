package cachemanager

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type segmentKey string

type cachedSegments struct {
	Dialect string
	Texts   []string
}

func TestNewInMemoryCacheManager(t *testing.T) {
	require.NotPanics(t, func() {
		NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval)
	})
}

func TestInMemoryCacheManager_GetExistingValue_StructType(t *testing.T) {
	cache := NewInMemoryCacheManager[segmentKey, cachedSegments]("segments", DefaultExpiration, DefaultCleanupInterval)
	want := cachedSegments{Dialect: "whatsapp", Texts: []string{"a ", "b"}}

	cache.Set(context.Background(), "whatsapp:a *b*", want, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "whatsapp:a *b*")
	require.True(t, ok)
	require.Equal(t, want, got)
}

func TestInMemoryCacheManager_GetMissing(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval)

	got, ok := cache.Get(context.Background(), "nope")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemoryCacheManager_GetWithInvalidValueType(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval)
	cache.cache.Set("body", 123, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "body")
	require.False(t, ok)
	require.Empty(t, got)
	require.Equal(t, uint64(1), cache.Stats().Misses)
}

func TestInMemoryCacheManager_GetWithRefresh(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval)

	_, ok := cache.GetWithRefresh(context.Background(), "body", time.Hour)
	require.False(t, ok)

	cache.Set(context.Background(), "body", "hi", 50*time.Millisecond)
	got, ok := cache.GetWithRefresh(context.Background(), "body", time.Hour)
	require.True(t, ok)
	require.Equal(t, "hi", got)

	_, expiry, found := cache.cache.GetWithExpiration("body")
	require.True(t, found)
	require.True(t, time.Until(expiry) > time.Minute)
}

func TestInMemoryCacheManager_Delete(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval)
	require.NoError(t, cache.Delete(context.Background()))

	cache.Set(context.Background(), "a", "1", DefaultExpiration)
	cache.Set(context.Background(), "b", "2", DefaultExpiration)
	require.NoError(t, cache.Delete(context.Background(), "a", "missing"))

	_, ok := cache.Get(context.Background(), "a")
	require.False(t, ok)
	got, ok := cache.Get(context.Background(), "b")
	require.True(t, ok)
	require.Equal(t, "2", got)
}

func TestInMemoryCacheManager_StatsAndFlush(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval)
	ctx := context.Background()

	cache.Set(ctx, "a", "1", DefaultExpiration)
	cache.Get(ctx, "a")
	cache.Get(ctx, "a")
	cache.Get(ctx, "b")

	require.Equal(t, Stats{Hits: 2, Misses: 1, Items: 1}, cache.Stats())

	require.NoError(t, cache.Flush(ctx))
	require.Equal(t, Stats{}, cache.Stats())
}
