package cachemanager

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newUpperCache(skip bool) (*ReadThroughCache[string, string, string], *int) {
	calls := 0
	cache := NewInMemoryCacheManager[string, string]("upper", DefaultExpiration, DefaultCleanupInterval)
	rt := NewReadThroughCache[string, string, string](
		cache,
		func(ctx context.Context, input string) (string, error) {
			calls++
			if input == "" {
				return "", errors.New("empty input")
			}
			return strings.ToUpper(input), nil
		},
		skip,
	)
	return rt, &calls
}

func TestReadThroughCache_Get_LoadsOnce(t *testing.T) {
	rt, calls := newUpperCache(false)

	for range 3 {
		got, err := rt.Get(context.Background(), "k", "hello", time.Minute)
		require.NoError(t, err)
		require.Equal(t, "HELLO", got)
	}
	require.Equal(t, 1, *calls)
}

func TestReadThroughCache_Get_WithCacheDisabled(t *testing.T) {
	rt, calls := newUpperCache(true)

	for range 2 {
		got, err := rt.Get(context.Background(), "k", "hello", time.Minute)
		require.NoError(t, err)
		require.Equal(t, "HELLO", got)
	}
	require.Equal(t, 2, *calls)
}

func TestReadThroughCache_ErrorsAreNotCached(t *testing.T) {
	rt, calls := newUpperCache(false)

	_, err := rt.Get(context.Background(), "k", "", time.Minute)
	require.Error(t, err)
	_, err = rt.GetWithRefresh(context.Background(), "k", "", time.Minute)
	require.Error(t, err)
	require.Equal(t, 2, *calls)
}

func TestReadThroughCache_GetWithRefresh(t *testing.T) {
	rt, calls := newUpperCache(false)

	got, err := rt.GetWithRefresh(context.Background(), "k", "abc", time.Minute)
	require.NoError(t, err)
	require.Equal(t, "ABC", got)

	got, err = rt.GetWithRefresh(context.Background(), "k", "ignored", time.Minute)
	require.NoError(t, err)
	require.Equal(t, "ABC", got)
	require.Equal(t, 1, *calls)
}

func TestReadThroughCache_Invalidate(t *testing.T) {
	rt, calls := newUpperCache(false)

	_, err := rt.Get(context.Background(), "k", "abc", time.Minute)
	require.NoError(t, err)
	require.NoError(t, rt.Invalidate(context.Background(), "k"))

	got, err := rt.Get(context.Background(), "k", "xyz", time.Minute)
	require.NoError(t, err)
	require.Equal(t, "XYZ", got)
	require.Equal(t, 2, *calls)
}
