package mutation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrFetchCachesUntilInvalidated(t *testing.T) {
	cache := NewCache()
	key := Key{Entity: "agents", Query: ""}
	fetches := 0
	fetch := func(context.Context) ([]string, error) {
		fetches++
		return []string{"a", "b"}, nil
	}

	ctx := context.Background()
	got, err := GetOrFetch(ctx, cache, key, fetch)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, 1, fetches)

	// Second read is served from the cache.
	_, err = GetOrFetch(ctx, cache, key, fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, fetches)

	cache.Invalidate("agents")
	assert.True(t, cache.IsStale(key))

	_, err = GetOrFetch(ctx, cache, key, fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, fetches)
	assert.False(t, cache.IsStale(key))
}

func TestInvalidateIsPerEntity(t *testing.T) {
	cache := NewCache()
	ctx := context.Background()

	agents := Key{Entity: "agents"}
	leads := Key{Entity: "leads"}
	fetch := func(context.Context) (int, error) { return 1, nil }

	_, err := GetOrFetch(ctx, cache, agents, fetch)
	require.NoError(t, err)
	_, err = GetOrFetch(ctx, cache, leads, fetch)
	require.NoError(t, err)

	cache.Invalidate("agents")
	assert.True(t, cache.IsStale(agents))
	assert.False(t, cache.IsStale(leads))
}

func TestSeparateQueriesCacheSeparately(t *testing.T) {
	cache := NewCache()
	ctx := context.Background()

	fetches := 0
	fetch := func(context.Context) (int, error) {
		fetches++
		return fetches, nil
	}

	all := Key{Entity: "leads", Query: ""}
	filtered := Key{Entity: "leads", Query: "agentId=3"}

	v1, err := GetOrFetch(ctx, cache, all, fetch)
	require.NoError(t, err)
	v2, err := GetOrFetch(ctx, cache, filtered, fetch)
	require.NoError(t, err)
	assert.NotEqual(t, v1, v2)
	assert.Equal(t, 2, fetches)
}

func TestFetchErrorNotCached(t *testing.T) {
	cache := NewCache()
	ctx := context.Background()
	key := Key{Entity: "agents"}

	calls := 0
	_, err := GetOrFetch(ctx, cache, key, func(context.Context) (int, error) {
		calls++
		return 0, assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)
	assert.True(t, cache.IsStale(key))

	got, err := GetOrFetch(ctx, cache, key, func(context.Context) (int, error) {
		calls++
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, got)
	assert.Equal(t, 2, calls)
}

func TestInvalidationDuringColdFetchKeepsEntryStale(t *testing.T) {
	cache := NewCache()
	ctx := context.Background()
	key := Key{Entity: "agents"}

	// The key has never been cached; a mutation completes while the first
	// fill is still fetching, so the fetched value predates the mutation.
	got, err := GetOrFetch(ctx, cache, key, func(context.Context) (int, error) {
		cache.Invalidate("agents")
		return 1, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, got)
	assert.True(t, cache.IsStale(key))

	got, err = GetOrFetch(ctx, cache, key, func(context.Context) (int, error) { return 2, nil })
	require.NoError(t, err)
	assert.Equal(t, 2, got)
	assert.False(t, cache.IsStale(key))
}

func TestInvalidationDuringFetchKeepsEntryStale(t *testing.T) {
	cache := NewCache()
	ctx := context.Background()
	key := Key{Entity: "agents"}

	// Prime the entry then mark it stale so the refill races a second
	// invalidation that lands while the fetch is running.
	_, err := GetOrFetch(ctx, cache, key, func(context.Context) (int, error) { return 1, nil })
	require.NoError(t, err)
	cache.Invalidate("agents")

	got, err := GetOrFetch(ctx, cache, key, func(context.Context) (int, error) {
		cache.Invalidate("agents")
		return 2, nil
	})
	require.NoError(t, err)
	// The caller still gets the fetched value, but the fill is discarded.
	assert.Equal(t, 2, got)
	assert.True(t, cache.IsStale(key))

	got, err = GetOrFetch(ctx, cache, key, func(context.Context) (int, error) { return 3, nil })
	require.NoError(t, err)
	assert.Equal(t, 3, got)
	assert.False(t, cache.IsStale(key))
}
