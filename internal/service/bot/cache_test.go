package bot

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/iamasit07/flexfour/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCache struct {
	values map[string]string
	gets   int
	sets   int
	err    error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: make(map[string]string)}
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	m.sets++
	if m.err != nil {
		return m.err
	}
	m.values[key] = fmt.Sprint(value)
	return nil
}

func (m *memoryCache) Get(ctx context.Context, key string) (string, bool, error) {
	m.gets++
	if m.err != nil {
		return "", false, m.err
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func TestWithCache_OnlyWrapsDeterministic(t *testing.T) {
	cache := newMemoryCache()

	_, ok := WithCache(&Deterministic{}, cache, time.Minute).(*CachedStrategy)
	assert.True(t, ok)

	_, ok = WithCache(NewProbabilistic(false, 1), cache, time.Minute).(*CachedStrategy)
	assert.False(t, ok)

	_, ok = WithCache(&Deterministic{}, nil, time.Minute).(*CachedStrategy)
	assert.False(t, ok)
}

func TestCachedStrategy_MatchesInner(t *testing.T) {
	cache := newMemoryCache()
	cached := WithCache(&Deterministic{}, cache, time.Minute)

	b := domain.NewBoard()
	_, err := b.Drop(3, domain.Player1)
	require.NoError(t, err)

	want, _, err := ChooseMove(b, domain.Player2, nil)
	require.NoError(t, err)

	first, found, err := cached.ChooseMove(b, domain.Player2)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, want, first)
	assert.Equal(t, 1, cache.sets)

	second, found, err := cached.ChooseMove(b, domain.Player2)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, want, second)
	assert.Equal(t, 1, cache.sets, "second lookup is served from the cache")
}

func TestCachedStrategy_IgnoresBadEntries(t *testing.T) {
	cache := newMemoryCache()
	cached := WithCache(&Deterministic{}, cache, time.Minute)

	b := domain.NewBoard()
	key := MoveCacheKey(StrategyDeterministic, &b, domain.Player1)
	cache.values[key] = "3,4" // not a drop cell

	move, found, err := cached.ChooseMove(b, domain.Player1)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, pos(2, 0), move)
	assert.Equal(t, "2,0", cache.values[key])
}

func TestCachedStrategy_CacheErrorsFallThrough(t *testing.T) {
	cache := newMemoryCache()
	cache.err = errors.New("connection refused")
	cached := WithCache(&Deterministic{}, cache, time.Minute)

	move, found, err := cached.ChooseMove(domain.NewBoard(), domain.Player1)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, pos(2, 0), move)
}
