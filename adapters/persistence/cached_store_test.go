package persistence

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

// countingStore counts reads that reach the backing store. afterGet runs
// between loading a document and returning it.
type countingStore struct {
	*MemoryPortfolioStore
	gets     atomic.Int32
	setErr   error
	afterGet func()
}

func (s *countingStore) Get(ctx context.Context, userID string) (*portfolio.Portfolio, error) {
	s.gets.Add(1)
	p, err := s.MemoryPortfolioStore.Get(ctx, userID)
	if s.afterGet != nil {
		hook := s.afterGet
		s.afterGet = nil
		hook()
	}
	return p, err
}

func (s *countingStore) Set(ctx context.Context, userID string, doc *portfolio.Portfolio, opts portfolio.SetOptions) error {
	if s.setErr != nil {
		return s.setErr
	}
	return s.MemoryPortfolioStore.Set(ctx, userID, doc, opts)
}

func newCachedFixture(t *testing.T) (*miniredis.Miniredis, *countingStore, portfolio.DocumentStore) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	backing := &countingStore{MemoryPortfolioStore: NewMemoryPortfolioStore()}
	return mr, backing, NewCachedPortfolioStore(backing, rdb, time.Minute, logger.NewNopLogger())
}

func TestCachedStore_ReadsThroughOnce(t *testing.T) {
	ctx := context.Background()
	mr, backing, store := newCachedFixture(t)
	doc := portfolio.New()
	doc.PersonalInfo.Name = "Jane"
	require.NoError(t, backing.MemoryPortfolioStore.Set(ctx, "u1", doc, portfolio.SetOptions{}))

	for i := 0; i < 3; i++ {
		got, err := store.Get(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "Jane", got.PersonalInfo.Name)
	}

	assert.Equal(t, int32(1), backing.gets.Load())
	assert.True(t, mr.Exists("portfolio:doc:u1:0"))
	assert.Equal(t, time.Minute, mr.TTL("portfolio:doc:u1:0"))
}

func TestCachedStore_SetInvalidates(t *testing.T) {
	ctx := context.Background()
	mr, backing, store := newCachedFixture(t)
	doc := portfolio.New()
	require.NoError(t, store.Set(ctx, "u1", doc, portfolio.SetOptions{Merge: true}))
	_, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	require.True(t, mr.Exists("portfolio:doc:u1:1"))

	doc.PersonalInfo.Name = "Renamed"
	require.NoError(t, store.Set(ctx, "u1", doc, portfolio.SetOptions{Merge: true}))
	assert.False(t, mr.Exists("portfolio:doc:u1:1"))

	got, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.PersonalInfo.Name)
	assert.Equal(t, int32(2), backing.gets.Load())
}

func TestCachedStore_FailedWriteKeepsCache(t *testing.T) {
	ctx := context.Background()
	mr, backing, store := newCachedFixture(t)
	require.NoError(t, store.Set(ctx, "u1", portfolio.New(), portfolio.SetOptions{}))
	_, err := store.Get(ctx, "u1")
	require.NoError(t, err)

	backing.setErr = errors.New("boom")
	assert.Error(t, store.Set(ctx, "u1", portfolio.New(), portfolio.SetOptions{}))
	assert.True(t, mr.Exists("portfolio:doc:u1:1"))
}

func TestCachedStore_SlowReadCannotCacheStaleDocument(t *testing.T) {
	ctx := context.Background()
	_, backing, store := newCachedFixture(t)
	old := portfolio.New()
	old.PersonalInfo.Name = "Old"
	require.NoError(t, store.Set(ctx, "u1", old, portfolio.SetOptions{}))

	// A write lands after the read loaded "Old" but before it fills the cache.
	backing.afterGet = func() {
		fresh := portfolio.New()
		fresh.PersonalInfo.Name = "New"
		require.NoError(t, store.Set(ctx, "u1", fresh, portfolio.SetOptions{}))
	}
	got, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Old", got.PersonalInfo.Name)

	got, err = store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "New", got.PersonalInfo.Name)
}

func TestCachedStore_RedisDownFallsBackToStore(t *testing.T) {
	ctx := context.Background()
	mr, backing, store := newCachedFixture(t)
	require.NoError(t, backing.MemoryPortfolioStore.Set(ctx, "u1", portfolio.New(), portfolio.SetOptions{}))
	mr.Close()

	_, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "u1", portfolio.New(), portfolio.SetOptions{}))
}
