package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

// cachedPortfolioStore puts a Redis cache-aside layer in front of another
// store. Redis failures are logged and never fail a read or a write.
//
// Cached documents are keyed by a per-user revision that every write bumps.
// A read that loaded the old document before a concurrent write can only
// fill the old revision's key, which no later read looks at.
type cachedPortfolioStore struct {
	next   portfolio.DocumentStore
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedPortfolioStore(next portfolio.DocumentStore, rdb *redis.Client, ttl time.Duration, log logger.Logger) portfolio.DocumentStore {
	return &cachedPortfolioStore{next: next, rdb: rdb, ttl: ttl, logger: log}
}

func revisionKey(userID string) string {
	return "portfolio:rev:" + userID
}

func cacheKey(userID string, rev int64) string {
	return fmt.Sprintf("portfolio:doc:%s:%d", userID, rev)
}

func (s *cachedPortfolioStore) revision(ctx context.Context, userID string) (int64, error) {
	rev, err := s.rdb.Get(ctx, revisionKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return rev, err
}

func (s *cachedPortfolioStore) Get(ctx context.Context, userID string) (*portfolio.Portfolio, error) {
	rev, err := s.revision(ctx, userID)
	if err != nil {
		s.logger.Warn("Portfolio cache read failed", zap.String("owner_id", userID), zap.Error(err))
		return s.next.Get(ctx, userID)
	}

	p := &portfolio.Portfolio{}
	found, err := s.getJSON(ctx, cacheKey(userID, rev), p)
	if err != nil {
		s.logger.Warn("Portfolio cache read failed", zap.String("owner_id", userID), zap.Error(err))
	}
	if found {
		p.Normalize()
		return p, nil
	}

	p, err = s.next.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.setJSON(ctx, cacheKey(userID, rev), p); err != nil {
		s.logger.Warn("Portfolio cache fill failed", zap.String("owner_id", userID), zap.Error(err))
	}
	return p, nil
}

// Set writes through, then moves readers to a fresh revision and drops the
// previous revision's copy.
func (s *cachedPortfolioStore) Set(ctx context.Context, userID string, doc *portfolio.Portfolio, opts portfolio.SetOptions) error {
	if err := s.next.Set(ctx, userID, doc, opts); err != nil {
		return err
	}
	rev, err := s.rdb.Incr(ctx, revisionKey(userID)).Result()
	if err != nil {
		s.logger.Warn("Portfolio cache invalidation failed", zap.String("owner_id", userID), zap.Error(err))
		return nil
	}
	if err := s.rdb.Del(ctx, cacheKey(userID, rev-1)).Err(); err != nil {
		s.logger.Warn("Portfolio cache cleanup failed", zap.String("owner_id", userID), zap.Error(err))
	}
	return nil
}

func (s *cachedPortfolioStore) getJSON(ctx context.Context, key string, dest any) (bool, error) {
	b, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (s *cachedPortfolioStore) setJSON(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, b, s.ttl).Err()
}
