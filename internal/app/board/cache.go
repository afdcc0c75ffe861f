package board

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redisprovider "trello/internal/providers/redis"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const listCacheKey = "boards:list"

// ListCache holds the full board listing between writes.
type ListCache interface {
	Get(ctx context.Context) ([]*Board, bool)
	Set(ctx context.Context, boards []*Board)
	Invalidate(ctx context.Context)
}

type redisListCache struct {
	provider *redisprovider.RedisProvider
	ttl      time.Duration
	logger   *zap.SugaredLogger
}

// NewRedisListCache returns nil when provider is nil so callers can pass the
// result straight to NewService.
func NewRedisListCache(provider *redisprovider.RedisProvider, ttl time.Duration, logger *zap.Logger) ListCache {
	if provider == nil {
		return nil
	}
	return &redisListCache{
		provider: provider,
		ttl:      ttl,
		logger:   logger.Sugar(),
	}
}

func (c *redisListCache) Get(ctx context.Context) ([]*Board, bool) {
	cached, err := c.provider.Get(ctx, listCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warnw("ListCache: get failed", "error", err)
		}
		return nil, false
	}

	var boards []*Board
	if err := json.Unmarshal(cached, &boards); err != nil {
		c.logger.Warnw("ListCache: corrupt entry", "error", err)
		return nil, false
	}
	return boards, true
}

func (c *redisListCache) Set(ctx context.Context, boards []*Board) {
	data, err := json.Marshal(boards)
	if err != nil {
		return
	}
	if err := c.provider.SetWithDefaultTTL(ctx, listCacheKey, data, c.ttl).Err(); err != nil {
		c.logger.Warnw("ListCache: set failed", "error", err)
	}
}

func (c *redisListCache) Invalidate(ctx context.Context) {
	if err := c.provider.Del(ctx, listCacheKey).Err(); err != nil {
		c.logger.Warnw("ListCache: invalidate failed", "error", err)
	}
}
