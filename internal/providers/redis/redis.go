package redis

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type RedisProvider struct {
	Client *redis.Client
	URL    string
	logger *zap.SugaredLogger
	ttl    time.Duration
	cancel context.CancelFunc
}

// NewRedisProvider connects to redisURL, accepting either a redis:// URL or a
// bare host:port. The connection monitor runs until Close is called.
func NewRedisProvider(redisURL string, logger *zap.Logger, ttl time.Duration) (*RedisProvider, error) {
	if redisURL == "" {
		return nil, fmt.Errorf("redis url is empty")
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		opts = &redis.Options{Addr: redisURL}
	}
	opts.MaxRetries = 3
	opts.MinRetryBackoff = 100 * time.Millisecond
	opts.MaxRetryBackoff = 500 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	provider := &RedisProvider{
		Client: redis.NewClient(opts),
		URL:    redisURL,
		logger: logger.Sugar(),
		ttl:    ttl,
		cancel: cancel,
	}
	provider.Client.AddHook(&loggerHook{logger: provider.logger})

	if err := provider.Client.Ping(ctx).Err(); err != nil {
		provider.logger.Errorw("Redis connection failed at startup", "url", redisURL, "error", err)
	} else {
		provider.logger.Infow("Redis connected",
			"url", redisURL,
			"db", opts.DB,
			"default_ttl", ttl.String(),
		)
	}

	go provider.startConnectionMonitor(ctx)

	return provider, nil
}

// SetWithDefaultTTL stores value under key, using the provider TTL when ttl <= 0.
func (r *RedisProvider) SetWithDefaultTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd {
	if ttl <= 0 {
		ttl = r.ttl
	}
	return r.Client.Set(ctx, key, value, ttl)
}

func (r *RedisProvider) Get(ctx context.Context, key string) *redis.StringCmd {
	return r.Client.Get(ctx, key)
}

func (r *RedisProvider) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	return r.Client.Del(ctx, keys...)
}

func (r *RedisProvider) Close() error {
	r.cancel()
	return r.Client.Close()
}

func (r *RedisProvider) startConnectionMonitor(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	wasConnected := r.Client.Ping(ctx).Err() == nil

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			err := r.Client.Ping(ctx).Err()
			switch {
			case err != nil && wasConnected:
				r.logger.Errorw("Redis disconnected", "error", err)
				wasConnected = false
			case err == nil && !wasConnected:
				r.logger.Infow("Redis reconnected", "url", r.URL)
				wasConnected = true
			}
		}
	}
}

type loggerHook struct {
	logger *zap.SugaredLogger
}

func (h *loggerHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := next(ctx, network, addr)
		if err != nil {
			h.logger.Errorw("Redis dial failed", "network", network, "addr", addr, "error", err)
		}
		return conn, err
	}
}

func (h *loggerHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		if cmd.Name() != "ping" {
			h.log(cmd, err, time.Since(start))
		}
		return err
	}
}

func (h *loggerHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		for _, cmd := range cmds {
			h.log(cmd, err, time.Since(start))
		}
		return err
	}
}

// log reports cache misses (redis.Nil) at debug level, not as failures.
func (h *loggerHook) log(cmd redis.Cmder, err error, duration time.Duration) {
	fields := []interface{}{
		"command", cmd.Name(),
		"duration", duration.String(),
	}
	if err != nil && err != redis.Nil {
		h.logger.Errorw("Redis command failed", append(fields, "error", err)...)
		return
	}
	h.logger.Debugw("Redis command executed", fields...)
}
