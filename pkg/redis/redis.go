package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/priscillasauvan-boop/Mon-journal-de-stage/config"
)

// Client Redis wrapper; currently backs the rate limiter of mutating routes
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient connects to Redis and pings it
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	logger.Info("redis connected", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── Rate limiting ──

const rateLimitPrefix = "journal:rate_limit:"

// CheckRateLimit counts one hit against key in a fixed window and reports
// whether the caller is still within limit. A limit <= 0 disables the check.
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if limit <= 0 {
		return true, nil
	}

	var incr *goredis.IntCmd
	_, err := c.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		incr = pipe.Incr(ctx, rateLimitPrefix+key)
		// only the first hit of a window sets the expiry
		pipe.ExpireNX(ctx, rateLimitPrefix+key, window)
		return nil
	})
	if err != nil {
		c.logger.Warn("rate limit check failed", zap.String("key", key), zap.Error(err))
		return false, err
	}

	return incr.Val() <= int64(limit), nil
}

// Close closes the connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
