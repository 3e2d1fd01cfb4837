package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SolBenven/proyecto-final/internal/config"
	"github.com/SolBenven/proyecto-final/internal/domain/notification"
	"github.com/SolBenven/proyecto-final/internal/infrastructure/monitoring/logging"
)

// UnreadCounter implements notification.UnreadCounter on redis.
type UnreadCounter struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	log    logging.Logger
}

// NewUnreadCounter builds the redis-backed unread-count cache.
func NewUnreadCounter(client *redis.Client, cfg config.RedisConfig, log logging.Logger) *UnreadCounter {
	return &UnreadCounter{
		client: client,
		prefix: cfg.KeyPrefix,
		ttl:    cfg.DefaultTTL,
		log:    log,
	}
}

func (c *UnreadCounter) key(accountID int64) string {
	return fmt.Sprintf("%sunread:%d", c.prefix, accountID)
}

// Get returns the cached count; ok is false on miss or any redis failure.
func (c *UnreadCounter) Get(ctx context.Context, accountID int64) (int64, bool) {
	val, err := c.client.Get(ctx, c.key(accountID)).Result()
	if err == redis.Nil {
		return 0, false
	}
	if err != nil {
		c.log.Warn("unread count cache read failed",
			logging.Int64("account_id", accountID), logging.Err(err))
		return 0, false
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		c.log.Warn("unread count cache holds a non-numeric value",
			logging.Int64("account_id", accountID), logging.String("value", val))
		return 0, false
	}
	return count, true
}

// Set stores the count with the configured TTL.  Failures are logged only.
func (c *UnreadCounter) Set(ctx context.Context, accountID int64, count int64) {
	if err := c.client.Set(ctx, c.key(accountID), count, c.ttl).Err(); err != nil {
		c.log.Warn("unread count cache write failed",
			logging.Int64("account_id", accountID), logging.Err(err))
	}
}

// Invalidate drops the cached counts for the given accounts.
func (c *UnreadCounter) Invalidate(ctx context.Context, accountIDs ...int64) {
	if len(accountIDs) == 0 {
		return
	}
	keys := make([]string, len(accountIDs))
	for i, id := range accountIDs {
		keys[i] = c.key(id)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("unread count cache invalidation failed",
			logging.Int("accounts", len(accountIDs)), logging.Err(err))
	}
}

// NopCounter is the counter used when caching is disabled.  Get always misses.
type NopCounter struct{}

func (NopCounter) Get(ctx context.Context, accountID int64) (int64, bool) { return 0, false }
func (NopCounter) Set(ctx context.Context, accountID int64, count int64)  {}
func (NopCounter) Invalidate(ctx context.Context, accountIDs ...int64)    {}

var (
	_ notification.UnreadCounter = (*UnreadCounter)(nil)
	_ notification.UnreadCounter = NopCounter{}
)
