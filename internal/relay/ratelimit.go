package relay

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimiter enforces a Redis-backed fixed-window request limit per client
// IP. A Redis outage fails open: blocking legitimate clients is worse than
// briefly losing the limit.
type RateLimiter struct {
	rdb    *redis.Client
	limit  int64
	window time.Duration
}

// NewRateLimiter constructs a limiter allowing limit requests per window.
func NewRateLimiter(rdb *redis.Client, limit int64, window time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = 100
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &RateLimiter{rdb: rdb, limit: limit, window: window}
}

// Middleware returns the gin handler enforcing the limit.
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := l.allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			c.Next()
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests, please try again later.",
			})
			return
		}
		c.Next()
	}
}

func (l *RateLimiter) allow(ctx context.Context, clientIP string) (bool, error) {
	key := fmt.Sprintf("relay:ratelimit:%s", clientIP)

	count, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		return true, err
	}
	if count == 1 {
		// First hit in this window owns the expiry.
		if err := l.rdb.Expire(ctx, key, l.window).Err(); err != nil {
			return true, err
		}
	}
	return count <= l.limit, nil
}

// NonceChecker reports whether a payload nonce has been seen inside the
// replay window.
type NonceChecker interface {
	Seen(ctx context.Context, nonce string) (bool, error)
}

// RedisNonceCache tracks seen nonces with SETNX and a TTL twice the replay
// window, so a nonce expires only after its timestamp check would already
// reject it.
type RedisNonceCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisNonceCache constructs a nonce cache for the given replay window.
func NewRedisNonceCache(rdb *redis.Client, window time.Duration) *RedisNonceCache {
	if window <= 0 {
		window = defaultWindow
	}
	return &RedisNonceCache{rdb: rdb, ttl: 2 * window}
}

// Seen marks the nonce and reports whether it was already present.
func (c *RedisNonceCache) Seen(ctx context.Context, nonce string) (bool, error) {
	set, err := c.rdb.SetNX(ctx, "relay:nonce:"+nonce, 1, c.ttl).Result()
	if err != nil {
		return false, err
	}
	return !set, nil
}
