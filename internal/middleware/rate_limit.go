package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/pageza/recipeshare/backend/config"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
	// Key prefix for Redis keys
	KeyPrefix string
}

// Limiter decides whether one more request for key fits in the window.
type Limiter interface {
	IsAllowed(ctx context.Context, key string) (allowed bool, remaining int, reset time.Time, err error)
}

// RedisLimiter counts requests per fixed window in Redis, so the limit is
// shared by every instance of the server.
type RedisLimiter struct {
	redis  *redis.Client
	config RateLimitConfig
	now    func() time.Time
}

func NewRedisLimiter(client *redis.Client, config RateLimitConfig) *RedisLimiter {
	return &RedisLimiter{redis: client, config: config, now: time.Now}
}

// IsAllowed checks if a request from the given key is allowed
func (rl *RedisLimiter) IsAllowed(ctx context.Context, key string) (bool, int, time.Time, error) {
	windowStart := rl.now().Truncate(rl.config.Window)
	redisKey := fmt.Sprintf("%s:%s:%d", rl.config.KeyPrefix, key, windowStart.Unix())

	pipe := rl.redis.Pipeline()
	incrCmd := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, rl.config.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, err
	}

	count := int(incrCmd.Val())
	remaining := max(rl.config.Limit-count, 0)
	return count <= rl.config.Limit, remaining, windowStart.Add(rl.config.Window), nil
}

// MemoryLimiter keeps a token bucket per key in process memory. It is used
// when no Redis client is configured.
type MemoryLimiter struct {
	config RateLimitConfig

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	now      func() time.Time
}

func NewMemoryLimiter(config RateLimitConfig) *MemoryLimiter {
	return &MemoryLimiter{
		config:   config,
		limiters: make(map[string]*rate.Limiter),
		now:      time.Now,
	}
}

func (ml *MemoryLimiter) IsAllowed(_ context.Context, key string) (bool, int, time.Time, error) {
	ml.mu.Lock()
	lim, ok := ml.limiters[key]
	if !ok {
		every := rate.Every(ml.config.Window / time.Duration(max(ml.config.Limit, 1)))
		lim = rate.NewLimiter(every, ml.config.Limit)
		ml.limiters[key] = lim
	}
	ml.mu.Unlock()

	now := ml.now()
	allowed := lim.AllowN(now, 1)
	remaining := max(int(lim.TokensAt(now)), 0)
	return allowed, remaining, now.Add(ml.config.Window), nil
}

// RateLimit returns a Gin middleware that enforces the limiter per user, or
// per client IP for anonymous requests. Limiter errors let the request through.
func RateLimit(limiter Limiter, config RateLimitConfig, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if uid := UserID(c); uid != "" {
			key = "user:" + uid
		}

		allowed, remaining, resetTime, err := limiter.IsAllowed(c.Request.Context(), key)
		if err != nil {
			logger.Warn("Rate limit check failed", zap.String("key", key), zap.Error(err))
			c.Header("X-RateLimit-Error", "rate limit check failed")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"message":     fmt.Sprintf("You have exceeded the rate limit of %d requests per %v", config.Limit, config.Window),
				"retry_after": max(int(time.Until(resetTime).Seconds()), 0),
			})
			return
		}

		c.Next()
	}
}

// NewRateLimitMiddleware picks the Redis limiter when a client is available
// and the in-memory one otherwise. It returns nil when rate limiting is off.
func NewRateLimitMiddleware(cfg config.RateLimitConfig, client *redis.Client, logger *zap.Logger) gin.HandlerFunc {
	if !cfg.Enabled {
		return nil
	}
	rlc := RateLimitConfig{Window: cfg.Window, Limit: cfg.Limit, KeyPrefix: "ratelimit"}

	var limiter Limiter
	if client != nil {
		limiter = NewRedisLimiter(client, rlc)
		logger.Info("Rate limiting via Redis", zap.Int("limit", cfg.Limit), zap.Duration("window", cfg.Window))
	} else {
		limiter = NewMemoryLimiter(rlc)
		logger.Info("Rate limiting in memory", zap.Int("limit", cfg.Limit), zap.Duration("window", cfg.Window))
	}
	return RateLimit(limiter, rlc, logger)
}
