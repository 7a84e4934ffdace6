package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

// InitRedisRateLimiter initializes the shared Redis client used by the
// rate limiter. With an empty addr or an unreachable server the limiter
// falls back to its in-memory fixed window, so the service stays available.
func InitRedisRateLimiter(addr, password string, db int) {
	if addr == "" {
		return
	}
	redisClient = redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		redisClient = nil
	}
}

type window struct {
	start time.Time
	count int
}

var (
	localMu      sync.Mutex
	localWindows = make(map[string]*window)
)

// RateLimit is a fixed-window per-IP limiter. It counts in Redis when a
// client is configured (shared across replicas) and in process memory
// otherwise. Redis errors fail open.
func RateLimit(maxRequests int, windowSize time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := c.ClientIP()
		key := "rl:" + strconv.FormatInt(int64(windowSize.Seconds()), 10) + ":" + ident

		RLRequests.WithLabelValues(c.FullPath()).Inc()

		var count int64
		if redisClient != nil {
			val, err := redisClient.Incr(c.Request.Context(), key).Result()
			if err != nil {
				c.Header("X-RateLimit-Error", "redis-error")
				c.Next()
				return
			}
			if val == 1 {
				redisClient.Expire(c.Request.Context(), key, windowSize)
			}
			count = val
		} else {
			count = localIncr(key, windowSize)
		}

		if count > int64(maxRequests) {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		c.Next()
	}
}

func localIncr(key string, windowSize time.Duration) int64 {
	localMu.Lock()
	defer localMu.Unlock()

	now := time.Now()
	w, ok := localWindows[key]
	if !ok || now.Sub(w.start) > windowSize {
		localWindows[key] = &window{start: now, count: 1}
		return 1
	}
	w.count++
	return int64(w.count)
}
