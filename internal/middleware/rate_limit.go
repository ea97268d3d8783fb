package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/stellarion/backend/internal/app/models/dto"
)

// RateLimiter keeps one token bucket per caller. Buckets idle past the
// window are evicted by the cache janitor.
type RateLimiter struct {
	limiters *cache.Cache
	limit    rate.Limit
	burst    int
}

// NewRateLimiter allows events requests per window per caller.
func NewRateLimiter(events int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limiters: cache.New(window, 2*window),
		limit:    rate.Every(window / time.Duration(events)),
		burst:    events,
	}
}

func (rl *RateLimiter) limiterFor(key string) *rate.Limiter {
	if v, ok := rl.limiters.Get(key); ok {
		return v.(*rate.Limiter)
	}
	limiter := rate.NewLimiter(rl.limit, rl.burst)
	rl.limiters.SetDefault(key, limiter)
	return limiter
}

// Allow reports whether the caller may proceed.
func (rl *RateLimiter) Allow(key string) bool {
	return rl.limiterFor(key).Allow()
}

// Middleware rejects callers over the limit with 429. Authenticated
// requests are keyed by account, anonymous ones by client IP.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if user, ok := UserFrom(c); ok {
			key = user.AuthUID
		}
		if !rl.Allow(key) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.Failure("rate limit exceeded"))
			return
		}
		c.Next()
	}
}
