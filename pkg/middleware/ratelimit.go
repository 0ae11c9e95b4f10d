package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
	"wayfarer/pkg/utils"
)

// RateLimiter keeps one token bucket per client key. Idle buckets are
// dropped after ten minutes.
type RateLimiter struct {
	visitors *cache.Cache
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
}

// NewRateLimiter allows perMinute requests per key with a small burst.
func NewRateLimiter(perMinute int) *RateLimiter {
	if perMinute < 1 {
		perMinute = 1
	}
	burst := perMinute / 10
	if burst < 3 {
		burst = 3
	}
	return &RateLimiter{
		visitors: cache.New(10*time.Minute, 5*time.Minute),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    burst,
	}
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if v, ok := rl.visitors.Get(key); ok {
		limiter := v.(*rate.Limiter)
		rl.visitors.SetDefault(key, limiter)
		return limiter
	}
	limiter := rate.NewLimiter(rl.limit, rl.burst)
	rl.visitors.SetDefault(key, limiter)
	return limiter
}

// Limit keys buckets by client IP and the :id route param, so one chatty
// session cannot starve the others behind the same address.
func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP() + "|" + c.Param("id")
		if !rl.getLimiter(key).Allow() {
			utils.RespondError(c, http.StatusTooManyRequests, "Too many requests")
			c.Abort()
			return
		}
		c.Next()
	}
}
