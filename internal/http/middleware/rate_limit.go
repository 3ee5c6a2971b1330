package middleware

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/yungbote/giftwizard-backend/internal/http/response"
	"github.com/yungbote/giftwizard-backend/internal/platform/apierr"
)

const limiterIdleTTL = 2 * time.Hour

type ipLimiter struct {
	limiter    *rate.Limiter
	lastActive time.Time
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*ipLimiter
	rps      rate.Limit
	burst    int
	now      func() time.Time
}

func NewRateLimiter(perMinute, burst int) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 10
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		limiters: map[string]*ipLimiter{},
		rps:      rate.Limit(float64(perMinute) / 60.0),
		burst:    burst,
		now:      time.Now,
	}
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	l, ok := rl.limiters[ip]
	if !ok {
		l = &ipLimiter{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.limiters[ip] = l
	}
	now := rl.now()
	l.lastActive = now
	rl.mu.Unlock()
	return l.limiter.AllowN(now, 1)
}

// Cleanup drops limiters idle for longer than two hours.
func (rl *RateLimiter) Cleanup() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	now := rl.now()
	n := 0
	for ip, l := range rl.limiters {
		if now.Sub(l.lastActive) > limiterIdleTTL {
			delete(rl.limiters, ip)
			n++
		}
	}
	return n
}

// Middleware rejects requests over the limit with 429 RATE_LIMITED.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			response.RespondError(c, http.StatusTooManyRequests, apierr.CodeRateLimited,
				errors.New("Too many requests. Please try again later."))
			c.Abort()
			return
		}
		c.Next()
	}
}
