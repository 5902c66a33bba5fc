package search

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/snapseek/api/internal/api"
	"github.com/snapseek/api/internal/auth"
	"golang.org/x/time/rate"
)

// Per-user token bucket for the search endpoint: steady 1 req/s with a
// burst of 10. Idle limiters are dropped after an hour.
const (
	limitRate  = rate.Limit(1)
	limitBurst = 10
	limiterTTL = time.Hour
)

type userLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles searches per authenticated user.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[uint]*userLimiter
}

// NewRateLimiter creates the per-user search limiter.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{limiters: make(map[uint]*userLimiter)}
}

// Middleware rejects over-limit searches with a 429 envelope. It must run
// after RequireAuth.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := auth.UserFrom(c)
		if !ok {
			api.AuthError(c, "Authentication required", "Please log in to access this resource")
			c.Abort()
			return
		}

		if !rl.allow(user.ID) {
			api.Error(c, api.Options{
				Error:   "Too many searches",
				Message: "You are searching too quickly. Please slow down.",
				Status:  http.StatusTooManyRequests,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) allow(userID uint) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	ul, ok := rl.limiters[userID]
	if !ok {
		ul = &userLimiter{limiter: rate.NewLimiter(limitRate, limitBurst)}
		rl.limiters[userID] = ul
	}
	ul.lastSeen = now

	// Opportunistic cleanup of idle buckets.
	for id, other := range rl.limiters {
		if now.Sub(other.lastSeen) > limiterTTL {
			delete(rl.limiters, id)
		}
	}

	return ul.limiter.Allow()
}
