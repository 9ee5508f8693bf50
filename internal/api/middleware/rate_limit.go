package middleware

import (
	"strconv"
	"sync"
	"time"

	"recipe-finder/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const staleLimiterAfter = 10 * time.Minute

// RateLimiter hands out one token bucket per client key.
type RateLimiter struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	window   time.Duration
	clients  map[string]*clientLimiter
	lastTidy time.Time
	now      func() time.Time
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows requests per window for each client, refilled evenly.
func NewRateLimiter(requests int, window time.Duration) *RateLimiter {
	if requests <= 0 {
		requests = 1
	}
	if window <= 0 {
		window = time.Second
	}
	// a zero interval would make rate.Every unlimited
	interval := window / time.Duration(requests)
	if interval <= 0 {
		interval = time.Nanosecond
	}
	return &RateLimiter{
		limit:    rate.Every(interval),
		burst:    requests,
		window:   window,
		clients:  make(map[string]*clientLimiter),
		lastTidy: time.Now(),
		now:      time.Now,
	}
}

// Allow consumes a token for key.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastTidy) > staleLimiterAfter {
		for k, cl := range rl.clients {
			if now.Sub(cl.lastSeen) > staleLimiterAfter {
				delete(rl.clients, k)
			}
		}
		rl.lastTidy = now
	}

	cl, ok := rl.clients[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[key] = cl
	}
	cl.lastSeen = now
	return cl.limiter.AllowN(now, 1)
}

// RateLimit limits each client IP to requests per window.
func RateLimit(requests int, window time.Duration) gin.HandlerFunc {
	return NewRateLimiter(requests, window).Handler()
}

func (rl *RateLimiter) Handler() gin.HandlerFunc {
	retryAfter := strconv.Itoa(retryAfterSeconds(rl.window))
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			common.LogInfo("Rate limit exceeded",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)
			c.Header("Retry-After", retryAfter)
			abortWithError(c, common.ErrTooManyRequests)
			return
		}
		c.Next()
	}
}

// retryAfterSeconds rounds window up to whole seconds, at least one.
func retryAfterSeconds(window time.Duration) int {
	secs := int((window + time.Second - 1) / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}
