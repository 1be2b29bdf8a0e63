package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jashanpj/janasampark/internal/error/code"
	"github.com/jashanpj/janasampark/internal/error/response"
)

// TokenBucket is a simple token bucket limiter.
type TokenBucket struct {
	rate       float64   // tokens added per second
	capacity   int       // bucket capacity
	tokens     float64   // current token count
	lastRefill time.Time // last refill time
	mu         sync.Mutex
}

// NewTokenBucket creates a token bucket limiter.
func NewTokenBucket(rate float64, capacity int) *TokenBucket {
	return &TokenBucket{
		rate:       rate,
		capacity:   capacity,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

// Allow tries to take one token.
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill).Seconds()
	tb.lastRefill = now

	tb.tokens += elapsed * tb.rate
	if tb.tokens > float64(tb.capacity) {
		tb.tokens = float64(tb.capacity)
	}

	if tb.tokens >= 1 {
		tb.tokens--
		return true
	}

	return false
}

var (
	ipLimiters   = make(map[string]*TokenBucket)
	ipLimitersMu sync.RWMutex
)

// getIPLimiter returns the limiter for an IP, creating it on first sight.
// Limiters expire after an hour of existence to bound the map.
func getIPLimiter(ip string, rate float64, burst int) *TokenBucket {
	ipLimitersMu.RLock()
	limiter, exists := ipLimiters[ip]
	ipLimitersMu.RUnlock()

	if !exists {
		limiter = NewTokenBucket(rate, burst)
		ipLimitersMu.Lock()
		ipLimiters[ip] = limiter
		ipLimitersMu.Unlock()

		go func() {
			time.Sleep(1 * time.Hour)
			ipLimitersMu.Lock()
			delete(ipLimiters, ip)
			ipLimitersMu.Unlock()
		}()
	}

	return limiter
}

// IPRateLimiter limits requests per client IP.
func IPRateLimiter(rate float64, burst int) gin.HandlerFunc {
	return func(c *gin.Context) {
		limiter := getIPLimiter(c.ClientIP(), rate, burst)
		if !limiter.Allow() {
			response.Fail(c, code.ErrTooManyRequests, nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
