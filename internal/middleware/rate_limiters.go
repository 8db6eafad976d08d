package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/saltybytes-recipe-ideas/internal/metrics"
	"golang.org/x/time/rate"
)

// limiterInfo is a struct that holds a rate limiter and the last time it was seen.
type limiterInfo struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter hands out one token bucket per client IP.
type IPRateLimiter struct {
	rps        int
	expiration time.Duration
	limiters   sync.Map
	mu         sync.Mutex
}

// NewIPRateLimiter creates a limiter allowing rps requests per second per IP,
// with a burst of rps. Buckets unused for longer than expiration are dropped
// by Cleanup.
func NewIPRateLimiter(rps int, expiration time.Duration) *IPRateLimiter {
	return &IPRateLimiter{rps: rps, expiration: expiration}
}

// Allow reports whether a request from ip may proceed.
func (l *IPRateLimiter) Allow(ip string) bool {
	// Use LoadOrStore to ensure thread safety
	actual, _ := l.limiters.LoadOrStore(ip, &limiterInfo{
		limiter:  rate.NewLimiter(rate.Limit(l.rps), l.rps),
		lastSeen: time.Now(),
	})

	info := actual.(*limiterInfo)
	l.mu.Lock()
	info.lastSeen = time.Now()
	l.mu.Unlock()

	return info.limiter.Allow()
}

// Cleanup drops buckets idle since before now minus the expiration.
func (l *IPRateLimiter) Cleanup(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.limiters.Range(func(key, value interface{}) bool {
		if now.Sub(value.(*limiterInfo).lastSeen) > l.expiration {
			l.limiters.Delete(key)
		}
		return true
	})
}

// Run calls Cleanup every interval until ctx is done.
func (l *IPRateLimiter) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			l.Cleanup(now)
		}
	}
}

// RateLimitByIP applies rate limiting to requests per IP address.
func RateLimitByIP(l *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			// Too many requests
			metrics.RateLimitRejected()
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			c.Abort()
			return
		}

		c.Next()
	}
}
