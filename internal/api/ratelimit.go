package api

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Buckets idle for longer than this are dropped by the sweeper.
const cleanupIdleDuration = 10 * time.Minute

type ipBucket struct {
	mu       sync.Mutex
	tokens   float64
	lastSeen time.Time
}

// RateLimiter is a per-IP token bucket guarding the analysis routes.
type RateLimiter struct {
	rate  float64 // tokens added per second
	burst float64 // max bucket capacity
	now   func() time.Time

	mu      sync.Mutex
	buckets map[string]*ipBucket
}

// NewRateLimiter allows ratePerSec requests per second per client IP with a
// burst capacity of burst requests.
func NewRateLimiter(ratePerSec float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		rate:    ratePerSec,
		burst:   float64(burst),
		now:     time.Now,
		buckets: make(map[string]*ipBucket),
	}
}

// WithClock sets a custom clock function for deterministic tests.
func (rl *RateLimiter) WithClock(now func() time.Time) *RateLimiter {
	rl.now = now
	return rl
}

func (rl *RateLimiter) allow(ip string) (bool, time.Duration) {
	rl.mu.Lock()
	bucket, ok := rl.buckets[ip]
	if !ok {
		bucket = &ipBucket{tokens: rl.burst, lastSeen: rl.now()}
		rl.buckets[ip] = bucket
	}
	rl.mu.Unlock()

	bucket.mu.Lock()
	defer bucket.mu.Unlock()

	now := rl.now()
	bucket.tokens += now.Sub(bucket.lastSeen).Seconds() * rl.rate
	if bucket.tokens > rl.burst {
		bucket.tokens = rl.burst
	}
	bucket.lastSeen = now

	if bucket.tokens >= 1.0 {
		bucket.tokens--
		return true, 0
	}

	if rl.rate <= 0 {
		return false, time.Minute
	}
	retryAfter := time.Duration((1.0 - bucket.tokens) / rl.rate * float64(time.Second))
	return false, retryAfter
}

// Middleware returns a Gin handler that enforces the rate limit.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, retryAfter := rl.allow(c.ClientIP())
		if !allowed {
			seconds := int(math.Ceil(retryAfter.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			c.Header("Retry-After", strconv.Itoa(seconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": seconds,
			})
			return
		}
		c.Next()
	}
}

// Sweep removes buckets idle since before cutoff and returns how many
// remain.
func (rl *RateLimiter) Sweep(cutoff time.Time) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, b := range rl.buckets {
		b.mu.Lock()
		idle := b.lastSeen.Before(cutoff)
		b.mu.Unlock()
		if idle {
			delete(rl.buckets, ip)
		}
	}
	return len(rl.buckets)
}

// RunCleanup sweeps idle buckets until stop is closed.
func (rl *RateLimiter) RunCleanup(stop <-chan struct{}) {
	ticker := time.NewTicker(cleanupIdleDuration)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			rl.Sweep(rl.now().Add(-cleanupIdleDuration))
		}
	}
}
