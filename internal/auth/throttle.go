package auth

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Throttle is a per-client token bucket limiter for the auth endpoints.
type Throttle struct {
	mu       sync.Mutex
	limiters map[string]*throttleEntry
	limit    rate.Limit
	burst    int
	idleTTL  time.Duration

	done     chan struct{}
	stopOnce sync.Once
}

type throttleEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewThrottle allows rps requests per second per client with the given
// burst. Clients idle for longer than idleTTL are forgotten.
func NewThrottle(rps float64, burst int, idleTTL time.Duration) *Throttle {
	if burst <= 0 {
		burst = 1
	}
	if idleTTL <= 0 {
		idleTTL = 10 * time.Minute
	}

	t := &Throttle{
		limiters: make(map[string]*throttleEntry),
		limit:    rate.Limit(rps),
		burst:    burst,
		idleTTL:  idleTTL,
		done:     make(chan struct{}),
	}
	go t.cleanupLoop()
	return t
}

// Allow reports whether a request from key may proceed now.
func (t *Throttle) Allow(key string) bool {
	now := time.Now()

	t.mu.Lock()
	entry, ok := t.limiters[key]
	if !ok {
		entry = &throttleEntry{limiter: rate.NewLimiter(t.limit, t.burst)}
		t.limiters[key] = entry
	}
	entry.lastSeen = now
	t.mu.Unlock()

	return entry.limiter.AllowN(now, 1)
}

// Middleware rejects requests over the client IP's budget with 429.
func (t *Throttle) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !t.Allow(c.ClientIP()) {
			setRetryAfter(c, time.Second)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "too many requests",
			})
			return
		}
		c.Next()
	}
}

// Stop shuts down the cleanup goroutine.
func (t *Throttle) Stop() {
	t.stopOnce.Do(func() {
		close(t.done)
	})
}

func (t *Throttle) cleanupLoop() {
	ticker := time.NewTicker(t.idleTTL)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			t.evictIdle(time.Now())
		case <-t.done:
			return
		}
	}
}

func (t *Throttle) evictIdle(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for key, entry := range t.limiters {
		if now.Sub(entry.lastSeen) > t.idleTTL {
			delete(t.limiters, key)
		}
	}
}
