package middleware

import (
	"net/http"
	"sync"
	"time"

	"saribill/internal/apierror"

	"github.com/gin-gonic/gin"
)

// slidingWindow is an in-memory per-IP rate limiter. Good enough for a
// single-instance deployment; entries are purged in the background.
type slidingWindow struct {
	mu      sync.Mutex
	hits    map[string][]time.Time
	limit   int
	window  time.Duration
	message string
}

func newSlidingWindow(limit int, window time.Duration, message string) *slidingWindow {
	sw := &slidingWindow{
		hits:    make(map[string][]time.Time),
		limit:   limit,
		window:  window,
		message: message,
	}
	go sw.purgeLoop()
	return sw
}

func (sw *slidingWindow) allow(key string) bool {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-sw.window)

	recent := sw.hits[key][:0]
	for _, t := range sw.hits[key] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}
	if len(recent) >= sw.limit {
		sw.hits[key] = recent
		return false
	}
	sw.hits[key] = append(recent, now)
	return true
}

func (sw *slidingWindow) purgeLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		sw.mu.Lock()
		cutoff := time.Now().Add(-sw.window)
		for key, times := range sw.hits {
			alive := false
			for _, t := range times {
				if t.After(cutoff) {
					alive = true
					break
				}
			}
			if !alive {
				delete(sw.hits, key)
			}
		}
		sw.mu.Unlock()
	}
}

func (sw *slidingWindow) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !sw.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(sw.message))
			return
		}
		c.Next()
	}
}

// RateLimiter is the general API limit: 300 requests per minute per IP.
func RateLimiter() gin.HandlerFunc {
	return newSlidingWindow(300, time.Minute, "too many requests").handler()
}

// PublicRateLimiter protects the unauthenticated bill lookup endpoint.
func PublicRateLimiter() gin.HandlerFunc {
	return newSlidingWindow(60, time.Minute, "too many requests").handler()
}

// LoginRateLimiter throttles credential guessing on the login endpoint.
func LoginRateLimiter() gin.HandlerFunc {
	return newSlidingWindow(5, time.Minute, "too many login attempts, try again later").handler()
}
