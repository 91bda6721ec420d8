// Package ratelimit provides per-client token bucket rate limiting for
// the scrape-triggering endpoints. A chart miss costs a headless-browser
// run, so these routes are limited harder than a normal API would be.
package ratelimit

import (
	"sync"
	"time"
)

// TokenBucket allows a burst of requests with tokens refilling at a
// steady rate.
type TokenBucket struct {
	capacity   int
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
	mu         sync.Mutex
}

func newTokenBucket(capacity int, refillRate float64) *TokenBucket {
	return &TokenBucket{
		capacity:   capacity,
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

// allow consumes a token if one is available.
func (tb *TokenBucket) allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill)
	tb.tokens = min(float64(tb.capacity), tb.tokens+elapsed.Seconds()*tb.refillRate)
	tb.lastRefill = now

	if tb.tokens >= 1.0 {
		tb.tokens -= 1.0
		return true
	}
	return false
}

// idleTTL is how long a client's bucket survives without a request. A
// bucket idle that long has fully refilled, so recreating it later loses
// no state.
const idleTTL = time.Hour

// Config holds limiter settings.
type Config struct {
	// Capacity is the burst size per client.
	Capacity int
	// RefillRate is tokens per second per client.
	RefillRate float64
	// CleanupInterval is how often idle buckets are evicted. Zero
	// disables the eviction goroutine.
	CleanupInterval time.Duration
}

// DefaultConfig allows short bursts with a slow steady rate, sized for
// endpoints whose misses launch a browser.
func DefaultConfig() Config {
	return Config{Capacity: 10, RefillRate: 0.5, CleanupInterval: 5 * time.Minute}
}

// Limiter manages one token bucket per client id. Client ids come from
// request headers, so the map is attacker-growable; idle buckets are
// evicted to keep it bounded.
type Limiter struct {
	buckets    map[string]*TokenBucket
	lastAccess map[string]time.Time
	mu         sync.Mutex
	config     Config

	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
}

// NewLimiter creates a Limiter with the given config.
func NewLimiter(config Config) *Limiter {
	if config.Capacity <= 0 || config.RefillRate <= 0 {
		config = DefaultConfig()
	}
	l := &Limiter{
		buckets:    make(map[string]*TokenBucket),
		lastAccess: make(map[string]time.Time),
		config:     config,
	}
	if config.CleanupInterval > 0 {
		l.cleanupTicker = time.NewTicker(config.CleanupInterval)
		l.cleanupStop = make(chan struct{})
		go l.cleanupLoop()
	}
	return l
}

// Allow reports whether the client may proceed, consuming a token if so.
func (l *Limiter) Allow(clientID string) bool {
	l.mu.Lock()
	bucket, ok := l.buckets[clientID]
	if !ok {
		bucket = newTokenBucket(l.config.Capacity, l.config.RefillRate)
		l.buckets[clientID] = bucket
	}
	l.lastAccess[clientID] = time.Now()
	l.mu.Unlock()

	return bucket.allow()
}

// Stop halts the eviction goroutine.
func (l *Limiter) Stop() {
	if l.cleanupTicker != nil {
		l.cleanupTicker.Stop()
		close(l.cleanupStop)
	}
}

func (l *Limiter) cleanupLoop() {
	for {
		select {
		case <-l.cleanupTicker.C:
			l.evictIdle(time.Now().Add(-idleTTL))
		case <-l.cleanupStop:
			return
		}
	}
}

// evictIdle drops every bucket with no request since cutoff.
func (l *Limiter) evictIdle(cutoff time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for id, last := range l.lastAccess {
		if last.Before(cutoff) {
			delete(l.buckets, id)
			delete(l.lastAccess, id)
		}
	}
}
