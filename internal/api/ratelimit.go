package api

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig configures the per-IP limiter
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
	CleanupInterval   time.Duration // idle limiters are dropped after twice this
}

// DefaultRateLimitConfig suits a handful of spectators polling the state.
var DefaultRateLimitConfig = RateLimitConfig{
	RequestsPerSecond: 20,
	Burst:             40,
	CleanupInterval:   5 * time.Minute,
}

type ipLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter keeps one token bucket per client IP.
type IPRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*ipLimiterEntry
	config   RateLimitConfig

	stopChan chan struct{}
	stopOnce sync.Once

	allowed  atomic.Uint64
	rejected atomic.Uint64
}

// NewIPRateLimiter creates a limiter and its cleanup goroutine.
func NewIPRateLimiter(cfg RateLimitConfig) *IPRateLimiter {
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = DefaultRateLimitConfig.CleanupInterval
	}
	rl := &IPRateLimiter{
		limiters: make(map[string]*ipLimiterEntry),
		config:   cfg,
		stopChan: make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// Stop ends the cleanup goroutine
func (rl *IPRateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopChan) })
}

// Allow reports whether a request from ip may proceed.
func (rl *IPRateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	e, ok := rl.limiters[ip]
	if !ok {
		e = &ipLimiterEntry{
			limiter: rate.NewLimiter(rate.Limit(rl.config.RequestsPerSecond), rl.config.Burst),
		}
		rl.limiters[ip] = e
	}
	e.lastSeen = time.Now()
	rl.mu.Unlock()

	if e.limiter.Allow() {
		rl.allowed.Add(1)
		return true
	}
	rl.rejected.Add(1)
	return false
}

func (rl *IPRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stopChan:
			return
		case <-ticker.C:
			rl.cleanup(time.Now().Add(-2 * rl.config.CleanupInterval))
		}
	}
}

func (rl *IPRateLimiter) cleanup(cutoff time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, e := range rl.limiters {
		if e.lastSeen.Before(cutoff) {
			delete(rl.limiters, ip)
		}
	}
}

// Middleware answers 429 once an IP runs out of tokens
func (rl *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow(GetClientIP(r)) {
			RecordConnectionRejected("rate_limit")
			w.Header().Set("Retry-After", "1")
			writeError(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetStats returns allow/reject counters
func (rl *IPRateLimiter) GetStats() map[string]uint64 {
	return map[string]uint64{
		"allowed":  rl.allowed.Load(),
		"rejected": rl.rejected.Load(),
	}
}

// GetClientIP prefers X-Forwarded-For, then X-Real-IP, then RemoteAddr.
// The headers are only trustworthy behind a proxy that sets them.
func GetClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// connLimiter caps concurrent websocket connections per IP
type connLimiter struct {
	mu       sync.Mutex
	conns    map[string]int
	maxPerIP int
}

func newConnLimiter(maxPerIP int) *connLimiter {
	return &connLimiter{conns: make(map[string]int), maxPerIP: maxPerIP}
}

func (cl *connLimiter) acquire(ip string) bool {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	if cl.conns[ip] >= cl.maxPerIP {
		return false
	}
	cl.conns[ip]++
	return true
}

func (cl *connLimiter) release(ip string) {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	if cl.conns[ip] <= 1 {
		delete(cl.conns, ip)
		return
	}
	cl.conns[ip]--
}

func (cl *connLimiter) count(ip string) int {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return cl.conns[ip]
}

// IsAllowedOrigin accepts local origins and anything in extra.
// Same-host pages send no Origin and are accepted.
func IsAllowedOrigin(origin string, extra []string) bool {
	if origin == "" {
		return true
	}
	for _, prefix := range []string{"http://localhost", "http://127.0.0.1"} {
		if origin == prefix || strings.HasPrefix(origin, prefix+":") {
			return true
		}
	}
	for _, o := range extra {
		if origin == o {
			return true
		}
	}
	return false
}
