package server

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
	// Limiters idle for twice this long are dropped.
	CleanupInterval time.Duration
	// TrustProxy keys clients by the first X-Forwarded-For entry. Only set
	// it behind a proxy that overwrites the header.
	TrustProxy bool
}

var DefaultRateLimitConfig = RateLimitConfig{
	RequestsPerSecond: 1,
	Burst:             5,
	CleanupInterval:   5 * time.Minute,
}

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipRateLimiter throttles game creation per client address.
type ipRateLimiter struct {
	cfg RateLimitConfig

	mu          sync.Mutex
	limiters    map[string]*ipLimiter
	lastCleanup time.Time
}

func newIPRateLimiter(cfg RateLimitConfig) *ipRateLimiter {
	return &ipRateLimiter{cfg: cfg, limiters: map[string]*ipLimiter{}, lastCleanup: time.Now()}
}

func (rl *ipRateLimiter) allow(ip string) bool {
	now := time.Now()
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.lastCleanup) > rl.cfg.CleanupInterval {
		cutoff := now.Add(-2 * rl.cfg.CleanupInterval)
		for key, l := range rl.limiters {
			if l.lastSeen.Before(cutoff) {
				delete(rl.limiters, key)
			}
		}
		rl.lastCleanup = now
	}

	l, ok := rl.limiters[ip]
	if !ok {
		l = &ipLimiter{limiter: rate.NewLimiter(rate.Limit(rl.cfg.RequestsPerSecond), rl.cfg.Burst)}
		rl.limiters[ip] = l
	}
	l.lastSeen = now
	return l.limiter.Allow()
}

func (rl *ipRateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r, rl.cfg.TrustProxy)
		if !rl.allow(ip) {
			rejectedRequests.Inc()
			log.Warn().Str("ip", ip).Str("path", r.URL.Path).Msg("rate limited")
			w.Header().Set("Retry-After", "1")
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP is the socket address, or the first X-Forwarded-For entry when
// the proxy is trusted.
func clientIP(r *http.Request, trustProxy bool) string {
	if xff := r.Header.Get("X-Forwarded-For"); trustProxy && xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
