package providers

import (
	"carhoot/internal/structures"
	"golang.org/x/time/rate"
	"net"
	"net/http"
	"sync"
	"time"
)

const (
	limiterIdleTTL   = 10 * time.Minute
	limiterSweepSize = 10000
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles each remote address separately. The client cookie is
// not used as the key: a caller can drop it and get a fresh id every request.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*clientLimiter
	limit    rate.Limit
	burst    int
	logger   Logger
}

// NewRateLimitMiddleware returns a pass-through middleware when rps is not set.
func NewRateLimitMiddleware(conf *structures.Config, logger Logger) Middleware {
	if conf.RateLimit.RPS <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	rl := &RateLimiter{
		limiters: make(map[string]*clientLimiter),
		limit:    rate.Limit(conf.RateLimit.RPS),
		burst:    max(conf.RateLimit.Burst, 1),
		logger:   logger,
	}
	return rl.Middleware
}

func (rl *RateLimiter) get(key string, now time.Time) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if cl, ok := rl.limiters[key]; ok {
		cl.lastSeen = now
		return cl.limiter
	}
	if len(rl.limiters) >= limiterSweepSize {
		for k, cl := range rl.limiters {
			if now.Sub(cl.lastSeen) > limiterIdleTTL {
				delete(rl.limiters, k)
			}
		}
	}
	cl := &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst), lastSeen: now}
	rl.limiters[key] = cl
	return cl.limiter
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := remoteHost(r)
		if !rl.get(key, time.Now()).Allow() {
			rl.logger.Warnf(GetLogTypeByRequestType(r.Method), "Rate limit exceeded for %s on %s", key, r.URL.Path)
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
