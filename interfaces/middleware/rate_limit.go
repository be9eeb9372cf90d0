package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"vidtube/domain/dto"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter decides whether the caller identified by key may proceed.
type RateLimiter interface {
	Allow(key string) bool
}

type clientRateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	ttl       time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewRateLimiter allows requests events per window for each key, plus burst.
// Idle keys are forgotten after ttl.
func NewRateLimiter(requests int, window time.Duration, burst int, ttl time.Duration) RateLimiter {
	if requests <= 0 {
		requests = 1
	}
	if window <= 0 {
		window = time.Second
	}
	if burst <= 0 {
		burst = 1
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &clientRateLimiter{
		visitors:  make(map[string]*visitor),
		limit:     rate.Every(window / time.Duration(requests)),
		burst:     burst,
		ttl:       ttl,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (l *clientRateLimiter) Allow(key string) bool {
	if key == "" {
		key = "unknown"
	}
	now := l.now()

	l.mu.Lock()
	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	if now.Sub(l.lastSweep) >= l.ttl {
		l.sweep(now)
	}
	l.mu.Unlock()

	return v.limiter.AllowN(now, 1)
}

// sweep drops idle keys, at most once per ttl. Callers hold mu.
func (l *clientRateLimiter) sweep(now time.Time) {
	for k, v := range l.visitors {
		if now.Sub(v.lastSeen) > l.ttl {
			delete(l.visitors, k)
		}
	}
	l.lastSweep = now
}

// RateLimit keys on the authenticated principal when present and on the
// client IP otherwise.
func RateLimit(limiter RateLimiter) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		key := UserID(ctx)
		if key == "" {
			key = ctx.ClientIP()
		}
		if !limiter.Allow(key) {
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, dto.Res{
				Status:  http.StatusTooManyRequests,
				Message: "Too many requests",
			})
			return
		}
		ctx.Next()
	}
}
