package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"boiler-ai/backend/pkg/response"
)

// RateChecker sliding-window counter shared across instances. Satisfied by *redis.Client.
type RateChecker interface {
	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// idle in-process limiters are swept once the table grows past this
const localLimiterSweepSize = 10000

// RateLimit allows limit requests per window per client IP.
// The Redis window is authoritative; when shared is nil or Redis fails, an in-process token
// bucket with the same average rate decides instead.
func RateLimit(shared RateChecker, limit int, window time.Duration, logger *zap.Logger) gin.HandlerFunc {
	local := newLocalLimiter(limit, window)

	return func(c *gin.Context) {
		ip := c.ClientIP()

		allowed := false
		decided := false
		if shared != nil {
			ok, err := shared.CheckRateLimit(c.Request.Context(), "rate_limit:"+ip, limit, window)
			if err != nil {
				logger.Warn("rate limit store unavailable, using local limiter", zap.Error(err))
			} else {
				allowed, decided = ok, true
			}
		}
		if !decided {
			allowed = local.allow(ip)
		}

		if !allowed {
			c.Header("Retry-After", retryAfter(window))
			response.Error(c, http.StatusTooManyRequests, response.CodeRateLimited, "Too many requests, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}

// retryAfter whole seconds until a full window has passed
func retryAfter(window time.Duration) string {
	return strconv.Itoa(int(window.Seconds()))
}

// ── in-process fallback ──

type localEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type localLimiter struct {
	mu      sync.Mutex
	entries map[string]*localEntry
	every   rate.Limit
	burst   int
	idle    time.Duration
}

func newLocalLimiter(limit int, window time.Duration) *localLimiter {
	return &localLimiter{
		entries: make(map[string]*localEntry),
		every:   rate.Every(window / time.Duration(limit)),
		burst:   limit,
		idle:    window,
	}
}

func (l *localLimiter) allow(key string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.entries) > localLimiterSweepSize {
		for k, e := range l.entries {
			if now.Sub(e.lastSeen) > l.idle {
				delete(l.entries, k)
			}
		}
	}

	e, ok := l.entries[key]
	if !ok {
		e = &localEntry{limiter: rate.NewLimiter(l.every, l.burst)}
		l.entries[key] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}
