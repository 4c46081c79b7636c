package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/benknight/cocolist/internal/config"
)

// KeyFunc picks the bucket a request is counted against.
type KeyFunc func(c echo.Context) string

// ByUserOrIP counts authenticated requests per user and others per client IP.
func ByUserOrIP(c echo.Context) string {
	if uid := UserIDFromContext(c); uid != "" {
		return "user:" + uid
	}
	return "ip:" + c.RealIP()
}

// staleAfter is how long an idle bucket is kept before it is dropped.
const staleAfter = 10 * time.Minute

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies a token bucket per key. Attach it to the routes it
// guards. A disabled config passes every request through.
func RateLimiter(cfg config.RateLimitConfig, key KeyFunc) echo.MiddlewareFunc {
	if !cfg.Enabled() {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				return next(c)
			}
		}
	}
	if key == nil {
		key = ByUserOrIP
	}

	perRequest := cfg.Interval / time.Duration(cfg.Requests)
	if perRequest <= 0 {
		perRequest = time.Second
	}

	var (
		mu       sync.Mutex
		buckets  = make(map[string]*bucket)
		lastScan time.Time
	)

	allow := func(k string, now time.Time) bool {
		mu.Lock()
		defer mu.Unlock()

		if now.Sub(lastScan) > staleAfter {
			for name, b := range buckets {
				if now.Sub(b.lastSeen) > staleAfter {
					delete(buckets, name)
				}
			}
			lastScan = now
		}

		b, ok := buckets[k]
		if !ok {
			b = &bucket{limiter: rate.NewLimiter(rate.Every(perRequest), cfg.Requests)}
			buckets[k] = b
		}
		b.lastSeen = now
		return b.limiter.AllowN(now, 1)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !allow(key(c), time.Now()) {
				c.Response().Header().Set("Retry-After", retryAfter(perRequest))
				return abort(c, http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}

func retryAfter(d time.Duration) string {
	secs := int((d + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}
