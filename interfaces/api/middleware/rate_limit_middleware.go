package middleware

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"taskboard/pkg/utils"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// visitorSet holds one limiter per client key. Idle visitors are swept at
// most once per idleTTL, on the request that crosses the boundary.
type visitorSet struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
}

func newVisitorSet(limit rate.Limit, burst int, idleTTL time.Duration, now time.Time) *visitorSet {
	return &visitorSet{
		visitors:  make(map[string]*visitor),
		limit:     limit,
		burst:     burst,
		idleTTL:   idleTTL,
		lastSweep: now,
	}
}

func (s *visitorSet) get(key string, now time.Time) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.lastSweep) >= s.idleTTL {
		for k, v := range s.visitors {
			if now.Sub(v.lastSeen) > s.idleTTL {
				delete(s.visitors, k)
			}
		}
		s.lastSweep = now
	}

	v, ok := s.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter
}

func (s *visitorSet) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.visitors)
}

// RateLimiter allows requestsPerMin per client IP with the given burst.
// Visitors idle for longer than idleTTL are forgotten.
func RateLimiter(requestsPerMin, burst int, idleTTL time.Duration) fiber.Handler {
	if requestsPerMin <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	if burst <= 0 {
		burst = 1
	}
	if idleTTL <= 0 {
		idleTTL = 10 * time.Minute
	}

	visitors := newVisitorSet(rate.Limit(float64(requestsPerMin)/60.0), burst, idleTTL, time.Now())

	return func(c *fiber.Ctx) error {
		if !visitors.get(c.IP(), time.Now()).Allow() {
			c.Set(fiber.HeaderRetryAfter, "60")
			return utils.ErrorResponse(c, fiber.StatusTooManyRequests, "RATE_LIMITED", "Rate limit exceeded", nil)
		}
		return c.Next()
	}
}
