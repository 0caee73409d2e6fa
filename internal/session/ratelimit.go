package session

import "time"

// rateLimiter caps the number of inputs accepted per window. A nil limiter
// allows everything.
type rateLimiter struct {
	limit       int
	counter     int
	window      time.Duration
	windowStart time.Time
}

func newRateLimiter(limit int) *rateLimiter {
	if limit <= 0 {
		return nil
	}
	return &rateLimiter{
		limit:  limit,
		window: time.Minute,
	}
}

func (r *rateLimiter) allow(now time.Time) bool {
	if r == nil {
		return true
	}
	if now.Sub(r.windowStart) >= r.window {
		r.windowStart = now
		r.counter = 0
	}
	r.counter++
	return r.counter <= r.limit
}
