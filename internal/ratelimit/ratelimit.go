// Package ratelimit keeps one token bucket per key.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const idleTTL = 10 * time.Minute

type KeyedLimiter struct {
	mu       sync.Mutex
	limiters map[string]*entry
	limit    rate.Limit
	burst    int
	now      func() time.Time
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// New returns a limiter allowing rps events per second per key with the given burst.
// A zero rps disables limiting.
func New(rps float64, burst int) *KeyedLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &KeyedLimiter{
		limiters: make(map[string]*entry),
		limit:    rate.Limit(rps),
		burst:    burst,
		now:      time.Now,
	}
}

func (l *KeyedLimiter) Allow(key string) bool {
	if l.limit <= 0 {
		return true
	}

	now := l.now()
	l.mu.Lock()
	e, ok := l.limiters[key]
	if !ok {
		l.evictIdle(now)
		e = &entry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = e
	}
	e.lastSeen = now
	l.mu.Unlock()

	return e.limiter.AllowN(now, 1)
}

// evictIdle drops buckets untouched for idleTTL. Caller holds mu.
func (l *KeyedLimiter) evictIdle(now time.Time) {
	for key, e := range l.limiters {
		if now.Sub(e.lastSeen) > idleTTL {
			delete(l.limiters, key)
		}
	}
}

func (l *KeyedLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}
