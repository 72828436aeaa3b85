// Package ratelimiter provides an in-memory token bucket keyed by client.
package ratelimiter

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

var ErrInvalidConfig = errors.New("ratelimiter: invalid configuration")

// Config describes one bucket: Capacity tokens at most, refilled by
// RefillRate every RefillInterval.
type Config struct {
	Capacity       int           `env:"CAPACITY" envDefault:"30" validate:"gt=0"`
	RefillRate     int           `env:"REFILL_RATE" envDefault:"10" validate:"gt=0"`
	RefillInterval time.Duration `env:"REFILL_INTERVAL" envDefault:"1s" validate:"gt=0"`
	// Buckets idle longer than IdleTTL are dropped. Zero keeps them forever.
	IdleTTL time.Duration `env:"IDLE_TTL" envDefault:"10m" validate:"gte=0"`
}

func (c Config) validate() error {
	switch {
	case c.Capacity <= 0:
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	case c.RefillRate <= 0:
		return fmt.Errorf("%w: refill rate must be positive, got %d", ErrInvalidConfig, c.RefillRate)
	case c.RefillInterval <= 0:
		return fmt.Errorf("%w: refill interval must be positive, got %v", ErrInvalidConfig, c.RefillInterval)
	}
	return nil
}

// Result reports the bucket after a call to Allow.
type Result struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
	Allowed   bool
}

// RetryAfter is how long the caller should wait before the next token.
func (r Result) RetryAfter(now time.Time) time.Duration {
	if r.Allowed || !r.ResetAt.After(now) {
		return 0
	}
	return r.ResetAt.Sub(now)
}

type bucket struct {
	tokens     int
	lastRefill time.Time
	lastSeen   time.Time
}

// Limiter is safe for concurrent use.
type Limiter struct {
	cfg Config
	now func() time.Time

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

type Option func(*Limiter)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		if now != nil {
			l.now = now
		}
	}
}

func New(cfg Config, opts ...Option) (*Limiter, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	l := &Limiter{cfg: cfg, now: time.Now, buckets: make(map[string]*bucket)}
	for _, opt := range opts {
		opt(l)
	}
	l.lastSweep = l.now()
	return l, nil
}

// Allow takes one token from key's bucket. A rejected call does not drain the
// bucket further. Idle buckets are swept at most once per IdleTTL.
func (l *Limiter) Allow(key string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if l.cfg.IdleTTL > 0 && now.Sub(l.lastSweep) >= l.cfg.IdleTTL {
		l.sweep(now)
	}
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.cfg.Capacity, lastRefill: now}
		l.buckets[key] = b
	}
	b.lastSeen = now

	if steps := int(now.Sub(b.lastRefill) / l.cfg.RefillInterval); steps > 0 {
		// Cap steps so the multiplication cannot overflow after a long idle period.
		steps = min(steps, l.cfg.Capacity/l.cfg.RefillRate+1)
		b.tokens = min(b.tokens+steps*l.cfg.RefillRate, l.cfg.Capacity)
		b.lastRefill = now
	}

	res := Result{
		Limit:   l.cfg.Capacity,
		ResetAt: b.lastRefill.Add(l.cfg.RefillInterval),
	}
	if b.tokens > 0 {
		b.tokens--
		res.Allowed = true
	}
	res.Remaining = b.tokens
	return res
}

// Reset forgets key's bucket.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	delete(l.buckets, key)
	l.mu.Unlock()
}

// Sweep drops idle buckets and returns how many were removed.
func (l *Limiter) Sweep() int {
	if l.cfg.IdleTTL <= 0 {
		return 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sweep(l.now())
}

func (l *Limiter) sweep(now time.Time) int {
	l.lastSweep = now
	n := 0
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) > l.cfg.IdleTTL {
			delete(l.buckets, key)
			n++
		}
	}
	return n
}

func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
