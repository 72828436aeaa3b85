package ratelimiter_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/familyspace/pkg/ratelimiter"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock {
	return &clock{now: time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newLimiter(t *testing.T, cfg ratelimiter.Config, c *clock) *ratelimiter.Limiter {
	t.Helper()
	l, err := ratelimiter.New(cfg, ratelimiter.WithClock(c.Now))
	require.NoError(t, err)
	return l
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  ratelimiter.Config
	}{
		{"zero capacity", ratelimiter.Config{RefillRate: 1, RefillInterval: time.Second}},
		{"zero refill rate", ratelimiter.Config{Capacity: 1, RefillInterval: time.Second}},
		{"zero interval", ratelimiter.Config{Capacity: 1, RefillRate: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ratelimiter.New(tt.cfg)
			assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
		})
	}
}

func TestAllow(t *testing.T) {
	t.Parallel()

	t.Run("burst then reject", func(t *testing.T) {
		t.Parallel()
		c := newClock()
		l := newLimiter(t, ratelimiter.Config{Capacity: 3, RefillRate: 1, RefillInterval: time.Second}, c)

		for i := 2; i >= 0; i-- {
			res := l.Allow("a")
			assert.True(t, res.Allowed)
			assert.Equal(t, i, res.Remaining)
			assert.Equal(t, 3, res.Limit)
		}

		res := l.Allow("a")
		assert.False(t, res.Allowed)
		assert.Equal(t, 0, res.Remaining)
		assert.Equal(t, time.Second, res.RetryAfter(c.Now()))

		assert.True(t, l.Allow("b").Allowed, "buckets are per key")
	})

	t.Run("refill is capped at capacity", func(t *testing.T) {
		t.Parallel()
		c := newClock()
		l := newLimiter(t, ratelimiter.Config{Capacity: 2, RefillRate: 1, RefillInterval: time.Second}, c)

		l.Allow("a")
		l.Allow("a")
		assert.False(t, l.Allow("a").Allowed)

		c.Advance(time.Second)
		assert.True(t, l.Allow("a").Allowed)
		assert.False(t, l.Allow("a").Allowed)

		c.Advance(24 * time.Hour)
		res := l.Allow("a")
		assert.True(t, res.Allowed)
		assert.Equal(t, 1, res.Remaining)
	})

	t.Run("reset restores the bucket", func(t *testing.T) {
		t.Parallel()
		c := newClock()
		l := newLimiter(t, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Minute}, c)

		l.Allow("a")
		assert.False(t, l.Allow("a").Allowed)
		l.Reset("a")
		assert.True(t, l.Allow("a").Allowed)
	})

	t.Run("concurrent callers never exceed capacity", func(t *testing.T) {
		t.Parallel()
		c := newClock()
		l := newLimiter(t, ratelimiter.Config{Capacity: 50, RefillRate: 1, RefillInterval: time.Hour}, c)

		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			allowed int
		)
		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 20 {
					if l.Allow("shared").Allowed {
						mu.Lock()
						allowed++
						mu.Unlock()
					}
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 50, allowed)
	})
}

func TestSweep(t *testing.T) {
	t.Parallel()

	c := newClock()
	l := newLimiter(t, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Second, IdleTTL: time.Minute}, c)

	l.Allow("old")
	c.Advance(30 * time.Second)
	l.Allow("new")
	assert.Equal(t, 2, l.Len())

	c.Advance(45 * time.Second)
	assert.Equal(t, 1, l.Sweep())
	assert.Equal(t, 1, l.Len())

	c.Advance(2 * time.Minute)
	l.Allow("other")
	assert.Equal(t, 1, l.Len(), "Allow sweeps idle buckets")
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	c := newClock()
	l := newLimiter(t, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: 2 * time.Second}, c)

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	key := func(r *http.Request) string { return r.Header.Get("X-Client") }

	t.Run("default rejection", func(t *testing.T) {
		h := l.Middleware(key, nil)(next)

		send := func() *httptest.ResponseRecorder {
			r := httptest.NewRequest(http.MethodPost, "/", nil)
			r.Header.Set("X-Client", "a")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)
			return w
		}

		w := send()
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

		w = send()
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "2", w.Header().Get("Retry-After"))
	})

	t.Run("empty key is not limited", func(t *testing.T) {
		h := l.Middleware(key, nil)(next)
		for range 3 {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
			assert.Equal(t, http.StatusNoContent, w.Code)
			assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
		}
	})

	t.Run("custom rejection handler", func(t *testing.T) {
		h := l.Middleware(key, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))(next)

		r := httptest.NewRequest(http.MethodPost, "/", nil)
		r.Header.Set("X-Client", "b")
		h.ServeHTTP(httptest.NewRecorder(), r)

		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		assert.Equal(t, http.StatusTeapot, w.Code)
	})
}
