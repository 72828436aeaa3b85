package schedule

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

const (
	statePending int32 = iota
	stateRunning
	stateCancelled
	stateFinished
)

// Handle controls one scheduled task.
type Handle struct {
	state atomic.Int32
	timer *time.Timer
	done  chan struct{}
	once  sync.Once
	owner *Scheduler
}

// Cancel prevents a pending task from running. It reports whether the task
// was stopped; a task that already started runs to completion.
func (h *Handle) Cancel() bool {
	if !h.state.CompareAndSwap(statePending, stateCancelled) {
		return false
	}
	if h.timer != nil {
		h.timer.Stop()
	}
	h.finish()
	return true
}

// Done is closed once the task has run or was cancelled.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Cancelled reports whether the task was cancelled before running.
func (h *Handle) Cancelled() bool {
	return h.state.Load() == stateCancelled
}

func (h *Handle) finish() {
	h.once.Do(func() {
		close(h.done)
		if h.owner != nil {
			h.owner.release(h)
		}
	})
}

// Scheduler runs delayed tasks bound to a lifetime, typically one response
// stream. Tasks still pending when the lifetime ends are cancelled.
type Scheduler struct {
	ctx    context.Context
	cancel context.CancelFunc
	stop   func() bool

	mu      sync.Mutex
	pending map[*Handle]struct{}
	closed  bool
	wg      sync.WaitGroup
}

// New creates a scheduler whose tasks are cancelled when ctx is done.
func New(ctx context.Context) *Scheduler {
	ctx, cancel := context.WithCancel(ctx)
	s := &Scheduler{
		ctx:     ctx,
		cancel:  cancel,
		pending: make(map[*Handle]struct{}),
	}
	s.stop = context.AfterFunc(ctx, s.cancelPending)
	return s
}

// Context is cancelled when the scheduler closes. Tasks receive it.
func (s *Scheduler) Context() context.Context {
	return s.ctx
}

// After schedules fn to run once d has elapsed. On a closed scheduler the
// returned handle is already cancelled.
func (s *Scheduler) After(d time.Duration, fn func(ctx context.Context)) *Handle {
	h := &Handle{done: make(chan struct{})}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		h.state.Store(stateCancelled)
		close(h.done)
		return h
	}
	h.owner = s
	s.pending[h] = struct{}{}
	s.wg.Add(1)
	h.timer = time.AfterFunc(d, func() { s.run(h, fn) })
	s.mu.Unlock()

	return h
}

// Wait blocks until every task scheduled so far has run or been cancelled,
// or until ctx is done.
func (s *Scheduler) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		s.cancelPending()
		<-done
		return ctx.Err()
	}
}

// Close cancels pending tasks and waits for running ones. It is idempotent.
func (s *Scheduler) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.stop()
	s.cancel()
	s.cancelPending()
	s.wg.Wait()
}

func (s *Scheduler) run(h *Handle, fn func(ctx context.Context)) {
	if !h.state.CompareAndSwap(statePending, stateRunning) {
		return
	}
	defer func() {
		h.state.Store(stateFinished)
		h.finish()
	}()
	fn(s.ctx)
}

func (s *Scheduler) cancelPending() {
	s.mu.Lock()
	handles := make([]*Handle, 0, len(s.pending))
	for h := range s.pending {
		handles = append(handles, h)
	}
	s.mu.Unlock()

	for _, h := range handles {
		h.Cancel()
	}
}

func (s *Scheduler) release(h *Handle) {
	s.mu.Lock()
	delete(s.pending, h)
	s.mu.Unlock()
	s.wg.Done()
}
