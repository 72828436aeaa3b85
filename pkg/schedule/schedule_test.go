package schedule_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/dmitrymomot/familyspace/pkg/schedule"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestAfter_Runs(t *testing.T) {
	t.Parallel()

	s := schedule.New(context.Background())
	defer s.Close()

	var ran atomic.Bool
	h := s.After(10*time.Millisecond, func(context.Context) { ran.Store(true) })

	select {
	case <-h.Done():
	case <-time.After(time.Second):
		t.Fatal("task did not run")
	}
	assert.True(t, ran.Load())
	assert.False(t, h.Cancelled())
	assert.False(t, h.Cancel(), "a finished task cannot be cancelled")
}

func TestHandle_Cancel(t *testing.T) {
	t.Parallel()

	s := schedule.New(context.Background())
	defer s.Close()

	var ran atomic.Bool
	h := s.After(time.Hour, func(context.Context) { ran.Store(true) })

	assert.True(t, h.Cancel())
	assert.False(t, h.Cancel())
	assert.True(t, h.Cancelled())

	select {
	case <-h.Done():
	default:
		t.Fatal("done must be closed after cancel")
	}
	assert.False(t, ran.Load())
}

func TestClose_CancelsPending(t *testing.T) {
	t.Parallel()

	s := schedule.New(context.Background())

	var ran atomic.Int32
	handles := []*schedule.Handle{
		s.After(time.Hour, func(context.Context) { ran.Add(1) }),
		s.After(time.Hour, func(context.Context) { ran.Add(1) }),
	}

	s.Close()
	s.Close()

	for _, h := range handles {
		assert.True(t, h.Cancelled())
	}
	assert.Zero(t, ran.Load())

	late := s.After(0, func(context.Context) { ran.Add(1) })
	assert.True(t, late.Cancelled())
	<-late.Done()
	assert.Zero(t, ran.Load())
}

func TestClose_WaitsForRunningTask(t *testing.T) {
	t.Parallel()

	s := schedule.New(context.Background())

	started := make(chan struct{})
	var finished atomic.Bool
	s.After(0, func(ctx context.Context) {
		close(started)
		<-ctx.Done()
		finished.Store(true)
	})

	<-started
	s.Close()
	assert.True(t, finished.Load())
}

func TestParentContextCancelsTasks(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	s := schedule.New(ctx)
	defer s.Close()

	h := s.After(time.Hour, func(context.Context) {})
	cancel()

	select {
	case <-h.Done():
	case <-time.After(time.Second):
		t.Fatal("task was not cancelled with its parent context")
	}
	assert.True(t, h.Cancelled())
}

func TestWait(t *testing.T) {
	t.Parallel()

	s := schedule.New(context.Background())
	defer s.Close()

	var (
		mu    sync.Mutex
		order []int
	)
	record := func(n int) func(context.Context) {
		return func(context.Context) {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, n)
		}
	}
	s.After(5*time.Millisecond, record(1))
	s.After(50*time.Millisecond, record(2))

	require.NoError(t, s.Wait(context.Background()))
	mu.Lock()
	assert.Equal(t, []int{1, 2}, order)
	mu.Unlock()

	s.After(time.Hour, func(context.Context) {})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, s.Wait(ctx), context.DeadlineExceeded)
}
