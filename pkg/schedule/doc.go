// Package schedule runs delayed tasks that can be cancelled.
//
// A Scheduler is bound to a lifetime: when its parent context ends or Close
// is called, tasks that have not started are cancelled and running ones are
// awaited. The site uses one scheduler per streamed response to dismiss
// toasts, scroll to the first invalid field and redirect after login; a
// client that disconnects takes its pending tasks with it.
//
//	s := schedule.New(r.Context())
//	defer s.Close()
//
//	h := s.After(5*time.Second, func(ctx context.Context) {
//		removeToast(ctx, id)
//	})
//	// closing the toast early:
//	h.Cancel()
package schedule
