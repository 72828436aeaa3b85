// Package httpserver runs an http.Server until its context ends and then
// shuts it down gracefully, running registered hooks (such as closing
// pending SSE schedulers) inside the shutdown deadline.
//
//	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
//	defer stop()
//	srv := httpserver.New(cfg, httpserver.WithLogger(log))
//	return srv.Run(ctx, router)
package httpserver
