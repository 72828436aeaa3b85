package httpserver

import (
	"context"
	"log/slog"
)

type Option func(*Server)

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithShutdownHook runs h while the server drains, with the shutdown
// deadline in ctx. Hooks run in registration order; nil hooks are ignored.
func WithShutdownHook(h func(ctx context.Context) error) Option {
	return func(s *Server) {
		if h != nil {
			s.hooks = append(s.hooks, h)
		}
	}
}
