package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/dmitrymomot/familyspace/pkg/logger"
)

var (
	ErrStart          = errors.New("httpserver: start failed")
	ErrShutdown       = errors.New("httpserver: graceful shutdown failed")
	ErrAlreadyRunning = errors.New("httpserver: already running")
)

// Server is an http.Server with graceful shutdown bound to a context.
type Server struct {
	cfg   Config
	log   *slog.Logger
	hooks []func(context.Context) error

	mu   sync.Mutex
	srv  *http.Server
	addr net.Addr
	once sync.Once
	err  error
}

// New prepares a server for cfg. Addr and ShutdownTimeout fall back to
// ":8080" and ten seconds when unset.
func New(cfg Config, opts ...Option) *Server {
	s := &Server{
		cfg: cfg.withDefaults(),
		log: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run listens and serves handler until ctx is cancelled or Shutdown is
// called. Signal handling belongs to the caller, usually through
// signal.NotifyContext.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	if handler == nil {
		handler = http.NotFoundHandler()
	}

	s.mu.Lock()
	if s.srv != nil {
		s.mu.Unlock()
		return errors.Join(ErrStart, ErrAlreadyRunning)
	}
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		s.mu.Unlock()
		return errors.Join(ErrStart, err)
	}
	srv := &http.Server{
		Handler:      handler,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}
	s.srv = srv
	s.addr = ln.Addr()
	s.mu.Unlock()

	s.log.InfoContext(ctx, "http server started",
		logger.Component("httpserver"),
		slog.String("addr", ln.Addr().String()),
	)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	var runErr error
	select {
	case <-ctx.Done():
		if err := s.Shutdown(context.WithoutCancel(ctx)); err != nil {
			runErr = err
		}
		if err := <-errCh; runErr == nil {
			runErr = err
		}
	case runErr = <-errCh:
	}

	if runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
		if errors.Is(runErr, ErrShutdown) {
			return runErr
		}
		return errors.Join(ErrStart, runErr)
	}
	return nil
}

// Addr is the bound address once Run has started listening.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Shutdown drains connections and runs the shutdown hooks within the
// configured timeout. Repeated calls return the first result.
func (s *Server) Shutdown(ctx context.Context) error {
	s.once.Do(func() {
		s.mu.Lock()
		srv := s.srv
		s.mu.Unlock()
		if srv == nil {
			return
		}

		ctx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
		defer cancel()

		var errs []error
		for _, hook := range s.hooks {
			if err := hook(ctx); err != nil {
				errs = append(errs, err)
			}
		}
		if err := srv.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}

		if err := errors.Join(errs...); err != nil {
			s.err = errors.Join(ErrShutdown, err)
			s.log.ErrorContext(ctx, "http server shutdown failed",
				logger.Component("httpserver"),
				logger.Error(err),
			)
			return
		}
		s.log.InfoContext(ctx, "http server stopped", logger.Component("httpserver"))
	})
	return s.err
}
