package site

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/familyspace/pkg/clientip"
	"github.com/dmitrymomot/familyspace/pkg/environment"
	"github.com/dmitrymomot/familyspace/pkg/httpserver"
	"github.com/dmitrymomot/familyspace/pkg/i18n"
	"github.com/dmitrymomot/familyspace/pkg/logger"
	"github.com/dmitrymomot/familyspace/pkg/requestid"
	"github.com/dmitrymomot/familyspace/pkg/theme"
)

type Mountable interface {
	Handle() http.Handler
}

// RouterOptions configures the root router. Site is required.
type RouterOptions struct {
	Site            Mountable
	Themes          *theme.Store
	Logger          *slog.Logger
	Env             environment.Environment
	DefaultLanguage string
	MaxBodySize     int64
	// TrustProxy takes the client address from edge proxy headers.
	TrustProxy bool
	// HealthChecks turn /healthz into a readiness probe.
	HealthChecks []func(context.Context) error
}

// Router wires the shared middleware stack in front of the site.
//
//	svc := site.NewService(cfg, forms, tr, cookies, log)
//	r := site.Router(site.RouterOptions{
//		Site:            svc,
//		Themes:          svc.Themes(),
//		Logger:          log,
//		Env:             environment.Parse(cfg.Env),
//		DefaultLanguage: cfg.DefaultLanguage,
//		MaxBodySize:     cfg.HTTP.MaxBodySize,
//		TrustProxy:      cfg.TrustProxy,
//	})
func Router(opts RouterOptions) chi.Router {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	var ipOpts []clientip.Option
	if opts.TrustProxy {
		ipOpts = append(ipOpts, clientip.WithProxyHeaders())
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer,
		requestid.Middleware,
		clientip.New(ipOpts...).Middleware,
		environment.Middleware(opts.Env),
		i18n.Middleware(
			i18n.DefaultLangExtractor(i18n.WithSupportedLanguages(SupportedLanguages...)),
			opts.DefaultLanguage,
		),
		httpserver.LimitBody(opts.MaxBodySize),
		accessLog(log),
	)
	if opts.Themes != nil {
		r.Use(opts.Themes.Middleware)
	}

	r.Get("/healthz", httpserver.HealthCheckHandler(log, opts.HealthChecks...))
	if opts.Site != nil {
		r.Mount("/", opts.Site.Handle())
	}
	return r
}

func accessLog(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			log.LogAttrs(r.Context(), slog.LevelInfo, "http request",
				logger.Component("http"),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Int("bytes", ww.BytesWritten()),
				logger.Lang(i18n.GetLocale(r.Context())),
				logger.Duration(time.Since(start)),
			)
		})
	}
}
