package site

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/familyspace/handler"
	"github.com/dmitrymomot/familyspace/modules/site/views"
	"github.com/dmitrymomot/familyspace/pkg/binder"
	"github.com/dmitrymomot/familyspace/pkg/clientip"
	"github.com/dmitrymomot/familyspace/pkg/cookie"
	"github.com/dmitrymomot/familyspace/pkg/form"
	"github.com/dmitrymomot/familyspace/pkg/i18n"
	"github.com/dmitrymomot/familyspace/pkg/logger"
	"github.com/dmitrymomot/familyspace/pkg/ratelimiter"
	"github.com/dmitrymomot/familyspace/pkg/schedule"
	"github.com/dmitrymomot/familyspace/pkg/theme"
	"github.com/dmitrymomot/familyspace/pkg/toast"
)

// Service serves the form pages, their live validation and the small pages
// around them.
type Service struct {
	cfg     Config
	forms   *form.Registry
	tr      *i18n.Translator
	cookies *cookie.Manager
	themes  *theme.Store
	assets  *Assets
	limiter *ratelimiter.Limiter
	log     *slog.Logger

	errorHandler handler.ErrorHandler

	mu      sync.Mutex
	streams map[*schedule.Scheduler]struct{}
	closing bool
}

// NewService builds the site. A zero cfg.RateLimit leaves live validation
// unlimited.
func NewService(cfg Config, forms *form.Registry, tr *i18n.Translator, cookies *cookie.Manager, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	s := &Service{
		cfg:     cfg,
		forms:   forms,
		tr:      tr,
		cookies: cookies,
		themes:  theme.NewStore(cookies),
		assets:  NewAssets(),
		log:     log,
		streams: make(map[*schedule.Scheduler]struct{}),
	}
	s.errorHandler = handler.NewErrorHandler(log, handler.ErrorHandlerConfig{
		ErrorPage:   s.errorPage,
		ErrorToast:  s.errorToast,
		Translate:   func(ctx context.Context, key, fallback string) string { return s.text(ctx).get(key, fallback) },
		ToastTarget: "#" + views.ToastContainerID,
	})
	s.assets.Init()

	if cfg.RateLimit != (ratelimiter.Config{}) {
		l, err := ratelimiter.New(cfg.RateLimit)
		if err != nil {
			log.Warn("rate limiting disabled", logger.Component("site"), logger.Error(err))
		}
		s.limiter = l
	}
	return s
}

func (s *Service) Themes() *theme.Store { return s.themes }

func (s *Service) ErrorHandler() handler.ErrorHandler { return s.errorHandler }

func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	onError := handler.WithErrorHandler(s.errorHandler)

	r.Get("/", handler.Wrap(s.index, onError))
	r.Get("/forms/{form}", handler.Wrap(s.formPage,
		handler.WithBinders(binder.Path(chi.URLParam)),
		onError,
	))
	r.Post("/forms/{form}", handler.Wrap(s.submit,
		handler.WithBinders(
			binder.Path(chi.URLParam),
			binder.Form(),
		),
		onError,
	))
	r.With(s.rateLimit(s.errorHandler)).Post("/forms/{form}/fields/{field}", handler.Wrap(s.fieldEvent,
		handler.WithBinders(
			binder.Path(chi.URLParam),
			binder.Query(),
			binder.Form(),
		),
		onError,
	))
	r.With(s.rateLimit(s.jsonError)).Post("/api/forms/{form}/validate", handler.Wrap(s.validate,
		handler.WithBinders(
			binder.Path(chi.URLParam),
			binder.Form(), // not applicable to JSON bodies
			binder.JSON(),
		),
		handler.WithErrorHandler(s.jsonError),
	))
	r.Post("/theme", handler.Wrap(s.toggleTheme, onError))
	r.Get("/account", handler.Wrap(s.account, onError))
	r.Get(AssetsPath, s.assets.ServeHTTP)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.errorHandler(handler.NewContext(w, r), handler.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.errorHandler(handler.NewContext(w, r), handler.ErrMethodNotAllowed)
	})

	return r
}

// rateLimit limits per client address; requests without one pass.
func (s *Service) rateLimit(onLimit handler.ErrorHandler) func(http.Handler) http.Handler {
	if s.limiter == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return s.limiter.Middleware(clientip.KeyFunc, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		onLimit(handler.NewContext(w, r), handler.ErrTooManyRequests)
	}))
}

// Shutdown cancels the pending toast dismissals, scrolls and redirects of
// every open stream so their responses end promptly. Streams opened later
// are closed as soon as they start.
func (s *Service) Shutdown(context.Context) error {
	s.mu.Lock()
	s.closing = true
	open := make([]*schedule.Scheduler, 0, len(s.streams))
	for sch := range s.streams {
		open = append(open, sch)
	}
	s.mu.Unlock()

	for _, sch := range open {
		sch.Close()
	}
	return nil
}

func (s *Service) track(sch *schedule.Scheduler) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing {
		return false
	}
	s.streams[sch] = struct{}{}
	return true
}

func (s *Service) untrack(sch *schedule.Scheduler) {
	s.mu.Lock()
	delete(s.streams, sch)
	s.mu.Unlock()
}

func (s *Service) errorPage(p handler.ErrorPageParams) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		t := s.text(ctx)
		body := views.Error(views.ErrorView{
			StatusCode:     p.StatusCode,
			Message:        p.Error,
			RequestID:      p.RequestID,
			RequestIDLabel: t.get("http.error.request_id", "Номер запроса"),
			RetryURL:       p.RetryURL,
			RetryLabel:     t.get("http.error.retry", "Повторить"),
			Detail:         p.Detail,
		})
		return s.layout(ctx, strconv.Itoa(p.StatusCode), nil, body).Render(ctx, w)
	})
}

func (s *Service) errorToast(p handler.ErrorToastParams) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		kind := toast.Error
		if p.Type == "warning" {
			kind = toast.Warning
		}
		return views.Toast(s.toastView(s.text(ctx), toast.New(kind, p.Message).WithDismiss(s.cfg.ToastDismiss))).Render(ctx, w)
	})
}

// jsonError answers API errors in the JSON envelope instead of a page.
func (s *Service) jsonError(ctx handler.Context, err error) {
	info := handler.ClassifyError(err)
	resp := handler.JSONError(err)
	if info.Key != "http.error.validation" {
		resp = resp.WithMessage(s.text(ctx).get(info.Key, ""))
	}
	if rerr := resp.Render(ctx.ResponseWriter(), ctx.Request()); rerr != nil {
		s.log.DebugContext(ctx, "failed to write json error", logger.Component("site"), logger.Error(rerr))
	}
}
