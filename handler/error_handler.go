package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/familyspace/pkg/binder"
	"github.com/dmitrymomot/familyspace/pkg/environment"
	"github.com/dmitrymomot/familyspace/pkg/logger"
	"github.com/dmitrymomot/familyspace/pkg/requestid"
)

type ErrorPageParams struct {
	Error      string
	StatusCode int
	RequestID  string
	RetryURL   string
	// Detail is the raw error of a 5xx response, set in development only.
	Detail string
}

type ErrorToastParams struct {
	Message   string
	Type      string // "error" or "warning"
	RequestID string
}

type ErrorHandlerConfig struct {
	// ErrorPage renders the page for plain requests. Without it the handler
	// falls back to http.Error.
	ErrorPage func(ErrorPageParams) templ.Component
	// ErrorToast renders the notice patched into DataStar pages.
	ErrorToast func(ErrorToastParams) templ.Component

	// Translate resolves message keys. The key itself is used when nil.
	Translate func(ctx context.Context, key, fallback string) string

	ToastTarget string                    // default "#toast-container"
	ToastMode   datastar.ElementPatchMode // default PatchPrepend
}

type ErrorInfo struct {
	StatusCode int
	Key        string
	Message    string
	Type       string
	LogLevel   slog.Level
}

const genericErrorKey = "http.error.generic"

// ClassifyError maps err to a status, message key and log level. Client
// errors are warnings, everything else is an error.
func ClassifyError(err error) ErrorInfo {
	info := ErrorInfo{
		StatusCode: http.StatusInternalServerError,
		Key:        genericErrorKey,
		Message:    "An error occurred processing your request",
	}

	var httpErr HTTPError
	var valErr ValidationError
	var maxBytes *http.MaxBytesError
	switch {
	case errors.As(err, &valErr):
		info.StatusCode = http.StatusUnprocessableEntity
		info.Key = "http.error.validation"
		info.Message = valErr.Error()
	case errors.As(err, &maxBytes):
		info.StatusCode = ErrRequestEntityTooLarge.Code
		info.Key = ErrRequestEntityTooLarge.Key
		info.Message = info.Key
	case errors.Is(err, binder.ErrMissingContentType):
		info.StatusCode = ErrUnsupportedMediaType.Code
		info.Key = ErrUnsupportedMediaType.Key
		info.Message = info.Key
	case errors.Is(err, binder.ErrInvalidForm), errors.Is(err, binder.ErrFailedToParseJSON),
		errors.Is(err, binder.ErrInvalidQuery), errors.Is(err, binder.ErrInvalidPath):
		info.StatusCode = ErrBadRequest.Code
		info.Key = ErrBadRequest.Key
		info.Message = info.Key
	case errors.As(err, &httpErr):
		info.StatusCode = httpErr.Code
		info.Key = httpErr.Key
		info.Message = httpErr.Key
	}

	info.Type = "error"
	info.LogLevel = slog.LevelError
	if info.StatusCode >= 400 && info.StatusCode < 500 {
		info.Type = "warning"
		info.LogLevel = slog.LevelWarn
	}
	return info
}

// NewErrorHandler answers plain requests with an error page and DataStar
// requests with an error toast.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler {
	if log == nil {
		log = slog.Default()
	}
	if cfg.ToastTarget == "" {
		cfg.ToastTarget = "#toast-container"
	}
	if cfg.ToastMode == "" {
		cfg.ToastMode = PatchPrepend
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		reqID := requestid.FromContext(r.Context())
		info := ClassifyError(err)
		if cfg.Translate != nil && info.Key != "http.error.validation" {
			info.Message = cfg.Translate(r.Context(), info.Key, info.Message)
		}

		log.LogAttrs(r.Context(), info.LogLevel, "request error",
			logger.Component("error_handler"),
			logger.Error(err),
			slog.Int("status_code", info.StatusCode),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Bool("datastar", IsDataStar(r)),
		)

		if IsDataStar(r) {
			if cfg.ErrorToast == nil {
				log.WarnContext(r.Context(), "no error toast configured", logger.Component("error_handler"))
				return
			}
			toast := cfg.ErrorToast(ErrorToastParams{Message: info.Message, Type: info.Type, RequestID: reqID})
			resp := Templ(toast, WithTarget(cfg.ToastTarget), WithPatchMode(cfg.ToastMode))
			if rerr := resp.Render(ctx.ResponseWriter(), r); rerr != nil {
				log.ErrorContext(r.Context(), "failed to render error toast",
					logger.Component("error_handler"),
					logger.Error(rerr),
				)
			}
			return
		}

		if cfg.ErrorPage == nil {
			http.Error(ctx.ResponseWriter(), info.Message, info.StatusCode)
			return
		}
		params := ErrorPageParams{
			Error:      info.Message,
			StatusCode: info.StatusCode,
			RequestID:  reqID,
			RetryURL:   r.URL.Path,
		}
		if info.StatusCode >= http.StatusInternalServerError && environment.IsDevelopment(r.Context()) {
			params.Detail = err.Error()
		}
		page := cfg.ErrorPage(params)
		if rerr := TemplStatus(info.StatusCode, page).Render(ctx.ResponseWriter(), r); rerr != nil {
			log.ErrorContext(r.Context(), "failed to render error page",
				logger.Component("error_handler"),
				logger.Error(rerr),
			)
		}
	}
}
