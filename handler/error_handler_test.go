package handler_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/familyspace/handler"
	"github.com/dmitrymomot/familyspace/pkg/binder"
	"github.com/dmitrymomot/familyspace/pkg/environment"
	"github.com/dmitrymomot/familyspace/pkg/requestid"
)

func errorPage(p handler.ErrorPageParams) templ.Component {
	return text(fmt.Sprintf("page %d: %s (%s)", p.StatusCode, p.Error, p.RequestID))
}

func errorToast(p handler.ErrorToastParams) templ.Component {
	return text(fmt.Sprintf(`<div class="form-message form-message--%s">%s</div>`, p.Type, p.Message))
}

func TestClassifyError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		level  slog.Level
	}{
		{"generic", errors.New("boom"), http.StatusInternalServerError, slog.LevelError},
		{"http error", handler.ErrNotFound, http.StatusNotFound, slog.LevelWarn},
		{"wrapped http error", fmt.Errorf("lookup: %w", handler.ErrNotFound), http.StatusNotFound, slog.LevelWarn},
		{"validation", handler.ValidationError{"email": {"invalid"}}, http.StatusUnprocessableEntity, slog.LevelWarn},
		{"malformed form", fmt.Errorf("%w: bad", binder.ErrInvalidForm), http.StatusBadRequest, slog.LevelWarn},
		{"no content type", binder.ErrMissingContentType, http.StatusUnsupportedMediaType, slog.LevelWarn},
		{"body too large", fmt.Errorf("%w: %w", binder.ErrInvalidForm, &http.MaxBytesError{Limit: 1}), http.StatusRequestEntityTooLarge, slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			info := handler.ClassifyError(tt.err)
			assert.Equal(t, tt.status, info.StatusCode)
			assert.Equal(t, tt.level, info.LogLevel)
		})
	}
}

func TestNewErrorHandler(t *testing.T) {
	t.Parallel()

	t.Run("plain request renders page", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := slog.New(slog.NewJSONHandler(&buf, nil))
		eh := handler.NewErrorHandler(log, handler.ErrorHandlerConfig{
			ErrorPage: errorPage,
			Translate: func(_ context.Context, key, _ string) string { return "translated " + key },
		})

		req := httptest.NewRequest(http.MethodGet, "/forms/nope", nil)
		req = req.WithContext(requestid.WithContext(req.Context(), "req-1"))
		rec := httptest.NewRecorder()
		eh(handler.NewContext(rec, req), handler.ErrNotFound)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "page 404: translated http.error.not_found (req-1)", rec.Body.String())
		assert.Contains(t, buf.String(), `"level":"WARN"`)
		assert.Contains(t, buf.String(), `"status_code":404`)
	})

	t.Run("datastar request gets toast", func(t *testing.T) {
		t.Parallel()
		eh := handler.NewErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), handler.ErrorHandlerConfig{
			ErrorPage:  errorPage,
			ErrorToast: errorToast,
		})

		req := httptest.NewRequest(http.MethodPost, "/forms/login", nil)
		req.Header.Set(handler.DataStarRequestHeader, "true")
		rec := httptest.NewRecorder()
		eh(handler.NewContext(rec, req), errors.New("boom"))

		body := rec.Body.String()
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, body, "form-message--error")
		assert.Contains(t, body, "selector #toast-container")
		assert.Contains(t, body, "mode prepend")
		assert.NotContains(t, body, "boom")
	})

	t.Run("internal error detail only in development", func(t *testing.T) {
		t.Parallel()
		var detail []string
		eh := handler.NewErrorHandler(slog.New(slog.DiscardHandler), handler.ErrorHandlerConfig{
			ErrorPage: func(p handler.ErrorPageParams) templ.Component {
				detail = append(detail, p.Detail)
				return errorPage(p)
			},
		})

		for _, env := range []environment.Environment{environment.Development, environment.Production} {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(environment.WithContext(req.Context(), env))
			eh(handler.NewContext(httptest.NewRecorder(), req), errors.New("db down"))
		}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(environment.WithContext(req.Context(), environment.Development))
		eh(handler.NewContext(httptest.NewRecorder(), req), handler.ErrNotFound)

		assert.Equal(t, []string{"db down", "", ""}, detail)
	})

	t.Run("fallback without page", func(t *testing.T) {
		t.Parallel()
		eh := handler.NewErrorHandler(nil, handler.ErrorHandlerConfig{})
		rec := httptest.NewRecorder()
		eh(handler.NewContext(rec, httptest.NewRequest(http.MethodGet, "/", nil)), handler.ErrBadRequest)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.True(t, strings.HasPrefix(rec.Body.String(), "http.error.bad_request"))
	})
}

func TestJSONError(t *testing.T) {
	t.Parallel()

	render := func(resp handler.Response) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		require.NoError(t, resp.Render(rec, httptest.NewRequest(http.MethodPost, "/", nil)))
		return rec
	}

	t.Run("validation error lists fields", func(t *testing.T) {
		t.Parallel()
		ve := handler.NewValidationError()
		ve.Add("email", "invalid")
		ve.Add("email", "too short")

		rec := render(handler.JSONError(ve))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.JSONEq(t, `{"error":{"code":"http.error.validation","message":"validation error: email: invalid","fields":{"email":["invalid","too short"]}}}`, rec.Body.String())
	})

	t.Run("internal errors stay hidden", func(t *testing.T) {
		t.Parallel()
		rec := render(handler.JSONError(errors.New("secret")).WithMessage(""))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "secret")
		assert.Contains(t, rec.Body.String(), `"code":"http.error.generic"`)
	})

	t.Run("binder failures become bad request", func(t *testing.T) {
		t.Parallel()
		rec := render(handler.JSONError(fmt.Errorf("%w: unexpected EOF", binder.ErrFailedToParseJSON)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.NotContains(t, rec.Body.String(), "EOF")
	})

	t.Run("translated message", func(t *testing.T) {
		t.Parallel()
		rec := render(handler.JSONError(handler.ErrNotFound).WithMessage("Страница не найдена"))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":{"code":"http.error.not_found","message":"Страница не найдена"}}`, rec.Body.String())
	})

	t.Run("data with status", func(t *testing.T) {
		t.Parallel()
		rec := render(handler.JSON(map[string]bool{"valid": false}).WithStatus(http.StatusUnprocessableEntity).WithMessage("ignored"))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.JSONEq(t, `{"data":{"valid":false}}`, rec.Body.String())
	})
}
