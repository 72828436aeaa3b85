package handler

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/familyspace/pkg/binder"
)

// HandlerFunc handles a request bound into R.
type HandlerFunc[R any] func(ctx Context, req R) Response

// Response writes itself to w. A returned error goes to the ErrorHandler.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// Bind fills v from r.
type Bind func(r *http.Request, v any) error

type ErrorHandler func(ctx Context, err error)

// Option configures Wrap. Options do not depend on the request type, so a
// route group can share them.
type Option func(*options)

type options struct {
	binders      []Bind
	errorHandler ErrorHandler
}

// WithBinders appends binders applied in order. A binder returning
// binder.ErrBinderNotApplicable is skipped.
func WithBinders(binders ...Bind) Option {
	return func(o *options) {
		o.binders = append(o.binders, binders...)
	}
}

func WithErrorHandler(h ErrorHandler) Option {
	return func(o *options) {
		if h != nil {
			o.errorHandler = h
		}
	}
}

// PlainErrorHandler answers with the status of an HTTPError as plain text,
// and 500 for anything else.
func PlainErrorHandler(ctx Context, err error) {
	code, msg := http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		code, msg = httpErr.Code, httpErr.Key
	}
	http.Error(ctx.ResponseWriter(), msg, code)
}

// Wrap turns a typed handler into an http.HandlerFunc. R is inferred from h.
//
//	onError := handler.WithErrorHandler(errorHandler)
//	r.Post("/forms/{form}", handler.Wrap(submit,
//		handler.WithBinders(binder.Path(chi.URLParam), binder.Form()),
//		onError,
//	))
func Wrap[R any](h HandlerFunc[R], opts ...Option) http.HandlerFunc {
	o := options{errorHandler: PlainErrorHandler}
	for _, opt := range opts {
		opt(&o)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := NewContext(w, r)

		var req R
		for _, bind := range o.binders {
			err := bind(r, &req)
			if err == nil || errors.Is(err, binder.ErrBinderNotApplicable) {
				continue
			}
			o.errorHandler(ctx, err)
			return
		}

		resp := h(ctx, req)
		if resp == nil {
			o.errorHandler(ctx, ErrNilResponse)
			return
		}
		if err := resp.Render(w, r); err != nil {
			o.errorHandler(ctx, err)
		}
	}
}
