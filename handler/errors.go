package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

var (
	ErrNilResponse = errors.New("handler returned nil response")
)

// HTTPError is a status code with a translation key for the message.
type HTTPError struct {
	Code int
	Key  string
}

func (e HTTPError) Error() string { return e.Key }

func NewHTTPError(code int, key string) HTTPError {
	return HTTPError{Code: code, Key: key}
}

var (
	ErrBadRequest            = HTTPError{Code: http.StatusBadRequest, Key: "http.error.bad_request"}
	ErrNotFound              = HTTPError{Code: http.StatusNotFound, Key: "http.error.not_found"}
	ErrMethodNotAllowed      = HTTPError{Code: http.StatusMethodNotAllowed, Key: "http.error.method_not_allowed"}
	ErrRequestEntityTooLarge = HTTPError{Code: http.StatusRequestEntityTooLarge, Key: "http.error.too_large"}
	ErrUnsupportedMediaType  = HTTPError{Code: http.StatusUnsupportedMediaType, Key: "http.error.unsupported_media_type"}
	ErrTooManyRequests       = HTTPError{Code: http.StatusTooManyRequests, Key: "http.error.too_many_requests"}
	ErrInternalServerError   = HTTPError{Code: http.StatusInternalServerError, Key: "http.error.internal"}
)

// ValidationError maps field names to messages.
type ValidationError url.Values

func NewValidationError() ValidationError {
	return make(ValidationError)
}

// Error lists the first message of each field, sorted by field name.
func (e ValidationError) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if msgs := e[f]; len(msgs) > 0 {
			parts = append(parts, fmt.Sprintf("%s: %s", f, msgs[0]))
		}
	}
	return "validation error: " + strings.Join(parts, ", ")
}

func (e ValidationError) Add(field, message string) { url.Values(e).Add(field, message) }
func (e ValidationError) Get(field string) string   { return url.Values(e).Get(field) }
func (e ValidationError) Has(field string) bool     { return len(e[field]) > 0 }

type errorResponse struct{ err error }

func (e errorResponse) Render(http.ResponseWriter, *http.Request) error { return e.err }

// Fail hands err to the ErrorHandler.
func Fail(err error) Response {
	if err == nil {
		err = ErrInternalServerError
	}
	return errorResponse{err: err}
}
