package binder

import "errors"

var (
	// ErrBinderNotApplicable tells handler.Wrap to try the next binder.
	ErrBinderNotApplicable = errors.New("binder not applicable")

	ErrMissingContentType = errors.New("missing content type")
	ErrFailedToParseJSON  = errors.New("failed to parse JSON request body")
	ErrInvalidForm        = errors.New("invalid form data")
	ErrInvalidQuery       = errors.New("invalid query parameters")
	ErrInvalidPath        = errors.New("invalid path parameters")
)
