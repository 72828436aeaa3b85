package form

import "errors"

var (
	ErrEmptyFormName  = errors.New("form name is required")
	ErrEmptyFieldName = errors.New("field name is required")
	ErrDuplicateField = errors.New("duplicate field name")
	ErrUnknownKind    = errors.New("unknown field kind")
	ErrInvalidMatch   = errors.New("invalid match reference")
	ErrUnknownField   = errors.New("unknown field")
	ErrUnknownEvent   = errors.New("unknown field event")
	ErrUnknownForm    = errors.New("unknown form")
	ErrDuplicateForm  = errors.New("form already registered")
)
