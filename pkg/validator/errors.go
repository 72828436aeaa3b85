package validator

import "errors"

// Kind classifies why a value failed validation.
type Kind string

const (
	KindEmptyInput      Kind = "empty_input"
	KindRequired        Kind = "required"
	KindInvalidFormat   Kind = "invalid_format"
	KindTooShort        Kind = "too_short"
	KindUnparsableDate  Kind = "unparsable_date"
	KindFutureDate      Kind = "future_date"
	KindOutOfRange      Kind = "out_of_range"
	KindTooLarge        Kind = "too_large"
	KindTooSmall        Kind = "too_small"
	KindUnsupportedType Kind = "unsupported_type"
	KindMismatch        Kind = "mismatch"
	KindNotAllowed      Kind = "not_allowed"
)

// Sentinel errors matching each Kind; ValidationError unwraps to them.
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrEmptyInput       = errors.New("empty input")
	ErrRequired         = errors.New("field is required")
	ErrInvalidFormat    = errors.New("invalid format")
	ErrTooShort         = errors.New("value too short")
	ErrUnparsableDate   = errors.New("unparsable date")
	ErrFutureDate       = errors.New("date is in the future")
	ErrOutOfRange       = errors.New("value out of range")
	ErrTooLarge         = errors.New("file too large")
	ErrTooSmall         = errors.New("file too small")
	ErrUnsupportedType  = errors.New("unsupported content type")
	ErrMismatch         = errors.New("values do not match")
	ErrNotAllowed       = errors.New("value not allowed")
)

func (k Kind) sentinel() error {
	switch k {
	case KindEmptyInput:
		return ErrEmptyInput
	case KindRequired:
		return ErrRequired
	case KindInvalidFormat:
		return ErrInvalidFormat
	case KindTooShort:
		return ErrTooShort
	case KindUnparsableDate:
		return ErrUnparsableDate
	case KindFutureDate:
		return ErrFutureDate
	case KindOutOfRange:
		return ErrOutOfRange
	case KindTooLarge:
		return ErrTooLarge
	case KindTooSmall:
		return ErrTooSmall
	case KindUnsupportedType:
		return ErrUnsupportedType
	case KindMismatch:
		return ErrMismatch
	case KindNotAllowed:
		return ErrNotAllowed
	default:
		return ErrValidationFailed
	}
}
