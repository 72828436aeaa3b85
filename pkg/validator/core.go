package validator

import (
	"errors"
	"strings"
)

// ValidationError is one failed check. TranslationKey and TranslationValues
// let the caller render Message in another language.
type ValidationError struct {
	Field             string
	Kind              Kind
	Message           string
	TranslationKey    string
	TranslationValues map[string]any
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Unwrap returns the sentinel for e.Kind.
func (e ValidationError) Unwrap() error {
	return e.Kind.sentinel()
}

// ValidationErrors collects failures across fields in report order.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	var b strings.Builder
	b.WriteString("validation failed: ")
	for i, e := range ve {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(e.Field)
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

func (ve ValidationErrors) Unwrap() []error {
	out := make([]error, len(ve))
	for i, e := range ve {
		out[i] = e
	}
	return out
}

func (ve *ValidationErrors) Add(err ValidationError) {
	*ve = append(*ve, err)
}

func (ve ValidationErrors) Has(field string) bool {
	return len(ve.For(field)) > 0
}

// For returns the errors recorded for field.
func (ve ValidationErrors) For(field string) []ValidationError {
	var out []ValidationError
	for _, e := range ve {
		if e.Field == field {
			out = append(out, e)
		}
	}
	return out
}

// Fields lists the failing fields once each, in report order.
func (ve ValidationErrors) Fields() []string {
	var fields []string
	seen := make(map[string]struct{}, len(ve))
	for _, e := range ve {
		if _, ok := seen[e.Field]; ok {
			continue
		}
		seen[e.Field] = struct{}{}
		fields = append(fields, e.Field)
	}
	return fields
}

// FieldResult pairs a predicate result with the field it was computed for.
type FieldResult struct {
	Field  string
	Result Result
}

func On(field string, r Result) FieldResult {
	return FieldResult{Field: field, Result: r}
}

// Collect folds the first error of every failing result into one
// ValidationErrors. It returns nil when all results pass.
//
//	err := validator.Collect(
//		validator.On("email", validator.Email(email)),
//		validator.On("password", validator.Password(password)),
//	)
func Collect(results ...FieldResult) error {
	var errs ValidationErrors
	for _, fr := range results {
		if first, ok := fr.Result.First(); ok {
			first.Field = fr.Field
			errs.Add(first)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// AsValidationErrors returns the ValidationErrors inside err, or nil.
func AsValidationErrors(err error) ValidationErrors {
	var errs ValidationErrors
	if errors.As(err, &errs) {
		return errs
	}
	return nil
}
