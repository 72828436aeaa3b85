package validator

import (
	"maps"
	"slices"
)

// Metadata keys attached by the predicates.
const (
	MetaStrength = "strength"
	MetaAge      = "age"
)

// Result is the outcome of validating one value. It is immutable: accessors
// return copies and every "modifier" returns a new Result.
type Result struct {
	errs []ValidationError
	meta map[string]int
}

// Valid builds a passing result with optional metadata.
func Valid(meta map[string]int) Result {
	return Result{meta: cloneMeta(meta)}
}

// Invalid builds a failing result carrying err as its only error.
func Invalid(err ValidationError, meta map[string]int) Result {
	return Result{
		errs: []ValidationError{err},
		meta: cloneMeta(meta),
	}
}

func (r Result) IsValid() bool {
	return len(r.errs) == 0
}

func (r Result) Errors() []ValidationError {
	return slices.Clone(r.errs)
}

// Messages returns the human-readable error messages in order.
func (r Result) Messages() []string {
	if len(r.errs) == 0 {
		return nil
	}
	out := make([]string, len(r.errs))
	for i, e := range r.errs {
		out[i] = e.Message
	}
	return out
}

// First returns the first applicable error; callers display only this one.
func (r Result) First() (ValidationError, bool) {
	if len(r.errs) == 0 {
		return ValidationError{}, false
	}
	return r.errs[0], true
}

func (r Result) Metadata() map[string]int {
	return cloneMeta(r.meta)
}

// Strength is the advisory password score, present only for password results.
func (r Result) Strength() (int, bool) {
	v, ok := r.meta[MetaStrength]
	return v, ok
}

// Age is the computed age, present only for birth date results.
func (r Result) Age() (int, bool) {
	v, ok := r.meta[MetaAge]
	return v, ok
}

// Err returns nil for a valid result and ValidationErrors otherwise.
func (r Result) Err() error {
	if r.IsValid() {
		return nil
	}
	return ValidationErrors(r.Errors())
}

// WithField returns a copy whose errors are attributed to field.
func (r Result) WithField(field string) Result {
	if r.IsValid() {
		return r
	}
	errs := r.Errors()
	for i := range errs {
		errs[i].Field = field
	}
	return Result{errs: errs, meta: cloneMeta(r.meta)}
}

// WithMessage returns a copy whose first error is replaced by a fixed,
// form-specific message. Valid results are returned unchanged.
func (r Result) WithMessage(key, message string) Result {
	if r.IsValid() || (key == "" && message == "") {
		return r
	}
	errs := r.Errors()
	if key != "" {
		errs[0].TranslationKey = key
	}
	if message != "" {
		errs[0].Message = message
	}
	return Result{errs: errs, meta: cloneMeta(r.meta)}
}

func cloneMeta(m map[string]int) map[string]int {
	if len(m) == 0 {
		return nil
	}
	return maps.Clone(m)
}
