package validator

import (
	"slices"
	"strconv"
	"unicode/utf8"
)

// MinTextLength is the shortest accepted free-text value, in characters.
const MinTextLength = 2

// RequiredText validates a mandatory free-text value.
func RequiredText(value string) Result {
	return RequiredTextMin(value, MinTextLength)
}

// RequiredTextMin is RequiredText with a custom minimum length.
func RequiredTextMin(value string, minLength int) Result {
	if value == "" {
		return Invalid(ValidationError{
			Kind:           KindEmptyInput,
			Message:        "this field is required",
			TranslationKey: "validation.required",
		}, nil)
	}

	if utf8.RuneCountInString(value) < minLength {
		return Invalid(ValidationError{
			Kind:           KindTooShort,
			Message:        "must be at least " + strconv.Itoa(minLength) + " characters long",
			TranslationKey: "validation.min_length",
			TranslationValues: map[string]any{
				"min": minLength,
			},
		}, nil)
	}

	return Valid(nil)
}

// NotEmpty validates that any value was supplied.
func NotEmpty(value string) Result {
	if value == "" {
		return Invalid(ValidationError{
			Kind:           KindEmptyInput,
			Message:        "this field is required",
			TranslationKey: "validation.required",
		}, nil)
	}
	return Valid(nil)
}

// Checked validates a mandatory checkbox.
func Checked(checked bool) Result {
	if !checked {
		return Invalid(ValidationError{
			Kind:           KindRequired,
			Message:        "this box must be checked",
			TranslationKey: "validation.checkbox.required",
		}, nil)
	}
	return Valid(nil)
}

// Choice validates a radio group or select: something must be chosen and, when
// options is non-empty, it must be one of them.
func Choice(value string, options []string) Result {
	if value == "" {
		return Invalid(ValidationError{
			Kind:           KindRequired,
			Message:        "choose one of the options",
			TranslationKey: "validation.choice.required",
		}, nil)
	}

	if len(options) > 0 && !slices.Contains(options, value) {
		return Invalid(ValidationError{
			Kind:           KindNotAllowed,
			Message:        "choose one of the options",
			TranslationKey: "validation.choice.not_allowed",
			TranslationValues: map[string]any{
				"value": value,
			},
		}, nil)
	}

	return Valid(nil)
}

// NumberRange validates an integer typed as text against [minValue, maxValue].
func NumberRange(value string, minValue, maxValue int) Result {
	n, err := strconv.Atoi(value)
	if value == "" || err != nil {
		return Invalid(ValidationError{
			Kind:           KindEmptyInput,
			Message:        "enter a number",
			TranslationKey: "validation.number.required",
			TranslationValues: map[string]any{
				"min": minValue,
				"max": maxValue,
			},
		}, nil)
	}

	if n < minValue || n > maxValue {
		return Invalid(ValidationError{
			Kind:           KindOutOfRange,
			Message:        "enter a number from " + strconv.Itoa(minValue) + " to " + strconv.Itoa(maxValue),
			TranslationKey: "validation.number.range",
			TranslationValues: map[string]any{
				"min": minValue,
				"max": maxValue,
			},
		}, nil)
	}

	return Valid(nil)
}
