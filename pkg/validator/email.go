package validator

import (
	"regexp"
	"strings"
	"unicode"
)

// emailRegex is intentionally permissive: one "@", no whitespace, and a dot
// somewhere after the "@".
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsEmail reports whether value looks like local@domain.tld. RE2's \s is
// ASCII only, so Unicode white space and the byte order mark are checked
// separately.
func IsEmail(value string) bool {
	return strings.IndexFunc(value, isSpace) < 0 && emailRegex.MatchString(value)
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\ufeff'
}

// Email validates an email address.
func Email(value string) Result {
	if value == "" {
		return Invalid(ValidationError{
			Kind:           KindEmptyInput,
			Message:        "email is required",
			TranslationKey: "validation.email.required",
		}, nil)
	}

	if !IsEmail(value) {
		return Invalid(ValidationError{
			Kind:           KindInvalidFormat,
			Message:        "enter a valid email address",
			TranslationKey: "validation.email.invalid",
		}, nil)
	}

	return Valid(nil)
}
