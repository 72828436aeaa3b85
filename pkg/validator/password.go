package validator

import (
	"regexp"
	"unicode/utf8"
)

const (
	// MinPasswordLength is the shortest accepted password, in characters.
	MinPasswordLength = 6

	strengthStep = 20
	maxStrength  = 100
)

var (
	lowercaseRegex       = regexp.MustCompile(`[a-z]`)
	uppercaseRegex       = regexp.MustCompile(`[A-Z]`)
	digitRegex           = regexp.MustCompile(`\d`)
	nonAlphanumericRegex = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// PasswordStrength scores value from 0 to 100 in steps of 20: length >= 6,
// length >= 8, mixed case, a digit, a non-alphanumeric character.
func PasswordStrength(value string) int {
	length := utf8.RuneCountInString(value)
	strength := 0

	if length >= MinPasswordLength {
		strength += strengthStep
	}
	if length >= 8 {
		strength += strengthStep
	}
	if lowercaseRegex.MatchString(value) && uppercaseRegex.MatchString(value) {
		strength += strengthStep
	}
	if digitRegex.MatchString(value) {
		strength += strengthStep
	}
	if nonAlphanumericRegex.MatchString(value) {
		strength += strengthStep
	}

	return min(strength, maxStrength)
}

// Password validates the minimum length. The strength score is always attached
// as metadata and never affects validity.
func Password(value string) Result {
	meta := map[string]int{MetaStrength: PasswordStrength(value)}

	if utf8.RuneCountInString(value) < MinPasswordLength {
		return Invalid(ValidationError{
			Kind:           KindTooShort,
			Message:        "password too short",
			TranslationKey: "validation.password.too_short",
			TranslationValues: map[string]any{
				"min": MinPasswordLength,
			},
		}, meta)
	}

	return Valid(meta)
}

// PasswordsMatch compares two passwords exactly, without normalization.
func PasswordsMatch(password, confirm string) bool {
	return password == confirm
}

// Mismatch is the result reported for a confirmation field that differs.
func Mismatch() Result {
	return Invalid(ValidationError{
		Kind:           KindMismatch,
		Message:        "passwords do not match",
		TranslationKey: "validation.password.mismatch",
	}, nil)
}
