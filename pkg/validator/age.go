package validator

import (
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Default inclusive bounds for ages.
const (
	DefaultMinAge = 0
	DefaultMaxAge = 120
)

// birthDateLayouts lists the accepted date formats, tried in order.
var birthDateLayouts = []string{
	time.DateOnly,
	"02.01.2006",
	time.RFC3339,
}

// ValidAge reports whether age lies within [minAge, maxAge].
func ValidAge(age, minAge, maxAge int) bool {
	return age >= minAge && age <= maxAge
}

// AgeString validates an age typed as text.
func AgeString(value string, minAge, maxAge int) Result {
	age, ok := leadingInt(value)
	if !ok {
		return Invalid(ValidationError{
			Kind:           KindEmptyInput,
			Message:        "age is required",
			TranslationKey: "validation.age.required",
		}, nil)
	}

	if !ValidAge(age, minAge, maxAge) {
		return Invalid(outOfRange("validation.age.range", minAge, maxAge), nil)
	}

	return Valid(nil)
}

// leadingInt reads an optionally signed run of decimal digits at the start
// of s, after leading whitespace. "25abc" and "25.7" both read as 25.
func leadingInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	sign := ""
	if s != "" && (s[0] == '+' || s[0] == '-') {
		sign, s = s[:1], s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	// Only digits remain, so the sole possible error is ErrRange, for which
	// Atoi returns the saturated value.
	n, _ := strconv.Atoi(sign + s[:end])
	return n, true
}

// AgeAt returns the number of whole years elapsed between birth and now.
// The year difference is reduced by one while the birthday has not yet
// occurred in now's year.
func AgeAt(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}

// ParseDate parses value using the accepted birth date layouts in loc.
func ParseDate(value string, loc *time.Location) (time.Time, bool) {
	for _, layout := range birthDateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// BirthDate validates a birth date against the current moment.
func BirthDate(value string, minAge, maxAge int) Result {
	return BirthDateAt(value, minAge, maxAge, time.Now())
}

// BirthDateAt validates a birth date relative to now. Checks run in order:
// empty, unparsable, in the future, age out of [minAge, maxAge].
func BirthDateAt(value string, minAge, maxAge int, now time.Time) Result {
	if value == "" {
		return Invalid(ValidationError{
			Kind:           KindEmptyInput,
			Message:        "birth date is required",
			TranslationKey: "validation.birth_date.required",
		}, nil)
	}

	birth, ok := ParseDate(value, now.Location())
	if !ok {
		return Invalid(ValidationError{
			Kind:           KindUnparsableDate,
			Message:        "invalid birth date",
			TranslationKey: "validation.birth_date.invalid",
		}, nil)
	}

	if birth.After(now) {
		return Invalid(ValidationError{
			Kind:           KindFutureDate,
			Message:        "birth date cannot be in the future",
			TranslationKey: "validation.birth_date.future",
		}, nil)
	}

	age := AgeAt(birth, now)

	// Age metadata stays within the default bounds even when a caller
	// narrows or widens minAge/maxAge.
	var meta map[string]int
	if ValidAge(age, DefaultMinAge, DefaultMaxAge) {
		meta = map[string]int{MetaAge: age}
	}

	if !ValidAge(age, minAge, maxAge) {
		return Invalid(outOfRange("validation.birth_date.range", minAge, maxAge), meta)
	}

	return Valid(meta)
}

func outOfRange(key string, minAge, maxAge int) ValidationError {
	return ValidationError{
		Kind:           KindOutOfRange,
		Message:        "age must be between " + strconv.Itoa(minAge) + " and " + strconv.Itoa(maxAge),
		TranslationKey: key,
		TranslationValues: map[string]any{
			"min": minAge,
			"max": maxAge,
		},
	}
}
