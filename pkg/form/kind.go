package form

import (
	"strings"
	"time"

	"github.com/dmitrymomot/familyspace/pkg/validator"
)

// Kind selects the predicate applied to a field.
type Kind string

const (
	KindEmail           Kind = "email"
	KindPassword        Kind = "password"
	KindConfirmPassword Kind = "confirm-password"
	KindAge             Kind = "age"
	KindBirthDate       Kind = "birth-date"
	KindRequiredText    Kind = "required-text"
	KindCheckbox        Kind = "checkbox-required"
	KindRadio           Kind = "radio-group"
	KindFile            Kind = "file-upload"
	KindRequired        Kind = "required"
	KindNumber          Kind = "number"
)

func (k Kind) valid() bool {
	switch k {
	case KindEmail, KindPassword, KindConfirmPassword, KindAge, KindBirthDate,
		KindRequiredText, KindCheckbox, KindRadio, KindFile, KindRequired, KindNumber:
		return true
	}
	return false
}

// keepsWhitespace reports whether values of this kind are compared verbatim.
func (k Kind) keepsWhitespace() bool {
	return k == KindPassword || k == KindConfirmPassword
}

// summary is the short label listed in a failure summary toast.
func (k Kind) summary() Message {
	switch k {
	case KindEmail:
		return Message{Key: "summary.email", Text: "Некорректный email"}
	case KindPassword, KindConfirmPassword:
		return Message{Key: "summary.password", Text: "Некорректный пароль"}
	case KindCheckbox:
		return Message{Key: "summary.consent", Text: "Необходимо согласие"}
	case KindRadio:
		return Message{Key: "summary.choice", Text: "Не выбран вариант"}
	case KindBirthDate:
		return Message{Key: "summary.birth_date", Text: "Некорректная дата рождения"}
	default:
		return Message{Key: "summary.required", Text: "Пустое обязательное поле"}
	}
}

var mismatchSummary = Message{Key: "summary.mismatch", Text: "Пароли не совпадают"}

// isChecked interprets a submitted checkbox value.
func isChecked(value string) bool {
	switch strings.ToLower(value) {
	case "", "off", "false", "0":
		return false
	}
	return true
}

// check applies the kind's predicate. value is already normalized.
func (f FieldSpec) check(value string, file validator.FileInfo, hasFile bool, now time.Time) validator.Result {
	c := f.Constraints

	switch f.Kind {
	case KindEmail:
		return validator.Email(value)
	case KindPassword:
		return validator.Password(value)
	case KindConfirmPassword:
		if value == "" {
			return validator.NotEmpty(value)
		}
		return validator.Password(value)
	case KindRequired:
		return validator.NotEmpty(value)
	case KindAge:
		minAge, maxAge := c.ageBounds()
		return validator.AgeString(value, minAge, maxAge)
	case KindBirthDate:
		minAge, maxAge := c.ageBounds()
		return validator.BirthDateAt(value, minAge, maxAge, now)
	case KindRequiredText:
		minLength := c.MinLength
		if minLength <= 0 {
			minLength = validator.MinTextLength
		}
		return validator.RequiredTextMin(value, minLength)
	case KindCheckbox:
		return validator.Checked(isChecked(value))
	case KindRadio:
		return validator.Choice(value, c.Options)
	case KindNumber:
		return validator.NumberRange(value, c.Min, c.Max)
	case KindFile:
		if !hasFile {
			return validator.NotEmpty("")
		}
		maxSize := c.MaxFileSize
		if maxSize <= 0 {
			maxSize = validator.MaxUploadSize
		}
		prefix := c.MIMEPrefix
		if prefix == "" {
			prefix = validator.ImageMIMEPrefix
		}
		return validator.FileUploadWith(file, c.MinFileSize, maxSize, prefix)
	}

	return validator.NotEmpty(value)
}
