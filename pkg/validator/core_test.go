package validator_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/familyspace/pkg/validator"
)

func TestValidationError(t *testing.T) {
	t.Parallel()

	e := validator.ValidationError{Field: "birthDate", Kind: validator.KindFutureDate, Message: "date is in the future"}
	assert.Equal(t, "birthDate: date is in the future", e.Error())
	assert.ErrorIs(t, e, validator.ErrFutureDate)
	assert.NotErrorIs(t, e, validator.ErrOutOfRange)

	e.Field = ""
	assert.Equal(t, "date is in the future", e.Error())

	unknown := validator.ValidationError{Kind: "custom"}
	assert.ErrorIs(t, unknown, validator.ErrValidationFailed)
}

func TestValidationErrors(t *testing.T) {
	t.Parallel()

	var empty validator.ValidationErrors
	assert.Equal(t, "validation failed", empty.Error())
	assert.Empty(t, empty.Fields())

	var errs validator.ValidationErrors
	errs.Add(validator.ValidationError{Field: "email", Kind: validator.KindInvalidFormat, Message: "bad email"})
	errs.Add(validator.ValidationError{Field: "password", Kind: validator.KindTooShort, Message: "too short"})
	errs.Add(validator.ValidationError{Field: "email", Kind: validator.KindEmptyInput, Message: "empty"})

	assert.Equal(t, "validation failed: email: bad email; password: too short; email: empty", errs.Error())
	assert.Equal(t, []string{"email", "password"}, errs.Fields())
	assert.True(t, errs.Has("password"))
	assert.False(t, errs.Has("gender"))
	require.Len(t, errs.For("email"), 2)
	assert.Equal(t, "empty", errs.For("email")[1].Message)
	assert.Nil(t, errs.For("gender"))

	assert.ErrorIs(t, errs, validator.ErrTooShort)
	assert.ErrorIs(t, errs, validator.ErrEmptyInput)
	assert.NotErrorIs(t, errs, validator.ErrMismatch)

	var single validator.ValidationError
	require.ErrorAs(t, errs, &single)
	assert.Equal(t, "email", single.Field)
}

func TestCollect(t *testing.T) {
	t.Parallel()

	t.Run("all valid", func(t *testing.T) {
		t.Parallel()
		err := validator.Collect(
			validator.On("email", validator.Email("a@b.co")),
			validator.On("password", validator.Password("secret1")),
		)
		assert.NoError(t, err)
		assert.Nil(t, validator.AsValidationErrors(err))
	})

	t.Run("keeps the first error per field", func(t *testing.T) {
		t.Parallel()
		err := validator.Collect(
			validator.On("email", validator.Email("nope")),
			validator.On("password", validator.Password("abc")),
			validator.On("lastName", validator.RequiredText("Ли")),
		)
		require.Error(t, err)

		verrs := validator.AsValidationErrors(err)
		require.Len(t, verrs, 2)
		assert.Equal(t, []string{"email", "password"}, verrs.Fields())
		assert.Equal(t, validator.KindInvalidFormat, verrs[0].Kind)
		assert.Equal(t, validator.KindTooShort, verrs[1].Kind)
	})

	t.Run("found through wrapping", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("submit: %w", validator.Collect(validator.On("agreement", validator.Checked(false))))
		verrs := validator.AsValidationErrors(err)
		require.NotNil(t, verrs)
		assert.True(t, verrs.Has("agreement"))
		assert.ErrorIs(t, err, validator.ErrRequired)
	})

	t.Run("not a validation error", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, validator.AsValidationErrors(errors.New("boom")))
		assert.Nil(t, validator.AsValidationErrors(nil))
	})
}

func TestResultErr(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validator.Email("a@b.co").Err())

	err := validator.Email("").WithField("email").Err()
	verrs := validator.AsValidationErrors(err)
	require.Len(t, verrs, 1)
	assert.Equal(t, "email", verrs[0].Field)
	assert.ErrorIs(t, err, validator.ErrEmptyInput)
}
