// Package validator is the validation engine behind every form on the site.
//
// Each predicate takes an already-trimmed value, has no side effects and
// returns a Result: validity, at most one error (the first applicable one),
// and optional metadata. Password results carry an advisory "strength" score
// in [0, 100]; birth date results carry the computed "age" in [0, 120].
//
// # Predicates
//
//   - Email          – local@domain.tld, intentionally permissive
//   - Password       – at least six characters, strength attached
//   - PasswordsMatch – exact equality, no normalization
//   - ValidAge       – inclusive range check
//   - BirthDate      – empty, unparsable, future, then age range
//   - RequiredText   – non-empty and at least two characters
//   - FileUpload     – at most 5 MiB and an image/* content type
//
// # Usage
//
//	res := validator.Password(value)
//	if !res.IsValid() {
//		first, _ := res.First()
//		// show first.Message or translate first.TranslationKey
//	}
//	strength, _ := res.Strength()
//
// Several results are reported as one error with Collect:
//
//	err := validator.Collect(
//		validator.On("email", validator.Email(email)),
//		validator.On("password", validator.Password(password)),
//	)
//	if verrs := validator.AsValidationErrors(err); verrs != nil {
//		// verrs.Fields(), verrs.For("email") ...
//	}
//
// # Error Handling
//
// A ValidationError unwraps to a sentinel for its Kind, so
// errors.Is(err, validator.ErrFutureDate) works on both a single error and a
// ValidationErrors slice obtained from Result.Err.
package validator
