// Package form binds validator predicates to named form fields.
//
// Every form type is a Spec: a list of FieldSpec rows plus the success and
// failure Actions. A Controller validates all fields of a submission in
// document order (no fail-fast), performs the confirm-password comparison,
// and drives a Presenter with decorations, toasts, scrolling and redirects.
// The Registry holds the site's controllers, so a new form type is a new
// Spec rather than new code.
//
// Field decoration follows a small state machine: a field starts Untouched,
// moves to Valid or Invalid on input, is never promoted to Valid by blur, and
// returns to Untouched when cleared.
//
//	reg, _ := form.Builtin()
//	login, _ := reg.Get(form.Login)
//	outcome := login.Submit(ctx, form.NewValues(r.PostForm, nil), presenter)
//	if !outcome.Valid {
//		// outcome.Err() is a validator.ValidationErrors
//	}
//
// Text values are trimmed before validation; password values are not.
package form
