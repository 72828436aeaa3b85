package form

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/familyspace/pkg/validator"
)

// Controller validates submissions of one form type.
type Controller struct {
	spec Spec
	now  func() time.Time
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides the clock used for birth date checks.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// NewController checks spec for consistency and returns its controller.
func NewController(spec Spec, opts ...Option) (*Controller, error) {
	if spec.Name == "" {
		return nil, ErrEmptyFormName
	}

	seen := make(map[string]bool, len(spec.Fields))
	for _, f := range spec.Fields {
		if f.Name == "" {
			return nil, fmt.Errorf("form %s: %w", spec.Name, ErrEmptyFieldName)
		}
		if seen[f.Name] {
			return nil, fmt.Errorf("form %s: %w: %s", spec.Name, ErrDuplicateField, f.Name)
		}
		if !f.Kind.valid() {
			return nil, fmt.Errorf("form %s: field %s: %w: %q", spec.Name, f.Name, ErrUnknownKind, f.Kind)
		}
		seen[f.Name] = true
	}

	for _, f := range spec.Fields {
		if f.Match == "" {
			if f.Kind == KindConfirmPassword {
				return nil, fmt.Errorf("form %s: field %s: %w: confirm-password needs a match", spec.Name, f.Name, ErrInvalidMatch)
			}
			continue
		}
		if f.Kind != KindConfirmPassword || f.Match == f.Name || !seen[f.Match] || f.Repeated {
			return nil, fmt.Errorf("form %s: field %s: %w: %s", spec.Name, f.Name, ErrInvalidMatch, f.Match)
		}
	}

	c := &Controller{spec: spec, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Controller) Name() string { return c.spec.Name }

// Spec returns the controller's configuration.
func (c *Controller) Spec() Spec { return c.spec }

// Validate checks every field in document order. It never stops at the first
// failure. The confirm-password comparison runs after all fields, and only
// when both values are present.
func (c *Controller) Validate(ctx context.Context, values Values) Outcome {
	now := c.now()
	out := Outcome{Form: c.spec.Name, Valid: true}

	index := make(map[string]int, len(c.spec.Fields))
	for _, f := range c.spec.Fields {
		if f.Repeated {
			for i, raw := range values.All(f.Name) {
				fr := c.evaluate(ctx, f, f.Name+"."+strconv.Itoa(i), normalize(f, raw), values, now)
				out.Fields = append(out.Fields, fr)
			}
			continue
		}
		index[f.Name] = len(out.Fields)
		out.Fields = append(out.Fields, c.evaluate(ctx, f, f.Name, normalize(f, values.Value(f.Name)), values, now))
	}

	for _, f := range c.spec.Fields {
		if f.Match == "" {
			continue
		}
		confirm := values.Value(f.Name)
		original := values.Value(f.Match)
		if confirm == "" || original == "" || validator.PasswordsMatch(original, confirm) {
			continue
		}
		i := index[f.Name]
		res := validator.Mismatch().WithField(f.Name)
		out.Fields[i].Result = res
		out.Fields[i].State = Invalid
		out.Fields[i].summary = mismatchSummary
	}

	for _, fr := range out.Fields {
		if fr.State == Invalid {
			out.Valid = false
			break
		}
	}

	return out
}

// ValidateField runs a single field's predicate. field may address a
// repeated instance as "name.index".
func (c *Controller) ValidateField(ctx context.Context, field string, values Values) (FieldResult, error) {
	f, value, err := c.lookup(field, values)
	if err != nil {
		return FieldResult{}, err
	}

	fr := c.evaluate(ctx, f, field, value, values, c.now())
	if f.Match != "" && value != "" {
		original := values.Value(f.Match)
		if original != "" && !validator.PasswordsMatch(original, value) {
			fr.Result = validator.Mismatch().WithField(field)
			fr.State = Invalid
			fr.summary = mismatchSummary
		}
	}
	return fr, nil
}

// Field handles a live input or blur event and returns the field's next
// decoration together with the predicate result.
func (c *Controller) Field(ctx context.Context, field string, ev Event, prev State, values Values) (State, FieldResult, error) {
	if ev != EventInput && ev != EventBlur {
		return prev, FieldResult{}, fmt.Errorf("%w: %q", ErrUnknownEvent, ev)
	}

	fr, err := c.ValidateField(ctx, field, values)
	if err != nil {
		return prev, FieldResult{}, err
	}

	_, value, _ := c.lookup(field, values)
	next, err := Transition(ctx, prev, ev, value, fr.Result)
	if err != nil {
		return prev, fr, err
	}
	fr.State = next
	return next, fr, nil
}

// Submit validates values and drives p: every field is decorated, then the
// success or failure action runs.
func (c *Controller) Submit(ctx context.Context, values Values, p Presenter) Outcome {
	out := c.Validate(ctx, values)

	for _, fr := range out.Fields {
		p.Decorate(fr.Field, fr.State, fr.Message())
	}

	if out.Valid {
		c.run(c.spec.Success, out, values, p)
		return out
	}

	if first, ok := out.FirstInvalid(); ok {
		p.ScrollTo(first.Field)
	}
	c.run(c.spec.Failure, out, values, p)
	return out
}

func (c *Controller) run(a Action, out Outcome, values Values, p Presenter) {
	if a.Toast != "" {
		msg := a.Message
		var details []Message
		if a.Summary {
			details = out.summaries()
			if len(details) > 0 {
				msg = summaryMessage(details)
			}
		}
		if a.Echo != "" {
			msg.Args = withArg(msg.Args, "value", strings.TrimSpace(values.Value(a.Echo)))
		}
		p.Notify(a.Toast, msg, details)
	}

	switch {
	case a.Redirect != "" && (a.StayOn == "" || !strings.Contains(p.Page(), a.StayOn)):
		p.Redirect(a.Redirect, a.RedirectDelay)
	case a.Redirect != "" || a.Reset:
		p.Reset()
	}

	for _, field := range a.Clear {
		p.Clear(field)
	}
}

func (c *Controller) evaluate(ctx context.Context, f FieldSpec, field, value string, values Values, now time.Time) FieldResult {
	fr := FieldResult{
		Field:   field,
		Name:    f.Name,
		Label:   f.Label,
		summary: f.Kind.summary(),
	}
	if !f.Summary.IsZero() {
		fr.summary = f.Summary
	}

	file, hasFile := FileInfo{}, false
	if f.Kind == KindFile {
		file, hasFile = values.File(f.Name)
	}

	if f.Optional && value == "" && !hasFile {
		fr.Result = validator.Valid(nil)
		fr.State = submitState(ctx, true, fr.Result)
		return fr
	}

	res := f.check(value, file, hasFile, now).WithField(field)
	if !f.Error.IsZero() {
		res = res.WithMessage(f.Error.Key, f.Error.Text)
	}
	fr.Result = res
	fr.State = submitState(ctx, false, res)
	return fr
}

func (c *Controller) lookup(field string, values Values) (FieldSpec, string, error) {
	name, idx, indexed := splitIndex(field)

	f, ok := c.spec.field(name)
	if !ok || indexed != f.Repeated {
		return FieldSpec{}, "", fmt.Errorf("form %s: %w: %s", c.spec.Name, ErrUnknownField, field)
	}

	if !f.Repeated {
		return f, normalize(f, values.Value(name)), nil
	}

	all := values.All(name)
	if idx >= len(all) {
		return f, "", nil
	}
	return f, normalize(f, all[idx]), nil
}

// FileInfo is re-exported so specs and presenters need not import validator.
type FileInfo = validator.FileInfo

func normalize(f FieldSpec, raw string) string {
	if f.Kind.keepsWhitespace() {
		return raw
	}
	return strings.TrimSpace(raw)
}

func splitIndex(field string) (string, int, bool) {
	dot := strings.LastIndexByte(field, '.')
	if dot < 0 {
		return field, 0, false
	}
	idx, err := strconv.Atoi(field[dot+1:])
	if err != nil || idx < 0 {
		return field, 0, false
	}
	return field[:dot], idx, true
}

func summaryMessage(details []Message) Message {
	texts := make([]string, len(details))
	for i, d := range details {
		texts[i] = d.Text
	}
	return Message{
		Key:  "form.failure.summary",
		Text: "Ошибки: " + strings.Join(texts, ", "),
	}
}

func withArg(args map[string]any, key string, value any) map[string]any {
	out := make(map[string]any, len(args)+1)
	for k, v := range args {
		out[k] = v
	}
	out[key] = value
	return out
}
