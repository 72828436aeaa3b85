package form

import (
	"time"

	"github.com/dmitrymomot/familyspace/pkg/toast"
	"github.com/dmitrymomot/familyspace/pkg/validator"
)

// Message is user-facing text identified by a translation key. Text is the
// untranslated fallback.
type Message struct {
	Key  string
	Args map[string]any
	Text string
}

func (m Message) IsZero() bool {
	return m.Key == "" && m.Text == ""
}

// Constraints parametrize a field's predicate. Zero values select the
// predicate defaults.
type Constraints struct {
	MinLength   int
	MinAge      int
	MaxAge      int
	Min         int
	Max         int
	MinFileSize int64
	MaxFileSize int64
	MIMEPrefix  string
	Options     []string
}

func (c Constraints) ageBounds() (int, int) {
	minAge, maxAge := c.MinAge, c.MaxAge
	if maxAge == 0 {
		maxAge = validator.DefaultMaxAge
	}
	return minAge, maxAge
}

// FieldSpec declares how one named field is validated.
type FieldSpec struct {
	Name  string
	Kind  Kind
	Label string

	// Optional fields are skipped while empty.
	Optional bool
	// Repeated fields validate every submitted value as "name.index".
	Repeated bool
	// Match names the field a confirm-password must equal.
	Match string

	// Error replaces the predicate's message on any failure.
	Error Message
	// Summary overrides the label used in failure summaries.
	Summary Message

	Constraints Constraints
}

// Action is the side effect of a submission.
type Action struct {
	// Toast is shown when non-empty.
	Toast   toast.Kind
	Message Message

	// Summary lists the failed fields instead of Message when any failed.
	Summary bool

	Reset bool
	Clear []string

	Redirect      string
	RedirectDelay time.Duration
	// StayOn suppresses the redirect (and resets instead) when the current
	// page path contains it.
	StayOn string

	// Echo passes the named field's value to Message as the "value" argument.
	Echo string
}

// Spec is one row of the form configuration table.
type Spec struct {
	Name    string
	Title   Message
	Fields  []FieldSpec
	Success Action
	Failure Action
}

func (s Spec) field(name string) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}
