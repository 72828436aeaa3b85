package toast

import (
	"time"

	"github.com/google/uuid"
)

// DefaultDismiss is how long a toast stays on screen unless closed earlier.
const DefaultDismiss = 5 * time.Second

// Kind is the visual category of a toast.
type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Warning Kind = "warning"
	Info    Kind = "info"
)

// Style is the fixed presentation of a kind.
type Style struct {
	Icon  string
	Title string
	Color string
}

var styles = map[Kind]Style{
	Success: {Icon: "fa-check-circle", Title: "Успешно!", Color: "rgba(76, 175, 80, 0.95)"},
	Error:   {Icon: "fa-exclamation-circle", Title: "Ошибка!", Color: "rgba(244, 67, 54, 0.95)"},
	Warning: {Icon: "fa-exclamation-triangle", Title: "Внимание!", Color: "rgba(255, 152, 0, 0.95)"},
	Info:    {Icon: "fa-info-circle", Title: "Информация", Color: "rgba(33, 150, 243, 0.95)"},
}

// Normalize maps unknown kinds to Info.
func (k Kind) Normalize() Kind {
	if _, ok := styles[k]; ok {
		return k
	}
	return Info
}

// Style returns the presentation of k, falling back to Info.
func (k Kind) Style() Style {
	return styles[k.Normalize()]
}

// TitleKey is the translation key of the kind's title.
func (k Kind) TitleKey() string {
	return "toast.title." + string(k.Normalize())
}

// Toast is one transient notification.
type Toast struct {
	ID      string
	Kind    Kind
	Message string
	Dismiss time.Duration
}

// New creates a toast with a fresh id and the default dismiss delay.
func New(kind Kind, message string) Toast {
	return Toast{
		ID:      "toast-" + uuid.NewString(),
		Kind:    kind.Normalize(),
		Message: message,
		Dismiss: DefaultDismiss,
	}
}

// WithDismiss returns a copy with a custom dismiss delay; zero disables
// auto-dismiss.
func (t Toast) WithDismiss(d time.Duration) Toast {
	t.Dismiss = d
	return t
}

func (t Toast) Style() Style {
	return t.Kind.Style()
}
