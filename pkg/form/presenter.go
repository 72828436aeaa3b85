package form

import (
	"time"

	"github.com/dmitrymomot/familyspace/pkg/toast"
)

// Presenter renders controller side effects. Implementations translate
// messages and decide how the page is updated.
type Presenter interface {
	// Decorate sets a field's state; msg is empty unless state is Invalid.
	Decorate(field string, state State, msg Message)
	// Notify shows a toast. details are the failure summary labels, if any.
	Notify(kind toast.Kind, msg Message, details []Message)
	ScrollTo(field string)
	Reset()
	Clear(field string)
	Redirect(url string, delay time.Duration)
	// Page is the path of the page the form was submitted from.
	Page() string
}

// Discard is a Presenter that ignores everything.
var Discard Presenter = discard{}

type discard struct{}

func (discard) Decorate(string, State, Message)       {}
func (discard) Notify(toast.Kind, Message, []Message) {}
func (discard) ScrollTo(string)                       {}
func (discard) Reset()                                {}
func (discard) Clear(string)                          {}
func (discard) Redirect(string, time.Duration)        {}
func (discard) Page() string                          { return "" }
