package site

import (
	"strings"
	"time"

	"github.com/dmitrymomot/familyspace/pkg/form"
	"github.com/dmitrymomot/familyspace/pkg/sanitizer"
	"github.com/dmitrymomot/familyspace/pkg/toast"
)

// collector records the controller's side effects. Full-page and SSE
// responses are both rendered from what it gathered.
type collector struct {
	t       text
	page    string
	dismiss time.Duration

	decos    map[string]decoration
	toasts   []toast.Toast
	scroll   string
	reset    bool
	cleared  map[string]bool
	redirect string
	delay    time.Duration
}

func newCollector(t text, page string, dismiss time.Duration) *collector {
	return &collector{
		t:       t,
		page:    page,
		dismiss: dismiss,
		decos:   make(map[string]decoration),
		cleared: make(map[string]bool),
	}
}

var _ form.Presenter = (*collector)(nil)

func (c *collector) Decorate(field string, state form.State, msg form.Message) {
	d := c.decos[field]
	d.state, d.msg = state, msg
	c.decos[field] = d
}

func (c *collector) Notify(kind toast.Kind, msg form.Message, details []form.Message) {
	var text string
	if len(details) > 0 {
		items := make([]string, len(details))
		for i, d := range details {
			items[i] = c.t.msg(d)
		}
		text = c.t.get("form.failure.summary", "Ошибки: %{items}", "items", strings.Join(items, ", "))
	} else {
		text = c.t.msg(stripEcho(msg))
	}
	c.toasts = append(c.toasts, toast.New(kind, text).WithDismiss(c.dismiss))
}

func (c *collector) ScrollTo(field string) {
	if c.scroll == "" {
		c.scroll = field
	}
}

func (c *collector) Reset() { c.reset = true }

func (c *collector) Clear(field string) { c.cleared[field] = true }

func (c *collector) Redirect(url string, delay time.Duration) {
	c.redirect, c.delay = url, delay
}

func (c *collector) Page() string { return c.page }

// attach copies predicate metadata from the outcome so views can show
// password strength and computed age.
func (c *collector) attach(out form.Outcome) {
	for _, fr := range out.Fields {
		d := c.decos[fr.Field]
		d.result = fr.Result
		if d.state == "" {
			d.state = fr.State
		}
		c.decos[fr.Field] = d
	}
}

// stripEcho removes markup from the echoed user value before it is placed
// in a toast.
func stripEcho(m form.Message) form.Message {
	v, ok := m.Args["value"].(string)
	if !ok {
		return m
	}
	args := make(map[string]any, len(m.Args))
	for k, a := range m.Args {
		args[k] = a
	}
	args["value"] = sanitizer.PlainText(sanitizer.Echo(v))
	m.Args = args
	return m
}
