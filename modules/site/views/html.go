package views

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// writer collects the first write error so components read top to bottom.
type writer struct {
	w   io.Writer
	err error
}

func (w *writer) raw(s string) {
	if w.err == nil {
		_, w.err = io.WriteString(w.w, s)
	}
}

func (w *writer) text(s string) {
	w.raw(templ.EscapeString(s))
}

// rawf formats with every argument escaped.
func (w *writer) rawf(format string, args ...any) {
	escaped := make([]any, len(args))
	for i, a := range args {
		switch v := a.(type) {
		case string:
			escaped[i] = templ.EscapeString(v)
		default:
			escaped[i] = v
		}
	}
	w.raw(fmt.Sprintf(format, escaped...))
}

func (w *writer) attr(name, value string) {
	w.rawf(` %s="%s"`, name, value)
}

func (w *writer) attrIf(ok bool, name string) {
	if ok {
		w.raw(" " + name)
	}
}

func (w *writer) render(ctx context.Context, c templ.Component) {
	if w.err == nil && c != nil {
		w.err = c.Render(ctx, w.w)
	}
}

func classes(names ...string) string {
	out := names[:0:0]
	for _, n := range names {
		if n != "" {
			out = append(out, n)
		}
	}
	return strings.Join(out, " ")
}
