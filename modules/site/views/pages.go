package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

type IndexItem struct {
	Title string
	URL   string
}

func Index(title string, items []IndexItem) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.rawf(`<section class="form-card"><h1 class="form-card__title">%s</h1><ul class="form-list">`, title)
		for _, it := range items {
			w.rawf(`<li><a href="%s">%s</a></li>`, it.URL, it.Title)
		}
		w.raw(`</ul></section>`)
		return w.err
	})
}

func Account(title, text string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.rawf(`<section class="form-card"><h1 class="form-card__title">%s</h1><p>%s</p></section>`, title, text)
		return w.err
	})
}

type ErrorView struct {
	StatusCode     int
	Message        string
	RequestID      string
	RequestIDLabel string
	RetryURL       string
	RetryLabel     string
	Detail         string
}

func Error(e ErrorView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.rawf(`<section class="form-card form-card--error"><h1 class="form-card__title">%d</h1><p>%s</p>`, e.StatusCode, e.Message)
		if e.RequestID != "" {
			w.rawf(`<p class="field-hint">%s: <code>%s</code></p>`, e.RequestIDLabel, e.RequestID)
		}
		if e.Detail != "" {
			w.rawf(`<pre class="error-detail">%s</pre>`, e.Detail)
		}
		if e.RetryURL != "" {
			w.rawf(`<a class="btn" href="%s">%s</a>`, e.RetryURL, e.RetryLabel)
		}
		w.raw(`</section>`)
		return w.err
	})
}
