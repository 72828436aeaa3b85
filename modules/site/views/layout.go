package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Page is the shell around every full-page response.
type Page struct {
	Lang       string
	Theme      string
	Title      string
	SiteName   string
	ScriptURL  string
	ThemeIcon  string
	ThemeTitle string
	Toasts     []ToastView
}

const fontAwesomeURL = "https://cdnjs.cloudflare.com/ajax/libs/font-awesome/6.5.1/css/all.min.css"

// Layout renders body inside the document shell. The toast container is
// always present so SSE patches have a target.
func Layout(p Page, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw("<!DOCTYPE html>")
		w.rawf(`<html lang="%s" data-theme="%s"><head><meta charset="utf-8">`, p.Lang, p.Theme)
		w.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		w.rawf(`<title>%s</title>`, p.Title)
		w.rawf(`<link rel="stylesheet" href="%s">`, fontAwesomeURL)
		w.raw(`<link rel="stylesheet" href="/assets/forms.css">`)
		if p.ScriptURL != "" {
			w.rawf(`<script type="module" src="%s"></script>`, p.ScriptURL)
		}
		w.raw(`</head><body><header class="site-header">`)
		w.rawf(`<a class="site-header__brand" href="/">%s</a>`, p.SiteName)
		w.render(ctx, ThemeToggle(p.ThemeIcon, p.ThemeTitle))
		w.raw(`</header>`)
		w.render(ctx, ToastContainer(p.Toasts))
		w.raw(`<main class="site-main">`)
		w.render(ctx, body)
		w.raw(`</main></body></html>`)
		return w.err
	})
}

// ThemeToggle posts to /theme. Without scripts the form submit reloads the
// page; with DataStar the button is patched in place.
func ThemeToggle(icon, title string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw(`<form id="theme-toggle" class="theme-toggle" method="post" action="/theme" data-on-submit="@post('/theme')">`)
		w.rawf(`<button type="submit" class="theme-toggle__button" title="%s" aria-label="%s">`, title, title)
		w.rawf(`<i class="fas %s"></i></button></form>`, icon)
		return w.err
	})
}

// ThemeScript switches the document theme after a DataStar toggle.
func ThemeScript(theme string) string {
	return `document.documentElement.dataset.theme = "` + templ.EscapeString(theme) + `"`
}
