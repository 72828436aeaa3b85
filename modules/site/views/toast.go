package views

import (
	"context"
	"io"
	"time"

	"github.com/a-h/templ"
)

type ToastView struct {
	ID         string
	Kind       string
	Icon       string
	Color      string
	Title      string
	Message    string
	CloseLabel string
	// Dismiss drives the CSS fade-out for pages rendered without SSE.
	Dismiss time.Duration
}

// ToastContainerID is the SSE target for new toasts.
const ToastContainerID = "toast-container"

func ToastContainer(toasts []ToastView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.rawf(`<div id="%s" class="toast-container" aria-live="polite">`, ToastContainerID)
		for _, t := range toasts {
			w.render(ctx, Toast(t))
		}
		w.raw(`</div>`)
		return w.err
	})
}

func Toast(t ToastView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		w := &writer{w: out}
		timed := ""
		style := "background: " + t.Color + ";"
		if t.Dismiss > 0 {
			timed = "form-message--timed"
			style += " animation-delay: 0s, " + t.Dismiss.String() + ";"
		}
		w.rawf(`<div id="%s" class="%s" role="alert"`, t.ID, classes("form-message", "form-message--"+t.Kind, timed))
		w.attr("style", style)
		w.raw(">")
		w.rawf(`<i class="fas %s form-message__icon"></i>`, t.Icon)
		w.rawf(`<div class="form-message__body"><strong class="form-message__title">%s</strong>`, t.Title)
		w.rawf(`<p class="form-message__text">%s</p></div>`, t.Message)
		w.rawf(`<button type="button" class="form-message__close" aria-label="%s" data-on-click="el.closest('.form-message').remove()">&times;</button>`, t.CloseLabel)
		w.raw(`</div>`)
		return w.err
	})
}
