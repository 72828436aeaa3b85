package views

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

type Option struct {
	Value   string
	Label   string
	Checked bool
}

// FieldView is one field instance ready to render. DOMID is the patch
// target of the whole field group.
type FieldView struct {
	DOMID   string
	InputID string
	Name    string
	Label   string
	Type    string
	Value   string
	Checked bool
	Options []Option

	State   string
	Message string

	Min, Max string
	Accept   string

	Strength     int
	ShowStrength bool
	Age          int
	ShowAge      bool
	AgeLabel     string

	InputURL string
	BlurURL  string
}

type FormView struct {
	ID          string
	Name        string
	Title       string
	Action      string
	SubmitLabel string
	Fields      []FieldView
}

func Form(f FormView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.rawf(`<form id="%s" class="form form--%s" method="post" action="%s" enctype="multipart/form-data" novalidate`, f.ID, f.Name, f.Action)
		w.rawf(` data-on-submit="@post('%s', {contentType: 'form'})">`, f.Action)
		for _, field := range f.Fields {
			w.render(ctx, Field(field))
		}
		w.rawf(`<button type="submit" class="btn btn--primary">%s</button></form>`, f.SubmitLabel)
		return w.err
	})
}

// FormPage is the form with its heading.
func FormPage(f FormView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.rawf(`<section class="form-card"><h1 class="form-card__title">%s</h1>`, f.Title)
		w.render(ctx, Form(f))
		w.raw(`</section>`)
		return w.err
	})
}

// Field renders a field group. Its class is "valid" or "invalid" once
// decorated, and only an invalid field carries an .error-message.
func Field(f FieldView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		w := &writer{w: out}
		state := f.State
		if state == "untouched" {
			state = ""
		}
		w.rawf(`<div id="%s" class="%s" data-state="%s">`, f.DOMID, classes("form-group", "form-group--"+f.Type, state), f.State)

		switch f.Type {
		case "checkbox":
			w.rawf(`<label class="checkbox" for="%s"><input type="checkbox" id="%s" name="%s" value="on"`, f.InputID, f.InputID, f.Name)
			w.attrIf(f.Checked, "checked")
			liveAttrs(w, f, "change")
			w.rawf(`> %s</label>`, f.Label)
		case "radio":
			w.rawf(`<fieldset class="radio-group" id="%s"><legend>%s</legend>`, f.InputID, f.Label)
			for i, opt := range f.Options {
				id := f.InputID + "-" + strconv.Itoa(i)
				w.rawf(`<label class="radio" for="%s"><input type="radio" id="%s" name="%s" value="%s"`, id, id, f.Name, opt.Value)
				w.attrIf(opt.Checked, "checked")
				liveAttrs(w, f, "change")
				w.rawf(`> %s</label>`, opt.Label)
			}
			w.raw(`</fieldset>`)
		default:
			w.rawf(`<label for="%s">%s</label><input type="%s" id="%s" name="%s"`, f.InputID, f.Label, f.Type, f.InputID, f.Name)
			if f.Type != "file" {
				w.attr("value", f.Value)
			}
			if f.Min != "" {
				w.attr("min", f.Min)
			}
			if f.Max != "" {
				w.attr("max", f.Max)
			}
			if f.Accept != "" {
				w.attr("accept", f.Accept)
			}
			liveAttrs(w, f, "input")
			w.raw(`>`)
		}

		if f.ShowStrength {
			w.rawf(`<div class="password-strength" data-strength="%d"><div class="password-strength__bar" style="width: %d%%"></div></div>`, f.Strength, f.Strength)
		}
		if f.ShowAge {
			w.rawf(`<div class="field-hint">%s</div>`, f.AgeLabel)
		}
		if f.State == "invalid" && f.Message != "" {
			w.rawf(`<div class="error-message">%s</div>`, f.Message)
		}
		w.raw(`</div>`)
		return w.err
	})
}

func liveAttrs(w *writer, f FieldView, inputEvent string) {
	if f.InputURL != "" {
		mod := ""
		if inputEvent == "input" {
			mod = "__debounce.300ms"
		}
		w.rawf(` data-on-%s%s="@post('%s', {contentType: 'form'})"`, inputEvent, mod, f.InputURL)
	}
	if f.BlurURL != "" {
		w.rawf(` data-on-blur="@post('%s', {contentType: 'form'})"`, f.BlurURL)
	}
}
