package handler

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
)

type TemplOption = datastar.PatchElementOption

// WithTarget sets the CSS selector a patch applies to.
func WithTarget(selector string) TemplOption {
	return datastar.WithSelector(selector)
}

func WithPatchMode(mode datastar.ElementPatchMode) TemplOption {
	return datastar.WithMode(mode)
}

// TemplPatch is a component with its own patch options.
type TemplPatch struct {
	Component templ.Component
	Options   []TemplOption
}

func Patch(component templ.Component, opts ...TemplOption) TemplPatch {
	return TemplPatch{Component: component, Options: opts}
}

type templResponse struct {
	status  int
	patches []TemplPatch
}

// Render patches over SSE for DataStar and writes concatenated HTML
// otherwise. The status code only applies to HTML.
func (t templResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		sse := datastar.NewSSE(w, r)
		for _, p := range t.patches {
			if err := sse.PatchElementTempl(p.Component, p.Options...); err != nil {
				return err
			}
		}
		return nil
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if t.status != 0 && t.status != http.StatusOK {
		w.WriteHeader(t.status)
	}
	for _, p := range t.patches {
		if err := p.Component.Render(r.Context(), w); err != nil {
			return err
		}
	}
	return nil
}

// Templ renders one component.
func Templ(component templ.Component, opts ...TemplOption) Response {
	return templResponse{patches: []TemplPatch{Patch(component, opts...)}}
}

// TemplStatus renders component as a page with the given status.
func TemplStatus(status int, component templ.Component) Response {
	return templResponse{status: status, patches: []TemplPatch{Patch(component)}}
}
