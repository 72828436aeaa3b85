package site

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/familyspace/modules/site/views"
	"github.com/dmitrymomot/familyspace/pkg/form"
	"github.com/dmitrymomot/familyspace/pkg/i18n"
	"github.com/dmitrymomot/familyspace/pkg/theme"
	"github.com/dmitrymomot/familyspace/pkg/toast"
	"github.com/dmitrymomot/familyspace/pkg/validator"
)

// decoration is what the controller decided for one field instance.
type decoration struct {
	state  form.State
	msg    form.Message
	result validator.Result
}

func (s *Service) text(ctx context.Context) text {
	return text{tr: s.tr, lang: i18n.GetLocale(ctx)}
}

func (s *Service) layout(ctx context.Context, title string, toasts []views.ToastView, body templ.Component) templ.Component {
	t := s.text(ctx)
	th := theme.FromContext(ctx)
	return views.Layout(views.Page{
		Lang:       t.lang,
		Theme:      th.String(),
		Title:      title,
		SiteName:   t.get("site.name", s.cfg.ServiceName),
		ScriptURL:  s.cfg.ScriptURL,
		ThemeIcon:  th.Icon(),
		ThemeTitle: t.get(th.IconTitleKey(), th.IconTitle()),
		Toasts:     toasts,
	}, body)
}

func (s *Service) toastView(t text, tst toast.Toast) views.ToastView {
	style := tst.Style()
	return views.ToastView{
		ID:         tst.ID,
		Kind:       string(tst.Kind),
		Icon:       style.Icon,
		Color:      style.Color,
		Title:      t.get(tst.Kind.TitleKey(), style.Title),
		Message:    tst.Message,
		CloseLabel: t.get("toast.close", "Закрыть"),
		Dismiss:    tst.Dismiss,
	}
}

// formView renders every field of c. Instances missing from decos stay
// untouched. Secrets are echoed only into SSE patches, where dropping the
// value would clear what the visitor typed.
func (s *Service) formView(t text, c *form.Controller, values form.Values, decos map[string]decoration, echoSecrets bool) views.FormView {
	spec := c.Spec()
	fv := views.FormView{
		ID:          formDOMID(spec.Name),
		Name:        spec.Name,
		Title:       t.msg(spec.Title),
		Action:      "/forms/" + spec.Name,
		SubmitLabel: t.get("site.submit", "Отправить"),
	}
	for _, f := range spec.Fields {
		for _, id := range instances(f, values) {
			fv.Fields = append(fv.Fields, s.fieldView(t, spec.Name, f, id, values, decos[id], echoSecrets))
		}
	}
	return fv
}

func (s *Service) fieldView(t text, formName string, f form.FieldSpec, id string, values form.Values, d decoration, echoSecrets bool) views.FieldView {
	value := instanceValue(values, f, id)
	state := d.state
	if state == "" {
		state = form.Untouched
	}
	inputID := inputDOMID(formName, id)

	v := views.FieldView{
		DOMID:   "field-" + inputID,
		InputID: inputID,
		Name:    f.Name,
		Label:   t.get("label."+formName+"."+f.Name, f.Label),
		Type:    inputType(f.Kind),
		Value:   value,
		State:   string(state),
	}
	if state == form.Invalid {
		v.Message = t.msg(d.msg)
	}

	switch f.Kind {
	case form.KindPassword, form.KindConfirmPassword:
		if !echoSecrets {
			v.Value = ""
		}
		if strength, ok := d.result.Strength(); ok && f.Kind == form.KindPassword && value != "" {
			v.Strength, v.ShowStrength = strength, true
		}
	case form.KindCheckbox:
		v.Checked = value != ""
	case form.KindRadio:
		for _, opt := range f.Constraints.Options {
			v.Options = append(v.Options, views.Option{
				Value:   opt,
				Label:   t.get("option."+opt, opt),
				Checked: value == opt,
			})
		}
	case form.KindNumber:
		if f.Constraints.Max > 0 {
			v.Min, v.Max = strconv.Itoa(f.Constraints.Min), strconv.Itoa(f.Constraints.Max)
		}
	case form.KindFile:
		prefix := f.Constraints.MIMEPrefix
		if prefix == "" {
			prefix = validator.ImageMIMEPrefix
		}
		v.Accept = prefix + "*"
	case form.KindBirthDate:
		if age, ok := d.result.Age(); ok && state == form.Valid {
			v.ShowAge = true
			v.Age = age
			v.AgeLabel = t.get("field.age", "Возраст: %{age}", "age", strconv.Itoa(age))
		}
	}

	path := "/forms/" + url.PathEscape(formName) + "/fields/" + url.PathEscape(id)
	v.InputURL = path + "?" + url.Values{"event": {string(form.EventInput)}, "state": {string(state)}}.Encode()
	if f.Kind != form.KindCheckbox && f.Kind != form.KindRadio && f.Kind != form.KindFile {
		v.BlurURL = path + "?" + url.Values{"event": {string(form.EventBlur)}, "state": {string(state)}}.Encode()
	}
	return v
}

func formDOMID(name string) string { return "form-" + name }

func inputDOMID(formName, id string) string {
	return formName + "-" + strings.ReplaceAll(id, ".", "-")
}

func fieldDOMID(formName, id string) string { return "field-" + inputDOMID(formName, id) }

func inputType(k form.Kind) string {
	switch k {
	case form.KindEmail:
		return "email"
	case form.KindPassword, form.KindConfirmPassword:
		return "password"
	case form.KindAge, form.KindNumber:
		return "number"
	case form.KindBirthDate:
		return "date"
	case form.KindCheckbox:
		return "checkbox"
	case form.KindRadio:
		return "radio"
	case form.KindFile:
		return "file"
	default:
		return "text"
	}
}

// instances lists the field ids of f. A repeated field always renders at
// least one instance.
func instances(f form.FieldSpec, values form.Values) []string {
	if !f.Repeated {
		return []string{f.Name}
	}
	n := max(len(values.All(f.Name)), 1)
	ids := make([]string, n)
	for i := range ids {
		ids[i] = f.Name + "." + strconv.Itoa(i)
	}
	return ids
}

func instanceValue(values form.Values, f form.FieldSpec, id string) string {
	if !f.Repeated {
		return values.Value(f.Name)
	}
	dot := strings.LastIndexByte(id, '.')
	idx, err := strconv.Atoi(id[dot+1:])
	all := values.All(f.Name)
	if dot < 0 || err != nil || idx < 0 || idx >= len(all) {
		return ""
	}
	return all[idx]
}

// specField resolves a field id, possibly "name.index", to its spec.
func specField(c *form.Controller, id string) (form.FieldSpec, bool) {
	name := id
	if dot := strings.LastIndexByte(id, '.'); dot >= 0 {
		if _, err := strconv.Atoi(id[dot+1:]); err == nil {
			name = id[:dot]
		}
	}
	for _, f := range c.Spec().Fields {
		if f.Name == name {
			return f, true
		}
	}
	return form.FieldSpec{}, false
}
