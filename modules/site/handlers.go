package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrymomot/familyspace/handler"
	"github.com/dmitrymomot/familyspace/modules/site/views"
	"github.com/dmitrymomot/familyspace/pkg/form"
	"github.com/dmitrymomot/familyspace/pkg/logger"
	"github.com/dmitrymomot/familyspace/pkg/sanitizer"
	"github.com/dmitrymomot/familyspace/pkg/schedule"
	"github.com/dmitrymomot/familyspace/pkg/toast"
)

// flashToasts is the flash cookie key carrying toasts across a redirect.
const flashToasts = "toasts"

type formRequest struct {
	Form string `path:"form"`
}

type submitRequest struct {
	Form   string                             `path:"form"`
	Values url.Values                         `form:"*"`
	Files  map[string][]*multipart.FileHeader `file:"*"`
}

type fieldRequest struct {
	Form   string                             `path:"form"`
	Field  string                             `path:"field"`
	Event  string                             `query:"event"`
	State  string                             `query:"state"`
	Values url.Values                         `form:"*"`
	Files  map[string][]*multipart.FileHeader `file:"*"`
}

type validateRequest struct {
	Form   string         `path:"form" json:"-"`
	Values url.Values     `form:"*" json:"-"`
	Fields map[string]any `json:"fields"`
}

type fieldResponse struct {
	Field    string `json:"field"`
	State    string `json:"state"`
	Valid    bool   `json:"valid"`
	Message  string `json:"message,omitempty"`
	Strength *int   `json:"strength,omitempty"`
	Age      *int   `json:"age,omitempty"`
}

type validateResponse struct {
	Form   string          `json:"form"`
	Valid  bool            `json:"valid"`
	Fields []fieldResponse `json:"fields"`
}

func (s *Service) index(ctx handler.Context, _ struct{}) handler.Response {
	t := s.text(ctx)
	items := make([]views.IndexItem, 0, len(s.forms.Names()))
	for _, name := range s.forms.Names() {
		c, err := s.forms.Get(name)
		if err != nil {
			continue
		}
		items = append(items, views.IndexItem{Title: t.msg(c.Spec().Title), URL: "/forms/" + url.PathEscape(name)})
	}
	title := t.get("site.index", "Формы")
	return handler.Templ(s.layout(ctx, title, s.flashed(ctx, t), views.Index(title, items)))
}

func (s *Service) formPage(ctx handler.Context, req formRequest) handler.Response {
	c, err := s.forms.Get(req.Form)
	if err != nil {
		return handler.Fail(handler.ErrNotFound)
	}
	t := s.text(ctx)
	fv := s.formView(t, c, form.NewValues(nil, nil), nil, false)
	return handler.Templ(s.layout(ctx, fv.Title, s.flashed(ctx, t), views.FormPage(fv)))
}

// submit validates a whole form. DataStar requests get an SSE stream of
// field patches, toasts and delayed effects; plain posts get the page back
// or a redirect.
func (s *Service) submit(ctx handler.Context, req submitRequest) handler.Response {
	c, err := s.forms.Get(req.Form)
	if err != nil {
		return handler.Fail(handler.ErrNotFound)
	}

	r := ctx.Request()
	t := s.text(ctx)
	values := form.FromMultipart(req.Values, req.Files)
	col := newCollector(t, pagePath(r), s.cfg.ToastDismiss)
	out := c.Submit(ctx, values, col)
	col.attach(out)
	s.logSubmission(ctx, out, values)

	if handler.IsDataStar(r) {
		return handler.SSE(func(stream handler.StreamContext) error {
			return s.stream(stream, t, c, values, col)
		})
	}

	if col.redirect != "" {
		if err := s.cookies.SetFlash(ctx.ResponseWriter(), flashToasts, col.toasts); err != nil {
			s.log.WarnContext(ctx, "failed to store flash toasts", logger.Component("site"), logger.Error(err))
		}
		return handler.Redirect(col.redirect)
	}

	shown := form.Values(values)
	decos := col.decos
	if col.reset {
		shown, decos = form.NewValues(nil, nil), nil
	} else if len(col.cleared) > 0 {
		shown = blanked{Values: values, fields: col.cleared}
		decos = undecorate(decos, col.cleared)
	}

	fv := s.formView(t, c, shown, decos, false)
	status := http.StatusOK
	if !out.Valid {
		status = http.StatusUnprocessableEntity
	}
	return handler.TemplStatus(status, s.layout(ctx, fv.Title, s.toastViews(t, col.toasts), views.FormPage(fv)))
}

// stream writes the submission result and keeps the response open until
// every delayed effect has run, the client leaves or the service shuts down.
func (s *Service) stream(stream handler.StreamContext, t text, c *form.Controller, values form.Values, col *collector) error {
	sched := schedule.New(stream)
	if !s.track(sched) {
		sched.Close()
	}
	defer func() {
		sched.Close()
		s.untrack(sched)
	}()

	name := c.Name()
	if col.reset {
		fv := s.formView(t, c, form.NewValues(nil, nil), nil, true)
		if err := stream.SendComponent(views.Form(fv)); err != nil {
			return err
		}
	} else {
		shown, decos := values, col.decos
		if len(col.cleared) > 0 {
			shown = blanked{Values: values, fields: col.cleared}
			decos = undecorate(decos, col.cleared)
		}
		fv := s.formView(t, c, shown, decos, true)
		patches := make([]handler.TemplPatch, 0, len(fv.Fields))
		for _, f := range fv.Fields {
			patches = append(patches, handler.Patch(views.Field(f)))
		}
		if err := stream.SendMultiple(patches...); err != nil {
			return err
		}
	}

	for _, tst := range col.toasts {
		err := stream.SendComponent(views.Toast(s.toastView(t, tst)),
			handler.WithTarget("#"+views.ToastContainerID),
			handler.WithPatchMode(handler.PatchPrepend),
		)
		if err != nil {
			return err
		}
		if tst.Dismiss > 0 {
			selector := "#" + tst.ID
			sched.After(tst.Dismiss, func(context.Context) {
				s.streamErr(stream, stream.Remove(selector))
			})
		}
	}

	if col.scroll != "" {
		script := scrollScript(fieldDOMID(name, col.scroll))
		sched.After(s.cfg.ScrollDelay, func(context.Context) {
			s.streamErr(stream, stream.ExecuteScript(script))
		})
	}

	if col.redirect != "" {
		target := col.redirect
		sched.After(col.delay, func(context.Context) {
			s.streamErr(stream, stream.Redirect(target))
		})
	}

	if err := sched.Wait(stream); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (s *Service) streamErr(ctx context.Context, err error) {
	if err != nil {
		s.log.DebugContext(ctx, "delayed patch not delivered", logger.Component("site"), logger.Error(err))
	}
}

// fieldEvent re-evaluates one field on input or blur.
func (s *Service) fieldEvent(ctx handler.Context, req fieldRequest) handler.Response {
	c, err := s.forms.Get(req.Form)
	if err != nil {
		return handler.Fail(handler.ErrNotFound)
	}
	spec, ok := specField(c, req.Field)
	if !ok {
		return handler.Fail(handler.ErrNotFound)
	}

	ev, ok := form.ParseEvent(req.Event)
	if !ok {
		return handler.Fail(handler.ErrBadRequest)
	}

	values := form.FromMultipart(req.Values, req.Files)
	state, fr, err := c.Field(ctx, req.Field, ev, form.ParseState(req.State), values)
	switch {
	case errors.Is(err, form.ErrUnknownField):
		return handler.Fail(handler.ErrNotFound)
	case errors.Is(err, form.ErrUnknownEvent):
		return handler.Fail(handler.ErrBadRequest)
	case err != nil:
		return handler.Fail(err)
	}

	t := s.text(ctx)
	if handler.IsDataStar(ctx.Request()) {
		d := decoration{state: state, msg: fr.Message(), result: fr.Result}
		fv := s.fieldView(t, c.Name(), spec, req.Field, values, d, true)
		return handler.Templ(views.Field(fv))
	}
	fr.State = state
	return handler.JSON(s.fieldResponse(t, fr))
}

// validate is the JSON endpoint: it accepts either a form body or
// {"fields": {...}} and reports every field without side effects.
func (s *Service) validate(ctx handler.Context, req validateRequest) handler.Response {
	c, err := s.forms.Get(req.Form)
	if err != nil {
		return handler.JSONError(handler.ErrNotFound).WithMessage(s.text(ctx).get(handler.ErrNotFound.Key, ""))
	}

	raw := req.Values
	if raw == nil {
		raw = jsonValues(req.Fields)
	}

	t := s.text(ctx)
	out := c.Validate(ctx, form.NewValues(raw, nil))
	resp := validateResponse{Form: out.Form, Valid: out.Valid, Fields: make([]fieldResponse, 0, len(out.Fields))}
	for _, fr := range out.Fields {
		resp.Fields = append(resp.Fields, s.fieldResponse(t, fr))
	}

	status := http.StatusOK
	if !out.Valid {
		status = http.StatusUnprocessableEntity
	}
	return handler.JSON(resp).WithStatus(status)
}

func (s *Service) fieldResponse(t text, fr form.FieldResult) fieldResponse {
	resp := fieldResponse{
		Field: fr.Field,
		State: string(fr.State),
		Valid: fr.Result.IsValid(),
	}
	if !resp.Valid {
		resp.Message = t.msg(fr.Message())
	}
	if v, ok := fr.Result.Strength(); ok {
		resp.Strength = &v
	}
	if v, ok := fr.Result.Age(); ok {
		resp.Age = &v
	}
	return resp
}

// toggleTheme flips the theme cookie. DataStar swaps the icon in place,
// a plain post goes back to the page it came from.
func (s *Service) toggleTheme(ctx handler.Context, _ struct{}) handler.Response {
	r := ctx.Request()
	if s.themes.IsForged(r) {
		s.log.WarnContext(ctx, "forged theme cookie", logger.Component("theme"))
	}
	next := s.themes.Toggle(ctx.ResponseWriter(), r)

	if !handler.IsDataStar(r) {
		return handler.Redirect(pagePath(r))
	}

	t := s.text(ctx)
	toggle := views.ThemeToggle(next.Icon(), t.get(next.IconTitleKey(), next.IconTitle()))
	return handler.SSE(func(stream handler.StreamContext) error {
		if err := stream.SendComponent(toggle); err != nil {
			return err
		}
		return stream.ExecuteScript(views.ThemeScript(next.String()))
	})
}

func (s *Service) account(ctx handler.Context, _ struct{}) handler.Response {
	t := s.text(ctx)
	title := t.get("account.title", "Личный кабинет")
	body := views.Account(title, t.get("account.welcome", "Добро пожаловать!"))
	return handler.Templ(s.layout(ctx, title, s.flashed(ctx, t), body))
}

// flashed pops the toasts left by a redirecting submission.
func (s *Service) flashed(ctx handler.Context, t text) []views.ToastView {
	var toasts []toast.Toast
	if err := s.cookies.GetFlash(ctx.ResponseWriter(), ctx.Request(), flashToasts, &toasts); err != nil {
		return nil
	}
	return s.toastViews(t, toasts)
}

func (s *Service) toastViews(t text, toasts []toast.Toast) []views.ToastView {
	out := make([]views.ToastView, len(toasts))
	for i, tst := range toasts {
		out[i] = s.toastView(t, tst)
	}
	return out
}

func (s *Service) logSubmission(ctx context.Context, out form.Outcome, values form.Values) {
	attrs := []slog.Attr{logger.Component("site"), logger.Form(out.Form)}
	if email := values.Value("email"); email != "" {
		attrs = append(attrs, logger.Email(sanitizer.MaskEmail(email)))
	}
	if out.Valid {
		s.log.LogAttrs(ctx, slog.LevelInfo, "form submitted", attrs...)
		return
	}
	failed := out.Failed()
	names := make([]string, len(failed))
	for i, fr := range failed {
		names[i] = fr.Field
	}
	s.log.LogAttrs(ctx, slog.LevelInfo, "form rejected", append(attrs, logger.InvalidFields(names...))...)
}

// pagePath is the same-host path the request was sent from, or "/".
func pagePath(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" || (ref.Host != "" && ref.Host != r.Host) {
		return "/"
	}
	return ref.Path
}

func scrollScript(domID string) string {
	return fmt.Sprintf(`document.getElementById(%q)?.scrollIntoView({behavior: "smooth", block: "center"})`, domID)
}

// jsonValues converts a JSON field map. Booleans become checkbox values and
// arrays become repeated fields.
func jsonValues(fields map[string]any) url.Values {
	out := make(url.Values, len(fields))
	for name, v := range fields {
		switch val := v.(type) {
		case nil:
		case bool:
			if val {
				out.Set(name, "on")
			}
		case []any:
			for _, item := range val {
				out.Add(name, scalar(item))
			}
		default:
			out.Set(name, scalar(val))
		}
	}
	return out
}

func scalar(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		if val {
			return "on"
		}
		return ""
	default:
		return fmt.Sprint(val)
	}
}

// blanked hides the values of cleared fields.
type blanked struct {
	form.Values
	fields map[string]bool
}

func (b blanked) Value(name string) string {
	if b.fields[name] {
		return ""
	}
	return b.Values.Value(name)
}

func (b blanked) All(name string) []string {
	if b.fields[name] {
		return nil
	}
	return b.Values.All(name)
}

func undecorate(decos map[string]decoration, cleared map[string]bool) map[string]decoration {
	out := make(map[string]decoration, len(decos))
	for id, d := range decos {
		if cleared[id] {
			continue
		}
		out[id] = d
	}
	return out
}
