package form

import (
	"fmt"
	"sync"
	"time"

	"github.com/dmitrymomot/familyspace/pkg/toast"
)

// Built-in form names.
const (
	Registration = "registration"
	Login        = "login"
	Newsletter   = "newsletter"
	Search       = "search"
	Booking      = "booking"
	Feedback     = "feedback"
)

// AccountPath is where a successful login leads.
const AccountPath = "/account"

// LoginRedirectDelay is the pause between the login toast and the redirect.
const LoginRedirectDelay = time.Second

// Registry maps form names to controllers. New form types are added as Spec
// values; no code changes are needed.
type Registry struct {
	mu    sync.RWMutex
	forms map[string]*Controller
	order []string
	opts  []Option
}

// NewRegistry creates an empty registry. opts apply to every controller it builds.
func NewRegistry(opts ...Option) *Registry {
	return &Registry{forms: make(map[string]*Controller), opts: opts}
}

// Register builds and stores a controller for spec.
func (r *Registry) Register(spec Spec) error {
	c, err := NewController(spec, r.opts...)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.forms[spec.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateForm, spec.Name)
	}
	r.forms[spec.Name] = c
	r.order = append(r.order, spec.Name)
	return nil
}

func (r *Registry) Get(name string) (*Controller, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.forms[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownForm, name)
	}
	return c, nil
}

// Names lists registered forms in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Builtin returns a registry holding the site's forms.
func Builtin(opts ...Option) (*Registry, error) {
	r := NewRegistry(opts...)
	for _, spec := range BuiltinSpecs() {
		if err := r.Register(spec); err != nil {
			return nil, err
		}
	}
	return r, nil
}

var genericSuccess = Action{
	Toast:   toast.Success,
	Message: Message{Key: "form.success", Text: "Форма успешно отправлена!"},
	Reset:   true,
}

var genericFailure = Action{
	Toast:   toast.Error,
	Message: Message{Key: "form.failure.generic", Text: "Пожалуйста, исправьте ошибки в форме"},
	Summary: true,
}

var emailError = Message{Key: "form.email.invalid", Text: "Введите корректный email адрес"}

// BuiltinSpecs is the declarative table of the site's forms.
func BuiltinSpecs() []Spec {
	feedback := mustGeneric(Feedback, []Input{
		{Name: "name", Type: "text", Label: "Имя"},
		{Name: "email", Type: "email", Label: "Email"},
		{Name: "message", Type: "textarea", Label: "Сообщение"},
	})

	return []Spec{
		{
			Name:  Registration,
			Title: Message{Key: "form.registration.title", Text: "Регистрация семьи"},
			Fields: []FieldSpec{
				{Name: "lastName", Kind: KindRequiredText, Label: "Фамилия"},
				{Name: "firstName", Kind: KindRequiredText, Label: "Имя"},
				{Name: "email", Kind: KindEmail, Label: "Email", Error: emailError},
				{Name: "password", Kind: KindPassword, Label: "Пароль"},
				{Name: "confirmPassword", Kind: KindConfirmPassword, Label: "Подтверждение пароля", Match: "password"},
				{Name: "birthDate", Kind: KindBirthDate, Label: "Дата рождения", Optional: true},
				{
					Name: "gender", Kind: KindRadio, Label: "Пол",
					Constraints: Constraints{Options: []string{"male", "female"}},
				},
				{Name: "photo", Kind: KindFile, Label: "Фотография", Optional: true},
				{Name: "familyMember", Kind: KindRequiredText, Label: "Член семьи", Repeated: true},
				{Name: "agreement", Kind: KindCheckbox, Label: "Согласие на обработку данных"},
			},
			Success: genericSuccess,
			Failure: genericFailure,
		},
		{
			Name:  Login,
			Title: Message{Key: "form.login.title", Text: "Вход"},
			Fields: []FieldSpec{
				{Name: "email", Kind: KindEmail, Label: "Email", Error: emailError},
				{
					Name: "password", Kind: KindPassword, Label: "Пароль",
					Error: Message{Key: "form.login.password", Text: "Пароль должен содержать не менее 6 символов"},
				},
			},
			Success: Action{
				Toast:         toast.Success,
				Message:       Message{Key: "form.login.success", Text: "Вход выполнен успешно!"},
				Redirect:      AccountPath,
				RedirectDelay: LoginRedirectDelay,
				StayOn:        AccountPath,
			},
			Failure: Action{
				Toast:   toast.Error,
				Message: Message{Key: "form.login.failure", Text: "Пожалуйста, проверьте email и пароль"},
			},
		},
		{
			Name:  Newsletter,
			Title: Message{Key: "form.newsletter.title", Text: "Подписка на новости"},
			Fields: []FieldSpec{
				{Name: "email", Kind: KindEmail, Label: "Email", Error: emailError},
				{
					Name: "agreement", Kind: KindCheckbox, Label: "Согласие",
					Error: Message{Key: "form.newsletter.agreement", Text: "Необходимо согласие на обработку данных"},
				},
			},
			Success: Action{
				Toast:   toast.Success,
				Message: Message{Key: "form.newsletter.success", Text: "Вы успешно подписались на новости!"},
				Reset:   true,
			},
		},
		{
			Name:  Search,
			Title: Message{Key: "form.search.title", Text: "Поиск"},
			Fields: []FieldSpec{
				{
					Name: "query", Kind: KindRequired, Label: "Запрос",
					Error: Message{Key: "form.search.required", Text: "Введите поисковый запрос"},
				},
			},
			Success: Action{
				Toast:   toast.Info,
				Message: Message{Key: "form.search.running", Text: `Выполняется поиск: "%{value}"`},
				Echo:    "query",
				Clear:   []string{"query"},
			},
		},
		{
			Name:  Booking,
			Title: Message{Key: "form.booking.title", Text: "Запись на конкурс"},
			Fields: []FieldSpec{
				{
					Name: "competition", Kind: KindRequired, Label: "Конкурс",
					Error: Message{Key: "form.booking.competition", Text: "Выберите конкурс"},
				},
				{
					Name: "time", Kind: KindRequired, Label: "Время",
					Error: Message{Key: "form.booking.time", Text: "Выберите время"},
				},
				{
					Name: "participants", Kind: KindNumber, Label: "Количество человек",
					Constraints: Constraints{Min: 1, Max: 10},
					Error:       Message{Key: "form.booking.participants", Text: "Укажите количество человек от 1 до 10"},
				},
			},
			Success: Action{
				Toast:   toast.Success,
				Message: Message{Key: "form.booking.success", Text: "Запись на конкурс успешно оформлена!"},
				Reset:   true,
			},
		},
		feedback,
	}
}

// Input describes an HTML input for Generic.
type Input struct {
	Name  string
	Type  string
	Label string
}

// Generic builds a required-fields-only spec from HTML input types:
// email, password, checkbox and radio get their own checks, a password named
// confirmPassword is compared with password, a date named birthDate is
// optional, everything else must be non-empty.
func Generic(name string, inputs []Input) (Spec, error) {
	spec := Spec{
		Name:    name,
		Title:   Message{Key: "form." + name + ".title", Text: name},
		Success: genericSuccess,
		Failure: genericFailure,
	}

	hasPassword := false
	for _, in := range inputs {
		if in.Type == "password" && in.Name == "password" {
			hasPassword = true
		}
	}

	for _, in := range inputs {
		f := FieldSpec{Name: in.Name, Label: in.Label}
		switch {
		case in.Type == "email":
			f.Kind = KindEmail
			f.Error = emailError
		case in.Type == "password" && in.Name == "confirmPassword" && hasPassword:
			f.Kind = KindConfirmPassword
			f.Match = "password"
		case in.Type == "password":
			f.Kind = KindPassword
		case in.Type == "checkbox":
			f.Kind = KindCheckbox
		case in.Type == "radio":
			f.Kind = KindRadio
		case in.Type == "date" && in.Name == "birthDate":
			f.Kind = KindBirthDate
			f.Optional = true
		default:
			f.Kind = KindRequired
		}
		spec.Fields = append(spec.Fields, f)
	}

	if _, err := NewController(spec); err != nil {
		return Spec{}, err
	}
	return spec, nil
}

func mustGeneric(name string, inputs []Input) Spec {
	spec, err := Generic(name, inputs)
	if err != nil {
		panic(err)
	}
	return spec
}
