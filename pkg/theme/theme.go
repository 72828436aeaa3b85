package theme

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrymomot/familyspace/pkg/cookie"
)

// Theme is the site colour scheme.
type Theme string

const (
	Dark  Theme = "dark"
	Light Theme = "light"

	Default = Dark
)

// CookieName holds the visitor's choice.
const CookieName = "theme"

const cookieMaxAge = 365 * 24 * 60 * 60

// Parse maps a stored value to a Theme. Anything unknown is Default.
func Parse(s string) Theme {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light
	case Dark:
		return Dark
	default:
		return Default
	}
}

func (t Theme) String() string { return string(t) }

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == Light {
		return Dark
	}
	return Light
}

// Icon is the Font Awesome class of the toggle button. It shows the theme a
// click switches to.
func (t Theme) Icon() string {
	if t == Light {
		return "fa-moon"
	}
	return "fa-sun"
}

// IconTitle is the toggle button's tooltip.
func (t Theme) IconTitle() string {
	if t == Light {
		return "Переключить на темную тему"
	}
	return "Переключить на светлую тему"
}

// IconTitleKey is the translation key for IconTitle.
func (t Theme) IconTitleKey() string {
	return "theme.switch_to." + t.Toggle().String()
}

// Store keeps the theme in a signed cookie.
type Store struct {
	cookies *cookie.Manager
}

func NewStore(cookies *cookie.Manager) *Store {
	return &Store{cookies: cookies}
}

// Get returns the request's theme. A missing or forged cookie yields Default.
func (s *Store) Get(r *http.Request) Theme {
	v, err := s.cookies.GetSigned(r, CookieName)
	if err != nil {
		return Default
	}
	return Parse(v)
}

func (s *Store) Set(w http.ResponseWriter, t Theme) {
	s.cookies.SetSigned(w, CookieName, Parse(t.String()).String(),
		cookie.WithMaxAge(cookieMaxAge),
		cookie.WithHTTPOnly(false),
	)
}

// Toggle flips the stored theme and returns the new one.
func (s *Store) Toggle(w http.ResponseWriter, r *http.Request) Theme {
	next := s.Get(r).Toggle()
	s.Set(w, next)
	return next
}

// IsForged reports whether the request carries a theme cookie that failed
// verification.
func (s *Store) IsForged(r *http.Request) bool {
	_, err := s.cookies.GetSigned(r, CookieName)
	return errors.Is(err, cookie.ErrInvalidSignature) || errors.Is(err, cookie.ErrInvalidFormat)
}

type contextKey struct{}

func WithContext(ctx context.Context, t Theme) context.Context {
	return context.WithValue(ctx, contextKey{}, t)
}

// FromContext returns the theme stored by Middleware, or Default.
func FromContext(ctx context.Context) Theme {
	if t, ok := ctx.Value(contextKey{}).(Theme); ok {
		return t
	}
	return Default
}

// Middleware makes the request's theme available to views rendered
// without the request, such as error pages.
func (s *Store) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), s.Get(r))))
	})
}
