package cookie

import (
	"fmt"
	"net/http"
	"strings"
)

// Option adjusts the cookie about to be written. Options passed to New
// become the defaults for every cookie of that manager.
type Option func(*http.Cookie)

func WithPath(path string) Option {
	return func(c *http.Cookie) { c.Path = path }
}

func WithDomain(domain string) Option {
	return func(c *http.Cookie) { c.Domain = domain }
}

// WithMaxAge sets the lifetime in seconds; zero makes a session cookie.
func WithMaxAge(seconds int) Option {
	return func(c *http.Cookie) { c.MaxAge = seconds }
}

func WithSecure(secure bool) Option {
	return func(c *http.Cookie) { c.Secure = secure }
}

// WithHTTPOnly false lets client scripts read the cookie.
func WithHTTPOnly(httpOnly bool) Option {
	return func(c *http.Cookie) { c.HttpOnly = httpOnly }
}

func WithSameSite(mode http.SameSite) Option {
	return func(c *http.Cookie) { c.SameSite = mode }
}

// ParseSameSite maps "lax", "strict" and "none" to their modes. An empty
// string yields the default mode.
func ParseSameSite(s string) (http.SameSite, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return http.SameSiteDefaultMode, nil
	case "lax":
		return http.SameSiteLaxMode, nil
	case "strict":
		return http.SameSiteStrictMode, nil
	case "none":
		return http.SameSiteNoneMode, nil
	}
	return 0, fmt.Errorf("cookie: unknown SameSite mode %q", s)
}
