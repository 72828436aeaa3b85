package cookie

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"
)

const minSecretLength = 32

var (
	ErrNoSecret         = errors.New("cookie: no secret configured")
	ErrSecretTooShort   = errors.New("cookie: secret too short")
	ErrNotFound         = errors.New("cookie: not found")
	ErrInvalidFormat    = errors.New("cookie: malformed value")
	ErrInvalidSignature = errors.New("cookie: signature mismatch")
	ErrDecryptionFailed = errors.New("cookie: cannot decrypt value")
)

// Manager reads and writes cookies from a shared template. Signed and flash
// cookies are written with the first secret and read with any of them, so a
// new secret is rotated in by prepending it.
type Manager struct {
	secrets []string
	base    http.Cookie
}

func New(secrets []string, opts ...Option) (*Manager, error) {
	secrets = slices.DeleteFunc(slices.Clone(secrets), func(s string) bool { return s == "" })
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}
	for i, s := range secrets {
		if len(s) < minSecretLength {
			return nil, fmt.Errorf("%w: #%d is %d chars, want %d or more", ErrSecretTooShort, i, len(s), minSecretLength)
		}
	}

	m := &Manager{
		secrets: secrets,
		base:    http.Cookie{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode},
	}
	for _, opt := range opts {
		opt(&m.base)
	}
	return m, nil
}

// RandomSecret returns a fresh secret for New. Cookies written with it do not
// survive a restart.
func RandomSecret() (string, error) {
	b := make([]byte, minSecretLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("cookie: generate secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func (m *Manager) cookie(name, value string, opts []Option) *http.Cookie {
	c := m.base
	c.Name, c.Value = name, value
	for _, opt := range opts {
		opt(&c)
	}
	return &c
}

func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) {
	http.SetCookie(w, m.cookie(name, value, opts))
}

func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	switch {
	case errors.Is(err, http.ErrNoCookie):
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	case err != nil:
		return "", err
	}
	return c.Value, nil
}

// Delete expires name using the manager's path and domain.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	c := m.cookie(name, "", nil)
	c.MaxAge = -1
	c.Expires = time.Unix(0, 0)
	http.SetCookie(w, c)
}
