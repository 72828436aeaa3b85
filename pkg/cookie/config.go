package cookie

import (
	"net/http"
	"strings"
)

// Config is loaded from the environment by pkg/config.
type Config struct {
	Secrets  []string `env:"COOKIE_SECRETS" envSeparator:","`
	Path     string   `env:"COOKIE_PATH" envDefault:"/"`
	Domain   string   `env:"COOKIE_DOMAIN"`
	Secure   bool     `env:"COOKIE_SECURE" envDefault:"false"`
	SameSite string   `env:"COOKIE_SAME_SITE" envDefault:"lax" validate:"omitempty,oneof=lax strict none"`
}

// HasSecret reports whether any non-blank secret is configured.
func (c Config) HasSecret() bool {
	for _, s := range c.Secrets {
		if strings.TrimSpace(s) != "" {
			return true
		}
	}
	return false
}

// NewFromConfig builds a manager from cfg; opts are applied after it.
func NewFromConfig(cfg Config, opts ...Option) (*Manager, error) {
	mode, err := ParseSameSite(cfg.SameSite)
	if err != nil {
		return nil, err
	}

	secrets := make([]string, 0, len(cfg.Secrets))
	for _, s := range cfg.Secrets {
		secrets = append(secrets, strings.TrimSpace(s))
	}

	base := []Option{WithDomain(cfg.Domain), WithSecure(cfg.Secure)}
	if cfg.Path != "" {
		base = append(base, WithPath(cfg.Path))
	}
	if mode != http.SameSiteDefaultMode {
		base = append(base, WithSameSite(mode))
	}
	return New(secrets, append(base, opts...)...)
}
