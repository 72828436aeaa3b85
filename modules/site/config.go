package site

import (
	"time"

	"github.com/dmitrymomot/familyspace/pkg/cookie"
	"github.com/dmitrymomot/familyspace/pkg/httpserver"
	"github.com/dmitrymomot/familyspace/pkg/ratelimiter"
)

// Config is the whole site configuration, loaded with config.Load.
type Config struct {
	Env             string        `env:"APP_ENV" envDefault:"development" validate:"oneof=development staging production test"`
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"familyspace" validate:"required"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	DefaultLanguage string        `env:"DEFAULT_LANGUAGE" envDefault:"ru" validate:"oneof=ru en"`
	ToastDismiss    time.Duration `env:"TOAST_DISMISS" envDefault:"5s" validate:"gte=0"`
	ScrollDelay     time.Duration `env:"SCROLL_DELAY" envDefault:"100ms" validate:"gte=0"`
	ScriptURL       string        `env:"DATASTAR_SCRIPT_URL" envDefault:"https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.5/bundles/datastar.js"`
	// TrustProxy reads the client address from proxy headers.
	TrustProxy bool `env:"TRUST_PROXY" envDefault:"false"`

	HTTP   httpserver.Config
	Cookie cookie.Config
	// RateLimit bounds live validation requests per client.
	RateLimit ratelimiter.Config `envPrefix:"RATE_LIMIT_"`
}
