package httpserver

import "time"

const (
	defaultAddr            = ":8080"
	defaultShutdownTimeout = 10 * time.Second
)

type Config struct {
	Addr        string        `env:"HTTP_ADDR" envDefault:":8080" validate:"required"`
	ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"30s"`
	// Zero disables the write timeout; SSE responses stay open while
	// scheduled toast dismissals and redirects are pending.
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"0s"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	MaxBodySize     int64         `env:"HTTP_MAX_BODY_SIZE" envDefault:"6291456" validate:"gt=0"`
}

func (c Config) withDefaults() Config {
	if c.Addr == "" {
		c.Addr = defaultAddr
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = defaultShutdownTimeout
	}
	return c
}
