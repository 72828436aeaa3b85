package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	validatorpkg "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var (
	ErrNilTarget = errors.New("config: nil target")
	ErrParse     = errors.New("config: cannot parse environment")
	ErrInvalid   = errors.New("config: validation failed")
)

type cache struct {
	mu     sync.Mutex
	values map[reflect.Type]any
}

var (
	loaded = &cache{values: make(map[reflect.Type]any)}

	defaultEnvOnce sync.Once

	structValidator = validatorpkg.New()
)

// Load fills v from the environment and checks its `validate` tags. The
// first successful load of a type is cached; later calls copy the cache.
// A .env file in the working directory is read once, if present, and never
// overrides variables that are already set.
//
//	type Config struct {
//		Addr         string        `env:"HTTP_ADDR" envDefault:":8080" validate:"required"`
//		ToastDismiss time.Duration `env:"TOAST_DISMISS" envDefault:"5s" validate:"gt=0"`
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilTarget
	}
	defaultEnvOnce.Do(func() { _ = godotenv.Load() })

	key := reflect.TypeFor[T]()

	loaded.mu.Lock()
	defer loaded.mu.Unlock()

	if cached, ok := loaded.values[key]; ok {
		*v = cached.(T)
		return nil
	}

	var cfg T
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("%w: %w", ErrParse, err)
	}
	if reflect.ValueOf(cfg).Kind() == reflect.Struct {
		if err := structValidator.Struct(cfg); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalid, key, err)
		}
	}

	loaded.values[key] = cfg
	*v = cfg
	return nil
}

// LoadEnv reads the given .env files into the process environment. Later
// files override earlier ones and the existing environment.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	return godotenv.Overload(paths...)
}

// ResetCache forgets every loaded config. Meant for tests.
func ResetCache() {
	loaded.mu.Lock()
	defer loaded.mu.Unlock()
	clear(loaded.values)
}
