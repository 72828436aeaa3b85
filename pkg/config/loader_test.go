package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/familyspace/pkg/config"
)

type serverConfig struct {
	Name    string        `env:"CONFIG_TEST_NAME" envDefault:"familyspace" validate:"required"`
	Port    int           `env:"CONFIG_TEST_PORT" envDefault:"8080" validate:"min=1,max=65535"`
	Timeout time.Duration `env:"CONFIG_TEST_TIMEOUT" envDefault:"5s"`
	Tags    []string      `env:"CONFIG_TEST_TAGS" envSeparator:","`
}

type strictConfig struct {
	Lang string `env:"CONFIG_TEST_LANG" envDefault:"ru" validate:"oneof=ru en"`
}

type requiredConfig struct {
	Secret string `env:"CONFIG_TEST_REQUIRED,required"`
}

// These tests share process env and the package cache, so none run in parallel.

func TestLoad(t *testing.T) {
	config.ResetCache()
	t.Setenv("CONFIG_TEST_NAME", "site")
	t.Setenv("CONFIG_TEST_TIMEOUT", "250ms")

	var cfg serverConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "site", cfg.Name)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 250*time.Millisecond, cfg.Timeout)

	t.Run("cached per type", func(t *testing.T) {
		t.Setenv("CONFIG_TEST_NAME", "changed")
		var again serverConfig
		require.NoError(t, config.Load(&again))
		assert.Equal(t, "site", again.Name)
	})

	t.Run("reset cache", func(t *testing.T) {
		t.Setenv("CONFIG_TEST_NAME", "changed")
		config.ResetCache()
		var again serverConfig
		require.NoError(t, config.Load(&again))
		assert.Equal(t, "changed", again.Name)
	})
}

func TestLoadValidation(t *testing.T) {
	config.ResetCache()
	t.Setenv("CONFIG_TEST_LANG", "de")

	var cfg strictConfig
	err := config.Load(&cfg)
	require.ErrorIs(t, err, config.ErrInvalid)
	assert.Contains(t, err.Error(), "Lang")

	t.Setenv("CONFIG_TEST_LANG", "en")
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "en", cfg.Lang)
}

func TestLoadRequired(t *testing.T) {
	config.ResetCache()

	var cfg requiredConfig
	assert.ErrorIs(t, config.Load(&cfg), config.ErrParse)

	var nilCfg *requiredConfig
	assert.ErrorIs(t, config.Load(nilCfg), config.ErrNilTarget)
}

func TestLoadEnv(t *testing.T) {
	config.ResetCache()
	// Registers cleanup for variables the files set.
	t.Setenv("CONFIG_TEST_NAME", "")
	t.Setenv("CONFIG_TEST_PORT", "")
	t.Setenv("CONFIG_TEST_TAGS", "")

	require.NoError(t, config.LoadEnv("testdata/.env.base", "testdata/.env.override"))

	var cfg serverConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "from_file", cfg.Name)
	assert.Equal(t, 9191, cfg.Port)
	assert.Equal(t, []string{"a", "b", "c"}, cfg.Tags)

	assert.Error(t, config.LoadEnv("testdata/missing.env"))
	assert.NoError(t, config.LoadEnv())
}
