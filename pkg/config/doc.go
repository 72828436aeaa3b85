// Package config loads typed configuration from environment variables.
//
// It combines github.com/joho/godotenv for .env files,
// github.com/caarlos0/env/v11 for struct tags and
// github.com/go-playground/validator/v10 for `validate` rules. Each type is
// parsed once per process:
//
//	var cfg site.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// ResetCache clears the cache between tests.
package config
