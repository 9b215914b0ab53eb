// Package config loads typed configuration from environment variables.
//
// Load parses a struct with caarlos0/env, checks its `validate` tags with
// go-playground/validator and caches the result per type. A .env file in the
// working directory is read once, before the first parse.
//
//	import "github.com/dmitrymomot/smartcommand/core/config"
//
//	type Limits struct {
//		MaxAttempts    int `env:"COMMAND_DEFAULT_MAX_ATTEMPTS" envDefault:"1" validate:"gte=0"`
//		MaxConcurrency int `env:"COMMAND_DEFAULT_MAX_CONCURRENCY" envDefault:"1" validate:"gte=1"`
//	}
//
//	var limits Limits
//	if err := config.Load(&limits); err != nil {
//		return err
//	}
//
// MustLoad panics instead of returning an error and is meant for program
// startup.
//
// # Caching
//
// The first successful Load of a type wins. Later calls copy the cached value
// even if the environment has changed since; a struct that fails to parse or
// validate is not cached.
//
// # Errors
//
// Parse failures wrap ErrParsingConfig and validation failures wrap
// ErrInvalidConfig:
//
//	if errors.Is(err, config.ErrInvalidConfig) {
//		// a validate tag rejected a value
//	}
package config
