package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed into the struct.
	ErrParsingConfig = errors.New("failed to parse config from environment")

	// ErrInvalidConfig is returned when a parsed struct fails its validate tags.
	ErrInvalidConfig = errors.New("invalid config")
)

var (
	cache       sync.Map // reflect.Type -> value of T
	loadEnvOnce sync.Once
	validate    = validator.New(validator.WithRequiredStructEnabled())
)

// Load fills cfg from the environment. The first call for a type parses and
// validates, later calls copy the cached value. A .env file in the working
// directory is loaded once, before the first parse; a missing file is not an error.
func Load[T any](cfg *T) error {
	loadEnvOnce.Do(func() {
		_ = godotenv.Load()
	})

	typ := reflect.TypeFor[T]()
	if cached, ok := cache.Load(typ); ok {
		*cfg = cached.(T)
		return nil
	}

	var fresh T
	if err := env.Parse(&fresh); err != nil {
		return fmt.Errorf("%w: %w", ErrParsingConfig, err)
	}

	if err := Validate(&fresh); err != nil {
		return err
	}

	actual, _ := cache.LoadOrStore(typ, fresh)
	*cfg = actual.(T)
	return nil
}

// MustLoad is like Load but panics on error. Intended for program startup.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

// Validate checks the validate struct tags of cfg.
// Non-struct values are accepted as-is.
func Validate(cfg any) error {
	rv := reflect.Indirect(reflect.ValueOf(cfg))
	if rv.Kind() != reflect.Struct {
		return nil
	}
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
