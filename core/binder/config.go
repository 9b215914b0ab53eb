package binder

import (
	"log/slog"

	"github.com/dmitrymomot/smartcommand/core/config"
	"github.com/dmitrymomot/smartcommand/core/logger"
)

const serviceName = "smartcommand"

// Config holds the defaults applied to bindings that do not choose a strategy.
type Config struct {
	DefaultMaxAttempts    int        `env:"COMMAND_DEFAULT_MAX_ATTEMPTS" envDefault:"1" validate:"gte=0"`
	DefaultMaxConcurrency int        `env:"COMMAND_DEFAULT_MAX_CONCURRENCY" envDefault:"1" validate:"gte=1"`
	AnalyticsLevel        slog.Level `env:"COMMAND_ANALYTICS_LEVEL" envDefault:"INFO"`
	LogLevel              slog.Level `env:"COMMAND_LOG_LEVEL" envDefault:"INFO"`
	LogFormat             string     `env:"COMMAND_LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`
	LogProfile            string     `env:"COMMAND_ENV" validate:"omitempty,oneof=development production"`
	MetricsNamespace      string     `env:"COMMAND_METRICS_NAMESPACE" envDefault:"smartcommand" validate:"required"`
}

// DefaultConfig returns the values used when no environment is set.
func DefaultConfig() Config {
	return Config{
		DefaultMaxAttempts:    1,
		DefaultMaxConcurrency: 1,
		AnalyticsLevel:        slog.LevelInfo,
		LogLevel:              slog.LevelInfo,
		LogFormat:             "text",
		MetricsNamespace:      "smartcommand",
	}
}

// ConfigFromEnv loads Config from COMMAND_* environment variables and an
// optional .env file.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// NewLogger builds the logger used by strategies when the factory has none.
// A LogProfile selects the matching logger preset and takes precedence over
// LogLevel and LogFormat.
func (c Config) NewLogger(opts ...logger.Option) *slog.Logger {
	base := []logger.Option{logger.WithAttr(logger.Component(serviceName))}
	switch c.LogProfile {
	case "development":
		base = append(base, logger.WithDevelopment(serviceName))
	case "production":
		base = append(base, logger.WithProduction(serviceName))
	default:
		base = append(base, logger.WithLevel(c.LogLevel))
		if c.LogFormat == "json" {
			base = append(base, logger.WithJSONFormatter())
		} else {
			base = append(base, logger.WithTextFormatter())
		}
	}
	return logger.New(append(base, opts...)...)
}
