package logger

import (
	"io"
	"log/slog"
	"strings"
)

// Config controls logger construction. Fields carry env tags for
// caarlos0/env so the config can be embedded in an application config.
type Config struct {
	// Output defaults to os.Stderr so formatted messages on stdout stay clean.
	Output      io.Writer
	Level       string `env:"LOG_LEVEL" envDefault:"info"`
	Format      string `env:"LOG_FORMAT" envDefault:"json"`
	SentryDSN   string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	// SentryErrorsOnly limits Sentry logs to errors. Warnings are sent otherwise.
	SentryErrorsOnly bool `env:"SENTRY_ERRORS_ONLY"`
}

// ParseLevel maps "debug", "info", "warn" and "error" (or any value
// accepted by slog.Level) to a level. Unknown values map to info.
func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}
