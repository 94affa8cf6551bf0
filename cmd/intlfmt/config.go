package main

import (
	"fmt"
	"slices"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/intl/pkg/logger"
)

// Config is read from the environment first; flags override it.
type Config struct {
	Dir           string `env:"DIR" envDefault:"locales"`
	Locale        string `env:"LOCALE"`
	DefaultLocale string `env:"DEFAULT_LOCALE" envDefault:"en"`
	Output        string `env:"OUTPUT" envDefault:"text"`
	Log           logger.Config
}

const envPrefix = "INTLFMT_"

var outputs = []string{"text", "markdown", "html", "ast", "source"}

func loadConfig(environ map[string]string) (Config, error) {
	opts := env.Options{Prefix: envPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}

func validOutput(output string) bool {
	return slices.Contains(outputs, output)
}
