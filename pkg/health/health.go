package health

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/intl/pkg/loader"
	"github.com/dmitrymomot/intl/pkg/logger"
)

const (
	defaultTimeout = 5 * time.Second

	// StatusReady means every loader has its default locale.
	StatusReady = "ready"
	// StatusNotReady means at least one default locale is missing.
	StatusNotReady = "not_ready"
)

// Report is the readiness of every loader in a registry.
type Report struct {
	Loaders map[string]LoaderStatus `json:"loaders,omitempty"`
	Status  string                  `json:"status"`
}

// LoaderStatus describes one loader. Errors holds the last load error per
// locale, including locales that recovered on previous data.
type LoaderStatus struct {
	Errors        map[string]string `json:"errors,omitempty"`
	DefaultLocale string            `json:"default_locale"`
	Loaded        []string          `json:"loaded"`
	Ready         bool              `json:"ready"`
}

type config struct {
	logger  *slog.Logger
	timeout time.Duration
}

// Option configures readiness checks.
type Option func(*config)

// WithTimeout bounds how long a check waits for default locales.
// Default: 5s.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger for failed checks.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		timeout: defaultTimeout,
		logger:  logger.NewNope(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Check waits for the default locale of every loader in reg, starting loads
// as needed, and reports per-loader state. It returns ErrNotReady when any
// default locale is unavailable once the timeout expires.
func Check(ctx context.Context, reg *loader.Registry, opts ...Option) (*Report, error) {
	return check(ctx, reg, newConfig(opts...))
}

func check(ctx context.Context, reg *loader.Registry, cfg *config) (*Report, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	var (
		mu     sync.Mutex
		report = &Report{Status: StatusReady, Loaders: make(map[string]LoaderStatus)}
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, l := range reg.Loaders() {
		g.Go(func() error {
			err := l.WaitForDefaultLocale(gctx, false)
			status := loaderStatus(l)

			mu.Lock()
			report.Loaders[l.Name()] = status
			if !status.Ready {
				report.Status = StatusNotReady
			}
			mu.Unlock()

			if err != nil {
				cfg.logger.WarnContext(ctx, "messages not ready",
					slog.String("loader", l.Name()),
					slog.String("locale", l.DefaultLocale()),
					slog.Any("error", err),
				)
			}
			return nil
		})
	}
	_ = g.Wait()

	if report.Status != StatusReady {
		return report, ErrNotReady
	}
	return report, nil
}

func loaderStatus(l *loader.Loader) LoaderStatus {
	status := LoaderStatus{
		DefaultLocale: l.DefaultLocale(),
		Loaded:        []string{},
		Ready:         l.IsLocaleLoaded(l.DefaultLocale(), false),
	}
	for _, locale := range l.Locales() {
		if l.IsLocaleLoaded(locale, false) {
			status.Loaded = append(status.Loaded, locale)
		}
		if err := l.LastError(locale); err != nil {
			if status.Errors == nil {
				status.Errors = make(map[string]string)
			}
			status.Errors[locale] = err.Error()
		}
	}
	return status
}

// CheckFunc adapts a registry check to the func(ctx) error shape used by
// probe libraries.
func CheckFunc(reg *loader.Registry, opts ...Option) func(ctx context.Context) error {
	cfg := newConfig(opts...)
	return func(ctx context.Context) error {
		report, err := check(ctx, reg, cfg)
		if err != nil {
			for name, st := range report.Loaders {
				if !st.Ready {
					return fmt.Errorf("%w: loader %q locale %q", err, name, st.DefaultLocale)
				}
			}
		}
		return err
	}
}
