package middlewares

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/intl/pkg/loader"
	"github.com/dmitrymomot/intl/pkg/logger"
)

// LocaleSource reads a locale candidate from the request. The value may be
// a single tag or a full Accept-Language header.
type LocaleSource func(r *http.Request) (string, bool)

// FromCookie reads a plain cookie.
func FromCookie(name string) LocaleSource {
	return func(r *http.Request) (string, bool) {
		c, err := r.Cookie(name)
		if err != nil || c.Value == "" {
			return "", false
		}
		return c.Value, true
	}
}

// FromQuery reads a query parameter.
func FromQuery(name string) LocaleSource {
	return func(r *http.Request) (string, bool) {
		v := r.URL.Query().Get(name)
		return v, v != ""
	}
}

// FromHeader reads a request header.
func FromHeader(name string) LocaleSource {
	return func(r *http.Request) (string, bool) {
		v := r.Header.Get(name)
		return v, v != ""
	}
}

// FromAcceptLanguage reads the Accept-Language header.
func FromAcceptLanguage() LocaleSource {
	return FromHeader("Accept-Language")
}

type localeConfig struct {
	logger  *slog.Logger
	sources []LocaleSource
	wait    time.Duration
}

// LocaleOption configures the Locale middleware.
type LocaleOption func(*localeConfig)

// WithLocaleSources replaces the source chain.
// Default: "lang" query parameter, "lang" cookie, Accept-Language.
func WithLocaleSources(sources ...LocaleSource) LocaleOption {
	return func(cfg *localeConfig) {
		cfg.sources = sources
	}
}

// WithLocaleWait waits up to d for the resolved locale to load before
// calling the next handler. Zero (the default) never waits; lookups fall
// back to the default locale until the load completes.
func WithLocaleWait(d time.Duration) LocaleOption {
	return func(cfg *localeConfig) {
		if d >= 0 {
			cfg.wait = d
		}
	}
}

// WithLocaleLogger sets the logger. Default: a no-op logger.
func WithLocaleLogger(log *slog.Logger) LocaleOption {
	return func(cfg *localeConfig) {
		if log != nil {
			cfg.logger = log
		}
	}
}

// Locale returns middleware that resolves the request locale against the
// locales of messages, stores it in the request context and sets the
// Content-Language header. The first source whose value matches a supported
// locale wins; otherwise the default locale is used.
func Locale(messages *loader.Loader, opts ...LocaleOption) func(http.Handler) http.Handler {
	cfg := &localeConfig{
		logger: logger.NewNope(),
		sources: []LocaleSource{
			FromQuery("lang"),
			FromCookie("lang"),
			FromAcceptLanguage(),
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := resolveLocale(r, messages, cfg.sources)
			ctx := logger.WithLocale(r.Context(), locale)

			if cfg.wait > 0 && !messages.IsLocaleLoaded(locale, false) {
				waitCtx, cancel := context.WithTimeout(ctx, cfg.wait)
				if err := messages.WaitForLocaleLoaded(waitCtx, locale, false); err != nil {
					cfg.logger.WarnContext(ctx, "locale not ready", slog.Any("error", err))
				}
				cancel()
			}

			w.Header().Set("Content-Language", locale)
			w.Header().Add("Vary", "Accept-Language")
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolveLocale(r *http.Request, messages *loader.Loader, sources []LocaleSource) string {
	available := messages.Locales()
	for _, src := range sources {
		v, ok := src(r)
		if !ok {
			continue
		}
		if locale, ok := loader.Match(v, available); ok {
			return locale
		}
	}
	return messages.DefaultLocale()
}

// LocaleFromContext returns the locale resolved by the Locale middleware,
// or "" when the middleware did not run.
func LocaleFromContext(ctx context.Context) string {
	locale, _ := logger.LocaleFromContext(ctx)
	return locale
}
