package loader

import "log/slog"

// Option configures a Loader.
type Option func(*Loader)

// WithName sets the name used in log records. Default: "messages".
func WithName(name string) Option {
	return func(l *Loader) {
		if name != "" {
			l.name = name
		}
	}
}

// WithLogger sets the logger. Default: a no-op logger.
func WithLogger(log *slog.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.logger = log
		}
	}
}

// WithRegistry registers the loader with r instead of Default.
// A nil registry leaves the loader unregistered.
func WithRegistry(r *Registry) Option {
	return func(l *Loader) {
		l.registry = r
	}
}

// WithSupportedLocales declares additional supported locales. A supported
// locale without a supplier fails to load with ErrLoaderMisconfigured.
func WithSupportedLocales(locales ...string) Option {
	return func(l *Loader) {
		for _, locale := range locales {
			l.supported[locale] = struct{}{}
		}
	}
}

// WithDebugValues attaches diagnostics used when a message is missing:
// keys maps message keys to readable names (for hashed keys), files maps
// locales to the asset file they were compiled into.
func WithDebugValues(keys, files map[string]string) Option {
	return func(l *Loader) {
		l.debugKeys = keys
		l.debugFiles = files
	}
}
