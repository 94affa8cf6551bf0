// Package logger builds slog loggers for message loading and rendering.
//
// Records logged with a context pick up attributes from ContextExtractor
// functions, such as the locale and message key being rendered:
//
//	log := logger.New(logger.Config{Level: "debug"},
//		logger.LocaleExtractor(),
//		logger.MessageKeyExtractor(),
//	)
//	ctx := logger.WithLocale(ctx, "de")
//	log.WarnContext(ctx, "message missing")
//	// {"level":"WARN","msg":"message missing","locale":"de"}
//
// # Sentry
//
// When Config.SentryDSN is set, errors are reported as Sentry issues and
// warnings are stored as Sentry logs. An empty DSN or a failed init keeps
// logging local, so the same code path works in development.
package logger
