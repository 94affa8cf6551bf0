package logger

import (
	"context"
	"log/slog"
)

type (
	localeKey     struct{}
	messageKeyKey struct{}
)

// WithLocale stores the locale being rendered in ctx.
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeKey{}, locale)
}

// LocaleFromContext returns the locale stored by WithLocale.
func LocaleFromContext(ctx context.Context) (string, bool) {
	locale, ok := ctx.Value(localeKey{}).(string)
	return locale, ok && locale != ""
}

// WithMessageKey stores the message key being rendered in ctx.
func WithMessageKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, messageKeyKey{}, key)
}

// MessageKeyFromContext returns the key stored by WithMessageKey.
func MessageKeyFromContext(ctx context.Context) (string, bool) {
	key, ok := ctx.Value(messageKeyKey{}).(string)
	return key, ok && key != ""
}

// LocaleExtractor adds a "locale" attribute.
func LocaleExtractor() ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		locale, ok := LocaleFromContext(ctx)
		if !ok {
			return slog.Attr{}, false
		}
		return slog.String("locale", locale), true
	}
}

// MessageKeyExtractor adds a "message_key" attribute.
func MessageKeyExtractor() ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		key, ok := MessageKeyFromContext(ctx)
		if !ok {
			return slog.Attr{}, false
		}
		return slog.String("message_key", key), true
	}
}
