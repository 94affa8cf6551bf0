package logger

import (
	"context"
	"errors"
	"log/slog"
)

// ContextExtractor pulls one attribute out of a context.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// handler writes records to a local handler and forwards those at or above
// remoteLevel to an optional remote one (Sentry). Context attributes are
// added once, before either destination sees the record.
type handler struct {
	local       slog.Handler
	remote      slog.Handler
	remoteLevel slog.Level
	extractors  []ContextExtractor
}

// NewContextHandler wraps next so every record logged with a context gets
// the attributes the extractors find in it. Nil extractors are ignored.
func NewContextHandler(next slog.Handler, extractors ...ContextExtractor) slog.Handler {
	return NewHandler(next, nil, slog.LevelError, extractors...)
}

// NewHandler combines a local handler with a remote one that only receives
// records at or above remoteLevel. A nil remote disables forwarding.
// A remote failure does not stop the local write; both errors are returned.
func NewHandler(local, remote slog.Handler, remoteLevel slog.Level, extractors ...ContextExtractor) slog.Handler {
	h := &handler{local: local, remote: remote, remoteLevel: remoteLevel}
	for _, ex := range extractors {
		if ex != nil {
			h.extractors = append(h.extractors, ex)
		}
	}
	return h
}

func (h *handler) forwards(ctx context.Context, level slog.Level) bool {
	return h.remote != nil && level >= h.remoteLevel && h.remote.Enabled(ctx, level)
}

func (h *handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.local.Enabled(ctx, level) || h.forwards(ctx, level)
}

func (h *handler) Handle(ctx context.Context, rec slog.Record) error {
	for _, ex := range h.extractors {
		if attr, ok := ex(ctx); ok {
			rec.AddAttrs(attr)
		}
	}

	var errs []error
	if h.local.Enabled(ctx, rec.Level) {
		errs = append(errs, h.local.Handle(ctx, rec.Clone()))
	}
	if h.forwards(ctx, rec.Level) {
		errs = append(errs, h.remote.Handle(ctx, rec))
	}
	return errors.Join(errs...)
}

func (h *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.derive(func(next slog.Handler) slog.Handler { return next.WithAttrs(attrs) })
}

func (h *handler) WithGroup(name string) slog.Handler {
	return h.derive(func(next slog.Handler) slog.Handler { return next.WithGroup(name) })
}

func (h *handler) derive(fn func(slog.Handler) slog.Handler) slog.Handler {
	out := *h
	out.local = fn(h.local)
	if h.remote != nil {
		out.remote = fn(h.remote)
	}
	return &out
}
