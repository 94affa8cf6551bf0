package intl

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/intl/pkg/ast"
	"github.com/dmitrymomot/intl/pkg/format"
	"github.com/dmitrymomot/intl/pkg/loader"
	"github.com/dmitrymomot/intl/pkg/logger"
	"github.com/dmitrymomot/intl/pkg/message"
	"github.com/dmitrymomot/intl/pkg/render"
)

// Type aliases - public API
type (
	// Node is one element of a compiled message.
	Node = ast.Node

	// Message is a compiled message bound to its locale.
	Message = message.Message

	// Loader lazily loads per-locale dictionaries.
	Loader = loader.Loader

	// Supplier produces the dictionary of one locale.
	Supplier = loader.Supplier

	// Dictionary maps message keys to compiled messages.
	Dictionary = loader.Dictionary

	// Values holds the arguments, selectors and hooks of one format call.
	Values = format.Values

	// Config holds named number, date and time styles.
	Config = format.Config

	// Builder receives the output of a bound message.
	Builder[R any] = format.Builder[R]

	// BuilderFactory creates a builder per nesting scope.
	BuilderFactory[R any] = format.BuilderFactory[R]

	// Hook renders a non-rich-text tag from its bound children.
	Hook[R any] = format.Hook[R]
)

// ErrNoLoader is returned by key-based calls on an Intl without a loader.
var ErrNoLoader = errors.New("intl: no loader configured")

// Intl formats messages with shared formatters, styles and logging.
type Intl struct {
	formatters *format.Formatters
	loader     *loader.Loader
	logger     *slog.Logger
	cfg        format.Config
}

// Option configures an Intl.
type Option func(*Intl)

// WithLoader sets the loader used by key-based calls.
func WithLoader(l *loader.Loader) Option {
	return func(i *Intl) {
		i.loader = l
	}
}

// WithConfig replaces the named styles. Default: format.DefaultConfig().
func WithConfig(cfg format.Config) Option {
	return func(i *Intl) {
		i.cfg = cfg
	}
}

// WithFormatters sets the formatter cache. Default: the shared cache.
func WithFormatters(f *format.Formatters) Option {
	return func(i *Intl) {
		if f != nil {
			i.formatters = f
		}
	}
}

// WithLogger sets the logger for binding failures.
// If nil, logging is disabled.
func WithLogger(l *slog.Logger) Option {
	return func(i *Intl) {
		if l != nil {
			i.logger = l
		}
	}
}

// New creates an Intl.
func New(opts ...Option) *Intl {
	i := &Intl{
		formatters: format.DefaultFormatters(),
		logger:     logger.NewNope(),
		cfg:        format.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Loader returns the configured loader, or nil.
func (i *Intl) Loader() *loader.Loader {
	return i.loader
}

// Message returns the message for key in locale. It never blocks: while the
// locale loads it falls back along the loader chain.
func (i *Intl) Message(key, locale string) (*message.Message, error) {
	if i.loader == nil {
		return nil, ErrNoLoader
	}
	return i.loader.Get(key, locale), nil
}

// Ready blocks until locale has been loaded at least once.
func (i *Intl) Ready(ctx context.Context, locale string) error {
	if i.loader == nil {
		return ErrNoLoader
	}
	return i.loader.WaitForLocaleLoaded(ctx, locale, false)
}

// Negotiate picks the best loader locale for an Accept-Language header.
func (i *Intl) Negotiate(acceptLanguage string) string {
	if i.loader == nil {
		return ""
	}
	return i.loader.Negotiate(acceptLanguage)
}

// Format renders m as plain text.
func (i *Intl) Format(ctx context.Context, m *message.Message, values Values) (string, error) {
	return joined(Bind(ctx, i, format.NewStringBuilder, m, values))
}

// FormatMarkdown renders m as markdown with values escaped.
func (i *Intl) FormatMarkdown(ctx context.Context, m *message.Message, values Values) (string, error) {
	return joined(Bind(ctx, i, format.NewMarkdownBuilder, m, values))
}

// FormatHTML renders m as sanitized HTML.
func (i *Intl) FormatHTML(ctx context.Context, m *message.Message, values Values) (string, error) {
	md, err := i.FormatMarkdown(ctx, m, values)
	if err != nil {
		return "", err
	}
	return render.InlineHTML(md)
}

// FormatAST binds values and returns the resulting tree with rich-text tags
// kept, for renderers that walk nodes themselves.
func (i *Intl) FormatAST(ctx context.Context, m *message.Message, values Values) ([]ast.Node, error) {
	return Bind(ctx, i, format.NewASTBuilder, m, values)
}

// Translate looks up key and renders it as plain text.
func (i *Intl) Translate(ctx context.Context, key, locale string, values Values) (string, error) {
	m, err := i.Message(key, locale)
	if err != nil {
		return "", err
	}
	return i.Format(logger.WithMessageKey(ctx, key), m, values)
}

// Bind renders m with any builder. Failures are logged with the locale and
// message key found in ctx.
func Bind[R any](ctx context.Context, i *Intl, newBuilder format.BuilderFactory[R], m *message.Message, values Values) ([]R, error) {
	out, err := format.Bind(newBuilder, m.AST(), m.Locale(), i.formatters, i.cfg, values)
	if err != nil {
		i.logger.ErrorContext(logger.WithLocale(ctx, m.Locale()), "message binding failed", slog.Any("error", err))
		return nil, err
	}
	return out, nil
}

func joined(parts []string, err error) (string, error) {
	if err != nil {
		return "", err
	}
	return strings.Join(parts, ""), nil
}
