package loader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/dmitrymomot/intl/pkg/logger"
	"github.com/dmitrymomot/intl/pkg/message"
)

// Dictionary maps message keys to compiled messages in any form accepted by
// message.New.
type Dictionary map[string]any

// Supplier fetches the dictionary of one locale.
type Supplier func(ctx context.Context) (Dictionary, error)

// Loader lazily loads per-locale dictionaries and caches parsed messages.
//
// Each locale moves from unrequested to loading to loaded. Concurrent
// requests for a loading locale share the in-flight load, so a supplier runs
// once per locale per load cycle. A failed load leaves the locale unloaded
// (or on its previous data) and the next request starts a new cycle.
//
// All methods are safe for concurrent use.
type Loader struct {
	importMap     map[string]Supplier
	supported     map[string]struct{}
	messages      map[string]Dictionary
	state         map[string]*localeState
	parseCache    map[string]map[string]*message.Message
	subscribers   map[uint64]func(locale string)
	debugKeys     map[string]string
	debugFiles    map[string]string
	fallback      *Loader
	registry      *Registry
	logger        *slog.Logger
	name          string
	defaultLocale string
	nextSub       uint64
	mu            sync.Mutex
}

type localeState struct {
	op          *loadOp
	lastErr     error
	generation  uint64
	initialized bool
}

// loadOp is one load cycle of one locale. err is written before done is closed.
type loadOp struct {
	done       chan struct{}
	err        error
	generation uint64
}

// linkMu serializes FallbackWith across all loaders so that two opposing
// links cannot both pass the cycle check.
var linkMu sync.Mutex

// New creates a loader for importMap and registers it with Default (see
// WithRegistry). Every locale in importMap and the default locale are
// supported. Nothing is loaded until requested.
func New(importMap map[string]Supplier, defaultLocale string, opts ...Option) *Loader {
	l := &Loader{
		importMap:     make(map[string]Supplier, len(importMap)),
		supported:     make(map[string]struct{}, len(importMap)+1),
		messages:      make(map[string]Dictionary),
		state:         make(map[string]*localeState),
		parseCache:    make(map[string]map[string]*message.Message),
		subscribers:   make(map[uint64]func(string)),
		registry:      Default,
		logger:        logger.NewNope(),
		name:          "messages",
		defaultLocale: defaultLocale,
	}
	for locale, supplier := range importMap {
		l.importMap[locale] = supplier
		l.supported[locale] = struct{}{}
	}
	l.supported[defaultLocale] = struct{}{}

	for _, opt := range opts {
		opt(l)
	}

	if l.registry != nil {
		l.registry.Register(l)
	}
	return l
}

// Name returns the loader name.
func (l *Loader) Name() string {
	return l.name
}

// DefaultLocale returns the locale used when a message is missing from the
// requested one.
func (l *Loader) DefaultLocale() string {
	return l.defaultLocale
}

// Locales returns the supported locales, sorted.
func (l *Loader) Locales() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	locales := make([]string, 0, len(l.supported))
	for locale := range l.supported {
		locales = append(locales, locale)
	}
	slices.Sort(locales)
	return locales
}

// Supports reports whether locale is supported.
func (l *Loader) Supports(locale string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.supported[locale]
	return ok
}

// Get returns the message for key in locale without blocking.
//
// When locale is not loaded yet its load is started in the background and
// the lookup continues with the default locale, then with the fallback
// loader. When nothing has the key, Get logs a warning and returns the
// registry's fallback message. An empty locale means the default locale.
func (l *Loader) Get(key, locale string) *message.Message {
	if locale == "" {
		locale = l.defaultLocale
	}
	if m := l.lookup(key, locale); m != nil {
		return m
	}

	attrs := []any{
		slog.String("loader", l.name),
		slog.String("key", key),
		slog.String("locale", locale),
	}
	if name, ok := l.debugKeys[key]; ok {
		attrs = append(attrs, slog.String("debug_key", name))
	}
	if file, ok := l.debugFiles[locale]; ok {
		attrs = append(attrs, slog.String("file", file))
	}
	l.logger.Warn("message not found", attrs...)

	return l.fallbackMessage()
}

// lookup resolves key in locale, then in the default locale, then through
// the fallback chain. It returns nil when nothing resolves.
func (l *Loader) lookup(key, locale string) *message.Message {
	l.mu.Lock()
	m := l.resolveLocked(key, locale)
	if m == nil && locale != l.defaultLocale {
		m = l.resolveLocked(key, l.defaultLocale)
	}
	next := l.fallback
	l.mu.Unlock()

	if m == nil && next != nil {
		m = next.lookup(key, locale)
	}
	return m
}

func (l *Loader) resolveLocked(key, locale string) *message.Message {
	if m, ok := l.parseCache[locale][key]; ok {
		return m
	}

	if _, ok := l.supported[locale]; !ok {
		return nil
	}
	st := l.stateLocked(locale)
	if !st.initialized {
		l.startLoadLocked(locale)
		return nil
	}

	raw, ok := l.messages[locale][key]
	if !ok {
		return nil
	}
	m, err := message.New(locale, raw)
	if err != nil {
		l.logger.Error("invalid message",
			slog.String("loader", l.name),
			slog.String("key", key),
			slog.String("locale", locale),
			slog.Any("error", err),
		)
		return nil
	}

	cache, ok := l.parseCache[locale]
	if !ok {
		cache = make(map[string]*message.Message)
		l.parseCache[locale] = cache
	}
	cache[key] = m
	return m
}

func (l *Loader) stateLocked(locale string) *localeState {
	st, ok := l.state[locale]
	if !ok {
		st = &localeState{}
		l.state[locale] = st
	}
	return st
}

// startLoadLocked returns the in-flight load of locale, starting one when
// none is running.
func (l *Loader) startLoadLocked(locale string) *loadOp {
	st := l.stateLocked(locale)
	if st.op != nil {
		return st.op
	}

	op := &loadOp{done: make(chan struct{}), generation: st.generation}

	supplier, ok := l.importMap[locale]
	if !ok {
		op.err = fmt.Errorf("%w: %q", ErrLoaderMisconfigured, locale)
		close(op.done)
		// The import map never changes, so one report per locale is enough.
		reported := errors.Is(st.lastErr, ErrLoaderMisconfigured)
		st.lastErr = op.err
		if reported {
			return op
		}
		l.logger.Error("locale load failed",
			slog.String("loader", l.name),
			slog.String("locale", locale),
			slog.Any("error", op.err),
		)
		return op
	}

	st.op = op
	go l.run(locale, supplier, op)
	return op
}

// run executes one load cycle. Loads are never cancelled; completions of a
// superseded cycle are discarded.
func (l *Loader) run(locale string, supplier Supplier, op *loadOp) {
	dict, err := callSupplier(supplier)

	l.mu.Lock()
	st := l.stateLocked(locale)
	if st.op == op {
		st.op = nil
	}
	stale := op.generation != st.generation

	switch {
	case stale:
	case err != nil:
		op.err = fmt.Errorf("load %s %q: %w", l.name, locale, err)
		st.lastErr = op.err
	default:
		l.messages[locale] = dict
		delete(l.parseCache, locale)
		st.initialized = true
		st.lastErr = nil
	}
	l.mu.Unlock()
	close(op.done)

	switch {
	case stale:
		l.logger.Debug("discarded stale locale load", slog.String("loader", l.name), slog.String("locale", locale))
	case op.err != nil:
		l.logger.Error("locale load failed",
			slog.String("loader", l.name),
			slog.String("locale", locale),
			slog.Any("error", op.err),
		)
	default:
		l.logger.Debug("locale loaded",
			slog.String("loader", l.name),
			slog.String("locale", locale),
			slog.Int("messages", len(dict)),
		)
		l.notify(locale)
	}
}

func callSupplier(supplier Supplier) (dict Dictionary, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrSupplierPanic, r)
		}
	}()
	dict, err = supplier(context.Background())
	if err == nil && dict == nil {
		dict = Dictionary{}
	}
	return dict, err
}

// Load loads locale and waits for it. It returns immediately when the
// locale is already loaded.
func (l *Loader) Load(ctx context.Context, locale string) error {
	return l.WaitForLocaleLoaded(ctx, locale, false)
}

// IsLocaleLoaded reports whether locale data is installed. With
// requireCurrent it also requires that no reload is in flight.
func (l *Loader) IsLocaleLoaded(locale string, requireCurrent bool) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadedLocked(locale, requireCurrent)
}

func (l *Loader) loadedLocked(locale string, requireCurrent bool) bool {
	st, ok := l.state[locale]
	if !ok || !st.initialized {
		return false
	}
	return !requireCurrent || st.op == nil
}

// WaitForLocaleLoaded starts loading locale if needed and waits until it is
// loaded (and, with requireCurrent, until no reload is in flight). It
// returns the load error of the cycle it waited for, or ctx.Err(). Giving up
// on ctx does not cancel the load.
func (l *Loader) WaitForLocaleLoaded(ctx context.Context, locale string, requireCurrent bool) error {
	for {
		l.mu.Lock()
		if l.loadedLocked(locale, requireCurrent) {
			l.mu.Unlock()
			return nil
		}
		if _, ok := l.supported[locale]; !ok {
			l.mu.Unlock()
			return fmt.Errorf("%w: %q", ErrUnsupportedLocale, locale)
		}
		op := l.startLoadLocked(locale)
		l.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-op.done:
		}
		if op.err != nil {
			return op.err
		}
	}
}

// WaitForDefaultLocale waits for the default locale.
func (l *Loader) WaitForDefaultLocale(ctx context.Context, requireCurrent bool) error {
	return l.WaitForLocaleLoaded(ctx, l.defaultLocale, requireCurrent)
}

// LastError returns the error of the last failed load of locale, or nil
// once a load succeeds.
func (l *Loader) LastError(locale string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if st, ok := l.state[locale]; ok {
		return st.lastErr
	}
	return nil
}

// FallbackWith makes other the loader consulted when a message is missing
// from l. It fails without changing anything when the link would make the
// chain cyclic. A nil other removes the link.
func (l *Loader) FallbackWith(other *Loader) error {
	linkMu.Lock()
	defer linkMu.Unlock()

	for p := other; p != nil; p = p.next() {
		if p == l {
			return fmt.Errorf("%w: %s -> %s", ErrFallbackCycle, l.name, other.name)
		}
	}

	l.mu.Lock()
	l.fallback = other
	l.mu.Unlock()
	return nil
}

func (l *Loader) next() *Loader {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.fallback
}

// Invalidate drops every parsed message and reloads locale when it was
// loaded or loading. Loads already in flight for locale are superseded.
// Subscribers are notified.
func (l *Loader) Invalidate(locale string) {
	l.mu.Lock()
	clear(l.parseCache)

	if st, ok := l.state[locale]; ok && (st.initialized || st.op != nil) {
		st.generation++
		st.op = nil
		l.startLoadLocked(locale)
	}
	l.mu.Unlock()

	l.logger.Info("locale invalidated", slog.String("loader", l.name), slog.String("locale", locale))
	l.notify(locale)
}

// OnChange registers fn to be called with the locale after every successful
// load and every invalidation. The returned function unsubscribes.
func (l *Loader) OnChange(fn func(locale string)) (unsubscribe func()) {
	l.mu.Lock()
	id := l.nextSub
	l.nextSub++
	l.subscribers[id] = fn
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		delete(l.subscribers, id)
		l.mu.Unlock()
	}
}

func (l *Loader) notify(locale string) {
	l.mu.Lock()
	subs := make([]func(string), 0, len(l.subscribers))
	for _, fn := range l.subscribers {
		subs = append(subs, fn)
	}
	l.mu.Unlock()

	for _, fn := range subs {
		fn(locale)
	}
}

func (l *Loader) fallbackMessage() *message.Message {
	if l.registry != nil {
		return l.registry.FallbackMessage()
	}
	return Default.FallbackMessage()
}
