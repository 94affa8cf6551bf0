package loader

import (
	"context"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/intl/pkg/ast"
	"github.com/dmitrymomot/intl/pkg/message"
)

// Registry tracks loaders for bulk loading and owns the fallback message
// returned when a key resolves nowhere. Loaders register themselves on
// creation; Deregister and Reset exist for embedding and tests.
type Registry struct {
	fallback *message.Message
	loaders  []*Loader
	mu       sync.RWMutex
}

// Default is the process-wide registry used by New unless WithRegistry is given.
var Default = NewRegistry()

// NewRegistry creates an empty registry whose fallback message is empty text.
func NewRegistry() *Registry {
	return &Registry{fallback: emptyMessage()}
}

func emptyMessage() *message.Message {
	return message.FromNodes("", []ast.Node{ast.Literal("")})
}

// Register adds l. Registering the same loader twice is a no-op.
func (r *Registry) Register(l *Loader) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !slices.Contains(r.loaders, l) {
		r.loaders = append(r.loaders, l)
	}
}

// Deregister removes l and reports whether it was registered.
func (r *Registry) Deregister(l *Loader) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := slices.Index(r.loaders, l)
	if i < 0 {
		return false
	}
	r.loaders = slices.Delete(r.loaders, i, i+1)
	return true
}

// Reset removes every loader and restores the empty fallback message.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loaders = nil
	r.fallback = emptyMessage()
}

// Loaders returns the registered loaders in registration order.
func (r *Registry) Loaders() []*Loader {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.loaders)
}

// FallbackMessage returns the message used when a key resolves nowhere.
func (r *Registry) FallbackMessage() *message.Message {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.fallback
}

// SetFallbackMessage replaces the fallback message. Nil restores empty text.
func (r *Registry) SetFallbackMessage(m *message.Message) {
	if m == nil {
		m = emptyMessage()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = m
}

// LoadAllMessagesInLocale loads locale in every registered loader that
// supports it, concurrently. It returns the first error.
func (r *Registry) LoadAllMessagesInLocale(ctx context.Context, locale string) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, l := range r.Loaders() {
		if !l.Supports(locale) {
			continue
		}
		g.Go(func() error {
			return l.Load(ctx, locale)
		})
	}
	return g.Wait()
}

// WaitForAllDefaultMessagesLoaded loads every registered loader's default
// locale concurrently and waits for all of them.
func (r *Registry) WaitForAllDefaultMessagesLoaded(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, l := range r.Loaders() {
		g.Go(func() error {
			return l.WaitForDefaultLocale(ctx, false)
		})
	}
	return g.Wait()
}

// LoadAllMessagesInLocale calls Default.LoadAllMessagesInLocale.
func LoadAllMessagesInLocale(ctx context.Context, locale string) error {
	return Default.LoadAllMessagesInLocale(ctx, locale)
}

// WaitForAllDefaultMessagesLoaded calls Default.WaitForAllDefaultMessagesLoaded.
func WaitForAllDefaultMessagesLoaded(ctx context.Context) error {
	return Default.WaitForAllDefaultMessagesLoaded(ctx)
}
