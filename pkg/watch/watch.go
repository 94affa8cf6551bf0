package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dmitrymomot/intl/pkg/loader"
	"github.com/dmitrymomot/intl/pkg/logger"
)

// Invalidator reloads the data of one locale. *loader.Loader implements it.
type Invalidator interface {
	Invalidate(locale string)
}

// Watcher maps file system changes of compiled assets to locale
// invalidations.
type Watcher struct {
	fsw      *fsnotify.Watcher
	target   Invalidator
	logger   *slog.Logger
	files    map[string]string
	dirs     map[string]string
	pending  map[string]*time.Timer
	debounce time.Duration
	mu       sync.Mutex
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets the logger. Default: a no-op logger.
func WithLogger(log *slog.Logger) Option {
	return func(w *Watcher) {
		if log != nil {
			w.logger = log
		}
	}
}

// WithDebounce coalesces the bursts of events editors and compilers produce
// for one save. Default: 100ms.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// New creates a watcher invalidating target.
func New(target Invalidator, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}

	w := &Watcher{
		fsw:      fsw,
		target:   target,
		logger:   logger.NewNope(),
		files:    make(map[string]string),
		dirs:     make(map[string]string),
		pending:  make(map[string]*time.Timer),
		debounce: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Add watches the asset at path for locale. The parent directory is watched
// so that files replaced by rename are still seen.
func (w *Watcher) Add(path, locale string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := w.fsw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %q: %w", path, err)
	}

	w.mu.Lock()
	w.files[abs] = locale
	w.mu.Unlock()
	return nil
}

// AddDir watches every locale asset found in dir, using the same layout as
// loader.ScanFS. Namespace directories are watched with all their
// subdirectories, including ones created later.
func (w *Watcher) AddDir(dir string) error {
	files, err := loader.ScanFS(os.DirFS(dir), ".")
	if err != nil {
		return err
	}

	for locale, name := range files {
		full := filepath.Join(dir, filepath.FromSlash(name))
		info, err := os.Stat(full)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			if err := w.Add(full, locale); err != nil {
				return err
			}
			continue
		}

		abs, err := filepath.Abs(full)
		if err != nil {
			return err
		}
		if err := w.addTree(abs, locale); err != nil {
			return err
		}
	}
	return nil
}

// addTree watches root and every directory below it for locale.
func (w *Watcher) addTree(root, locale string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch %q: %w", path, err)
		}
		w.mu.Lock()
		w.dirs[path] = locale
		w.mu.Unlock()
		return nil
	})
}

// Run dispatches events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("file watch error", slog.Any("error", err))
		}
	}
}

// Close stops watching and cancels pending invalidations.
func (w *Watcher) Close() error {
	w.mu.Lock()
	for locale, timer := range w.pending {
		timer.Stop()
		delete(w.pending, locale)
	}
	w.mu.Unlock()

	if err := w.fsw.Close(); err != nil && !errors.Is(err, fsnotify.ErrClosed) {
		return err
	}
	return nil
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return
	}

	locale, ok := w.localeFor(event.Name)
	if !ok {
		return
	}

	switch {
	case event.Has(fsnotify.Create):
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name, locale); err != nil {
				w.logger.Error("file watch error", slog.String("dir", event.Name), slog.Any("error", err))
			}
		}
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		w.forgetTree(event.Name)
	}

	w.logger.Debug("asset changed",
		slog.String("file", event.Name),
		slog.String("op", event.Op.String()),
		slog.String("locale", locale),
	)
	w.schedule(locale)
}

func (w *Watcher) localeFor(name string) (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if locale, ok := w.files[name]; ok {
		return locale, true
	}
	for dir := filepath.Dir(name); ; dir = filepath.Dir(dir) {
		if locale, ok := w.dirs[dir]; ok {
			return locale, true
		}
		if parent := filepath.Dir(dir); parent == dir {
			return "", false
		}
	}
}

// forgetTree drops the directory mappings at and below a removed path.
func (w *Watcher) forgetTree(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	prefix := name + string(filepath.Separator)
	for dir := range w.dirs {
		if dir == name || strings.HasPrefix(dir, prefix) {
			delete(w.dirs, dir)
		}
	}
}

func (w *Watcher) schedule(locale string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.pending[locale]; ok {
		return
	}
	w.pending[locale] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, locale)
		w.mu.Unlock()

		w.logger.Info("reloading locale", slog.String("locale", locale))
		w.target.Invalidate(locale)
	})
}
