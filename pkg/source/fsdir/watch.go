package fsdir

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-blockgen/internal/logging"
	"github.com/goliatone/go-blockgen/pkg/interfaces"
)

// Op is the kind of change observed on a definition file.
type Op string

const (
	OpCreate Op = "create"
	OpWrite  Op = "write"
	OpRemove Op = "remove"
)

// Event is a change to a definition file.
type Event struct {
	Path string
	Op   Op
}

// WatchOption customises a Watcher.
type WatchOption func(*Watcher)

// WithDebounce coalesces bursts of events into one callback carrying the
// last event. Zero disables debouncing.
func WithDebounce(interval time.Duration) WatchOption {
	return func(w *Watcher) {
		w.debounce = interval
	}
}

// WithWatchLoggerProvider sets the provider for the watcher logger.
func WithWatchLoggerProvider(provider interfaces.LoggerProvider) WatchOption {
	return func(w *Watcher) {
		w.logger = logging.SourceLogger(provider)
	}
}

// Watcher reports changes to definition files below a directory.
type Watcher struct {
	root     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	logger   interfaces.Logger
}

// NewWatcher starts watching dir and every directory below it. Call Run to
// receive events and Close when done.
func NewWatcher(dir string, options ...WatchOption) (*Watcher, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("fsdir: watch %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("fsdir: watch %s: not a directory", dir)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsdir: create watcher: %w", err)
	}
	w := &Watcher{root: dir, watcher: fw}
	for _, opt := range options {
		if opt != nil {
			opt(w)
		}
	}
	w.logger = logging.Ensure(w.logger)

	err = filepath.WalkDir(dir, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil || !entry.IsDir() {
			return nil
		}
		return fw.Add(path)
	})
	if err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("fsdir: watch %s: %w", dir, err)
	}
	return w, nil
}

// Run delivers events to fn until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context, fn func(Event)) error {
	if fn == nil {
		return fmt.Errorf("fsdir: watch callback is required")
	}
	deliver := fn
	if w.debounce > 0 {
		d := &debouncer{interval: w.debounce, fire: fn}
		defer d.stop()
		deliver = d.trigger
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = w.watcher.Add(ev.Name)
					continue
				}
			}
			if !IsDefinitionFile(ev.Name) {
				continue
			}
			if op, ok := translate(ev.Op); ok {
				w.logger.Debug("source.fsdir.changed", "path", ev.Name, "op", op)
				deliver(Event{Path: ev.Name, Op: op})
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("source.fsdir.watch_error", "dir", w.root, "error", err)
		}
	}
}

// Close stops the underlying watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// Watch watches dir and calls fn for every definition change until ctx is
// done.
func Watch(ctx context.Context, dir string, fn func(Event), options ...WatchOption) error {
	w, err := NewWatcher(dir, options...)
	if err != nil {
		return err
	}
	defer w.Close()
	return w.Run(ctx, fn)
}

func translate(op fsnotify.Op) (Op, bool) {
	switch {
	case op&fsnotify.Create == fsnotify.Create:
		return OpCreate, true
	case op&(fsnotify.Remove|fsnotify.Rename) != 0:
		return OpRemove, true
	case op&fsnotify.Write == fsnotify.Write:
		return OpWrite, true
	default:
		return "", false
	}
}

type debouncer struct {
	mu       sync.Mutex
	timer    *time.Timer
	last     Event
	interval time.Duration
	fire     func(Event)
}

func (d *debouncer) trigger(ev Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.last = ev
	if d.timer == nil {
		d.timer = time.AfterFunc(d.interval, d.flush)
		return
	}
	d.timer.Reset(d.interval)
}

func (d *debouncer) flush() {
	d.mu.Lock()
	ev := d.last
	d.mu.Unlock()
	d.fire(ev)
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
}
