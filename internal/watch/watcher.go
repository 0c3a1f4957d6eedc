// Package watch re-analyzes decklists in a folder whenever they change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/ramonehamilton/commander-analyzer/internal/deck"
)

// DefaultDebounce is the quiet period after the last write to a file
// before it is processed.
const DefaultDebounce = 500 * time.Millisecond

// Handler is called with every new or changed decklist.
type Handler func(ctx context.Context, path string, list *deck.Decklist) error

// Config configures a Watcher.
type Config struct {
	Dir      string
	Debounce time.Duration
	// InitialScan processes every decklist already in Dir on start.
	InitialScan bool
	Logger      logrus.FieldLogger
}

// Watcher monitors a folder of decklists. A file is handed to the handler
// once its writes settle and only when its contents changed since the last
// successful run.
type Watcher struct {
	dir         string
	debounce    time.Duration
	initialScan bool
	handle      Handler
	log         logrus.FieldLogger

	// fingerprints of the last handled version of each file
	seen    map[string]string
	pending map[string]time.Time

	stopOnce sync.Once
	stopChan chan struct{}
}

// New creates a watcher for cfg.Dir.
func New(cfg Config, handle Handler) *Watcher {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	log := cfg.Logger
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}

	return &Watcher{
		dir:         cfg.Dir,
		debounce:    cfg.Debounce,
		initialScan: cfg.InitialScan,
		handle:      handle,
		log:         log.WithField("dir", cfg.Dir),
		seen:        make(map[string]string),
		pending:     make(map[string]time.Time),
		stopChan:    make(chan struct{}),
	}
}

// Start watches the folder until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) (err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() {
		if closeErr := watcher.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch deck directory: %w", err)
	}

	if w.initialScan {
		paths, err := deck.FindFiles(w.dir)
		if err != nil {
			return err
		}
		for _, path := range paths {
			w.process(ctx, path)
		}
	}

	w.log.Info("Watching for decklist changes")

	ticker := time.NewTicker(max(w.debounce/2, time.Millisecond))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stopChan:
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			w.observe(event, time.Now())
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.log.WithError(err).Warn("File watcher error")
		case now := <-ticker.C:
			for _, path := range w.due(now) {
				w.process(ctx, path)
			}
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopChan) })
}

func (w *Watcher) observe(event fsnotify.Event, now time.Time) {
	if !deck.IsDecklist(event.Name) {
		return
	}
	switch {
	case event.Has(fsnotify.Write), event.Has(fsnotify.Create):
		w.pending[event.Name] = now
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		delete(w.pending, event.Name)
		delete(w.seen, event.Name)
	}
}

// due returns the pending files whose last event is older than the
// debounce period and removes them from the pending set.
func (w *Watcher) due(now time.Time) []string {
	var paths []string
	for path, last := range w.pending {
		if now.Sub(last) >= w.debounce {
			paths = append(paths, path)
			delete(w.pending, path)
		}
	}
	return paths
}

func (w *Watcher) process(ctx context.Context, path string) {
	log := w.log.WithField("file", path)

	list, err := deck.LoadFile(path)
	if err != nil {
		if errors.Is(err, deck.ErrEmptyDecklist) {
			log.Debug("Skipping empty decklist")
		} else {
			log.WithError(err).Warn("Failed to read decklist")
		}
		return
	}

	fp := list.Fingerprint()
	if w.seen[path] == fp {
		log.Debug("Decklist unchanged")
		return
	}

	if err := w.handle(ctx, path, list); err != nil {
		log.WithError(err).Warn("Failed to analyze decklist")
		return
	}
	w.seen[path] = fp
}
