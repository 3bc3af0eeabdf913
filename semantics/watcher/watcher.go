// Package watcher keeps a vocabulary synchronized with an ontology
// directory on disk. File changes trigger a debounced full rebuild; the
// resulting vocabulary snapshots are delivered on a channel.
package watcher

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/fiware-community/figo/semantics/vocabulary"
)

// Config configures the ontology watcher.
type Config struct {
	// Dir is the ontology directory to watch.
	Dir string

	// Pattern is the doublestar glob selecting ontology files, defaulted
	// by the configurator when empty.
	Pattern string

	// DebounceDelay is how long to wait for more changes before
	// rebuilding.
	DebounceDelay time.Duration

	// Configurator performs the rebuilds. A nil value gets a default one.
	Configurator *vocabulary.Configurator

	// Logger for logging events.
	Logger *slog.Logger
}

// Watcher rebuilds the vocabulary whenever ontology files change. The
// directory is the source of truth: files removed from it drop out of the
// vocabulary on the next rebuild, while user settings for surviving
// elements carry forward.
type Watcher struct {
	config  Config
	watcher *fsnotify.Watcher
	logger  *slog.Logger

	// Debouncing: collect change notice before rebuilding.
	pendingMu sync.Mutex
	pending   bool

	currentMu sync.RWMutex
	current   *vocabulary.Vocabulary

	updates chan *vocabulary.Vocabulary
}

// New creates a watcher over the configured ontology directory.
func New(config Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.DebounceDelay == 0 {
		config.DebounceDelay = 500 * time.Millisecond
	}
	if config.Configurator == nil {
		config.Configurator = vocabulary.NewConfigurator()
	}

	return &Watcher{
		config:  config,
		watcher: fsw,
		logger:  config.Logger,
		current: vocabulary.New(),
		updates: make(chan *vocabulary.Vocabulary, 4),
	}, nil
}

// Updates returns the channel of rebuilt vocabulary snapshots.
func (w *Watcher) Updates() <-chan *vocabulary.Vocabulary {
	return w.updates
}

// Current returns the latest successfully built vocabulary.
func (w *Watcher) Current() *vocabulary.Vocabulary {
	w.currentMu.RLock()
	defer w.currentMu.RUnlock()
	return w.current
}

// Start performs an initial build, then watches for changes until the
// context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.watcher.Add(w.config.Dir); err != nil {
		return err
	}

	if err := w.rebuild(); err != nil {
		// A broken initial state is worth surfacing; later rebuild
		// failures keep the last good vocabulary instead.
		return err
	}

	go w.processEvents(ctx)

	w.logger.Info("ontology watcher started",
		"dir", w.config.Dir,
		"debounce", w.config.DebounceDelay)

	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

// processEvents handles fsnotify events with debouncing.
func (w *Watcher) processEvents(ctx context.Context) {
	ticker := time.NewTicker(w.config.DebounceDelay)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watcher error", "error", err)

		case <-ticker.C:
			w.flushPending()
		}
	}
}

// handleFSEvent marks a rebuild pending for relevant file changes.
func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	if !isOntologyFile(event.Name) {
		return
	}
	w.pendingMu.Lock()
	w.pending = true
	w.pendingMu.Unlock()

	w.logger.Debug("ontology change detected",
		"path", event.Name,
		"op", event.Op.String())
}

// flushPending rebuilds once for all changes accumulated in the debounce
// window.
func (w *Watcher) flushPending() {
	w.pendingMu.Lock()
	pending := w.pending
	w.pending = false
	w.pendingMu.Unlock()

	if !pending {
		return
	}

	if err := w.rebuild(); err != nil {
		w.logger.Error("vocabulary rebuild failed, keeping previous state", "error", err)
	}
}

// rebuild parses the whole directory into a fresh vocabulary, carrying the
// current user settings forward, and publishes the result.
func (w *Watcher) rebuild() error {
	// Seed only the settings: replaying old sources would resurrect files
	// that were deleted from the directory.
	seed := vocabulary.New()
	for iri, s := range w.Current().Settings {
		seed.Settings[iri] = s
	}

	next, err := w.config.Configurator.AddOntologiesFromDir(seed, w.config.Dir, w.config.Pattern)
	if err != nil {
		return err
	}

	w.currentMu.Lock()
	w.current = next
	w.currentMu.Unlock()

	select {
	case w.updates <- next:
	default:
		w.logger.Warn("vocabulary update dropped, consumer too slow")
	}

	w.logger.Debug("vocabulary synchronized",
		"sources", len(next.Sources),
		"elements", len(next.ElementIRIs()))
	return nil
}

// isOntologyFile reports whether a path looks like an ontology document.
func isOntologyFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttl", ".nt":
		return true
	}
	return false
}
