// Package watch re-runs scans when source files change on disk.
package watch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/alexisbeaulieu97/rainbow/internal/logger"
)

// Batch lists the files that changed during one debounce window.
type Batch struct {
	Changed []string
	Removed []string
}

// Config holds watcher configuration options.
type Config struct {
	Debounce time.Duration
	// Relevant filters file events by path. Nil accepts every file.
	Relevant func(path string) bool
	// SkipDir filters directories added while walking. Nil walks everything.
	SkipDir func(path string) bool
	Logger  *logger.Logger
}

// Watcher monitors directory trees and emits debounced batches of changes.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	cfg       Config
	log       *logger.Logger
	batches   chan Batch
	done      chan struct{}
	stopOnce  sync.Once
	stopErr   error
}

// New creates a watcher. Nothing is watched until Add is called.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	return &Watcher{
		fsWatcher: fsw,
		cfg:       cfg,
		log:       log,
		batches:   make(chan Batch, 1),
		done:      make(chan struct{}),
	}, nil
}

// Add watches path. Directories are watched recursively; for a file its
// parent directory is watched.
func (w *Watcher) Add(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}
	if !info.IsDir() {
		dir := filepath.Dir(path)
		if err := w.fsWatcher.Add(dir); err != nil {
			return fmt.Errorf("watching directory %s: %w", dir, err)
		}
		return nil
	}
	return w.addTree(path)
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.cfg.SkipDir != nil && w.cfg.SkipDir(path) {
			return filepath.SkipDir
		}
		if err := w.fsWatcher.Add(path); err != nil {
			return fmt.Errorf("watching directory %s: %w", path, err)
		}
		return nil
	})
}

// Start begins processing events. The returned channel receives one Batch
// per quiet period and is closed after Stop.
func (w *Watcher) Start() <-chan Batch {
	go w.loop()
	return w.batches
}

// Stop terminates the watcher and releases resources. Calling it again is a
// no-op that returns the first result.
func (w *Watcher) Stop() error {
	w.stopOnce.Do(func() {
		close(w.done)
		w.stopErr = w.fsWatcher.Close()
	})
	return w.stopErr
}

// loop processes file system events with debouncing.
func (w *Watcher) loop() {
	defer close(w.batches)

	var timer *time.Timer
	changed := make(map[string]struct{})
	removed := make(map[string]struct{})

	arm := func() {
		if timer == nil {
			timer = time.NewTimer(w.cfg.Debounce)
			return
		}
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(w.cfg.Debounce)
	}

	for {
		var fire <-chan time.Time
		if timer != nil {
			fire = timer.C
		}

		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.record(event, changed, removed) {
				continue
			}
			arm()

		case <-fire:
			timer = nil
			if len(changed) == 0 && len(removed) == 0 {
				continue
			}
			batch := Batch{Changed: sortedKeys(changed), Removed: sortedKeys(removed)}
			select {
			case w.batches <- batch:
				changed = make(map[string]struct{})
				removed = make(map[string]struct{})
			case <-w.done:
				return
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.log.Error(err, "file watcher error")

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// record folds event into the pending sets and reports whether it matters.
func (w *Watcher) record(event fsnotify.Event, changed, removed map[string]struct{}) bool {
	name := filepath.Clean(event.Name)

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(name); err == nil && info.IsDir() {
			if w.cfg.SkipDir != nil && w.cfg.SkipDir(name) {
				return false
			}
			if err := w.addTree(name); err != nil {
				w.log.Error(err, "watching new directory")
			}
			return false
		}
	}

	if w.cfg.Relevant != nil && !w.cfg.Relevant(name) {
		return false
	}

	switch {
	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		delete(changed, name)
		removed[name] = struct{}{}
	case event.Has(fsnotify.Write) || event.Has(fsnotify.Create):
		delete(removed, name)
		changed[name] = struct{}{}
	default:
		return false
	}
	return true
}

func sortedKeys(m map[string]struct{}) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
