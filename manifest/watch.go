package manifest

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/pointillism"
)

// DefaultDebounce is how long the watcher waits for a burst of edits to
// settle before signalling.
const DefaultDebounce = 250 * time.Millisecond

// Watcher signals when the manifests of a directory change.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	dir       string
	debounce  time.Duration
	onChange  chan struct{}
	done      chan struct{}
}

// NewWatcher creates a watcher for dir. debounce <= 0 uses DefaultDebounce.
func NewWatcher(dir string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("manifest: creating fsnotify watcher: %w", err)
	}
	return &Watcher{
		fsWatcher: fsw,
		dir:       dir,
		debounce:  debounce,
		onChange:  make(chan struct{}, 1),
		done:      make(chan struct{}),
	}, nil
}

// Start begins watching. The returned channel receives one value per
// settled burst of changes; signals are dropped while one is pending.
func (w *Watcher) Start() (<-chan struct{}, error) {
	if err := w.fsWatcher.Add(w.dir); err != nil {
		return nil, fmt.Errorf("manifest: watching %s: %w", w.dir, err)
	}
	go w.loop()
	return w.onChange, nil
}

// Stop terminates the watcher and releases its resources.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsWatcher.Close()
}

func (w *Watcher) loop() {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			select {
			case w.onChange <- struct{}{}:
			default:
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			pointillism.Logger().Warn("manifest: watch error", "dir", w.dir, "error", err)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// relevant reports whether event touches a manifest file.
func relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return isManifest(filepath.Base(event.Name))
}

// Watch rescans reg whenever the manifests in dir change, until ctx is
// done, and hands each new snapshot to onRescan when it is non-nil. It
// blocks; run it in its own goroutine.
func Watch(ctx context.Context, dir string, reg *pointillism.Registry, debounce time.Duration,
	onRescan func(*pointillism.Snapshot)) error {
	w, err := NewWatcher(dir, debounce)
	if err != nil {
		return err
	}
	changes, err := w.Start()
	if err != nil {
		_ = w.fsWatcher.Close()
		return err
	}
	defer func() { _ = w.Stop() }()

	log := pointillism.Logger()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-changes:
			snap := reg.Rescan()
			log.Info("manifest: registry rescanned", "dir", dir, "algorithms", snap.Len(), "skipped", len(snap.Skipped()))
			if onRescan != nil {
				onRescan(snap)
			}
		}
	}
}
