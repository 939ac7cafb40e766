// Package watch reports changes to the directory currently shown so the
// browser can refresh it without a keypress.
package watch

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce coalesces bursts such as an editor's save dance.
const DefaultDebounce = 150 * time.Millisecond

// Watcher follows a single directory at a time.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	debounce  time.Duration

	changes chan struct{}
	stop    chan struct{}
	done    chan struct{}

	mu      sync.Mutex
	dir     string
	closed  bool
	pending *time.Timer
}

// New creates a watcher that is not yet following any directory.
func New(debounce time.Duration) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		debounce:  debounce,
		changes:   make(chan struct{}, 1),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Changes delivers one value per settled burst of events. Values are
// coalesced; a reader that falls behind sees a single pending change.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Dir returns the directory being followed.
func (w *Watcher) Dir() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dir
}

// Watch switches the watcher to dir. Watching the same directory again is a
// no-op.
func (w *Watcher) Watch(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return fmt.Errorf("watcher closed")
	}
	if dir == w.dir {
		return nil
	}

	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("error accessing directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	if w.dir != "" {
		if err := w.fsWatcher.Remove(w.dir); err != nil {
			logrus.WithFields(logrus.Fields{"directory": w.dir, "error": err}).Debug("unwatch failed")
		}
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		w.dir = ""
		return fmt.Errorf("failed to add directory %s to watcher: %w", dir, err)
	}
	w.dir = dir
	if w.pending != nil {
		w.pending.Stop()
		w.pending = nil
	}
	logrus.WithField("directory", dir).Debug("watching directory")
	return nil
}

// Close stops the watcher. Changes is not closed so readers selecting on it
// stay valid.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.pending != nil {
		w.pending.Stop()
		w.pending = nil
	}
	w.mu.Unlock()

	close(w.stop)
	err := w.fsWatcher.Close()
	<-w.done
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			w.schedule()

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			logrus.WithError(err).Warn("fsnotify watcher error")

		case <-w.stop:
			return
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.pending != nil {
		w.pending.Reset(w.debounce)
		return
	}
	w.pending = time.AfterFunc(w.debounce, w.fire)
}

func (w *Watcher) fire() {
	w.mu.Lock()
	w.pending = nil
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return
	}

	select {
	case w.changes <- struct{}{}:
	default:
	}
}
