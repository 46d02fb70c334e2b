// Package watch reports changes to the config file so bindings can be
// reloaded while the UI runs.
package watch

import (
	"path/filepath"
	"sync"
	"time"

	"vlcrc/internal/errors"
	"vlcrc/internal/log"

	"github.com/fsnotify/fsnotify"
)

// ConfigChange represents a change to the watched file
type ConfigChange struct {
	Path      string
	Op        fsnotify.Op
	Timestamp time.Time
}

// Watcher monitors one file using fsnotify. The file's directory is
// watched rather than the file, so editors that save by replacing the
// file are still seen.
type Watcher struct {
	// Absolute path of the watched file
	path string

	// Channel to receive changes; holds at most one pending change
	changes chan ConfigChange

	// Channel to signal stop
	stopChan chan struct{}

	// Closed when the event loop has returned
	done chan struct{}

	// fsnotify watcher instance
	fsWatcher *fsnotify.Watcher

	// Lock for running state
	mutex sync.RWMutex

	// Whether the watcher is running
	running bool
}

// New creates a watcher for the file at path. The file need not exist
// yet; its directory must.
func New(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve %s", path)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	return &Watcher{
		path:      filepath.Clean(abs),
		changes:   make(chan ConfigChange, 1),
		stopChan:  make(chan struct{}),
		done:      make(chan struct{}),
		fsWatcher: fsWatcher,
	}, nil
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Changes returns the channel that delivers changes. Bursts of events
// are coalesced into one pending change. The channel is closed by Stop.
func (w *Watcher) Changes() <-chan ConfigChange {
	return w.changes
}

// Start begins watching.
func (w *Watcher) Start() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.running {
		return errors.New("watcher already running")
	}

	dir := filepath.Dir(w.path)
	if err := w.fsWatcher.Add(dir); err != nil {
		return errors.Wrapf(err, "failed to watch %s", dir)
	}
	w.running = true

	go w.loop()

	log.LogWithFields(log.F("file", w.path)).Info("Watching config file")
	return nil
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			// A removed file has nothing to reload; its replacement
			// arrives as a Create.
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}

			change := ConfigChange{Path: w.path, Op: event.Op, Timestamp: time.Now()}
			select {
			case w.changes <- change:
			default:
				log.LogWithFields(log.F("file", w.path)).Debug("Change already pending, coalesced")
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.LogWithFields(log.F("error", err)).Error("fsnotify watcher error")

		case <-w.stopChan:
			return
		}
	}
}

// Stop halts the watcher and closes the change channel once the event
// loop has exited.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if !w.running {
		return
	}

	close(w.stopChan)
	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithFields(log.F("error", err)).Error("Error closing fsnotify watcher")
	}
	<-w.done
	w.running = false
	close(w.changes)

	log.Info("Watcher stopped.")
}

// IsRunning returns whether the watcher is currently active
func (w *Watcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}
