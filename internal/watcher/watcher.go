// Package watcher observes install directories for filesystem activity and
// triggers a rescan once the activity settles. Installers write many files
// in bursts; the settle delay collapses a burst into a single rescan.
package watcher

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher debounces filesystem events from the watched paths and invokes
// the onSettle callback after a quiet period.
type Watcher struct {
	paths    []string
	settle   time.Duration
	onSettle func()

	fw     *fsnotify.Watcher
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// New creates a watcher over the given paths. onSettle runs on the
// watcher's goroutine after each burst of events goes quiet for the settle
// duration.
func New(paths []string, settle time.Duration, onSettle func()) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no paths to watch")
	}
	if onSettle == nil {
		return nil, fmt.Errorf("onSettle callback cannot be nil")
	}
	if settle <= 0 {
		settle = 5 * time.Second
	}
	return &Watcher{
		paths:    paths,
		settle:   settle,
		onSettle: onSettle,
		stopCh:   make(chan struct{}),
	}, nil
}

// Start registers the watched paths and begins dispatching. Paths that do
// not exist are skipped with a warning; at least one must register.
func (w *Watcher) Start() error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create filesystem watcher: %w", err)
	}

	registered := 0
	for _, path := range w.paths {
		if err := fw.Add(path); err != nil {
			fmt.Fprintf(os.Stderr, "watcher: cannot watch %s: %v\n", path, err)
			continue
		}
		registered++
	}
	if registered == 0 {
		fw.Close()
		return fmt.Errorf("none of the configured paths could be watched")
	}

	w.fw = fw
	w.wg.Add(1)
	go w.run()

	return nil
}

// run consumes filesystem events and fires onSettle after the quiet period.
func (w *Watcher) run() {
	defer w.wg.Done()

	// Timer is created stopped; the first event arms it.
	settle := time.NewTimer(w.settle)
	if !settle.Stop() {
		<-settle.C
	}

	for {
		select {
		case _, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if !settle.Stop() {
				select {
				case <-settle.C:
				default:
				}
			}
			settle.Reset(w.settle)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "watcher: %v\n", err)

		case <-settle.C:
			w.onSettle()

		case <-w.stopCh:
			return
		}
	}
}

// Stop halts event dispatch. A pending settle callback is dropped.
func (w *Watcher) Stop() error {
	close(w.stopCh)
	var err error
	if w.fw != nil {
		err = w.fw.Close()
	}
	w.wg.Wait()
	return err
}
