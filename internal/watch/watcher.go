// Package watch invalidates the squad provider's caches when markdown
// sources change on disk.
package watch

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/colonyops/squadview/internal/core/logging"
)

const debounceDelay = 250 * time.Millisecond

// Refresher is the cache-invalidation hook, satisfied by squad.Provider.
type Refresher interface {
	Refresh()
}

// Watcher watches squad source directories with fsnotify and calls
// Refresh once per burst of markdown changes.
type Watcher struct {
	watcher   *fsnotify.Watcher
	refresher Refresher
	log       zerolog.Logger

	mu        sync.Mutex
	debounce  *time.Timer
	onRefresh func()

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New starts watching the given directories. Directories that don't
// exist yet are skipped; they get picked up on the next restart.
func New(dirs []string, refresher Refresher) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	log := logging.Component("watch")
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			log.Debug().Err(err).Str("dir", dir).Msg("not watching directory")
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		watcher:   fsw,
		refresher: refresher,
		log:       log,
		ctx:       ctx,
		cancel:    cancel,
	}

	w.wg.Add(1)
	go w.run()

	return w, nil
}

// OnRefresh registers a hook that runs after each debounced refresh.
func (w *Watcher) OnRefresh(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onRefresh = fn
}

// Close stops the watcher and waits for the event loop to exit.
func (w *Watcher) Close() error {
	w.cancel()

	w.mu.Lock()
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.mu.Unlock()

	err := w.watcher.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("watch error")
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return
	}

	name := filepath.Base(event.Name)
	if !strings.EqualFold(filepath.Ext(name), ".md") || strings.HasPrefix(name, ".") {
		return
	}

	// Editors fire several events per save; collapse the burst into a
	// single refresh.
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(debounceDelay, func() {
		w.log.Debug().Str("file", name).Msg("refreshing caches")
		w.refresher.Refresh()

		w.mu.Lock()
		fn := w.onRefresh
		w.mu.Unlock()
		if fn != nil {
			fn()
		}
	})
}
