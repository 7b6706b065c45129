// Package reload keeps a phonedata.Database current with its file on disk.
//
// A Holder publishes the active database. A Watcher observes the data file's
// directory with fsnotify and, after a quiet period, loads the whole file again
// and swaps it into the Holder. A file that fails to load leaves the previous
// database in place.
package reload

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/phonedata/pkg/log"
	"github.com/bft-labs/phonedata/pkg/phonedata"
)

// Holder publishes the active database to concurrent readers.
type Holder struct {
	db atomic.Pointer[phonedata.Database]
}

// NewHolder returns a Holder serving db.
func NewHolder(db *phonedata.Database) *Holder {
	h := &Holder{}
	h.db.Store(db)
	return h
}

// Database returns the active database.
func (h *Holder) Database() *phonedata.Database {
	return h.db.Load()
}

// Find resolves number against the active database.
func (h *Holder) Find(number string) (phonedata.PhoneInfo, error) {
	return h.Database().Find(number)
}

func (h *Holder) swap(db *phonedata.Database) {
	h.db.Store(db)
}

// LoadFunc loads the database at path.
type LoadFunc func(path string) (*phonedata.Database, error)

// Watcher reloads a data file into a Holder when the file changes.
type Watcher struct {
	path     string
	holder   *Holder
	load     LoadFunc
	debounce time.Duration
	logger   log.Logger

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

// NewWatcher creates a watcher for path. Call Run to start watching.
func NewWatcher(path string, holder *Holder, load LoadFunc, debounce time.Duration, logger log.Logger) *Watcher {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Watcher{
		path:     filepath.Clean(path),
		holder:   holder,
		load:     load,
		debounce: debounce,
		logger:   logger,
	}
}

// Run watches the data file until ctx is cancelled. The parent directory is
// watched so that files replaced by rename are picked up.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()
	defer w.stop()

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	w.logger.Info("watching data file", log.String("path", w.path))

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.schedule()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", log.Err(err))
		}
	}
}

// schedule (re)arms the debounce timer.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
	}
}

// reload loads the file and swaps it in on success.
func (w *Watcher) reload() {
	start := time.Now()
	db, err := w.load(w.path)
	if err != nil {
		w.logger.Error("reload failed, keeping previous database",
			log.String("path", w.path),
			log.Err(err),
		)
		return
	}

	w.mu.Lock()
	stopped := w.stopped
	w.mu.Unlock()
	if stopped {
		return
	}

	w.holder.swap(db)
	w.logger.Info("data file reloaded",
		log.String("path", w.path),
		log.String("version", db.Version()),
		log.Int("entries", db.Len()),
		log.Duration("took", time.Since(start)),
	)
}
