package catalog

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce is how long a burst of file events must be quiet before
// a change is reported.
const DefaultDebounce = 200 * time.Millisecond

// Watcher reports changes under a library directory. Bursts of events are
// coalesced into a single notification.
type Watcher struct {
	watcher *fsnotify.Watcher
	changes chan struct{}
	delay   time.Duration
	log     zerolog.Logger

	mu    sync.Mutex
	timer *time.Timer

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Watch starts watching root and every non-hidden directory below it.
// Directories created later are added as they appear.
func Watch(root string, delay time.Duration, logger zerolog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		watcher: fw,
		changes: make(chan struct{}, 1),
		delay:   delay,
		log:     logger,
		ctx:     ctx,
		cancel:  cancel,
	}

	if err := w.addTree(root); err != nil {
		cancel()
		_ = fw.Close()
		return nil, err
	}

	w.wg.Add(1)
	go w.run()

	return w, nil
}

// Changes delivers one value per quiet period after the library changed.
// The channel is closed by Close.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Close stops watching.
func (w *Watcher) Close() error {
	w.cancel()

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	err := w.watcher.Close()
	w.wg.Wait()

	w.mu.Lock()
	close(w.changes)
	w.mu.Unlock()
	return err
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && isHidden(d.Name()) {
			return filepath.SkipDir
		}
		return w.watcher.Add(p)
	})
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
			w.log.Warn().Err(err).Msg("library watcher")
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return
	}
	if isHidden(filepath.Base(event.Name)) {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				w.log.Warn().Err(err).Str("dir", event.Name).Msg("watch new folder")
			}
		}
	}

	w.log.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("library changed")

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, w.notify)
}

func (w *Watcher) notify() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.ctx.Err() != nil {
		return
	}
	select {
	case w.changes <- struct{}{}:
	default:
		// a change is already pending
	}
}
