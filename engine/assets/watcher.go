package assets

import (
	"errors"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/dset/engine/core"
)

// Watcher reports changes to a single file. It watches the parent directory so
// editors that save by replacing the file are still picked up.
type Watcher struct {
	path string

	fsnotify *fsnotify.Watcher
	events   chan string
	errors   chan error
	done     chan struct{}

	closeOnce sync.Once
	wg        sync.WaitGroup
}

func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatch.Add(filepath.Dir(abs)); err != nil {
		fsWatch.Close()
		return nil, err
	}

	w := &Watcher{
		path:     abs,
		fsnotify: fsWatch,
		events:   make(chan string, 1),
		errors:   make(chan error, 1),
		done:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.start()
	return w, nil
}

// Events delivers the watched path every time it is written or recreated.
// Bursts collapse into a single pending event.
func (w *Watcher) Events() <-chan string {
	return w.events
}

func (w *Watcher) Errors() <-chan error {
	return w.errors
}

func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		w.wg.Wait()
		err = w.fsnotify.Close()
		close(w.events)
		close(w.errors)
	})
	return err
}

func (w *Watcher) start() {
	defer w.wg.Done()
	for {
		select {
		case e, ok := <-w.fsnotify.Events:
			if !ok {
				return
			}
			if filepath.Clean(e.Name) != w.path {
				continue
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				core.LogDebug("watched file changed: %s (%s)", e.Name, e.Op)
				select {
				case w.events <- w.path:
				default:
				}
			}

		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				core.LogWarn("file watcher overflowed, some changes may be missed")
			} else {
				core.LogError("file watcher: %s", err)
			}
			select {
			case w.errors <- err:
			default:
			}

		case <-w.done:
			return
		}
	}
}
