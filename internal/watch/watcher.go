// Package watch observes a workflow's input files so `triad run --watch`
// can re-dispatch the workflow when they change.
package watch

import (
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce batches the flurry of events editors emit on save into
// a single change notification.
const DefaultDebounce = 500 * time.Millisecond

// Watcher reports batched changes to a fixed set of files. It watches
// the files' parent directories (watching the file itself breaks on
// editors that replace-on-save) and filters events back down to the
// named files.
type Watcher struct {
	fsw      *fsnotify.Watcher
	files    map[string]bool
	debounce time.Duration

	changes chan []string
	done    chan struct{}

	closeOnce sync.Once
}

// New starts watching the given files. Paths are resolved to absolute
// form; duplicates collapse. A debounce of 0 uses DefaultDebounce.
func New(files []string, debounce time.Duration) (*Watcher, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("nothing to watch")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		fsw:      fsw,
		files:    make(map[string]bool, len(files)),
		debounce: debounce,
		changes:  make(chan []string, 1),
		done:     make(chan struct{}),
	}

	dirs := map[string]bool{}
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			fsw.Close()
			return nil, fmt.Errorf("resolve %s: %w", f, err)
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	go w.run()

	return w, nil
}

// Changes returns the channel of change batches. Each batch lists the
// watched files touched since the previous notification, sorted. The
// channel never closes; callers select against their own context.
func (w *Watcher) Changes() <-chan []string {
	return w.changes
}

// Close stops watching. Safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fsw.Close()
	})
	return err
}

// run is the event loop: collect relevant events, debounce, notify.
func (w *Watcher) run() {
	pending := map[string]bool{}
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			pending[event.Name] = true
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-timerC:
			changed := make([]string, 0, len(pending))
			for f := range pending {
				changed = append(changed, f)
			}
			sort.Strings(changed)
			pending = map[string]bool{}
			timer = nil
			timerC = nil

			select {
			case w.changes <- changed:
			default:
				// A batch is already queued; the pending re-run will read
				// the latest file contents anyway.
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("[watch] warning: %v", err)
		}
	}
}

// relevant reports whether an event names a watched file and represents
// a content change. Create counts: replace-on-save editors write a new
// file over the old path.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !w.files[event.Name] {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create) != 0
}
