package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// quietPeriod is how long a file must go without events before its change is reported.
const quietPeriod = 100 * time.Millisecond

// Watcher reports changes to a fixed set of configuration files.
// Directories are watched rather than files so editors that replace files on save are still seen.
// A burst of writes is reported once, after the last write.
type Watcher struct {
	watcher *fsnotify.Watcher
	files   map[string]struct{}
	quiet   time.Duration
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher starts watching the given files.
//
// Parameters:
//   - paths: the configuration files to watch
//
// Returns:
//   - *Watcher: the running watcher; Close must be called to stop it
//   - error: error if the underlying watcher cannot be created or a directory cannot be added
func NewWatcher(paths ...string) (*Watcher, error) {
	return newWatcher(quietPeriod, paths...)
}

func newWatcher(quiet time.Duration, paths ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	files := make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			_ = w.Close()
			return nil, err
		}
		files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		files:   files,
		quiet:   quiet,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Poll reports whether any watched file changed since the last call. It never blocks.
//
// Returns:
//   - []string: the changed files, deduplicated, or nil
//   - error: the first watcher error received, if any
func (w *Watcher) Poll() ([]string, error) {
	var changed []string
	seen := map[string]bool{}
	for {
		select {
		case name := <-w.Events:
			if !seen[name] {
				seen[name] = true
				changed = append(changed, name)
			}
		case err := <-w.Errors:
			return changed, err
		default:
			return changed, nil
		}
	}
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	pending := make(map[string]struct{})
	settle := time.NewTimer(w.quiet)
	settle.Stop()
	defer settle.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			name, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			if _, watched := w.files[name]; !watched {
				continue
			}
			pending[name] = struct{}{}
			settle.Reset(w.quiet)
		case <-settle.C:
			for name := range pending {
				delete(pending, name)
				select {
				case w.Events <- name:
				case <-w.closeCh:
					return
				}
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}
