package workspace

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"transcompare/internal/core/utils"
)

type ChangeKind int

const (
	Modified ChangeKind = iota
	Removed
)

func (k ChangeKind) String() string {
	if k == Removed {
		return "removed"
	}
	return "modified"
}

type Change struct {
	Path string
	Kind ChangeKind
}

// Watcher reports changes made by other programs to open target files.
//
// Directories are watched rather than the files themselves, so a file that
// an editor replaces by rename keeps being followed.
type Watcher struct {
	fsw     *fsnotify.Watcher
	logger  *utils.Logger
	changes chan Change
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once

	mu    sync.Mutex
	files map[string]int
	dirs  map[string]int
}

func NewWatcher(logger *utils.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, utils.NewFileSystemError("failed to start file watcher", err)
	}
	if logger == nil {
		logger = utils.NopLogger()
	}

	w := &Watcher{
		fsw:     fsw,
		logger:  logger.WithOperation("watch"),
		changes: make(chan Change, 16),
		done:    make(chan struct{}),
		files:   make(map[string]int),
		dirs:    make(map[string]int),
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Changes delivers one Change per relevant filesystem event. It is closed by
// Close.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Add starts following path. Paths are reference counted, so two tabs on
// the same file need two Removes.
func (w *Watcher) Add(path string) error {
	abs, err := absPath(path)
	if err != nil {
		return utils.NewFileSystemError("failed to resolve path", err).WithContext("path", path)
	}
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.dirs[dir] == 0 {
		if err := w.fsw.Add(dir); err != nil {
			return utils.NewFileSystemError("failed to watch directory", err).WithContext("dir", dir)
		}
	}
	w.dirs[dir]++
	w.files[abs]++
	return nil
}

func (w *Watcher) Remove(path string) error {
	abs, err := absPath(path)
	if err != nil {
		return utils.NewFileSystemError("failed to resolve path", err).WithContext("path", path)
	}
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.files[abs] == 0 {
		return nil
	}
	if w.files[abs]--; w.files[abs] == 0 {
		delete(w.files, abs)
	}
	if w.dirs[dir]--; w.dirs[dir] == 0 {
		delete(w.dirs, dir)
		if err := w.fsw.Remove(dir); err != nil {
			return utils.NewFileSystemError("failed to unwatch directory", err).WithContext("dir", dir)
		}
	}
	return nil
}

// Watching reports whether path is followed.
func (w *Watcher) Watching(path string) bool {
	abs, err := absPath(path)
	if err != nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.files[abs] > 0
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		w.wg.Wait()
		close(w.changes)
	})
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			change, relevant := w.classify(event)
			if !relevant {
				continue
			}
			w.logger.Debug("File changed", "path", change.Path, "kind", change.Kind.String())
			select {
			case w.changes <- change:
			case <-w.done:
				return
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.WithError(err).Warn("File watcher error")
		}
	}
}

func (w *Watcher) classify(event fsnotify.Event) (Change, bool) {
	path := filepath.Clean(event.Name)

	w.mu.Lock()
	watched := w.files[path] > 0
	w.mu.Unlock()
	if !watched {
		return Change{}, false
	}

	switch {
	case event.Has(fsnotify.Write), event.Has(fsnotify.Create):
		return Change{Path: path, Kind: Modified}, true
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return Change{Path: path, Kind: Removed}, true
	}
	return Change{}, false
}

func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}

func samePath(a, b string) bool {
	if a == b {
		return true
	}
	absA, errA := absPath(a)
	absB, errB := absPath(b)
	return errA == nil && errB == nil && absA == absB
}
