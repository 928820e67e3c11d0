// Package workspace holds the editing session: the ordered comparison tabs,
// which one is current, and project save/load.
package workspace

import (
	"fmt"

	"github.com/go-git/go-billy/v5"

	"transcompare/internal/core/backup"
	"transcompare/internal/core/charset"
	"transcompare/internal/core/project"
	"transcompare/internal/core/search"
	"transcompare/internal/core/utils"
)

// Options configures New. Zero values get the defaults: the local disk,
// backups in ./Backup, DefaultFontSize and UTF-8.
type Options struct {
	FS       billy.Filesystem
	Backup   *backup.Writer
	FontSize int
	Encoding string
	Logger   *utils.Logger

	// Watcher, when set, follows the target file of every open tab.
	Watcher *Watcher
}

// Workspace is the ordered list of comparison tabs.
type Workspace struct {
	tabs    []*Tab
	current int
	nextID  int

	fs       billy.Filesystem
	backup   *backup.Writer
	fontSize int
	encoding string
	logger   *utils.Logger
	watcher  *Watcher

	// OnBackupError is given to every tab the workspace creates.
	OnBackupError func(*Tab, error)
}

// New returns an empty workspace; callers add the first tab.
func New(opts Options) *Workspace {
	if opts.FS == nil {
		opts.FS = charset.Local
	}
	if opts.Backup == nil {
		opts.Backup = backup.NewWriter(opts.FS, "Backup")
	}
	if opts.FontSize < MinFontSize || opts.FontSize > MaxFontSize {
		opts.FontSize = DefaultFontSize
	}
	if name, err := charset.Normalize(opts.Encoding); err == nil {
		opts.Encoding = name
	} else {
		opts.Encoding = charset.UTF8
	}
	if opts.Logger == nil {
		opts.Logger = utils.NopLogger()
	}

	return &Workspace{
		current:  -1,
		nextID:   1,
		fs:       opts.FS,
		backup:   opts.Backup,
		fontSize: opts.FontSize,
		encoding: opts.Encoding,
		logger:   opts.Logger,
		watcher:  opts.Watcher,
	}
}

// NewTab appends an empty tab and makes it current.
func (w *Workspace) NewTab() *Tab {
	t := newTab(w.nextID, w.fs, w.backup, w.fontSize, w.encoding, w.logger)
	w.nextID++
	t.OnBackupError = func(err error) {
		if w.OnBackupError != nil {
			w.OnBackupError(t, err)
		}
	}
	t.moved = w.retarget

	w.tabs = append(w.tabs, t)
	w.current = len(w.tabs) - 1
	w.logger.Debug("Tab created", "tab", t.ID)
	return t
}

func (w *Workspace) retarget(oldPath, newPath string) {
	if w.watcher == nil {
		return
	}
	if oldPath != "" {
		if err := w.watcher.Remove(oldPath); err != nil {
			w.logger.WithFile(oldPath).WithError(err).Debug("Unwatch failed")
		}
	}
	if newPath != "" {
		if err := w.watcher.Add(newPath); err != nil {
			w.logger.WithFile(newPath).WithError(err).Warn("Watch failed")
		}
	}
}

// CloseTab removes the tab at i. The tab after it becomes current when the
// current tab is closed, or the new last tab when it was the last.
func (w *Workspace) CloseTab(i int) error {
	if i < 0 || i >= len(w.tabs) {
		return utils.NewValidationError(fmt.Sprintf("no tab at index %d", i), nil)
	}

	t := w.tabs[i]
	w.retarget(t.TargetPath, "")
	t.moved = nil
	w.tabs = append(w.tabs[:i], w.tabs[i+1:]...)

	switch {
	case len(w.tabs) == 0:
		w.current = -1
	case i < w.current:
		w.current--
	case w.current >= len(w.tabs):
		w.current = len(w.tabs) - 1
	}
	w.logger.Debug("Tab closed", "tab", t.ID)
	return nil
}

func (w *Workspace) CloseCurrent() error {
	if w.current < 0 {
		return utils.NewValidationError("no tab is open", nil)
	}
	return w.CloseTab(w.current)
}

// Current returns the current tab, or nil when no tab is open.
func (w *Workspace) Current() *Tab {
	if w.current < 0 {
		return nil
	}
	return w.tabs[w.current]
}

func (w *Workspace) CurrentIndex() int {
	return w.current
}

func (w *Workspace) SetCurrent(i int) error {
	if i < 0 || i >= len(w.tabs) {
		return utils.NewValidationError(fmt.Sprintf("no tab at index %d", i), nil)
	}
	w.current = i
	return nil
}

func (w *Workspace) Tabs() []*Tab {
	out := make([]*Tab, len(w.tabs))
	copy(out, w.tabs)
	return out
}

func (w *Workspace) Len() int {
	return len(w.tabs)
}

func (w *Workspace) IndexOf(t *Tab) int {
	for i, tab := range w.tabs {
		if tab == t {
			return i
		}
	}
	return -1
}

// NextTab makes the following tab current, wrapping to the first.
func (w *Workspace) NextTab() *Tab {
	if len(w.tabs) == 0 {
		return nil
	}
	w.current = (w.current + 1) % len(w.tabs)
	return w.tabs[w.current]
}

// TabsForPath returns the open tabs whose target is path.
func (w *Workspace) TabsForPath(path string) []*Tab {
	var out []*Tab
	for _, t := range w.tabs {
		if t.TargetPath != "" && samePath(t.TargetPath, path) {
			out = append(out, t)
		}
	}
	return out
}

// Undo undoes the last edit of the current target pane.
func (w *Workspace) Undo() bool {
	if t := w.Current(); t != nil {
		return t.Target.Undo()
	}
	return false
}

func (w *Workspace) Redo() bool {
	if t := w.Current(); t != nil {
		return t.Target.Redo()
	}
	return false
}

// FindInNextTab moves to the next tab and searches its target pane.
func (w *Workspace) FindInNextTab(opts search.Options) (*Tab, search.Match, bool, error) {
	t := w.NextTab()
	if t == nil {
		return nil, search.Match{}, false, utils.NewValidationError("no tab is open", nil)
	}
	match, ok, err := search.FindNext(t.Target, opts)
	return t, match, ok, err
}

func (w *Workspace) SaveProject(path string) error {
	snapshots := make([]project.Snapshot, 0, len(w.tabs))
	for _, t := range w.tabs {
		snapshots = append(snapshots, t.Snapshot())
	}
	if err := project.Save(w.fs, path, snapshots); err != nil {
		return err
	}
	w.logger.WithFile(path).Info("Project saved", "tabs", len(snapshots))
	return nil
}

// LoadProject replaces every open tab with the tabs stored in path. The
// first loaded tab becomes current. A project that cannot be read leaves
// the workspace unchanged.
func (w *Workspace) LoadProject(path string) error {
	snapshots, err := project.Load(w.fs, path)
	if err != nil {
		return err
	}

	for len(w.tabs) > 0 {
		if err := w.CloseTab(len(w.tabs) - 1); err != nil {
			return err
		}
	}
	for _, s := range snapshots {
		w.NewTab().Restore(s)
	}
	if len(w.tabs) > 0 {
		w.current = 0
	}
	w.logger.WithFile(path).Info("Project loaded", "tabs", len(snapshots))
	return nil
}
