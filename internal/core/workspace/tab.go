package workspace

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-git/go-billy/v5"

	"transcompare/internal/core/backup"
	"transcompare/internal/core/charset"
	"transcompare/internal/core/progress"
	"transcompare/internal/core/project"
	"transcompare/internal/core/textdoc"
	"transcompare/internal/core/utils"
)

const (
	MinFontSize     = 10
	MaxFontSize     = 30
	DefaultFontSize = 10

	UntitledTab = "New Tab"
)

// FontSizes lists the sizes offered by the font size selector.
func FontSizes() []int {
	sizes := make([]int, 0, MaxFontSize-MinFontSize+1)
	for n := MinFontSize; n <= MaxFontSize; n++ {
		sizes = append(sizes, n)
	}
	return sizes
}

// Tab pairs a source text with the target text being translated. Only the
// target is edited; every change to it is backed up once the tab has a
// target path.
type Tab struct {
	ID         int
	Source     *textdoc.Document
	Target     *textdoc.Document
	TargetPath string
	FontSize   int
	Encoding   string

	// OnBackupError is called when writing the backup fails. The edit
	// itself is never rejected.
	OnBackupError func(error)

	fs      billy.Filesystem
	backup  *backup.Writer
	logger  *utils.Logger
	modTime time.Time
	moved   func(oldPath, newPath string)
}

func newTab(id int, fs billy.Filesystem, bw *backup.Writer, fontSize int, encoding string, logger *utils.Logger) *Tab {
	t := &Tab{
		ID:       id,
		Source:   textdoc.New(""),
		Target:   textdoc.New(""),
		FontSize: fontSize,
		Encoding: encoding,
		fs:       fs,
		backup:   bw,
		logger:   logger.WithTab(id),
	}
	t.Target.OnChange(t.writeBackup)
	return t
}

func (t *Tab) writeBackup() {
	if t.TargetPath == "" || t.backup == nil {
		return
	}
	if err := t.backup.Write(t.TargetPath, t.Target.Text(), t.Encoding); err != nil {
		t.logger.WithFile(t.TargetPath).WithError(err).Warn("Backup failed")
		if t.OnBackupError != nil {
			t.OnBackupError(err)
		}
		return
	}
	t.logger.Debug("Backup written", "path", t.backup.Path(t.TargetPath))
}

// BackupPath is where the target's backup goes, "" without a target path.
func (t *Tab) BackupPath() string {
	if t.backup == nil {
		return ""
	}
	return t.backup.Path(t.TargetPath)
}

// OpenSource loads path into the source pane.
func (t *Tab) OpenSource(path string, chooser charset.Chooser) error {
	f, err := charset.ReadFile(t.fs, path, chooser)
	if err != nil {
		return err
	}
	t.Source.SetText(f.Text)
	t.logger.WithFile(path).Info("Opened source file", "encoding", f.Encoding)
	return nil
}

// OpenTarget loads path into the target pane and makes it the file that
// Save and backups refer to. The tab takes the encoding the file was read
// with.
func (t *Tab) OpenTarget(path string, chooser charset.Chooser) error {
	f, err := charset.ReadFile(t.fs, path, chooser)
	if err != nil {
		return err
	}
	t.setTargetPath(path)
	t.Encoding = f.Encoding
	t.Target.SetText(f.Text)
	t.recordModTime()
	t.logger.WithFile(path).Info("Opened target file", "encoding", f.Encoding, "confidence", f.Detection.Confidence)
	return nil
}

// Save writes the target text to path with encoding. An empty path means
// the current target path and an empty encoding the tab's encoding. On
// success both are recorded on the tab.
func (t *Tab) Save(path, encoding string) error {
	if path == "" {
		path = t.TargetPath
	}
	if path == "" {
		return utils.NewValidationError("no file to save to", nil)
	}
	if encoding == "" {
		encoding = t.Encoding
	}
	name, err := charset.Normalize(encoding)
	if err != nil {
		return err
	}

	if err := charset.WriteFile(t.fs, path, t.Target.Text(), name); err != nil {
		return err
	}
	t.setTargetPath(path)
	t.Encoding = name
	t.recordModTime()
	t.logger.WithFile(path).Info("Saved target file", "encoding", name)
	return nil
}

func (t *Tab) setTargetPath(path string) {
	if path == t.TargetPath {
		return
	}
	old := t.TargetPath
	t.TargetPath = path
	if t.moved != nil {
		t.moved(old, path)
	}
}

func (t *Tab) recordModTime() {
	if info, err := t.fs.Stat(t.TargetPath); err == nil {
		t.modTime = info.ModTime()
	}
}

// ChangedOnDisk reports whether the target file was modified since this
// tab last read or wrote it.
func (t *Tab) ChangedOnDisk() bool {
	if t.TargetPath == "" {
		return false
	}
	info, err := t.fs.Stat(t.TargetPath)
	if err != nil {
		return true
	}
	return !info.ModTime().Equal(t.modTime)
}

// AcknowledgeDiskChange accepts the file's current state on disk, so
// ChangedOnDisk reports only later modifications. The text is left as is.
func (t *Tab) AcknowledgeDiskChange() {
	t.recordModTime()
}

// Reload rereads the target file with the tab's encoding, discarding edits.
func (t *Tab) Reload() error {
	if t.TargetPath == "" {
		return utils.NewValidationError("no file to reload", nil)
	}
	f, err := charset.ReadFileAs(t.fs, t.TargetPath, t.Encoding)
	if err != nil {
		return err
	}
	t.Target.SetText(f.Text)
	t.recordModTime()
	return nil
}

func (t *Tab) SetFontSize(n int) error {
	if n < MinFontSize || n > MaxFontSize {
		return utils.NewValidationError(fmt.Sprintf("font size must be between %d and %d", MinFontSize, MaxFontSize), nil).
			WithContext("font_size", n)
	}
	t.FontSize = n
	return nil
}

// SetEncoding changes the encoding used for saving and backups.
func (t *Tab) SetEncoding(name string) error {
	canonical, err := charset.Normalize(name)
	if err != nil {
		return err
	}
	t.Encoding = canonical
	return nil
}

func (t *Tab) Title() string {
	if t.TargetPath == "" {
		return UntitledTab
	}
	return filepath.Base(t.TargetPath)
}

func (t *Tab) Progress() progress.Report {
	return progress.Analyze(t.Target.Text())
}

func (t *Tab) Snapshot() project.Snapshot {
	return project.Snapshot{
		SourceText: t.Source.Text(),
		TargetText: t.Target.Text(),
		TargetPath: t.TargetPath,
		FontSize:   t.FontSize,
		Encoding:   t.Encoding,
	}
}

// Restore replaces the tab's state with s. The target text is set before the
// target path, so restoring does not overwrite an existing backup. Sizes and
// encodings the editor does not know keep the tab's current values.
func (t *Tab) Restore(s project.Snapshot) {
	t.Source.SetText(s.SourceText)
	t.Target.SetText(s.TargetText)
	t.setTargetPath(s.TargetPath)
	t.recordModTime()

	if err := t.SetFontSize(s.FontSize); err != nil {
		t.logger.Debug("Ignoring stored font size", "font_size", s.FontSize)
	}
	if err := t.SetEncoding(s.Encoding); err != nil {
		t.logger.Warn("Ignoring stored encoding", "encoding", s.Encoding)
	}
}
