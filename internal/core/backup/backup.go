// Package backup keeps a copy of each target file as it is being edited.
package backup

import (
	"path/filepath"

	"github.com/go-git/go-billy/v5"

	"transcompare/internal/core/charset"
	"transcompare/internal/core/utils"
)

// Extension is appended to the target file name.
const Extension = ".bak"

// Writer overwrites <dir>/<basename>.bak with the current target text. There
// is a single backup per target name; it has no history.
type Writer struct {
	fs      billy.Filesystem
	dir     string
	Enabled bool
}

// NewWriter returns an enabled writer storing backups in dir on fs.
func NewWriter(fs billy.Filesystem, dir string) *Writer {
	return &Writer{fs: fs, dir: dir, Enabled: true}
}

func (w *Writer) Dir() string {
	return w.dir
}

// Path returns where the backup of targetPath is written, or "" when there
// is no target path.
func (w *Writer) Path(targetPath string) string {
	if targetPath == "" {
		return ""
	}
	return w.fs.Join(w.dir, filepath.Base(targetPath)+Extension)
}

// Write stores text as the backup of targetPath. The text is encoded before
// anything is written, so an encoding failure leaves the previous backup in
// place. A disabled writer or an empty target path does nothing.
func (w *Writer) Write(targetPath, text, encoding string) error {
	if !w.Enabled || targetPath == "" {
		return nil
	}

	data, err := charset.Encode(text, encoding)
	if err != nil {
		if e, ok := err.(*utils.EditorError); ok {
			return e.WithContext("backup", w.Path(targetPath))
		}
		return err
	}

	if err := w.fs.MkdirAll(w.dir, 0o755); err != nil {
		return utils.NewFileSystemError("failed to create backup directory", err).WithContext("dir", w.dir)
	}

	path := w.Path(targetPath)
	f, err := w.fs.Create(path)
	if err != nil {
		return utils.NewFileSystemError("failed to create backup file", err).WithContext("path", path)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return utils.NewFileSystemError("failed to write backup file", err).WithContext("path", path)
	}
	if err := f.Close(); err != nil {
		return utils.NewFileSystemError("failed to write backup file", err).WithContext("path", path)
	}
	return nil
}
