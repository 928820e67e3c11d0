package charset

import (
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// Local is the filesystem used outside of tests. Paths are used as given:
// relative ones resolve against the working directory, absolute ones as is.
var Local billy.Filesystem = localFS{osfs.New("/")}

// localFS roots the OS filesystem at / and makes every path absolute before
// handing it down, so relative paths keep their usual meaning.
type localFS struct {
	billy.Filesystem
}

func (fs localFS) Create(filename string) (billy.File, error) {
	p, err := filepath.Abs(filename)
	if err != nil {
		return nil, err
	}
	return fs.Filesystem.Create(p)
}

func (fs localFS) Open(filename string) (billy.File, error) {
	p, err := filepath.Abs(filename)
	if err != nil {
		return nil, err
	}
	return fs.Filesystem.Open(p)
}

func (fs localFS) OpenFile(filename string, flag int, perm os.FileMode) (billy.File, error) {
	p, err := filepath.Abs(filename)
	if err != nil {
		return nil, err
	}
	return fs.Filesystem.OpenFile(p, flag, perm)
}

func (fs localFS) Stat(filename string) (os.FileInfo, error) {
	p, err := filepath.Abs(filename)
	if err != nil {
		return nil, err
	}
	return fs.Filesystem.Stat(p)
}

func (fs localFS) Lstat(filename string) (os.FileInfo, error) {
	p, err := filepath.Abs(filename)
	if err != nil {
		return nil, err
	}
	return fs.Filesystem.Lstat(p)
}

func (fs localFS) Rename(oldpath, newpath string) error {
	from, err := filepath.Abs(oldpath)
	if err != nil {
		return err
	}
	to, err := filepath.Abs(newpath)
	if err != nil {
		return err
	}
	return fs.Filesystem.Rename(from, to)
}

func (fs localFS) Remove(filename string) error {
	p, err := filepath.Abs(filename)
	if err != nil {
		return err
	}
	return fs.Filesystem.Remove(p)
}

// TempFile with an empty dir uses the OS temp directory, not /.
func (fs localFS) TempFile(dir, prefix string) (billy.File, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	p, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	return fs.Filesystem.TempFile(p, prefix)
}

func (fs localFS) ReadDir(path string) ([]os.FileInfo, error) {
	p, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return fs.Filesystem.ReadDir(p)
}

func (fs localFS) MkdirAll(filename string, perm os.FileMode) error {
	p, err := filepath.Abs(filename)
	if err != nil {
		return err
	}
	return fs.Filesystem.MkdirAll(p, perm)
}

// Symlink keeps a relative target as written; it is resolved from the
// link's directory, as on the OS.
func (fs localFS) Symlink(target, link string) error {
	p, err := filepath.Abs(link)
	if err != nil {
		return err
	}
	return fs.Filesystem.Symlink(target, p)
}

func (fs localFS) Readlink(link string) (string, error) {
	p, err := filepath.Abs(link)
	if err != nil {
		return "", err
	}
	return fs.Filesystem.Readlink(p)
}

func (fs localFS) Chroot(path string) (billy.Filesystem, error) {
	p, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return fs.Filesystem.Chroot(p)
}
