package backup

import (
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transcompare/internal/core/charset"
	"transcompare/internal/core/utils"
)

func TestWriter_Path(t *testing.T) {
	w := NewWriter(memfs.New(), "Backup")

	assert.Equal(t, "Backup/chapter1.txt.bak", w.Path("/home/user/work/chapter1.txt"))
	assert.Equal(t, "Backup/notes.bak", w.Path("notes"))
	assert.Equal(t, "", w.Path(""))
}

func TestWriter_Write(t *testing.T) {
	fs := memfs.New()
	w := NewWriter(fs, "Backup")

	require.NoError(t, w.Write("/data/target.txt", "สวัสดี", charset.UTF8))

	got, err := util.ReadFile(fs, "Backup/target.txt.bak")
	require.NoError(t, err)
	assert.Equal(t, "สวัสดี", string(got))

	require.NoError(t, w.Write("/data/target.txt", "second", charset.UTF8))
	got, err = util.ReadFile(fs, "Backup/target.txt.bak")
	require.NoError(t, err)
	assert.Equal(t, "second", string(got), "backup is overwritten, not appended")
}

func TestWriter_UsesTabEncoding(t *testing.T) {
	fs := memfs.New()
	w := NewWriter(fs, "bk")

	require.NoError(t, w.Write("a.txt", "hi", charset.UTF16))

	got, err := util.ReadFile(fs, "bk/a.txt.bak")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0xFE, 'h', 0, 'i', 0}, got)
}

func TestWriter_EncodingFailureKeepsPreviousBackup(t *testing.T) {
	fs := memfs.New()
	w := NewWriter(fs, "Backup")
	require.NoError(t, w.Write("t.txt", "plain", charset.Latin1))

	err := w.Write("t.txt", "ภาษาไทย", charset.Latin1)
	require.Error(t, err)
	assert.True(t, utils.IsEncodingError(err))

	got, err := util.ReadFile(fs, "Backup/t.txt.bak")
	require.NoError(t, err)
	assert.Equal(t, "plain", string(got))
}

func TestWriter_NoOps(t *testing.T) {
	fs := memfs.New()
	w := NewWriter(fs, "Backup")

	require.NoError(t, w.Write("", "text", charset.UTF8))
	_, err := fs.Stat("Backup")
	assert.Error(t, err, "no target path, nothing written")

	w.Enabled = false
	require.NoError(t, w.Write("t.txt", "text", charset.UTF8))
	_, err = fs.Stat("Backup")
	assert.Error(t, err, "disabled writer writes nothing")
}
