package project

import (
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transcompare/internal/core/utils"
)

func TestMarshal_Format(t *testing.T) {
	data, err := Marshal([]Snapshot{
		{SourceText: "Hello", TargetText: "สวัสดี", TargetPath: "/tmp/a.txt", FontSize: 14, Encoding: "UTF-16"},
		{SourceText: "<b>", TargetText: "", FontSize: 10},
	})
	require.NoError(t, err)

	want := `{
    "tabs": [
        {
            "source_text": "Hello",
            "target_text": "สวัสดี",
            "file2_path": "/tmp/a.txt",
            "font_size": "14",
            "encoding": "UTF-16"
        },
        {
            "source_text": "<b>",
            "target_text": "",
            "file2_path": null,
            "font_size": "10",
            "encoding": "UTF-8"
        }
    ]
}
`
	assert.Equal(t, want, string(data))
}

func TestUnmarshal(t *testing.T) {
	data := []byte(`{"tabs": [
		{"source_text": "a", "target_text": "ก", "file2_path": null, "font_size": "12"},
		{"source_text": "b", "target_text": "c", "file2_path": "x.txt", "font_size": 16, "encoding": "TIS-620"},
		{"source_text": "", "target_text": "", "file2_path": "", "font_size": "big", "encoding": ""}
	]}`)

	got, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, []Snapshot{
		{SourceText: "a", TargetText: "ก", FontSize: 12, Encoding: "UTF-8"},
		{SourceText: "b", TargetText: "c", TargetPath: "x.txt", FontSize: 16, Encoding: "TIS-620"},
		{Encoding: "UTF-8"},
	}, got)
}

func TestUnmarshal_Errors(t *testing.T) {
	tests := map[string]string{
		"not json":     `{"tabs": [`,
		"missing tabs": `{"windows": []}`,
		"wrong shape":  `{"tabs": {"source_text": "a"}}`,
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Unmarshal([]byte(data))
			require.Error(t, err)
			assert.True(t, utils.IsProjectError(err))
		})
	}
}

func TestUnmarshal_EmptyTabs(t *testing.T) {
	got, err := Unmarshal([]byte(`{"tabs": []}`))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSaveLoad(t *testing.T) {
	fs := memfs.New()
	in := []Snapshot{
		{SourceText: "line 1\nline 2", TargetText: "บรรทัด 1\nline 2", TargetPath: "/w/t.txt", FontSize: 20, Encoding: "UTF-8"},
		{FontSize: 10, Encoding: "UTF-16"},
	}

	require.NoError(t, Save(fs, "work.project", in))
	out, err := Load(fs, "work.project")
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestLoad_Errors(t *testing.T) {
	fs := memfs.New()

	_, err := Load(fs, "missing.project")
	assert.True(t, utils.IsFileSystemError(err))

	require.NoError(t, util.WriteFile(fs, "bad.project", []byte("nope"), 0o644))
	_, err = Load(fs, "bad.project")
	assert.True(t, utils.IsProjectError(err))
}

func TestWithExtension(t *testing.T) {
	assert.Equal(t, "work.project", WithExtension("work"))
	assert.Equal(t, "work.project", WithExtension("work.project"))
	assert.Equal(t, "WORK.PROJECT", WithExtension("WORK.PROJECT"))
	assert.Equal(t, "notes.txt.project", WithExtension("notes.txt"))
}
