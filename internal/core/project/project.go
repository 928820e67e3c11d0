// Package project saves and restores the set of open comparison tabs.
//
// A project file is a JSON object with a single "tabs" array. Each entry
// stores both pane texts, so a project reopens without the original files.
package project

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"transcompare/internal/core/utils"
)

const (
	Extension       = ".project"
	DefaultEncoding = "UTF-8"
)

// Snapshot is one tab as stored in a project file. A FontSize of 0 means the
// file did not carry a usable size.
type Snapshot struct {
	SourceText string
	TargetText string
	TargetPath string
	FontSize   int
	Encoding   string
}

type file struct {
	Tabs []tab `json:"tabs"`
}

type tab struct {
	SourceText string   `json:"source_text"`
	TargetText string   `json:"target_text"`
	TargetPath *string  `json:"file2_path"`
	FontSize   fontSize `json:"font_size"`
	Encoding   *string  `json:"encoding,omitempty"`
}

// fontSize is written as a string, the way the size selector reports it,
// and read from either a string or a number.
type fontSize int

func (f fontSize) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.Itoa(int(f)))
}

func (f *fontSize) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*f = fontSize(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		n, _ = strconv.Atoi(strings.TrimSpace(s))
		*f = fontSize(n)
		return nil
	}
	*f = 0
	return nil
}

// WithExtension appends the project extension unless path already has it.
func WithExtension(path string) string {
	if strings.EqualFold(filepath.Ext(path), Extension) {
		return path
	}
	return path + Extension
}

// Marshal renders snapshots in the project file format, indented with four
// spaces.
func Marshal(snapshots []Snapshot) ([]byte, error) {
	out := file{Tabs: make([]tab, 0, len(snapshots))}
	for _, s := range snapshots {
		t := tab{
			SourceText: s.SourceText,
			TargetText: s.TargetText,
			FontSize:   fontSize(s.FontSize),
		}
		if s.TargetPath != "" {
			path := s.TargetPath
			t.TargetPath = &path
		}
		encoding := s.Encoding
		if encoding == "" {
			encoding = DefaultEncoding
		}
		t.Encoding = &encoding
		out.Tabs = append(out.Tabs, t)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(out); err != nil {
		return nil, utils.NewProjectError("failed to encode project", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal parses a project file. Tabs without an encoding default to
// UTF-8 and a null target path becomes "".
func Unmarshal(data []byte) ([]Snapshot, error) {
	var in struct {
		Tabs *[]tab `json:"tabs"`
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, utils.NewProjectError("malformed project file", err)
	}
	if in.Tabs == nil {
		return nil, utils.NewProjectError("malformed project file: missing \"tabs\"", nil)
	}

	snapshots := make([]Snapshot, 0, len(*in.Tabs))
	for _, t := range *in.Tabs {
		s := Snapshot{
			SourceText: t.SourceText,
			TargetText: t.TargetText,
			FontSize:   int(t.FontSize),
			Encoding:   DefaultEncoding,
		}
		if t.TargetPath != nil {
			s.TargetPath = *t.TargetPath
		}
		if t.Encoding != nil && *t.Encoding != "" {
			s.Encoding = *t.Encoding
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, nil
}

func Save(fs billy.Filesystem, path string, snapshots []Snapshot) error {
	data, err := Marshal(snapshots)
	if err != nil {
		return err
	}
	if err := util.WriteFile(fs, path, data, 0o644); err != nil {
		return utils.NewFileSystemError("failed to write project file", err).WithContext("path", path)
	}
	return nil
}

func Load(fs billy.Filesystem, path string) ([]Snapshot, error) {
	data, err := util.ReadFile(fs, path)
	if err != nil {
		return nil, utils.NewFileSystemError("failed to read project file", err).WithContext("path", path)
	}
	snapshots, err := Unmarshal(data)
	if err != nil {
		if e, ok := err.(*utils.EditorError); ok {
			return nil, e.WithContext("path", path)
		}
		return nil, err
	}
	return snapshots, nil
}
