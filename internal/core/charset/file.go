package charset

import (
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"transcompare/internal/core/utils"
)

// Chooser asks the user for an encoding after detection produced one that
// cannot decode the file. It returns false when the user cancels.
type Chooser func(path, detected string, cause error) (string, bool)

// File is a decoded text file and the encoding it will be saved with.
type File struct {
	Path      string
	Text      string
	Encoding  string
	Detection Detection
}

// ReadFile loads path, detecting its encoding. When the detected encoding
// fails and a chooser is given, the file is decoded once more with the
// chosen encoding.
func ReadFile(fs billy.Filesystem, path string, chooser Chooser) (*File, error) {
	raw, err := util.ReadFile(fs, path)
	if err != nil {
		return nil, utils.NewFileSystemError("failed to read file", err).WithContext("path", path)
	}

	det := Detect(raw)
	text, err := Decode(raw, det.Name)
	if err == nil {
		return &File{Path: path, Text: text, Encoding: det.Name, Detection: det}, nil
	}
	if chooser == nil {
		return nil, withPath(err, path)
	}

	chosen, ok := chooser(path, det.Name, err)
	if !ok {
		return nil, withPath(err, path)
	}
	text, err = Decode(raw, chosen)
	if err != nil {
		return nil, utils.NewEncodingError("failed to open file, please check the encoding", err).
			WithContext("path", path).
			WithContext("encoding", chosen)
	}
	name, _ := Normalize(chosen)
	return &File{Path: path, Text: text, Encoding: name, Detection: det}, nil
}

// ReadFileAs loads path with a known encoding, skipping detection.
func ReadFileAs(fs billy.Filesystem, path, encoding string) (*File, error) {
	raw, err := util.ReadFile(fs, path)
	if err != nil {
		return nil, utils.NewFileSystemError("failed to read file", err).WithContext("path", path)
	}
	text, err := Decode(raw, encoding)
	if err != nil {
		return nil, withPath(err, path)
	}
	name, _ := Normalize(encoding)
	return &File{Path: path, Text: text, Encoding: name, Detection: Detect(raw)}, nil
}

// WriteFile encodes text and writes it to path, replacing any existing file.
func WriteFile(fs billy.Filesystem, path, text, encoding string) error {
	data, err := Encode(text, encoding)
	if err != nil {
		return withPath(err, path)
	}
	if err := util.WriteFile(fs, path, data, 0o644); err != nil {
		return utils.NewFileSystemError("failed to write file", err).WithContext("path", path)
	}
	return nil
}

func withPath(err error, path string) error {
	if e, ok := err.(*utils.EditorError); ok {
		return e.WithContext("path", path)
	}
	return err
}
