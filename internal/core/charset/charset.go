// Package charset detects, decodes and encodes the text files shown in the
// comparison panes.
package charset

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"

	"transcompare/internal/core/utils"
)

// Canonical encoding names. UTF8SIG, UTF16 and UTF16BEBOM write a
// byte-order mark; the other UTF-16 variants do not.
const (
	UTF8        = "UTF-8"
	UTF8SIG     = "UTF-8-SIG"
	UTF16       = "UTF-16"
	UTF16LE     = "UTF-16LE"
	UTF16BE     = "UTF-16BE"
	UTF16BEBOM  = "UTF-16BE-BOM"
	TIS620      = "TIS-620"
	Latin1      = "ISO-8859-1"
	Windows1252 = "windows-1252"
)

// minThaiRun is how many consecutive Thai-range bytes it takes before a
// file that is not UTF-8 is taken for TIS-620. Thai words are several
// characters long; a stray accented Latin letter is one.
const minThaiRun = 3

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

var aliases = map[string]string{
	"utf8":         UTF8,
	"utf-8":        UTF8,
	"utf-8-sig":    UTF8SIG,
	"utf8-sig":     UTF8SIG,
	"utf-16":       UTF16,
	"utf16":        UTF16,
	"utf-16le":     UTF16LE,
	"utf-16-le":    UTF16LE,
	"utf16le":      UTF16LE,
	"utf-16be":     UTF16BE,
	"utf-16-be":    UTF16BE,
	"utf16be":      UTF16BE,
	"utf-16be-bom": UTF16BEBOM,
	"utf16be-bom":  UTF16BEBOM,
	"tis-620":      TIS620,
	"tis620":       TIS620,
	"cp874":        TIS620,
	"windows-874":  TIS620,
	"iso-8859-11":  TIS620,
	"iso-8859-1":   Latin1,
	"latin1":       Latin1,
	"latin-1":      Latin1,
	"windows-1252": Windows1252,
	"cp1252":       Windows1252,
}

// Supported lists the encodings offered in the encoding selector.
func Supported() []string {
	return []string{UTF8, UTF8SIG, UTF16, UTF16LE, UTF16BE, UTF16BEBOM, TIS620, Latin1, Windows1252}
}

// Normalize maps a user or detector supplied label to its canonical name.
// Labels outside the built-in table are resolved through the WHATWG index.
func Normalize(name string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(strings.ReplaceAll(name, "_", "-")))
	if canonical, ok := aliases[key]; ok {
		return canonical, nil
	}
	if enc, err := htmlindex.Get(key); err == nil {
		if canonical, err := htmlindex.Name(enc); err == nil {
			return canonical, nil
		}
	}
	return "", utils.NewValidationError(fmt.Sprintf("unsupported encoding '%s'", name), nil)
}

func lookup(name string) (encoding.Encoding, error) {
	switch name {
	case UTF8, UTF8SIG:
		return unicode.UTF8, nil
	case UTF16:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), nil
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), nil
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), nil
	case UTF16BEBOM:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM), nil
	case TIS620:
		return charmap.Windows874, nil
	case Latin1:
		return charmap.ISO8859_1, nil
	case Windows1252:
		return charmap.Windows1252, nil
	}
	return htmlindex.Get(name)
}

// Decode converts raw bytes to text. It never substitutes replacement
// characters: data that is not valid in the named encoding is an error.
func Decode(raw []byte, name string) (string, error) {
	canonical, err := Normalize(name)
	if err != nil {
		return "", err
	}

	switch canonical {
	case UTF8, UTF8SIG:
		raw = bytes.TrimPrefix(raw, bomUTF8)
		if !utf8.Valid(raw) {
			return "", decodeError(canonical, fmt.Errorf("invalid UTF-8 sequence at byte %d", invalidUTF8At(raw)))
		}
		return string(raw), nil

	case UTF16, UTF16LE, UTF16BE, UTF16BEBOM:
		if len(raw)%2 != 0 {
			return "", decodeError(canonical, fmt.Errorf("odd number of bytes (%d)", len(raw)))
		}
		if canonical == UTF16LE {
			raw = bytes.TrimPrefix(raw, bomUTF16LE)
		} else if canonical == UTF16BE {
			raw = bytes.TrimPrefix(raw, bomUTF16BE)
		}
	}

	enc, err := lookup(canonical)
	if err != nil {
		return "", decodeError(canonical, err)
	}
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", decodeError(canonical, err)
	}

	// x/text substitutes U+FFFD for undecodable input; treat that as failure
	// unless the input itself carried replacement characters.
	if n := bytes.Count(out, []byte(string(utf8.RuneError))); n > 0 && n != countEncodedReplacements(raw, canonical) {
		return "", decodeError(canonical, fmt.Errorf("data is not valid %s", canonical))
	}
	return string(out), nil
}

// Encode converts text for writing. Runes the encoding cannot represent are
// an error, not silently replaced.
func Encode(text, name string) ([]byte, error) {
	canonical, err := Normalize(name)
	if err != nil {
		return nil, err
	}

	switch canonical {
	case UTF8:
		return []byte(text), nil
	case UTF8SIG:
		return append(append([]byte{}, bomUTF8...), text...), nil
	}

	enc, err := lookup(canonical)
	if err != nil {
		return nil, encodeError(canonical, err)
	}
	out, err := enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, encodeError(canonical, err).WithContext("character", firstUnencodable(enc, text))
	}
	return out, nil
}

func decodeError(name string, cause error) *utils.EditorError {
	return utils.NewEncodingError(fmt.Sprintf("unable to decode file as %s", name), cause).
		WithContext("encoding", name)
}

func encodeError(name string, cause error) *utils.EditorError {
	return utils.NewEncodingError(fmt.Sprintf("text cannot be encoded as %s", name), cause).
		WithContext("encoding", name)
}

func invalidUTF8At(raw []byte) int {
	for i := 0; i < len(raw); {
		r, size := utf8.DecodeRune(raw[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(raw)
}

func countEncodedReplacements(raw []byte, name string) int {
	switch name {
	case UTF16, UTF16LE:
		return countUnits(raw, 0xFD, 0xFF)
	case UTF16BE, UTF16BEBOM:
		return countUnits(raw, 0xFF, 0xFD)
	}
	return bytes.Count(raw, []byte(string(utf8.RuneError)))
}

func countUnits(raw []byte, lo, hi byte) int {
	n := 0
	for i := 0; i+1 < len(raw); i += 2 {
		if raw[i] == lo && raw[i+1] == hi {
			n++
		}
	}
	return n
}

func firstUnencodable(enc encoding.Encoding, text string) string {
	for _, r := range text {
		if _, err := enc.NewEncoder().String(string(r)); err != nil {
			return fmt.Sprintf("%q (U+%04X)", r, r)
		}
	}
	return ""
}

// Detection is the outcome of sniffing a file's encoding.
type Detection struct {
	Name       string
	Confidence int
	BOM        bool
}

// Detect guesses the encoding of raw: byte-order marks first, then UTF-8
// validity, then the statistical detector. Undetectable input reports UTF-8
// with zero confidence so decoding fails loudly and the caller can ask.
func Detect(raw []byte) Detection {
	switch {
	case bytes.HasPrefix(raw, bomUTF8):
		return Detection{Name: UTF8SIG, Confidence: 100, BOM: true}
	case bytes.HasPrefix(raw, bomUTF16LE):
		return Detection{Name: UTF16, Confidence: 100, BOM: true}
	case bytes.HasPrefix(raw, bomUTF16BE):
		return Detection{Name: UTF16BEBOM, Confidence: 100, BOM: true}
	case len(raw) == 0 || utf8.Valid(raw):
		return Detection{Name: UTF8, Confidence: 100}
	}

	if looksLikeTIS620(raw) {
		return Detection{Name: TIS620, Confidence: 80}
	}

	result, err := chardet.NewTextDetector().DetectBest(raw)
	if err == nil && result != nil {
		if name, err := Normalize(result.Charset); err == nil {
			return Detection{Name: name, Confidence: result.Confidence}
		}
	}
	return Detection{Name: UTF8}
}

// looksLikeTIS620 recognizes legacy Thai text, which the statistical
// detector has no model for. Every high byte must fall in the TIS-620 Thai
// range and at least one run of minThaiRun of them must occur; plenty of
// ASCII around the Thai is fine.
func looksLikeTIS620(raw []byte) bool {
	run, longest := 0, 0
	for _, b := range raw {
		if b < 0x80 {
			run = 0
			continue
		}
		if b < 0xA1 || (b > 0xDA && b < 0xDF) || b > 0xFB {
			return false
		}
		run++
		if run > longest {
			longest = run
		}
	}
	return longest >= minThaiRun
}
