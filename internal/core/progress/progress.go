// Package progress estimates how much of a target text has been translated
// into Thai.
package progress

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

const (
	thaiFirst = '\u0E01'
	thaiLast  = '\u0E5B'
)

// IsThai reports whether r is in the Thai block, from KO KAI to KHOMUT.
func IsThai(r rune) bool {
	return r >= thaiFirst && r <= thaiLast
}

// Report is the line count summary behind the progress dialog and the
// progress command.
type Report struct {
	Total        int
	Translated   int
	Untranslated int
	Percent      float64

	// UntranslatedLines holds the 1-based numbers of non-blank lines
	// without Thai text.
	UntranslatedLines []int
}

// Empty reports whether there was no text to analyze.
func (r Report) Empty() bool {
	return r.Total == 0
}

func (r Report) String() string {
	if r.Empty() {
		return "No text to analyze."
	}
	return fmt.Sprintf("Total lines: %d\nTranslated lines: %d\nNon-translated lines: %d\nTranslation Progress: %.2f%%",
		r.Total, r.Translated, r.Untranslated, r.Percent)
}

// Analyze classifies every line of text. A non-blank line is translated
// when any of its words contains a Thai character. Blank lines only count
// toward the total.
func Analyze(text string) Report {
	lines := SplitLines(text)

	report := Report{Total: len(lines)}
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if hasThaiWord(line) {
			report.Translated++
		} else {
			report.Untranslated++
			report.UntranslatedLines = append(report.UntranslatedLines, i+1)
		}
	}

	if report.Total > 0 {
		report.Percent = float64(report.Translated) / float64(report.Total) * 100
	}
	return report
}

func hasThaiWord(line string) bool {
	state := -1
	for line != "" {
		var word string
		word, line, state = uniseg.FirstWordInString(line, state)
		if strings.IndexFunc(word, IsThai) >= 0 {
			return true
		}
	}
	return false
}

// SplitLines splits text at line boundaries the way the editor counts
// lines: "\r\n", "\r", "\n" and the Unicode line and paragraph separators
// all end a line, and a final line ending does not start a new line.
func SplitLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])

		switch r {
		case '\r':
			lines = append(lines, text[start:i])
			if i+1 < len(text) && text[i+1] == '\n' {
				size++
			}
			start = i + size
		case '\n', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
			lines = append(lines, text[start:i])
			start = i + size
		}
		i += size
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}
