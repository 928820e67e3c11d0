package search

import (
	"strings"
	"unicode/utf8"
)

// StringChange is one match as listed by previews and the find command.
type StringChange struct {
	LineNumber  int
	Column      int
	Original    string
	Replacement string
	Line        string
	Context     string // Line with the change marked as [old -> new]
}

// FindAll lists every match replace-all would touch, for previews and the
// CLI find command. Line numbers and columns are 1-based; columns count
// runes.
func FindAll(text string, opts Options) ([]StringChange, error) {
	m, err := Compile(opts)
	if err != nil {
		return nil, err
	}

	var changes []StringChange
	line, lineStart := 1, 0
	scanned := 0

	for _, match := range m.all(text) {
		for {
			nl := strings.IndexByte(text[scanned:match.Start], '\n')
			if nl < 0 {
				break
			}
			line++
			lineStart = scanned + nl + 1
			scanned = lineStart
		}
		scanned = match.Start

		lineEnd := len(text)
		if nl := strings.IndexByte(text[match.Start:], '\n'); nl >= 0 {
			lineEnd = match.Start + nl
		}
		matchEnd := match.End
		if matchEnd > lineEnd {
			matchEnd = lineEnd
		}

		original := text[match.Start:match.End]
		replacement := m.expand(text, match)
		changes = append(changes, StringChange{
			LineNumber:  line,
			Column:      utf8.RuneCountInString(text[lineStart:match.Start]) + 1,
			Original:    original,
			Replacement: replacement,
			Line:        text[lineStart:lineEnd],
			Context:     text[lineStart:match.Start] + "[" + original + " -> " + replacement + "]" + text[matchEnd:lineEnd],
		})
	}

	return changes, nil
}
