// Package search implements find, replace and replace-all over a
// textdoc.Document in the three modes of the find/replace dialog.
package search

import (
	"fmt"
	"regexp"
	"unicode"
	"unicode/utf8"

	"transcompare/internal/core/utils"
)

// Mode selects how the query is interpreted.
type Mode int

const (
	ModeNormal Mode = iota
	ModeExtended
	ModeRegex
)

func (m Mode) String() string {
	switch m {
	case ModeExtended:
		return "extended"
	case ModeRegex:
		return "regex"
	default:
		return "normal"
	}
}

// ParseMode accepts the names used on the command line and in the dialog.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "normal":
		return ModeNormal, nil
	case "extended":
		return ModeExtended, nil
	case "regex", "regexp":
		return ModeRegex, nil
	}
	return ModeNormal, utils.NewValidationError(fmt.Sprintf("unknown search mode '%s' (normal, extended, regex)", s), nil)
}

// Options describes one find or replace request as entered in the dialog
// or on the command line.
type Options struct {
	Query       string
	Replacement string
	Mode        Mode
	MatchCase   bool
	WholeWord   bool
	Backward    bool
	WrapAround  bool
}

// Match is a byte range in the searched text. groups holds submatch offsets
// for regex mode.
type Match struct {
	Start  int
	End    int
	groups []int
}

func (m Match) Len() int {
	return m.End - m.Start
}

// Matcher is a compiled query. All three modes run through the same
// regexp; normal and extended queries are quoted first.
type Matcher struct {
	re *regexp.Regexp
	// after matches re past one rune of leading context, so a search
	// starting mid-text still sees what precedes it.
	after       *regexp.Regexp
	regex       bool
	wholeWord   bool
	replacement string
}

// Compile validates opts and builds the matcher used by the find and
// replace operations.
func Compile(opts Options) (*Matcher, error) {
	if opts.Query == "" {
		return nil, utils.NewValidationError("search text is empty", nil)
	}

	query, replacement := opts.Query, opts.Replacement
	if opts.Mode == ModeExtended {
		var err error
		if query, err = Unescape(query); err != nil {
			return nil, err
		}
		if replacement, err = Unescape(replacement); err != nil {
			return nil, err
		}
	}

	pattern := query
	if opts.Mode != ModeRegex {
		pattern = regexp.QuoteMeta(query)
	}
	if !opts.MatchCase {
		pattern = "(?i)" + pattern
	}

	compiled, err := regexp.Compile(pattern)
	if err != nil {
		return nil, utils.NewSearchError(fmt.Sprintf("failed to compile regex pattern '%s'", opts.Query), err)
	}
	after, err := regexp.Compile(`^(?s:.)(?s:.*?)(` + pattern + `)`)
	if err != nil {
		return nil, utils.NewSearchError(fmt.Sprintf("failed to compile regex pattern '%s'", opts.Query), err)
	}

	return &Matcher{
		re:          compiled,
		after:       after,
		regex:       opts.Mode == ModeRegex,
		wholeWord:   opts.WholeWord,
		replacement: replacement,
	}, nil
}

// find returns the submatch offsets of the leftmost match starting at or
// after pos, laid out as re would report them.
func (m *Matcher) find(text string, pos int) []int {
	if pos == 0 {
		return m.re.FindStringSubmatchIndex(text)
	}
	if pos > len(text) {
		return nil
	}
	_, size := utf8.DecodeLastRuneInString(text[:pos])
	ctx := pos - size
	loc := m.after.FindStringSubmatchIndex(text[ctx:])
	if loc == nil {
		return nil
	}
	groups := make([]int, len(loc)-2)
	for i, off := range loc[2:] {
		if off >= 0 {
			off += ctx
		}
		groups[i] = off
	}
	return groups
}

// next returns the first match starting at or after from. Empty matches are
// never returned: selecting nothing is not a find result.
func (m *Matcher) next(text string, from int) (Match, bool) {
	for pos := from; pos <= len(text); {
		loc := m.find(text, pos)
		if loc == nil {
			break
		}
		start, end := loc[0], loc[1]
		if start < end && (!m.wholeWord || isWholeWord(text, start, end)) {
			return Match{Start: start, End: end, groups: loc}, true
		}
		if start >= len(text) {
			break
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		pos = start + size
	}
	return Match{}, false
}

// prev returns the last match that ends at or before before.
func (m *Matcher) prev(text string, before int) (Match, bool) {
	var last Match
	found := false

	for pos := 0; pos < before; {
		match, ok := m.next(text, pos)
		if !ok || match.Start >= before {
			break
		}
		// A match running past before may hide a shorter one starting
		// later, so keep scanning.
		if match.End <= before {
			last, found = match, true
		}
		_, size := utf8.DecodeRuneInString(text[match.Start:])
		pos = match.Start + size
	}
	return last, found
}

// all returns the non-overlapping matches replace-all operates on. It
// applies the same rules as next, so Count, ReplaceAll and FindNext agree.
func (m *Matcher) all(text string) []Match {
	var matches []Match
	for pos := 0; pos < len(text); {
		match, ok := m.next(text, pos)
		if !ok {
			break
		}
		matches = append(matches, match)
		pos = match.End
	}
	return matches
}

// at reports whether [start, end) is itself a match.
func (m *Matcher) at(text string, start, end int) (Match, bool) {
	match, ok := m.next(text, start)
	if !ok || match.Start != start || match.End != end {
		return Match{}, false
	}
	return match, true
}

// expand returns the replacement for match. Regex mode expands $1 and
// ${name} references.
func (m *Matcher) expand(text string, match Match) string {
	if !m.regex || match.groups == nil {
		return m.replacement
	}
	return string(m.re.ExpandString(nil, m.replacement, text, match.groups))
}

func isWholeWord(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if isWordRune(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

// Thai vowel and tone signs are combining marks, so marks count as word
// characters.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}
