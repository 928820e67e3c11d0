package search

import (
	"fmt"

	"transcompare/internal/core/textdoc"
)

// FindNext searches doc from its selection and selects the hit.
//
// Without a selection a forward search starts at the top of the document
// and a backward search at the bottom. With one, the search continues past
// it in the chosen direction. WrapAround retries once from the other end.
func FindNext(doc *textdoc.Document, opts Options) (Match, bool, error) {
	m, err := Compile(opts)
	if err != nil {
		return Match{}, false, err
	}

	c := doc.Cursor()
	from := 0
	if opts.Backward {
		from = doc.Len()
	}
	if c.HasSelection() {
		from = c.End()
		if opts.Backward {
			from = c.Start()
		}
	}

	match, ok := m.search(doc.Text(), from, opts.Backward, opts.WrapAround)
	if ok {
		doc.Select(match.Start, match.End)
	}
	return match, ok, nil
}

// Replace replaces the current selection when it is a match, then moves on
// to the next match from the caret. It reports whether a replacement was
// made; the next match, if any, is left selected.
func Replace(doc *textdoc.Document, opts Options) (bool, error) {
	m, err := Compile(opts)
	if err != nil {
		return false, err
	}

	replaced := false
	c := doc.Cursor()
	from := c.Position
	if opts.Backward {
		from = c.Start()
	}
	if c.HasSelection() {
		text := doc.Text()
		if match, ok := m.at(text, c.Start(), c.End()); ok {
			doc.Select(match.Start, match.End)
			doc.InsertText(m.expand(text, match))
			replaced = true
			// Forward continues after the inserted text; backward continues
			// before it so the replacement itself is never matched.
			from = doc.Cursor().Position
			if opts.Backward {
				from = match.Start
			}
		}
	}

	if match, ok := m.search(doc.Text(), from, opts.Backward, opts.WrapAround); ok {
		doc.Select(match.Start, match.End)
	}
	return replaced, nil
}

// ReplaceAll replaces every non-overlapping match as a single undo step and
// returns how many were replaced.
func ReplaceAll(doc *textdoc.Document, opts Options) (int, error) {
	m, err := Compile(opts)
	if err != nil {
		return 0, err
	}

	text := doc.Text()
	matches := m.all(text)
	if len(matches) == 0 {
		return 0, nil
	}

	doc.BeginEditBlock()
	defer doc.EndEditBlock()

	// Back to front so earlier offsets stay valid.
	for i := len(matches) - 1; i >= 0; i-- {
		match := matches[i]
		doc.Replace(match.Start, match.End, m.expand(text, match))
	}
	return len(matches), nil
}

// Count returns how many matches replace-all would touch.
func Count(text string, opts Options) (int, error) {
	m, err := Compile(opts)
	if err != nil {
		return 0, err
	}
	return len(m.all(text)), nil
}

// ReplaceAllMessage is the status text shown after a replace-all.
func ReplaceAllMessage(opts Options, count int) string {
	if count == 0 {
		return fmt.Sprintf("Not found: '%s'", opts.Query)
	}
	return fmt.Sprintf("Replaced '%s' with '%s' %d times", opts.Query, opts.Replacement, count)
}

// NotFoundMessage is the status text shown when FindNext fails.
func NotFoundMessage(opts Options) string {
	return fmt.Sprintf("Cannot find '%s'", opts.Query)
}

func (m *Matcher) search(text string, from int, backward, wrap bool) (Match, bool) {
	if backward {
		if match, ok := m.prev(text, from); ok {
			return match, true
		}
		if wrap && from < len(text) {
			return m.prev(text, len(text))
		}
		return Match{}, false
	}

	if match, ok := m.next(text, from); ok {
		return match, true
	}
	if wrap && from > 0 {
		return m.next(text, 0)
	}
	return Match{}, false
}
