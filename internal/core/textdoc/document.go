// Package textdoc is the plain-text document model behind both panes of a
// comparison tab: text, a selection cursor and an undo history.
//
// Offsets are byte offsets into the UTF-8 text and always sit on rune
// boundaries.
package textdoc

import (
	"strings"
	"unicode/utf8"
)

// Cursor is a selection. Position is where the caret is; Anchor is the other
// end of the selection and equals Position when nothing is selected.
type Cursor struct {
	Anchor   int
	Position int
}

// HasSelection reports whether the cursor spans any text.
func (c Cursor) HasSelection() bool {
	return c.Anchor != c.Position
}

// Start is the lower end of the selection.
func (c Cursor) Start() int {
	if c.Anchor < c.Position {
		return c.Anchor
	}
	return c.Position
}

// End is the upper end of the selection.
func (c Cursor) End() int {
	if c.Anchor > c.Position {
		return c.Anchor
	}
	return c.Position
}

type edit struct {
	start    int
	removed  string
	inserted string
	before   Cursor
	after    Cursor
}

// Document holds the text of one pane. It is not safe for concurrent use;
// the GUI touches it from the event goroutine only.
type Document struct {
	text   string
	cursor Cursor

	undo [][]edit
	redo [][]edit

	block   []edit
	depth   int
	pending bool

	listeners []func()
}

// New returns a document holding text with an empty history.
func New(text string) *Document {
	return &Document{text: text}
}

// Text returns the whole content.
func (d *Document) Text() string {
	return d.text
}

// Len is the content length in bytes.
func (d *Document) Len() int {
	return len(d.text)
}

// SetText replaces the whole content. Like loading a file, it is not an
// undoable edit: history is cleared and the cursor goes to the start.
func (d *Document) SetText(text string) {
	d.text = text
	d.cursor = Cursor{}
	d.undo = nil
	d.redo = nil
	d.block = nil
	d.notify()
}

// Apply makes text the new content as one undoable edit covering only the
// span that differs. Used when an input widget reports its full text after
// the user typed.
func (d *Document) Apply(text string) {
	if text == d.text {
		return
	}
	prefix := 0
	for prefix < len(text) && prefix < len(d.text) && text[prefix] == d.text[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(text)-prefix && suffix < len(d.text)-prefix &&
		text[len(text)-1-suffix] == d.text[len(d.text)-1-suffix] {
		suffix++
	}
	for prefix > 0 && prefix < len(d.text) && !utf8.RuneStart(d.text[prefix]) {
		prefix--
	}
	for suffix > 0 && !utf8.RuneStart(d.text[len(d.text)-suffix]) {
		suffix--
	}
	d.Replace(prefix, len(d.text)-suffix, text[prefix:len(text)-suffix])
}

// Cursor returns the current selection.
func (d *Document) Cursor() Cursor {
	return d.cursor
}

// SetCursor moves the selection, clamping both ends into the text.
func (d *Document) SetCursor(c Cursor) {
	d.cursor = Cursor{Anchor: d.clamp(c.Anchor), Position: d.clamp(c.Position)}
}

// Select selects [start, end) with the caret at end.
func (d *Document) Select(start, end int) {
	d.SetCursor(Cursor{Anchor: start, Position: end})
}

// MoveToStart clears the selection and puts the caret at offset 0.
func (d *Document) MoveToStart() {
	d.cursor = Cursor{}
}

func (d *Document) MoveToEnd() {
	d.cursor = Cursor{Anchor: len(d.text), Position: len(d.text)}
}

// SelectedText returns the text under the selection.
func (d *Document) SelectedText() string {
	return d.text[d.cursor.Start():d.cursor.End()]
}

// Replace swaps text[start:end] for s and leaves the caret after the
// inserted text.
func (d *Document) Replace(start, end int, s string) {
	start, end = d.clamp(start), d.clamp(end)
	if start > end {
		start, end = end, start
	}
	if start == end && s == "" {
		return
	}

	e := edit{
		start:    start,
		removed:  d.text[start:end],
		inserted: s,
		before:   d.cursor,
	}
	d.text = d.text[:start] + s + d.text[end:]
	caret := start + len(s)
	d.cursor = Cursor{Anchor: caret, Position: caret}
	e.after = d.cursor

	d.record(e)
}

// InsertText replaces the selection, or inserts at the caret.
func (d *Document) InsertText(s string) {
	d.Replace(d.cursor.Start(), d.cursor.End(), s)
}

// RemoveSelectedText deletes the selection as one undoable edit.
func (d *Document) RemoveSelectedText() {
	if !d.cursor.HasSelection() {
		return
	}
	d.Replace(d.cursor.Start(), d.cursor.End(), "")
}

// BeginEditBlock groups the following edits into a single undo step and a
// single change notification. Blocks nest.
func (d *Document) BeginEditBlock() {
	d.depth++
}

func (d *Document) EndEditBlock() {
	if d.depth == 0 {
		return
	}
	d.depth--
	if d.depth > 0 {
		return
	}
	if len(d.block) > 0 {
		d.undo = append(d.undo, d.block)
		d.block = nil
	}
	if d.pending {
		d.pending = false
		d.notify()
	}
}

func (d *Document) CanUndo() bool {
	return len(d.undo) > 0
}

func (d *Document) CanRedo() bool {
	return len(d.redo) > 0
}

// Undo reverts the last edit or edit block. It reports false when the
// history is empty.
func (d *Document) Undo() bool {
	if len(d.undo) == 0 || d.depth > 0 {
		return false
	}
	step := d.undo[len(d.undo)-1]
	d.undo = d.undo[:len(d.undo)-1]

	for i := len(step) - 1; i >= 0; i-- {
		e := step[i]
		d.text = d.text[:e.start] + e.removed + d.text[e.start+len(e.inserted):]
	}
	d.cursor = step[0].before
	d.redo = append(d.redo, step)
	d.notify()
	return true
}

func (d *Document) Redo() bool {
	if len(d.redo) == 0 || d.depth > 0 {
		return false
	}
	step := d.redo[len(d.redo)-1]
	d.redo = d.redo[:len(d.redo)-1]

	for _, e := range step {
		d.text = d.text[:e.start] + e.inserted + d.text[e.start+len(e.removed):]
	}
	d.cursor = step[len(step)-1].after
	d.undo = append(d.undo, step)
	d.notify()
	return true
}

// OnChange registers fn to run after every content change.
func (d *Document) OnChange(fn func()) {
	d.listeners = append(d.listeners, fn)
}

// LineColumn converts an offset to a 0-based line and a rune column.
func (d *Document) LineColumn(pos int) (line, col int) {
	pos = d.clamp(pos)
	head := d.text[:pos]
	line = strings.Count(head, "\n")
	lineStart := strings.LastIndexByte(head, '\n') + 1
	return line, utf8.RuneCountInString(head[lineStart:])
}

// Offset is the inverse of LineColumn. Out-of-range values clamp to the end
// of the line or of the document.
func (d *Document) Offset(line, col int) int {
	pos := 0
	for i := 0; i < line; i++ {
		nl := strings.IndexByte(d.text[pos:], '\n')
		if nl < 0 {
			return len(d.text)
		}
		pos += nl + 1
	}
	for i := 0; i < col && pos < len(d.text); i++ {
		if d.text[pos] == '\n' {
			break
		}
		_, size := utf8.DecodeRuneInString(d.text[pos:])
		pos += size
	}
	return pos
}

func (d *Document) record(e edit) {
	d.redo = nil
	if d.depth > 0 {
		d.block = append(d.block, e)
		d.pending = true
		return
	}
	d.undo = append(d.undo, []edit{e})
	d.notify()
}

func (d *Document) notify() {
	for _, fn := range d.listeners {
		fn()
	}
}

func (d *Document) clamp(pos int) int {
	if pos < 0 {
		return 0
	}
	if pos > len(d.text) {
		return len(d.text)
	}
	for pos > 0 && pos < len(d.text) && !utf8.RuneStart(d.text[pos]) {
		pos--
	}
	return pos
}
