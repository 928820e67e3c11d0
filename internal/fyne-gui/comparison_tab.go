package fynegui

import (
	"fmt"
	"slices"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"transcompare/internal/core/charset"
	"transcompare/internal/core/workspace"
)

// comparisonTab is the view of one workspace tab: the read-only source pane
// next to the editable target pane. The documents in the workspace tab are
// the source of truth; the entries mirror them.
type comparisonTab struct {
	app  *FyneApp
	tab  *workspace.Tab
	item *container.TabItem

	source         *widget.Entry
	target         *widget.Entry
	sourceScroll   *container.Scroll
	targetScroll   *container.Scroll
	panes          *container.ThemeOverride
	fontSelect     *widget.Select
	encodingSelect *widget.Select

	// syncing is set while a change is copied between the target entry and
	// its document, so the copy does not echo back.
	syncing bool
	// scrolling is set while one pane's scroll offset is copied to the other.
	scrolling bool

	// Where the target caret was last placed by a search. A caret anywhere
	// else means the user moved it.
	shownRow, shownCol int
}

func newComparisonTab(f *FyneApp, t *workspace.Tab) *comparisonTab {
	c := &comparisonTab{app: f, tab: t, shownRow: -1}

	c.source = widget.NewMultiLineEntry()
	c.source.Wrapping = fyne.TextWrapOff
	c.source.Scroll = container.ScrollNone
	c.source.SetPlaceHolder("Source text")
	c.source.SetText(t.Source.Text())
	c.source.Disable()

	c.target = widget.NewMultiLineEntry()
	c.target.Wrapping = fyne.TextWrapOff
	c.target.Scroll = container.ScrollNone
	c.target.SetPlaceHolder("Translation")
	c.target.SetText(t.Target.Text())
	c.target.OnChanged = c.targetEdited

	t.Source.OnChange(func() {
		c.source.SetText(t.Source.Text())
	})
	t.Target.OnChange(c.targetChanged)

	// The panes scroll in their own containers so the vertical offsets can
	// be kept in step.
	c.sourceScroll = container.NewScroll(c.source)
	c.targetScroll = container.NewScroll(c.target)
	c.sourceScroll.OnScrolled = func(pos fyne.Position) { c.follow(c.targetScroll, pos) }
	c.targetScroll.OnScrolled = func(pos fyne.Position) { c.follow(c.sourceScroll, pos) }

	split := container.NewHSplit(c.sourceScroll, c.targetScroll)
	split.Offset = 0.5
	c.panes = container.NewThemeOverride(split, newTextSizeTheme(f.modernTheme, t.FontSize))

	sizes := make([]string, 0, workspace.MaxFontSize-workspace.MinFontSize+1)
	for _, n := range workspace.FontSizes() {
		sizes = append(sizes, strconv.Itoa(n))
	}
	c.fontSelect = widget.NewSelect(sizes, c.fontSizeSelected)
	c.fontSelect.SetSelected(strconv.Itoa(t.FontSize))

	c.encodingSelect = widget.NewSelect(encodingOptions(t.Encoding), c.encodingSelected)
	c.encodingSelect.SetSelected(t.Encoding)

	openSource := widget.NewButtonWithIcon("Open Source File", theme.FolderOpenIcon(), func() { c.open(SourcePane) })
	openTarget := widget.NewButtonWithIcon("Open Translate File", theme.FolderOpenIcon(), func() { c.open(TargetPane) })
	save := widget.NewButtonWithIcon("Save", theme.DocumentSaveIcon(), c.save)
	save.Importance = widget.HighImportance
	check := widget.NewButtonWithIcon("Check Translation Progress", theme.InfoIcon(), c.showProgress)

	top := container.NewHBox(widget.NewLabel("Font Size:"), c.fontSelect, layout.NewSpacer())
	bottom := container.NewHBox(
		openSource,
		openTarget,
		save,
		check,
		layout.NewSpacer(),
		widget.NewLabel("Encoding:"),
		c.encodingSelect,
	)

	c.item = container.NewTabItemWithIcon(t.Title(), theme.DocumentIcon(),
		container.NewBorder(top, bottom, nil, nil, c.panes))
	return c
}

// encodingOptions lists the selectable encodings plus current when a file
// was detected in one outside the list.
func encodingOptions(current string) []string {
	options := charset.Supported()
	if current != "" && !slices.Contains(options, current) {
		options = append(options, current)
	}
	return options
}

func (c *comparisonTab) targetEdited(text string) {
	if c.syncing {
		return
	}
	c.syncing = true
	defer func() { c.syncing = false }()
	c.tab.Target.Apply(text)
}

func (c *comparisonTab) targetChanged() {
	if c.syncing {
		return
	}
	c.syncing = true
	defer func() { c.syncing = false }()
	c.target.SetText(c.tab.Target.Text())
	c.showSelection()
}

// syncCaret drops the search selection when the user moved the entry's caret
// since the last search, leaving the document caret where the entry's is.
func (c *comparisonTab) syncCaret() {
	if c.target.CursorRow == c.shownRow && c.target.CursorColumn == c.shownCol {
		return
	}
	pos := c.tab.Target.Offset(c.target.CursorRow, c.target.CursorColumn)
	c.tab.Target.Select(pos, pos)
}

// showSelection moves the entry caret to the end of the document selection
// and scrolls both panes to it.
func (c *comparisonTab) showSelection() {
	row, col := c.tab.Target.LineColumn(c.tab.Target.Cursor().End())
	c.target.CursorRow = row
	c.target.CursorColumn = col
	c.shownRow, c.shownCol = row, col
	c.target.Refresh()
	c.scrollToRow(row)
	c.app.window.Canvas().Focus(c.target)
}

// follow gives other the vertical offset pos of the pane that scrolled.
func (c *comparisonTab) follow(other *container.Scroll, pos fyne.Position) {
	if c.scrolling || other.Offset.Y == pos.Y {
		return
	}
	c.scrolling = true
	defer func() { c.scrolling = false }()
	other.Offset.Y = pos.Y
	other.Refresh()
}

// scrollToRow scrolls the target pane the least amount that brings row into
// view. Rows are assumed to be one text line high.
func (c *comparisonTab) scrollToRow(row int) {
	th := c.panes.Theme
	line := fyne.MeasureText("M", th.Size(theme.SizeNameText), fyne.TextStyle{}).Height +
		th.Size(theme.SizeNameLineSpacing)
	top := th.Size(theme.SizeNameInnerPadding) + float32(row)*line
	view := c.targetScroll.Size().Height

	offset := c.targetScroll.Offset.Y
	switch {
	case top < offset:
		offset = top
	case top+line > offset+view:
		offset = top + line - view
	default:
		return
	}
	c.targetScroll.Offset.Y = offset
	c.targetScroll.Refresh()
	c.follow(c.sourceScroll, c.targetScroll.Offset)
}

func (c *comparisonTab) fontSizeSelected(value string) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return
	}
	if err := c.tab.SetFontSize(n); err != nil {
		c.app.showError(err)
		return
	}
	c.applyTheme()
}

// applyTheme rebuilds the pane theme from the tab's font size and the
// current application palette.
func (c *comparisonTab) applyTheme() {
	c.panes.Theme = newTextSizeTheme(c.app.modernTheme, c.tab.FontSize)
	c.panes.Refresh()
}

func (c *comparisonTab) encodingSelected(name string) {
	if name == c.tab.Encoding {
		return
	}
	if err := c.tab.SetEncoding(name); err != nil {
		c.app.showError(err)
		return
	}
	c.app.logger.WithTab(c.tab.ID).Debug("Encoding selected", "encoding", c.tab.Encoding)
}

// refresh copies the tab's title and settings into the widgets after the
// tab changed outside of them.
func (c *comparisonTab) refresh() {
	c.item.Text = c.tab.Title()
	c.app.tabs.Refresh()

	c.encodingSelect.Options = encodingOptions(c.tab.Encoding)
	c.encodingSelect.SetSelected(c.tab.Encoding)
	c.fontSelect.SetSelected(strconv.Itoa(c.tab.FontSize))
	c.applyTheme()
}

func (c *comparisonTab) open(pane Pane) {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			c.app.showError(err)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		c.openPath(pane, path)
	}, c.app.window)
	d.Show()
}

func (c *comparisonTab) openPath(pane Pane, path string) {
	failure, err := c.app.service.Open(c.tab, pane, path)
	if err != nil {
		c.app.showError(err)
		return
	}
	if failure != nil {
		c.app.askEncoding(failure, func(encoding string) {
			if err := c.app.service.OpenWith(c.tab, pane, path, encoding); err != nil {
				c.app.showError(err)
				return
			}
			c.opened(pane, path)
		})
		return
	}
	c.opened(pane, path)
}

func (c *comparisonTab) opened(pane Pane, path string) {
	c.refresh()
	c.app.setStatus(fmt.Sprintf("Opened %s file %s", pane, path))
}

func (c *comparisonTab) save() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			c.app.showError(err)
			return
		}
		if writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		if err := c.tab.Save(path, c.encodingSelect.Selected); err != nil {
			c.app.showError(err)
			return
		}
		c.refresh()
		c.app.setStatus(fmt.Sprintf("Saved %s (%s)", path, c.tab.Encoding))
	}, c.app.window)
	if c.tab.TargetPath != "" {
		d.SetFileName(c.tab.Title())
	}
	d.Show()
}

func (c *comparisonTab) showProgress() {
	report := c.tab.Progress()
	if report.Empty() {
		dialog.ShowInformation("Translation Progress", report.String(), c.app.window)
		return
	}

	meter := NewProgressMeter()
	meter.SetPercent(report.Percent)
	content := container.NewVBox(widget.NewLabel(report.String()), meter)
	dialog.ShowCustom("Translation Progress", "OK", content, c.app.window)

	c.app.logger.WithTab(c.tab.ID).WithOperation("progress").Info("Translation progress",
		"total", report.Total, "translated", report.Translated, "percent", report.Percent)
}
