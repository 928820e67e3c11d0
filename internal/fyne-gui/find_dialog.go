package fynegui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"transcompare/internal/core/search"
)

const (
	directionForward  = "Forward"
	directionBackward = "Backward"

	modeNormal   = "Normal"
	modeExtended = `Extended (\n, \r, \t, \0, \x...)`
	modeRegex    = "Regular expression"
)

// findDialog is the Find & Replace window. It stays open while the user
// edits and always acts on the current tab's target pane.
type findDialog struct {
	app    *FyneApp
	window fyne.Window

	findEntry    *widget.Entry
	replaceEntry *widget.Entry
	direction    *widget.RadioGroup
	mode         *widget.RadioGroup
	matchCase    *widget.Check
	wholeWord    *widget.Check
	wrapAround   *widget.Check
}

func newFindDialog(f *FyneApp) *findDialog {
	d := &findDialog{app: f}

	d.findEntry = widget.NewEntry()
	d.findEntry.SetPlaceHolder("Find what")
	d.findEntry.OnSubmitted = func(string) { d.findNext() }

	d.replaceEntry = widget.NewEntry()
	d.replaceEntry.SetPlaceHolder("Replace with")

	d.direction = widget.NewRadioGroup([]string{directionForward, directionBackward}, nil)
	d.direction.Horizontal = true
	d.direction.Required = true
	d.direction.SetSelected(directionForward)

	d.mode = widget.NewRadioGroup([]string{modeNormal, modeExtended, modeRegex}, nil)
	d.mode.Required = true
	d.mode.SetSelected(modeNormal)

	d.matchCase = widget.NewCheck("Match case", nil)
	d.wholeWord = widget.NewCheck("Match whole word only", nil)
	d.wrapAround = widget.NewCheck("Wrap around", nil)
	d.wrapAround.SetChecked(f.service.Config().Editor.WrapAround)

	form := widget.NewForm(
		widget.NewFormItem("Find what", d.findEntry),
		widget.NewFormItem("Replace with", d.replaceEntry),
	)
	options := container.NewVBox(
		widget.NewCard("", "Direction", d.direction),
		container.NewHBox(d.matchCase, d.wholeWord, d.wrapAround),
		widget.NewCard("", "Search Mode", d.mode),
	)

	findNext := widget.NewButton("Find Next", d.findNext)
	findNext.Importance = widget.HighImportance
	buttons := container.NewVBox(
		findNext,
		widget.NewButton("Replace", d.replace),
		widget.NewButton("Replace All", d.replaceAll),
		widget.NewButton("Find in Next Tab", d.findInNextTab),
		layout.NewSpacer(),
		widget.NewButton("Close", d.hide),
	)

	d.window = f.app.NewWindow("Find & Replace")
	d.window.SetContent(container.NewPadded(
		container.NewBorder(form, nil, nil, buttons, options),
	))
	d.window.SetCloseIntercept(d.hide)
	d.window.Resize(fyne.NewSize(560, 320))
	return d
}

// show brings the window up with the find field, or the replace field when
// replacing, focused.
func (d *findDialog) show(replacing bool) {
	d.window.Show()
	d.window.RequestFocus()
	if replacing {
		d.window.Canvas().Focus(d.replaceEntry)
		return
	}
	d.window.Canvas().Focus(d.findEntry)
}

func (d *findDialog) hide() {
	d.window.Hide()
}

func (d *findDialog) options() search.Options {
	mode := search.ModeNormal
	switch d.mode.Selected {
	case modeExtended:
		mode = search.ModeExtended
	case modeRegex:
		mode = search.ModeRegex
	}
	return search.Options{
		Query:       d.findEntry.Text,
		Replacement: d.replaceEntry.Text,
		Mode:        mode,
		MatchCase:   d.matchCase.Checked,
		WholeWord:   d.wholeWord.Checked,
		Backward:    d.direction.Selected == directionBackward,
		WrapAround:  d.wrapAround.Checked,
	}
}

// view returns the current tab's view with its caret synced, or nil.
func (d *findDialog) view() *comparisonTab {
	v := d.app.currentView()
	if v != nil {
		v.syncCaret()
	}
	return v
}

func (d *findDialog) findNext() {
	v := d.view()
	if v == nil {
		return
	}
	opts := d.options()
	_, found, err := search.FindNext(v.tab.Target, opts)
	if err != nil {
		d.showError(err)
		return
	}
	if !found {
		dialog.ShowInformation("Find", search.NotFoundMessage(opts), d.window)
		return
	}
	v.showSelection()
}

func (d *findDialog) replace() {
	v := d.view()
	if v == nil {
		return
	}
	opts := d.options()
	replaced, err := search.Replace(v.tab.Target, opts)
	if err != nil {
		d.showError(err)
		return
	}
	if !replaced && !v.tab.Target.Cursor().HasSelection() {
		dialog.ShowInformation("Replace", search.NotFoundMessage(opts), d.window)
		return
	}
	v.showSelection()
}

func (d *findDialog) replaceAll() {
	v := d.view()
	if v == nil {
		return
	}
	opts := d.options()
	n, err := search.ReplaceAll(v.tab.Target, opts)
	if err != nil {
		d.showError(err)
		return
	}
	d.app.logger.WithTab(v.tab.ID).WithOperation("replace_all").Info("Replaced matches", "count", n)
	dialog.ShowInformation("Replace All", search.ReplaceAllMessage(opts, n), d.window)
}

func (d *findDialog) findInNextTab() {
	opts := d.options()
	tab, _, found, err := d.app.service.Workspace().FindInNextTab(opts)
	if err != nil {
		d.showError(err)
		return
	}
	v := d.app.selectTab(tab)
	if !found {
		dialog.ShowInformation("Find", search.NotFoundMessage(opts), d.window)
		return
	}
	if v != nil {
		v.showSelection()
	}
}

func (d *findDialog) showError(err error) {
	d.app.logger.WithError(err).Debug("Search failed")
	dialog.ShowError(err, d.window)
}
