package fynegui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"transcompare/internal/core/charset"
	"transcompare/internal/core/config"
	"transcompare/internal/core/project"
	"transcompare/internal/core/utils"
	"transcompare/internal/core/workspace"
)

const appID = "io.transcompare.editor"

type FyneApp struct {
	app         fyne.App
	window      fyne.Window
	service     *Service
	logger      *utils.Logger
	modernTheme *ModernTheme

	tabs  *container.DocTabs
	views []*comparisonTab // same order as the workspace tabs
	find  *findDialog

	darkToggle  *ToggleSwitch
	statusLabel *widget.Label
	statusIcon  *widget.Icon

	backupErrorShown bool
}

func NewFyneApp(cfg *config.Config, logger *utils.Logger) *FyneApp {
	return newFyneApp(app.NewWithID(appID), cfg, logger)
}

func newFyneApp(fyneApp fyne.App, cfg *config.Config, logger *utils.Logger) *FyneApp {
	if logger == nil {
		logger = utils.NopLogger()
	}
	service := NewService(cfg, logger)

	modernTheme := NewModernTheme(service.Config().GUI.DarkMode)
	fyneApp.Settings().SetTheme(modernTheme)

	window := fyneApp.NewWindow("Translate-Tool")
	window.Resize(fyne.NewSize(1200, 800))
	window.CenterOnScreen()

	f := &FyneApp{
		app:         fyneApp,
		window:      window,
		service:     service,
		logger:      logger,
		modernTheme: modernTheme,
	}
	service.Workspace().OnBackupError = f.backupFailed

	f.setupUI()
	f.newTab()
	return f
}

func (f *FyneApp) Run() {
	f.service.WatchChanges(func(c workspace.Change) {
		fyne.Do(func() { f.externalChange(c) })
	})
	f.window.SetOnClosed(func() {
		if err := f.service.Close(); err != nil {
			f.logger.WithError(err).Warn("Failed to stop file watcher")
		}
	})
	f.window.ShowAndRun()
}

func (f *FyneApp) setupUI() {
	f.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu("File",
			fyne.NewMenuItem("New Tab", f.newTab),
			fyne.NewMenuItem("Close Tab", f.closeCurrentTab),
			fyne.NewMenuItemSeparator(),
			fyne.NewMenuItem("Save Project", f.saveProject),
			fyne.NewMenuItem("Load Project", f.loadProject),
			fyne.NewMenuItemSeparator(),
			fyne.NewMenuItem("Reload Translate File", f.reloadCurrent),
		),
		fyne.NewMenu("Edit",
			fyne.NewMenuItem("Undo", f.undo),
			fyne.NewMenuItem("Redo", f.redo),
			fyne.NewMenuItemSeparator(),
			fyne.NewMenuItem("Find", func() { f.find.show(false) }),
			fyne.NewMenuItem("Replace", func() { f.find.show(true) }),
		),
	))

	shortcut := func(key fyne.KeyName, fn func()) {
		f.window.Canvas().AddShortcut(
			&desktop.CustomShortcut{KeyName: key, Modifier: fyne.KeyModifierShortcutDefault},
			func(fyne.Shortcut) { fn() },
		)
	}
	shortcut(fyne.KeyT, f.newTab)
	shortcut(fyne.KeyW, f.closeCurrentTab)
	shortcut(fyne.KeyF, func() { f.find.show(false) })
	shortcut(fyne.KeyH, func() { f.find.show(true) })

	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.SearchIcon(), func() { f.find.show(false) }),
		widget.NewToolbarAction(theme.SearchReplaceIcon(), func() { f.find.show(true) }),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ContentUndoIcon(), f.undo),
		widget.NewToolbarAction(theme.ContentRedoIcon(), f.redo),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ContentAddIcon(), f.newTab),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), f.saveProject),
		widget.NewToolbarAction(theme.FolderOpenIcon(), f.loadProject),
	)

	f.darkToggle = NewToggleSwitch("Dark Mode", f.setDarkMode)
	f.darkToggle.Checked = f.modernTheme.IsDark()
	header := container.NewBorder(nil, nil, nil,
		container.NewHBox(widget.NewLabel("Dark Mode"), container.NewCenter(f.darkToggle)),
		toolbar,
	)

	f.tabs = container.NewDocTabs()
	f.tabs.CloseIntercept = func(item *container.TabItem) {
		if i := f.viewIndex(item); i >= 0 {
			f.closeTab(i)
		}
	}
	f.tabs.OnSelected = func(item *container.TabItem) {
		if i := f.viewIndex(item); i >= 0 {
			f.service.Workspace().SetCurrent(i)
		}
	}

	f.statusLabel = widget.NewLabel("Ready")
	f.statusIcon = widget.NewIcon(theme.InfoIcon())
	status := container.NewHBox(f.statusIcon, f.statusLabel, layout.NewSpacer())

	f.find = newFindDialog(f)
	f.window.SetContent(container.NewBorder(header, status, nil, nil, f.tabs))
}

func (f *FyneApp) viewIndex(item *container.TabItem) int {
	for i, v := range f.views {
		if v.item == item {
			return i
		}
	}
	return -1
}

func (f *FyneApp) currentView() *comparisonTab {
	i := f.service.Workspace().CurrentIndex()
	if i < 0 || i >= len(f.views) {
		return nil
	}
	return f.views[i]
}

// selectTab shows t and returns its view.
func (f *FyneApp) selectTab(t *workspace.Tab) *comparisonTab {
	i := f.service.Workspace().IndexOf(t)
	if i < 0 || i >= len(f.views) {
		return nil
	}
	f.tabs.Select(f.views[i].item)
	return f.views[i]
}

func (f *FyneApp) addView(t *workspace.Tab) *comparisonTab {
	v := newComparisonTab(f, t)
	f.views = append(f.views, v)
	f.tabs.Append(v.item)
	return v
}

func (f *FyneApp) newTab() {
	t := f.service.Workspace().NewTab()
	v := f.addView(t)
	f.tabs.Select(v.item)
}

func (f *FyneApp) closeTab(i int) {
	ws := f.service.Workspace()
	if err := ws.CloseTab(i); err != nil {
		f.showError(err)
		return
	}
	item := f.views[i].item
	f.views = append(f.views[:i], f.views[i+1:]...)
	f.tabs.Remove(item)

	if v := f.currentView(); v != nil {
		f.tabs.Select(v.item)
	}
}

func (f *FyneApp) closeCurrentTab() {
	if i := f.service.Workspace().CurrentIndex(); i >= 0 {
		f.closeTab(i)
	}
}

func (f *FyneApp) undo() {
	f.service.Workspace().Undo()
}

func (f *FyneApp) redo() {
	f.service.Workspace().Redo()
}

func (f *FyneApp) reloadCurrent() {
	v := f.currentView()
	if v == nil {
		return
	}
	if err := v.tab.Reload(); err != nil {
		f.showError(err)
		return
	}
	f.setStatus(fmt.Sprintf("Reloaded %s", v.tab.TargetPath))
}

func (f *FyneApp) projectFilter() storage.FileFilter {
	return storage.NewExtensionFileFilter([]string{project.Extension})
}

func (f *FyneApp) saveProject() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			f.showError(err)
			return
		}
		if writer == nil {
			return
		}
		chosen := writer.URI().Path()
		writer.Close()

		path := project.WithExtension(chosen)
		if path != chosen {
			// The dialog already created the file without the extension.
			charset.Local.Remove(chosen)
		}
		f.saveProjectTo(path)
	}, f.window)
	d.SetFilter(f.projectFilter())
	d.SetFileName("untitled" + project.Extension)
	d.Show()
}

func (f *FyneApp) saveProjectTo(path string) {
	if err := f.service.Workspace().SaveProject(path); err != nil {
		f.showError(err)
		return
	}
	f.setStatusSuccess(fmt.Sprintf("Project saved to %s", path))
}

func (f *FyneApp) loadProject() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			f.showError(err)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		f.loadProjectFrom(path)
	}, f.window)
	d.SetFilter(f.projectFilter())
	d.Show()
}

// loadProjectFrom replaces every tab with the project's tabs. On failure the
// open tabs stay as they were.
func (f *FyneApp) loadProjectFrom(path string) {
	ws := f.service.Workspace()
	if err := ws.LoadProject(path); err != nil {
		f.showError(err)
		return
	}

	old := f.views
	f.views = nil
	for _, v := range old {
		f.tabs.Remove(v.item)
	}
	for _, t := range ws.Tabs() {
		f.addView(t)
	}
	if v := f.currentView(); v != nil {
		f.tabs.Select(v.item)
	}
	f.setStatusSuccess(fmt.Sprintf("Loaded %d tabs from %s", len(f.views), path))
}

func (f *FyneApp) setDarkMode(dark bool) {
	f.modernTheme.SetDark(dark)
	f.app.Settings().SetTheme(f.modernTheme)
	for _, v := range f.views {
		v.applyTheme()
	}
	f.window.Content().Refresh()

	if err := f.service.SetDarkMode(dark); err != nil {
		f.logger.WithError(err).Warn("Failed to save theme choice")
	}
}

// askEncoding tells the user the detected encoding failed and lets them pick
// another. open runs with the choice; cancelling abandons the open.
func (f *FyneApp) askEncoding(failure *EncodingFailure, open func(encoding string)) {
	choice := widget.NewSelect(charset.Supported(), nil)
	choice.SetSelected(charset.UTF8)

	message := widget.NewLabel(fmt.Sprintf(
		"Unable to open file with detected encoding (%s).\nPlease select manually.", failure.Detected))
	content := container.NewVBox(message, widget.NewForm(widget.NewFormItem("Encoding", choice)))

	d := dialog.NewCustomConfirm("Select Encoding", "Open", "Cancel", content, func(ok bool) {
		if ok && choice.Selected != "" {
			open(choice.Selected)
		}
	}, f.window)
	d.Show()
}

// backupFailed reports a failed backup once; further failures are logged
// until the dialog is dismissed.
func (f *FyneApp) backupFailed(t *workspace.Tab, err error) {
	if f.backupErrorShown {
		return
	}
	f.backupErrorShown = true

	message := widget.NewLabel(fmt.Sprintf(
		"Error saving backup file: %v\nPlease check the encoding of your text.", err))
	message.Wrapping = fyne.TextWrapWord
	d := dialog.NewCustom("Backup Error", "OK", message, f.window)
	d.SetOnClosed(func() { f.backupErrorShown = false })
	d.Resize(fyne.NewSize(420, 160))
	d.Show()
}

func (f *FyneApp) externalChange(c workspace.Change) {
	for _, t := range f.service.ChangedTabs(c.Path) {
		t.AcknowledgeDiskChange()
		msg := fmt.Sprintf("%s changed on disk", t.Title())
		if c.Kind == workspace.Removed {
			msg = fmt.Sprintf("%s was removed from disk", t.Title())
		}
		f.logger.WithTab(t.ID).WithFile(c.Path).Info("Target changed externally", "kind", c.Kind.String())
		showToast(f.window, msg, toastWarning)
	}
}

func (f *FyneApp) showError(err error) {
	f.logger.WithError(err).Warn("Operation failed")
	f.setStatusError(err.Error())
	dialog.NewCustom(utils.Title(err), "OK", widget.NewLabel(err.Error()), f.window).Show()
}

func (f *FyneApp) setStatus(status string) {
	f.logger.Info("Status update", "status", status)
	f.statusLabel.SetText(status)
	f.statusLabel.Importance = widget.MediumImportance
	f.statusIcon.SetResource(theme.InfoIcon())
}

func (f *FyneApp) setStatusSuccess(status string) {
	f.logger.Info("Status update (success)", "status", status)
	f.statusLabel.SetText(status)
	f.statusLabel.Importance = widget.SuccessImportance
	f.statusIcon.SetResource(theme.ConfirmIcon())
	showToast(f.window, status, toastSuccess)
}

func (f *FyneApp) setStatusError(status string) {
	f.statusLabel.SetText(status)
	f.statusLabel.Importance = widget.DangerImportance
	f.statusIcon.SetResource(theme.ErrorIcon())
}
