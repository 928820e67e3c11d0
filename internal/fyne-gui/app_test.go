package fynegui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"transcompare/internal/core/config"
	"transcompare/internal/core/utils"
	"transcompare/internal/core/workspace"
)

func createTestApp(t *testing.T) *FyneApp {
	t.Helper()

	cfg := config.Default()
	cfg.GUI.WatchFiles = false
	cfg.Backup.Dir = filepath.Join(t.TempDir(), "Backup")

	return newFyneApp(test.NewApp(), cfg, utils.NopLogger())
}

func writeTestFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

func TestNewFyneApp_StartsWithOneTab(t *testing.T) {
	app := createTestApp(t)

	if len(app.views) != 1 {
		t.Fatalf("Expected 1 view, got %d", len(app.views))
	}
	if len(app.tabs.Items) != 1 {
		t.Fatalf("Expected 1 tab item, got %d", len(app.tabs.Items))
	}
	if app.tabs.Items[0].Text != workspace.UntitledTab {
		t.Errorf("Expected tab title %q, got %q", workspace.UntitledTab, app.tabs.Items[0].Text)
	}
	if app.currentView() != app.views[0] {
		t.Error("The first tab should be current")
	}
}

func TestFyneApp_NewAndCloseTabs(t *testing.T) {
	app := createTestApp(t)
	ws := app.service.Workspace()

	app.newTab()
	app.newTab()

	if ws.Len() != 3 || len(app.views) != 3 || len(app.tabs.Items) != 3 {
		t.Fatalf("Expected 3 tabs everywhere, got workspace=%d views=%d items=%d",
			ws.Len(), len(app.views), len(app.tabs.Items))
	}
	if ws.CurrentIndex() != 2 {
		t.Errorf("Expected the new tab to be current, got index %d", ws.CurrentIndex())
	}

	second := app.views[1]
	app.closeTab(1)

	if len(app.views) != 2 || len(app.tabs.Items) != 2 {
		t.Fatalf("Expected 2 tabs after closing, got views=%d items=%d", len(app.views), len(app.tabs.Items))
	}
	for _, v := range app.views {
		if v == second {
			t.Error("Closed view is still listed")
		}
	}

	app.closeCurrentTab()
	app.closeCurrentTab()
	if ws.Len() != 0 || len(app.tabs.Items) != 0 {
		t.Errorf("Expected no tabs, got workspace=%d items=%d", ws.Len(), len(app.tabs.Items))
	}

	// Closing with nothing open is a no-op.
	app.closeCurrentTab()
	if app.currentView() != nil {
		t.Error("Expected no current view")
	}
}

func TestFyneApp_SelectingTabMakesItCurrent(t *testing.T) {
	app := createTestApp(t)
	app.newTab()

	app.tabs.Select(app.views[0].item)

	if got := app.service.Workspace().CurrentIndex(); got != 0 {
		t.Errorf("Expected current index 0, got %d", got)
	}
}

func TestFyneApp_UndoRedo(t *testing.T) {
	app := createTestApp(t)
	v := app.currentView()

	v.target.SetText("one")
	v.target.SetText("one two")

	app.undo()
	if v.target.Text != "one" {
		t.Errorf("Expected 'one' after undo, got %q", v.target.Text)
	}

	app.redo()
	if v.target.Text != "one two" {
		t.Errorf("Expected 'one two' after redo, got %q", v.target.Text)
	}
}

func TestFyneApp_SaveAndLoadProject(t *testing.T) {
	app := createTestApp(t)

	app.currentView().target.SetText("สวัสดี")
	app.newTab()
	app.currentView().target.SetText("second")

	path := filepath.Join(t.TempDir(), "book.project")
	app.saveProjectTo(path)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Project file not written: %v", err)
	}

	app.newTab()
	app.loadProjectFrom(path)

	if len(app.views) != 2 || len(app.tabs.Items) != 2 {
		t.Fatalf("Expected 2 tabs after load, got views=%d items=%d", len(app.views), len(app.tabs.Items))
	}
	if got := app.views[0].target.Text; got != "สวัสดี" {
		t.Errorf("Expected first tab text 'สวัสดี', got %q", got)
	}
	if got := app.views[1].target.Text; got != "second" {
		t.Errorf("Expected second tab text 'second', got %q", got)
	}
	if app.currentView() != app.views[0] {
		t.Error("The first loaded tab should be current")
	}
}

func TestFyneApp_LoadProjectFailureKeepsTabs(t *testing.T) {
	app := createTestApp(t)
	app.newTab()
	app.currentView().target.SetText("keep me")

	app.loadProjectFrom(writeTestFile(t, "broken.project", []byte("{not json")))

	if len(app.views) != 2 {
		t.Fatalf("Expected the 2 open tabs to survive, got %d", len(app.views))
	}
	if app.views[1].target.Text != "keep me" {
		t.Errorf("Tab text changed after failed load: %q", app.views[1].target.Text)
	}
	if app.statusLabel.Importance != widget.DangerImportance {
		t.Error("Failed load should set an error status")
	}
}

func TestFyneApp_SetDarkMode(t *testing.T) {
	app := createTestApp(t)
	before := app.modernTheme.Color(theme.ColorNameBackground, theme.VariantLight)

	app.setDarkMode(!app.modernTheme.IsDark())

	after := app.modernTheme.Color(theme.ColorNameBackground, theme.VariantLight)
	if before == after {
		t.Error("Background color should change with dark mode")
	}
	if app.service.Config().GUI.DarkMode != app.modernTheme.IsDark() {
		t.Error("Dark mode choice should be recorded in the configuration")
	}
}

func TestFyneApp_BackupFailureShownOnce(t *testing.T) {
	app := createTestApp(t)
	tab := app.currentView().tab
	overlays := len(app.window.Canvas().Overlays().List())

	app.backupFailed(tab, utils.NewEncodingError("cannot encode", nil))
	app.backupFailed(tab, utils.NewEncodingError("cannot encode", nil))

	if !app.backupErrorShown {
		t.Error("Expected backup error to be marked as shown")
	}
	if got := len(app.window.Canvas().Overlays().List()); got != overlays+1 {
		t.Errorf("Expected one backup dialog, got %d new overlays", got-overlays)
	}
}

func TestFyneApp_ExternalChange(t *testing.T) {
	app := createTestApp(t)
	v := app.currentView()
	path := writeTestFile(t, "chapter.txt", []byte("v1"))
	v.openPath(TargetPane, path)

	later := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatalf("Chtimes failed: %v", err)
	}
	overlays := len(app.window.Canvas().Overlays().List())

	app.externalChange(workspace.Change{Path: path, Kind: workspace.Modified})

	if got := len(app.window.Canvas().Overlays().List()); got != overlays+1 {
		t.Errorf("Expected a toast for the changed file, got %d new overlays", got-overlays)
	}
	if v.tab.ChangedOnDisk() {
		t.Error("Change should be acknowledged after the toast")
	}

	// The same change reported again is not shown twice.
	app.externalChange(workspace.Change{Path: path, Kind: workspace.Modified})
	if got := len(app.window.Canvas().Overlays().List()); got != overlays+1 {
		t.Errorf("Expected no second toast, got %d new overlays", got-overlays)
	}
}
