package fynegui

import (
	"image/color"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"transcompare/internal/core/workspace"
)

func TestTextSizeTheme_EveryFontSize(t *testing.T) {
	base := NewModernTheme(false)

	for _, n := range workspace.FontSizes() {
		sized := newTextSizeTheme(base, n)
		if got := sized.Size(theme.SizeNameText); got != float32(n) {
			t.Errorf("Font size %d: expected text size %d, got %v", n, n, got)
		}
		if got := sized.Size(theme.SizeNamePadding); got != base.Size(theme.SizeNamePadding) {
			t.Errorf("Font size %d: padding should come from the app theme, got %v", n, got)
		}
	}
}

func TestTextSizeTheme_FollowsDarkMode(t *testing.T) {
	base := NewModernTheme(false)
	sized := newTextSizeTheme(base, 18)
	light := sized.Color(theme.ColorNameInputBackground, theme.VariantLight)

	base.SetDark(true)

	dark := sized.Color(theme.ColorNameInputBackground, theme.VariantLight)
	if light == dark {
		t.Error("Pane colors should change with the app palette")
	}
	if dark != base.Color(theme.ColorNameInputBackground, theme.VariantDark) {
		t.Errorf("Pane colors should match the app palette, got %v", dark)
	}
	if got := sized.Size(theme.SizeNameText); got != 18 {
		t.Errorf("Switching palettes should keep the text size, got %v", got)
	}
}

func TestComparisonTab_FontSizeOnlyAffectsItsPanes(t *testing.T) {
	app := createTestApp(t)
	first := app.currentView()
	app.newTab()
	second := app.currentView()

	first.fontSelect.SetSelected("30")

	if got := first.panes.Theme.Size(theme.SizeNameText); got != 30 {
		t.Errorf("Expected first tab text size 30, got %v", got)
	}
	if got := second.panes.Theme.Size(theme.SizeNameText); got != float32(second.tab.FontSize) {
		t.Errorf("Second tab should keep its own size %d, got %v", second.tab.FontSize, got)
	}
	if got := app.modernTheme.Size(theme.SizeNameText); got != 14 {
		t.Errorf("App text size should stay 14, got %v", got)
	}
}

func TestModernTheme_StatusColors(t *testing.T) {
	tests := []struct {
		name      string
		isDark    bool
		colorName fyne.ThemeColorName
		expected  color.Color
	}{
		{"dark success", true, theme.ColorNameSuccess, color.RGBA{80, 250, 123, 255}},
		{"dark warning", true, theme.ColorNameWarning, color.RGBA{255, 184, 108, 255}},
		{"dark error", true, theme.ColorNameError, color.RGBA{255, 85, 85, 255}},
		{"dark input background", true, theme.ColorNameInputBackground, color.RGBA{40, 42, 54, 255}},
		{"light input background", false, theme.ColorNameInputBackground, color.RGBA{255, 255, 255, 255}},
		{"light disabled", false, theme.ColorNameDisabled, color.RGBA{200, 200, 200, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// The variant argument is ignored; the toggle decides.
			for _, variant := range []fyne.ThemeVariant{theme.VariantLight, theme.VariantDark} {
				if got := NewModernTheme(tt.isDark).Color(tt.colorName, variant); got != tt.expected {
					t.Errorf("Expected color %v, got %v", tt.expected, got)
				}
			}
		})
	}
}

func TestThemeInterface(t *testing.T) {
	var _ fyne.Theme = &ModernTheme{}
	var _ fyne.Theme = &textSizeTheme{}
}
