package ui

import (
	"image/color"
	"testing"

	"fyne.io/fyne/v2/theme"

	"github.com/piwi3910/packassist/internal/layout"
)

func TestStatusColorName(t *testing.T) {
	tests := map[layout.PositionStatus]string{
		layout.StatusPacked:    string(ColorNamePacked),
		layout.StatusFree:      string(ColorNameFree),
		layout.StatusUnpacked:  string(theme.ColorNameInputBackground),
		layout.StatusSeparator: string(theme.ColorNameBackground),
	}
	for status, want := range tests {
		if got := string(statusColorName(status)); got != want {
			t.Errorf("statusColorName(%s) = %s, want %s", status, got, want)
		}
	}
}

func TestPackThemeColors(t *testing.T) {
	th := NewPackTheme()
	light := th.Color(ColorNamePacked, theme.VariantLight)
	dark := th.Color(ColorNamePacked, theme.VariantDark)
	if light == dark {
		t.Error("packed color should differ between variants")
	}
	if light != (color.NRGBA{R: 200, G: 235, B: 200, A: 255}) {
		t.Errorf("unexpected light packed color %v", light)
	}
	base := theme.DefaultTheme().Color(theme.ColorNamePrimary, theme.VariantLight)
	if got := th.Color(theme.ColorNamePrimary, theme.VariantLight); got != base {
		t.Errorf("expected delegated primary color %v, got %v", base, got)
	}
}

func TestPackThemeSize(t *testing.T) {
	th := NewPackTheme()
	if th.Size(theme.SizeNameText) != 13 {
		t.Errorf("expected compact text size, got %v", th.Size(theme.SizeNameText))
	}
	if got, want := th.Size(theme.SizeNameScrollBar), theme.DefaultTheme().Size(theme.SizeNameScrollBar); got != want {
		t.Errorf("expected delegated scrollbar size %v, got %v", want, got)
	}
}
