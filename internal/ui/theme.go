// Package ui provides the PackAssist desktop front-end.
//
// This file defines the compact application theme and the cell colors of
// the list and map views.

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/piwi3910/packassist/internal/layout"
)

// Theme color names for packing state.
const (
	ColorNamePacked fyne.ThemeColorName = "packassistPacked"
	ColorNameFree   fyne.ThemeColorName = "packassistFree"
)

// PackTheme wraps the default Fyne theme with compact sizing and the
// packing-state colors.
type PackTheme struct {
	base fyne.Theme
}

// NewPackTheme creates a PackTheme on top of the default theme.
func NewPackTheme() *PackTheme {
	return &PackTheme{base: theme.DefaultTheme()}
}

// Color resolves the packing-state colors and delegates everything else.
func (t *PackTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	dark := variant == theme.VariantDark
	switch name {
	case ColorNamePacked:
		if dark {
			return color.NRGBA{R: 46, G: 92, B: 52, A: 255}
		}
		return color.NRGBA{R: 200, G: 235, B: 200, A: 255}
	case ColorNameFree:
		if dark {
			return color.NRGBA{R: 60, G: 60, B: 60, A: 255}
		}
		return color.NRGBA{R: 235, G: 235, B: 235, A: 255}
	}
	return t.base.Color(name, variant)
}

// Font delegates to the base theme.
func (t *PackTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

// Icon delegates to the base theme.
func (t *PackTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides so a full 9x9 box fits on screen.
func (t *PackTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 13
	case theme.SizeNameCaptionText:
		return 10
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 5
	case theme.SizeNameInlineIcon:
		return 16
	default:
		return t.base.Size(name)
	}
}

// statusColorName maps a grid position state to the theme color it is drawn with.
func statusColorName(s layout.PositionStatus) fyne.ThemeColorName {
	switch s {
	case layout.StatusPacked:
		return ColorNamePacked
	case layout.StatusFree:
		return ColorNameFree
	case layout.StatusUnpacked:
		return theme.ColorNameInputBackground
	default:
		return theme.ColorNameBackground
	}
}
