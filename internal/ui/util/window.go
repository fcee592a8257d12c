package util

import (
	"github.com/rivo/tview"
	"pratdiff/internal/ui/theme"
)

// SetupWindow draws a border around the box and gives it a title
func SetupWindow(window *tview.Box, text string) *tview.Box {
	return window.
		SetBorder(true).
		SetBorderColor(theme.Colors.Layout.Border).
		SetTitle(theme.CreateTitleText(text)).
		SetTitleColor(theme.Colors.Layout.Title).
		SetTitleAlign(theme.Style.Layout.TitleAlign)
}
