package util

import (
	"fmt"

	"github.com/rivo/tview"
	"pratdiff/internal/ui/theme"
)

func CreateAttentionText(text string) *tview.TextView {
	abortText := fmt.Sprintf("  %s  ", text)
	return tview.NewTextView().
		SetText(abortText).
		SetTextColor(theme.Colors.Viewer.Attention).
		SetTextAlign(tview.AlignRight)
}

func CreateStatusText() *tview.TextView {
	statusText := tview.NewTextView().
		SetTextColor(theme.Colors.Viewer.Status).
		SetTextAlign(tview.AlignLeft)
	statusText.SetBorderPadding(0, 0, 1, 1)
	return statusText
}
