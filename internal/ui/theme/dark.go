package theme

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

var (
	Primary   = tcell.ColorTeal
	Secondary = tcell.ColorDarkOliveGreen
)

var (
	Colors = Color{
		Viewer: ViewerColors{
			Background: tcell.ColorDefault,
			Status:     tcell.ColorGray,
			Attention:  tcell.ColorYellow,
		},
		Layout: LayoutColors{
			Title:  Primary,
			Border: Secondary,
		},
	}

	Style = StyleStruct{
		Layout: LayoutStyle{
			TitleAlign: tview.AlignCenter,
		},
	}
)
