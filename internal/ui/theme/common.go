package theme

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

type ViewerColors struct {
	Background tcell.Color
	Status     tcell.Color
	Attention  tcell.Color
}

type StyleStruct struct {
	Layout LayoutStyle
}

type LayoutStyle struct {
	TitleAlign int
}

type Color struct {
	Viewer ViewerColors
	Layout LayoutColors
}

type LayoutColors struct {
	Border tcell.Color
	Title  tcell.Color
}

func CreateTitleText(text string) string {
	titleText := fmt.Sprintf(" %s ", text)
	return titleText
}
