package printer

import (
	"strings"

	"github.com/pterm/pterm"
)

// Styles used for the different parts of the output, a nil style prints plain text
type Styles struct {
	Header    *pterm.Style
	Separator *pterm.Style
	Both      *pterm.Style
	Old       *pterm.Style
	// OldDim marks unchanged tokens within a changed old line
	OldDim *pterm.Style
	New    *pterm.Style
	// NewDim marks unchanged tokens within a changed new line
	NewDim *pterm.Style
}

// SimpleStyles is a set of color choices reasonable for most colorized terminal output
func SimpleStyles() Styles {
	return Styles{
		Header:    pterm.NewStyle(pterm.Bold, pterm.FgWhite),
		Separator: pterm.NewStyle(pterm.FgCyan),
		Both:      nil,
		Old:       pterm.NewStyle(pterm.FgRed),
		OldDim:    pterm.NewStyle(pterm.Fuzzy),
		New:       pterm.NewStyle(pterm.FgGreen),
		NewDim:    nil,
	}
}

// PlainStyles prints without any escape codes
func PlainStyles() Styles {
	return Styles{}
}

func paint(style *pterm.Style, text string) string {
	if style == nil || text == "" {
		return text
	}
	// escape codes never span a line break, pagers and terminals handle that better
	if strings.Contains(text, "\n") {
		lines := strings.Split(text, "\n")
		for i, line := range lines {
			lines[i] = paint(style, line)
		}
		return strings.Join(lines, "\n")
	}
	return style.Sprint(text)
}
