package ui

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"pratdiff/internal/ui/theme"
	uiutil "pratdiff/internal/ui/util"
	"pratdiff/internal/util"
)

// DiffViewer is a full screen pager for rendered diff output
type DiffViewer struct {
	application *tview.Application
	layout      *tview.Flex
	textView    *tview.TextView
	statusView  *tview.TextView

	// guarded by contentLock, the content is replaced by the watch loop
	contentLock sync.Mutex
	hunkRows    []int
	lineCount   int
	size        int
}

func NewDiffViewer(title string) *DiffViewer {
	viewer := &DiffViewer{
		application: tview.NewApplication(),
	}
	viewer.createLayout(title)
	viewer.application.SetRoot(viewer.layout, true).SetFocus(viewer.textView)
	viewer.application.SetBeforeDrawFunc(func(screen tcell.Screen) bool {
		viewer.updateStatus()
		return false
	})
	return viewer
}

func (v *DiffViewer) createLayout(title string) {
	textView := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	textView.SetBackgroundColor(theme.Colors.Viewer.Background)
	textView.SetInputCapture(v.handleKey)

	statusView := uiutil.CreateStatusText()
	helpView := uiutil.CreateAttentionText("n/p: next/previous hunk, q: quit")

	footer := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(statusView, 0, 1, false).
		AddItem(helpView, 0, 1, false)

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(textView, 0, 1, true).
		AddItem(footer, 1, 0, false)
	uiutil.SetupWindow(layout.Box, title)

	v.textView = textView
	v.statusView = statusView
	v.layout = layout
}

func (v *DiffViewer) handleKey(event *tcell.EventKey) *tcell.EventKey {
	switch {
	case event.Key() == tcell.KeyEscape, event.Rune() == 'q':
		v.application.Stop()
		return nil
	case event.Rune() == 'n':
		v.jumpToHunk(true)
		return nil
	case event.Rune() == 'p':
		v.jumpToHunk(false)
		return nil
	}
	return event
}

func (v *DiffViewer) jumpToHunk(forward bool) {
	v.contentLock.Lock()
	rows := v.hunkRows
	v.contentLock.Unlock()

	current, _ := v.textView.GetScrollOffset()
	if row, ok := nextHunkRow(rows, current, forward); ok {
		v.textView.ScrollTo(row, 0)
	}
}

// SetContent replaces the displayed diff. The text may contain ANSI escape codes, hunkRows are
// the rows of the hunk headers within text. Safe to call while the viewer is running.
func (v *DiffViewer) SetContent(text string, hunkRows []int) {
	v.contentLock.Lock()
	v.hunkRows = hunkRows
	v.lineCount = strings.Count(text, "\n")
	v.size = len(text)
	v.contentLock.Unlock()

	v.textView.SetText(tview.TranslateANSI(escapeTags(text)))
}

var ansiSequence = regexp.MustCompile("\x1b\\[[0-9;]*[A-Za-z]")

// escapeTags escapes everything tview would read as a style tag, the ANSI sequences in between
// are kept for TranslateANSI
func escapeTags(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	start := 0
	for _, match := range ansiSequence.FindAllStringIndex(text, -1) {
		b.WriteString(tview.Escape(text[start:match[0]]))
		b.WriteString(text[match[0]:match[1]])
		start = match[1]
	}
	b.WriteString(tview.Escape(text[start:]))
	return b.String()
}

// UpdateContent replaces the displayed diff from another goroutine and redraws the screen
func (v *DiffViewer) UpdateContent(text string, hunkRows []int) {
	v.application.QueueUpdateDraw(func() {
		row, column := v.textView.GetScrollOffset()
		v.SetContent(text, hunkRows)
		v.textView.ScrollTo(row, column)
	})
}

func (v *DiffViewer) updateStatus() {
	v.contentLock.Lock()
	defer v.contentLock.Unlock()

	row, _ := v.textView.GetScrollOffset()
	v.statusView.SetText(statusText(len(v.hunkRows), v.lineCount, v.size, row))
}

func statusText(hunks int, lines int, size int, row int) string {
	if lines == 0 {
		return "no differences"
	}
	return fmt.Sprintf("%d hunks, %s lines, %s, %d%%",
		hunks,
		humanize.Comma(int64(lines)),
		humanize.Bytes(uint64(size)),
		util.Percent(row, max(lines-1, 0)),
	)
}

// Run blocks until the viewer is closed
func (v *DiffViewer) Run() error {
	return v.application.Run()
}

func (v *DiffViewer) Stop() {
	v.application.Stop()
}

// nextHunkRow returns the first hunk row after current, or the last one before it when going
// backwards
func nextHunkRow(rows []int, current int, forward bool) (int, bool) {
	if forward {
		for _, row := range rows {
			if row > current {
				return row, true
			}
		}
		return 0, false
	}
	for i := len(rows) - 1; i >= 0; i-- {
		if rows[i] < current {
			return rows[i], true
		}
	}
	return 0, false
}
