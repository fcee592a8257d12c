package printer

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
	"pratdiff/internal/diff"
	"pratdiff/internal/util"
)

// Printer renders diffs in unified format.
//
// Write errors are sticky: after the first failed write nothing else is written and Err reports
// the failure.
type Printer struct {
	styles       Styles
	writer       *lineWriter
	context      int
	algorithm    diff.Algorithm
	commonPrefix string
	hunkRows     []int
}

type Option func(p *Printer)

func WithStyles(styles Styles) Option {
	return func(p *Printer) {
		p.styles = styles
	}
}

func WithAlgorithm(algorithm diff.Algorithm) Option {
	return func(p *Printer) {
		p.algorithm = algorithm
	}
}

// WithCommonPrefix strips prefix from every displayed path
func WithCommonPrefix(prefix string) Option {
	return func(p *Printer) {
		p.commonPrefix = prefix
	}
}

func New(writer io.Writer, context int, opts ...Option) *Printer {
	p := &Printer{
		styles:    PlainStyles(),
		writer:    &lineWriter{writer: writer},
		context:   max(context, 0),
		algorithm: diff.Patience,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Err returns the first error that occurred while writing
func (p *Printer) Err() error {
	return p.writer.err
}

// HunkRows returns the output rows (zero based) on which hunk headers were written
func (p *Printer) HunkRows() []int {
	return p.hunkRows
}

func (p *Printer) displayPath(path string) string {
	return util.StripPathPrefix(path, p.commonPrefix)
}

func (p *Printer) PrintFileHeader(lhs, rhs string) {
	p.printf("%s %s\n", paint(p.styles.Old, "---"), paint(p.styles.Header, p.displayPath(lhs)))
	p.printf("%s %s\n", paint(p.styles.New, "+++"), paint(p.styles.Header, p.displayPath(rhs)))
}

// PrintFilesDiffer reports two inputs that are not shown line by line, the notes are appended
// to the respective path
func (p *Printer) PrintFilesDiffer(lhs, lhsNote, rhs, rhsNote string) {
	p.printf("Files %s%s and %s%s differ\n",
		paint(p.styles.Old, p.displayPath(lhs)), noteSuffix(lhsNote),
		paint(p.styles.New, p.displayPath(rhs)), noteSuffix(rhsNote),
	)
}

func noteSuffix(note string) string {
	if note == "" {
		return ""
	}
	return fmt.Sprintf(" (%s)", note)
}

// PrintOnlyIn reports an entry present in just one of two trees
func (p *Printer) PrintOnlyIn(dir, name string) {
	p.printf("Only in %s: %s\n", paint(p.styles.Header, p.displayPath(dir)), name)
}

// PrintKindMismatch reports a path that is a directory on one side and a file on the other
func (p *Printer) PrintKindMismatch(lhs string, lhsIsDir bool, rhs string, rhsIsDir bool) {
	p.printf("File %s is a %s while file %s is a %s\n",
		paint(p.styles.Old, p.displayPath(lhs)), kindName(lhsIsDir),
		paint(p.styles.New, p.displayPath(rhs)), kindName(rhsIsDir),
	)
}

func kindName(isDir bool) string {
	if isDir {
		return "directory"
	}
	return "regular file"
}

// PrintFileDiff prints the header and all hunks of the line diff between lhs and rhs. Nothing
// is printed if the lines are equal, the result reports whether anything was printed.
func (p *Printer) PrintFileDiff(lhsName, rhsName string, lhs, rhs []string) bool {
	hunks := diff.BuildHunks(p.context, diff.Compute(p.algorithm, lhs, rhs))
	if len(hunks) == 0 {
		return false
	}
	p.PrintFileHeader(lhsName, rhsName)
	p.PrintHunks(lhs, rhs, hunks)
	return true
}

func (p *Printer) PrintHunks(lhs, rhs []string, hunks []diff.Hunk) {
	for _, hunk := range hunks {
		p.printHunkHeader(hunk)
		for _, item := range hunk.Items {
			p.printItem(lhs, rhs, item)
		}
	}
}

func (p *Printer) printHunkHeader(hunk diff.Hunk) {
	p.hunkRows = append(p.hunkRows, p.writer.lines)
	l, r := hunk.Lhs(), hunk.Rhs()
	header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", l.Start+1, l.Len(), r.Start+1, r.Len())
	p.printf("%s\n", paint(p.styles.Separator, header))
}

func (p *Printer) printItem(lhs, rhs []string, item diff.Item) {
	l := lhs[item.Lhs.Start:item.Lhs.End]
	r := rhs[item.Rhs.Start:item.Rhs.End]

	switch {
	case item.Kind == diff.Match:
		for _, line := range l {
			p.printf(" %s\n", paint(p.styles.Both, line))
		}
	case len(l) == 0 || len(r) == 0:
		for _, line := range l {
			p.printf("%s\n", paint(p.styles.Old, "-"+line))
		}
		for _, line := range r {
			p.printf("%s\n", paint(p.styles.New, "+"+line))
		}
	default:
		p.printTokenDiff(l, r)
	}
}

// printTokenDiff prints a replacement of l by r, highlighting the tokens that actually changed
func (p *Printer) printTokenDiff(l, r []string) {
	lhs := diff.TokenizeLines(l)
	rhs := diff.TokenizeLines(r)
	items := diff.Compute(p.algorithm, lhs, rhs)

	p.printTokens(lhs, items, diff.Lhs, "-", p.styles.Old, p.styles.OldDim)
	p.printTokens(rhs, items, diff.Rhs, "+", p.styles.New, p.styles.NewDim)
}

func (p *Printer) printTokens(tokens []string, items []diff.Item, side diff.Side, marker string, changed, unchanged *pterm.Style) {
	var b strings.Builder
	b.WriteString(paint(changed, marker))
	for _, item := range items {
		style := changed
		if item.Kind == diff.Match {
			style = unchanged
		}
		span := item.Side(side)
		for _, token := range tokens[span.Start:span.End] {
			if token == diff.Newline {
				b.WriteString("\n")
				b.WriteString(paint(changed, marker))
				continue
			}
			b.WriteString(paint(style, token))
		}
	}
	b.WriteString("\n")
	p.printf("%s", b.String())
}

func (p *Printer) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(p.writer, format, a...)
}

// lineWriter counts written lines and keeps the first error
type lineWriter struct {
	writer io.Writer
	lines  int
	err    error
}

func (w *lineWriter) Write(b []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := w.writer.Write(b)
	w.lines += bytes.Count(b[:n], []byte("\n"))
	if err != nil {
		w.err = err
	}
	return n, err
}
