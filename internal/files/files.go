package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"pratdiff/internal/data/diff_state"
	"pratdiff/internal/logging"
	"pratdiff/internal/printer"
	"pratdiff/internal/util"
)

const (
	noteBinary   = "binary"
	noteTooLarge = "too large"
)

// Summary counts compared entries by their outcome
type Summary map[diff_state.DiffState]int

func (s Summary) HasChanges() bool {
	for state, count := range s {
		if state.IsChange() && count > 0 {
			return true
		}
	}
	return false
}

func (s Summary) String() string {
	result := ""
	for _, state := range util.SortedKeys(s) {
		if result != "" {
			result += ", "
		}
		result += fmt.Sprintf("%s %s", humanize.Comma(int64(s[state])), state)
	}
	if result == "" {
		return "nothing compared"
	}
	return result
}

// Differ compares files and directory trees and prints the differences
type Differ struct {
	Printer *printer.Printer
	Reader  *Reader
	// MaxLines refuses to diff inputs with more lines, 0 disables the limit
	MaxLines int
	Summary  Summary
}

func NewDiffer(p *printer.Printer, reader *Reader, maxLines int) *Differ {
	return &Differ{
		Printer:  p,
		Reader:   reader,
		MaxLines: maxLines,
		Summary:  Summary{},
	}
}

// DiffPaths compares two files, two directory trees, or a file with the file of the same name
// in a directory. The result reports whether any difference was printed.
func (d *Differ) DiffPaths(lhs, rhs string) (bool, error) {
	lhsIsDir, err := isDir(lhs)
	if err != nil {
		return false, err
	}
	rhsIsDir, err := isDir(rhs)
	if err != nil {
		return false, err
	}

	switch {
	case lhsIsDir && rhsIsDir:
		err := d.DiffTrees(lhs, rhs)
		logging.Debug("Compared %s and %s: %s", lhs, rhs, d.Summary)
		return d.Summary.HasChanges(), err
	case lhsIsDir:
		if rhs == StdinPath {
			return false, fmt.Errorf("cannot compare directory %s with standard input", lhs)
		}
		lhs = filepath.Join(lhs, filepath.Base(rhs))
	case rhsIsDir:
		if lhs == StdinPath {
			return false, fmt.Errorf("cannot compare standard input with directory %s", rhs)
		}
		rhs = filepath.Join(rhs, filepath.Base(lhs))
	}

	state, err := d.DiffFiles(lhs, rhs)
	return state.IsChange(), err
}

func isDir(path string) (bool, error) {
	if path == StdinPath {
		return false, nil
	}
	fi, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return fi.IsDir(), nil
}

// DiffFiles compares the content of two files
func (d *Differ) DiffFiles(lhs, rhs string) (diff_state.DiffState, error) {
	state, err := d.diffFiles(lhs, rhs)
	if err != nil {
		state = diff_state.Unknown
	}
	d.Summary[state]++
	return state, err
}

func (d *Differ) diffFiles(lhs, rhs string) (diff_state.DiffState, error) {
	l, err := d.Reader.Read(lhs)
	if err != nil {
		return diff_state.Unknown, err
	}
	r, err := d.Reader.Read(rhs)
	if err != nil {
		return diff_state.Unknown, err
	}
	if l.Equal(r) {
		return diff_state.Equal, nil
	}

	if l.Binary || r.Binary {
		d.Printer.PrintFilesDiffer(lhs, binaryNote(l), rhs, binaryNote(r))
		return diff_state.Modified, d.Printer.Err()
	}

	lhsLines, rhsLines := l.Lines(), r.Lines()
	if d.isTooLarge(lhsLines) || d.isTooLarge(rhsLines) {
		logging.Debug("Not diffing %s (%d lines) and %s (%d lines), limit is %d lines",
			lhs, len(lhsLines), rhs, len(rhsLines), d.MaxLines)
		d.Printer.PrintFilesDiffer(lhs, d.sizeNote(lhsLines), rhs, d.sizeNote(rhsLines))
		return diff_state.Modified, d.Printer.Err()
	}

	if !d.Printer.PrintFileDiff(lhs, rhs, lhsLines, rhsLines) {
		// same lines, different line terminators
		d.Printer.PrintFilesDiffer(lhs, "", rhs, "")
	}
	return diff_state.Modified, d.Printer.Err()
}

func binaryNote(c Contents) string {
	if c.Binary {
		return noteBinary
	}
	return ""
}

func (d *Differ) isTooLarge(lines []string) bool {
	return d.MaxLines > 0 && len(lines) > d.MaxLines
}

func (d *Differ) sizeNote(lines []string) string {
	if d.isTooLarge(lines) {
		return noteTooLarge
	}
	return ""
}

// DiffTrees compares two directory trees entry by entry. Unreadable files are reported and
// skipped, their errors are returned together after the walk.
func (d *Differ) DiffTrees(lhsRoot, rhsRoot string) error {
	var errs []error
	err := WalkPair(lhsRoot, rhsRoot, func(l, r *Entry) error {
		switch {
		case r == nil:
			d.Printer.PrintOnlyIn(filepath.Dir(l.Path), filepath.Base(l.Path))
			d.Summary[diff_state.Deleted]++
		case l == nil:
			d.Printer.PrintOnlyIn(filepath.Dir(r.Path), filepath.Base(r.Path))
			d.Summary[diff_state.Added]++
		case l.IsDir && r.IsDir:
			// children are paired individually
		case l.IsDir || r.IsDir:
			d.Printer.PrintKindMismatch(l.Path, l.IsDir, r.Path, r.IsDir)
			d.Summary[diff_state.Modified]++
		default:
			// write errors end the walk below
			if _, err := d.DiffFiles(l.Path, r.Path); err != nil && d.Printer.Err() == nil {
				logging.Error("Unable to compare %s and %s: %v", l.Path, r.Path, err)
				errs = append(errs, err)
			}
		}
		return d.Printer.Err()
	})
	if err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
