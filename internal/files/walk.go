package files

import (
	"io/fs"
	"path/filepath"
	"strings"

	"pratdiff/internal/logging"
	"pratdiff/internal/util"
)

// Entry is a file or directory below one of the compared roots
type Entry struct {
	// Path is the full path including the root
	Path string
	// Rel is the path relative to the root
	Rel   string
	IsDir bool
}

// WalkPair walks both trees in the same order and calls handler for every relative path found
// in either of them. The entry of the side that lacks the path is nil.
//
// Children of a directory that has no directory counterpart are skipped, the directory itself is
// reported instead.
func WalkPair(lhsRoot, rhsRoot string, handler func(lhs, rhs *Entry) error) error {
	lhs, err := listTree(lhsRoot)
	if err != nil {
		return err
	}
	rhs, err := listTree(rhsRoot)
	if err != nil {
		return err
	}

	var skipLhs, skipRhs string
	i, j := 0, 0
	for i < len(lhs) || j < len(rhs) {
		if i < len(lhs) && isBelow(lhs[i].Rel, skipLhs) {
			i++
			continue
		}
		if j < len(rhs) && isBelow(rhs[j].Rel, skipRhs) {
			j++
			continue
		}

		var l, r *Entry
		switch {
		case i == len(lhs):
			r = &rhs[j]
		case j == len(rhs):
			l = &lhs[i]
		default:
			switch c := util.ComparePaths(lhs[i].Rel, rhs[j].Rel); {
			case c < 0:
				l = &lhs[i]
			case c > 0:
				r = &rhs[j]
			default:
				l, r = &lhs[i], &rhs[j]
			}
		}

		if l != nil {
			i++
			if l.IsDir && (r == nil || !r.IsDir) {
				skipLhs = l.Rel
			}
		}
		if r != nil {
			j++
			if r.IsDir && (l == nil || !l.IsDir) {
				skipRhs = r.Rel
			}
		}

		if err := handler(l, r); err != nil {
			return err
		}
	}
	return nil
}

func isBelow(rel, dir string) bool {
	return dir != "" && strings.HasPrefix(rel, dir+string(filepath.Separator))
}

// listTree lists everything below root in the order of a sorted depth first walk, root itself
// is not included
func listTree(root string) ([]Entry, error) {
	var entries []Entry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			logging.Warning("Skipping %s: %v", path, err)
			return nil
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		entries = append(entries, Entry{Path: path, Rel: rel, IsDir: d.IsDir()})
		return nil
	})
	return entries, err
}
