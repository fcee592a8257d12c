package util

import (
	"path/filepath"
	"slices"
	"strings"
)

// SplitPath splits a cleaned path into its components, a leading separator is kept as its own
// component so absolute and relative paths never share a prefix
func SplitPath(path string) []string {
	path = filepath.ToSlash(filepath.Clean(path))
	if path == "." {
		return nil
	}
	var components []string
	if strings.HasPrefix(path, "/") {
		components = append(components, "/")
		path = strings.TrimLeft(path, "/")
	}
	if path == "" {
		return components
	}
	return append(components, strings.Split(path, "/")...)
}

// CommonPathPrefix returns the longest common ancestor of a and b, compared component by
// component, or an empty string if they have none
func CommonPathPrefix(a, b string) string {
	ac, bc := SplitPath(a), SplitPath(b)
	n := 0
	for n < len(ac) && n < len(bc) && ac[n] == bc[n] {
		n++
	}
	if n == 0 {
		return ""
	}
	return joinComponents(ac[:n])
}

func joinComponents(components []string) string {
	if components[0] == "/" {
		return filepath.FromSlash("/" + strings.Join(components[1:], "/"))
	}
	return filepath.FromSlash(strings.Join(components, "/"))
}

// StripPathPrefix removes prefix from path for display. If nothing would remain, the last
// component of path is returned instead.
func StripPathPrefix(path, prefix string) string {
	if prefix == "" {
		return path
	}
	pc, xc := SplitPath(path), SplitPath(prefix)
	if len(xc) > len(pc) || !slices.Equal(pc[:len(xc)], xc) {
		return path
	}
	if len(xc) == len(pc) {
		return filepath.Base(path)
	}
	return joinComponents(pc[len(xc):])
}

// ComparePaths orders relative paths component by component, which is the order a sorted
// depth first walk visits them in
func ComparePaths(a, b string) int {
	return slices.Compare(SplitPath(a), SplitPath(b))
}
