package diff

import (
	"fmt"
	"strings"

	zdiff "znkr.io/diff"
)

// Algorithm selects the strategy used to align two sequences
type Algorithm string

const (
	Patience Algorithm = "patience"
	Myers    Algorithm = "myers"
)

var Algorithms = []Algorithm{Patience, Myers}

func ParseAlgorithm(name string) (Algorithm, error) {
	for _, algorithm := range Algorithms {
		if strings.EqualFold(name, string(algorithm)) {
			return algorithm, nil
		}
	}
	return "", fmt.Errorf("unknown diff algorithm %q", name)
}

// Compute aligns lhs with rhs using the given algorithm, unknown values fall back to Patience.
func Compute[T comparable](algorithm Algorithm, lhs, rhs []T) []Item {
	switch algorithm {
	case Myers:
		return DiffMyers(lhs, rhs)
	default:
		return Diff(lhs, rhs)
	}
}

// DiffMyers aligns lhs with rhs using the minimal edit script of znkr.io/diff.
//
// The per element edits are folded through Diffs, so the result has the same shape as the one
// returned by Diff.
func DiffMyers[T comparable](lhs, rhs []T) []Item {
	var d Diffs
	for _, edit := range zdiff.Edits(lhs, rhs) {
		switch edit.Op {
		case zdiff.Match:
			d.AddMatch(1)
		case zdiff.Delete:
			d.AddMutation(1, 0)
		case zdiff.Insert:
			d.AddMutation(0, 1)
		}
	}
	return d.Items()
}
