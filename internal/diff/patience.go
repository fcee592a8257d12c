// Package diff computes alignments between two sequences of comparable elements and groups
// them into hunks for display.
package diff

// Implementation note: The default algorithm is patience diff:
//
//  1. Match the first elements of both sides while they are equal.
//  2. Match the last elements of both sides while they are equal.
//  3. Find elements that occur exactly once on both sides (falling back to exactly twice, three
//     times or four times), pick the longest subsequence of them that appears in the same order
//     on both sides and use those as anchors.
//  4. Repeat on every gap between two anchors.
//
// All position bookkeeping happens in Diffs, the functions below only report run lengths in the
// order the aligned content occurs.

import (
	"slices"
	"sort"
)

// maxArity is the highest occurrence count that is still considered for anchors
const maxArity = 4

// Diff aligns lhs with rhs using patience diff.
//
// The returned items cover [0, len(lhs)) and [0, len(rhs)) without gaps and no two consecutive
// items have the same Kind.
func Diff[T comparable](lhs, rhs []T) []Item {
	var d Diffs
	accumulatePartitions(&d, lhs, rhs)
	return d.Items()
}

func leadingMatchLen[T comparable](lhs, rhs []T) int {
	n := min(len(lhs), len(rhs))
	for i := range n {
		if lhs[i] != rhs[i] {
			return i
		}
	}
	return n
}

func trailingMatchLen[T comparable](lhs, rhs []T) int {
	n := min(len(lhs), len(rhs))
	for i := range n {
		if lhs[len(lhs)-1-i] != rhs[len(rhs)-1-i] {
			return i
		}
	}
	return n
}

func accumulateDiffs[T comparable](d *Diffs, lhs, rhs []T) {
	leading := leadingMatchLen(lhs, rhs)
	d.AddMatch(leading)
	if leading == len(lhs) && leading == len(rhs) {
		return
	}
	lhs, rhs = lhs[leading:], rhs[leading:]

	trailing := trailingMatchLen(lhs, rhs)
	accumulatePartitions(d, lhs[:len(lhs)-trailing], rhs[:len(rhs)-trailing])
	d.AddMatch(trailing)
}

func accumulatePartitions[T comparable](d *Diffs, lhs, rhs []T) {
	if len(lhs) == 0 || len(rhs) == 0 {
		d.AddMutation(len(lhs), len(rhs))
		return
	}

	var pairings []pairing
	for arity := 1; arity <= maxArity && len(pairings) == 0; arity++ {
		pairings = matchLines(arity, lhs, rhs)
	}
	if len(pairings) == 0 {
		d.AddMutation(len(lhs), len(rhs))
		return
	}

	lhsPos, rhsPos := 0, 0
	for _, anchor := range longestCommonSubseq(pairings) {
		accumulateDiffs(d, lhs[lhsPos:anchor.lhs], rhs[rhsPos:anchor.rhs])
		d.AddMatch(1)
		lhsPos, rhsPos = anchor.lhs+1, anchor.rhs+1
	}
	accumulateDiffs(d, lhs[lhsPos:], rhs[rhsPos:])
}

// pairing is a candidate anchor, a position on each side believed to hold the same element
type pairing struct {
	lhs int
	rhs int
}

type occurrences struct {
	lhs []int
	rhs []int
}

// matchLines pairs up the positions of every value that occurs exactly arity times on both
// sides. The k-th occurrence on the left is paired with the k-th occurrence on the right. The
// result is sorted by left position and empty if no value qualifies.
func matchLines[T comparable](arity int, lhs, rhs []T) []pairing {
	positions := make(map[T]*occurrences)
	for i, v := range lhs {
		o, ok := positions[v]
		if !ok {
			o = &occurrences{}
			positions[v] = o
		}
		o.lhs = append(o.lhs, i)
	}
	for i, v := range rhs {
		// values missing on the left can never qualify
		if o, ok := positions[v]; ok {
			o.rhs = append(o.rhs, i)
		}
	}

	var result []pairing
	for _, o := range positions {
		if len(o.lhs) != arity || len(o.rhs) != arity {
			continue
		}
		for k := range arity {
			result = append(result, pairing{lhs: o.lhs[k], rhs: o.rhs[k]})
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].lhs < result[j].lhs
	})
	return result
}

type pileEntry struct {
	pairing
	// index of the top of the previous pile at the time this entry was pushed
	prev int
}

// longestCommonSubseq selects the longest subsequence of pairings (sorted by lhs) whose rhs
// positions are strictly increasing, using patience sorting.
func longestCommonSubseq(pairings []pairing) []pairing {
	var piles [][]pileEntry
	for _, p := range pairings {
		// pile tops are strictly increasing in rhs, so the leftmost pile with a larger top
		// can be found with a binary search
		i := sort.Search(len(piles), func(i int) bool {
			pile := piles[i]
			return pile[len(pile)-1].rhs > p.rhs
		})
		prev := 0
		if i > 0 {
			prev = len(piles[i-1]) - 1
		}
		if i == len(piles) {
			piles = append(piles, nil)
		}
		piles[i] = append(piles[i], pileEntry{pairing: p, prev: prev})
	}

	if len(piles) == 0 {
		return nil
	}

	result := make([]pairing, 0, len(piles))
	last := piles[len(piles)-1]
	entry := last[len(last)-1]
	for i := len(piles) - 1; ; i-- {
		result = append(result, entry.pairing)
		if i == 0 {
			break
		}
		entry = piles[i-1][entry.prev]
	}
	slices.Reverse(result)
	return result
}
