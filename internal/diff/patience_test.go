package diff

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func match(l1, l2, r1, r2 int) Item {
	return Item{Kind: Match, Lhs: Range{l1, l2}, Rhs: Range{r1, r2}}
}

func mutation(l1, l2, r1, r2 int) Item {
	return Item{Kind: Mutation, Lhs: Range{l1, l2}, Rhs: Range{r1, r2}}
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name string
		lhs  []string
		rhs  []string
		want []Item
	}{
		{
			name: "empty",
		},
		{
			name: "identical",
			lhs:  []string{"a", "b", "c"},
			rhs:  []string{"a", "b", "c"},
			want: []Item{match(0, 3, 0, 3)},
		},
		{
			name: "lhs-empty",
			rhs:  []string{"a", "b"},
			want: []Item{mutation(0, 0, 0, 2)},
		},
		{
			name: "rhs-empty",
			lhs:  []string{"a", "b"},
			want: []Item{mutation(0, 2, 0, 0)},
		},
		{
			name: "deleted-middle",
			lhs:  []string{"a", "b", "c"},
			rhs:  []string{"a", "c"},
			want: []Item{
				match(0, 1, 0, 1),
				mutation(1, 2, 1, 1),
				match(2, 3, 1, 2),
			},
		},
		{
			name: "repeated-lines-use-higher-arity",
			lhs:  []string{"a", "b", "b", "c"},
			rhs:  []string{"b", "b"},
			want: []Item{
				mutation(0, 1, 0, 0),
				match(1, 3, 0, 2),
				mutation(3, 4, 2, 2),
			},
		},
		{
			name: "nothing-in-common",
			lhs:  []string{"a", "b"},
			rhs:  []string{"c", "d", "e"},
			want: []Item{mutation(0, 2, 0, 3)},
		},
		{
			name: "no-anchor-below-arity-five",
			lhs:  strings.Split("aaaaa", ""),
			rhs:  strings.Split("aaaaa", ""),
			want: []Item{mutation(0, 5, 0, 5)},
		},
		{
			name: "block-swap",
			lhs:  []string{"a1", "a2", "a3", "b1", "b2", "b3", "b4", "b5", "b6", "b7", "b8"},
			rhs:  []string{"b1", "b2", "b3", "b4", "b5", "b6", "b7", "b8", "a1", "a2", "a3", "c1", "c2", "c3", "c4", "c5"},
			want: []Item{
				mutation(0, 3, 0, 0),
				match(3, 11, 0, 8),
				mutation(11, 11, 8, 16),
			},
		},
		{
			name: "changed-line-between-anchors",
			lhs:  []string{"x", "old", "y"},
			rhs:  []string{"x", "new", "y"},
			want: []Item{
				match(0, 1, 0, 1),
				mutation(1, 2, 1, 2),
				match(2, 3, 2, 3),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// WHEN
			got := Diff(tt.lhs, tt.rhs)

			// THEN
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Diff result is different (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestDiff_Identity(t *testing.T) {
	// GIVEN
	x := []string{"func f() {", "\treturn 0", "}", "", "func g() {", "\treturn 0", "}"}

	// WHEN
	result := Diff(x, x)

	// THEN
	assert.Equal(t, []Item{match(0, 7, 0, 7)}, result)
}

func TestDiff_Tokens(t *testing.T) {
	// GIVEN
	lhs := []string{"x", " ", "=", " ", "1"}
	rhs := []string{"x", " ", "=", " ", "2"}

	// WHEN
	result := Diff(lhs, rhs)

	// THEN
	assert.Equal(t, []Item{match(0, 4, 0, 4), mutation(4, 5, 4, 5)}, result)
}

func TestDiff_Properties(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		lhs := randomLines(rnd)
		rhs := randomLines(rnd)
		for _, algorithm := range Algorithms {
			checkAlignment(t, lhs, rhs, Compute(algorithm, lhs, rhs))
		}
	}
}

// randomLines draws from a small alphabet so that repeated values are common
func randomLines(rnd *rand.Rand) []string {
	alphabet := []string{"a", "b", "c", "d", "e", "f", "{", "}", ""}
	n := rnd.Intn(20)
	lines := make([]string, n)
	for i := range lines {
		lines[i] = alphabet[rnd.Intn(len(alphabet))]
	}
	return lines
}

func checkAlignment(t *testing.T, lhs, rhs []string, items []Item) {
	t.Helper()

	lhsPos, rhsPos := 0, 0
	var rebuiltRhs, rebuiltLhs []string
	for i, item := range items {
		if i > 0 && items[i-1].Kind == item.Kind {
			t.Fatalf("adjacent items of the same kind in %v", items)
		}
		if item.Lhs.Start != lhsPos || item.Rhs.Start != rhsPos {
			t.Fatalf("gap or overlap at %v in %v", item, items)
		}
		switch item.Kind {
		case Match:
			if item.Lhs.Len() != item.Rhs.Len() {
				t.Fatalf("match with different lengths %v", item)
			}
			for k := 0; k < item.Lhs.Len(); k++ {
				if lhs[item.Lhs.Start+k] != rhs[item.Rhs.Start+k] {
					t.Fatalf("match of different elements %v for %q and %q", item, lhs, rhs)
				}
			}
			rebuiltRhs = append(rebuiltRhs, lhs[item.Lhs.Start:item.Lhs.End]...)
			rebuiltLhs = append(rebuiltLhs, rhs[item.Rhs.Start:item.Rhs.End]...)
		case Mutation:
			if item.Lhs.IsEmpty() && item.Rhs.IsEmpty() {
				t.Fatalf("empty mutation in %v", items)
			}
			rebuiltRhs = append(rebuiltRhs, rhs[item.Rhs.Start:item.Rhs.End]...)
			rebuiltLhs = append(rebuiltLhs, lhs[item.Lhs.Start:item.Lhs.End]...)
		}
		lhsPos, rhsPos = item.Lhs.End, item.Rhs.End
	}
	if lhsPos != len(lhs) || rhsPos != len(rhs) {
		t.Fatalf("alignment %v does not cover %d/%d elements", items, len(lhs), len(rhs))
	}
	assert.Equal(t, len(rhs), len(rebuiltRhs))
	for k := range rhs {
		assert.Equal(t, rhs[k], rebuiltRhs[k])
	}
	for k := range lhs {
		assert.Equal(t, lhs[k], rebuiltLhs[k])
	}
}

func TestLeadingAndTrailingMatchLen(t *testing.T) {
	tests := []struct {
		name     string
		lhs      string
		rhs      string
		leading  int
		trailing int
	}{
		{name: "empty"},
		{name: "one-empty", lhs: "abc"},
		{name: "identical", lhs: "abc", rhs: "abc", leading: 3, trailing: 3},
		{name: "prefix", lhs: "abc", rhs: "ab", leading: 2, trailing: 0},
		{name: "suffix", lhs: "xbc", rhs: "bc", leading: 0, trailing: 2},
		{name: "both", lhs: "abxyc", rhs: "abzc", leading: 2, trailing: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lhs := strings.Split(tt.lhs, "")
			rhs := strings.Split(tt.rhs, "")
			if tt.lhs == "" {
				lhs = nil
			}
			if tt.rhs == "" {
				rhs = nil
			}

			assert.Equal(t, tt.leading, leadingMatchLen(lhs, rhs))
			assert.Equal(t, tt.trailing, trailingMatchLen(lhs, rhs))
		})
	}
}

func TestMatchLines(t *testing.T) {
	// GIVEN
	lhs := strings.Split("abbcdd", "")
	rhs := strings.Split("dbbdac", "")

	// WHEN
	unique := matchLines(1, lhs, rhs)
	twice := matchLines(2, lhs, rhs)
	thrice := matchLines(3, lhs, rhs)

	// THEN
	assert.Equal(t, []pairing{{0, 4}, {3, 5}}, unique)
	assert.Equal(t, []pairing{{1, 1}, {2, 2}, {4, 0}, {5, 3}}, twice)
	assert.Empty(t, thrice)
}

func TestLongestCommonSubseq(t *testing.T) {
	tests := []struct {
		name     string
		pairings []pairing
		want     []pairing
	}{
		{
			name: "empty",
		},
		{
			name:     "increasing",
			pairings: []pairing{{0, 0}, {1, 1}, {2, 2}},
			want:     []pairing{{0, 0}, {1, 1}, {2, 2}},
		},
		{
			name:     "swapped-blocks",
			pairings: []pairing{{0, 8}, {1, 9}, {2, 10}, {3, 0}, {4, 1}, {5, 2}, {6, 3}},
			want:     []pairing{{3, 0}, {4, 1}, {5, 2}, {6, 3}},
		},
		{
			name:     "follows-back-references",
			pairings: []pairing{{0, 3}, {1, 4}, {2, 1}},
			want:     []pairing{{0, 3}, {1, 4}},
		},
		{
			name:     "decreasing-keeps-last",
			pairings: []pairing{{0, 2}, {1, 1}, {2, 0}},
			want:     []pairing{{2, 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := longestCommonSubseq(tt.pairings)
			if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(pairing{})); diff != "" {
				t.Errorf("longestCommonSubseq result is different (-want, +got):\n%s", diff)
			}
		})
	}
}
