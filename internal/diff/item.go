package diff

import "fmt"

// Side identifies one of the two compared sequences
type Side int

const (
	Lhs Side = iota
	Rhs
)

func (s Side) String() string {
	switch s {
	case Lhs:
		return "lhs"
	case Rhs:
		return "rhs"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

// Range is a half open index range [Start, End)
type Range struct {
	Start int
	End   int
}

func (r Range) Len() int {
	return r.End - r.Start
}

func (r Range) IsEmpty() bool {
	return r.End <= r.Start
}

func (r Range) String() string {
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}

type Kind int

const (
	// Match marks two equal length runs of pairwise equal elements
	Match Kind = iota
	// Mutation marks a replacement, either side may be empty but never both
	Mutation
)

func (k Kind) String() string {
	switch k {
	case Match:
		return "Match"
	case Mutation:
		return "Mutation"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Item is a single entry of an alignment between two sequences.
type Item struct {
	Kind Kind
	Lhs  Range
	Rhs  Range
}

func (d Item) Side(side Side) Range {
	if side == Lhs {
		return d.Lhs
	}
	return d.Rhs
}

func (d Item) String() string {
	return fmt.Sprintf("%s(%s, %s)", d.Kind, d.Lhs, d.Rhs)
}
