package diff

// Diffs accumulates an alignment from incremental run lengths.
// Adjacent runs of the same kind are merged into a single Item, so the
// positions of every Item are derived from the ones before it.
type Diffs struct {
	items []Item
}

// AddMatch records a run of n equal elements on both sides
func (d *Diffs) AddMatch(n int) {
	if n == 0 {
		return
	}
	if last := d.last(); last != nil && last.Kind == Match {
		last.Lhs.End += n
		last.Rhs.End += n
		return
	}
	lhs, rhs := d.lhsPos(), d.rhsPos()
	d.items = append(d.items, Item{
		Kind: Match,
		Lhs:  Range{Start: lhs, End: lhs + n},
		Rhs:  Range{Start: rhs, End: rhs + n},
	})
}

// AddMutation records lhsLen elements on the left being replaced by rhsLen elements on the right
func (d *Diffs) AddMutation(lhsLen, rhsLen int) {
	if lhsLen == 0 && rhsLen == 0 {
		return
	}
	if last := d.last(); last != nil && last.Kind == Mutation {
		last.Lhs.End += lhsLen
		last.Rhs.End += rhsLen
		return
	}
	lhs, rhs := d.lhsPos(), d.rhsPos()
	d.items = append(d.items, Item{
		Kind: Mutation,
		Lhs:  Range{Start: lhs, End: lhs + lhsLen},
		Rhs:  Range{Start: rhs, End: rhs + rhsLen},
	})
}

// Items returns the accumulated alignment
func (d *Diffs) Items() []Item {
	return d.items
}

func (d *Diffs) last() *Item {
	if len(d.items) == 0 {
		return nil
	}
	return &d.items[len(d.items)-1]
}

func (d *Diffs) lhsPos() int {
	if last := d.last(); last != nil {
		return last.Lhs.End
	}
	return 0
}

func (d *Diffs) rhsPos() int {
	if last := d.last(); last != nil {
		return last.Rhs.End
	}
	return 0
}
