package diff

// Hunk is a contiguous group of items that is displayed as one unit.
type Hunk struct {
	Items []Item
}

// BuildHunks groups items into hunks with at most context unchanged elements around every
// change.
//
// A Match longer than 2*context separates two hunks and ends up (trimmed) in both of them.
// With a context of 0 only Mutations are kept.
func BuildHunks(context int, items []Item) []Hunk {
	hunks := []Hunk{{}}
	for _, item := range items {
		current := &hunks[len(hunks)-1]
		current.Items = append(current.Items, item)

		if item.Kind == Match && item.Lhs.Len() > 2*context {
			hunks = append(hunks, Hunk{Items: []Item{item}})
		}
	}

	result := make([]Hunk, 0, len(hunks))
	for _, hunk := range hunks {
		if len(hunk.Items) == 0 {
			continue
		}
		if len(hunk.Items) == 1 && hunk.Items[0].Kind == Match {
			// unchanged content only
			continue
		}

		if context == 0 {
			hunk.Items = onlyMutations(hunk.Items)
			result = append(result, hunk)
			continue
		}

		if first := &hunk.Items[0]; first.Kind == Match && first.Lhs.Len() > context {
			first.Lhs.Start = first.Lhs.End - context
			first.Rhs.Start = first.Rhs.End - context
		}
		if last := &hunk.Items[len(hunk.Items)-1]; last.Kind == Match && last.Lhs.Len() > context {
			last.Lhs.End = last.Lhs.Start + context
			last.Rhs.End = last.Rhs.Start + context
		}
		result = append(result, hunk)
	}
	return result
}

func onlyMutations(items []Item) []Item {
	result := make([]Item, 0, len(items))
	for _, item := range items {
		if item.Kind == Mutation {
			result = append(result, item)
		}
	}
	return result
}

// Side returns the range spanned by the hunk on the given side
func (h Hunk) Side(side Side) Range {
	if len(h.Items) == 0 {
		return Range{}
	}
	return Range{
		Start: h.Items[0].Side(side).Start,
		End:   h.Items[len(h.Items)-1].Side(side).End,
	}
}

func (h Hunk) Lhs() Range {
	return h.Side(Lhs)
}

func (h Hunk) Rhs() Range {
	return h.Side(Rhs)
}
