package diff_state

// DiffState is the outcome of comparing one entry of the old tree with the new tree
type DiffState int

const (
	Added DiffState = iota
	Deleted
	Modified
	Equal
	Unknown
)

func (s DiffState) String() string {
	switch s {
	case Added:
		return "added"
	case Deleted:
		return "deleted"
	case Modified:
		return "modified"
	case Equal:
		return "equal"
	default:
		return "unknown"
	}
}

// IsChange reports whether the entry shows up in the output
func (s DiffState) IsChange() bool {
	return s == Added || s == Deleted || s == Modified
}
