package automaton

// IntSet is a hashable set of states. The two implementations are StateSet,
// a mutable multiset used while a subset is being accumulated, and
// FrozenIntSet, the immutable form used as a lookup key.
type IntSet interface {
	Hashable

	// GetArray returns the members in sorted order.
	GetArray() []int

	Size() int
}
