package automaton

import (
	"fmt"
	"sort"
	"unicode"

	"github.com/bits-and-blooms/bitset"
)

// Builder allows building a new Automaton without the constraint that
// transitions of one state must be added contiguously: transitions may be
// added in any order, and are buffered as packed (source, min, max, dest)
// quadruples until Finish sorts them and materializes the Automaton. All of
// the NFA combinators build through it.
type Builder struct {
	numStates int

	// Packed source, min, max, dest for each buffered transition.
	transitions []int

	isAccept *bitset.BitSet
}

func NewBuilder() *Builder {
	return NewBuilderV1(16, 16)
}

func NewBuilderV1(numStates, numTransitions int) *Builder {
	return &Builder{
		transitions: make([]int, 0, numTransitions*4),
		isAccept:    bitset.New(uint(numStates)),
	}
}

// CreateState Create a new state.
func (r *Builder) CreateState() int {
	state := r.numStates
	r.numStates++
	return state
}

// SetAccept Set or clear this state as an accept state.
func (r *Builder) SetAccept(state int, accept bool) {
	r.isAccept.SetTo(uint(state), accept)
}

// IsAccept Returns true if this state is an accept state.
func (r *Builder) IsAccept(state int) bool {
	return r.isAccept.Test(uint(state))
}

// GetNumStates How many states this builder has so far.
func (r *Builder) GetNumStates() int {
	return r.numStates
}

// AddTransitionLabel Add a new transition with min = max = label.
func (r *Builder) AddTransitionLabel(source, dest, label int) error {
	return r.AddTransition(source, dest, label, label)
}

// AddTransition Add a new transition with the specified source, dest, min, max.
func (r *Builder) AddTransition(source, dest, min, max int) error {
	if min > max || min < 0 || max > unicode.MaxRune {
		return fmt.Errorf("%w: [%d, %d]", ErrInvalidRange, min, max)
	}
	r.transitions = append(r.transitions, source, min, max, dest)
	return nil
}

// AddEpsilon Add an epsilon transition between source and dest.
func (r *Builder) AddEpsilon(source, dest int) {
	r.transitions = append(r.transitions, source, epsilonLabel, epsilonLabel, dest)
}

// Copy Copies over all states and transitions from other. The state numbers
// are sequentially assigned (appended); the copied start state lands at the
// state number GetNumStates returned just before the call.
func (r *Builder) Copy(other *Automaton) {
	offset := r.GetNumStates()
	r.CopyStates(other)

	t := NewTransition()
	numStates := other.GetNumStates()
	for s := 0; s < numStates; s++ {
		count := other.InitTransition(s, t)
		for i := 0; i < count; i++ {
			other.GetNextTransition(t)
			r.transitions = append(r.transitions, offset+s, t.Min, t.Max, offset+t.Dest)
		}
	}
}

// CopyStates Copies over all states from other, with their accept flags, but
// none of the transitions.
func (r *Builder) CopyStates(other *Automaton) {
	offset := r.GetNumStates()
	otherNumStates := other.GetNumStates()
	for s := 0; s < otherNumStates; s++ {
		r.CreateState()
		r.SetAccept(offset+s, other.IsAccept(s))
	}
}

// Finish Compiles all added states and transitions into a new Automaton and
// returns it.
func (r *Builder) Finish() *Automaton {
	numTransitions := len(r.transitions) / 4
	a := NewAutomatonV1(r.numStates, numTransitions)
	for s := 0; s < r.numStates; s++ {
		a.CreateState()
		a.SetAccept(s, r.IsAccept(s))
	}

	r.sort(0, numTransitions)

	for i := 0; i < len(r.transitions); i += 4 {
		// Sorted by source; the contiguity constraint of addTransition holds.
		if r.transitions[i+1] == epsilonLabel {
			_ = a.AddEpsilon(r.transitions[i], r.transitions[i+3])
		} else {
			_ = a.addTransition(
				r.transitions[i],
				r.transitions[i+3],
				r.transitions[i+1],
				r.transitions[i+2])
		}
	}

	a.FinishState()
	return a
}

var _ sort.Interface = &builderSorter{}

// Sorts the quadruples by source, then min label, then max label, then dest.
type builderSorter struct {
	values []int
	size   int
}

func (b *builderSorter) Len() int {
	return b.size
}

func (b *builderSorter) Less(i, j int) bool {
	i *= 4
	j *= 4

	if b.values[i] < b.values[j] {
		return true
	} else if b.values[i] > b.values[j] {
		return false
	}

	if b.values[i+1] < b.values[j+1] {
		return true
	} else if b.values[i+1] > b.values[j+1] {
		return false
	}

	if b.values[i+2] < b.values[j+2] {
		return true
	} else if b.values[i+2] > b.values[j+2] {
		return false
	}

	return b.values[i+3] < b.values[j+3]
}

func (b *builderSorter) Swap(i, j int) {
	i *= 4
	j *= 4

	b.values[i], b.values[j] = b.values[j], b.values[i]
	b.values[i+1], b.values[j+1] = b.values[j+1], b.values[i+1]
	b.values[i+2], b.values[j+2] = b.values[j+2], b.values[i+2]
	b.values[i+3], b.values[j+3] = b.values[j+3], b.values[i+3]
}

func (r *Builder) sort(from, to int) {
	sort.Sort(&builderSorter{
		values: r.transitions,
		size:   to - from,
	})
}
