package automaton

import (
	"slices"
	"sort"
	"unicode"

	"github.com/bits-and-blooms/bitset"
)

// DefaultDeterminizeWorkLimit is a decent work limit for Determinize if you
// don't otherwise know what to specify.
const DefaultDeterminizeWorkLimit = 10000

// EpsilonClosure Returns the sorted set of states reachable from the given
// states through zero or more epsilon transitions. The result always contains
// the given states themselves, and the closure of a closure is itself.
func EpsilonClosure(a *Automaton, states ...int) []int {
	seen := bitset.New(uint(a.GetNumStates()))
	stack := make([]int, 0, len(states))
	result := make([]int, 0, len(states))

	for _, q := range states {
		stack = append(stack, q)
	}

	t := NewTransition()
	for len(stack) > 0 {
		q := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen.Test(uint(q)) {
			continue
		}
		seen.Set(uint(q))
		result = append(result, q)

		count := a.InitTransition(q, t)
		for i := 0; i < count; i++ {
			a.GetNextTransition(t)
			// Epsilon transitions sort before all symbol ranges.
			if !t.IsEpsilon() {
				break
			}
			if !seen.Test(uint(t.Dest)) {
				stack = append(stack, t.Dest)
			}
		}
	}

	slices.Sort(result)
	return result
}

// Determinize Determinizes the given automaton using subset construction:
// each reachable set of epsilon-closed input states becomes one state of the
// output, with one transition per disjoint range of the set's outgoing symbol
// ranges. The output recognizes the identical language and its outgoing
// transitions are pairwise disjoint for every state. The input is not
// modified; an already deterministic automaton is returned unchanged.
//
// Worst case complexity: exponential in the number of states. workLimit
// bounds how much effort (roughly, subset-range combinations) the powerset
// construction will spend before giving up with *StateLimitExceededError.
// Use DefaultDeterminizeWorkLimit as a decent default if you don't otherwise
// know what to specify.
func Determinize(a *Automaton, workLimit int) (*Automaton, error) {
	if a.IsDeterministic() {
		// Already determinized
		return a, nil
	}
	if a.GetNumStates() == 0 {
		return a, nil
	}

	// subset construction
	b := NewBuilder()

	// Create state 0 for the epsilon-closure of the initial state. Equal
	// subsets always hash identically, so the map doubles as the visited set.
	b.CreateState()

	initial := EpsilonClosure(a, 0)
	initialSet := NewFrozenIntSet(initial, hashStates(initial), 0)
	b.SetAccept(0, containsAccept(a, initial))

	newState := NewHashMap[int](WithCapacity(16))
	newState.Set(initialSet, 0)

	worklist := make([]*FrozenIntSet, 0, 16)
	worklist = append(worklist, initialSet)

	work := 0
	t := NewTransition()

	for len(worklist) > 0 {
		set := worklist[0]
		worklist = worklist[1:]

		points := subsetStartPoints(a, set.GetArray(), t)

		for i, point := range points {
			work++
			if work > workLimit {
				return nil, &StateLimitExceededError{Limit: workLimit}
			}

			// All states reachable from the subset over a transition whose
			// range covers this point, closed under epsilon reachability.
			statesSet := NewStateSet()
			for _, q := range set.GetArray() {
				count := a.InitTransition(q, t)
				for j := 0; j < count; j++ {
					a.GetNextTransition(t)
					if t.IsEpsilon() {
						continue
					}
					if t.Min > point {
						// Sorted by min; nothing further covers the point.
						break
					}
					if point <= t.Max {
						for _, c := range EpsilonClosure(a, t.Dest) {
							statesSet.Incr(c)
						}
					}
				}
			}

			if statesSet.Size() == 0 {
				continue
			}

			maxLabel := int(unicode.MaxRune)
			if i+1 < len(points) {
				maxLabel = points[i+1] - 1
			}

			frozen := statesSet.Freeze(0)
			q, ok := newState.Get(frozen)
			if !ok {
				q = b.CreateState()
				frozen.state = q
				b.SetAccept(q, containsAccept(a, frozen.GetArray()))
				newState.Set(frozen, q)
				worklist = append(worklist, frozen)
			}

			if err := b.AddTransition(set.state, q, point, maxLabel); err != nil {
				return nil, err
			}
		}
	}

	return b.Finish(), nil
}

// subsetStartPoints collects the sorted interval start points of the symbol
// transitions leaving the given states.
func subsetStartPoints(a *Automaton, states []int, t *Transition) []int {
	pointset := make(map[int]struct{})
	for _, q := range states {
		count := a.InitTransition(q, t)
		for i := 0; i < count; i++ {
			a.GetNextTransition(t)
			if t.IsEpsilon() {
				continue
			}
			pointset[t.Min] = struct{}{}
			if t.Max < unicode.MaxRune {
				pointset[t.Max+1] = struct{}{}
			}
		}
	}

	points := make([]int, 0, len(pointset))
	for k := range pointset {
		points = append(points, k)
	}
	sort.Ints(points)
	return points
}

func containsAccept(a *Automaton, states []int) bool {
	for _, q := range states {
		if a.IsAccept(q) {
			return true
		}
	}
	return false
}

func hashStates(states []int) uint64 {
	h := uint64(len(states))
	for _, v := range states {
		h += uint64(mix(v))
	}
	return h
}
