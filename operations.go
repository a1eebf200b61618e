package automaton

import (
	"bytes"
	"errors"
	"fmt"
	"unicode"

	"github.com/bits-and-blooms/bitset"
)

// Union Returns an automaton that accepts the union of the languages of the
// given automata. The inputs are not modified; the result is not
// deterministic.
func Union(list ...*Automaton) *Automaton {
	result := NewAutomaton()

	// Create initial state
	result.CreateState()

	// Copy over all automata
	for _, a := range list {
		result.Copy(a)
	}

	// Add epsilon transitions from the new initial state to each sub-initial
	// state.
	stateOffset := 1
	for _, a := range list {
		if a.GetNumStates() == 0 {
			continue
		}
		_ = result.AddEpsilon(0, stateOffset)
		stateOffset += a.GetNumStates()
	}

	result.FinishState()
	return result
}

// Concatenate Returns an automaton that accepts the concatenation of the
// languages of the given automata, in order. The inputs are not modified;
// the result is not deterministic.
func Concatenate(list ...*Automaton) *Automaton {
	if len(list) == 0 {
		return defaultAutomata.MakeEmptyString()
	}
	if len(list) == 1 {
		return list[0]
	}

	// Concatenating with the empty language yields the empty language.
	for _, a := range list {
		if IsEmpty(a) {
			return defaultAutomata.MakeEmpty()
		}
	}

	// Link each piece's accept states to the next piece's initial state and
	// clear the intermediate accepts.
	b := NewBuilder()
	stateOffset := 0
	for i, a := range list {
		b.Copy(a)
		numStates := a.GetNumStates()
		if i < len(list)-1 {
			nextStart := stateOffset + numStates
			for s := 0; s < numStates; s++ {
				if !a.IsAccept(s) {
					continue
				}
				b.SetAccept(stateOffset+s, false)
				b.AddEpsilon(stateOffset+s, nextStart)
			}
		}
		stateOffset += numStates
	}

	return b.Finish()
}

// Optional Returns an automaton that accepts the union of the empty string
// and the language of the given automaton. The input is not modified; the
// result is not deterministic.
func Optional(a *Automaton) *Automaton {
	result := NewAutomaton()
	result.CreateState()
	result.SetAccept(0, true)
	if a.GetNumStates() > 0 {
		result.Copy(a)
		_ = result.AddEpsilon(0, 1)
	}
	result.FinishState()
	return result
}

// Repeat Returns an automaton that accepts the Kleene star (zero or more
// concatenated repetitions) of the language of the given automaton. The
// input is not modified; the result is not deterministic.
func Repeat(a *Automaton) *Automaton {
	if a.GetNumStates() == 0 {
		// Repeating the empty language yields the empty string.
		return defaultAutomata.MakeEmptyString()
	}

	b := NewBuilder()
	b.CreateState()
	b.SetAccept(0, true)
	b.Copy(a)

	b.AddEpsilon(0, 1)
	for s := 0; s < a.GetNumStates(); s++ {
		if a.IsAccept(s) {
			b.AddEpsilon(1+s, 0)
		}
	}

	return b.Finish()
}

// RepeatCount Returns an automaton that accepts min or more concatenated
// repetitions of the language of the given automaton.
//
// Complexity: linear in number of states and in min.
func RepeatCount(a *Automaton, count int) (*Automaton, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: {%d,}", ErrInvalidRepetition, count)
	}
	if count == 0 {
		return Repeat(a), nil
	}
	as := make([]*Automaton, 0, count+1)
	for count > 0 {
		as = append(as, a)
		count--
	}
	as = append(as, Repeat(a))
	return Concatenate(as...), nil
}

// RepeatRange Returns an automaton that accepts between min and max
// (including both) concatenated repetitions of the language of the given
// automaton.
//
// Complexity: linear in number of states and in min and max.
func RepeatRange(a *Automaton, min, max int) (*Automaton, error) {
	if min < 0 || min > max {
		return nil, fmt.Errorf("%w: {%d,%d}", ErrInvalidRepetition, min, max)
	}

	if a.GetNumStates() == 0 {
		// No repetition of the empty language is possible beyond zero times.
		if min == 0 {
			return defaultAutomata.MakeEmptyString(), nil
		}
		return defaultAutomata.MakeEmpty(), nil
	}

	var b *Automaton
	if min == 0 {
		b = defaultAutomata.MakeEmptyString()
	} else if min == 1 {
		b = NewAutomaton()
		b.Copy(a)
		b.FinishState()
	} else {
		as := make([]*Automaton, 0, min)
		for i := 0; i < min; i++ {
			as = append(as, a)
		}
		b = Concatenate(as...)
	}

	prevAcceptStates := toSet(b, 0)
	builder := NewBuilder()
	builder.Copy(b)
	for i := min; i < max; i++ {
		numStates := builder.GetNumStates()
		builder.Copy(a)
		for s := range prevAcceptStates {
			builder.AddEpsilon(s, numStates)
		}
		prevAcceptStates = toSet(a, numStates)
	}

	return builder.Finish(), nil
}

func toSet(a *Automaton, offset int) map[int]struct{} {
	numStates := a.GetNumStates()
	isAccept := a.getAcceptStates()
	result := make(map[int]struct{})
	upto := 0
	for upto < numStates {
		value, ok := isAccept.NextSet(uint(upto))
		if !ok || int(value) >= numStates {
			break
		}
		upto = int(value)
		result[offset+upto] = struct{}{}
		upto++
	}
	return result
}

// Intersection Returns an automaton that accepts the intersection of the
// languages of the given automata. Both inputs are determinized first; the
// result is deterministic but may have dead states.
//
// Complexity: quadratic in number of states.
func Intersection(a1, a2 *Automaton) (*Automaton, error) {
	if a1 == a2 {
		return a1, nil
	}

	d1, err := Determinize(a1, DefaultDeterminizeWorkLimit)
	if err != nil {
		return nil, err
	}
	d2, err := Determinize(a2, DefaultDeterminizeWorkLimit)
	if err != nil {
		return nil, err
	}

	if d1.GetNumStates() == 0 || d2.GetNumStates() == 0 {
		return defaultAutomata.MakeEmpty(), nil
	}

	transitions1 := d1.getSortedTransitions()
	transitions2 := d2.getSortedTransitions()

	c := NewAutomaton()
	c.CreateState()
	c.SetAccept(0, d1.IsAccept(0) && d2.IsAccept(0))

	n2 := d2.GetNumStates()
	newStates := NewIntIntHashMap(d1.GetNumStates() + d2.GetNumStates())
	newStates.Put(0, 0)

	worklist := [][3]int{{0, 0, 0}}
	for len(worklist) > 0 {
		p := worklist[0]
		worklist = worklist[1:]

		s1, s2, state := p[0], p[1], p[2]
		t1 := transitions1[s1]
		t2 := transitions2[s2]

		b2 := 0
		for _, u1 := range t1 {
			for b2 < len(t2) && t2[b2].Max < u1.Min {
				b2++
			}
			for n2i := b2; n2i < len(t2); n2i++ {
				u2 := t2[n2i]
				if u2.Min > u1.Max {
					break
				}
				if u1.Max < u2.Min || u2.Max < u1.Min {
					continue
				}

				key := u1.Dest*n2 + u2.Dest
				dest, ok := newStates.Get(key)
				if !ok {
					dest = c.CreateState()
					c.SetAccept(dest, d1.IsAccept(u1.Dest) && d2.IsAccept(u2.Dest))
					newStates.Put(key, dest)
					worklist = append(worklist, [3]int{u1.Dest, u2.Dest, dest})
				}

				min := u1.Min
				if u2.Min > min {
					min = u2.Min
				}
				max := u1.Max
				if u2.Max < max {
					max = u2.Max
				}
				if err := c.AddTransition(state, dest, min, max); err != nil {
					return nil, err
				}
			}
		}
	}

	c.FinishState()
	return c, nil
}

// Complement Returns a deterministic automaton that accepts all strings over
// the full code point alphabet that the given automaton rejects.
func Complement(a *Automaton, determinizeWorkLimit int) (*Automaton, error) {
	d, err := Determinize(a, determinizeWorkLimit)
	if err != nil {
		return nil, err
	}
	t := totalize(d)
	numStates := t.GetNumStates()
	for s := 0; s < numStates; s++ {
		t.SetAccept(s, !t.IsAccept(s))
	}
	return RemoveDeadStates(t)
}

// totalize Returns a deterministic automaton with a transition for every
// label at every state, routing the previously missing labels to a fresh
// rejecting sink state.
func totalize(a *Automaton) *Automaton {
	result := NewAutomaton()
	numStates := a.GetNumStates()
	for s := 0; s < numStates; s++ {
		result.CreateState()
		result.SetAccept(s, a.IsAccept(s))
	}

	deadState := result.CreateState()
	if err := result.AddTransition(deadState, deadState, 0, unicode.MaxRune); err != nil {
		panic(err)
	}

	t := NewTransition()
	for s := 0; s < numStates; s++ {
		maxi := 0
		count := a.InitTransition(s, t)
		for i := 0; i < count; i++ {
			a.GetNextTransition(t)
			if err := result.AddTransition(s, t.Dest, t.Min, t.Max); err != nil {
				panic(err)
			}
			if t.Min > maxi {
				if err := result.AddTransition(s, deadState, maxi, t.Min-1); err != nil {
					panic(err)
				}
			}
			if t.Max+1 > maxi {
				maxi = t.Max + 1
			}
		}

		if maxi <= unicode.MaxRune {
			if err := result.AddTransition(s, deadState, maxi, unicode.MaxRune); err != nil {
				panic(err)
			}
		}
	}

	result.FinishState()
	return result
}

// Reverse Returns an automaton accepting the reverse (mirror image) of the
// language of the given automaton. The result is not deterministic.
func Reverse(a *Automaton) *Automaton {
	if IsEmpty(a) {
		return NewAutomaton()
	}

	numStates := a.GetNumStates()

	b := NewBuilder()
	// Initial node; epsilon to every old accept state.
	b.CreateState()
	for s := 0; s < numStates; s++ {
		b.CreateState()
	}
	b.SetAccept(1, true)

	for s := 0; s < numStates; s++ {
		if a.IsAccept(s) {
			b.AddEpsilon(0, s+1)
		}
	}

	t := NewTransition()
	for s := 0; s < numStates; s++ {
		count := a.InitTransition(s, t)
		for i := 0; i < count; i++ {
			a.GetNextTransition(t)
			if t.IsEpsilon() {
				b.AddEpsilon(t.Dest+1, s+1)
			} else {
				if err := b.AddTransition(t.Dest+1, s+1, t.Min, t.Max); err != nil {
					panic(err)
				}
			}
		}
	}

	return b.Finish()
}

// RemoveDeadStates Returns an automaton with the same language but without
// dead states: every remaining state is reachable from the initial state and
// reaches an accept state.
func RemoveDeadStates(a *Automaton) (*Automaton, error) {
	numStates := a.GetNumStates()
	liveSet := getLiveStates(a)

	mp := make([]int, numStates)

	result := NewAutomaton()
	for s := 0; s < numStates; s++ {
		if liveSet.Test(uint(s)) {
			mp[s] = result.CreateState()
			result.SetAccept(mp[s], a.IsAccept(s))
		}
	}

	t := NewTransition()
	for s := 0; s < numStates; s++ {
		if !liveSet.Test(uint(s)) {
			continue
		}
		count := a.InitTransition(s, t)
		for i := 0; i < count; i++ {
			a.GetNextTransition(t)
			if !liveSet.Test(uint(t.Dest)) {
				continue
			}
			if t.IsEpsilon() {
				_ = result.AddEpsilon(mp[s], mp[t.Dest])
				continue
			}
			if err := result.AddTransition(mp[s], mp[t.Dest], t.Min, t.Max); err != nil {
				return nil, err
			}
		}
	}

	result.FinishState()
	return result, nil
}

func getLiveStates(a *Automaton) *bitset.BitSet {
	live := getLiveStatesFromInitial(a)
	live.InPlaceIntersection(getLiveStatesToAccept(a))
	return live
}

// getLiveStatesFromInitial Returns a bitset marking the states reachable from
// the initial state.
func getLiveStatesFromInitial(a *Automaton) *bitset.BitSet {
	numStates := a.GetNumStates()
	live := bitset.New(uint(numStates))
	if numStates == 0 {
		return live
	}

	workList := []int{0}
	live.Set(0)

	t := NewTransition()
	for len(workList) > 0 {
		s := workList[0]
		workList = workList[1:]

		count := a.InitTransition(s, t)
		for i := 0; i < count; i++ {
			a.GetNextTransition(t)
			if !live.Test(uint(t.Dest)) {
				live.Set(uint(t.Dest))
				workList = append(workList, t.Dest)
			}
		}
	}

	return live
}

// getLiveStatesToAccept Returns a bitset marking the states that can reach an
// accept state.
func getLiveStatesToAccept(a *Automaton) *bitset.BitSet {
	numStates := a.GetNumStates()
	live := bitset.New(uint(numStates))

	// Reverse adjacency.
	backward := make([][]int, numStates)
	t := NewTransition()
	for s := 0; s < numStates; s++ {
		count := a.InitTransition(s, t)
		for i := 0; i < count; i++ {
			a.GetNextTransition(t)
			backward[t.Dest] = append(backward[t.Dest], s)
		}
	}

	workList := make([]int, 0, numStates)
	for s := 0; s < numStates; s++ {
		if a.IsAccept(s) {
			live.Set(uint(s))
			workList = append(workList, s)
		}
	}

	for len(workList) > 0 {
		s := workList[0]
		workList = workList[1:]
		for _, prev := range backward[s] {
			if !live.Test(uint(prev)) {
				live.Set(uint(prev))
				workList = append(workList, prev)
			}
		}
	}

	return live
}

func hasDeadStatesFromInitial(a *Automaton) bool {
	reachableFromInitial := getLiveStatesFromInitial(a)
	reachableFromAccept := getLiveStatesToAccept(a)
	return reachableFromInitial.Difference(reachableFromAccept).Count() > 0
}

// IsEmpty Reports whether the given automaton accepts no strings.
func IsEmpty(a *Automaton) bool {
	if a.GetNumStates() == 0 {
		// Common case: no states
		return true
	}

	if !a.IsAccept(0) && a.GetNumTransitionsWithState(0) == 0 {
		// Common case: just one initial state
		return true
	}
	if a.IsAccept(0) {
		// Apparently common case: it accepts the empty string
		return false
	}

	workList := []int{0}
	seen := bitset.New(uint(a.GetNumStates()))
	seen.Set(0)

	t := NewTransition()
	for len(workList) > 0 {
		state := workList[0]
		workList = workList[1:]

		if a.IsAccept(state) {
			return false
		}

		count := a.InitTransition(state, t)
		for i := 0; i < count; i++ {
			a.GetNextTransition(t)
			if !seen.Test(uint(t.Dest)) {
				seen.Set(uint(t.Dest))
				workList = append(workList, t.Dest)
			}
		}
	}

	return true
}

// IsTotal Reports whether the given automaton accepts all strings. The
// automaton must be deterministic and have no dead states.
func IsTotal(a *Automaton) bool {
	return IsTotalRange(a, 0, unicode.MaxRune)
}

// IsTotalRange Reports whether the given automaton accepts all strings over
// the label interval minAlphabet to maxAlphabet (including both). The
// automaton must be deterministic and have no dead states.
func IsTotalRange(a *Automaton, minAlphabet, maxAlphabet int) bool {
	if a.GetNumStates() != 1 {
		return false
	}
	if !a.IsAccept(0) {
		return false
	}
	if a.GetNumTransitionsWithState(0) != 1 {
		return false
	}

	t := NewTransition()
	a.getTransition(0, 0, t)
	return t.Dest == 0 && t.Min == minAlphabet && t.Max == maxAlphabet
}

// GetSingleton If the given automaton accepts exactly one string, returns
// that string as code points, otherwise returns nil. The automaton must be
// deterministic.
func GetSingleton(a *Automaton) []rune {
	if !a.IsDeterministic() {
		panic("input automaton must be deterministic")
	}

	if a.GetNumStates() == 0 {
		return nil
	}

	ints := make([]rune, 0)
	visited := make(map[int]struct{})

	s := 0
	t := NewTransition()
	for {
		visited[s] = struct{}{}

		if a.IsAccept(s) {
			if a.GetNumTransitionsWithState(s) != 0 {
				return nil
			}
			return ints
		}

		if a.GetNumTransitionsWithState(s) != 1 {
			return nil
		}

		a.getTransition(s, 0, t)
		if t.Min != t.Max {
			return nil
		}
		if _, ok := visited[t.Dest]; ok {
			return nil
		}

		ints = append(ints, rune(t.Min))
		s = t.Dest
	}
}

// IsFinite Reports whether the language of the given automaton is finite.
// The automaton must be deterministic and free of epsilon transitions.
func IsFinite(a *Automaton) bool {
	if a.GetNumStates() == 0 {
		return true
	}
	numStates := uint(a.GetNumStates())
	return isFinite(NewTransition(), a, 0,
		bitset.New(numStates), bitset.New(numStates), 0)
}

// isFinite Checks whether there is a loop containing state (via a DFS over
// the path bitset); visited marks the states already cleared.
func isFinite(scratch *Transition, a *Automaton, state int, path, visited *bitset.BitSet, level int) bool {
	if level > a.GetNumStates() {
		return false
	}

	path.Set(uint(state))

	numTransitions := a.InitTransition(state, scratch)
	for t := 0; t < numTransitions; t++ {
		a.getTransition(state, t, scratch)
		if path.Test(uint(scratch.Dest)) {
			return false
		}
		if !visited.Test(uint(scratch.Dest)) &&
			!isFinite(scratch, a, scratch.Dest, path, visited, level+1) {
			return false
		}
	}

	path.Clear(uint(state))
	visited.Set(uint(state))
	return true
}

// GetCommonPrefix Returns the longest string that is a prefix of all accepted
// strings and visits each state at most once. The automaton must be
// deterministic and have no dead states.
func GetCommonPrefix(a *Automaton) (string, error) {
	if !a.IsDeterministic() {
		return "", errors.New("input automaton must be deterministic")
	}
	if hasDeadStatesFromInitial(a) {
		return "", errors.New("input automaton has dead states")
	}
	if IsEmpty(a) {
		return "", nil
	}

	builder := new(bytes.Buffer)
	scratch := NewTransition()
	visited := bitset.New(uint(a.GetNumStates()))
	current := bitset.New(uint(a.GetNumStates()))
	next := bitset.New(uint(a.GetNumStates()))

	current.Set(0)
	for {
		label := -1
		// do a pass, looking for the next label to add to the current prefix
		for state, ok := current.NextSet(0); ok; state, ok = current.NextSet(state + 1) {
			visited.Set(state)

			if a.IsAccept(int(state)) {
				// this state is a final state, so the common prefix stops here
				label = -1
				break
			}

			if a.GetNumTransitionsWithState(int(state)) > 1 {
				// this state has more than one transition, so the common
				// prefix stops here
				label = -1
				break
			}

			a.getTransition(int(state), 0, scratch)
			if scratch.Min != scratch.Max {
				label = -1
				break
			}

			if label == -1 {
				label = scratch.Min
			} else if label != scratch.Min {
				label = -1
				break
			}
		}

		if label == -1 {
			break
		}

		// add the label to the prefix and monitor for loops
		builder.WriteRune(rune(label))
		next.ClearAll()
		for state, ok := current.NextSet(0); ok; state, ok = current.NextSet(state + 1) {
			a.getTransition(int(state), 0, scratch)
			if visited.Test(uint(scratch.Dest)) {
				// we found a loop; stop
				return builder.String(), nil
			}
			next.Set(uint(scratch.Dest))
		}
		current, next = next, current
	}

	return builder.String(), nil
}

// GetCommonSuffixBytes Returns the longest byte sequence that is a suffix of
// all accepted strings, for an automaton whose labels are bytes.
func GetCommonSuffixBytes(a *Automaton, determinizeWorkLimit int) ([]byte, error) {
	// reverse the language of the automaton, then reverse its common prefix.
	rev := Reverse(a)
	det, err := Determinize(rev, determinizeWorkLimit)
	if err != nil {
		return nil, err
	}
	trimmed, err := RemoveDeadStates(det)
	if err != nil {
		return nil, err
	}
	prefix, err := GetCommonPrefix(trimmed)
	if err != nil {
		return nil, err
	}

	result := make([]byte, 0, len(prefix))
	for _, r := range prefix {
		if r > 0xFF {
			return nil, fmt.Errorf("automaton labels exceed byte range: %#U", r)
		}
		result = append(result, byte(r))
	}
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	return result, nil
}
