package automaton

// Run Returns true if the given string is accepted by the automaton. The
// automaton must be deterministic; the input is iterated as code points.
//
// Complexity: linear in the length of the string.
func Run(a *Automaton, s string) bool {
	if a.GetNumStates() == 0 {
		return false
	}

	state := 0
	for _, v := range s {
		nextState := a.Step(state, int(v))
		if nextState == -1 {
			return false
		}
		state = nextState
	}
	return a.IsAccept(state)
}

// RunNFA Returns true if the given string is accepted by the automaton,
// without requiring determinism: the current set of states is tracked and
// closed under epsilon transitions after each consumed code point.
//
// Complexity: linear in the length of the string times the number of states.
func RunNFA(a *Automaton, s string) bool {
	if a.GetNumStates() == 0 {
		return false
	}

	current := EpsilonClosure(a, 0)
	t := NewTransition()
	for _, v := range s {
		next := NewStateSet()
		for _, state := range current {
			count := a.InitTransition(state, t)
			for i := 0; i < count; i++ {
				a.GetNextTransition(t)
				if t.IsEpsilon() {
					continue
				}
				if t.Min > int(v) {
					break
				}
				if int(v) <= t.Max {
					for _, c := range EpsilonClosure(a, t.Dest) {
						next.Incr(c)
					}
				}
			}
		}
		if next.Size() == 0 {
			return false
		}
		current = next.GetArray()
	}

	return containsAccept(a, current)
}
