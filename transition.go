package automaton

// epsilonLabel marks a transition consumable without reading a symbol. Epsilon
// transitions sort before every symbol range, so closure walks can stop at the
// first symbol transition of a state.
const epsilonLabel = -1

// Transition is a reusable view over one packed transition of an Automaton.
// Fill it with InitTransition and advance it with GetNextTransition.
type Transition struct {
	Source int
	Dest   int
	Min    int
	Max    int

	// TransitionUpto is the index into the packed transitions array of the
	// next transition to read, or, after a call to Next, the index of the
	// matched transition for the source state.
	TransitionUpto int
}

func NewTransition() *Transition {
	return &Transition{Source: -1, Dest: -1, TransitionUpto: -1}
}

// IsEpsilon reports whether this transition consumes no input symbol.
func (t *Transition) IsEpsilon() bool {
	return t.Min == epsilonLabel && t.Max == epsilonLabel
}
