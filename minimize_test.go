package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinimizeCollapsesEquivalentStates(t *testing.T) {
	u := Union(mustChar(t, 'a'), mustChar(t, 'a'))

	m, err := Minimize(u, DefaultDeterminizeWorkLimit)
	assert.Nil(t, err)

	assert.Equal(t, 2, m.GetNumStates())
	assert.False(t, m.IsAccept(0))
	assert.True(t, m.IsAccept(1))
	assert.Equal(t, 1, m.Step(0, 'a'))
	assert.True(t, Run(m, "a"))
	assert.False(t, Run(m, "aa"))
}

func TestMinimizeEmptyLanguage(t *testing.T) {
	m, err := Minimize(defaultAutomata.MakeEmpty(), DefaultDeterminizeWorkLimit)
	assert.Nil(t, err)
	assert.Equal(t, 0, m.GetNumStates())

	// A language that is empty only because every path dies also minimizes
	// to the automaton with no states.
	a := NewAutomaton()
	a.CreateState()
	a.CreateState()
	assert.Nil(t, a.AddTransitionLabel(0, 1, 'a'))
	a.FinishState()

	m, err = Minimize(a, DefaultDeterminizeWorkLimit)
	assert.Nil(t, err)
	assert.Equal(t, 0, m.GetNumStates())
}

func TestMinimizeRemovesDeadStates(t *testing.T) {
	a := NewAutomaton()
	for i := 0; i < 3; i++ {
		a.CreateState()
	}
	a.SetAccept(1, true)
	// State 2 never reaches an accept state.
	assert.Nil(t, a.AddTransitionLabel(0, 1, 'a'))
	assert.Nil(t, a.AddTransitionLabel(0, 2, 'b'))
	a.FinishState()

	m, err := Minimize(a, DefaultDeterminizeWorkLimit)
	assert.Nil(t, err)
	assert.Equal(t, 2, m.GetNumStates())
	assert.True(t, Run(m, "a"))
	assert.False(t, Run(m, "b"))
}

func TestMinimizeDoesNotGrow(t *testing.T) {
	patterns := []string{"a", "abc", "a|b|c", "(ab)*c", "[a-m]+x", "a{2,5}"}
	for _, p := range patterns {
		re, err := NewRegExp(p)
		assert.Nil(t, err)
		nfa, err := re.ToNFA(DefaultDeterminizeWorkLimit)
		assert.Nil(t, err)
		dfa, err := Determinize(nfa, DefaultDeterminizeWorkLimit)
		assert.Nil(t, err)
		m, err := Minimize(dfa, DefaultDeterminizeWorkLimit)
		assert.Nil(t, err)
		assert.LessOrEqual(t, m.GetNumStates(), dfa.GetNumStates(), "pattern %q", p)
	}
}

func TestMinimizeIdempotent(t *testing.T) {
	re, err := NewRegExp("(ab|cd)*ef")
	assert.Nil(t, err)
	a, err := re.ToAutomaton(DefaultDeterminizeWorkLimit)
	assert.Nil(t, err)

	m, err := Minimize(a, DefaultDeterminizeWorkLimit)
	assert.Nil(t, err)
	assertSameAutomaton(t, a, m)
}

func TestMinimizeCanonicalLayout(t *testing.T) {
	// Structurally different expressions of one language minimize to
	// identical automata, state numbering included.
	pairs := [][2]string{
		{"ab|ac", "a(b|c)"},
		{"a*", "(a|aa)*"},
		{"(a|b)(a|b)", "aa|ab|ba|bb"},
		{"[a-k]", "[a-e]|[f-k]"},
	}

	for _, pair := range pairs {
		re1, err := NewRegExp(pair[0])
		assert.Nil(t, err)
		re2, err := NewRegExp(pair[1])
		assert.Nil(t, err)

		a1, err := re1.ToAutomaton(DefaultDeterminizeWorkLimit)
		assert.Nil(t, err)
		a2, err := re2.ToAutomaton(DefaultDeterminizeWorkLimit)
		assert.Nil(t, err)

		assertSameAutomaton(t, a1, a2)
	}
}

// assertSameAutomaton requires both automata to have identical states, accept
// flags and transition lists, not merely the same language.
func assertSameAutomaton(t *testing.T, want, got *Automaton) {
	t.Helper()

	if !assert.Equal(t, want.GetNumStates(), got.GetNumStates()) {
		return
	}

	wantT := NewTransition()
	gotT := NewTransition()
	for s := 0; s < want.GetNumStates(); s++ {
		assert.Equal(t, want.IsAccept(s), got.IsAccept(s), "accept flag of state %d", s)

		wantCount := want.InitTransition(s, wantT)
		gotCount := got.InitTransition(s, gotT)
		if !assert.Equal(t, wantCount, gotCount, "transition count of state %d", s) {
			continue
		}
		for i := 0; i < wantCount; i++ {
			want.GetNextTransition(wantT)
			got.GetNextTransition(gotT)
			assert.Equal(t, wantT.Dest, gotT.Dest, "transition %d of state %d", i, s)
			assert.Equal(t, wantT.Min, gotT.Min, "transition %d of state %d", i, s)
			assert.Equal(t, wantT.Max, gotT.Max, "transition %d of state %d", i, s)
		}
	}
}
