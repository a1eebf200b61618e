package automaton

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEpsilonClosure(t *testing.T) {
	a := NewAutomaton()
	for i := 0; i < 4; i++ {
		a.CreateState()
	}
	assert.Nil(t, a.AddEpsilon(0, 1))
	assert.Nil(t, a.AddEpsilon(1, 2))
	assert.Nil(t, a.AddTransitionLabel(2, 3, 'a'))
	a.FinishState()

	closure := EpsilonClosure(a, 0)
	assert.Equal(t, []int{0, 1, 2}, closure)

	// Closure of a closure is itself.
	assert.Equal(t, closure, EpsilonClosure(a, closure...))

	// A state without epsilon transitions closes over itself only.
	assert.Equal(t, []int{3}, EpsilonClosure(a, 3))
}

func TestEpsilonClosureCycle(t *testing.T) {
	a := NewAutomaton()
	for i := 0; i < 3; i++ {
		a.CreateState()
	}
	assert.Nil(t, a.AddEpsilon(0, 1))
	assert.Nil(t, a.AddEpsilon(1, 2))
	assert.Nil(t, a.AddEpsilon(2, 0))
	a.FinishState()

	assert.Equal(t, []int{0, 1, 2}, EpsilonClosure(a, 1))
}

func TestDeterminizeMergesOverlap(t *testing.T) {
	a1, err := defaultAutomata.MakeChar('a')
	assert.Nil(t, err)
	a2, err := defaultAutomata.MakeChar('a')
	assert.Nil(t, err)

	u := Union(a1, a2)
	assert.False(t, u.IsDeterministic())

	d, err := Determinize(u, DefaultDeterminizeWorkLimit)
	assert.Nil(t, err)
	assert.True(t, d.IsDeterministic())
	assertDisjointTransitions(t, d)

	assert.True(t, Run(d, "a"))
	assert.False(t, Run(d, "aa"))
	assert.False(t, Run(d, ""))
}

func TestDeterminizeIdentityOnDeterministic(t *testing.T) {
	a, err := defaultAutomata.MakeString("abc")
	assert.Nil(t, err)

	d, err := Determinize(a, DefaultDeterminizeWorkLimit)
	assert.Nil(t, err)
	assert.Same(t, a, d)
}

func TestDeterminizeLanguagePreserved(t *testing.T) {
	// All strings over {a, b} ending in "ab".
	anyAB := Repeat(Union(mustChar(t, 'a'), mustChar(t, 'b')))
	suffix, err := defaultAutomata.MakeString("ab")
	assert.Nil(t, err)
	nfa := Concatenate(anyAB, suffix)
	assert.False(t, nfa.IsDeterministic())

	dfa, err := Determinize(nfa, DefaultDeterminizeWorkLimit)
	assert.Nil(t, err)
	assert.True(t, dfa.IsDeterministic())
	assertDisjointTransitions(t, dfa)

	for _, s := range stringsOver("ab", 6) {
		assert.Equal(t, RunNFA(nfa, s), Run(dfa, s), "input %q", s)
	}
}

func TestDeterminizeRangeSplitting(t *testing.T) {
	// Overlapping ranges toward different accept behavior force the subset
	// construction to split the alphabet at every boundary.
	b := NewBuilder()
	for i := 0; i < 3; i++ {
		b.CreateState()
	}
	b.SetAccept(1, true)
	b.SetAccept(2, true)
	assert.Nil(t, b.AddTransition(0, 1, 'a', 'f'))
	assert.Nil(t, b.AddTransition(0, 2, 'c', 'k'))
	assert.Nil(t, b.AddTransitionLabel(1, 1, 'x'))
	nfa := b.Finish()

	dfa, err := Determinize(nfa, DefaultDeterminizeWorkLimit)
	assert.Nil(t, err)
	assertDisjointTransitions(t, dfa)

	for c := 'a'; c <= 'k'; c++ {
		assert.True(t, Run(dfa, string(c)))
	}
	assert.False(t, Run(dfa, "l"))
	assert.True(t, Run(dfa, "bx"))
	assert.False(t, Run(dfa, "kx"))
}

func TestDeterminizeWorkLimit(t *testing.T) {
	nfa := Union(mustChar(t, 'a'), mustChar(t, 'b'))

	_, err := Determinize(nfa, 1)
	var limitErr *StateLimitExceededError
	assert.True(t, errors.As(err, &limitErr))
	assert.Equal(t, 1, limitErr.Limit)
}

func TestDeterminizeEmpty(t *testing.T) {
	a := defaultAutomata.MakeEmpty()
	d, err := Determinize(a, DefaultDeterminizeWorkLimit)
	assert.Nil(t, err)
	assert.Equal(t, 0, d.GetNumStates())
}

func mustChar(t *testing.T, c rune) *Automaton {
	t.Helper()
	a, err := defaultAutomata.MakeChar(int(c))
	assert.Nil(t, err)
	return a
}

// stringsOver returns every string over the given alphabet up to maxLen runes,
// the empty string included.
func stringsOver(alphabet string, maxLen int) []string {
	result := []string{""}
	last := []string{""}
	for i := 0; i < maxLen; i++ {
		next := make([]string, 0, len(last)*len(alphabet))
		for _, s := range last {
			for _, c := range alphabet {
				next = append(next, s+string(c))
			}
		}
		result = append(result, next...)
		last = next
	}
	return result
}

func assertDisjointTransitions(t *testing.T, a *Automaton) {
	t.Helper()
	scratch := NewTransition()
	for s := 0; s < a.GetNumStates(); s++ {
		count := a.InitTransition(s, scratch)
		lastMax := -1
		for i := 0; i < count; i++ {
			a.GetNextTransition(scratch)
			assert.False(t, scratch.IsEpsilon(), "state %d has an epsilon transition", s)
			assert.Greater(t, scratch.Min, lastMax, "state %d has overlapping transitions", s)
			lastMax = scratch.Max
		}
	}
}
