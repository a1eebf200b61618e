package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilderOutOfOrderTransitions(t *testing.T) {
	b := NewBuilder()
	s0 := b.CreateState()
	s1 := b.CreateState()
	s2 := b.CreateState()
	b.SetAccept(s2, true)

	// Transitions in arbitrary source order; Finish must sort them out.
	assert.Nil(t, b.AddTransitionLabel(s1, s2, 'b'))
	assert.Nil(t, b.AddTransitionLabel(s0, s1, 'a'))

	a := b.Finish()
	assert.Equal(t, 3, a.GetNumStates())
	assert.True(t, a.IsDeterministic())
	assert.True(t, Run(a, "ab"))
	assert.False(t, Run(a, "a"))
	assert.False(t, Run(a, "ba"))
}

func TestBuilderEpsilonYieldsNondeterministic(t *testing.T) {
	b := NewBuilder()
	b.CreateState()
	b.CreateState()
	b.SetAccept(1, true)
	b.AddEpsilon(0, 1)

	a := b.Finish()
	assert.False(t, a.IsDeterministic())
	assert.True(t, RunNFA(a, ""))
	assert.False(t, RunNFA(a, "a"))
}

func TestBuilderCopyOffsetsStates(t *testing.T) {
	inner, err := defaultAutomata.MakeString("hi")
	assert.Nil(t, err)

	b := NewBuilder()
	b.CreateState()
	offset := b.GetNumStates()
	b.Copy(inner)
	b.AddEpsilon(0, offset)

	a := b.Finish()
	assert.Equal(t, 1+inner.GetNumStates(), a.GetNumStates())
	assert.True(t, RunNFA(a, "hi"))
	assert.False(t, RunNFA(a, "h"))
}

func TestBuilderInvalidRange(t *testing.T) {
	b := NewBuilder()
	b.CreateState()
	b.CreateState()
	assert.ErrorIs(t, b.AddTransition(0, 1, 'z', 'a'), ErrInvalidRange)
}

func TestBuilderFinishEmpty(t *testing.T) {
	a := NewBuilder().Finish()
	assert.Equal(t, 0, a.GetNumStates())
	assert.True(t, IsEmpty(a))
}
