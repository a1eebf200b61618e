package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	abc, err := defaultAutomata.MakeString("abc")
	require.NoError(t, err)

	digits, err := defaultAutomata.MakeCharRange('0', '9')
	require.NoError(t, err)

	tests := []struct {
		name string
		a    *Automaton
		s    string
		want bool
	}{
		{"Accepted", abc, "abc", true},
		{"Prefix", abc, "ab", false},
		{"Longer", abc, "abcd", false},
		{"EmptyInput", abc, "", false},
		{"RangeLow", digits, "0", true},
		{"RangeHigh", digits, "9", true},
		{"RangeOutside", digits, "a", false},
		{"NoStates", NewAutomaton(), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equalf(t, tt.want, Run(tt.a, tt.s), "Run(%v, %q)", tt.a, tt.s)
		})
	}
}

func TestRunEmptyString(t *testing.T) {
	a := defaultAutomata.MakeEmptyString()
	assert.True(t, Run(a, ""))
	assert.False(t, Run(a, "a"))
}

func TestRunNFA(t *testing.T) {
	// (a|ab)c is nondeterministic: state 0 has two 'a' transitions after the
	// epsilons are chased.
	u := Union(mustChar(t, 'a'), concatChars(t, 'a', 'b'))
	nfa := Concatenate(u, mustChar(t, 'c'))

	tests := []struct {
		s    string
		want bool
	}{
		{"ac", true},
		{"abc", true},
		{"a", false},
		{"ab", false},
		{"bc", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, RunNFA(nfa, tt.s), "RunNFA(%q)", tt.s)
	}

	// A deterministic rendition agrees on every input.
	dfa, err := Determinize(nfa, DefaultDeterminizeWorkLimit)
	require.NoError(t, err)
	for _, s := range stringsOver("abc", 4) {
		assert.Equalf(t, Run(dfa, s), RunNFA(nfa, s), "input %q", s)
	}
}

func TestRunNFAEpsilonOnlyPath(t *testing.T) {
	// Optional wraps the input with epsilons from a fresh accepting state, so
	// the empty string is reachable without consuming anything.
	a := Optional(mustChar(t, 'x'))
	assert.True(t, RunNFA(a, ""))
	assert.True(t, RunNFA(a, "x"))
	assert.False(t, RunNFA(a, "xx"))
}

func concatChars(t *testing.T, chars ...rune) *Automaton {
	t.Helper()
	list := make([]*Automaton, 0, len(chars))
	for _, c := range chars {
		list = append(list, mustChar(t, c))
	}
	return Concatenate(list...)
}
