package automaton

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Automata is a construction factory for the automata of the leaf syntax-tree
// nodes: single symbols, symbol ranges, string literals and decimal intervals.
type Automata struct {
}

var defaultAutomata = &Automata{}

// MakeEmpty
// Returns a new (deterministic) automaton with the empty language.
func (*Automata) MakeEmpty() *Automaton {
	a := NewAutomaton()
	a.FinishState()
	return a
}

// MakeEmptyString
// Returns a new (deterministic) automaton that accepts only the empty string.
func (*Automata) MakeEmptyString() *Automaton {
	a := NewAutomaton()
	a.CreateState()
	a.SetAccept(0, true)
	return a
}

// MakeAnyString
// Returns a new (deterministic) automaton that accepts all strings.
func (*Automata) MakeAnyString() (*Automaton, error) {
	a := NewAutomaton()
	s := a.CreateState()
	a.SetAccept(s, true)
	if err := a.AddTransition(s, s, 0, unicode.MaxRune); err != nil {
		return nil, err
	}
	a.FinishState()
	return a, nil
}

// MakeAnyChar
// Returns a new (deterministic) automaton that accepts any single codepoint.
func (a *Automata) MakeAnyChar() (*Automaton, error) {
	return a.MakeCharRange(0, unicode.MaxRune)
}

func (*Automata) MakeAnyBinary() (*Automaton, error) {
	a := NewAutomaton()
	s := a.CreateState()
	a.SetAccept(s, true)
	if err := a.AddTransition(s, s, 0, math.MaxUint8); err != nil {
		return nil, err
	}
	a.FinishState()
	return a, nil
}

// MakeChar
// Returns a new (deterministic) automaton that accepts the single given
// codepoint.
func (a *Automata) MakeChar(c int) (*Automaton, error) {
	return a.MakeCharRange(c, c)
}

// MakeCharRange
// Returns a new (deterministic) automaton that accepts a single codepoint in
// the given range, bounds inclusive. A range with from > to is rejected with
// ErrInvalidRange.
func (*Automata) MakeCharRange(from, to int) (*Automaton, error) {
	a := NewAutomaton()
	s1 := a.CreateState()
	s2 := a.CreateState()
	a.SetAccept(s2, true)
	if err := a.AddTransition(s1, s2, from, to); err != nil {
		return nil, err
	}
	a.FinishState()
	return a, nil
}

// MakeString
// Returns a new (deterministic) automaton that accepts the single given
// string.
func (*Automata) MakeString(s string) (*Automaton, error) {
	a := NewAutomaton()
	last := a.CreateState()
	for _, r := range s {
		state := a.CreateState()
		if err := a.AddTransitionLabel(last, state, int(r)); err != nil {
			return nil, err
		}
		last = state
	}
	a.SetAccept(last, true)
	a.FinishState()
	return a, nil
}

// MakeDecimalInterval
// Returns a new automaton that accepts strings representing decimal
// (base 10) non-negative integers in the given interval, bounds inclusive.
//
// digits: if > 0, use the fixed number of digits (strings must be prefixed by
// leading zeros to obtain the right length); otherwise, the number of digits
// is not fixed and any number of leading zeros is accepted.
func (*Automata) MakeDecimalInterval(min, max, digits int) (*Automaton, error) {
	x := strconv.Itoa(min)
	y := strconv.Itoa(max)

	if min > max || (digits > 0 && len(y) > digits) {
		return nil, fmt.Errorf("%w: decimal interval %d..%d with %d digits", ErrInvalidRange, min, max, digits)
	}

	d := digits
	if d <= 0 {
		d = len(y)
	}
	x = strings.Repeat("0", d-len(x)) + x
	y = strings.Repeat("0", d-len(y)) + y

	builder := NewBuilder()
	if digits <= 0 {
		// Reserve the real initial state holding the leading-zeros loop:
		builder.CreateState()
	}

	initials := make([]int, 0)
	between(builder, x, y, 0, &initials, digits <= 0)

	a := builder.Finish()

	if digits <= 0 {
		if err := a.AddTransitionLabel(0, 0, '0'); err != nil {
			return nil, err
		}
		for _, p := range initials {
			if err := a.AddEpsilon(0, p); err != nil {
				return nil, err
			}
		}
		a.FinishState()
	}

	return a, nil
}

// Accepts any sequence of digits of the remaining length of x.
func anyOfRightLength(builder *Builder, x string, n int) int {
	s := builder.CreateState()
	if len(x) == n {
		builder.SetAccept(s, true)
	} else {
		_ = builder.AddTransition(s, anyOfRightLength(builder, x, n+1), '0', '9')
	}
	return s
}

// Accepts any suffix at least as large as the suffix of x starting at n.
func atLeast(builder *Builder, x string, n int, initials *[]int, zeros bool) int {
	s := builder.CreateState()
	if len(x) == n {
		builder.SetAccept(s, true)
	} else {
		if zeros {
			*initials = append(*initials, s)
		}
		c := int(x[n])
		_ = builder.AddTransitionLabel(s, atLeast(builder, x, n+1, initials, zeros && c == '0'), c)
		if c < '9' {
			_ = builder.AddTransition(s, anyOfRightLength(builder, x, n+1), c+1, '9')
		}
	}
	return s
}

// Accepts any suffix at most as large as the suffix of x starting at n.
func atMost(builder *Builder, x string, n int) int {
	s := builder.CreateState()
	if len(x) == n {
		builder.SetAccept(s, true)
	} else {
		c := int(x[n])
		_ = builder.AddTransitionLabel(s, atMost(builder, x, n+1), c)
		if c > '0' {
			_ = builder.AddTransition(s, anyOfRightLength(builder, x, n+1), '0', c-1)
		}
	}
	return s
}

// Accepts any suffix between the suffixes of x and y starting at n.
func between(builder *Builder, x, y string, n int, initials *[]int, zeros bool) int {
	s := builder.CreateState()
	if len(x) == n {
		builder.SetAccept(s, true)
	} else {
		if zeros {
			*initials = append(*initials, s)
		}
		cx := int(x[n])
		cy := int(y[n])
		if cx == cy {
			_ = builder.AddTransitionLabel(s, between(builder, x, y, n+1, initials, zeros && cx == '0'), cx)
		} else {
			// cx < cy
			_ = builder.AddTransitionLabel(s, atLeast(builder, x, n+1, initials, zeros && cx == '0'), cx)
			_ = builder.AddTransitionLabel(s, atMost(builder, y, n+1), cy)
			if cx+1 < cy {
				_ = builder.AddTransition(s, anyOfRightLength(builder, x, n+1), cx+1, cy-1)
			}
		}
	}
	return s
}
