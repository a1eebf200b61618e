package automaton

import (
	"fmt"
	"io"
	"strconv"
)

// ExportDot Writes the automaton to w in Graphviz DOT format. Accept states
// are drawn with a double circle and the initial state is marked with an
// incoming arrow from a point node. Epsilon transitions are labeled with the
// epsilon glyph.
func ExportDot(w io.Writer, a *Automaton) error {
	if _, err := fmt.Fprintln(w, "digraph automaton {"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "    rankdir=LR;"); err != nil {
		return err
	}

	numStates := a.GetNumStates()
	if numStates > 0 {
		if _, err := fmt.Fprintln(w, "    _start [shape=point];"); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, "    _start -> q0;"); err != nil {
			return err
		}
	}

	t := NewTransition()
	for s := 0; s < numStates; s++ {
		shape := "circle"
		if a.IsAccept(s) {
			shape = "doublecircle"
		}
		if _, err := fmt.Fprintf(w, "    q%d [shape=%s];\n", s, shape); err != nil {
			return err
		}

		count := a.InitTransition(s, t)
		for i := 0; i < count; i++ {
			a.GetNextTransition(t)
			if _, err := fmt.Fprintf(w, "    q%d -> q%d [label=%s];\n",
				s, t.Dest, strconv.Quote(dotLabel(t))); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintln(w, "}")
	return err
}

func dotLabel(t *Transition) string {
	if t.IsEpsilon() {
		return "ε"
	}
	if t.Min == t.Max {
		return dotRune(t.Min)
	}
	return dotRune(t.Min) + "-" + dotRune(t.Max)
}

func dotRune(c int) string {
	if c >= 0x21 && c <= 0x7e && c != '\\' && c != '"' {
		return string(rune(c))
	}
	return fmt.Sprintf("U+%04X", c)
}
