package main

import (
	"fmt"
	"os"

	"github.com/regexkit/automaton"
	"github.com/spf13/cobra"
)

var (
	form      string
	workLimit int
	output    string
)

func main() {
	cmd := &cobra.Command{
		Use:   "automviz <pattern>",
		Short: "Render the automaton of a regular expression as Graphviz DOT",
		Long: `automviz parses a regular expression, compiles it to an automaton and
writes the automaton to stdout (or a file) in Graphviz DOT format.

The --form flag selects the compilation stage to render: the raw NFA with
its epsilon transitions, the determinized DFA, or the minimal canonical DFA.`,
		Args:         cobra.ExactArgs(1),
		RunE:         run,
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&form, "form", "min", "stage to render: nfa, dfa or min")
	cmd.Flags().IntVar(&workLimit, "work-limit", automaton.DefaultDeterminizeWorkLimit,
		"maximum determinization effort before giving up")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file, or - for stdout")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	re, err := automaton.NewRegExp(args[0])
	if err != nil {
		return fmt.Errorf("parsing pattern: %w", err)
	}

	var a *automaton.Automaton
	switch form {
	case "nfa":
		a, err = re.ToNFA(workLimit)
	case "dfa":
		a, err = re.ToNFA(workLimit)
		if err == nil {
			a, err = automaton.Determinize(a, workLimit)
		}
	case "min":
		a, err = re.ToAutomaton(workLimit)
	default:
		return fmt.Errorf("unknown form %q: want nfa, dfa or min", form)
	}
	if err != nil {
		return fmt.Errorf("compiling pattern: %w", err)
	}

	w := os.Stdout
	if output != "-" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	return automaton.ExportDot(w, a)
}
