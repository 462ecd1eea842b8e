package emit

import (
	"fmt"
	"io"

	"github.com/scangen/scangen/internal/dfa"
)

// Dot writes a Graphviz DOT graph of d: accepting states are doubly
// outlined and labelled with their token name, the sink is filled grey and
// its self-loop suppressed to keep the rendering legible.
func Dot(w io.Writer, d *dfa.DFA) error {
	names := d.TokenNames()
	if _, err := fmt.Fprintln(w, "digraph dfa {"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "  rankdir=LR;"); err != nil {
		return err
	}

	for s := dfa.StateID(0); s < dfa.StateID(d.NumStates()); s++ {
		shape := "circle"
		label := fmt.Sprintf("%d", s)
		if tok, ok := d.Accept(s); ok {
			shape = "doublecircle"
			if int(tok) < len(names) {
				label = fmt.Sprintf("%d\\n%s", s, names[tok])
			}
		}
		fill := ""
		if s == d.Sink() {
			fill = ", style=filled, fillcolor=lightgrey"
		}
		if _, err := fmt.Fprintf(w, "  %d [shape=%s, label=%q%s];\n", s, shape, label, fill); err != nil {
			return err
		}
	}

	for s := dfa.StateID(0); s < dfa.StateID(d.NumStates()); s++ {
		for _, t := range d.Transitions(s) {
			if s == d.Sink() && t.To == d.Sink() {
				continue
			}
			if _, err := fmt.Fprintf(w, "  %d -> %d [label=%q];\n", s, t.To, t.Class.String()); err != nil {
				return err
			}
		}
	}

	if _, err := fmt.Fprintln(w, "}"); err != nil {
		return err
	}
	return nil
}
