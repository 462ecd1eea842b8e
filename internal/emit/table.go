// Package emit renders a compiled dfa.DFA through its public accessors
// only: a human-readable table dump and a Graphviz DOT graph. Neither
// renderer is a mandated wire format (spec §6: "No wire format or on-disk
// persistence is mandated for the core"); these are two lossless choices
// among many.
package emit

import (
	"fmt"
	"io"

	"github.com/scangen/scangen/internal/dfa"
)

// Table writes a plain-text transition table: one line per state, its
// accept label if any, and each outgoing (class, target) edge.
func Table(w io.Writer, d *dfa.DFA) error {
	names := d.TokenNames()
	for s := dfa.StateID(0); s < dfa.StateID(d.NumStates()); s++ {
		marker := ""
		if s == d.Initial() {
			marker += " (initial)"
		}
		if s == d.Sink() {
			marker += " (sink)"
		}
		if tok, ok := d.Accept(s); ok {
			label := fmt.Sprintf("%d", tok)
			if int(tok) < len(names) {
				label = names[tok]
			}
			marker += fmt.Sprintf(" (accept: %s)", label)
		}
		if _, err := fmt.Fprintf(w, "state %d%s\n", s, marker); err != nil {
			return err
		}
		for _, t := range d.Transitions(s) {
			if _, err := fmt.Fprintf(w, "  %s -> %d\n", t.Class, t.To); err != nil {
				return err
			}
		}
	}
	return nil
}
