// Package dfa builds and runs the table-driven automaton the scanner
// generator emits: a worklist-based Brzozowski-derivative construction keyed
// on regex.Expr identity (spec §4.4), dead-state collapsing to a single
// sink, and a reference interpreter implementing maximal-munch tokenization
// (spec §4.5).
package dfa

import (
	"github.com/scangen/scangen/internal/charset"
	"github.com/scangen/scangen/internal/regex"
)

// StateID identifies a DFA state. States are numbered 0..n-1; 0 is always
// the initial state.
type StateID int

// Transition is one outgoing edge: any code point in Class steps to To.
// Per-state transitions partition the full code-point range, so exactly one
// Transition matches any input code point.
type Transition struct {
	Class charset.Set
	To    StateID
}

// DFA is the immutable, self-contained result of compiling a TokenSpec: only
// state-level data survives (spec §5), so the regex.Interner that built it
// can be discarded.
type DFA struct {
	transitions [][]Transition
	accept      []acceptInfo
	tokenNames  []string
	sink        StateID
}

type acceptInfo struct {
	token regex.TokenID
	ok    bool
}

// Initial returns the start state, always 0.
func (d *DFA) Initial() StateID { return 0 }

// NumStates returns the number of states, including the sink.
func (d *DFA) NumStates() int { return len(d.transitions) }

// Sink returns the id of the single collapsed dead state.
func (d *DFA) Sink() StateID { return d.sink }

// Transitions returns s's outgoing edges, a partition of the full code-point
// range sorted by charset.Set.Compare.
func (d *DFA) Transitions(s StateID) []Transition { return d.transitions[s] }

// Accept reports whether s is an accepting state and, if so, which token it
// accepts.
func (d *DFA) Accept(s StateID) (regex.TokenID, bool) {
	a := d.accept[s]
	return a.token, a.ok
}

// TokenNames returns declared token names indexed by regex.TokenID.
func (d *DFA) TokenNames() []string { return d.tokenNames }

// Step advances from s on code point c. Total: transition classes always
// partition Σ, so this never fails to find an edge.
func (d *DFA) Step(s StateID, c rune) StateID {
	for _, t := range d.transitions[s] {
		if t.Class.Contains(int(c)) {
			return t.To
		}
	}
	panic("dfa: transition classes did not cover code point; builder invariant violated")
}
