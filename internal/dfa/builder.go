package dfa

import (
	"sort"

	"github.com/scangen/scangen/internal/charset"
	"github.com/scangen/scangen/internal/regex"
)

// rawTransition mirrors Transition but targets a pre-collapse state index,
// kept separate so collapseDeadStates can remap targets without touching
// the public Transition type.
type rawTransition struct {
	class charset.Set
	to    int
}

// Build runs the worklist construction of spec §4.4 over root (normally
// Spec.Root's Tag-wrapped Alt), then collapses dead states into a single
// sink (spec §4.4, "Dead-state collapsing"). names indexes token display
// names by regex.TokenID for DFA.TokenNames.
func Build(in *regex.Interner, root *regex.Expr, names []string) (*DFA, error) {
	stateOf := map[*regex.Expr]int{root: 0}
	exprOf := []*regex.Expr{root}
	worklist := []*regex.Expr{root}

	var transitions [][]rawTransition

	for len(worklist) > 0 {
		e := worklist[0]
		worklist = worklist[1:]
		id := stateOf[e]

		for len(transitions) <= id {
			transitions = append(transitions, nil)
		}

		classes := regex.Partition(e)
		for _, class := range classes {
			rep, ok := representative(class)
			if !ok {
				continue // class is empty; cannot happen for a real partition member
			}
			next, err := in.Derivative(e, rep)
			if err != nil {
				return nil, err
			}
			nextID, seen := stateOf[next]
			if !seen {
				nextID = len(exprOf)
				stateOf[next] = nextID
				exprOf = append(exprOf, next)
				worklist = append(worklist, next)
			}
			transitions[id] = append(transitions[id], rawTransition{class: class, to: nextID})
		}
	}

	for len(transitions) < len(exprOf) {
		transitions = append(transitions, nil)
	}

	accept := make([]acceptInfo, len(exprOf))
	for i, e := range exprOf {
		tok, ok := regex.Accept(e)
		accept[i] = acceptInfo{token: tok, ok: ok}
	}

	transitions, accept, sink := collapseDeadStates(transitions, accept)

	d := &DFA{
		transitions: make([][]Transition, len(transitions)),
		accept:      accept,
		tokenNames:  names,
		sink:        StateID(sink),
	}
	for i, ts := range transitions {
		sort.Slice(ts, func(a, b int) bool { return ts[a].class.Compare(ts[b].class) < 0 })
		out := make([]Transition, len(ts))
		for j, t := range ts {
			out[j] = Transition{Class: t.class, To: StateID(t.to)}
		}
		d.transitions[i] = out
	}
	return d, nil
}

// representative picks any code point from a non-empty class; any point in
// the class induces the same derivative by construction of Partition, so
// which one is chosen is immaterial.
func representative(s charset.Set) (rune, bool) {
	ranges := s.Ranges()
	if len(ranges) == 0 {
		return 0, false
	}
	return rune(ranges[0].Lo), true
}

// collapseDeadStates replaces every state from which no accepting state is
// reachable with a single non-accepting sink carrying a Σ self-loop (spec
// §4.4). Reachability is computed by reverse BFS from accepting states over
// the transition graph.
func collapseDeadStates(transitions [][]rawTransition, accept []acceptInfo) ([][]rawTransition, []acceptInfo, int) {
	n := len(transitions)
	reverse := make([][]int, n)
	for from, edges := range transitions {
		for _, e := range edges {
			reverse[e.to] = append(reverse[e.to], from)
		}
	}

	live := make([]bool, n)
	var queue []int
	for i, a := range accept {
		if a.ok {
			live[i] = true
			queue = append(queue, i)
		}
	}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for _, from := range reverse[s] {
			if !live[from] {
				live[from] = true
				queue = append(queue, from)
			}
		}
	}

	dead := make([]int, 0, n)
	for i, ok := range live {
		if !ok {
			dead = append(dead, i)
		}
	}
	if len(dead) <= 1 {
		// Nothing to collapse: at most one dead state already, or none.
		sink := -1
		if len(dead) == 1 {
			sink = dead[0]
		}
		return ensureSink(transitions, accept, sink)
	}

	// Remap: every live state keeps a fresh, densely packed index preserving
	// original relative order; every dead state maps to one sink index placed
	// right after the live states.
	remap := make([]int, n)
	newIndex := make([]int, n)
	next := 0
	for i, ok := range live {
		if ok {
			newIndex[i] = next
			next++
		}
	}
	sinkNewIndex := next
	for i := range remap {
		if live[i] {
			remap[i] = newIndex[i]
		} else {
			remap[i] = sinkNewIndex
		}
	}

	outTransitions := make([][]rawTransition, next+1)
	outAccept := make([]acceptInfo, next+1)
	for i, ok := range live {
		if !ok {
			continue
		}
		edges := make([]rawTransition, len(transitions[i]))
		for j, e := range transitions[i] {
			edges[j] = rawTransition{class: e.class, to: remap[e.to]}
		}
		outTransitions[newIndex[i]] = edges
		outAccept[newIndex[i]] = accept[i]
	}
	outTransitions[sinkNewIndex] = []rawTransition{{class: charset.Full(), to: sinkNewIndex}}
	outAccept[sinkNewIndex] = acceptInfo{}

	return outTransitions, outAccept, sinkNewIndex
}

// ensureSink handles the already-collapsed-or-absent case: if a lone dead
// state exists it is reshaped into the canonical Σ-self-loop sink in place;
// if none exists (every state can reach an accepting state), one is
// appended so callers always have a sink to rewind to on unmatched input.
func ensureSink(transitions [][]rawTransition, accept []acceptInfo, sink int) ([][]rawTransition, []acceptInfo, int) {
	if sink >= 0 {
		transitions[sink] = []rawTransition{{class: charset.Full(), to: sink}}
		accept[sink] = acceptInfo{}
		return transitions, accept, sink
	}
	idx := len(transitions)
	transitions = append(transitions, []rawTransition{{class: charset.Full(), to: idx}})
	accept = append(accept, acceptInfo{})
	return transitions, accept, idx
}
