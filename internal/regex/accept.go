package regex

// Accept resolves the accepting token, if any, of a DFA state whose identity
// key is e. Because Tag is preserved verbatim by every smart constructor and
// never floated through Concat/And/Not/Star, and token expressions never
// nest Tag inside Tag, every Tag node reachable from the combined root
// remains a direct child of the top-level Alt (or is the root itself once
// Alt collapses to a single surviving child). Accept therefore only needs to
// look at e itself and, if e is an Alt, its immediate children — it does not
// need to walk the full tree.
//
// Ties (multiple simultaneously-nullable Tags at one state) are broken by
// smallest TokenID, i.e. earliest declaration order, per spec §4.4 item 3
// and §9's priority note.
func Accept(e *Expr) (TokenID, bool) {
	switch e.kind {
	case KindTag:
		if e.nullable {
			return e.tag, true
		}
		return 0, false
	case KindAlt:
		best := TokenID(-1)
		found := false
		for _, c := range e.children {
			if c.kind == KindTag && c.nullable {
				if !found || c.tag < best {
					best = c.tag
					found = true
				}
			}
		}
		return best, found
	default:
		return 0, false
	}
}
