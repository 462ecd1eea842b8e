package regex

// Derivative computes d(e, c): the residual expression r such that, for any
// string w, w ∈ L(r) iff cw ∈ L(e). See spec §4.2 for the inductive
// definition; Tag nodes ride along derivatives unchanged in shape so the
// DFA builder can still find them in residual states.
func (in *Interner) Derivative(e *Expr, c rune) (*Expr, error) {
	switch e.kind {
	case KindEmpty, KindEpsilon:
		return in.empty, nil

	case KindChars:
		if e.chars.Contains(int(c)) {
			return in.epsilon, nil
		}
		return in.empty, nil

	case KindConcat:
		a, b := e.children[0], e.children[1]
		da, err := in.Derivative(a, c)
		if err != nil {
			return nil, err
		}
		db, err := in.Derivative(b, c)
		if err != nil {
			return nil, err
		}
		left, err := in.Concat(da, b)
		if err != nil {
			return nil, err
		}
		right, err := in.Concat(in.nuExpr(a), db)
		if err != nil {
			return nil, err
		}
		return in.Alt(left, right)

	case KindAlt:
		ds, err := in.deriveAll(e.children, c)
		if err != nil {
			return nil, err
		}
		return in.Alt(ds...)

	case KindAnd:
		ds, err := in.deriveAll(e.children, c)
		if err != nil {
			return nil, err
		}
		return in.And(ds...)

	case KindNot:
		d0, err := in.Derivative(e.children[0], c)
		if err != nil {
			return nil, err
		}
		return in.Not(d0)

	case KindStar:
		d0, err := in.Derivative(e.children[0], c)
		if err != nil {
			return nil, err
		}
		return in.Concat(d0, e)

	case KindTag:
		d0, err := in.Derivative(e.children[0], c)
		if err != nil {
			return nil, err
		}
		return in.Tag(e.tag, d0)

	default:
		panic("regex: unknown Expr kind")
	}
}

func (in *Interner) deriveAll(xs []*Expr, c rune) ([]*Expr, error) {
	out := make([]*Expr, len(xs))
	for i, x := range xs {
		d, err := in.Derivative(x, c)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}
