package tokenspec

import (
	"github.com/scangen/scangen/internal/regex"
	"github.com/scangen/scangen/internal/regexsyntax"
	"github.com/scangen/scangen/internal/scanerr"
)

// Def is one raw, unresolved definition: a parsed pattern (regexsyntax.Node,
// possibly containing Ref nodes) attached to a declared name and its source
// position. Tokens and fragments are both Defs; only the slice they arrive
// in (Resolve's tokens vs fragments parameter) distinguishes their role.
type Def struct {
	Name string
	Node regexsyntax.Node
	Pos  scanerr.Position
}

type color int

const (
	white color = iota
	gray
	black
)

// Resolve performs interpolation of fragment definitions into both token and
// fragment bodies, detecting cycles before ever substituting (spec §4.3: a
// textual substitution pass could not detect the cycle `_a = <_b>, _b =
// <_a>` before looping forever, which is why this operates structurally over
// Node trees instead), then lowers every fully-resolved Node into a
// canonical regex.Expr and hands the results to New for final validation.
func Resolve(in *regex.Interner, tokens, fragments []Def) (*Spec, error) {
	fragmentByName := make(map[string]Def, len(fragments))
	for _, f := range fragments {
		fragmentByName[f.Name] = f
	}

	colors := make(map[string]color, len(fragments))
	resolved := make(map[string]regexsyntax.Node, len(fragments))

	var substitute func(n regexsyntax.Node, path []string) (regexsyntax.Node, error)
	substitute = func(n regexsyntax.Node, path []string) (regexsyntax.Node, error) {
		switch n.Kind {
		case regexsyntax.KindRef:
			if colors[n.Name] == black {
				return resolved[n.Name], nil
			}
			if colors[n.Name] == gray {
				cycle := append(append([]string{}, path...), n.Name)
				return regexsyntax.Node{}, scanerr.NewCyclicFragment(n.Pos, "", "", n.Name, cycle)
			}
			def, ok := fragmentByName[n.Name]
			if !ok {
				return regexsyntax.Node{}, scanerr.NewUndefinedReference(n.Pos, "", "", n.Name)
			}
			colors[n.Name] = gray
			sub, err := substitute(def.Node, append(path, n.Name))
			if err != nil {
				return regexsyntax.Node{}, err
			}
			colors[n.Name] = black
			resolved[n.Name] = sub
			return sub, nil

		case regexsyntax.KindSeq, regexsyntax.KindAlt, regexsyntax.KindAnd:
			parts := make([]regexsyntax.Node, len(n.Parts))
			for i, p := range n.Parts {
				sub, err := substitute(p, path)
				if err != nil {
					return regexsyntax.Node{}, err
				}
				parts[i] = sub
			}
			out := n
			out.Parts = parts
			return out, nil

		case regexsyntax.KindNot, regexsyntax.KindStar, regexsyntax.KindRepeat:
			sub, err := substitute(*n.Operand, path)
			if err != nil {
				return regexsyntax.Node{}, err
			}
			out := n
			out.Operand = &sub
			return out, nil

		default: // KindLit
			return n, nil
		}
	}

	lowerDefs := func(defs []Def) ([]regexsyntax.Node, []scanerr.Position, error) {
		nodes := make([]regexsyntax.Node, len(defs))
		positions := make([]scanerr.Position, len(defs))
		for i, d := range defs {
			n, err := substitute(d.Node, nil)
			if err != nil {
				return nil, nil, err
			}
			nodes[i] = n
			positions[i] = d.Pos
		}
		return nodes, positions, nil
	}

	tokenNodes, tokenPos, err := lowerDefs(tokens)
	if err != nil {
		return nil, err
	}
	fragmentNodes, fragmentPos, err := lowerDefs(fragments)
	if err != nil {
		return nil, err
	}

	resolvedTokens := make([]Token, len(tokens))
	for i, d := range tokens {
		e, err := lower(in, tokenNodes[i])
		if err != nil {
			return nil, err
		}
		resolvedTokens[i] = Token{Name: d.Name, Expr: e, Pos: tokenPos[i]}
	}

	resolvedFragments := make([]Fragment, len(fragments))
	for i, d := range fragments {
		e, err := lower(in, fragmentNodes[i])
		if err != nil {
			return nil, err
		}
		resolvedFragments[i] = Fragment{Name: d.Name, Expr: e, Pos: fragmentPos[i]}
	}

	return New(resolvedTokens, resolvedFragments)
}

// lower translates a fully-resolved (Ref-free) Node into a canonical
// regex.Expr via the interner's smart constructors.
func lower(in *regex.Interner, n regexsyntax.Node) (*regex.Expr, error) {
	switch n.Kind {
	case regexsyntax.KindLit:
		return in.Chars(n.Set)

	case regexsyntax.KindSeq:
		if len(n.Parts) == 0 {
			return in.Epsilon(), nil
		}
		acc, err := lower(in, n.Parts[0])
		if err != nil {
			return nil, err
		}
		for _, p := range n.Parts[1:] {
			next, err := lower(in, p)
			if err != nil {
				return nil, err
			}
			acc, err = in.Concat(acc, next)
			if err != nil {
				return nil, err
			}
		}
		return acc, nil

	case regexsyntax.KindAlt:
		exprs, err := lowerAll(in, n.Parts)
		if err != nil {
			return nil, err
		}
		return in.Alt(exprs...)

	case regexsyntax.KindAnd:
		exprs, err := lowerAll(in, n.Parts)
		if err != nil {
			return nil, err
		}
		return in.And(exprs...)

	case regexsyntax.KindNot:
		operand, err := lower(in, *n.Operand)
		if err != nil {
			return nil, err
		}
		return in.Not(operand)

	case regexsyntax.KindStar:
		operand, err := lower(in, *n.Operand)
		if err != nil {
			return nil, err
		}
		return in.Star(operand)

	case regexsyntax.KindRepeat:
		return lowerRepeat(in, n)

	default: // regexsyntax.KindRef: Resolve guarantees none remain here.
		panic("tokenspec: unresolved Ref reached lowering")
	}
}

func lowerAll(in *regex.Interner, nodes []regexsyntax.Node) ([]*regex.Expr, error) {
	exprs := make([]*regex.Expr, len(nodes))
	for i, n := range nodes {
		e, err := lower(in, n)
		if err != nil {
			return nil, err
		}
		exprs[i] = e
	}
	return exprs, nil
}

// lowerRepeat expands e{min,max} into e^min . e* (unbounded) or
// e^min . (e|ε)^(max-min) (bounded): each optional slot independently
// contributes zero or one more e, so concatenating (max-min) of them denotes
// exactly the union over k=0..(max-min) of e^k, i.e. "at most max-min more".
func lowerRepeat(in *regex.Interner, n regexsyntax.Node) (*regex.Expr, error) {
	operand, err := lower(in, *n.Operand)
	if err != nil {
		return nil, err
	}

	base, err := concatN(in, operand, n.Min)
	if err != nil {
		return nil, err
	}

	if n.Max == -1 {
		star, err := in.Star(operand)
		if err != nil {
			return nil, err
		}
		return in.Concat(base, star)
	}

	optionalCount := n.Max - n.Min
	optional, err := in.Alt(operand, in.Epsilon())
	if err != nil {
		return nil, err
	}
	tail, err := concatN(in, optional, optionalCount)
	if err != nil {
		return nil, err
	}
	return in.Concat(base, tail)
}

// concatN builds the concatenation of n copies of e, returning Epsilon for
// n == 0.
func concatN(in *regex.Interner, e *regex.Expr, n int) (*regex.Expr, error) {
	if n == 0 {
		return in.Epsilon(), nil
	}
	acc := e
	for i := 1; i < n; i++ {
		var err error
		acc, err = in.Concat(acc, e)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}
