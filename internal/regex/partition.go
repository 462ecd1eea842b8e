package regex

import (
	"sort"

	"github.com/scangen/scangen/internal/charset"
)

// Partition computes C(e): a partition of the full Unicode range such that
// all code points in one class induce the same derivative of e. It is built
// by structural refinement of the children's partitions, so it is not
// necessarily the coarsest such partition: two classes may still share a
// derivative. It is a pure structural computation — it never constructs new Exprs, only
// reads each node's precomputed Nullable flag, so it needs no Interner.
//
// The returned slice is sorted by charset.Set.Compare for determinism.
func Partition(e *Expr) []charset.Set {
	var parts []charset.Set
	switch e.kind {
	case KindEmpty, KindEpsilon:
		parts = []charset.Set{charset.Full()}

	case KindChars:
		comp := e.chars.Complement()
		if comp.IsEmpty() {
			parts = []charset.Set{e.chars}
		} else {
			parts = []charset.Set{e.chars, comp}
		}

	case KindConcat:
		a, b := e.children[0], e.children[1]
		pa := Partition(a)
		if !a.nullable {
			parts = pa
		} else {
			parts = refine(pa, Partition(b))
		}

	case KindAlt, KindAnd:
		parts = Partition(e.children[0])
		for _, c := range e.children[1:] {
			parts = refine(parts, Partition(c))
		}

	case KindNot, KindStar, KindTag:
		parts = Partition(e.children[0])

	default:
		panic("regex: unknown Expr kind")
	}

	sort.Slice(parts, func(i, j int) bool { return parts[i].Compare(parts[j]) < 0 })
	return parts
}

// refine computes the coarsest common refinement of two partitions of the
// same universe: the set of non-empty pairwise intersections. Because both
// inputs already partition the full range, every point falls into exactly
// one pairwise intersection, so the result is again a partition.
func refine(a, b []charset.Set) []charset.Set {
	out := make([]charset.Set, 0, len(a)+len(b))
	for _, x := range a {
		for _, y := range b {
			inter := x.Intersect(y)
			if !inter.IsEmpty() {
				out = append(out, inter)
			}
		}
	}
	return out
}
