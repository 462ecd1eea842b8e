package regexsyntax_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scangen/scangen/internal/charset"
	"github.com/scangen/scangen/internal/regexsyntax"
)

func noProps(name string) (charset.Set, error) {
	return charset.Set{}, errUnknownProp{name}
}

type errUnknownProp struct{ name string }

func (e errUnknownProp) Error() string { return "no properties configured: " + e.name }

func mustParse(t *testing.T, pattern string) regexsyntax.Node {
	t.Helper()
	n, err := regexsyntax.Parse(pattern, noProps)
	require.NoError(t, err)
	return n
}

func TestParse_Literal(t *testing.T) {
	n := mustParse(t, "a")
	require.Equal(t, regexsyntax.KindLit, n.Kind)
	require.True(t, n.Set.Contains('a'))
	require.False(t, n.Set.Contains('b'))
}

func TestParse_ConcatAndAlt(t *testing.T) {
	n := mustParse(t, "ab|c")
	require.Equal(t, regexsyntax.KindAlt, n.Kind)
	require.Len(t, n.Parts, 2)
	require.Equal(t, regexsyntax.KindSeq, n.Parts[0].Kind)
	require.Len(t, n.Parts[0].Parts, 2)
}

func TestParse_AndBindsTighterThanAlt(t *testing.T) {
	n := mustParse(t, "a|b&c")
	require.Equal(t, regexsyntax.KindAlt, n.Kind)
	require.Equal(t, regexsyntax.KindAnd, n.Parts[1].Kind)
}

func TestParse_StarPlusOptional(t *testing.T) {
	star := mustParse(t, "a*")
	require.Equal(t, regexsyntax.KindStar, star.Kind)

	plus := mustParse(t, "a+")
	require.Equal(t, regexsyntax.KindRepeat, plus.Kind)
	require.Equal(t, 1, plus.Min)
	require.Equal(t, -1, plus.Max)

	opt := mustParse(t, "a?")
	require.Equal(t, regexsyntax.KindRepeat, opt.Kind)
	require.Equal(t, 0, opt.Min)
	require.Equal(t, 1, opt.Max)
}

func TestParse_BoundedRepeat(t *testing.T) {
	n := mustParse(t, "a{2,4}")
	require.Equal(t, regexsyntax.KindRepeat, n.Kind)
	require.Equal(t, 2, n.Min)
	require.Equal(t, 4, n.Max)

	exact := mustParse(t, "a{3}")
	require.Equal(t, 3, exact.Min)
	require.Equal(t, 3, exact.Max)

	unbounded := mustParse(t, "a{2,}")
	require.Equal(t, 2, unbounded.Min)
	require.Equal(t, -1, unbounded.Max)
}

func TestParse_RepeatReversedBoundsIsInvalidRange(t *testing.T) {
	_, err := regexsyntax.Parse("a{5,2}", noProps)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid range")
}

func TestParse_Grouping(t *testing.T) {
	n := mustParse(t, "(a|b)c")
	require.Equal(t, regexsyntax.KindSeq, n.Kind)
	require.Equal(t, regexsyntax.KindAlt, n.Parts[0].Kind)
}

func TestParse_Not(t *testing.T) {
	n := mustParse(t, "!a")
	require.Equal(t, regexsyntax.KindNot, n.Kind)
	require.Equal(t, regexsyntax.KindLit, n.Operand.Kind)
}

func TestParse_Dot(t *testing.T) {
	n := mustParse(t, ".")
	require.Equal(t, regexsyntax.KindLit, n.Kind)
	require.True(t, n.Set.Contains('x'))
	require.True(t, n.Set.Contains(0x1F600))
}

func TestParse_CharClassRangeAndNegation(t *testing.T) {
	n := mustParse(t, "[a-cX]")
	require.True(t, n.Set.Contains('a'))
	require.True(t, n.Set.Contains('c'))
	require.True(t, n.Set.Contains('X'))
	require.False(t, n.Set.Contains('d'))

	neg := mustParse(t, "[^a-z]")
	require.False(t, neg.Set.Contains('m'))
	require.True(t, neg.Set.Contains('M'))
}

func TestParse_NamedShorthandClasses(t *testing.T) {
	d := mustParse(t, `\d`)
	require.True(t, d.Set.Contains('5'))
	require.False(t, d.Set.Contains('x'))

	bigD := mustParse(t, `\D`)
	require.False(t, bigD.Set.Contains('5'))
	require.True(t, bigD.Set.Contains('x'))

	w := mustParse(t, `\w`)
	require.True(t, w.Set.Contains('_'))
	require.True(t, w.Set.Contains('9'))
	require.False(t, w.Set.Contains(' '))
}

func TestParse_PropertyEscapeDelegatesToInjectedLookup(t *testing.T) {
	digitsOnly := func(name string) (charset.Set, error) {
		require.Equal(t, "Nd", name)
		r, err := charset.OfRange('0', '9'+1)
		require.NoError(t, err)
		return r, nil
	}
	n, err := regexsyntax.Parse(`\p{Nd}`, digitsOnly)
	require.NoError(t, err)
	require.True(t, n.Set.Contains('7'))
	require.False(t, n.Set.Contains('a'))
}

func TestParse_UnknownPropertyIsError(t *testing.T) {
	_, err := regexsyntax.Parse(`\p{Bogus}`, noProps)
	require.Error(t, err)
}

func TestParse_FragmentReference(t *testing.T) {
	n := mustParse(t, "<_digit>")
	require.Equal(t, regexsyntax.KindRef, n.Kind)
	require.Equal(t, "_digit", n.Name)
}

func TestParse_RefUnderQuantifier(t *testing.T) {
	n := mustParse(t, "<_digit>+")
	require.Equal(t, regexsyntax.KindRepeat, n.Kind)
	require.Equal(t, regexsyntax.KindRef, n.Operand.Kind)
}

func TestParse_UnbalancedGroupIsSyntaxError(t *testing.T) {
	_, err := regexsyntax.Parse("(a", noProps)
	require.Error(t, err)
	var syn *regexsyntax.SyntaxError
	require.ErrorAs(t, err, &syn)
}

func TestRefs_CollectsUniqueNamesInOrder(t *testing.T) {
	n := mustParse(t, "<_a><_b><_a>")
	require.Equal(t, []string{"_a", "_b"}, regexsyntax.Refs(n))
}
