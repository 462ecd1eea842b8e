package tokenspec_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scangen/scangen/internal/charset"
	"github.com/scangen/scangen/internal/regex"
	"github.com/scangen/scangen/internal/regexsyntax"
	"github.com/scangen/scangen/internal/scanerr"
	"github.com/scangen/scangen/internal/tokenspec"
)

func lit(c rune) regexsyntax.Node {
	return regexsyntax.Lit(scanerr.Position{}, charset.OfChar(c))
}

func ref(name string) regexsyntax.Node {
	return regexsyntax.RefTo(scanerr.Position{}, name)
}

func TestResolve_InlinesFragmentIntoToken(t *testing.T) {
	in := regex.NewInterner()
	fragments := []tokenspec.Def{
		{Name: "_digit", Node: lit('7')},
	}
	tokens := []tokenspec.Def{
		{Name: "num", Node: ref("_digit")},
	}

	spec, err := tokenspec.Resolve(in, tokens, fragments)
	require.NoError(t, err)
	require.Len(t, spec.Tokens, 1)

	d, err := in.Derivative(spec.Tokens[0].Expr, '7')
	require.NoError(t, err)
	require.True(t, d.Nullable())
}

func TestResolve_NestedFragmentsCompose(t *testing.T) {
	in := regex.NewInterner()
	fragments := []tokenspec.Def{
		{Name: "_a", Node: lit('a')},
		{Name: "_ab", Node: regexsyntax.Seq(scanerr.Position{}, ref("_a"), lit('b'))},
	}
	tokens := []tokenspec.Def{
		{Name: "tok", Node: ref("_ab")},
	}

	spec, err := tokenspec.Resolve(in, tokens, fragments)
	require.NoError(t, err)

	e := spec.Tokens[0].Expr
	d1, err := in.Derivative(e, 'a')
	require.NoError(t, err)
	d2, err := in.Derivative(d1, 'b')
	require.NoError(t, err)
	require.True(t, d2.Nullable())
}

func TestResolve_DirectCycleFails(t *testing.T) {
	in := regex.NewInterner()
	fragments := []tokenspec.Def{
		{Name: "_a", Node: ref("_b")},
		{Name: "_b", Node: ref("_a")},
	}
	tokens := []tokenspec.Def{
		{Name: "tok", Node: ref("_a")},
	}

	_, err := tokenspec.Resolve(in, tokens, fragments)
	require.Error(t, err)
	var cyc *scanerr.CyclicFragmentError
	require.ErrorAs(t, err, &cyc)
}

func TestResolve_UndefinedReferenceFails(t *testing.T) {
	in := regex.NewInterner()
	tokens := []tokenspec.Def{
		{Name: "tok", Node: ref("_missing")},
	}

	_, err := tokenspec.Resolve(in, tokens, nil)
	require.Error(t, err)
	var undef *scanerr.UndefinedReferenceError
	require.ErrorAs(t, err, &undef)
}

func TestResolve_RepeatLoweringMatchesBounds(t *testing.T) {
	in := regex.NewInterner()
	tokens := []tokenspec.Def{
		{Name: "tok", Node: regexsyntax.Repeat(scanerr.Position{}, lit('a'), 2, 3)},
	}

	spec, err := tokenspec.Resolve(in, tokens, nil)
	require.NoError(t, err)
	e := spec.Tokens[0].Expr

	// "a" alone: not nullable after one derivative.
	d1, err := in.Derivative(e, 'a')
	require.NoError(t, err)
	require.False(t, d1.Nullable())

	// "aa": within [2,3], nullable.
	d2, err := in.Derivative(d1, 'a')
	require.NoError(t, err)
	require.True(t, d2.Nullable())

	// "aaa": within [2,3], nullable.
	d3, err := in.Derivative(d2, 'a')
	require.NoError(t, err)
	require.True(t, d3.Nullable())

	// "aaaa": exceeds max, dead.
	d4, err := in.Derivative(d3, 'a')
	require.NoError(t, err)
	require.False(t, d4.Nullable())
	require.Equal(t, regex.KindEmpty, d4.Kind())
}

func TestResolve_NamingConventionStillEnforced(t *testing.T) {
	in := regex.NewInterner()
	tokens := []tokenspec.Def{
		{Name: "_bad", Node: lit('a')},
	}
	_, err := tokenspec.Resolve(in, tokens, nil)
	require.ErrorIs(t, err, scanerr.ErrInvalidName)
}
