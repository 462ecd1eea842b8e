package emit_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scangen/scangen/internal/charset"
	"github.com/scangen/scangen/internal/dfa"
	"github.com/scangen/scangen/internal/emit"
	"github.com/scangen/scangen/internal/regex"
	"github.com/scangen/scangen/internal/regexsyntax"
	"github.com/scangen/scangen/internal/tokenspec"
)

func noProps(name string) (charset.Set, error) {
	return charset.Set{}, errUnknown{name}
}

type errUnknown struct{ name string }

func (e errUnknown) Error() string { return "unknown property: " + e.name }

func buildRealDFA(t *testing.T) *dfa.DFA {
	t.Helper()
	in := regex.NewInterner()
	node, err := regexsyntax.Parse("ab", noProps)
	require.NoError(t, err)
	spec, err := tokenspec.Resolve(in, []tokenspec.Def{{Name: "ab", Node: node}}, nil)
	require.NoError(t, err)
	root, err := spec.Root(in)
	require.NoError(t, err)
	d, err := dfa.Build(in, root, spec.Names())
	require.NoError(t, err)
	return d
}

func TestTable_RendersStatesAndTransitions(t *testing.T) {
	d := buildRealDFA(t)
	var sb strings.Builder
	require.NoError(t, emit.Table(&sb, d))
	out := sb.String()
	require.Contains(t, out, "(initial)")
	require.Contains(t, out, "(sink)")
	require.Contains(t, out, "ab")
}

func TestDot_RendersValidGraph(t *testing.T) {
	d := buildRealDFA(t)
	var sb strings.Builder
	require.NoError(t, emit.Dot(&sb, d))
	out := sb.String()
	require.True(t, strings.HasPrefix(out, "digraph dfa {"))
	require.True(t, strings.HasSuffix(strings.TrimSpace(out), "}"))
	require.Contains(t, out, "doublecircle")
}
