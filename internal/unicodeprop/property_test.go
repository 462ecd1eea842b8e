package unicodeprop_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scangen/scangen/internal/unicodeprop"
)

func TestLookup_DecimalDigitCategory(t *testing.T) {
	s, err := unicodeprop.Lookup("Nd")
	require.NoError(t, err)
	require.True(t, s.Contains('7'))
	require.True(t, s.Contains('٧')) // Arabic-Indic digit seven, also category Nd
	require.False(t, s.Contains('a'))
}

func TestLookup_Script(t *testing.T) {
	s, err := unicodeprop.Lookup("Greek")
	require.NoError(t, err)
	require.True(t, s.Contains('Δ'))
	require.False(t, s.Contains('a'))
}

func TestLookup_UnknownNameReturnsErrUnknown(t *testing.T) {
	_, err := unicodeprop.Lookup("TotallyBogusPropertyName")
	require.True(t, errors.Is(err, unicodeprop.ErrUnknown))
}

func TestLookup_IsMemoized(t *testing.T) {
	a, err := unicodeprop.Lookup("Lu")
	require.NoError(t, err)
	b, err := unicodeprop.Lookup("Lu")
	require.NoError(t, err)
	require.True(t, a.Equal(b))
}
