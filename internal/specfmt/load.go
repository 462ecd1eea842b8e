// Package specfmt loads a TokenSpec from YAML source: decode into an
// order-preserving raw form, parse each pattern string with
// internal/regexsyntax, and hand the results to internal/tokenspec.Resolve.
// Interpolation itself is not this package's concern — see
// internal/tokenspec.Resolve's doc comment.
package specfmt

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/scangen/scangen/internal/regex"
	"github.com/scangen/scangen/internal/regexsyntax"
	"github.com/scangen/scangen/internal/scanerr"
	"github.com/scangen/scangen/internal/tokenspec"
)

// rawDef is one YAML-declared name/pattern pair. Declaration order survives
// because YAML sequences decode into Go slices, not maps.
type rawDef struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"pattern"`
}

// rawSpec is the on-disk shape: two ordered lists, fragments first so a spec
// reads top-down the way it resolves.
type rawSpec struct {
	Fragments []rawDef `yaml:"fragments"`
	Tokens    []rawDef `yaml:"tokens"`
}

// Load reads and fully resolves a TokenSpec from a YAML file at path. The
// returned Interner owns every Expr reachable from the Spec and from
// Spec.Root; callers pass it straight to dfa.Build alongside the root.
func Load(path string, lookup regexsyntax.PropertyLookup) (*regex.Interner, *tokenspec.Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("specfmt: reading %s: %w", path, err)
	}
	return Parse(data, path, lookup)
}

// Parse decodes YAML spec source (already in memory) and resolves it into a
// TokenSpec. file is used only for diagnostic context in returned errors.
func Parse(data []byte, file string, lookup regexsyntax.PropertyLookup) (*regex.Interner, *tokenspec.Spec, error) {
	var raw rawSpec
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("specfmt: parsing %s: %w", file, err)
	}

	in := regex.NewInterner()

	fragments, err := parseDefs(raw.Fragments, lookup)
	if err != nil {
		return nil, nil, err
	}
	tokens, err := parseDefs(raw.Tokens, lookup)
	if err != nil {
		return nil, nil, err
	}

	spec, err := tokenspec.Resolve(in, tokens, fragments)
	if err != nil {
		return nil, nil, err
	}
	return in, spec, nil
}

func parseDefs(defs []rawDef, lookup regexsyntax.PropertyLookup) ([]tokenspec.Def, error) {
	out := make([]tokenspec.Def, len(defs))
	for i, d := range defs {
		n, err := regexsyntax.Parse(d.Pattern, lookup)
		if err != nil {
			return nil, fmt.Errorf("specfmt: pattern for %q: %w", d.Name, err)
		}
		out[i] = tokenspec.Def{Name: d.Name, Node: n, Pos: scanerr.Position{Line: 1, Column: 1}}
	}
	return out, nil
}
