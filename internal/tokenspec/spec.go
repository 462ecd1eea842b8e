// Package tokenspec resolves a declarative list of named tokens and
// fragments into the combined root Expr the DFA builder consumes. Resolve
// (resolve.go) takes raw regexsyntax.Node trees — possibly still containing
// unresolved <name> Ref nodes — performs grey/black cycle detection and
// structural substitution, lowers the result to regex.Expr, and calls New
// (this file) for final naming-convention and uniqueness validation. Regex
// text parsing and spec-file loading are handled by the external
// collaborators in internal/regexsyntax and internal/specfmt.
package tokenspec

import (
	"fmt"
	"strings"

	"github.com/scangen/scangen/internal/regex"
	"github.com/scangen/scangen/internal/scanerr"
)

// Token is one named, prioritised token definition. Priority is implicit in
// declaration order: earlier tokens win ties.
type Token struct {
	Name string
	Expr *regex.Expr
	Pos  scanerr.Position
}

// Fragment is a named sub-expression usable only via interpolation; its name
// must start with "_" and it is never itself a token.
type Fragment struct {
	Name string
	Expr *regex.Expr
	Pos  scanerr.Position
}

// Spec is a fully resolved, validated set of tokens and fragments: no
// unresolved interpolation remains (resolution happens before constructing a
// Spec — see Resolve), and names are known-unique.
type Spec struct {
	Tokens    []Token
	Fragments []Fragment

	// Warnings holds non-fatal EmptyLanguageError diagnostics for tokens
	// whose resolved expression denotes ∅ exactly (spec §7: a warning, not
	// a build failure).
	Warnings []error
}

// New validates a resolved token/fragment list and returns a Spec, or a
// scanerr describing the first violated naming invariant.
func New(tokens []Token, fragments []Fragment) (*Spec, error) {
	seenTokens := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		if strings.HasPrefix(tok.Name, "_") {
			return nil, fmt.Errorf("token %q must not start with '_': %w", tok.Name, scanerr.ErrInvalidName)
		}
		if seenTokens[tok.Name] {
			return nil, fmt.Errorf("duplicate token name %q: %w", tok.Name, scanerr.ErrInvalidName)
		}
		seenTokens[tok.Name] = true
	}

	seenFragments := make(map[string]bool, len(fragments))
	for _, frag := range fragments {
		if !strings.HasPrefix(frag.Name, "_") {
			return nil, fmt.Errorf("fragment %q must start with '_': %w", frag.Name, scanerr.ErrInvalidName)
		}
		if seenFragments[frag.Name] {
			return nil, fmt.Errorf("duplicate fragment name %q: %w", frag.Name, scanerr.ErrInvalidName)
		}
		seenFragments[frag.Name] = true
	}

	var warnings []error
	for _, tok := range tokens {
		if tok.Expr.Kind() == regex.KindEmpty {
			warnings = append(warnings, scanerr.NewEmptyLanguage(tok.Pos, "", "", tok.Name))
		}
	}

	return &Spec{Tokens: tokens, Fragments: fragments, Warnings: warnings}, nil
}

// Names returns the token names in declaration (priority) order, suitable
// for indexing by regex.TokenID.
func (s *Spec) Names() []string {
	names := make([]string, len(s.Tokens))
	for i, tok := range s.Tokens {
		names[i] = tok.Name
	}
	return names
}

// Root builds the combined root expression: Alt(Tag(0, tokens[0].Expr), …,
// Tag(n-1, tokens[n-1].Expr)), canonicalised. This is the expression the DFA
// builder seeds its worklist with (spec §3.4, §4.4 step 1).
func (s *Spec) Root(in *regex.Interner) (*regex.Expr, error) {
	if len(s.Tokens) == 0 {
		return in.Empty(), nil
	}
	tagged := make([]*regex.Expr, len(s.Tokens))
	for i, tok := range s.Tokens {
		t, err := in.Tag(regex.TokenID(i), tok.Expr)
		if err != nil {
			return nil, err
		}
		tagged[i] = t
	}
	return in.Alt(tagged...)
}
