// Package unicodeprop resolves named Unicode properties — general
// categories, scripts, and binary properties — to the CodePointSet they
// denote, backing the \p{Name}/\P{Name} escapes in internal/regexsyntax.
// This is the injected `property(name)` function spec §4.1/§6 describes.
package unicodeprop

import (
	"errors"
	"fmt"
	"sync"
	"unicode"

	"golang.org/x/text/unicode/rangetable"

	"github.com/scangen/scangen/internal/charset"
)

// ErrUnknown is returned by Lookup when name matches no known Unicode
// category, script, or binary property. Callers that need source position
// (internal/regexsyntax) wrap this into a scanerr.UnknownPropertyError
// themselves, since only the caller knows where in the pattern the escape
// occurred.
var ErrUnknown = errors.New("unknown Unicode property")

var (
	mu    sync.Mutex
	cache = map[string]charset.Set{}
)

// Lookup resolves name against unicode.Categories, unicode.Scripts, and
// unicode.Properties (checked in that order, matching Go's own \p{} lookup
// order), returning ErrUnknown if none match. This is the injected
// `property(name) -> CodePointSet` collaborator spec §4.1/§6 describes.
func Lookup(name string) (charset.Set, error) {
	mu.Lock()
	if s, ok := cache[name]; ok {
		mu.Unlock()
		return s, nil
	}
	mu.Unlock()

	table, ok := unicode.Categories[name]
	if !ok {
		table, ok = unicode.Scripts[name]
	}
	if !ok {
		table, ok = unicode.Properties[name]
	}
	if !ok {
		return charset.Set{}, fmt.Errorf("%w: %q", ErrUnknown, name)
	}

	s := flatten(table)

	mu.Lock()
	cache[name] = s
	mu.Unlock()
	return s, nil
}

// flatten walks a *unicode.RangeTable via rangetable.Visit and folds its
// code points into a CodePointSet. rangetable.Visit yields R16 and R32
// entries in ascending code-point order, so consecutive runes are coalesced
// into runs, each run becomes one OfRange interval, and charset.UnionAll's
// merge pass joins any runs that touch into the minimal interval form.
func flatten(table *unicode.RangeTable) charset.Set {
	var ranges []charset.Set
	var runStart, runEnd rune
	haveRun := false

	flushRun := func() {
		if !haveRun {
			return
		}
		r, err := charset.OfRange(int(runStart), int(runEnd)+1)
		if err != nil {
			panic(fmt.Sprintf("unicodeprop: impossible range [%d,%d]: %v", runStart, runEnd, err))
		}
		ranges = append(ranges, r)
		haveRun = false
	}

	rangetable.Visit(table, func(r rune) {
		if haveRun && r == runEnd+1 {
			runEnd = r
			return
		}
		flushRun()
		runStart, runEnd = r, r
		haveRun = true
	})
	flushRun()

	return charset.UnionAll(ranges...)
}
