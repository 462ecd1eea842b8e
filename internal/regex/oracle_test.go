package regex_test

import (
	"github.com/scangen/scangen/internal/regex"
)

// langContains is an independent denotational oracle for L(e), defined by
// direct unfolding of the regex algebra rather than derivatives. It exists
// purely to check the derivative/nullability machinery against a second,
// structurally unrelated implementation, per spec §8's "decidable
// denotational oracle on a bounded test set".
func langContains(e *regex.Expr, w []rune) bool {
	switch e.Kind() {
	case regex.KindEmpty:
		return false
	case regex.KindEpsilon:
		return len(w) == 0
	case regex.KindChars:
		return len(w) == 1 && e.Chars().Contains(int(w[0]))
	case regex.KindConcat:
		a, b := e.Children()[0], e.Children()[1]
		for split := 0; split <= len(w); split++ {
			if langContains(a, w[:split]) && langContains(b, w[split:]) {
				return true
			}
		}
		return false
	case regex.KindAlt:
		for _, c := range e.Children() {
			if langContains(c, w) {
				return true
			}
		}
		return false
	case regex.KindAnd:
		for _, c := range e.Children() {
			if !langContains(c, w) {
				return false
			}
		}
		return true
	case regex.KindNot:
		return !langContains(e.Children()[0], w)
	case regex.KindStar:
		if len(w) == 0 {
			return true
		}
		child := e.Children()[0]
		for split := 1; split <= len(w); split++ {
			if langContains(child, w[:split]) && langContains(e, w[split:]) {
				return true
			}
		}
		return false
	case regex.KindTag:
		return langContains(e.Children()[0], w)
	default:
		panic("unknown kind")
	}
}

// allWords enumerates every string of length 0..maxLen over alphabet.
func allWords(alphabet []rune, maxLen int) [][]rune {
	var words [][]rune
	words = append(words, nil)
	frontier := [][]rune{nil}
	for l := 1; l <= maxLen; l++ {
		var next [][]rune
		for _, w := range frontier {
			for _, c := range alphabet {
				nw := append(append([]rune{}, w...), c)
				words = append(words, nw)
				next = append(next, nw)
			}
		}
		frontier = next
	}
	return words
}
