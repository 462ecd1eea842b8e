package regexsyntax

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/scangen/scangen/internal/charset"
	"github.com/scangen/scangen/internal/scanerr"
)

// PropertyLookup resolves a \p{Name}/\P{Name} escape to the code points it
// denotes. The parser never hardcodes Unicode data itself (spec §6): this is
// an injected collaborator, normally internal/unicodeprop.Lookup.
type PropertyLookup func(name string) (charset.Set, error)

// SyntaxError reports a malformed surface pattern: unbalanced groups,
// unterminated classes, a bad escape, or similar. Reversed bounds ({5,2},
// [z-a]) and unknown \p{} names are reported with the scanerr types
// InvalidRangeError and UnknownPropertyError instead; every other
// surface-syntax failure is a SyntaxError, passed through unchanged by
// callers.
type SyntaxError struct {
	Pos scanerr.Position
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

func syntaxErrorf(pos scanerr.Position, format string, args ...any) error {
	return &SyntaxError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

type parser struct {
	s      *scanner
	lookup PropertyLookup
}

// Parse parses a single regex pattern (spec §6 grammar) into a Node tree.
// lookup resolves \p{Name}/\P{Name}; pass internal/unicodeprop.Lookup in
// production, or any stand-in for tests.
func Parse(pattern string, lookup PropertyLookup) (Node, error) {
	p := &parser{s: newScanner(pattern), lookup: lookup}
	n, err := p.parseAlt()
	if err != nil {
		return Node{}, err
	}
	if !p.s.atEOF() {
		return Node{}, syntaxErrorf(p.s.pos(), "unexpected %q", p.s.ch)
	}
	return n, nil
}

// parseAlt := parseAnd ('|' parseAnd)*
func (p *parser) parseAlt() (Node, error) {
	pos := p.s.pos()
	first, err := p.parseAnd()
	if err != nil {
		return Node{}, err
	}
	parts := []Node{first}
	for p.s.matchAndConsume('|') {
		next, err := p.parseAnd()
		if err != nil {
			return Node{}, err
		}
		parts = append(parts, next)
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return Alt(pos, parts...), nil
}

// parseAnd := parseConcat ('&' parseConcat)*
func (p *parser) parseAnd() (Node, error) {
	pos := p.s.pos()
	first, err := p.parseConcat()
	if err != nil {
		return Node{}, err
	}
	parts := []Node{first}
	for p.s.matchAndConsume('&') {
		next, err := p.parseConcat()
		if err != nil {
			return Node{}, err
		}
		parts = append(parts, next)
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return And(pos, parts...), nil
}

// parseConcat := parseUnary*, terminated by '|', '&', ')', or EOF.
func (p *parser) parseConcat() (Node, error) {
	pos := p.s.pos()
	var parts []Node
	for !p.atConcatBoundary() {
		n, err := p.parseUnary()
		if err != nil {
			return Node{}, err
		}
		parts = append(parts, n)
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return Seq(pos, parts...), nil
}

func (p *parser) atConcatBoundary() bool {
	switch p.s.ch {
	case 0, '|', '&', ')':
		return true
	default:
		return false
	}
}

// parseUnary := '!' parseUnary | parsePostfix
func (p *parser) parseUnary() (Node, error) {
	if p.s.matchAndConsume('!') {
		pos := p.s.pos()
		operand, err := p.parseUnary()
		if err != nil {
			return Node{}, err
		}
		return Not(pos, operand), nil
	}
	return p.parsePostfix()
}

// parsePostfix := parsePrimary ('*' | '+' | '?' | '{' ... '}')*
func (p *parser) parsePostfix() (Node, error) {
	n, err := p.parsePrimary()
	if err != nil {
		return Node{}, err
	}
	for {
		pos := p.s.pos()
		switch {
		case p.s.matchAndConsume('*'):
			n = StarOf(pos, n)
		case p.s.matchAndConsume('+'):
			// a+ == a a*, expressed directly as Repeat{Min:1, Max:-1} so
			// tokenspec's lowering has one bounded-repetition code path.
			n = Repeat(pos, n, 1, -1)
		case p.s.matchAndConsume('?'):
			n = Repeat(pos, n, 0, 1)
		case p.s.ch == '{' && isRepeatAhead(p.s):
			n, err = p.parseRepeat(pos, n)
			if err != nil {
				return Node{}, err
			}
		default:
			return n, nil
		}
	}
}

// isRepeatAhead reports whether the current '{' is followed by at least one
// digit, i.e. starts a {n}/{n,}/{n,m} quantifier; the rest of the quantifier
// is checked by parseRepeat. A '{' not followed by digits is left for
// parsePrimary to reject explicitly rather than silently misparsed.
func isRepeatAhead(s *scanner) bool {
	pos := s.readPosition
	rest := s.input[pos:]
	i := 0
	for i < len(rest) && rest[i] >= '0' && rest[i] <= '9' {
		i++
	}
	return i > 0
}

func (p *parser) parseRepeat(pos scanerr.Position, operand Node) (Node, error) {
	p.s.readChar() // consume '{'
	min, err := p.parseInt()
	if err != nil {
		return Node{}, err
	}
	max := min
	if p.s.matchAndConsume(',') {
		if p.s.ch == '}' {
			max = -1
		} else {
			max, err = p.parseInt()
			if err != nil {
				return Node{}, err
			}
		}
	}
	if !p.s.matchAndConsume('}') {
		return Node{}, syntaxErrorf(p.s.pos(), "unterminated repeat quantifier")
	}
	if max != -1 && min > max {
		return Node{}, scanerr.NewInvalidRange(pos, p.s.input, "", fmt.Sprintf("{%d,%d}: lower bound exceeds upper bound", min, max))
	}
	return Repeat(pos, operand, min, max), nil
}

func (p *parser) parseInt() (int, error) {
	start := p.s.position
	for p.s.ch >= '0' && p.s.ch <= '9' {
		p.s.readChar()
	}
	digits := p.s.input[start:p.s.position]
	if digits == "" {
		return 0, syntaxErrorf(p.s.pos(), "expected digits in repeat quantifier")
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, syntaxErrorf(p.s.pos(), "repeat bound %q out of range", digits)
	}
	return n, nil
}

// parsePrimary := '(' parseAlt ')' | '.' | class | '<' name '>' | literal
func (p *parser) parsePrimary() (Node, error) {
	pos := p.s.pos()
	switch p.s.ch {
	case 0:
		return Node{}, syntaxErrorf(pos, "unexpected end of pattern")
	case '(':
		p.s.readChar()
		n, err := p.parseAlt()
		if err != nil {
			return Node{}, err
		}
		if !p.s.matchAndConsume(')') {
			return Node{}, syntaxErrorf(p.s.pos(), "expected ')'")
		}
		return n, nil
	case '.':
		p.s.readChar()
		return Lit(pos, charset.Full()), nil
	case '[':
		return p.parseClass()
	case '<':
		return p.parseRef()
	case '\\':
		s, err := p.parseEscape()
		if err != nil {
			return Node{}, err
		}
		return Lit(pos, s), nil
	case ')', '|', '&', '*', '+', '?', '{', '}':
		return Node{}, syntaxErrorf(pos, "unexpected %q", p.s.ch)
	default:
		c := p.s.ch
		p.s.readChar()
		return Lit(pos, charset.OfChar(c)), nil
	}
}

func (p *parser) parseRef() (Node, error) {
	pos := p.s.pos()
	p.s.readChar() // consume '<'
	start := p.s.position
	for p.s.ch != '>' && p.s.ch != 0 {
		p.s.readChar()
	}
	if p.s.ch == 0 {
		return Node{}, syntaxErrorf(pos, "unterminated fragment reference")
	}
	name := p.s.input[start:p.s.position]
	p.s.readChar() // consume '>'
	if name == "" {
		return Node{}, syntaxErrorf(pos, "empty fragment reference")
	}
	return RefTo(pos, name), nil
}

// parseClass parses a '[' ... ']' character class, returning its resulting
// CodePointSet as a Lit node.
func (p *parser) parseClass() (Node, error) {
	pos := p.s.pos()
	p.s.readChar() // consume '['
	negate := p.s.matchAndConsume('^')

	var set charset.Set
	first := true
	for {
		if p.s.ch == 0 {
			return Node{}, syntaxErrorf(pos, "unterminated character class")
		}
		if p.s.ch == ']' && !first {
			break
		}
		first = false

		var lo charset.Set
		var loChar rune
		var isRange bool
		if p.s.ch == '\\' {
			s, err := p.parseEscape()
			if err != nil {
				return Node{}, err
			}
			set = charset.UnionAll(set, s)
			continue
		}
		loChar = p.s.ch
		loPos := p.s.pos()
		p.s.readChar()
		if p.s.ch == '-' && p.s.peekChar() != ']' && p.s.peekChar() != 0 {
			p.s.readChar() // consume '-'
			hiChar := p.s.ch
			if hiChar == '\\' {
				return Node{}, syntaxErrorf(p.s.pos(), "escape not allowed as range upper bound")
			}
			p.s.readChar()
			isRange = true
			if hiChar < loChar {
				return Node{}, scanerr.NewInvalidRange(loPos, p.s.input, "", fmt.Sprintf("[%c-%c]: reversed range", loChar, hiChar))
			}
			r, err := charset.OfRange(int(loChar), int(hiChar)+1)
			if err != nil {
				return Node{}, scanerr.NewInvalidRange(loPos, p.s.input, "", err.Error())
			}
			lo = r
		}
		if !isRange {
			lo = charset.OfChar(loChar)
		}
		set = charset.UnionAll(set, lo)
	}
	if !p.s.matchAndConsume(']') {
		return Node{}, syntaxErrorf(p.s.pos(), "unterminated character class")
	}
	if negate {
		set = set.Complement()
	}
	return Lit(pos, set), nil
}

// parseEscape parses a single backslash escape, valid both inside and
// outside a character class: named shorthand classes (\d \h \s \v \w and
// their uppercase complements), \p{Name}/\P{Name} Unicode property escapes,
// and single-character literal escapes (\n \t \r \\ \. and so on).
func (p *parser) parseEscape() (charset.Set, error) {
	pos := p.s.pos()
	p.s.readChar() // consume '\\'
	c := p.s.ch
	if c == 0 {
		return charset.Set{}, syntaxErrorf(pos, "dangling escape")
	}
	p.s.readChar()

	switch c {
	case 'd':
		return digitSet, nil
	case 'D':
		return digitSet.Complement(), nil
	case 'h':
		return hspaceSet, nil
	case 'H':
		return hspaceSet.Complement(), nil
	case 's':
		return spaceSet, nil
	case 'S':
		return spaceSet.Complement(), nil
	case 'v':
		return vspaceSet, nil
	case 'V':
		return vspaceSet.Complement(), nil
	case 'w':
		return wordSet, nil
	case 'W':
		return wordSet.Complement(), nil
	case 'p', 'P':
		name, err := p.parsePropertyName(pos)
		if err != nil {
			return charset.Set{}, err
		}
		set, err := p.lookup(name)
		if err != nil {
			return charset.Set{}, scanerr.NewUnknownProperty(pos, p.s.input, "", name)
		}
		if c == 'P' {
			set = set.Complement()
		}
		return set, nil
	case 'n':
		return charset.OfChar('\n'), nil
	case 't':
		return charset.OfChar('\t'), nil
	case 'r':
		return charset.OfChar('\r'), nil
	case 'f':
		return charset.OfChar('\f'), nil
	default:
		// Any other escaped character, including metacharacters like \. \|
		// \\ \[ \] \- \^ \<, denotes itself literally.
		return charset.OfChar(c), nil
	}
}

func (p *parser) parsePropertyName(pos scanerr.Position) (string, error) {
	if !p.s.matchAndConsume('{') {
		return "", syntaxErrorf(p.s.pos(), "expected '{' after \\p or \\P")
	}
	start := p.s.position
	for p.s.ch != '}' && p.s.ch != 0 {
		p.s.readChar()
	}
	if p.s.ch == 0 {
		return "", syntaxErrorf(pos, "unterminated \\p{...} escape")
	}
	name := p.s.input[start:p.s.position]
	p.s.readChar() // consume '}'
	if strings.TrimSpace(name) == "" {
		return "", syntaxErrorf(pos, "empty Unicode property name")
	}
	return name, nil
}

var (
	digitSet  = mustRanges(charset.OfRange('0', '9'+1))
	hspaceSet = mustUnion(charset.OfChar(' '), charset.OfChar('\t'))
	spaceSet  = mustUnion(charset.OfChar(' '), charset.OfChar('\t'), charset.OfChar('\n'), charset.OfChar('\r'), charset.OfChar('\f'), charset.OfChar('\v'))
	vspaceSet = mustUnion(charset.OfChar('\n'), charset.OfChar('\r'), charset.OfChar('\f'), charset.OfChar('\v'))
	wordSet   = mustUnion(mustRanges(charset.OfRange('0', '9'+1)), mustRanges(charset.OfRange('A', 'Z'+1)), mustRanges(charset.OfRange('a', 'z'+1)), charset.OfChar('_'))
)

func mustRanges(s charset.Set, err error) charset.Set {
	if err != nil {
		panic(err)
	}
	return s
}

func mustUnion(sets ...charset.Set) charset.Set {
	return charset.UnionAll(sets...)
}
