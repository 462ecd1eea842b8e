package regexsyntax

import (
	"unicode/utf8"

	"github.com/scangen/scangen/internal/scanerr"
)

// scanner is a rune-at-a-time cursor over a regex pattern's source text,
// adapted from devcmd's pkgs/lexer.Lexer readChar/peekChar core (example repo
// aledsdavies/devcmd): same rune-counted Position tracking (not byte
// offsets), same "ch holds the current rune, 0 means EOF" convention.
// Patterns are always single-line, so there is no line-tracking beyond the
// constant Line: 1 devcmd's own lexer increments on '\n'.
type scanner struct {
	input        string
	position     int
	readPosition int
	column       int
	ch           rune
}

func newScanner(input string) *scanner {
	s := &scanner{input: input, column: 0}
	s.readChar()
	return s
}

func (s *scanner) readChar() {
	if s.readPosition >= len(s.input) {
		s.ch = 0
		s.position = s.readPosition
		s.column++
		return
	}
	r, size := utf8.DecodeRuneInString(s.input[s.readPosition:])
	s.ch = r
	s.position = s.readPosition
	s.readPosition += size
	s.column++
}

func (s *scanner) peekChar() rune {
	if s.readPosition >= len(s.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.input[s.readPosition:])
	return r
}

func (s *scanner) atEOF() bool { return s.ch == 0 && s.readPosition >= len(s.input) }

func (s *scanner) pos() scanerr.Position { return scanerr.Position{Line: 1, Column: s.column} }

// matchAndConsume advances past the current rune and returns true if it
// equals want, otherwise leaves the cursor untouched and returns false.
func (s *scanner) matchAndConsume(want rune) bool {
	if s.ch != want {
		return false
	}
	s.readChar()
	return true
}
