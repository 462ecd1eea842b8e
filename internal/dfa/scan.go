package dfa

import (
	"github.com/scangen/scangen/internal/regex"
	"github.com/scangen/scangen/internal/scanerr"
)

// Match is one recognised token: Token is the winning token id, Lexeme is
// the matched text, and Pos is the 1-indexed position the match started at.
type Match struct {
	Token  regex.TokenID
	Lexeme string
	Pos    scanerr.Position
}

// Scan tokenizes input in full, applying maximal munch: at each step it
// advances through the DFA recording the most recent accepting position,
// and on reaching the sink or end of input it rewinds to that position and
// emits the associated token (spec §4.4 "Priority and maximal munch",
// §4.5's scan). It fails with an *scanerr.UnmatchedInputError at the first
// code point for which no accept was ever recorded since the last match (or
// since the start of input).
//
// Unlike the "lazy, restartable" stream contract spec §4.5 describes for a
// production scanner front-end, this reference implementation scans input
// already fully materialised in memory — sufficient for testing compiled
// tables and for the CLI's `-mode scan`, not meant as the
// generated runtime's own lexer loop.
func (d *DFA) Scan(input []rune) ([]Match, error) {
	var matches []Match
	line, col := 1, 1
	i := 0

	for i < len(input) {
		startLine, startCol := line, col
		state := d.Initial()

		bestLen := -1
		var bestToken regex.TokenID

		j := i
		for j < len(input) && state != d.Sink() {
			state = d.Step(state, input[j])
			j++
			if state == d.Sink() {
				break
			}
			if tok, ok := d.Accept(state); ok {
				bestLen = j - i
				bestToken = tok
			}
		}

		if bestLen <= 0 {
			return matches, scanerr.NewUnmatchedInput(scanerr.Position{Line: startLine, Column: startCol}, "", "", input[i])
		}

		lexeme := string(input[i : i+bestLen])
		matches = append(matches, Match{Token: bestToken, Lexeme: lexeme, Pos: scanerr.Position{Line: startLine, Column: startCol}})

		for _, r := range lexeme {
			if r == '\n' {
				line++
				col = 1
			} else {
				col++
			}
		}
		i += bestLen
	}

	return matches, nil
}
