package parser

import (
	"fmt"

	spec "github.com/pkotlin/pkc/spec/grammar"
	"github.com/pkotlin/pkc/token"
)

type vToken struct {
	terminalID int
	tok        *token.Token
	eofLine    int
}

func (t *vToken) TerminalID() int {
	return t.terminalID
}

func (t *vToken) Text() string {
	if t.tok == nil {
		return ""
	}
	return t.tok.Text
}

func (t *vToken) Line() int {
	if t.tok == nil {
		return t.eofLine
	}
	return t.tok.Line
}

func (t *vToken) EOF() bool {
	return t.tok == nil
}

func (t *vToken) Token() *token.Token {
	return t.tok
}

type tokenStream struct {
	toks           []*token.Token
	pos            int
	kindToTerminal []int
	eofTerminal    int
}

// NewTokenStream returns a TokenStream that feeds tokens produced by the lexer to a parser. Every kind of
// `toks` must be a terminal of `g`. The stream ends with an EOF token placed on the line of the last token.
func NewTokenStream(g *spec.CompiledGrammar, toks []*token.Token) (TokenStream, error) {
	k2t := g.Syntactic.KindToTerminal
	for _, tok := range toks {
		if int(tok.Kind) >= len(k2t) || k2t[tok.Kind] == 0 {
			return nil, fmt.Errorf("token kind %v is not a terminal of grammar %v", tok.Kind, g.Name)
		}
	}

	return &tokenStream{
		toks:           toks,
		kindToTerminal: k2t,
		eofTerminal:    g.Syntactic.EOFSymbol,
	}, nil
}

func (s *tokenStream) Next() (VToken, error) {
	if s.pos >= len(s.toks) {
		line := 1
		if len(s.toks) > 0 {
			line = s.toks[len(s.toks)-1].Line
		}
		return &vToken{
			terminalID: s.eofTerminal,
			eofLine:    line,
		}, nil
	}

	tok := s.toks[s.pos]
	s.pos++
	return &vToken{
		terminalID: s.kindToTerminal[tok.Kind],
		tok:        tok,
	}, nil
}
