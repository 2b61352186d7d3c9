package parser

import (
	"fmt"
	"strings"
)

type Grammar interface {
	// InitialState returns the initial state of a parser.
	InitialState() int

	// StartProduction returns the start production of grammar.
	StartProduction() int

	// Action returns an ACTION entry corresponding to a (state, terminal symbol) pair.
	Action(state int, terminal int) int

	// GoTo returns a GOTO entry corresponding to a (state, non-terminal symbol) pair.
	GoTo(state int, lhs int) int

	// AlternativeSymbolCount returns a symbol count of p production.
	AlternativeSymbolCount(prod int) int

	// TerminalCount returns a terminal symbol count of grammar.
	TerminalCount() int

	// NonTerminal retuns a string representaion of a non-terminal symbol.
	NonTerminal(nonTerminal int) string

	// LHS returns a LHS symbol of a production.
	LHS(prod int) int

	// EOF returns the EOF symbol.
	EOF() int

	// Terminal retuns a string representaion of a terminal symbol.
	Terminal(terminal int) string

	// TerminalAlias returns the spelling of a terminal symbol, or an empty string when the terminal has
	// no fixed spelling.
	TerminalAlias(terminal int) string
}

type VToken interface {
	// TerminalID returns a terminal ID.
	TerminalID() int

	// Text returns the text of a token. The EOF token has an empty text.
	Text() string

	// Line returns a 1-based line number where a token appears.
	Line() int

	// EOF returns true when a token represents EOF.
	EOF() bool
}

type TokenStream interface {
	Next() (VToken, error)
}

// SyntaxError describes a violation of the grammar. A parser never returns SyntaxError as an error;
// it collects them and carries on parsing.
type SyntaxError struct {
	Line              int
	Message           string
	Token             VToken
	ExpectedTerminals []string
}

func (e *SyntaxError) Error() string {
	return e.Message
}

type ParserOption func(p *Parser) error

// DisableLAC disables LAC (lookahead correction). When the option is enabled, the parser validates a
// look-ahead symbol before performing reductions so that it reports an unexpected token in the state
// where the token arrived.
func DisableLAC() ParserOption {
	return func(p *Parser) error {
		p.disableLAC = true
		return nil
	}
}

func SemanticAction(semAct SemanticActionSet) ParserOption {
	return func(p *Parser) error {
		p.semAct = semAct
		return nil
	}
}

// SuppressCascadingErrors makes the parser discard unexpected tokens silently after a reported error until
// it has shifted three tokens. By default every unexpected token is reported.
func SuppressCascadingErrors() ParserOption {
	return func(p *Parser) error {
		p.suppressCascade = true
		return nil
	}
}

// MaxDepth bounds the number of symbols the parser can hold on its stack. When a shift exceeds the bound,
// the parser reports the program as too deeply nested and stops.
func MaxDepth(depth int) ParserOption {
	return func(p *Parser) error {
		if depth < 1 {
			return fmt.Errorf("a maximum depth must be positive: %v", depth)
		}
		p.maxDepth = depth
		return nil
	}
}

type Parser struct {
	toks            TokenStream
	gram            Grammar
	stateStack      *stateStack
	semAct          SemanticActionSet
	disableLAC      bool
	suppressCascade bool
	maxDepth        int
	onError         bool
	shiftCount      int
	synErrs         []*SyntaxError
}

func NewParser(toks TokenStream, gram Grammar, opts ...ParserOption) (*Parser, error) {
	p := &Parser{
		toks:       toks,
		gram:       gram,
		stateStack: &stateStack{},
	}

	for _, opt := range opts {
		err := opt(p)
		if err != nil {
			return nil, err
		}
	}

	return p, nil
}

func (p *Parser) Parse() error {
	p.stateStack.push(p.gram.InitialState(), 0)
	tok, err := p.toks.Next()
	if err != nil {
		return err
	}
	validated := false

ACTION_LOOP:
	for {
		act := p.lookupAction(tok)
		if act > 0 && !p.disableLAC && !validated {
			if !p.validateLookahead(tok.TerminalID()) {
				act = 0
			}
			validated = true
		}

		switch {
		case act < 0: // Shift
			nextState := act * -1

			recovered := false
			if p.onError {
				// When the parser performs shift three times, the parser recovers from the error state.
				p.shiftCount++
				if p.shiftCount >= 3 {
					p.onError = false
					p.shiftCount = 0
					recovered = true
				}
			}

			if p.maxDepth > 0 && p.stateStack.depth() >= p.maxDepth {
				p.synErrs = append(p.synErrs, &SyntaxError{
					Line:    tok.Line(),
					Message: fmt.Sprintf("Program too deeply nested at line %v (limit %v)", tok.Line(), p.maxDepth),
					Token:   tok,
				})
				if p.semAct != nil {
					p.semAct.MissError(tok)
				}
				return nil
			}

			p.stateStack.push(nextState, -tok.TerminalID())

			if p.semAct != nil {
				p.semAct.Shift(tok, recovered)
			}

			tok, err = p.toks.Next()
			if err != nil {
				return err
			}
			validated = false
		case act > 0: // Reduce
			prodNum := act

			accepted := p.reduce(prodNum)
			if accepted {
				if p.semAct != nil {
					p.semAct.Accept()
				}

				return nil
			}

			if p.semAct != nil {
				p.semAct.Reduce(prodNum, false)
			}
		default: // Error
			if tok.EOF() {
				kinds := p.leftoverSymbols()
				p.synErrs = append(p.synErrs, &SyntaxError{
					Line:    tok.Line(),
					Message: fmt.Sprintf("Incomplete or malformed program: %v leftover symbols [%v]", len(kinds), strings.Join(kinds, " ")),
					Token:   tok,
				})
				if p.semAct != nil {
					p.semAct.MissError(tok)
				}
				return nil
			}

			if !p.onError {
				expected := p.searchLookahead(p.stateStack.top())
				p.synErrs = append(p.synErrs, &SyntaxError{
					Line:              tok.Line(),
					Message:           fmt.Sprintf("Unexpected token '%v' at line %v; expected: %v", tok.Text(), tok.Line(), strings.Join(expected, ", ")),
					Token:             tok,
					ExpectedTerminals: expected,
				})
				if p.suppressCascade {
					p.onError = true
					p.shiftCount = 0
				}
			}

			if p.semAct != nil {
				p.semAct.Discard(tok)
			}

			tok, err = p.toks.Next()
			if err != nil {
				return err
			}
			validated = false

			continue ACTION_LOOP
		}
	}
}

// validateLookahead reports whether the parser can shift a terminal after performing reductions. It runs
// the reductions on a copy of the state stack, so the actual stack stays untouched.
func (p *Parser) validateLookahead(term int) bool {
	p.stateStack.enableExploratoryMode()
	defer p.stateStack.disableExploratoryMode()

	for {
		act := p.gram.Action(p.stateStack.topExploratorily(), term)

		switch {
		case act < 0: // Shift
			return true
		case act > 0: // Reduce
			prodNum := act

			lhs := p.gram.LHS(prodNum)
			if lhs == p.gram.LHS(p.gram.StartProduction()) {
				return true
			}
			n := p.gram.AlternativeSymbolCount(prodNum)
			p.stateStack.popExploratorily(n)
			state := p.gram.GoTo(p.stateStack.topExploratorily(), lhs)
			p.stateStack.pushExploratorily(state)
		default: // Error
			return false
		}
	}
}

func (p *Parser) lookupAction(tok VToken) int {
	return p.gram.Action(p.stateStack.top(), tok.TerminalID())
}

func (p *Parser) reduce(prodNum int) bool {
	lhs := p.gram.LHS(prodNum)
	if lhs == p.gram.LHS(p.gram.StartProduction()) {
		return true
	}
	n := p.gram.AlternativeSymbolCount(prodNum)
	p.stateStack.pop(n)
	nextState := p.gram.GoTo(p.stateStack.top(), lhs)
	p.stateStack.push(nextState, lhs)
	return false
}

// leftoverSymbols returns the names of the symbols remaining on the stack from bottom to top.
func (p *Parser) leftoverSymbols() []string {
	syms := p.stateStack.symbols()
	names := make([]string, len(syms))
	for i, sym := range syms {
		if sym < 0 {
			names[i] = p.gram.Terminal(-sym)
		} else {
			names[i] = p.gram.NonTerminal(sym)
		}
	}
	return names
}

func (p *Parser) SyntaxErrors() []*SyntaxError {
	return p.synErrs
}

// searchLookahead returns the terminals acceptable in `state`. When LAC is enabled, it keeps only
// the terminals the parser can actually shift after reductions.
func (p *Parser) searchLookahead(state int) []string {
	kinds := []string{}
	termCount := p.gram.TerminalCount()
	for term := 0; term < termCount; term++ {
		if p.disableLAC {
			if p.gram.Action(state, term) == 0 {
				continue
			}
		} else {
			if !p.validateLookahead(term) {
				continue
			}
		}

		if term == p.gram.EOF() {
			kinds = append(kinds, "<eof>")
			continue
		}

		if alias := p.gram.TerminalAlias(term); alias != "" {
			kinds = append(kinds, alias)
		} else {
			kinds = append(kinds, p.gram.Terminal(term))
		}
	}

	return kinds
}

// stateStack holds states along with the symbols the parser reached them by. A terminal symbol is
// stored as a negative number and a non-terminal symbol as a positive one. The bottom frame has no symbol.
type stateStack struct {
	items    []int
	syms     []int
	itemsExp []int
}

func (s *stateStack) enableExploratoryMode() {
	s.itemsExp = make([]int, len(s.items))
	copy(s.itemsExp, s.items)
}

func (s *stateStack) disableExploratoryMode() {
	s.itemsExp = nil
}

func (s *stateStack) top() int {
	return s.items[len(s.items)-1]
}

func (s *stateStack) topExploratorily() int {
	return s.itemsExp[len(s.itemsExp)-1]
}

func (s *stateStack) push(state int, sym int) {
	s.items = append(s.items, state)
	s.syms = append(s.syms, sym)
}

func (s *stateStack) pushExploratorily(state int) {
	s.itemsExp = append(s.itemsExp, state)
}

func (s *stateStack) pop(n int) {
	s.items = s.items[:len(s.items)-n]
	s.syms = s.syms[:len(s.syms)-n]
}

func (s *stateStack) popExploratorily(n int) {
	s.itemsExp = s.itemsExp[:len(s.itemsExp)-n]
}

// depth returns the number of symbols on the stack.
func (s *stateStack) depth() int {
	return len(s.items) - 1
}

func (s *stateStack) symbols() []int {
	return s.syms[1:]
}
