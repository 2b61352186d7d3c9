package parser

import (
	"fmt"

	spec "github.com/pkotlin/pkc/spec/grammar"
)

type grammarImpl struct {
	g *spec.CompiledGrammar
}

func NewGrammar(g *spec.CompiledGrammar) *grammarImpl {
	return &grammarImpl{
		g: g,
	}
}

func (g *grammarImpl) InitialState() int {
	return g.g.Syntactic.InitialState
}

func (g *grammarImpl) StartProduction() int {
	return g.g.Syntactic.StartProduction
}

func (g *grammarImpl) Action(state int, terminal int) int {
	if tab := g.g.Syntactic.CompressedAction; tab != nil {
		act, err := tab.Lookup(state, terminal)
		if err != nil {
			panic(fmt.Errorf("corrupt action table: %w", err))
		}
		return act
	}
	return g.g.Syntactic.Action[state*g.g.Syntactic.TerminalCount+terminal]
}

func (g *grammarImpl) GoTo(state int, lhs int) int {
	if tab := g.g.Syntactic.CompressedGoTo; tab != nil {
		next, err := tab.Lookup(state, lhs)
		if err != nil {
			panic(fmt.Errorf("corrupt goto table: %w", err))
		}
		return next
	}
	return g.g.Syntactic.GoTo[state*g.g.Syntactic.NonTerminalCount+lhs]
}

func (g *grammarImpl) AlternativeSymbolCount(prod int) int {
	return g.g.Syntactic.AlternativeSymbolCounts[prod]
}

func (g *grammarImpl) TerminalCount() int {
	return g.g.Syntactic.TerminalCount
}

func (g *grammarImpl) NonTerminal(nonTerminal int) string {
	return g.g.Syntactic.NonTerminals[nonTerminal]
}

func (g *grammarImpl) LHS(prod int) int {
	return g.g.Syntactic.LHSSymbols[prod]
}

func (g *grammarImpl) EOF() int {
	return g.g.Syntactic.EOFSymbol
}

func (g *grammarImpl) Terminal(terminal int) string {
	return g.g.Syntactic.Terminals[terminal]
}

func (g *grammarImpl) TerminalAlias(terminal int) string {
	return g.g.Syntactic.TerminalAliases[terminal]
}
