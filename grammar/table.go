package grammar

import (
	"sort"

	"github.com/pkotlin/pkc/grammar/symbol"
	spec "github.com/pkotlin/pkc/spec/grammar"
)

// ParsingTable holds the ACTION and GOTO tables in row-major order. An ACTION entry encodes a shift to
// state n as -n and a reduction by production n as n. The initial state is never a shift target, so 0
// is free to mean an error. A GOTO entry is the next state, and 0 is an error too.
type ParsingTable struct {
	action           []int
	goTo             []int
	stateCount       int
	terminalCount    int
	nonTerminalCount int
}

func (t *ParsingTable) actionAt(state stateNum, term symbol.Symbol) int {
	return t.action[state.Int()*t.terminalCount+term.Num().Int()]
}

func (t *ParsingTable) setAction(state stateNum, term symbol.Symbol, act int) {
	t.action[state.Int()*t.terminalCount+term.Num().Int()] = act
}

func (t *ParsingTable) setGoTo(state stateNum, nonTerm symbol.Symbol, next stateNum) {
	t.goTo[state.Int()*t.nonTerminalCount+nonTerm.Num().Int()] = next.Int()
}

type lrTableBuilder struct {
	automaton    *lrAutomaton
	prods        *productionSet
	termCount    int
	nonTermCount int

	srConflicts map[stateNum][]*spec.SRConflict
	rrConflicts map[stateNum][]*spec.RRConflict
}

func (b *lrTableBuilder) build() *ParsingTable {
	stateCount := len(b.automaton.states)
	tab := &ParsingTable{
		action:           make([]int, stateCount*b.termCount),
		goTo:             make([]int, stateCount*b.nonTermCount),
		stateCount:       stateCount,
		terminalCount:    b.termCount,
		nonTerminalCount: b.nonTermCount,
	}
	b.srConflicts = map[stateNum][]*spec.SRConflict{}
	b.rrConflicts = map[stateNum][]*spec.RRConflict{}

	for _, state := range b.automaton.states {
		// Shifts go in first, so a reduction colliding with one always loses.
		for sym, next := range state.next {
			if sym.IsTerminal() {
				tab.setAction(state.num, sym, -next.Int())
			} else {
				tab.setGoTo(state.num, sym, next)
			}
		}
		for _, item := range state.reducibleItems(b.prods) {
			for _, a := range state.lookAhead[item].sorted() {
				b.writeReduce(tab, state.num, a, item.prod)
			}
		}
	}

	for _, cs := range b.srConflicts {
		sort.Slice(cs, func(i, j int) bool {
			return cs[i].Symbol < cs[j].Symbol
		})
	}
	for _, cs := range b.rrConflicts {
		sort.Slice(cs, func(i, j int) bool {
			return cs[i].Symbol < cs[j].Symbol
		})
	}
	return tab
}

// writeReduce writes a reduction unless the entry is taken. Reducible items arrive in production order,
// so a reduction already in place belongs to the production declared earlier and stays.
func (b *lrTableBuilder) writeReduce(tab *ParsingTable, state stateNum, sym symbol.Symbol, prod productionNum) {
	act := tab.actionAt(state, sym)
	switch {
	case act == 0:
		tab.setAction(state, sym, prod.Int())
	case act < 0:
		b.srConflicts[state] = append(b.srConflicts[state], &spec.SRConflict{
			Symbol:       sym.Num().Int(),
			State:        -act,
			Production:   prod.Int(),
			AdoptedState: -act,
			ResolvedBy:   spec.ResolvedByShift,
		})
	default:
		b.rrConflicts[state] = append(b.rrConflicts[state], &spec.RRConflict{
			Symbol:            sym.Num().Int(),
			Production1:       act,
			Production2:       prod.Int(),
			AdoptedProduction: act,
			ResolvedBy:        spec.ResolvedByProdOrder,
		})
	}
}
