package grammar

import (
	"fmt"
	"sort"

	"github.com/pkotlin/pkc/grammar/symbol"
	spec "github.com/pkotlin/pkc/spec/grammar"
)

// genReport describes the automaton behind tab. The symbol and production lists are indexed by number,
// so their first element is nil.
func (b *lrTableBuilder) genReport(tab *ParsingTable, gram *Grammar) (*spec.Report, error) {
	symTab := gram.symbolTable.Reader()
	nameOf := func(sym symbol.Symbol) (string, error) {
		name, ok := symTab.ToName(sym)
		if !ok {
			return "", fmt.Errorf("symbol not found: %v", sym)
		}
		return name, nil
	}

	termSyms := symTab.TerminalSymbols()
	terms := make([]*spec.Terminal, len(termSyms)+1)
	for _, sym := range termSyms {
		name, err := nameOf(sym)
		if err != nil {
			return nil, err
		}
		terms[sym.Num()] = &spec.Terminal{
			Number: sym.Num().Int(),
			Name:   name,
			Alias:  gram.kindAliases[sym],
		}
	}

	nonTermSyms := symTab.NonTerminalSymbols()
	nonTerms := make([]*spec.NonTerminal, len(nonTermSyms)+1)
	for _, sym := range nonTermSyms {
		name, err := nameOf(sym)
		if err != nil {
			return nil, err
		}
		nonTerms[sym.Num()] = &spec.NonTerminal{
			Number: sym.Num().Int(),
			Name:   name,
		}
	}

	prods := make([]*spec.Production, b.prods.count()+1)
	for _, p := range b.prods.getAllProductions() {
		rhs := make([]int, p.rhsLen)
		for i, sym := range p.rhs {
			rhs[i] = sym.Num().Int()
			if sym.IsNonTerminal() {
				rhs[i] *= -1
			}
		}
		prods[p.num] = &spec.Production{
			Number: p.num.Int(),
			LHS:    p.lhs.Num().Int(),
			RHS:    rhs,
		}
	}

	states := make([]*spec.State, len(b.automaton.states))
	for _, s := range b.automaton.states {
		states[s.num] = b.describeState(tab, s, termSyms)
	}

	return &spec.Report{
		Terminals:    terms,
		NonTerminals: nonTerms,
		Productions:  prods,
		States:       states,
	}, nil
}

func (b *lrTableBuilder) describeState(tab *ParsingTable, s *lrState, termSyms []symbol.Symbol) *spec.State {
	kernel := make([]*spec.Item, len(s.kernel))
	for i, item := range s.kernel {
		kernel[i] = &spec.Item{
			Production: item.prod.Int(),
			Dot:        item.dot,
		}
	}

	var shift, goTo []*spec.Transition
	for sym, next := range s.next {
		tran := &spec.Transition{
			Symbol: sym.Num().Int(),
			State:  next.Int(),
		}
		if sym.IsTerminal() {
			shift = append(shift, tran)
		} else {
			goTo = append(goTo, tran)
		}
	}
	for _, trans := range [][]*spec.Transition{shift, goTo} {
		sort.Slice(trans, func(i, j int) bool {
			return trans[i].State < trans[j].State
		})
	}

	// Terminals are visited in number order, so each look-ahead list comes out sorted.
	var reduce []*spec.Reduce
	byProd := map[int]*spec.Reduce{}
	for _, term := range termSyms {
		act := tab.actionAt(s.num, term)
		if act <= 0 {
			continue
		}
		r, ok := byProd[act]
		if !ok {
			r = &spec.Reduce{
				Production: act,
			}
			byProd[act] = r
			reduce = append(reduce, r)
		}
		r.LookAhead = append(r.LookAhead, term.Num().Int())
	}
	sort.Slice(reduce, func(i, j int) bool {
		return reduce[i].Production < reduce[j].Production
	})

	sr := b.srConflicts[s.num]
	if sr == nil {
		sr = []*spec.SRConflict{}
	}
	rr := b.rrConflicts[s.num]
	if rr == nil {
		rr = []*spec.RRConflict{}
	}

	return &spec.State{
		Number:     s.num.Int(),
		Kernel:     kernel,
		Shift:      shift,
		Reduce:     reduce,
		GoTo:       goTo,
		SRConflict: sr,
		RRConflict: rr,
	}
}
