package grammar

import (
	"fmt"

	"github.com/pkotlin/pkc/grammar/symbol"
)

// lr1Closure is CLOSURE({[kernel item, #]}) where # stands for the look-ahead of the kernel item, whatever
// it turns out to be. An item marked in carries gets # in addition to the terminals in lookAhead.
type lr1Closure struct {
	lookAhead map[lrItem]symbolSet
	carries   map[lrItem]bool
}

func genLR1Closure(kItem lrItem, prods *productionSet, first firstSet) *lr1Closure {
	c := &lr1Closure{
		lookAhead: map[lrItem]symbolSet{
			kItem: {},
		},
		carries: map[lrItem]bool{
			kItem: true,
		},
	}
	queue := []lrItem{kItem}
	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		prod := prods.findByNum(item.prod)
		sym := prod.at(item.dot)
		if !sym.IsNonTerminal() {
			continue
		}

		// [A → α・B β, a] adds [B →・γ, b] for every b in FIRST(β a).
		syms, ok := first.afterDot(prod, item.dot+1)
		carries := false
		if !ok {
			syms = c.lookAhead[item]
			carries = c.carries[item]
		}

		ps, _ := prods.findByLHS(sym)
		for _, p := range ps {
			added := lrItem{prod: p.num}
			las, seen := c.lookAhead[added]
			if !seen {
				las = symbolSet{}
				c.lookAhead[added] = las
			}
			changed := las.merge(syms)
			if carries && !c.carries[added] {
				c.carries[added] = true
				changed = true
			}
			if !seen || changed {
				queue = append(queue, added)
			}
		}
	}
	return c
}

type stateItem struct {
	state stateNum
	item  lrItem
}

// genLALR1LookAhead computes the look-ahead sets of the kernel items. A closure of each kernel item yields
// look-aheads generated spontaneously in the successor states, and links along which the look-ahead of
// the kernel item flows. The links are followed until no set grows.
func genLALR1LookAhead(a *lrAutomaton, prods *productionSet, first firstSet) error {
	// [S' → ・S, <eof>]
	initial := a.states[stateNumInitial]
	initial.addLookAhead(initial.kernel[0], symbolSet{symbol.SymbolEOF: {}})

	type link struct {
		from stateItem
		to   stateItem
	}
	var links []link
	for _, state := range a.states {
		for _, kItem := range state.kernel {
			c := genLR1Closure(kItem, prods, first)
			for item, las := range c.lookAhead {
				sym := prods.findByNum(item.prod).at(item.dot)
				if sym.IsNil() {
					continue
				}
				next, ok := state.next[sym]
				if !ok {
					return fmt.Errorf("a transition was not found; state: %v, symbol: %v", state.num, sym)
				}
				to := stateItem{
					state: next,
					item:  item.advance(),
				}
				a.states[to.state].addLookAhead(to.item, las)
				if c.carries[item] {
					links = append(links, link{
						from: stateItem{
							state: state.num,
							item:  kItem,
						},
						to: to,
					})
				}
			}
		}
	}

	for changed := true; changed; {
		changed = false
		for _, l := range links {
			src := a.states[l.from.state].lookAhead[l.from.item]
			if a.states[l.to.state].addLookAhead(l.to.item, src) {
				changed = true
			}
		}
	}

	return nil
}
