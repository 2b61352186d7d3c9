package grammar

import (
	"sort"

	"github.com/pkotlin/pkc/grammar/symbol"
)

// symbolSet is a set of terminal symbols.
type symbolSet map[symbol.Symbol]struct{}

// merge adds the symbols of other and reports whether s grew.
func (s symbolSet) merge(other symbolSet) bool {
	grew := false
	for sym := range other {
		if _, ok := s[sym]; ok {
			continue
		}
		s[sym] = struct{}{}
		grew = true
	}
	return grew
}

func (s symbolSet) sorted() []symbol.Symbol {
	syms := make([]symbol.Symbol, 0, len(s))
	for sym := range s {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i] < syms[j]
	})
	return syms
}

// firstSet maps each non-terminal to the terminals a derivation of it can begin with. The builder rejects
// empty alternatives, so no non-terminal derives the empty string and FIRST of a sequence of symbols is
// FIRST of its head.
type firstSet map[symbol.Symbol]symbolSet

func genFirstSet(prods *productionSet) firstSet {
	fst := firstSet{}
	for _, prod := range prods.getAllProductions() {
		if _, ok := fst[prod.lhs]; !ok {
			fst[prod.lhs] = symbolSet{}
		}
	}
	for changed := true; changed; {
		changed = false
		for _, prod := range prods.getAllProductions() {
			if fst[prod.lhs].merge(fst.ofSymbol(prod.rhs[0])) {
				changed = true
			}
		}
	}
	return fst
}

func (fst firstSet) ofSymbol(sym symbol.Symbol) symbolSet {
	if sym.IsTerminal() {
		return symbolSet{sym: {}}
	}
	return fst[sym]
}

// afterDot returns FIRST of the symbols of prod following position dot. ok is false when no symbol follows.
func (fst firstSet) afterDot(prod *production, dot int) (syms symbolSet, ok bool) {
	if dot >= prod.rhsLen {
		return nil, false
	}
	return fst.ofSymbol(prod.rhs[dot]), true
}
