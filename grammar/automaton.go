package grammar

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkotlin/pkc/grammar/symbol"
)

// lrItem is a production with a dot placed before its RHS symbol number `dot`.
//
// ASIGNACION → IDENTIFIER DESIGNATOR VALOR_ASIGNADO
//
//	Dot | Item
//	----+------------------------------------------------
//	0   | ASIGNACION →・IDENTIFIER DESIGNATOR VALOR_ASIGNADO
//	1   | ASIGNACION → IDENTIFIER・DESIGNATOR VALOR_ASIGNADO
//	2   | ASIGNACION → IDENTIFIER DESIGNATOR・VALOR_ASIGNADO
//	3   | ASIGNACION → IDENTIFIER DESIGNATOR VALOR_ASIGNADO・
type lrItem struct {
	prod productionNum
	dot  int
}

func (i lrItem) String() string {
	return fmt.Sprintf("%v.%v", i.prod, i.dot)
}

func (i lrItem) advance() lrItem {
	return lrItem{
		prod: i.prod,
		dot:  i.dot + 1,
	}
}

func sortItems(items []lrItem) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].prod != items[j].prod {
			return items[i].prod < items[j].prod
		}
		return items[i].dot < items[j].dot
	})
}

// kernelKey identifies a state by its kernel. items must be sorted.
func kernelKey(items []lrItem) string {
	keys := make([]string, len(items))
	for i, item := range items {
		keys[i] = item.String()
	}
	return strings.Join(keys, " ")
}

type stateNum int

const stateNumInitial = stateNum(0)

func (n stateNum) Int() int {
	return int(n)
}

type lrState struct {
	num    stateNum
	kernel []lrItem
	next   map[symbol.Symbol]stateNum

	// lookAhead holds, for each kernel item, the terminals that may follow the production. A reducible
	// item is reduced only on one of them.
	lookAhead map[lrItem]symbolSet
}

// addLookAhead reports whether the look-ahead set of item grew.
func (s *lrState) addLookAhead(item lrItem, syms symbolSet) bool {
	return s.lookAhead[item].merge(syms)
}

// lrAutomaton is the LR(0) automaton of a grammar, indexed by state number. genLALR1LookAhead fills in
// the look-ahead sets afterwards.
type lrAutomaton struct {
	states []*lrState
}

func genLRAutomaton(prods *productionSet, startSym symbol.Symbol) (*lrAutomaton, error) {
	if !startSym.IsStart() {
		return nil, fmt.Errorf("passed symbol is not a start symbol")
	}
	ps, ok := prods.findByLHS(startSym)
	if !ok || len(ps) != 1 {
		return nil, fmt.Errorf("the start symbol must have exactly one production")
	}

	a := &lrAutomaton{}
	known := map[string]stateNum{}
	stateOf := func(kernel []lrItem) stateNum {
		sortItems(kernel)
		key := kernelKey(kernel)
		if num, ok := known[key]; ok {
			return num
		}
		state := &lrState{
			num:       stateNum(len(a.states)),
			kernel:    kernel,
			next:      map[symbol.Symbol]stateNum{},
			lookAhead: map[lrItem]symbolSet{},
		}
		for _, item := range kernel {
			state.lookAhead[item] = symbolSet{}
		}
		known[key] = state.num
		a.states = append(a.states, state)
		return state.num
	}

	stateOf([]lrItem{{prod: ps[0].num}})

	// New states are appended behind the one being visited, so states are numbered breadth-first and the
	// same catalogue always yields the same numbering.
	for i := 0; i < len(a.states); i++ {
		state := a.states[i]
		goTo := map[symbol.Symbol][]lrItem{}
		for _, item := range genLR0Closure(state.kernel, prods) {
			sym := prods.findByNum(item.prod).at(item.dot)
			if sym.IsNil() {
				continue
			}
			goTo[sym] = append(goTo[sym], item.advance())
		}

		syms := make([]symbol.Symbol, 0, len(goTo))
		for sym := range goTo {
			syms = append(syms, sym)
		}
		sort.Slice(syms, func(i, j int) bool {
			return syms[i] < syms[j]
		})
		for _, sym := range syms {
			state.next[sym] = stateOf(goTo[sym])
		}
	}

	return a, nil
}

// genLR0Closure returns the kernel followed by the items CLOSURE adds. Those all have the dot at 0, and a
// non-terminal contributes its productions once.
func genLR0Closure(kernel []lrItem, prods *productionSet) []lrItem {
	items := append([]lrItem{}, kernel...)
	expanded := map[symbol.Symbol]struct{}{}
	for i := 0; i < len(items); i++ {
		sym := prods.findByNum(items[i].prod).at(items[i].dot)
		if !sym.IsNonTerminal() {
			continue
		}
		if _, ok := expanded[sym]; ok {
			continue
		}
		expanded[sym] = struct{}{}

		ps, _ := prods.findByLHS(sym)
		for _, prod := range ps {
			items = append(items, lrItem{prod: prod.num})
		}
	}
	return items
}

// reducibleItems returns the kernel items whose dot is at the end, in production order. Alternatives are
// never empty, so no other item of a state is reducible.
func (s *lrState) reducibleItems(prods *productionSet) []lrItem {
	var items []lrItem
	for _, item := range s.kernel {
		if item.dot == prods.findByNum(item.prod).rhsLen {
			items = append(items, item)
		}
	}
	return items
}
