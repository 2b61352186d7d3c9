package grammar

import (
	"fmt"
	"strings"

	"github.com/pkotlin/pkc/grammar/symbol"
)

type productionNum uint16

const (
	productionNumStart = productionNum(1)
	productionNumMin   = productionNum(2)
)

func (n productionNum) Int() int {
	return int(n)
}

type production struct {
	num    productionNum
	lhs    symbol.Symbol
	rhs    []symbol.Symbol
	rhsLen int
}

func newProduction(lhs symbol.Symbol, rhs []symbol.Symbol) (*production, error) {
	if lhs.IsNil() {
		return nil, fmt.Errorf("LHS must be a non-nil symbol; LHS: %v, RHS: %v", lhs, rhs)
	}
	if len(rhs) == 0 {
		return nil, fmt.Errorf("RHS must contain at least one symbol; LHS: %v", lhs)
	}
	for _, sym := range rhs {
		if sym.IsNil() {
			return nil, fmt.Errorf("a symbol of RHS must be a non-nil symbol; LHS: %v, RHS: %v", lhs, rhs)
		}
	}

	return &production{
		lhs:    lhs,
		rhs:    rhs,
		rhsLen: len(rhs),
	}, nil
}

// at returns the symbol after `dot` symbols of the RHS, or the nil symbol when the dot is at the end.
func (p *production) at(dot int) symbol.Symbol {
	if dot >= p.rhsLen {
		return symbol.SymbolNil
	}
	return p.rhs[dot]
}

func productionKey(lhs symbol.Symbol, rhs []symbol.Symbol) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v:", lhs)
	for _, sym := range rhs {
		fmt.Fprintf(&b, " %v", sym)
	}
	return b.String()
}

// productionSet numbers productions in the order they are appended. The number doubles as the
// priority in reduce/reduce conflicts, so the caller must append productions in declaration order.
type productionSet struct {
	lhs2Prods map[symbol.Symbol][]*production
	key2Prod  map[string]*production
	num2Prod  []*production
}

func newProductionSet() *productionSet {
	return &productionSet{
		lhs2Prods: map[symbol.Symbol][]*production{},
		key2Prod:  map[string]*production{},
		num2Prod:  make([]*production, productionNumMin),
	}
}

// append returns false when the set already has a production with the same symbols.
func (ps *productionSet) append(prod *production) bool {
	key := productionKey(prod.lhs, prod.rhs)
	if _, ok := ps.key2Prod[key]; ok {
		return false
	}

	if prod.lhs.IsStart() {
		prod.num = productionNumStart
		ps.num2Prod[productionNumStart] = prod
	} else {
		prod.num = productionNum(len(ps.num2Prod))
		ps.num2Prod = append(ps.num2Prod, prod)
	}

	ps.lhs2Prods[prod.lhs] = append(ps.lhs2Prods[prod.lhs], prod)
	ps.key2Prod[key] = prod

	return true
}

func (ps *productionSet) find(lhs symbol.Symbol, rhs []symbol.Symbol) (*production, bool) {
	prod, ok := ps.key2Prod[productionKey(lhs, rhs)]
	return prod, ok
}

func (ps *productionSet) findByNum(num productionNum) *production {
	return ps.num2Prod[num]
}

func (ps *productionSet) findByLHS(lhs symbol.Symbol) ([]*production, bool) {
	if lhs.IsNil() {
		return nil, false
	}

	prods, ok := ps.lhs2Prods[lhs]
	return prods, ok
}

// getAllProductions returns the productions in number order.
func (ps *productionSet) getAllProductions() []*production {
	prods := make([]*production, 0, len(ps.key2Prod))
	for _, p := range ps.num2Prod {
		if p == nil {
			continue
		}
		prods = append(prods, p)
	}
	return prods
}

func (ps *productionSet) count() int {
	return len(ps.key2Prod)
}
