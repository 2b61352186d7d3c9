package grammar

import (
	"testing"

	"github.com/pkotlin/pkc/grammar/symbol"
)

func TestGenLALR1LookAhead(t *testing.T) {
	// This grammar belongs to LALR(1) class, not SLR(1).
	//
	// S → L = R | R
	// L → * R | id
	// R → L
	rules := []*Rule{
		{
			LHS: "S",
			Alternatives: [][]string{
				{"L", "DESIGNATOR", "R"},
				{"R"},
			},
		},
		{
			LHS: "L",
			Alternatives: [][]string{
				{"OP_MUL", "R"},
				{"IDENTIFIER"},
			},
		},
		{
			LHS: "R",
			Alternatives: [][]string{
				{"L"},
			},
		},
	}

	gram := buildTestGrammar(t, rules)
	automaton, err := genLRAutomaton(gram.productionSet, gram.augmentedStartSymbol)
	if err != nil {
		t.Fatalf("failed to create an LR(0) automaton: %v", err)
	}
	err = genLALR1LookAhead(automaton, gram.productionSet, genFirstSet(gram.productionSet))
	if err != nil {
		t.Fatalf("failed to compute look-ahead symbols: %v", err)
	}

	genSym := newTestSymbolGenerator(t, gram.symbolTable.Reader())
	genItem := newTestItemGenerator(newTestProductionGenerator(t, gram, genSym))

	eq := genSym("DESIGNATOR")
	eof := symbol.SymbolEOF

	expected := []*expectedLRState{
		{
			kernel: map[lrItem][]symbol.Symbol{
				genItem("S'", 0, "S"): {eof},
			},
			next: map[symbol.Symbol]int{
				genSym("S"):          1,
				genSym("L"):          2,
				genSym("R"):          3,
				genSym("OP_MUL"):     4,
				genSym("IDENTIFIER"): 5,
			},
		},
		{
			kernel: map[lrItem][]symbol.Symbol{
				genItem("S'", 1, "S"): {eof},
			},
			reducible: []lrItem{
				genItem("S'", 1, "S"),
			},
		},
		{
			kernel: map[lrItem][]symbol.Symbol{
				genItem("S", 1, "L", "DESIGNATOR", "R"): {eof},
				genItem("R", 1, "L"):                    {eof},
			},
			next: map[symbol.Symbol]int{
				eq: 6,
			},
			reducible: []lrItem{
				genItem("R", 1, "L"),
			},
		},
		{
			kernel: map[lrItem][]symbol.Symbol{
				genItem("S", 1, "R"): {eof},
			},
			reducible: []lrItem{
				genItem("S", 1, "R"),
			},
		},
		{
			kernel: map[lrItem][]symbol.Symbol{
				genItem("L", 1, "OP_MUL", "R"): {eq, eof},
			},
			next: map[symbol.Symbol]int{
				genSym("R"):          7,
				genSym("L"):          8,
				genSym("OP_MUL"):     4,
				genSym("IDENTIFIER"): 5,
			},
		},
		{
			kernel: map[lrItem][]symbol.Symbol{
				genItem("L", 1, "IDENTIFIER"): {eq, eof},
			},
			reducible: []lrItem{
				genItem("L", 1, "IDENTIFIER"),
			},
		},
		{
			kernel: map[lrItem][]symbol.Symbol{
				genItem("S", 2, "L", "DESIGNATOR", "R"): {eof},
			},
			next: map[symbol.Symbol]int{
				genSym("R"):          9,
				genSym("L"):          8,
				genSym("OP_MUL"):     4,
				genSym("IDENTIFIER"): 5,
			},
		},
		{
			kernel: map[lrItem][]symbol.Symbol{
				genItem("L", 2, "OP_MUL", "R"): {eq, eof},
			},
			reducible: []lrItem{
				genItem("L", 2, "OP_MUL", "R"),
			},
		},
		{
			kernel: map[lrItem][]symbol.Symbol{
				genItem("R", 1, "L"): {eq, eof},
			},
			reducible: []lrItem{
				genItem("R", 1, "L"),
			},
		},
		{
			kernel: map[lrItem][]symbol.Symbol{
				genItem("S", 3, "L", "DESIGNATOR", "R"): {eof},
			},
			reducible: []lrItem{
				genItem("S", 3, "L", "DESIGNATOR", "R"),
			},
		},
	}

	testLRAutomaton(t, expected, automaton, gram.productionSet)
}

func TestGenLR1Closure(t *testing.T) {
	// E → E + T | T
	// T → id
	rules := []*Rule{
		{LHS: "E", Alternatives: [][]string{{"E", "OP_SUM", "T"}, {"T"}}},
		{LHS: "T", Alternatives: [][]string{{"IDENTIFIER"}}},
	}
	gram := buildTestGrammar(t, rules)
	genSym := newTestSymbolGenerator(t, gram.symbolTable.Reader())
	genItem := newTestItemGenerator(newTestProductionGenerator(t, gram, genSym))
	plus := genSym("OP_SUM")

	c := genLR1Closure(genItem("E'", 0, "E"), gram.productionSet, genFirstSet(gram.productionSet))

	tests := []struct {
		item      lrItem
		lookAhead []symbol.Symbol
		carries   bool
	}{
		{item: genItem("E'", 0, "E"), lookAhead: []symbol.Symbol{}, carries: true},
		{item: genItem("E", 0, "E", "OP_SUM", "T"), lookAhead: []symbol.Symbol{plus}, carries: true},
		{item: genItem("E", 0, "T"), lookAhead: []symbol.Symbol{plus}, carries: true},
		{item: genItem("T", 0, "IDENTIFIER"), lookAhead: []symbol.Symbol{plus}, carries: true},
	}
	if len(c.lookAhead) != len(tests) {
		t.Fatalf("unexpected item count; want: %v, got: %v", len(tests), len(c.lookAhead))
	}
	for _, tt := range tests {
		las, ok := c.lookAhead[tt.item]
		if !ok {
			t.Fatalf("an item was not found: %v", tt.item)
		}
		if len(las) != len(tt.lookAhead) {
			t.Fatalf("look-ahead symbols of %v are mismatched; want: %v, got: %v", tt.item, tt.lookAhead, las.sorted())
		}
		for _, a := range tt.lookAhead {
			if _, ok := las[a]; !ok {
				t.Fatalf("look-ahead symbol of %v not found: %v", tt.item, a)
			}
		}
		if c.carries[tt.item] != tt.carries {
			t.Fatalf("unexpected carries flag of %v; want: %v, got: %v", tt.item, tt.carries, c.carries[tt.item])
		}
	}
}
