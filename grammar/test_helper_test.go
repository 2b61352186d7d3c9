package grammar

import (
	"fmt"
	"testing"

	"github.com/pkotlin/pkc/grammar/symbol"
	"github.com/pkotlin/pkc/token"
)

func buildTestGrammar(t *testing.T, rules []*Rule) *Grammar {
	t.Helper()

	b := &GrammarBuilder{
		Name:      "test",
		Rules:     rules,
		Terminals: token.Kinds(),
	}
	gram, err := b.Build()
	if err != nil {
		t.Fatalf("failed to build a grammar: %v", err)
	}
	return gram
}

type testSymbolGenerator func(name string) symbol.Symbol

func newTestSymbolGenerator(t *testing.T, symTab *symbol.TableReader) testSymbolGenerator {
	return func(name string) symbol.Symbol {
		t.Helper()

		sym, ok := symTab.ToSymbol(name)
		if !ok {
			t.Fatalf("symbol was not found: %v", name)
		}
		return sym
	}
}

type testProductionGenerator func(lhs string, rhs ...string) *production

// newTestProductionGenerator looks up productions of gram by their symbols.
func newTestProductionGenerator(t *testing.T, gram *Grammar, genSym testSymbolGenerator) testProductionGenerator {
	return func(lhs string, rhs ...string) *production {
		t.Helper()

		rhsSym := []symbol.Symbol{}
		for _, name := range rhs {
			rhsSym = append(rhsSym, genSym(name))
		}
		prod, ok := gram.productionSet.find(genSym(lhs), rhsSym)
		if !ok {
			t.Fatalf("a production was not found: %v → %v", lhs, rhs)
		}
		return prod
	}
}

type testItemGenerator func(lhs string, dot int, rhs ...string) lrItem

func newTestItemGenerator(genProd testProductionGenerator) testItemGenerator {
	return func(lhs string, dot int, rhs ...string) lrItem {
		return lrItem{
			prod: genProd(lhs, rhs...).num,
			dot:  dot,
		}
	}
}

// expectedLRState describes a state by its kernel items along with their look-ahead symbols. next maps
// a symbol to the index of the expected successor.
type expectedLRState struct {
	kernel    map[lrItem][]symbol.Symbol
	next      map[symbol.Symbol]int
	reducible []lrItem
}

func (e *expectedLRState) key() string {
	items := make([]lrItem, 0, len(e.kernel))
	for item := range e.kernel {
		items = append(items, item)
	}
	sortItems(items)
	return kernelKey(items)
}

func testLRAutomaton(t *testing.T, expected []*expectedLRState, automaton *lrAutomaton, prods *productionSet) {
	t.Helper()

	if len(automaton.states) != len(expected) {
		t.Fatalf("state count is mismatched; want: %v, got: %v", len(expected), len(automaton.states))
	}
	if automaton.states[stateNumInitial].num != stateNumInitial {
		t.Fatalf("unexpected initial state number: %v", automaton.states[stateNumInitial].num)
	}

	byKernel := map[string]*lrState{}
	for _, s := range automaton.states {
		byKernel[kernelKey(s.kernel)] = s
	}

	for i, eState := range expected {
		t.Run(fmt.Sprintf("state #%v", i), func(t *testing.T) {
			state, ok := byKernel[eState.key()]
			if !ok {
				t.Fatalf("a kernel was not found: %v", eState.key())
			}

			for item, eLookAhead := range eState.kernel {
				lookAhead := state.lookAhead[item]
				if len(lookAhead) != len(eLookAhead) {
					t.Errorf("look-ahead symbols of %v are mismatched; want: %v, got: %v", item, eLookAhead, lookAhead.sorted())
				}
				for _, a := range eLookAhead {
					if _, ok := lookAhead[a]; !ok {
						t.Errorf("look-ahead symbol of %v not found: %v", item, a)
					}
				}
			}

			if len(state.next) != len(eState.next) {
				t.Errorf("next state count is mismatched; want: %v, got: %v", len(eState.next), len(state.next))
			}
			for sym, idx := range eState.next {
				next, ok := state.next[sym]
				if !ok {
					t.Fatalf("next state was not found; state: %v, symbol: %v", state.num, sym)
				}
				if key := kernelKey(automaton.states[next].kernel); key != expected[idx].key() {
					t.Fatalf("a kernel of the next state is mismatched; want: %v, got: %v", expected[idx].key(), key)
				}
			}

			reducible := state.reducibleItems(prods)
			if len(reducible) != len(eState.reducible) {
				t.Fatalf("reducible item count is mismatched; want: %v, got: %v", len(eState.reducible), len(reducible))
			}
			for i, item := range eState.reducible {
				if reducible[i] != item {
					t.Fatalf("unexpected reducible item; want: %v, got: %v", item, reducible[i])
				}
			}
		})
	}
}
