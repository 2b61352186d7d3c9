package grammar

import (
	"fmt"

	"github.com/pkotlin/pkc/compressor"
	"github.com/pkotlin/pkc/grammar/symbol"
	spec "github.com/pkotlin/pkc/spec/grammar"
	"github.com/pkotlin/pkc/token"
)

// DefaultName is the name of the Pseudo-Kotlin grammar.
const DefaultName = "pseudo-kotlin"

type Grammar struct {
	name                 string
	productionSet        *productionSet
	augmentedStartSymbol symbol.Symbol
	symbolTable          *symbol.Table
	kindAliases          map[symbol.Symbol]string
	kind2Term            map[token.Kind]symbol.Symbol
}

// GrammarBuilder validates a catalogue and turns it into a Grammar. Terminals are the token kinds the
// lexer produces, and every kind may be used in rules under its name.
type GrammarBuilder struct {
	Name      string
	Rules     []*Rule
	Terminals []token.Kind

	errs RuleErrors
}

func (b *GrammarBuilder) Build() (*Grammar, error) {
	if len(b.Rules) == 0 {
		b.errs = append(b.errs, &RuleError{
			Cause: semErrNoProduction,
		})
	}
	if len(b.Terminals) == 0 {
		b.errs = append(b.errs, &RuleError{
			Cause: semErrNoTerminal,
		})
	}
	if len(b.errs) > 0 {
		return nil, b.errs
	}

	symTab := symbol.NewTable()
	w := symTab.Writer()
	r := symTab.Reader()

	kindAliases := map[symbol.Symbol]string{}
	kind2Term := map[token.Kind]symbol.Symbol{}
	for _, k := range b.Terminals {
		if !k.Valid() {
			b.errs = append(b.errs, &RuleError{
				Cause:  semErrInvalidTerminal,
				Detail: k.String(),
			})
			continue
		}
		if _, dup := kind2Term[k]; dup {
			b.errs = append(b.errs, &RuleError{
				Cause:  semErrDuplicateTerminal,
				Detail: k.String(),
			})
			continue
		}
		sym, err := w.RegisterTerminal(k.String())
		if err != nil {
			return nil, err
		}
		kind2Term[k] = sym
		kindAliases[sym] = k.Alias()
	}

	defined := map[string]struct{}{}
	for _, rule := range b.Rules {
		if rule.LHS == "" {
			b.errs = append(b.errs, &RuleError{
				Cause: semErrEmptyLHS,
			})
			continue
		}
		if _, dup := defined[rule.LHS]; dup {
			b.errs = append(b.errs, &RuleError{
				Cause: semErrDuplicateRule,
				LHS:   rule.LHS,
			})
			continue
		}
		if _, ok := r.ToSymbol(rule.LHS); ok {
			b.errs = append(b.errs, &RuleError{
				Cause: semErrDuplicateName,
				LHS:   rule.LHS,
			})
			continue
		}
		defined[rule.LHS] = struct{}{}
	}
	if len(b.errs) > 0 {
		return nil, b.errs
	}

	// The augmented start symbol is named after the start symbol with a quote, which a catalogue name
	// never contains.
	startName := b.Rules[0].LHS
	augStartSym, err := w.RegisterStart(startName + "'")
	if err != nil {
		return nil, err
	}
	for _, rule := range b.Rules {
		_, err := w.RegisterNonTerminal(rule.LHS)
		if err != nil {
			return nil, err
		}
	}
	startSym, _ := r.ToSymbol(startName)

	prods := newProductionSet()
	{
		p, err := newProduction(augStartSym, []symbol.Symbol{startSym})
		if err != nil {
			return nil, err
		}
		prods.append(p)
	}
	for _, rule := range b.Rules {
		lhsSym, _ := r.ToSymbol(rule.LHS)
		if len(rule.Alternatives) == 0 {
			b.errs = append(b.errs, &RuleError{
				Cause: semErrNoAlternative,
				LHS:   rule.LHS,
			})
			continue
		}

	ALTERNATIVES_LOOP:
		for i, alt := range rule.Alternatives {
			if len(alt) == 0 {
				b.errs = append(b.errs, &RuleError{
					Cause:       semErrEmptyAlternative,
					LHS:         rule.LHS,
					Alternative: i + 1,
				})
				continue
			}

			rhs := make([]symbol.Symbol, 0, len(alt))
			for _, name := range alt {
				sym, ok := r.ToSymbol(name)
				if !ok || sym.IsStart() || sym.IsEOF() {
					b.errs = append(b.errs, &RuleError{
						Cause:       semErrUndefinedSym,
						Detail:      name,
						LHS:         rule.LHS,
						Alternative: i + 1,
					})
					continue ALTERNATIVES_LOOP
				}
				rhs = append(rhs, sym)
			}

			p, err := newProduction(lhsSym, rhs)
			if err != nil {
				return nil, err
			}
			if !prods.append(p) {
				b.errs = append(b.errs, &RuleError{
					Cause:       semErrDuplicateProduction,
					LHS:         rule.LHS,
					Alternative: i + 1,
				})
			}
		}
	}
	if len(b.errs) > 0 {
		return nil, b.errs
	}

	for _, name := range findUnusedNonTerminals(b.Rules) {
		b.errs = append(b.errs, &RuleError{
			Cause: semErrUnusedProduction,
			LHS:   name,
		})
	}
	if len(b.errs) > 0 {
		return nil, b.errs
	}

	name := b.Name
	if name == "" {
		name = DefaultName
	}

	return &Grammar{
		name:                 name,
		productionSet:        prods,
		augmentedStartSymbol: augStartSym,
		symbolTable:          symTab,
		kindAliases:          kindAliases,
		kind2Term:            kind2Term,
	}, nil
}

// findUnusedNonTerminals returns non-terminals unreachable from the start symbol in declaration order.
func findUnusedNonTerminals(rules []*Rule) []string {
	lhs2Rule := map[string]*Rule{}
	for _, rule := range rules {
		lhs2Rule[rule.LHS] = rule
	}

	used := map[string]bool{}
	var mark func(rule *Rule)
	mark = func(rule *Rule) {
		if used[rule.LHS] {
			return
		}
		used[rule.LHS] = true
		for _, alt := range rule.Alternatives {
			for _, name := range alt {
				if r, ok := lhs2Rule[name]; ok {
					mark(r)
				}
			}
		}
	}
	mark(rules[0])

	var unused []string
	for _, rule := range rules {
		if !used[rule.LHS] {
			unused = append(unused, rule.LHS)
		}
	}
	return unused
}

type compileConfig struct {
	isReportingEnabled bool
	compress           bool
}

type CompileOption func(config *compileConfig)

// EnableReporting makes Compile return a description of the automaton.
func EnableReporting() CompileOption {
	return func(config *compileConfig) {
		config.isReportingEnabled = true
	}
}

// CompressTables makes Compile pack the ACTION and GOTO tables with row displacement.
func CompressTables() CompileOption {
	return func(config *compileConfig) {
		config.compress = true
	}
}

func Compile(gram *Grammar, opts ...CompileOption) (*spec.CompiledGrammar, *spec.Report, error) {
	config := &compileConfig{}
	for _, opt := range opts {
		opt(config)
	}

	symTab := gram.symbolTable.Reader()

	terms, err := symTab.TerminalNames()
	if err != nil {
		return nil, nil, err
	}
	nonTerms, err := symTab.NonTerminalNames()
	if err != nil {
		return nil, nil, err
	}

	aliases := make([]string, len(terms))
	for sym, alias := range gram.kindAliases {
		aliases[sym.Num()] = alias
	}

	var maxKind token.Kind
	for k := range gram.kind2Term {
		if k > maxKind {
			maxKind = k
		}
	}
	kind2Term := make([]int, int(maxKind)+1)
	for k, sym := range gram.kind2Term {
		kind2Term[k] = sym.Num().Int()
	}

	automaton, err := genLRAutomaton(gram.productionSet, gram.augmentedStartSymbol)
	if err != nil {
		return nil, nil, err
	}
	err = genLALR1LookAhead(automaton, gram.productionSet, genFirstSet(gram.productionSet))
	if err != nil {
		return nil, nil, err
	}

	b := &lrTableBuilder{
		automaton:    automaton,
		prods:        gram.productionSet,
		termCount:    len(terms),
		nonTermCount: len(nonTerms),
	}
	tab := b.build()

	var report *spec.Report
	if config.isReportingEnabled {
		report, err = b.genReport(tab, gram)
		if err != nil {
			return nil, nil, err
		}
	}

	lhsSyms := make([]int, gram.productionSet.count()+1)
	altSymCounts := make([]int, gram.productionSet.count()+1)
	for _, p := range gram.productionSet.getAllProductions() {
		lhsSyms[p.num] = p.lhs.Num().Int()
		altSymCounts[p.num] = p.rhsLen
	}

	syn := &spec.SyntacticSpec{
		Action:                  tab.action,
		GoTo:                    tab.goTo,
		StateCount:              tab.stateCount,
		InitialState:            stateNumInitial.Int(),
		StartProduction:         productionNumStart.Int(),
		LHSSymbols:              lhsSyms,
		AlternativeSymbolCounts: altSymCounts,
		Terminals:               terms,
		TerminalAliases:         aliases,
		TerminalCount:           tab.terminalCount,
		KindToTerminal:          kind2Term,
		NonTerminals:            nonTerms,
		NonTerminalCount:        tab.nonTerminalCount,
		EOFSymbol:               symbol.SymbolEOF.Num().Int(),
	}

	if config.compress {
		syn.CompressedAction, err = compressTable(syn.Action, syn.TerminalCount)
		if err != nil {
			return nil, nil, err
		}
		syn.CompressedGoTo, err = compressTable(syn.GoTo, syn.NonTerminalCount)
		if err != nil {
			return nil, nil, err
		}
		syn.Action = nil
		syn.GoTo = nil
	}

	return &spec.CompiledGrammar{
		Name:      gram.name,
		Syntactic: syn,
	}, report, nil
}

func compressTable(entries []int, colCount int) (*compressor.RowDisplacementTable, error) {
	tab, err := compressor.NewTable(entries, colCount)
	if err != nil {
		return nil, err
	}
	// 0 is the error entry of both tables.
	return compressor.Compress(tab, 0), nil
}

// CompileCatalogue builds and compiles the Pseudo-Kotlin grammar.
func CompileCatalogue(opts ...CompileOption) (*spec.CompiledGrammar, *spec.Report, error) {
	b := &GrammarBuilder{
		Name:      DefaultName,
		Rules:     Catalogue(),
		Terminals: token.Kinds(),
	}
	gram, err := b.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid grammar catalogue: %w", err)
	}
	return Compile(gram, opts...)
}
