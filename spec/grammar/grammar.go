package grammar

import "github.com/pkotlin/pkc/compressor"

// CompiledGrammar is the serializable form of a grammar catalogue. A parser needs nothing else.
type CompiledGrammar struct {
	Name      string         `json:"name"`
	Syntactic *SyntacticSpec `json:"syntactic"`
}

// SyntacticSpec holds the LALR(1) parsing tables.
//
// An entry of Action is a shift to state n when it is -n, a reduction by production n when it is n, and
// an error when it is 0. An entry of GoTo is a state number, and 0 means an error.
//
// A compressed grammar carries CompressedAction and CompressedGoTo instead of Action and GoTo.
type SyntacticSpec struct {
	Action                  []int                            `json:"action,omitempty"`
	GoTo                    []int                            `json:"goto,omitempty"`
	CompressedAction        *compressor.RowDisplacementTable `json:"compressed_action,omitempty"`
	CompressedGoTo          *compressor.RowDisplacementTable `json:"compressed_goto,omitempty"`
	StateCount              int                              `json:"state_count"`
	InitialState            int                              `json:"initial_state"`
	StartProduction         int                              `json:"start_production"`
	LHSSymbols              []int                            `json:"lhs_symbols"`
	AlternativeSymbolCounts []int                            `json:"alternative_symbol_counts"`
	Terminals               []string                         `json:"terminals"`
	TerminalAliases         []string                         `json:"terminal_aliases"`
	TerminalCount           int                              `json:"terminal_count"`
	KindToTerminal          []int                            `json:"kind_to_terminal"`
	NonTerminals            []string                         `json:"non_terminals"`
	NonTerminalCount        int                              `json:"non_terminal_count"`
	EOFSymbol               int                              `json:"eof_symbol"`
}
