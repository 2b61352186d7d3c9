package symbol

import (
	"fmt"
	"sort"
)

type symbolKind string

const (
	symbolKindNonTerminal = symbolKind("non-terminal")
	symbolKindTerminal    = symbolKind("terminal")
)

func (t symbolKind) String() string {
	return string(t)
}

// SymbolNum is the number of a symbol within its kind. Terminals and non-terminals are numbered
// independently, so the number is used as a column index of the ACTION and GOTO tables.
type SymbolNum uint16

func (n SymbolNum) Int() int {
	return int(n)
}

// Symbol packs a kind flag, a start/EOF flag, and a number into 16 bits.
type Symbol uint16

func (s Symbol) String() string {
	kind, isStart, isEOF, num := s.describe()
	var prefix string
	switch {
	case isStart:
		prefix = "s"
	case isEOF:
		prefix = "e"
	case kind == symbolKindNonTerminal:
		prefix = "n"
	case kind == symbolKindTerminal:
		prefix = "t"
	default:
		prefix = "?"
	}
	return fmt.Sprintf("%v%v", prefix, num)
}

const (
	maskKindPart    = uint16(0x8000) // 1000 0000 0000 0000
	maskNonTerminal = uint16(0x0000) // 0000 0000 0000 0000
	maskTerminal    = uint16(0x8000) // 1000 0000 0000 0000

	maskSubKindPart    = uint16(0x4000) // 0100 0000 0000 0000
	maskNonStartAndEOF = uint16(0x0000) // 0000 0000 0000 0000
	maskStartOrEOF     = uint16(0x4000) // 0100 0000 0000 0000

	maskNumberPart = uint16(0x3fff) // 0011 1111 1111 1111

	symbolNumStart = uint16(0x0001)
	symbolNumEOF   = uint16(0x0001)

	SymbolNil   = Symbol(0)
	SymbolStart = Symbol(maskNonTerminal | maskStartOrEOF | symbolNumStart) // 0100 0000 0000 0001
	SymbolEOF   = Symbol(maskTerminal | maskStartOrEOF | symbolNumEOF)      // 1100 0000 0000 0001

	// Names of the reserved symbols contain `<` and `>` so that they never collide with grammar symbols.
	NameEOF = "<eof>"

	nonTerminalNumMin = SymbolNum(2) // 1 is the augmented start symbol.
	terminalNumMin    = SymbolNum(2) // 1 is EOF.
	symbolNumMax      = SymbolNum(0xffff) >> 2
)

func newSymbol(kind symbolKind, isStart bool, num SymbolNum) (Symbol, error) {
	if num > symbolNumMax {
		return SymbolNil, fmt.Errorf("a symbol number exceeds the limit; limit: %v, passed: %v", symbolNumMax, num)
	}
	if kind == symbolKindTerminal && isStart {
		return SymbolNil, fmt.Errorf("a start symbol must be a non-terminal symbol")
	}

	kindMask := maskNonTerminal
	if kind == symbolKindTerminal {
		kindMask = maskTerminal
	}
	startMask := maskNonStartAndEOF
	if isStart {
		startMask = maskStartOrEOF
	}
	return Symbol(kindMask | startMask | uint16(num)), nil
}

func (s Symbol) Num() SymbolNum {
	_, _, _, num := s.describe()
	return num
}

func (s Symbol) IsNil() bool {
	_, _, _, num := s.describe()
	return num == 0
}

func (s Symbol) IsStart() bool {
	if s.IsNil() {
		return false
	}
	_, isStart, _, _ := s.describe()
	return isStart
}

func (s Symbol) IsEOF() bool {
	if s.IsNil() {
		return false
	}
	_, _, isEOF, _ := s.describe()
	return isEOF
}

func (s Symbol) IsNonTerminal() bool {
	if s.IsNil() {
		return false
	}
	kind, _, _, _ := s.describe()
	return kind == symbolKindNonTerminal
}

func (s Symbol) IsTerminal() bool {
	if s.IsNil() {
		return false
	}
	return !s.IsNonTerminal()
}

func (s Symbol) describe() (symbolKind, bool, bool, SymbolNum) {
	kind := symbolKindNonTerminal
	if uint16(s)&maskKindPart > 0 {
		kind = symbolKindTerminal
	}
	isStart := false
	isEOF := false
	if uint16(s)&maskSubKindPart > 0 {
		if kind == symbolKindNonTerminal {
			isStart = true
		} else {
			isEOF = true
		}
	}
	num := SymbolNum(uint16(s) & maskNumberPart)
	return kind, isStart, isEOF, num
}

// Table maps symbol names to symbols and back. Names are numbered in registration order, which keeps
// the compiled tables stable for the same catalogue.
type Table struct {
	name2Sym        map[string]Symbol
	sym2Name        map[Symbol]string
	nonTermNames    []string
	termNames       []string
	nonTermNum      SymbolNum
	termNum         SymbolNum
	startRegistered bool
}

type TableWriter struct {
	*Table
}

type TableReader struct {
	*Table
}

func NewTable() *Table {
	return &Table{
		name2Sym: map[string]Symbol{
			NameEOF: SymbolEOF,
		},
		sym2Name: map[Symbol]string{
			SymbolEOF: NameEOF,
		},
		termNames: []string{
			"",      // Nil
			NameEOF, // EOF
		},
		nonTermNames: []string{
			"", // Nil
			"", // Augmented start symbol
		},
		nonTermNum: nonTerminalNumMin,
		termNum:    terminalNumMin,
	}
}

func (t *Table) Writer() *TableWriter {
	return &TableWriter{
		Table: t,
	}
}

func (t *Table) Reader() *TableReader {
	return &TableReader{
		Table: t,
	}
}

// RegisterStart registers the name of the augmented start symbol. A table has only one start symbol.
func (w *TableWriter) RegisterStart(name string) (Symbol, error) {
	if w.startRegistered {
		return SymbolNil, fmt.Errorf("a start symbol is already registered: %v", w.nonTermNames[SymbolStart.Num()])
	}
	if _, ok := w.name2Sym[name]; ok {
		return SymbolNil, fmt.Errorf("a start symbol name is already used: %v", name)
	}
	w.name2Sym[name] = SymbolStart
	w.sym2Name[SymbolStart] = name
	w.nonTermNames[SymbolStart.Num().Int()] = name
	w.startRegistered = true
	return SymbolStart, nil
}

func (w *TableWriter) RegisterNonTerminal(name string) (Symbol, error) {
	if sym, ok := w.name2Sym[name]; ok {
		if !sym.IsNonTerminal() {
			return SymbolNil, fmt.Errorf("%v is already registered as a terminal symbol", name)
		}
		return sym, nil
	}
	sym, err := newSymbol(symbolKindNonTerminal, false, w.nonTermNum)
	if err != nil {
		return SymbolNil, err
	}
	w.nonTermNum++
	w.name2Sym[name] = sym
	w.sym2Name[sym] = name
	w.nonTermNames = append(w.nonTermNames, name)
	return sym, nil
}

func (w *TableWriter) RegisterTerminal(name string) (Symbol, error) {
	if sym, ok := w.name2Sym[name]; ok {
		if !sym.IsTerminal() {
			return SymbolNil, fmt.Errorf("%v is already registered as a non-terminal symbol", name)
		}
		return sym, nil
	}
	sym, err := newSymbol(symbolKindTerminal, false, w.termNum)
	if err != nil {
		return SymbolNil, err
	}
	w.termNum++
	w.name2Sym[name] = sym
	w.sym2Name[sym] = name
	w.termNames = append(w.termNames, name)
	return sym, nil
}

func (r *TableReader) ToSymbol(name string) (Symbol, bool) {
	if sym, ok := r.name2Sym[name]; ok {
		return sym, true
	}
	return SymbolNil, false
}

func (r *TableReader) ToName(sym Symbol) (string, bool) {
	name, ok := r.sym2Name[sym]
	return name, ok
}

// TerminalSymbols returns the terminals including EOF in number order.
func (r *TableReader) TerminalSymbols() []Symbol {
	syms := make([]Symbol, 0, r.termNum.Int()-1)
	for sym := range r.sym2Name {
		if !sym.IsTerminal() {
			continue
		}
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i].Num() < syms[j].Num()
	})
	return syms
}

// TerminalNames returns the names of terminals indexed by symbol number. The index 0 is reserved.
func (r *TableReader) TerminalNames() ([]string, error) {
	if r.termNum == terminalNumMin {
		return nil, fmt.Errorf("symbol table has no terminals")
	}
	return r.termNames, nil
}

// NonTerminalSymbols returns the non-terminals including the augmented start symbol in number order.
func (r *TableReader) NonTerminalSymbols() []Symbol {
	syms := make([]Symbol, 0, r.nonTermNum.Int()-1)
	for sym := range r.sym2Name {
		if !sym.IsNonTerminal() {
			continue
		}
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i].Num() < syms[j].Num()
	})
	return syms
}

// NonTerminalNames returns the names of non-terminals indexed by symbol number. The index 0 is reserved.
func (r *TableReader) NonTerminalNames() ([]string, error) {
	if r.nonTermNum == nonTerminalNumMin || !r.startRegistered {
		return nil, fmt.Errorf("symbol table has no non-terminals or no start symbol")
	}
	return r.nonTermNames, nil
}
