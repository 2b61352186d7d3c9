package grammar

type Terminal struct {
	Number int    `json:"number" yaml:"number"`
	Name   string `json:"name" yaml:"name"`
	Alias  string `json:"alias" yaml:"alias"`
}

type NonTerminal struct {
	Number int    `json:"number" yaml:"number"`
	Name   string `json:"name" yaml:"name"`
}

// Production is a production whose RHS is a list of symbol numbers. A terminal is a positive number, and
// a non-terminal is a negated number.
type Production struct {
	Number int   `json:"number" yaml:"number"`
	LHS    int   `json:"lhs" yaml:"lhs"`
	RHS    []int `json:"rhs" yaml:"rhs"`
}

type Item struct {
	Production int `json:"production" yaml:"production"`
	Dot        int `json:"dot" yaml:"dot"`
}

type Transition struct {
	Symbol int `json:"symbol" yaml:"symbol"`
	State  int `json:"state" yaml:"state"`
}

type Reduce struct {
	LookAhead  []int `json:"look_ahead" yaml:"look_ahead"`
	Production int   `json:"production" yaml:"production"`
}

// How a conflict was resolved.
const (
	ResolvedByShift     = 1
	ResolvedByProdOrder = 2
)

// SRConflict is a shift/reduce conflict. The shift always wins.
type SRConflict struct {
	Symbol       int `json:"symbol" yaml:"symbol"`
	State        int `json:"state" yaml:"state"`
	Production   int `json:"production" yaml:"production"`
	AdoptedState int `json:"adopted_state" yaml:"adopted_state"`
	ResolvedBy   int `json:"resolved_by" yaml:"resolved_by"`
}

type RRConflict struct {
	Symbol            int `json:"symbol" yaml:"symbol"`
	Production1       int `json:"production_1" yaml:"production_1"`
	Production2       int `json:"production_2" yaml:"production_2"`
	AdoptedProduction int `json:"adopted_production" yaml:"adopted_production"`
	ResolvedBy        int `json:"resolved_by" yaml:"resolved_by"`
}

type State struct {
	Number     int           `json:"number" yaml:"number"`
	Kernel     []*Item       `json:"kernel" yaml:"kernel"`
	Shift      []*Transition `json:"shift" yaml:"shift"`
	Reduce     []*Reduce     `json:"reduce" yaml:"reduce"`
	GoTo       []*Transition `json:"goto" yaml:"goto"`
	SRConflict []*SRConflict `json:"sr_conflict" yaml:"sr_conflict"`
	RRConflict []*RRConflict `json:"rr_conflict" yaml:"rr_conflict"`
}

// Report describes an LALR(1) automaton for humans.
type Report struct {
	Terminals    []*Terminal    `json:"terminals" yaml:"terminals"`
	NonTerminals []*NonTerminal `json:"non_terminals" yaml:"non_terminals"`
	Productions  []*Production  `json:"productions" yaml:"productions"`
	States       []*State       `json:"states" yaml:"states"`
}

// ConflictCount returns the number of shift/reduce and reduce/reduce conflicts.
func (r *Report) ConflictCount() (int, int) {
	sr := 0
	rr := 0
	for _, s := range r.States {
		sr += len(s.SRConflict)
		rr += len(s.RRConflict)
	}
	return sr, rr
}
