package grammar

import (
	"fmt"
	"strings"
)

type SemanticError struct {
	message string
}

func newSemanticError(message string) *SemanticError {
	return &SemanticError{
		message: message,
	}
}

func (e *SemanticError) Error() string {
	return e.message
}

var (
	semErrNoProduction        = newSemanticError("a grammar needs at least one production")
	semErrNoTerminal          = newSemanticError("a grammar needs at least one terminal")
	semErrEmptyLHS            = newSemanticError("a rule needs a non-empty LHS")
	semErrNoAlternative       = newSemanticError("a rule needs at least one alternative")
	semErrEmptyAlternative    = newSemanticError("an alternative needs at least one symbol")
	semErrUndefinedSym        = newSemanticError("undefined symbol")
	semErrDuplicateRule       = newSemanticError("a non-terminal must be defined by a single rule")
	semErrDuplicateProduction = newSemanticError("duplicate production")
	semErrDuplicateTerminal   = newSemanticError("duplicate terminal")
	semErrDuplicateName       = newSemanticError("duplicate names are not allowed between terminals and non-terminals")
	semErrInvalidTerminal     = newSemanticError("invalid terminal")
	semErrUnusedProduction    = newSemanticError("unused production")
)

// RuleError is an error found in a rule of a grammar catalogue.
type RuleError struct {
	Cause       error
	Detail      string
	LHS         string
	Alternative int
}

func (e *RuleError) Error() string {
	var b strings.Builder
	if e.LHS != "" {
		fmt.Fprintf(&b, "%v: ", e.LHS)
		if e.Alternative > 0 {
			fmt.Fprintf(&b, "alternative %v: ", e.Alternative)
		}
	}
	fmt.Fprintf(&b, "%v", e.Cause)
	if e.Detail != "" {
		fmt.Fprintf(&b, ": %v", e.Detail)
	}
	return b.String()
}

func (e *RuleError) Unwrap() error {
	return e.Cause
}

type RuleErrors []*RuleError

func (e RuleErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%v", e[0])
	for _, err := range e[1:] {
		fmt.Fprintf(&b, "\n%v", err)
	}
	return b.String()
}
