package token

import "fmt"

// Kind is a lexical category of Pseudo-Kotlin. The declaration order is significant because it is the
// tie-break order when more than one rule matches the same word.
type Kind int

const (
	KindNil Kind = iota
	KindStart
	KindEnd
	KindTypeInteger
	KindTypeFloat
	KindOpRead
	KindOpWrite
	KindOpSum
	KindOpRes
	KindOpMul
	KindOpDiv
	KindOpenCurlyBrace
	KindCloseCurlyBrace
	KindOpenParentheses
	KindCloseParentheses
	KindDotComa
	KindDot
	KindComa
	KindDesignator
	KindIdentifier
	KindInteger
	KindFloat

	kindCount
)

var kindNames = [...]string{
	KindNil:              "",
	KindStart:            "START",
	KindEnd:              "END",
	KindTypeInteger:      "TYPE_INTEGER",
	KindTypeFloat:        "TYPE_FLOAT",
	KindOpRead:           "OP_READ",
	KindOpWrite:          "OP_WRITE",
	KindOpSum:            "OP_SUM",
	KindOpRes:            "OP_RES",
	KindOpMul:            "OP_MUL",
	KindOpDiv:            "OP_DIV",
	KindOpenCurlyBrace:   "OPEN_CURLY_BRACE",
	KindCloseCurlyBrace:  "CLOSE_CURLY_BRACE",
	KindOpenParentheses:  "OPEN_PARENTHESES",
	KindCloseParentheses: "CLOSE_PARENTHESES",
	KindDotComa:          "DOT_COMA",
	KindDot:              "DOT",
	KindComa:             "COMA",
	KindDesignator:       "DESIGNATOR",
	KindIdentifier:       "IDENTIFIER",
	KindInteger:          "INTEGER",
	KindFloat:            "FLOAT",
}

// Kinds returns all valid kinds in declaration order.
func Kinds() []Kind {
	ks := make([]Kind, 0, kindCount-1)
	for k := KindStart; k < kindCount; k++ {
		ks = append(ks, k)
	}
	return ks
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k > KindNil && k < kindCount
}

// Alias returns the fixed spelling of a kind, for instance `{` for KindOpenCurlyBrace. Kinds whose
// spelling varies (identifiers and numbers) have no alias.
func (k Kind) Alias() string {
	r, ok := literalRules[k]
	if !ok {
		return ""
	}
	return r
}

// ParseKind returns the kind whose name is s.
func ParseKind(s string) (Kind, bool) {
	for k := KindStart; k < kindCount; k++ {
		if kindNames[k] == s {
			return k, true
		}
	}
	return KindNil, false
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid token kind: %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	kind, ok := ParseKind(string(text))
	if !ok {
		return fmt.Errorf("unknown token kind: %v", string(text))
	}
	*k = kind
	return nil
}
