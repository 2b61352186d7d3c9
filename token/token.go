package token

import "fmt"

// Token is a classified word of a source text.
type Token struct {
	Kind Kind   `json:"kind" yaml:"kind"`
	Text string `json:"text" yaml:"text"`

	// Line is a 1-based line number where the word appears. It is metadata only and is ignored by Equal.
	Line int `json:"line" yaml:"line"`
}

func (t *Token) String() string {
	return fmt.Sprintf("%v %q (line %v)", t.Kind, t.Text, t.Line)
}

// Equal reports whether two tokens have the same kind and text.
func (t *Token) Equal(u *Token) bool {
	if t == nil || u == nil {
		return t == u
	}
	return t.Kind == u.Kind && t.Text == u.Text
}
