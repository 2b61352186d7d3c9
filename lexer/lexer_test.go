package lexer

import (
	"strings"
	"testing"

	"github.com/pkotlin/pkc/token"
)

func tok(kind token.Kind, text string, line int) *token.Token {
	return &token.Token{
		Kind: kind,
		Text: text,
		Line: line,
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		tokens  []*token.Token
		ids     []string
		errs    []string
	}{
		{
			caption: "the lexer splits a program into tokens including delimiters",
			src:     `INICIO { IMPRIMIR(x); FIN }`,
			tokens: []*token.Token{
				tok(token.KindStart, "INICIO", 1),
				tok(token.KindOpenCurlyBrace, "{", 1),
				tok(token.KindOpWrite, "IMPRIMIR", 1),
				tok(token.KindOpenParentheses, "(", 1),
				tok(token.KindIdentifier, "x", 1),
				tok(token.KindCloseParentheses, ")", 1),
				tok(token.KindDotComa, ";", 1),
				tok(token.KindEnd, "FIN", 1),
				tok(token.KindCloseCurlyBrace, "}", 1),
			},
			ids: []string{"x"},
		},
		{
			caption: "the lexer collects identifiers without duplicates in first-seen order",
			src:     `INICIO { ENTERO a1, a2; a2 = SUM(a1, a2); FIN }`,
			tokens: []*token.Token{
				tok(token.KindStart, "INICIO", 1),
				tok(token.KindOpenCurlyBrace, "{", 1),
				tok(token.KindTypeInteger, "ENTERO", 1),
				tok(token.KindIdentifier, "a1", 1),
				tok(token.KindComa, ",", 1),
				tok(token.KindIdentifier, "a2", 1),
				tok(token.KindDotComa, ";", 1),
				tok(token.KindIdentifier, "a2", 1),
				tok(token.KindDesignator, "=", 1),
				tok(token.KindOpSum, "SUM", 1),
				tok(token.KindOpenParentheses, "(", 1),
				tok(token.KindIdentifier, "a1", 1),
				tok(token.KindComa, ",", 1),
				tok(token.KindIdentifier, "a2", 1),
				tok(token.KindCloseParentheses, ")", 1),
				tok(token.KindDotComa, ";", 1),
				tok(token.KindEnd, "FIN", 1),
				tok(token.KindCloseCurlyBrace, "}", 1),
			},
			ids: []string{"a1", "a2"},
		},
		{
			caption: "newlines increment the line number and never become tokens",
			src:     "INICIO {\n\tFLOTANTE f = 1.5;\r\n\n} FIN",
			tokens: []*token.Token{
				tok(token.KindStart, "INICIO", 1),
				tok(token.KindOpenCurlyBrace, "{", 1),
				tok(token.KindTypeFloat, "FLOTANTE", 2),
				tok(token.KindIdentifier, "f", 2),
				tok(token.KindDesignator, "=", 2),
				tok(token.KindFloat, "1.5", 2),
				tok(token.KindDotComa, ";", 2),
				tok(token.KindCloseCurlyBrace, "}", 4),
				tok(token.KindEnd, "FIN", 4),
			},
			ids: []string{"f"},
		},
		{
			caption: "a digit-first word is a lexical error",
			src:     `3a`,
			tokens:  []*token.Token{},
			errs: []string{
				"Invalid token at line 1: '3a'",
			},
		},
		{
			caption: "the lexer continues after a lexical error",
			src:     "LEER(abc);\nx = 123456;",
			tokens: []*token.Token{
				tok(token.KindOpRead, "LEER", 1),
				tok(token.KindOpenParentheses, "(", 1),
				tok(token.KindCloseParentheses, ")", 1),
				tok(token.KindDotComa, ";", 1),
				tok(token.KindIdentifier, "x", 2),
				tok(token.KindDesignator, "=", 2),
				tok(token.KindDotComa, ";", 2),
			},
			ids: []string{"x"},
			errs: []string{
				"Invalid token at line 1: 'abc'",
				"Invalid token at line 2: '123456'",
			},
		},
		{
			caption: "a dot is not a delimiter",
			src:     `a.b`,
			tokens:  []*token.Token{},
			errs: []string{
				"Invalid token at line 1: 'a.b'",
			},
		},
		{
			caption: "an empty source has no tokens",
			src:     "",
			tokens:  []*token.Token{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			res := Tokenize(tt.src)
			if len(res.Tokens) != len(tt.tokens) {
				t.Fatalf("unexpected token count; want: %v, got: %v (%v)", len(tt.tokens), len(res.Tokens), res.Tokens)
			}
			for i, want := range tt.tokens {
				got := res.Tokens[i]
				if !got.Equal(want) || got.Line != want.Line {
					t.Fatalf("unexpected token #%v; want: %v, got: %v", i, want, got)
				}
			}
			if len(res.Identifiers) != len(tt.ids) {
				t.Fatalf("unexpected identifiers; want: %v, got: %v", tt.ids, res.Identifiers)
			}
			for i, id := range tt.ids {
				if res.Identifiers[i] != id {
					t.Fatalf("unexpected identifiers; want: %v, got: %v", tt.ids, res.Identifiers)
				}
			}
			if len(res.Errors) != len(tt.errs) {
				t.Fatalf("unexpected errors; want: %v, got: %v", tt.errs, res.Errors)
			}
			for i, msg := range tt.errs {
				if res.Errors[i].Error() != msg {
					t.Fatalf("unexpected error #%v; want: %v, got: %v", i, msg, res.Errors[i])
				}
			}
			if res.WordCount != len(res.Tokens)+len(res.Errors) {
				t.Fatalf("every word must become either a token or an error; words: %v, tokens: %v, errors: %v", res.WordCount, len(res.Tokens), len(res.Errors))
			}
		})
	}
}

func TestTokenize_Deterministic(t *testing.T) {
	src := "INICIO {\n  ENTERO a, b = 4;\n  b = MUL(a, RES(b, 2.25));\n  IMPRIMIR(b);\n  ??\n} FIN"
	r1 := Tokenize(src)
	r2 := Tokenize(src)
	if len(r1.Tokens) != len(r2.Tokens) || len(r1.Errors) != len(r2.Errors) {
		t.Fatalf("the lexer must be deterministic")
	}
	for i := range r1.Tokens {
		if !r1.Tokens[i].Equal(r2.Tokens[i]) || r1.Tokens[i].Line != r2.Tokens[i].Line {
			t.Fatalf("the lexer must be deterministic; #%v: %v, %v", i, r1.Tokens[i], r2.Tokens[i])
		}
	}
}

func TestTokenize_RoundTrip(t *testing.T) {
	src := "INICIO{ENTERO a,b=4;\nb=MUL(a,RES(b,2.25));IMPRIMIR(b);}FIN"
	first := Tokenize(src)

	texts := make([]string, len(first.Tokens))
	for i, tok := range first.Tokens {
		texts[i] = tok.Text
	}
	second := Tokenize(strings.Join(texts, " "))

	if len(first.Tokens) != len(second.Tokens) {
		t.Fatalf("unexpected token count; want: %v, got: %v", len(first.Tokens), len(second.Tokens))
	}
	for i := range first.Tokens {
		if !first.Tokens[i].Equal(second.Tokens[i]) {
			t.Fatalf("unexpected token #%v; want: %v, got: %v", i, first.Tokens[i], second.Tokens[i])
		}
	}
}

type upperOnly struct{}

func (upperOnly) Match(word string) (token.Kind, bool) {
	if word == strings.ToUpper(word) {
		return token.KindIdentifier, true
	}
	return token.KindNil, false
}

func TestLexer_WithClassifier(t *testing.T) {
	l, err := NewLexer(strings.NewReader("AB cd AB"), WithClassifier(upperOnly{}))
	if err != nil {
		t.Fatal(err)
	}
	res, err := l.Run()
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Tokens) != 2 || len(res.Errors) != 1 {
		t.Fatalf("unexpected result; tokens: %v, errors: %v", res.Tokens, res.Errors)
	}
	if len(res.Identifiers) != 1 || res.Identifiers[0] != "AB" {
		t.Fatalf("unexpected identifiers: %v", res.Identifiers)
	}
}

func TestDefaultSplitter(t *testing.T) {
	s := defaultSplitter()
	if s.spec.Name != splitterSpec.Name {
		t.Fatalf("unexpected specification name; want: %v, got: %v", splitterSpec.Name, s.spec.Name)
	}
	for _, k := range []string{wordKindNewline, wordKindBlank, wordKindDelimiter, wordKindWord} {
		found := false
		for _, n := range s.kindNames {
			if n == k {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("the splitter has no kind %v: %v", k, s.kindNames)
		}
	}

	res := Tokenize("")
	if len(res.Tokens) != 0 || len(res.Errors) != 0 {
		t.Fatalf("an empty source yields nothing; tokens: %v, errors: %v", res.Tokens, res.Errors)
	}
}
