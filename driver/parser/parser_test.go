package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pkotlin/pkc/grammar"
	"github.com/pkotlin/pkc/lexer"
	spec "github.com/pkotlin/pkc/spec/grammar"
	"github.com/pkotlin/pkc/token"
)

func termNode(kind string, text string, children ...*Node) *Node {
	return &Node{
		Type:     NodeTypeTerminal,
		KindName: kind,
		Text:     text,
		Children: children,
	}
}

func nonTermNode(kind string, children ...*Node) *Node {
	return &Node{
		Type:     NodeTypeNonTerminal,
		KindName: kind,
		Children: children,
	}
}

func tokenize(t *testing.T, src string) []*token.Token {
	t.Helper()

	res := lexer.Tokenize(src)
	if len(res.Errors) > 0 {
		t.Fatalf("unexpected lexical errors: %v", res.Errors)
	}
	return res.Tokens
}

func compileCatalogue(t *testing.T) *spec.CompiledGrammar {
	t.Helper()

	cg, _, err := grammar.CompileCatalogue()
	if err != nil {
		t.Fatal(err)
	}
	return cg
}

func compileRules(t *testing.T, rules []*grammar.Rule) *spec.CompiledGrammar {
	t.Helper()

	b := &grammar.GrammarBuilder{
		Name:      "test",
		Rules:     rules,
		Terminals: token.Kinds(),
	}
	gram, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	cg, _, err := grammar.Compile(gram)
	if err != nil {
		t.Fatal(err)
	}
	return cg
}

type parseResult struct {
	tree *Node
	errs []*SyntaxError
}

func parse(t *testing.T, cg *spec.CompiledGrammar, toks []*token.Token, opts ...ParserOption) *parseResult {
	t.Helper()

	ts, err := NewTokenStream(cg, toks)
	if err != nil {
		t.Fatal(err)
	}
	gram := NewGrammar(cg)
	b := NewDefaultSyntaxTreeBuilder()
	opts = append(opts, SemanticAction(NewCSTActionSet(gram, b)))
	p, err := NewParser(ts, gram, opts...)
	if err != nil {
		t.Fatal(err)
	}
	err = p.Parse()
	if err != nil {
		t.Fatal(err)
	}
	return &parseResult{
		tree: b.Tree(),
		errs: p.SyntaxErrors(),
	}
}

func TestParser_Parse(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		cst     *Node
		errs    []string
	}{
		{
			caption: "a program writing an identifier is accepted",
			src:     `INICIO { IMPRIMIR(x); FIN }`,
			cst: nonTermNode("PROGRAMA",
				nonTermNode("INICIO",
					termNode("START", "INICIO"),
					termNode("OPEN_CURLY_BRACE", "{"),
				),
				nonTermNode("CODIGO",
					nonTermNode("INSTRUCCION",
						nonTermNode("TEXTO",
							nonTermNode("FUNCION",
								termNode("OP_WRITE", "IMPRIMIR"),
							),
							nonTermNode("PARAMETROS_TEXTO",
								termNode("OPEN_PARENTHESES", "("),
								termNode("IDENTIFIER", "x"),
								termNode("CLOSE_PARENTHESES", ")"),
							),
						),
						termNode("DOT_COMA", ";"),
					),
				),
				nonTermNode("FIN",
					termNode("END", "FIN"),
					termNode("CLOSE_CURLY_BRACE", "}"),
				),
			),
		},
		{
			caption: "a declaration list is reduced to its recursive form while elements remain",
			src:     `INICIO { ENTERO a1, a2; } FIN`,
			cst: nonTermNode("PROGRAMA",
				nonTermNode("INICIO",
					termNode("START", "INICIO"),
					termNode("OPEN_CURLY_BRACE", "{"),
				),
				nonTermNode("CODIGO",
					nonTermNode("INSTRUCCION",
						nonTermNode("DECLARACION",
							nonTermNode("TIPO_DECLARACION",
								termNode("TYPE_INTEGER", "ENTERO"),
							),
							nonTermNode("VALORES_DECLARACION",
								nonTermNode("VALORES_DECLARACION",
									nonTermNode("VALOR_DECLARACION",
										termNode("IDENTIFIER", "a1"),
									),
								),
								termNode("COMA", ","),
								nonTermNode("VALOR_DECLARACION",
									termNode("IDENTIFIER", "a2"),
								),
							),
						),
						termNode("DOT_COMA", ";"),
					),
				),
				nonTermNode("FIN",
					termNode("CLOSE_CURLY_BRACE", "}"),
					termNode("END", "FIN"),
				),
			),
		},
		{
			caption: "an assignment takes a nested operation",
			src:     `INICIO { a1 = SUM(1, 2); FIN }`,
			cst: nonTermNode("PROGRAMA",
				nonTermNode("INICIO",
					termNode("START", "INICIO"),
					termNode("OPEN_CURLY_BRACE", "{"),
				),
				nonTermNode("CODIGO",
					nonTermNode("INSTRUCCION",
						nonTermNode("ASIGNACION",
							termNode("IDENTIFIER", "a1"),
							termNode("DESIGNATOR", "="),
							nonTermNode("VALOR_ASIGNADO",
								nonTermNode("OPERACION",
									nonTermNode("TIPO_OPERACION",
										termNode("OP_SUM", "SUM"),
									),
									nonTermNode("PARAMETROS_OPERACION",
										termNode("OPEN_PARENTHESES", "("),
										nonTermNode("VALORES",
											nonTermNode("VALOR_OPERACION",
												termNode("INTEGER", "1"),
											),
											termNode("COMA", ","),
											nonTermNode("VALOR_OPERACION",
												termNode("INTEGER", "2"),
											),
										),
										termNode("CLOSE_PARENTHESES", ")"),
									),
								),
							),
						),
						termNode("DOT_COMA", ";"),
					),
				),
				nonTermNode("FIN",
					termNode("END", "FIN"),
					termNode("CLOSE_CURLY_BRACE", "}"),
				),
			),
		},
		{
			caption: "a missing brace is reported and the program stays incomplete",
			src:     `INICIO IMPRIMIR(x); FIN`,
			errs: []string{
				"Unexpected token 'IMPRIMIR' at line 1; expected: {",
				"Unexpected token '(' at line 1; expected: {",
				"Unexpected token 'x' at line 1; expected: {",
				"Unexpected token ')' at line 1; expected: {",
				"Unexpected token ';' at line 1; expected: {",
				"Unexpected token 'FIN' at line 1; expected: {",
				"Incomplete or malformed program: 1 leftover symbols [START]",
			},
		},
		{
			caption: "a missing semicolon is reported",
			src:     `INICIO { IMPRIMIR(x) FIN }`,
			errs: []string{
				"Unexpected token 'FIN' at line 1; expected: ;",
				"Unexpected token '}' at line 1; expected: ;",
				"Incomplete or malformed program: 5 leftover symbols [INICIO FUNCION OPEN_PARENTHESES IDENTIFIER CLOSE_PARENTHESES]",
			},
		},
		{
			caption: "the parser discards an unexpected token and accepts the rest",
			src:     `INICIO { ENTERO a1 a2; FIN }`,
			errs: []string{
				"Unexpected token 'a2' at line 1; expected: ;, ,, =",
			},
		},
		{
			caption: "the parser reports every unexpected token it discards",
			src:     `INICIO { IMPRIMIR(x) IMPRIMIR(y); FIN }`,
			errs: []string{
				"Unexpected token 'IMPRIMIR' at line 1; expected: ;",
				"Unexpected token '(' at line 1; expected: ;",
				"Unexpected token 'y' at line 1; expected: ;",
				"Unexpected token ')' at line 1; expected: ;",
			},
		},
		{
			caption: "an error right after another error is reported",
			src: `INICIO {
;
a = ;
 b = 2; FIN }`,
			errs: []string{
				"Unexpected token ';' at line 2; expected: ENTERO, FLOTANTE, LEER, IMPRIMIR, SUM, RES, MUL, DIV, IDENTIFIER",
				"Unexpected token ';' at line 3; expected: SUM, RES, MUL, DIV, INTEGER, FLOAT",
				"Unexpected token 'b' at line 4; expected: SUM, RES, MUL, DIV, INTEGER, FLOAT",
				"Unexpected token '=' at line 4; expected: SUM, RES, MUL, DIV, INTEGER, FLOAT",
			},
		},
		{
			caption: "the parser reports independent errors in one pass",
			src: `INICIO {
IMPRIMIR(x) x;
LEER(y);
LEER(z) }
FIN }`,
			errs: []string{
				"Unexpected token 'x' at line 2; expected: ;",
				"Unexpected token '}' at line 4; expected: ;",
				"Unexpected token 'FIN' at line 5; expected: ;",
				"Unexpected token '}' at line 5; expected: ;",
				"Incomplete or malformed program: 6 leftover symbols [INICIO CODIGO FUNCION OPEN_PARENTHESES IDENTIFIER CLOSE_PARENTHESES]",
			},
		},
		{
			caption: "an empty program is incomplete",
			src:     ``,
			errs: []string{
				"Incomplete or malformed program: 0 leftover symbols []",
			},
		},
	}

	cg := compileCatalogue(t)
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			res := parse(t, cg, tokenize(t, tt.src))

			if len(res.errs) != len(tt.errs) {
				t.Fatalf("unexpected syntax error count; want: %v, got: %v (%v)", len(tt.errs), len(res.errs), res.errs)
			}
			for i, e := range tt.errs {
				if res.errs[i].Message != e {
					t.Fatalf("unexpected syntax error; want: %v, got: %v", e, res.errs[i].Message)
				}
			}

			if tt.cst != nil {
				if res.tree == nil {
					t.Fatalf("tree must be non-nil")
				}
				testTree(t, res.tree, tt.cst)
				testTreeIdentity(t, res.tree, nil)
			}
		})
	}
}

func TestParser_SuppressCascadingErrors(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		errs    []string
	}{
		{
			caption: "the parser stays silent until it has shifted three tokens after an error",
			src:     `INICIO { IMPRIMIR(x) IMPRIMIR(y); FIN }`,
			errs: []string{
				"Unexpected token 'IMPRIMIR' at line 1; expected: ;",
			},
		},
		{
			caption: "the parser reports an error again once it has recovered",
			src: `INICIO {
IMPRIMIR(x) x;
LEER(y);
LEER(z) }
FIN }`,
			errs: []string{
				"Unexpected token 'x' at line 2; expected: ;",
				"Unexpected token '}' at line 4; expected: ;",
				"Incomplete or malformed program: 6 leftover symbols [INICIO CODIGO FUNCION OPEN_PARENTHESES IDENTIFIER CLOSE_PARENTHESES]",
			},
		},
	}

	cg := compileCatalogue(t)
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			res := parse(t, cg, tokenize(t, tt.src), SuppressCascadingErrors())
			if len(res.errs) != len(tt.errs) {
				t.Fatalf("unexpected syntax error count; want: %v, got: %v (%v)", len(tt.errs), len(res.errs), res.errs)
			}
			for i, e := range tt.errs {
				if res.errs[i].Message != e {
					t.Fatalf("unexpected syntax error; want: %v, got: %v", e, res.errs[i].Message)
				}
			}
		})
	}
}

func TestParser_DiscardedTokenIsNotInTree(t *testing.T) {
	cg := compileCatalogue(t)
	res := parse(t, cg, tokenize(t, `INICIO { ENTERO a1 a2; FIN }`))
	if res.tree == nil {
		t.Fatalf("the parser must accept the input after recovering")
	}

	var walk func(n *Node)
	walk = func(n *Node) {
		if n.Type == NodeTypeTerminal && n.Text == "a2" {
			t.Fatalf("a discarded token became a node: %+v", n)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(res.tree)
}

func nestedOperation(depth int) string {
	var b strings.Builder
	for i := 0; i < depth; i++ {
		b.WriteString("SUM(1, ")
	}
	b.WriteString("2")
	for i := 0; i < depth; i++ {
		b.WriteString(")")
	}
	return b.String()
}

func TestParser_MaxDepth(t *testing.T) {
	cg := compileCatalogue(t)

	t.Run("nested operations parse", func(t *testing.T) {
		src := fmt.Sprintf("INICIO { a1 = %v; FIN }", nestedOperation(50))
		res := parse(t, cg, tokenize(t, src), MaxDepth(1000))
		if len(res.errs) > 0 {
			t.Fatalf("unexpected syntax errors: %v", res.errs)
		}
		if res.tree == nil {
			t.Fatalf("tree must be non-nil")
		}

		var opDepth func(n *Node) int
		opDepth = func(n *Node) int {
			d := 0
			for _, c := range n.Children {
				if cd := opDepth(c); cd > d {
					d = cd
				}
			}
			if n.KindName == "OPERACION" {
				d++
			}
			return d
		}
		depth := opDepth(res.tree)
		if depth != 50 {
			t.Fatalf("unexpected nesting depth; want: 50, got: %v", depth)
		}
	})

	t.Run("a program beyond the limit is rejected", func(t *testing.T) {
		src := fmt.Sprintf("INICIO { a1 = %v; FIN }", nestedOperation(10))
		res := parse(t, cg, tokenize(t, src), MaxDepth(10))
		if len(res.errs) != 1 {
			t.Fatalf("unexpected syntax error count; want: 1, got: %v (%v)", len(res.errs), res.errs)
		}
		want := "Program too deeply nested at line 1 (limit 10)"
		if res.errs[0].Message != want {
			t.Fatalf("unexpected syntax error; want: %v, got: %v", want, res.errs[0].Message)
		}
		if res.tree != nil {
			t.Fatalf("tree must be nil")
		}
	})

	t.Run("a maximum depth must be positive", func(t *testing.T) {
		ts, err := NewTokenStream(cg, nil)
		if err != nil {
			t.Fatal(err)
		}
		_, err = NewParser(ts, NewGrammar(cg), MaxDepth(0))
		if err == nil {
			t.Fatalf("an error must occur")
		}
	})
}

func TestParserWithConflicts(t *testing.T) {
	tests := []struct {
		caption string
		rules   []*grammar.Rule
		src     string
		cst     *Node
	}{
		{
			caption: "when a shift/reduce conflict occurred, we prioritize the shift action",
			rules: []*grammar.Rule{
				{LHS: "expr", Alternatives: [][]string{{"expr", "DESIGNATOR", "expr"}, {"IDENTIFIER"}}},
			},
			src: `a=b=c`,
			cst: nonTermNode("expr",
				nonTermNode("expr",
					termNode("IDENTIFIER", "a"),
				),
				termNode("DESIGNATOR", "="),
				nonTermNode("expr",
					nonTermNode("expr",
						termNode("IDENTIFIER", "b"),
					),
					termNode("DESIGNATOR", "="),
					nonTermNode("expr",
						termNode("IDENTIFIER", "c"),
					),
				),
			),
		},
		{
			caption: "when a reduce/reduce conflict occurred, we prioritize the production defined earlier in the grammar",
			rules: []*grammar.Rule{
				{LHS: "s", Alternatives: [][]string{{"a"}, {"b"}}},
				{LHS: "a", Alternatives: [][]string{{"IDENTIFIER"}}},
				{LHS: "b", Alternatives: [][]string{{"IDENTIFIER"}}},
			},
			src: `a`,
			cst: nonTermNode("s",
				nonTermNode("a",
					termNode("IDENTIFIER", "a"),
				),
			),
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			cg := compileRules(t, tt.rules)
			res := parse(t, cg, tokenize(t, tt.src))
			if len(res.errs) > 0 {
				t.Fatalf("unexpected syntax errors: %v", res.errs)
			}
			testTree(t, res.tree, tt.cst)
		})
	}
}

func TestNewTokenStream(t *testing.T) {
	cg := compileRules(t, []*grammar.Rule{
		{LHS: "s", Alternatives: [][]string{{"IDENTIFIER"}}},
	})
	toks := []*token.Token{
		{Kind: token.KindIdentifier, Text: "a", Line: 3},
	}

	ts, err := NewTokenStream(cg, toks)
	if err != nil {
		t.Fatal(err)
	}
	tok, err := ts.Next()
	if err != nil {
		t.Fatal(err)
	}
	if tok.EOF() || tok.Text() != "a" || tok.Line() != 3 {
		t.Fatalf("unexpected token: %+v", tok)
	}
	for i := 0; i < 2; i++ {
		tok, err = ts.Next()
		if err != nil {
			t.Fatal(err)
		}
		if !tok.EOF() || tok.TerminalID() != cg.Syntactic.EOFSymbol || tok.Line() != 3 {
			t.Fatalf("the stream must keep returning EOF on the last line: %+v", tok)
		}
	}

	_, err = NewTokenStream(cg, []*token.Token{{Kind: token.KindNil, Text: "?", Line: 1}})
	if err == nil {
		t.Fatalf("an error must occur for a token kind that is not a terminal")
	}
}

func testTree(t *testing.T, node, expected *Node) {
	t.Helper()

	if node.Type != expected.Type || node.KindName != expected.KindName || node.Text != expected.Text {
		t.Fatalf("unexpected node; want: %+v, got: %+v", expected, node)
	}
	if len(node.Children) != len(expected.Children) {
		t.Fatalf("unexpected children; want: %v, got: %v", len(expected.Children), len(node.Children))
	}
	for i, c := range node.Children {
		testTree(t, c, expected.Children[i])
	}
}

// testTreeIdentity checks parent links and that every node is created after its children.
func testTreeIdentity(t *testing.T, node *Node, parent *Node) {
	t.Helper()

	if node.Parent != parent {
		t.Fatalf("unexpected parent of %v; want: %v, got: %v", node.KindName, parent, node.Parent)
	}
	if parent != nil && node.ID >= parent.ID {
		t.Fatalf("a child must be created before its parent; child: %v, parent: %v", node.ID, parent.ID)
	}
	for _, c := range node.Children {
		testTreeIdentity(t, c, node)
	}
}
