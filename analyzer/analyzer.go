package analyzer

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/pkotlin/pkc/driver/parser"
	"github.com/pkotlin/pkc/grammar"
	"github.com/pkotlin/pkc/lexer"
	spec "github.com/pkotlin/pkc/spec/grammar"
	"github.com/pkotlin/pkc/token"
)

// MessageNoErrors is the console message of a program without errors.
const MessageNoErrors = "SOURCE CODE WITHOUT SYNTAX ERRORS"

// DefaultMaxDepth is the default bound of the parser stack.
const DefaultMaxDepth = 1000

// AnalysisResult is a result of one analysis. Every call returns a fresh value.
type AnalysisResult struct {
	Tokens        []*token.Token `json:"tokens" yaml:"tokens"`
	Identifiers   []string       `json:"identifiers" yaml:"identifiers"`
	LexicalErrors []string       `json:"lexical_errors" yaml:"lexical_errors"`
	SyntaxErrors  []string       `json:"syntax_errors" yaml:"syntax_errors"`

	// Tree is nil unless the parser accepted the program without any syntax error.
	Tree *parser.Node `json:"tree,omitempty" yaml:"tree,omitempty"`

	// Diagnostics holds the same errors as Errors along with their lines.
	Diagnostics []*Diagnostic `json:"-" yaml:"-"`
}

// Diagnostic is an error message and the line it was found on.
type Diagnostic struct {
	Line    int
	Message string
}

// Errors returns lexical errors followed by syntax errors in detection order.
func (r *AnalysisResult) Errors() []string {
	errs := make([]string, 0, len(r.LexicalErrors)+len(r.SyntaxErrors))
	errs = append(errs, r.LexicalErrors...)
	errs = append(errs, r.SyntaxErrors...)
	return errs
}

// Message returns the console message: MessageNoErrors, or one error per line.
func (r *AnalysisResult) Message() string {
	errs := r.Errors()
	if len(errs) == 0 {
		return MessageNoErrors
	}
	return strings.Join(errs, "\n")
}

type config struct {
	maxDepth        int
	disableLAC      bool
	suppressCascade bool
	logger          *slog.Logger
}

type Option func(c *config)

// WithMaxDepth bounds the nesting the parser accepts. A non-positive depth removes the bound.
func WithMaxDepth(depth int) Option {
	return func(c *config) {
		c.maxDepth = depth
	}
}

func WithoutLAC() Option {
	return func(c *config) {
		c.disableLAC = true
	}
}

// WithCascadeSuppression keeps the parser quiet after a syntax error until it has shifted three tokens.
// Without it, every unexpected token is reported.
func WithCascadeSuppression() Option {
	return func(c *config) {
		c.suppressCascade = true
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

var (
	gramOnce sync.Once
	gram     *spec.CompiledGrammar
	gramErr  error
)

// CompiledGrammar returns the compiled Pseudo-Kotlin grammar. The grammar is compiled on the first call
// and shared read-only afterwards.
func CompiledGrammar() (*spec.CompiledGrammar, error) {
	gramOnce.Do(func() {
		gram, _, gramErr = grammar.CompileCatalogue(grammar.CompressTables())
	})
	return gram, gramErr
}

func mustCompiledGrammar() *spec.CompiledGrammar {
	g, err := CompiledGrammar()
	if err != nil {
		panic(err)
	}
	return g
}

// Analyze lexes and parses src. Malformed programs are reported through the result; Analyze never fails.
func Analyze(src string, opts ...Option) *AnalysisResult {
	c := &config{
		maxDepth: DefaultMaxDepth,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}

	lexRes := lexer.Tokenize(src)
	res := &AnalysisResult{
		Tokens:        lexRes.Tokens,
		Identifiers:   lexRes.Identifiers,
		LexicalErrors: make([]string, 0, len(lexRes.Errors)),
		SyntaxErrors:  []string{},
	}
	for _, e := range lexRes.Errors {
		res.LexicalErrors = append(res.LexicalErrors, e.Error())
		res.Diagnostics = append(res.Diagnostics, &Diagnostic{
			Line:    e.Line,
			Message: e.Error(),
		})
	}

	synErrs, tree, err := parse(mustCompiledGrammar(), lexRes.Tokens, c)
	if err != nil {
		// Tokens come from the catalogue the grammar is built on, so the parser cannot fail.
		panic(fmt.Errorf("failed to parse a token sequence: %w", err))
	}
	for _, e := range synErrs {
		res.SyntaxErrors = append(res.SyntaxErrors, e.Error())
		res.Diagnostics = append(res.Diagnostics, &Diagnostic{
			Line:    e.Line,
			Message: e.Error(),
		})
	}
	if len(synErrs) == 0 {
		res.Tree = tree
	}

	c.logger.Debug("analyzed a source text",
		slog.Int("tokens", len(res.Tokens)),
		slog.Int("identifiers", len(res.Identifiers)),
		slog.Int("lexical_errors", len(res.LexicalErrors)),
		slog.Int("syntax_errors", len(res.SyntaxErrors)),
		slog.Int("tree_nodes", countNodes(res.Tree)),
	)

	return res
}

func countNodes(tree *parser.Node) int {
	if tree == nil {
		return 0
	}
	return parser.CountNodes(tree)
}

func parse(cg *spec.CompiledGrammar, toks []*token.Token, c *config) ([]*parser.SyntaxError, *parser.Node, error) {
	ts, err := parser.NewTokenStream(cg, toks)
	if err != nil {
		return nil, nil, err
	}

	gram := parser.NewGrammar(cg)
	b := parser.NewDefaultSyntaxTreeBuilder()
	opts := []parser.ParserOption{
		parser.SemanticAction(parser.NewCSTActionSet(gram, b)),
	}
	if c.maxDepth > 0 {
		opts = append(opts, parser.MaxDepth(c.maxDepth))
	}
	if c.disableLAC {
		opts = append(opts, parser.DisableLAC())
	}
	if c.suppressCascade {
		opts = append(opts, parser.SuppressCascadingErrors())
	}

	p, err := parser.NewParser(ts, gram, opts...)
	if err != nil {
		return nil, nil, err
	}
	err = p.Parse()
	if err != nil {
		return nil, nil, err
	}

	return p.SyntaxErrors(), b.Tree(), nil
}
