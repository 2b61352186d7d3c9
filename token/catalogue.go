package token

import (
	"fmt"
	"io"
	"strings"
	"sync"

	mlcompiler "github.com/nihei9/maleeni/compiler"
	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"
)

var literalRules = map[Kind]string{
	KindStart:            "INICIO",
	KindEnd:              "FIN",
	KindTypeInteger:      "ENTERO",
	KindTypeFloat:        "FLOTANTE",
	KindOpRead:           "LEER",
	KindOpWrite:          "IMPRIMIR",
	KindOpSum:            "SUM",
	KindOpRes:            "RES",
	KindOpMul:            "MUL",
	KindOpDiv:            "DIV",
	KindOpenCurlyBrace:   "{",
	KindCloseCurlyBrace:  "}",
	KindOpenParentheses:  "(",
	KindCloseParentheses: ")",
	KindDotComa:          ";",
	KindDot:              ".",
	KindComa:             ",",
	KindDesignator:       "=",
}

const (
	// A letter followed by up to three digits.
	patternIdentifier = `[A-Za-z]([0-9]([0-9]([0-9])?)?)?`

	// One to five digits.
	patternInteger = `[0-9]([0-9]([0-9]([0-9]([0-9])?)?)?)?`

	// One to five digits, optionally followed by a fraction of one to three digits.
	patternFloat = patternInteger + `(\.[0-9]([0-9]([0-9])?)?)?`
)

// Rule is a matching rule of a kind. A word belongs to the kind when the pattern matches the whole word.
type Rule struct {
	Kind    Kind
	Pattern string
}

// Rules returns the rules of all kinds in declaration order.
func Rules() []*Rule {
	rules := make([]*Rule, 0, kindCount-1)
	for _, k := range Kinds() {
		var pat string
		switch k {
		case KindIdentifier:
			pat = patternIdentifier
		case KindInteger:
			pat = patternInteger
		case KindFloat:
			pat = patternFloat
		default:
			pat = mlspec.EscapePattern(literalRules[k])
		}
		rules = append(rules, &Rule{
			Kind:    k,
			Pattern: pat,
		})
	}
	return rules
}

// Catalogue classifies words according to a rule table compiled into a DFA.
type Catalogue struct {
	spec  *mlspec.CompiledLexSpec
	kinds []Kind
}

// NewCatalogue compiles rules. The order of rules decides which kind wins when several rules match
// a word entirely.
func NewCatalogue(rules []*Rule) (*Catalogue, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("a catalogue needs at least one rule")
	}

	entries := make([]*mlspec.LexEntry, 0, len(rules))
	name2Kind := map[string]Kind{}
	for _, r := range rules {
		if !r.Kind.Valid() {
			return nil, fmt.Errorf("invalid kind: %v", r.Kind)
		}
		if r.Pattern == "" {
			return nil, fmt.Errorf("%v: a pattern must be a non-empty string", r.Kind)
		}
		name := lexKindName(r.Kind)
		if _, dup := name2Kind[name]; dup {
			return nil, fmt.Errorf("%v: duplicated rule", r.Kind)
		}
		name2Kind[name] = r.Kind
		entries = append(entries, &mlspec.LexEntry{
			Kind:    mlspec.LexKindName(name),
			Pattern: mlspec.LexPattern(r.Pattern),
		})
	}

	clspec, err := CompileLexSpec(&mlspec.LexSpec{
		Name:    lexSpecName,
		Entries: entries,
	})
	if err != nil {
		return nil, err
	}

	kinds := make([]Kind, len(clspec.KindNames))
	for id, name := range clspec.KindNames {
		if name == mlspec.LexKindNameNil {
			continue
		}
		k, ok := name2Kind[name.String()]
		if !ok {
			return nil, fmt.Errorf("a compiled kind was not found in the rules: %v", name)
		}
		kinds[id] = k
	}

	return &Catalogue{
		spec:  clspec,
		kinds: kinds,
	}, nil
}

// Match returns the kind of word. It succeeds only when a single rule matches the whole word.
func (c *Catalogue) Match(word string) (Kind, bool) {
	if word == "" {
		return KindNil, false
	}

	lex, err := mldriver.NewLexer(mldriver.NewLexSpec(c.spec), strings.NewReader(word))
	if err != nil {
		return KindNil, false
	}
	tok, err := lex.Next()
	if err != nil {
		return KindNil, false
	}
	if tok.EOF || tok.Invalid {
		return KindNil, false
	}
	// A shorter lexeme means the word is a concatenation of several tokens, like `a1234`.
	if len(tok.Lexeme) != len(word) {
		return KindNil, false
	}

	id := int(tok.KindID)
	if id <= 0 || id >= len(c.kinds) {
		return KindNil, false
	}
	return c.kinds[id], true
}

var (
	defaultCatalogueOnce sync.Once
	defaultCatalogue     *Catalogue
)

// DefaultCatalogue returns the catalogue of Pseudo-Kotlin. The catalogue is compiled on the first call, and
// a malformed rule table causes a panic because it is a programming error.
func DefaultCatalogue() *Catalogue {
	defaultCatalogueOnce.Do(func() {
		c, err := NewCatalogue(Rules())
		if err != nil {
			panic(fmt.Errorf("failed to compile the token catalogue: %w", err))
		}
		defaultCatalogue = c
	})
	return defaultCatalogue
}

// Classify classifies a word using the default catalogue.
func Classify(word string) (Kind, bool) {
	return DefaultCatalogue().Match(word)
}

const lexSpecName = "pkotlin_tokens"

func lexKindName(k Kind) string {
	return strings.ToLower(k.String())
}

// CompileLexSpec compiles a maleeni lexical specification with the maximum compression level.
func CompileLexSpec(lspec *mlspec.LexSpec) (*mlspec.CompiledLexSpec, error) {
	clspec, err, cErrs := mlcompiler.Compile(lspec, mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
	if err != nil {
		if len(cErrs) > 0 {
			var b strings.Builder
			writeCompileError(&b, cErrs[0])
			for _, cerr := range cErrs[1:] {
				fmt.Fprintf(&b, "\n")
				writeCompileError(&b, cerr)
			}
			return nil, fmt.Errorf("%v", b.String())
		}
		return nil, err
	}
	return clspec, nil
}

func writeCompileError(w io.Writer, cErr *mlcompiler.CompileError) {
	if cErr.Fragment {
		fmt.Fprintf(w, "fragment ")
	}
	fmt.Fprintf(w, "%v: %v", cErr.Kind, cErr.Cause)
	if cErr.Detail != "" {
		fmt.Fprintf(w, ": %v", cErr.Detail)
	}
}
