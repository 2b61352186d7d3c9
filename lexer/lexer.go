package lexer

import (
	"fmt"
	"io"
	"strings"
	"sync"

	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"
	"github.com/pkotlin/pkc/token"
)

// Word kinds of the splitter. Delimiters are kept as words because punctuation is classified the same way
// as keywords and identifiers.
const (
	wordKindNewline   = "newline"
	wordKindBlank     = "blank"
	wordKindDelimiter = "delimiter"
	wordKindWord      = "word"
)

// Carriage returns count as blanks so that CRLF sources lex like LF sources.
var splitterSpec = &mlspec.LexSpec{
	Name: "pkotlin_words",
	Entries: []*mlspec.LexEntry{
		{
			Kind:    wordKindNewline,
			Pattern: `\u{000A}`,
		},
		{
			Kind:    wordKindBlank,
			Pattern: `[\u{0009}\u{000D}\u{0020}]+`,
		},
		{
			Kind:    wordKindDelimiter,
			Pattern: `[{}();,=]`,
		},
		{
			Kind:    wordKindWord,
			Pattern: `[^{}();,=\u{000A}\u{0009}\u{000D}\u{0020}]+`,
		},
	},
}

type splitter struct {
	spec      *mlspec.CompiledLexSpec
	kindNames []string
}

var (
	splitterOnce sync.Once
	defSplitter  *splitter
)

func defaultSplitter() *splitter {
	splitterOnce.Do(func() {
		clspec, err := token.CompileLexSpec(splitterSpec)
		if err != nil {
			panic(fmt.Errorf("failed to compile the word splitter: %w", err))
		}
		names := make([]string, len(clspec.KindNames))
		for i, n := range clspec.KindNames {
			names[i] = n.String()
		}
		defSplitter = &splitter{
			spec:      clspec,
			kindNames: names,
		}
	})
	return defSplitter
}

// LexicalError represents a word that matches no rule of the token catalogue.
type LexicalError struct {
	Line int
	Text string
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("Invalid token at line %v: '%v'", e.Line, e.Text)
}

// Result is a result of lexical analysis.
type Result struct {
	Tokens []*token.Token

	// Identifiers contains the texts of IDENTIFIER tokens without duplicates, in first-seen order.
	Identifiers []string

	Errors []*LexicalError

	// WordCount is the number of non-blank words the source was split into.
	WordCount int
}

// Classifier decides the kind of a word.
type Classifier interface {
	Match(word string) (token.Kind, bool)
}

type LexerOption func(l *Lexer) error

// WithClassifier replaces the default token catalogue.
func WithClassifier(c Classifier) LexerOption {
	return func(l *Lexer) error {
		if c == nil {
			return fmt.Errorf("a classifier must be non-nil")
		}
		l.classifier = c
		return nil
	}
}

// Lexer splits a source text into words and classifies them.
type Lexer struct {
	split      *splitter
	drv        *mldriver.Lexer
	classifier Classifier
	line       int
	knownIDs   map[string]struct{}
}

// NewLexer returns a new lexer reading src.
func NewLexer(src io.Reader, opts ...LexerOption) (*Lexer, error) {
	split := defaultSplitter()
	drv, err := mldriver.NewLexer(mldriver.NewLexSpec(split.spec), src)
	if err != nil {
		return nil, err
	}

	l := &Lexer{
		split:      split,
		drv:        drv,
		classifier: token.DefaultCatalogue(),
		line:       1,
		knownIDs:   map[string]struct{}{},
	}
	for _, opt := range opts {
		err := opt(l)
		if err != nil {
			return nil, err
		}
	}

	return l, nil
}

// Run reads all words and returns the result.
func (l *Lexer) Run() (*Result, error) {
	res := &Result{
		Tokens:      []*token.Token{},
		Identifiers: []string{},
		Errors:      []*LexicalError{},
	}
	for {
		w, err := l.drv.Next()
		if err != nil {
			return nil, err
		}
		if w.EOF {
			break
		}

		text := string(w.Lexeme)
		if !w.Invalid {
			switch l.split.kindNames[int(w.KindID)] {
			case wordKindNewline:
				l.line++
				continue
			case wordKindBlank:
				continue
			}
		}
		// The splitter reports bytes it cannot decode as invalid tokens. They are words too, and the
		// classifier rejects them.
		if strings.TrimSpace(text) == "" {
			continue
		}

		res.WordCount++
		kind, ok := l.classifier.Match(text)
		if !ok {
			res.Errors = append(res.Errors, &LexicalError{
				Line: l.line,
				Text: text,
			})
			continue
		}

		res.Tokens = append(res.Tokens, &token.Token{
			Kind: kind,
			Text: text,
			Line: l.line,
		})
		if kind == token.KindIdentifier {
			if _, known := l.knownIDs[text]; !known {
				l.knownIDs[text] = struct{}{}
				res.Identifiers = append(res.Identifiers, text)
			}
		}
	}

	return res, nil
}

// Tokenize lexes src using the default token catalogue. It never fails: malformed words become lexical
// errors in the result.
func Tokenize(src string) *Result {
	l, err := NewLexer(strings.NewReader(src))
	if err != nil {
		panic(fmt.Errorf("failed to create a lexer: %w", err))
	}
	res, err := l.Run()
	if err != nil {
		// The splitter has a single mode, and a string reader never fails, so this is unreachable.
		panic(fmt.Errorf("failed to lex a source text: %w", err))
	}
	return res
}
