package tester

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pkotlin/pkc/driver/parser"
	"gopkg.in/yaml.v3"
)

// TestCase is a Pseudo-Kotlin program along with the errors and the parse tree its analysis must produce.
//
// A test case file is a YAML document:
//
//	description: a declaration list
//	source: |
//	  INICIO {
//	  ENTERO a1, a2;
//	  } FIN
//	errors: []
//	tree:
//	  kind: PROGRAMA
//	  children:
//	    - kind: INICIO
//	    ...
type TestCase struct {
	Description string   `yaml:"description"`
	Source      string   `yaml:"source"`
	Errors      []string `yaml:"errors"`

	// Tree is optional. When it is nil, only the errors are checked.
	Tree *Tree `yaml:"tree"`
}

// ParseTestCase reads a test case. Unknown keys are rejected so that a misspelled key doesn't silently
// weaken a test.
func ParseTestCase(r io.Reader) (*TestCase, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	c := &TestCase{}
	err := dec.Decode(c)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("a test case is empty")
		}
		return nil, err
	}
	if c.Tree != nil {
		err := c.Tree.validate()
		if err != nil {
			return nil, err
		}
		c.Tree.Fill()
	}

	return c, nil
}

type TreeDiff struct {
	ExpectedPath string
	ActualPath   string
	Message      string
}

func newTreeDiff(expected, actual *Tree, message string) *TreeDiff {
	return &TreeDiff{
		ExpectedPath: expected.path(),
		ActualPath:   actual.path(),
		Message:      message,
	}
}

// Tree is an expected parse tree. The kind `_` matches any node, and an empty text matches any text.
type Tree struct {
	Kind     string  `yaml:"kind"`
	Text     string  `yaml:"text,omitempty"`
	Children []*Tree `yaml:"children,omitempty"`

	parent *Tree
	offset int
}

func NewNonTerminalTree(kind string, children ...*Tree) *Tree {
	return &Tree{
		Kind:     kind,
		Children: children,
	}
}

func NewTerminalNode(kind string, text string) *Tree {
	return &Tree{
		Kind: kind,
		Text: text,
	}
}

// Fill sets the back references a TreeDiff needs to describe paths.
func (t *Tree) Fill() *Tree {
	for i, c := range t.Children {
		c.parent = t
		c.offset = i
		c.Fill()
	}
	return t
}

func (t *Tree) validate() error {
	if t.Kind == "" {
		return fmt.Errorf("a tree node must have a kind: %v", t.path())
	}
	for _, c := range t.Children {
		if c == nil {
			return fmt.Errorf("a tree node must not be empty: %v", t.path())
		}
		c.parent = t
		err := c.validate()
		if err != nil {
			return err
		}
	}
	return nil
}

func (t *Tree) path() string {
	if t.parent == nil {
		return t.Kind
	}
	return fmt.Sprintf("%v.[%v]%v", t.parent.path(), t.offset, t.Kind)
}

// Format returns the tree in the YAML form a test case uses.
func (t *Tree) Format() ([]byte, error) {
	var b strings.Builder
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	err := enc.Encode(t)
	if err != nil {
		return nil, err
	}
	err = enc.Close()
	if err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

// ConvertNode converts a parse tree into the form a test case compares against.
func ConvertNode(node *parser.Node) *Tree {
	var children []*Tree
	if len(node.Children) > 0 {
		children = make([]*Tree, len(node.Children))
		for i, c := range node.Children {
			children[i] = ConvertNode(c)
		}
	}
	return &Tree{
		Kind:     node.KindName,
		Text:     node.Text,
		Children: children,
	}
}

func DiffTree(expected, actual *Tree) []*TreeDiff {
	if expected == nil && actual == nil {
		return nil
	}
	// _ matches any symbols.
	if expected.Kind != "_" && actual.Kind != expected.Kind {
		msg := fmt.Sprintf("unexpected kind: expected '%v' but got '%v'", expected.Kind, actual.Kind)
		return []*TreeDiff{
			newTreeDiff(expected, actual, msg),
		}
	}
	if expected.Text != "" && expected.Text != actual.Text {
		msg := fmt.Sprintf("unexpected text: expected '%v' but got '%v'", expected.Text, actual.Text)
		return []*TreeDiff{
			newTreeDiff(expected, actual, msg),
		}
	}
	if len(actual.Children) != len(expected.Children) {
		msg := fmt.Sprintf("unexpected node count: expected %v but got %v", len(expected.Children), len(actual.Children))
		return []*TreeDiff{
			newTreeDiff(expected, actual, msg),
		}
	}
	var diffs []*TreeDiff
	for i, exp := range expected.Children {
		if ds := DiffTree(exp, actual.Children[i]); len(ds) > 0 {
			diffs = append(diffs, ds...)
		}
	}
	return diffs
}
