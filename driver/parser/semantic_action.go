package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// SemanticActionSet is a set of semantic actions a parser calls.
type SemanticActionSet interface {
	// Shift runs when the parser shifts a symbol onto a state stack. `tok` is a token corresponding to the symbol.
	// When the parser recovered from an error state by shifting the token, `recovered` is true.
	Shift(tok VToken, recovered bool)

	// Reduce runs when the parser reduces an RHS of a production to its LHS. `prodNum` is a number of the production.
	// When the parser recovered from an error state by reducing the production, `recovered` is true.
	Reduce(prodNum int, recovered bool)

	// Accept runs when the parser accepts an input.
	Accept()

	// Discard runs when the parser throws away an unexpected token `tok` to recover from a syntax error.
	// The token never reaches the state stack.
	Discard(tok VToken)

	// MissError runs when the parser gives up parsing. `cause` is a token that caused a syntax error.
	MissError(cause VToken)
}

var _ SemanticActionSet = &SyntaxTreeActionSet{}

// SyntaxTreeNode is a node of a syntax tree. A node type used in SyntaxTreeActionSet must implement SyntaxTreeNode interface.
type SyntaxTreeNode interface {
	// ChildCount returns a child count of a node.
	ChildCount() int

	// ExpandChildren returns children of a node.
	ExpandChildren() []SyntaxTreeNode
}

var _ SyntaxTreeNode = &Node{}

// SyntaxTreeBuilder allows you to construct a syntax tree containing arbitrary user-defined node types.
// The parser uses SyntaxTreeBuilder interface as a part of semantic actions via SyntaxTreeActionSet interface.
type SyntaxTreeBuilder interface {
	Shift(kindName string, text string, line int) SyntaxTreeNode
	Reduce(kindName string, children []SyntaxTreeNode) SyntaxTreeNode
	Accept(f SyntaxTreeNode)
}

var _ SyntaxTreeBuilder = &DefaultSyntaxTreeBuilder{}

// DefaultSyntaxTreeBuilder is a implementation of SyntaxTreeBuilder. It numbers nodes in creation order.
type DefaultSyntaxTreeBuilder struct {
	tree   *Node
	nextID int
}

// NewDefaultSyntaxTreeBuilder returns a new DefaultSyntaxTreeBuilder.
func NewDefaultSyntaxTreeBuilder() *DefaultSyntaxTreeBuilder {
	return &DefaultSyntaxTreeBuilder{}
}

// Shift is a implementation of SyntaxTreeBuilder.Shift.
func (b *DefaultSyntaxTreeBuilder) Shift(kindName string, text string, line int) SyntaxTreeNode {
	b.nextID++
	return &Node{
		ID:       b.nextID,
		Type:     NodeTypeTerminal,
		KindName: kindName,
		Text:     text,
		Line:     line,
	}
}

// Reduce is a implementation of SyntaxTreeBuilder.Reduce.
func (b *DefaultSyntaxTreeBuilder) Reduce(kindName string, children []SyntaxTreeNode) SyntaxTreeNode {
	b.nextID++
	n := &Node{
		ID:       b.nextID,
		Type:     NodeTypeNonTerminal,
		KindName: kindName,
		Children: make([]*Node, len(children)),
	}
	for i, c := range children {
		cNode := c.(*Node)
		cNode.Parent = n
		n.Children[i] = cNode
	}
	if len(n.Children) > 0 {
		n.Line = n.Children[0].Line
	}
	return n
}

// Accept is a implementation of SyntaxTreeBuilder.Accept.
func (b *DefaultSyntaxTreeBuilder) Accept(f SyntaxTreeNode) {
	b.tree = f.(*Node)
}

// Tree returns a syntax tree when the parser has accepted an input. If the parser gave up, the return value is nil.
func (b *DefaultSyntaxTreeBuilder) Tree() *Node {
	return b.tree
}

// SyntaxTreeActionSet is a implementation of SemanticActionSet interface and constructs a CST (Concrete Syntax Tree).
// A shifted token becomes a leaf only when a reduction consumes it.
type SyntaxTreeActionSet struct {
	gram     Grammar
	builder  SyntaxTreeBuilder
	semStack *semanticStack
}

// NewCSTActionSet returns a new SyntaxTreeActionSet that constructs a CST.
func NewCSTActionSet(gram Grammar, builder SyntaxTreeBuilder) *SyntaxTreeActionSet {
	return &SyntaxTreeActionSet{
		gram:     gram,
		builder:  builder,
		semStack: newSemanticStack(),
	}
}

// Shift is a implementation of SemanticActionSet.Shift method.
func (a *SyntaxTreeActionSet) Shift(tok VToken, recovered bool) {
	a.semStack.push(&semanticFrame{
		tok: tok,
	})
}

// Reduce is a implementation of SemanticActionSet.Reduce method.
func (a *SyntaxTreeActionSet) Reduce(prodNum int, recovered bool) {
	lhs := a.gram.LHS(prodNum)
	n := a.gram.AlternativeSymbolCount(prodNum)
	handle := a.semStack.pop(n)

	children := make([]SyntaxTreeNode, len(handle))
	for i, f := range handle {
		children[i] = a.materialize(f)
	}

	a.semStack.push(&semanticFrame{
		node: a.builder.Reduce(a.gram.NonTerminal(lhs), children),
	})
}

// Accept is a implementation of SemanticActionSet.Accept method.
func (a *SyntaxTreeActionSet) Accept() {
	top := a.semStack.pop(1)
	a.builder.Accept(a.materialize(top[0]))
}

// Discard is a implementation of SemanticActionSet.Discard method.
func (a *SyntaxTreeActionSet) Discard(tok VToken) {
}

// MissError is a implementation of SemanticActionSet.MissError method.
func (a *SyntaxTreeActionSet) MissError(cause VToken) {
}

func (a *SyntaxTreeActionSet) materialize(f *semanticFrame) SyntaxTreeNode {
	if f.node != nil {
		return f.node
	}
	f.node = a.builder.Shift(a.gram.Terminal(f.tok.TerminalID()), f.tok.Text(), f.tok.Line())
	return f.node
}

// semanticFrame holds either a shifted token that no reduction has consumed yet or a node.
type semanticFrame struct {
	tok  VToken
	node SyntaxTreeNode
}

type semanticStack struct {
	frames []*semanticFrame
}

func newSemanticStack() *semanticStack {
	return &semanticStack{
		frames: make([]*semanticFrame, 0, 100),
	}
}

func (s *semanticStack) push(f *semanticFrame) {
	s.frames = append(s.frames, f)
}

func (s *semanticStack) pop(n int) []*semanticFrame {
	fs := s.frames[len(s.frames)-n:]
	s.frames = s.frames[:len(s.frames)-n]

	return fs
}

type NodeType int

const (
	NodeTypeTerminal    NodeType = 1
	NodeTypeNonTerminal NodeType = 2
)

// Node is a implementation of SyntaxTreeNode interface.
type Node struct {
	ID       int      `yaml:"id"`
	Type     NodeType `yaml:"type"`
	KindName string   `yaml:"kind_name"`
	Text     string   `yaml:"text,omitempty"`
	Line     int      `yaml:"line"`
	Children []*Node  `yaml:"children,omitempty"`

	// Parent refers to the node that owns this node. It is nil for the root and is never serialized.
	Parent *Node `yaml:"-"`
}

func (n *Node) MarshalJSON() ([]byte, error) {
	switch n.Type {
	case NodeTypeTerminal:
		return json.Marshal(struct {
			ID       int      `json:"id"`
			Type     NodeType `json:"type"`
			KindName string   `json:"kind_name"`
			Text     string   `json:"text"`
			Line     int      `json:"line"`
		}{
			ID:       n.ID,
			Type:     n.Type,
			KindName: n.KindName,
			Text:     n.Text,
			Line:     n.Line,
		})
	case NodeTypeNonTerminal:
		return json.Marshal(struct {
			ID       int      `json:"id"`
			Type     NodeType `json:"type"`
			KindName string   `json:"kind_name"`
			Line     int      `json:"line"`
			Children []*Node  `json:"children"`
		}{
			ID:       n.ID,
			Type:     n.Type,
			KindName: n.KindName,
			Line:     n.Line,
			Children: n.Children,
		})
	default:
		return nil, fmt.Errorf("invalid node type: %v", n.Type)
	}
}

// ChildCount is a implementation of SyntaxTreeNode.ChildCount.
func (n *Node) ChildCount() int {
	return len(n.Children)
}

// ExpandChildren is a implementation of SyntaxTreeNode.ExpandChildren.
func (n *Node) ExpandChildren() []SyntaxTreeNode {
	fs := make([]SyntaxTreeNode, len(n.Children))
	for i, n := range n.Children {
		fs[i] = n
	}
	return fs
}

// CountNodes returns the number of nodes in a tree whose root is `node`.
func CountNodes(node SyntaxTreeNode) int {
	if node == nil {
		return 0
	}
	c := 1
	for _, child := range node.ExpandChildren() {
		c += CountNodes(child)
	}
	return c
}

// PrintTree prints a syntax tree whose root is `node`.
func PrintTree(w io.Writer, node *Node) {
	printTree(w, node, "", "")
}

func printTree(w io.Writer, node *Node, ruledLine string, childRuledLinePrefix string) {
	if node == nil {
		return
	}

	switch node.Type {
	case NodeTypeTerminal:
		fmt.Fprintf(w, "%v%v %v\n", ruledLine, node.KindName, strconv.Quote(node.Text))
	case NodeTypeNonTerminal:
		fmt.Fprintf(w, "%v%v\n", ruledLine, node.KindName)

		num := len(node.Children)
		for i, child := range node.Children {
			var line string
			if num > 1 && i < num-1 {
				line = "├─ "
			} else {
				line = "└─ "
			}

			var prefix string
			if i >= num-1 {
				prefix = "   "
			} else {
				prefix = "│  "
			}

			printTree(w, child, childRuledLinePrefix+line, childRuledLinePrefix+prefix)
		}
	}
}
