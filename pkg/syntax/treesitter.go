package syntax

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
)

// Parser parses C source into syntax trees.
type Parser struct {
	lang *sitter.Language
}

// NewParser creates a Parser for the C grammar.
func NewParser() *Parser {
	return &Parser{lang: c.GetLanguage()}
}

// Tree owns a parsed tree. Call Close when done with it.
type Tree struct {
	tree   *sitter.Tree
	source []byte
}

// Parse parses src. Syntax errors do not fail the parse; they show up as
// ERROR nodes in the tree.
func (p *Parser) Parse(ctx context.Context, src []byte) (*Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(p.lang)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}
	if tree == nil {
		return nil, fmt.Errorf("failed to parse source: parser returned no tree")
	}

	return &Tree{tree: tree, source: src}, nil
}

// Root returns the root node of the tree.
func (t *Tree) Root() Node {
	return wrap(t.tree.RootNode())
}

// Source returns the bytes the tree was parsed from.
func (t *Tree) Source() []byte {
	return t.source
}

// Close releases the underlying tree.
func (t *Tree) Close() {
	if t != nil && t.tree != nil {
		t.tree.Close()
	}
}

// Content returns the source text covered by n. Only nodes backed by a
// tree-sitter tree carry byte offsets; for any other Node it returns "".
func Content(n Node, src []byte) string {
	tn, ok := n.(tsNode)
	if !ok {
		return ""
	}
	start, end := tn.n.StartByte(), tn.n.EndByte()
	if int(end) > len(src) || start > end {
		return ""
	}
	return string(src[start:end])
}

// tsNode adapts *sitter.Node to Node.
type tsNode struct {
	n *sitter.Node
}

// wrap returns nil for a missing node so callers can compare against nil.
func wrap(n *sitter.Node) Node {
	if n == nil {
		return nil
	}
	return tsNode{n: n}
}

func (t tsNode) Type() string  { return t.n.Type() }
func (t tsNode) IsNamed() bool { return t.n.IsNamed() }

func (t tsNode) StartPoint() Point {
	p := t.n.StartPoint()
	return Point{Row: int(p.Row), Column: int(p.Column)}
}

func (t tsNode) EndPoint() Point {
	p := t.n.EndPoint()
	return Point{Row: int(p.Row), Column: int(p.Column)}
}

func (t tsNode) NamedChildCount() int  { return int(t.n.NamedChildCount()) }
func (t tsNode) NamedChild(i int) Node { return wrap(t.n.NamedChild(i)) }
func (t tsNode) ChildCount() int       { return int(t.n.ChildCount()) }
func (t tsNode) Child(i int) Node      { return wrap(t.n.Child(i)) }

func (t tsNode) ChildByFieldName(name string) Node {
	return wrap(t.n.ChildByFieldName(name))
}
