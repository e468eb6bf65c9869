package analyzer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/rg0now/c-comment-ratio/pkg/syntax"
)

// fakeNode is a hand-built syntax.Node for tree shapes the C grammar
// cannot produce, such as nested function definitions.
type fakeNode struct {
	typ        string
	named      bool
	start, end syntax.Point
	children   []*fakeNode
	fields     map[string]*fakeNode
}

func (f *fakeNode) Type() string             { return f.typ }
func (f *fakeNode) IsNamed() bool            { return f.named }
func (f *fakeNode) StartPoint() syntax.Point { return f.start }
func (f *fakeNode) EndPoint() syntax.Point   { return f.end }
func (f *fakeNode) ChildCount() int          { return len(f.children) }

func (f *fakeNode) Child(i int) syntax.Node {
	if i < 0 || i >= len(f.children) {
		return nil
	}
	return f.children[i]
}

func (f *fakeNode) namedChildren() []*fakeNode {
	var out []*fakeNode
	for _, c := range f.children {
		if c.named {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeNode) NamedChildCount() int { return len(f.namedChildren()) }

func (f *fakeNode) NamedChild(i int) syntax.Node {
	named := f.namedChildren()
	if i < 0 || i >= len(named) {
		return nil
	}
	return named[i]
}

func (f *fakeNode) ChildByFieldName(name string) syntax.Node {
	c, ok := f.fields[name]
	if !ok {
		return nil
	}
	return c
}

// node builds a named node spanning whole rows.
func node(typ string, startRow, endRow int, children ...*fakeNode) *fakeNode {
	return &fakeNode{
		typ:      typ,
		named:    true,
		start:    syntax.Point{Row: startRow},
		end:      syntax.Point{Row: endRow, Column: 1},
		children: children,
	}
}

// token builds an anonymous token of the given text at row/col.
func token(text string, row, col int) *fakeNode {
	return &fakeNode{
		typ:   text,
		start: syntax.Point{Row: row, Column: col},
		end:   syntax.Point{Row: row, Column: col + len(text)},
	}
}

// withBody registers body as the "body" field of fn and appends it.
func withBody(fn, body *fakeNode) *fakeNode {
	fn.children = append(fn.children, body)
	if fn.fields == nil {
		fn.fields = make(map[string]*fakeNode)
	}
	fn.fields["body"] = body
	return fn
}

// loadFixture returns the named file from testdata/functions.txtar.
func loadFixture(t *testing.T, name string) string {
	t.Helper()

	archive, err := txtar.ParseFile("testdata/functions.txtar")
	require.NoError(t, err)

	for _, f := range archive.Files {
		if f.Name == name {
			return string(f.Data)
		}
	}

	t.Fatalf("fixture %s not found", name)
	return ""
}

// parseFixture parses a fixture and returns the tree; it is closed when the
// test ends.
func parseFixture(t *testing.T, name string) (*syntax.Tree, string) {
	t.Helper()

	src := loadFixture(t, name)
	tree, err := syntax.NewParser().Parse(context.Background(), []byte(src))
	require.NoError(t, err)
	t.Cleanup(tree.Close)

	return tree, src
}
