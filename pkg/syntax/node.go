package syntax

// Node types used by the analyzer. They match the tree-sitter C grammar.
const (
	TypeFunctionDefinition = "function_definition"
	TypeComment            = "comment"
	TypeCompoundStatement  = "compound_statement"
	TypeOpenBrace          = "{"
)

// Point is a zero-based row/column position. Column is a byte offset.
type Point struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// Node is a read-only view of a parsed syntax tree node.
type Node interface {
	Type() string
	// IsNamed reports whether the node is a grammatical construct rather
	// than punctuation or a keyword token.
	IsNamed() bool
	StartPoint() Point
	EndPoint() Point
	NamedChildCount() int
	NamedChild(i int) Node
	ChildCount() int
	Child(i int) Node
	// ChildByFieldName returns nil when the field is absent.
	ChildByFieldName(name string) Node
}

// Inspect walks the tree rooted at n in pre-order, parents before children
// and named children in source order. If fn returns false the children of
// the current node are skipped.
func Inspect(n Node, fn func(Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for i := 0; i < n.NamedChildCount(); i++ {
		Inspect(n.NamedChild(i), fn)
	}
}

// SpansRow reports whether row lies within the inclusive row span of n.
func SpansRow(n Node, row int) bool {
	return n.StartPoint().Row <= row && row <= n.EndPoint().Row
}
