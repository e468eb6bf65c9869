package analyzer

import (
	"strings"

	"github.com/rg0now/c-comment-ratio/pkg/syntax"
)

// FindEnclosingFunction returns the innermost function definition whose row
// span contains line, or nil if the line is not inside any function.
func FindEnclosingFunction(root syntax.Node, line int) syntax.Node {
	var found syntax.Node

	syntax.Inspect(root, func(n syntax.Node) bool {
		// Later matches in pre-order are nested deeper, so keep overwriting.
		if n.Type() == syntax.TypeFunctionDefinition && syntax.SpansRow(n, line) {
			found = n
		}
		return true
	})

	return found
}

// FunctionName extracts the declared name of a function definition.
// Follows declarator fields through pointer and parenthesized declarators
// down to the identifier. Returns "" when the name cannot be resolved.
func FunctionName(fn syntax.Node, src []byte) string {
	if fn == nil {
		return ""
	}

	decl := fn.ChildByFieldName("declarator")
	for decl != nil {
		switch decl.Type() {
		case "identifier", "field_identifier":
			return strings.TrimSpace(syntax.Content(decl, src))
		case "parenthesized_declarator":
			if decl.NamedChildCount() == 0 {
				return ""
			}
			decl = decl.NamedChild(0)
		default:
			decl = decl.ChildByFieldName("declarator")
		}
	}

	return ""
}
