package analyzer

import "github.com/rg0now/c-comment-ratio/pkg/syntax"

// BodyInsertionPoint returns the position just after the opening brace of
// the function body. It reports false when the function has no body or the
// body does not start with "{".
func BodyInsertionPoint(fn syntax.Node) (syntax.Point, bool) {
	if fn == nil {
		return syntax.Point{}, false
	}

	body := fn.ChildByFieldName("body")
	if body == nil || body.ChildCount() == 0 {
		return syntax.Point{}, false
	}

	brace := body.Child(0)
	if brace == nil || brace.Type() != syntax.TypeOpenBrace {
		return syntax.Point{}, false
	}

	return brace.EndPoint(), true
}
