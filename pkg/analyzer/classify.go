package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rg0now/c-comment-ratio/pkg/models"
	"github.com/rg0now/c-comment-ratio/pkg/syntax"
)

// LineSet is a set of zero-based row indices.
type LineSet map[int]struct{}

// NewLineSet creates an empty LineSet.
func NewLineSet() LineSet {
	return make(LineSet)
}

// Add inserts row. Adding a row twice is a no-op.
func (s LineSet) Add(row int) {
	s[row] = struct{}{}
}

// Has reports whether row is in the set.
func (s LineSet) Has(row int) bool {
	_, ok := s[row]
	return ok
}

// Len returns the number of rows in the set.
func (s LineSet) Len() int {
	return len(s)
}

// Sorted returns the rows in ascending order.
func (s LineSet) Sorted() []int {
	rows := make([]int, 0, len(s))
	for row := range s {
		rows = append(rows, row)
	}
	sort.Ints(rows)
	return rows
}

// Classification holds the comment and code rows of a function.
type Classification struct {
	CommentLines LineSet
	CodeLines    LineSet
	Total        int
	Ratio        float64
}

// Classify partitions the rows of fn using the named policy.
func Classify(policy string, fn syntax.Node, lines []string) (Classification, error) {
	switch policy {
	case models.PolicyFirstPass, "":
		return ClassifyFirstPass(fn, lines), nil
	case models.PolicyTwoPhase:
		return ClassifyTwoPhase(fn, lines), nil
	default:
		return Classification{}, fmt.Errorf("unknown classification policy %q", policy)
	}
}

// ClassifyFirstPass classifies rows in a single pre-order walk.
// Comment nodes mark their rows as comment rows, named nodes mark their rows
// as code candidates. A comment row is never a code row, no matter which
// node was visited first.
func ClassifyFirstPass(fn syntax.Node, lines []string) Classification {
	comments := NewLineSet()
	candidates := NewLineSet()

	syntax.Inspect(fn, func(n syntax.Node) bool {
		switch {
		case n.Type() == syntax.TypeComment:
			markSpan(comments, n)
		case n.IsNamed():
			markSpan(candidates, n)
		}
		return true
	})

	code := NewLineSet()
	for row := range candidates {
		if comments.Has(row) || isBlankRow(lines, row) {
			continue
		}
		code.Add(row)
	}

	return newClassification(comments, code)
}

// ClassifyTwoPhase collects comment rows first, then walks every named node
// and takes the rows nobody has claimed yet as code. Blank rows are dropped
// from the code set at the end.
func ClassifyTwoPhase(fn syntax.Node, lines []string) Classification {
	comments := NewLineSet()
	claimed := NewLineSet()

	// Phase one: comments.
	syntax.Inspect(fn, func(n syntax.Node) bool {
		if n.Type() == syntax.TypeComment {
			markSpan(comments, n)
			markSpan(claimed, n)
		}
		return true
	})

	// Phase two: significant nodes over unclaimed rows.
	code := NewLineSet()
	syntax.Inspect(fn, func(n syntax.Node) bool {
		if !n.IsNamed() {
			return true
		}
		for row := n.StartPoint().Row; row <= n.EndPoint().Row; row++ {
			if claimed.Has(row) {
				continue
			}
			claimed.Add(row)
			code.Add(row)
		}
		return true
	})

	for row := range code {
		if isBlankRow(lines, row) {
			delete(code, row)
		}
	}

	return newClassification(comments, code)
}

// newClassification derives the totals from the two row sets.
func newClassification(comments, code LineSet) Classification {
	c := Classification{
		CommentLines: comments,
		CodeLines:    code,
		Total:        comments.Len() + code.Len(),
	}
	if c.Total > 0 {
		c.Ratio = float64(comments.Len()) / float64(c.Total)
	}
	return c
}

// markSpan adds every row covered by n to set.
func markSpan(set LineSet, n syntax.Node) {
	for row := n.StartPoint().Row; row <= n.EndPoint().Row; row++ {
		set.Add(row)
	}
}

// isBlankRow reports whether the source line at row is empty after trimming.
// Rows past the end of the source count as blank.
func isBlankRow(lines []string, row int) bool {
	if row < 0 || row >= len(lines) {
		return true
	}
	return strings.TrimSpace(lines[row]) == ""
}

// SplitLines splits source into rows the way the parser counts them.
func SplitLines(source string) []string {
	return strings.Split(source, "\n")
}
