package editor

import (
	"fmt"
	"strings"

	"github.com/rg0now/c-comment-ratio/pkg/models"
)

// IterativeCommentText is the fixed comment body used by iterative inserts.
const IterativeCommentText = "Add a comment here"

// Layout describes how inserted comment lines join the surrounding text.
type Layout struct {
	// Newline is the line terminator used by the document.
	Newline string

	// BreakAfter ends the inserted block with a line break so code that
	// follows the brace on its row starts a fresh line.
	BreakAfter bool
}

// LayoutAt returns the layout for inserting at pos in text. The row's own
// terminator decides Newline; the last row falls back to the first
// terminator in the document.
func LayoutAt(text string, pos models.Position) Layout {
	layout := Layout{Newline: "\n"}

	rows := strings.Split(text, "\n")
	if pos.Row < 0 || pos.Row >= len(rows) {
		return layout
	}
	row := rows[pos.Row]

	switch {
	case strings.HasSuffix(row, "\r"):
		layout.Newline = "\r\n"
	case pos.Row == len(rows)-1:
		if i := strings.IndexByte(text, '\n'); i > 0 && text[i-1] == '\r' {
			layout.Newline = "\r\n"
		}
	}

	if pos.Column >= 0 && pos.Column <= len(row) && strings.TrimSpace(row[pos.Column:]) != "" {
		layout.BreakAfter = true
	}

	return layout
}

// SingleInsert returns one edit that inserts n comment lines at pos, each
// "// " + value on its own line.
func SingleInsert(pos models.Position, n int, value string, layout Layout) []models.Edit {
	if n <= 0 {
		return nil
	}

	text := strings.Repeat(layout.Newline+"// "+value, n)
	if layout.BreakAfter {
		text += layout.Newline
	}

	return []models.Edit{{Position: pos, Text: text}}
}

// IterativeInsert returns n edits at the same position, numbered from 1.
// Buffer.ApplyEdits keeps issue order for edits sharing a position, so the
// lines end up ascending from top to bottom.
func IterativeInsert(pos models.Position, n int, layout Layout) []models.Edit {
	edits := make([]models.Edit, 0, max(n, 0))
	for i := 1; i <= n; i++ {
		text := fmt.Sprintf("%s// %s %d", layout.Newline, IterativeCommentText, i)
		if i == n && layout.BreakAfter {
			text += layout.Newline
		}
		edits = append(edits, models.Edit{Position: pos, Text: text})
	}
	return edits
}

// BuildInsertions builds the edits for the named insertion mode.
func BuildInsertions(mode string, pos models.Position, n int, value string, layout Layout) ([]models.Edit, error) {
	switch mode {
	case models.InsertSingle, "":
		return SingleInsert(pos, n, value, layout), nil
	case models.InsertIterative:
		return IterativeInsert(pos, n, layout), nil
	default:
		return nil, fmt.Errorf("unknown insert mode %q", mode)
	}
}
