package editor

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rg0now/c-comment-ratio/pkg/models"
)

// ErrInvalidPosition is returned when an edit points outside the document.
var ErrInvalidPosition = errors.New("position outside document")

// Document is the host editor's view of one open document.
type Document interface {
	Text() string
	// ApplyEdits applies every edit against the current text as one
	// transaction: either all edits apply or none do.
	ApplyEdits(edits []models.Edit) error
}

// Buffer is an in-memory Document.
type Buffer struct {
	text string
}

// NewBuffer creates a Buffer holding text.
func NewBuffer(text string) *Buffer {
	return &Buffer{text: text}
}

// Text returns the current contents.
func (b *Buffer) Text() string {
	return b.text
}

// ApplyEdits inserts every edit at its position in the pre-edit text.
// Edits sharing a position are inserted in the order given, so the first
// one ends up before the others.
func (b *Buffer) ApplyEdits(edits []models.Edit) error {
	if len(edits) == 0 {
		return nil
	}

	type located struct {
		offset int
		text   string
	}

	// Resolve every position before touching the text.
	resolved := make([]located, 0, len(edits))
	for _, e := range edits {
		off, err := offsetOf(b.text, e.Position)
		if err != nil {
			return err
		}
		resolved = append(resolved, located{offset: off, text: e.Text})
	}

	sort.SliceStable(resolved, func(i, j int) bool {
		return resolved[i].offset < resolved[j].offset
	})

	var sb strings.Builder
	prev := 0
	for _, r := range resolved {
		sb.WriteString(b.text[prev:r.offset])
		sb.WriteString(r.text)
		prev = r.offset
	}
	sb.WriteString(b.text[prev:])

	b.text = sb.String()
	return nil
}

// offsetOf converts a row/byte-column position into a byte offset.
func offsetOf(text string, pos models.Position) (int, error) {
	if pos.Row < 0 || pos.Column < 0 {
		return 0, fmt.Errorf("%w: %d:%d", ErrInvalidPosition, pos.Row, pos.Column)
	}

	off := 0
	for row := 0; row < pos.Row; row++ {
		nl := strings.IndexByte(text[off:], '\n')
		if nl < 0 {
			return 0, fmt.Errorf("%w: row %d past last row %d", ErrInvalidPosition, pos.Row, row)
		}
		off += nl + 1
	}

	lineEnd := strings.IndexByte(text[off:], '\n')
	if lineEnd < 0 {
		lineEnd = len(text) - off
	}
	if pos.Column > lineEnd {
		return 0, fmt.Errorf("%w: column %d past end of row %d", ErrInvalidPosition, pos.Column, pos.Row)
	}

	return off + pos.Column, nil
}
