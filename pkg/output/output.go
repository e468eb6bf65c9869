package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rg0now/c-comment-ratio/pkg/models"
)

// Writer emits analysis results as JSON lines or text reports.
type Writer struct {
	out    io.Writer
	closer io.Closer
	enc    *json.Encoder
}

// NewWriter opens path for writing. An empty path or "-" means stdout.
func NewWriter(path string) (*Writer, error) {
	if path == "" || path == "-" {
		return NewStreamWriter(os.Stdout), nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %s: %w", path, err)
	}

	w := NewStreamWriter(f)
	w.closer = f
	return w, nil
}

// NewStreamWriter writes to out, which it never closes.
func NewStreamWriter(out io.Writer) *Writer {
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	return &Writer{out: out, enc: enc}
}

// WriteResult appends r as one JSON line.
func (w *Writer) WriteResult(r models.AnalysisResult) error {
	if err := w.enc.Encode(r); err != nil {
		return fmt.Errorf("failed to write result for %s: %w", r.Function, err)
	}
	return nil
}

// WriteReport writes the human-readable report for r.
func (w *Writer) WriteReport(r models.AnalysisResult) error {
	return PrintReport(w.out, r)
}

// Close closes the output file opened by NewWriter. Calling it again is a no-op.
func (w *Writer) Close() error {
	if w.closer == nil {
		return nil
	}
	err := w.closer.Close()
	w.closer = nil
	return err
}

// PrintReport prints the comment ratio report for one function.
func PrintReport(w io.Writer, r models.AnalysisResult) error {
	name := r.Function
	if name == "" {
		name = "<anonymous>"
	}

	lines := []string{
		fmt.Sprintf("Function: %s (lines %d-%d)", name, r.StartLine, r.EndLine),
		fmt.Sprintf("Code lines: %d", r.CodeLines),
		fmt.Sprintf("Comment lines: %d", r.CommentLines),
		fmt.Sprintf("Comment ratio: %.1f%% (minimum %.1f%%)", 100*r.Ratio, 100*r.MinCommentRatio),
		fmt.Sprintf("Comments needed: %d", r.NeedComment),
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}

	return nil
}
