package analyzer

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rg0now/c-comment-ratio/pkg/config"
	"github.com/rg0now/c-comment-ratio/pkg/models"
	"github.com/rg0now/c-comment-ratio/pkg/syntax"
)

func TestAnalyzeUndercommented(t *testing.T) {
	a := NewAnalyzer(config.Default(), nil)

	analysis, err := a.Analyze(context.Background(), "sum.c", loadFixture(t, "sum.c"), 4)
	require.NoError(t, err)

	r := analysis.Result
	assert.Equal(t, "sum.c", r.File)
	assert.Equal(t, "sum", r.Function)
	assert.Equal(t, 1, r.StartLine)
	assert.Equal(t, 8, r.EndLine)
	assert.Equal(t, 8, r.CodeLines)
	assert.Equal(t, 0, r.CommentLines)
	assert.Equal(t, 8, r.Total)
	assert.Equal(t, 0.0, r.Ratio)
	assert.Equal(t, 0.25, r.MinCommentRatio)
	assert.Equal(t, 3, r.NeedComment)
	assert.Equal(t, models.StatusNeedsComments, r.Status)
	assert.Equal(t, models.PolicyFirstPass, r.Policy)

	_, err = uuid.Parse(r.ID)
	assert.NoError(t, err)

	assert.NoError(t, analysis.InsertErr)
	assert.Equal(t, models.Position{Row: 1, Column: 1}, analysis.InsertAt)
}

func TestAnalyzeAtMinimum(t *testing.T) {
	cfg := config.Default()
	cfg.Policy = models.PolicyTwoPhase
	a := NewAnalyzer(cfg, nil)

	analysis, err := a.Analyze(context.Background(), "max.c", loadFixture(t, "max.c"), 3)
	require.NoError(t, err)

	r := analysis.Result
	assert.Equal(t, 6, r.CodeLines)
	assert.Equal(t, 2, r.CommentLines)
	assert.Equal(t, 8, r.Total)
	assert.InDelta(t, 0.25, r.Ratio, 1e-12)
	assert.Equal(t, 0, r.NeedComment)
	assert.Equal(t, models.StatusOK, r.Status)
	assert.Equal(t, models.PolicyTwoPhase, r.Policy)
}

func TestAnalyzeOutsideFunction(t *testing.T) {
	a := NewAnalyzer(config.Default(), nil)

	_, err := a.Analyze(context.Background(), "globals.c", loadFixture(t, "globals.c"), 2)
	assert.ErrorIs(t, err, ErrCursorOutsideFunction)
}

func TestAnalyzePaddedSourceMeetsMinimum(t *testing.T) {
	src := loadFixture(t, "sum.c")
	cfg := config.Default()
	a := NewAnalyzer(cfg, nil)

	before, err := a.Analyze(context.Background(), "sum.c", src, 0)
	require.NoError(t, err)
	require.Equal(t, 3, before.Result.NeedComment)

	// Insert the placeholder lines right after the opening brace.
	lines := SplitLines(src)
	row := before.InsertAt.Row
	var padded []string
	padded = append(padded, lines[:row+1]...)
	for i := 0; i < before.Result.NeedComment; i++ {
		padded = append(padded, "// "+cfg.AutoInsertCommentValue)
	}
	padded = append(padded, lines[row+1:]...)

	after, err := a.Analyze(context.Background(), "sum.c", strings.Join(padded, "\n"), 0)
	require.NoError(t, err)
	assert.Equal(t, 3, after.Result.CommentLines)
	assert.Equal(t, 8, after.Result.CodeLines)
	assert.GreaterOrEqual(t, after.Result.Ratio, cfg.MinCommentRatio)
	assert.Equal(t, 0, after.Result.NeedComment)
}

func TestAnalyzeNode(t *testing.T) {
	a := NewAnalyzer(config.Default(), nil)

	_, err := a.AnalyzeNode(nil, nil)
	assert.ErrorIs(t, err, ErrCursorOutsideFunction)

	// No body: the report is still produced but nothing can be inserted.
	fn := node(syntax.TypeFunctionDefinition, 0, 3)
	analysis, err := a.AnalyzeNode(fn, []string{"a", "b", "c", "d"})
	require.NoError(t, err)
	assert.Equal(t, 4, analysis.Result.CodeLines)
	assert.Equal(t, 2, analysis.Result.NeedComment)
	assert.ErrorIs(t, analysis.InsertErr, ErrMalformedFunctionBody)

	// Empty function.
	analysis, err = a.AnalyzeNode(node(syntax.TypeFunctionDefinition, 0, 1), []string{"", ""})
	require.NoError(t, err)
	assert.Equal(t, 0, analysis.Result.Total)
	assert.Equal(t, 0.0, analysis.Result.Ratio)
	assert.Equal(t, 0, analysis.Result.NeedComment)
}

func TestAnalyzeUnknownPolicy(t *testing.T) {
	cfg := config.Default()
	cfg.Policy = "greedy"
	a := NewAnalyzer(cfg, nil)

	_, err := a.Analyze(context.Background(), "sum.c", loadFixture(t, "sum.c"), 0)
	assert.Error(t, err)
}
