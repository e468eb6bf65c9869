package analyzer

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rg0now/c-comment-ratio/pkg/config"
	"github.com/rg0now/c-comment-ratio/pkg/models"
	"github.com/rg0now/c-comment-ratio/pkg/syntax"
)

var (
	// ErrCursorOutsideFunction is returned when no function definition
	// contains the requested line.
	ErrCursorOutsideFunction = errors.New("cursor is not inside a function")

	// ErrMalformedFunctionBody marks a function whose body has no opening
	// brace to insert after.
	ErrMalformedFunctionBody = errors.New("function body has no opening brace")
)

// Analysis is the result of analyzing the function around a cursor line.
type Analysis struct {
	Result models.AnalysisResult

	// InsertAt is the position just after the body's opening brace.
	// Only meaningful when InsertErr is nil.
	InsertAt models.Position

	// InsertErr is ErrMalformedFunctionBody when no insertion point exists.
	InsertErr error
}

// Analyzer runs the parse, locate, classify and compute pipeline.
type Analyzer struct {
	cfg    config.Config
	parser *syntax.Parser
	log    *zap.SugaredLogger
}

// NewAnalyzer creates a new Analyzer. cfg must already be validated.
func NewAnalyzer(cfg config.Config, log *zap.SugaredLogger) *Analyzer {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Analyzer{
		cfg:    cfg,
		parser: syntax.NewParser(),
		log:    log,
	}
}

// Analyze measures the function enclosing the zero-based line in source.
// file is only used to label the result.
func (a *Analyzer) Analyze(ctx context.Context, file, source string, line int) (*Analysis, error) {
	src := []byte(source)

	tree, err := a.parser.Parse(ctx, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	fn := FindEnclosingFunction(tree.Root(), line)
	if fn == nil {
		return nil, fmt.Errorf("line %d: %w", line+1, ErrCursorOutsideFunction)
	}

	name := FunctionName(fn, src)
	a.log.Debugw("located enclosing function",
		"function", name,
		"start_row", fn.StartPoint().Row,
		"end_row", fn.EndPoint().Row,
	)

	analysis, err := a.measure(fn, SplitLines(source))
	if err != nil {
		return nil, err
	}
	analysis.Result.File = file
	analysis.Result.Function = name

	return analysis, nil
}

// AnalyzeNode measures an already located function node. It is the entry
// point for callers that own their own syntax tree.
func (a *Analyzer) AnalyzeNode(fn syntax.Node, lines []string) (*Analysis, error) {
	if fn == nil {
		return nil, ErrCursorOutsideFunction
	}
	return a.measure(fn, lines)
}

// measure classifies fn and computes the report and insertion point.
func (a *Analyzer) measure(fn syntax.Node, lines []string) (*Analysis, error) {
	class, err := Classify(a.cfg.Policy, fn, lines)
	if err != nil {
		return nil, fmt.Errorf("failed to classify function: %w", err)
	}

	need := ComputeNeeded(class.CommentLines.Len(), class.Total, a.cfg.MinCommentRatio)

	analysis := &Analysis{
		Result: models.AnalysisResult{
			ID:              uuid.NewString(),
			StartLine:       fn.StartPoint().Row + 1,
			EndLine:         fn.EndPoint().Row + 1,
			CodeLines:       class.CodeLines.Len(),
			CommentLines:    class.CommentLines.Len(),
			Total:           class.Total,
			Ratio:           class.Ratio,
			MinCommentRatio: a.cfg.MinCommentRatio,
			NeedComment:     need,
			Status:          Status(need),
			Policy:          a.policyName(),
		},
	}

	if pt, ok := BodyInsertionPoint(fn); ok {
		analysis.InsertAt = models.Position{Row: pt.Row, Column: pt.Column}
	} else {
		analysis.InsertErr = ErrMalformedFunctionBody
	}

	a.log.Debugw("classified function",
		"code_lines", analysis.Result.CodeLines,
		"comment_lines", analysis.Result.CommentLines,
		"ratio", analysis.Result.Ratio,
		"need_comment", need,
	)

	return analysis, nil
}

func (a *Analyzer) policyName() string {
	if a.cfg.Policy == "" {
		return models.PolicyFirstPass
	}
	return a.cfg.Policy
}
