package editor

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/rg0now/c-comment-ratio/pkg/analyzer"
	"github.com/rg0now/c-comment-ratio/pkg/config"
	"github.com/rg0now/c-comment-ratio/pkg/models"
)

// ErrNoActiveContext means there is no document or cursor to work on.
var ErrNoActiveContext = errors.New("no active document")

// Notifier shows informational messages to the user.
type Notifier interface {
	Notify(msg string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(msg string)

// Notify calls f(msg).
func (f NotifierFunc) Notify(msg string) { f(msg) }

// Command is the "pad comments" editor command.
type Command struct {
	cfg      config.Config
	analyzer *analyzer.Analyzer
	notifier Notifier
	log      *zap.SugaredLogger

	// DryRun computes edits without applying them.
	DryRun bool
}

// NewCommand creates a Command. cfg must already be validated.
func NewCommand(cfg config.Config, notifier Notifier, log *zap.SugaredLogger) *Command {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if notifier == nil {
		notifier = NotifierFunc(func(string) {})
	}
	return &Command{
		cfg:      cfg,
		analyzer: analyzer.NewAnalyzer(cfg, log),
		notifier: notifier,
		log:      log,
	}
}

// Run analyzes the function around the zero-based cursor line of doc and,
// when it is under-commented, inserts placeholder comments after the body's
// opening brace.
//
// A cursor outside any function and a malformed body are not errors: the
// first is reported through the Notifier, the second skips the edit.
// ErrNoActiveContext is returned when doc is nil or cursor is negative.
func (c *Command) Run(ctx context.Context, doc Document, file string, cursor int) (models.Outcome, error) {
	if doc == nil || cursor < 0 {
		return models.Outcome{}, ErrNoActiveContext
	}

	text := doc.Text()

	analysis, err := c.analyzer.Analyze(ctx, file, text, cursor)
	if err != nil {
		if errors.Is(err, analyzer.ErrCursorOutsideFunction) {
			msg := fmt.Sprintf("Line %d is not inside a function.", cursor+1)
			c.notifier.Notify(msg)
			return models.Outcome{Message: msg}, nil
		}
		return models.Outcome{}, fmt.Errorf("failed to analyze %s: %w", file, err)
	}

	outcome := models.Outcome{Result: analysis.Result}
	need := analysis.Result.NeedComment
	if need == 0 {
		return outcome, nil
	}

	if analysis.InsertErr != nil {
		c.log.Debugw("skipping insertion",
			"function", analysis.Result.Function,
			"error", analysis.InsertErr,
		)
		return outcome, nil
	}

	layout := LayoutAt(text, analysis.InsertAt)
	edits, err := BuildInsertions(c.cfg.InsertMode, analysis.InsertAt, need, c.cfg.AutoInsertCommentValue, layout)
	if err != nil {
		return outcome, err
	}
	outcome.Edits = edits

	if c.DryRun {
		return outcome, nil
	}

	if err := doc.ApplyEdits(edits); err != nil {
		return outcome, fmt.Errorf("failed to apply edits: %w", err)
	}
	outcome.Applied = true

	c.log.Infow("inserted placeholder comments",
		"function", analysis.Result.Function,
		"count", need,
		"mode", c.cfg.InsertMode,
	)

	return outcome, nil
}
