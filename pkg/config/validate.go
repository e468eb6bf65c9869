package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/rg0now/c-comment-ratio/pkg/models"
)

// Validate checks that all configuration values are usable.
// Returns an error wrapping ErrInvalidConfiguration for the first failure.
func (c *Config) Validate() error {
	if math.IsNaN(c.MinCommentRatio) || c.MinCommentRatio < 0 || c.MinCommentRatio >= 1 {
		return fmt.Errorf("%w: min_comment_ratio must be in [0, 1), got %v", ErrInvalidConfiguration, c.MinCommentRatio)
	}

	// A line break would leave the rest of the value uncommented.
	if strings.ContainsAny(c.AutoInsertCommentValue, "\r\n") {
		return fmt.Errorf("%w: auto_insert_comment_value must be a single line, got %q",
			ErrInvalidConfiguration, c.AutoInsertCommentValue)
	}

	switch c.Policy {
	case models.PolicyFirstPass, models.PolicyTwoPhase:
	default:
		return fmt.Errorf("%w: policy must be %q or %q, got %q",
			ErrInvalidConfiguration, models.PolicyFirstPass, models.PolicyTwoPhase, c.Policy)
	}

	switch c.InsertMode {
	case models.InsertSingle, models.InsertIterative:
	default:
		return fmt.Errorf("%w: insert_mode must be %q or %q, got %q",
			ErrInvalidConfiguration, models.InsertSingle, models.InsertIterative, c.InsertMode)
	}

	return nil
}
