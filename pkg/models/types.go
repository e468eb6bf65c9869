package models

// AnalysisResult is the comment ratio report for one C function.
type AnalysisResult struct {
	ID        string `json:"id"`        // unique per invocation
	File      string `json:"file"`      // "-" for stdin
	Function  string `json:"function"`  // e.g., "parse_header"
	StartLine int    `json:"start_line"` // 1-based, inclusive
	EndLine   int    `json:"end_line"`   // 1-based, inclusive

	// Counts.
	CodeLines    int     `json:"code_lines"`
	CommentLines int     `json:"comment_lines"`
	Total        int     `json:"total"`
	Ratio        float64 `json:"ratio"`

	// Threshold.
	MinCommentRatio float64 `json:"min_comment_ratio"`
	NeedComment     int     `json:"need_comment"`
	Status          string  `json:"status"` // ok, needs_comments
	Policy          string  `json:"policy"` // first-pass, two-phase
}

// Position is a zero-based row/column location in a document.
type Position struct {
	Row    int `json:"row"`
	Column int `json:"column"` // byte offset within the row
}

// Edit inserts Text at Position.
type Edit struct {
	Position Position `json:"position"`
	Text     string   `json:"text"`
}

// Outcome describes what an editor command invocation did.
type Outcome struct {
	Result  AnalysisResult `json:"result"`
	Edits   []Edit         `json:"edits,omitempty"`
	Applied bool           `json:"applied"`
	Message string         `json:"message,omitempty"` // user-facing notice
}

// Status constants.
const (
	StatusOK            = "ok"
	StatusNeedsComments = "needs_comments"
)

// Classification policies.
const (
	PolicyFirstPass = "first-pass" // single walk, comment rows take priority
	PolicyTwoPhase  = "two-phase"  // comment walk, then code walk over unclaimed rows
)

// Insertion modes.
const (
	InsertSingle    = "single"    // one edit carrying every comment line
	InsertIterative = "iterative" // one edit per comment line at the same position
)
