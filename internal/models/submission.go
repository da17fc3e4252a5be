package models

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Verdicts assigned by the validation backend.
const (
	VerdictAccepted        = "accepted"
	VerdictPartiallyPassed = "partially_passed"
	VerdictFailed          = "failed"
	VerdictSyntaxError     = "syntax_error"
	VerdictPending         = "pending"
)

// Feedback item severities.
const (
	FeedbackError   = "error"
	FeedbackWarning = "warning"
	FeedbackInfo    = "info"
)

type FeedbackItem struct {
	Type       string `json:"type"`
	Line       int    `json:"line,omitempty"`
	Column     int    `json:"column,omitempty"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

type SubmissionRequest struct {
	Problem   string `json:"problem"`
	Code      string `json:"code"`
	Language  string `json:"language"`
	HintsUsed int    `json:"hints_used"`
}

func (r *SubmissionRequest) Validate() error {
	if r.Problem == "" {
		return errors.New("problem is required")
	}
	if strings.TrimSpace(r.Code) == "" {
		return errors.New("solution code cannot be empty")
	}
	return nil
}

// SubmissionResult is the per-submit verdict payload. It is ephemeral:
// held in workflow session state only, never persisted client-side.
type SubmissionResult struct {
	Verdict           string          `json:"verdict"`
	Score             Number          `json:"score"`
	Feedback          []FeedbackItem  `json:"feedback,omitempty"`
	ExecutionTimeMs   Number          `json:"execution_time_ms,omitempty"`
	MatchedPatterns   []string        `json:"matched_patterns,omitempty"`
	ValidationResults json.RawMessage `json:"validation_results,omitempty"`
}

// Submission is a history row from the submissions listing.
type Submission struct {
	ID           FlexID       `json:"id"`
	Problem      FlexID       `json:"problem"`
	ProblemTitle string       `json:"problem_title,omitempty"`
	Framework    FrameworkRef `json:"framework,omitempty"`
	Verdict      string       `json:"verdict"`
	Score        Number       `json:"score"`
	Language     string       `json:"language,omitempty"`
	HintsUsed    int          `json:"hints_used,omitempty"`
	Code         string       `json:"code,omitempty"`
	SubmittedAt  time.Time    `json:"submitted_at"`
}

// SubmissionStats mirrors /api/submissions/statistics/.
type SubmissionStats struct {
	Total       int            `json:"total"`
	Accepted    int            `json:"accepted"`
	ByVerdict   map[string]int `json:"by_verdict,omitempty"`
	SuccessRate Number         `json:"success_rate"`
}
