package models

import "encoding/json"

// ProgressRecord is the backend's per-problem progress snapshot. Upstream
// keys records inconsistently: the "problem" field may be a nested object
// with slug and id, a bare numeric id, or a string id. Both candidate keys
// are captured so lookups can try each.
type ProgressRecord struct {
	ProblemSlug   string
	ProblemIDKey  string
	IsSolved      bool
	BestScore     Number
	TotalAttempts int
}

func (r *ProgressRecord) UnmarshalJSON(data []byte) error {
	var raw struct {
		Problem       json.RawMessage `json:"problem"`
		IsSolved      bool            `json:"is_solved"`
		BestScore     Number          `json:"best_score"`
		TotalAttempts int             `json:"total_attempts"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.IsSolved = raw.IsSolved
	r.BestScore = raw.BestScore
	r.TotalAttempts = raw.TotalAttempts
	r.ProblemSlug = ""
	r.ProblemIDKey = ""

	if len(raw.Problem) == 0 {
		return nil
	}
	var obj struct {
		Slug string `json:"slug"`
		ID   FlexID `json:"id"`
	}
	if err := json.Unmarshal(raw.Problem, &obj); err == nil && (obj.Slug != "" || obj.ID != "") {
		r.ProblemSlug = obj.Slug
		r.ProblemIDKey = obj.ID.String()
		return nil
	}
	var id FlexID
	if err := json.Unmarshal(raw.Problem, &id); err == nil {
		r.ProblemIDKey = id.String()
	}
	return nil
}
