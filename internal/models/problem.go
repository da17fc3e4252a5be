package models

import "strings"

// DefaultPassingScore is the score threshold applied when a problem does
// not carry an explicit passing_score.
const DefaultPassingScore = 80.0

type LearningResource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Pattern is a server-curated reference implementation for a problem. The
// primary pattern's example code backs the show-solution affordance.
type Pattern struct {
	Name        string `json:"name"`
	IsPrimary   bool   `json:"is_primary"`
	ExampleCode string `json:"example_code"`
}

type Problem struct {
	ID                   FlexID             `json:"id"`
	ProblemID            FlexID             `json:"problem_id,omitempty"`
	Slug                 string             `json:"slug"`
	Title                string             `json:"title"`
	Description          string             `json:"description"`
	Framework            FrameworkRef       `json:"framework"`
	Difficulty           Difficulty         `json:"difficulty"`
	IsPremium            bool               `json:"is_premium"`
	AcceptanceRate       Number             `json:"acceptance_rate"`
	PassingScore         Number             `json:"passing_score"`
	EstimatedTimeMinutes int                `json:"estimated_time_minutes"`
	TargetArea           string             `json:"target_area,omitempty"`
	Tags                 []string           `json:"tags,omitempty"`
	Hints                []string           `json:"hints,omitempty"`
	LearningResources    []LearningResource `json:"learning_resources,omitempty"`
	Patterns             []Pattern          `json:"patterns,omitempty"`
}

// PassingThreshold returns the score a submission must reach to pass.
func (p *Problem) PassingThreshold() float64 {
	if p.PassingScore > 0 {
		return p.PassingScore.Float()
	}
	return DefaultPassingScore
}

// PrimaryPattern returns the primary reference pattern, or nil.
func (p *Problem) PrimaryPattern() *Pattern {
	for i := range p.Patterns {
		if p.Patterns[i].IsPrimary {
			return &p.Patterns[i]
		}
	}
	return nil
}

type StarterCode struct {
	ContextCode string `json:"context_code"`
	StarterCode string `json:"starter_code"`
}

// Combined returns the read-only editor pane content: context code above
// the starter scaffold.
func (s StarterCode) Combined() string {
	return strings.TrimSpace(s.ContextCode + "\n\n" + s.StarterCode)
}

// ProblemStats mirrors /api/problems/stats/.
type ProblemStats struct {
	Total        int            `json:"total"`
	ByDifficulty map[string]int `json:"by_difficulty,omitempty"`
	ByFramework  map[string]int `json:"by_framework,omitempty"`
}
