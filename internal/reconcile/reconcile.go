// Package reconcile merges paginated problem lists with sparse progress
// records and profile statistics into consistent per-problem and
// aggregate views. The backend keys progress records inconsistently, by
// slug, numeric id, or stringified id, so lookups run a fixed fallback
// chain instead of assuming one canonical key. Everything here is
// defensive: malformed upstream data degrades to zeroed stats, never to
// a panic.
package reconcile

import (
	"math"

	"github.com/odai307/gagoforge-client/internal/models"
)

// Status is the per-problem progress view. A problem with no matching
// record reads as unattempted with zeroed fields.
type Status struct {
	IsSolved      bool
	IsAttempted   bool
	BestScore     float64
	TotalAttempts int
}

// Index is a multi-key progress lookup. Each record is registered under
// every identity it carries so callers can resolve a problem by slug or
// by either id shape.
type Index struct {
	bySlug map[string]*models.ProgressRecord
	byID   map[string]*models.ProgressRecord
}

// BuildIndex registers every record under all of its alternate keys.
// Last write wins on collision; collisions are not expected from a
// server-sorted response but must not fail.
func BuildIndex(records []models.ProgressRecord) *Index {
	idx := &Index{
		bySlug: make(map[string]*models.ProgressRecord, len(records)),
		byID:   make(map[string]*models.ProgressRecord, len(records)),
	}
	for i := range records {
		rec := &records[i]
		if rec.ProblemSlug != "" {
			idx.bySlug[rec.ProblemSlug] = rec
		}
		if rec.ProblemIDKey != "" {
			idx.byID[rec.ProblemIDKey] = rec
		}
	}
	return idx
}

// Lookup resolves a problem's progress by slug, then id, then the
// secondary problem_id. Anonymous callers always read unattempted.
func (idx *Index) Lookup(p *models.Problem, authenticated bool) Status {
	if idx == nil || p == nil || !authenticated {
		return Status{}
	}
	rec := idx.bySlug[p.Slug]
	if rec == nil && p.ID != "" {
		rec = idx.byID[p.ID.String()]
	}
	if rec == nil && p.ProblemID != "" {
		rec = idx.byID[p.ProblemID.String()]
	}
	if rec == nil {
		return Status{}
	}
	return Status{
		IsSolved:      rec.IsSolved,
		IsAttempted:   rec.TotalAttempts > 0 || rec.IsSolved,
		BestScore:     rec.BestScore.Float(),
		TotalAttempts: rec.TotalAttempts,
	}
}

// ProgressState selects a slice of the problem list by solve status.
type ProgressState string

const (
	StateAll         ProgressState = "all"
	StateSolved      ProgressState = "solved"
	StateAttempted   ProgressState = "attempted"
	StateUnattempted ProgressState = "unattempted"
)

// FilterByState returns the problems matching state, preserving input
// order. "attempted" means attempted but not yet solved. Unknown states
// behave like StateAll.
func FilterByState(problems []models.Problem, idx *Index, authenticated bool, state ProgressState) []models.Problem {
	if state == StateAll || state == "" {
		return problems
	}
	out := make([]models.Problem, 0, len(problems))
	for i := range problems {
		st := idx.Lookup(&problems[i], authenticated)
		keep := true
		switch state {
		case StateSolved:
			keep = st.IsSolved
		case StateAttempted:
			keep = st.IsAttempted && !st.IsSolved
		case StateUnattempted:
			keep = !st.IsAttempted
		}
		if keep {
			out = append(out, problems[i])
		}
	}
	return out
}

// Counts holds the solved/attempted/unattempted breakdown of a problem
// set under the active filter.
type Counts struct {
	Total       int
	Solved      int
	Attempted   int
	Unattempted int
}

func CountByState(problems []models.Problem, idx *Index, authenticated bool) Counts {
	c := Counts{Total: len(problems)}
	for i := range problems {
		st := idx.Lookup(&problems[i], authenticated)
		switch {
		case st.IsSolved:
			c.Solved++
		case st.IsAttempted:
			c.Attempted++
		default:
			c.Unattempted++
		}
	}
	return c
}

// ByFramework groups problems by framework track and computes solved
// counts and proficiency per group. Known frameworks come out in
// canonical order; anything unrecognized follows in first-seen order.
func ByFramework(problems []models.Problem, idx *Index, authenticated bool) []models.FrameworkStat {
	type group struct {
		total  int
		solved int
	}
	groups := make(map[string]*group)
	order := make([]string, 0, len(models.Frameworks))
	for _, f := range models.Frameworks {
		groups[string(f)] = &group{}
		order = append(order, string(f))
	}
	for i := range problems {
		name := string(problems[i].Framework.Framework())
		if name == "" {
			continue
		}
		g, ok := groups[name]
		if !ok {
			g = &group{}
			groups[name] = g
			order = append(order, name)
		}
		g.total++
		if idx.Lookup(&problems[i], authenticated).IsSolved {
			g.solved++
		}
	}
	stats := make([]models.FrameworkStat, 0, len(order))
	for _, name := range order {
		g := groups[name]
		if g.total == 0 {
			continue
		}
		stats = append(stats, models.FrameworkStat{
			Name:        name,
			Solved:      g.solved,
			Total:       g.total,
			Proficiency: percentage(g.solved, g.total),
			Remaining:   g.total - g.solved,
		})
	}
	return stats
}

// ByDifficulty is the difficulty-keyed counterpart of ByFramework. Each
// stat carries the level's presentation color tag.
func ByDifficulty(problems []models.Problem, idx *Index, authenticated bool) []models.DifficultyStat {
	type group struct {
		total  int
		solved int
	}
	groups := make(map[models.Difficulty]*group)
	order := make([]models.Difficulty, 0, len(models.Difficulties))
	for _, d := range models.Difficulties {
		groups[d] = &group{}
		order = append(order, d)
	}
	for i := range problems {
		level := problems[i].Difficulty
		if level == "" {
			continue
		}
		g, ok := groups[level]
		if !ok {
			g = &group{}
			groups[level] = g
			order = append(order, level)
		}
		g.total++
		if idx.Lookup(&problems[i], authenticated).IsSolved {
			g.solved++
		}
	}
	stats := make([]models.DifficultyStat, 0, len(order))
	for _, level := range order {
		g := groups[level]
		if g.total == 0 {
			continue
		}
		stats = append(stats, models.DifficultyStat{
			Level:      string(level),
			Solved:     g.solved,
			Total:      g.total,
			Percentage: percentage(g.solved, g.total),
			Remaining:  g.total - g.solved,
			Color:      level.Config().Color,
		})
	}
	return stats
}

// AverageAcceptance returns the mean acceptance rate across problems,
// rounded to the nearest integer. Empty input yields 0.
func AverageAcceptance(problems []models.Problem) int {
	if len(problems) == 0 {
		return 0
	}
	var sum float64
	for i := range problems {
		sum += problems[i].AcceptanceRate.Float()
	}
	return int(math.Round(sum / float64(len(problems))))
}

// Overview is the profile header view derived from a stats summary.
type Overview struct {
	TotalSolved      int
	TotalAttempted   int
	TotalSubmissions int
	GlobalRank       int
	Streaks          models.Streaks
	Level            int
	Experience       int
	LevelProgress    int
	SolvedPercentage int
}

// BuildOverview derives level and progress figures from summary counts.
// Experience is the accumulated total score when present, otherwise 100
// points per solved problem. Every 1000 experience points is one level.
func BuildOverview(summary *models.StatsSummary) Overview {
	if summary == nil {
		return Overview{Level: 1}
	}
	xp := int(summary.Overview.TotalScore.Float())
	if xp <= 0 {
		xp = summary.Overview.TotalProblemsSolved * 100
	}
	// Older backends report solved counts without attempted totals; fall
	// back so a user with solves never reads 0%.
	attempted := summary.Overview.TotalProblemsAttempted
	if attempted == 0 {
		attempted = summary.Overview.TotalProblemsSolved
	}
	return Overview{
		TotalSolved:      summary.Overview.TotalProblemsSolved,
		TotalAttempted:   summary.Overview.TotalProblemsAttempted,
		TotalSubmissions: summary.Overview.TotalSubmissions,
		GlobalRank:       summary.Overview.GlobalRank,
		Streaks:          summary.Streaks,
		Level:            xp/1000 + 1,
		Experience:       xp,
		LevelProgress:    percentage(xp%1000, 1000),
		SolvedPercentage: percentage(summary.Overview.TotalProblemsSolved, attempted),
	}
}

// SlugIndex maps every problem id shape to its slug. The submissions
// history only carries problem ids; this joins them back to slugs for
// links and titles.
func SlugIndex(problems []models.Problem) map[string]string {
	m := make(map[string]string, len(problems))
	for i := range problems {
		p := &problems[i]
		if p.Slug == "" {
			continue
		}
		if p.ID != "" {
			m[p.ID.String()] = p.Slug
		}
		if p.ProblemID != "" {
			m[p.ProblemID.String()] = p.Slug
		}
	}
	return m
}

// percentage rounds half up and never divides by zero.
func percentage(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
