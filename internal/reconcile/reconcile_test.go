package reconcile

import (
	"testing"

	"github.com/odai307/gagoforge-client/internal/models"
)

func problem(slug, id string, framework models.Framework, difficulty models.Difficulty) models.Problem {
	return models.Problem{
		ID:         models.FlexID(id),
		Slug:       slug,
		Framework:  models.FrameworkRef{Name: string(framework)},
		Difficulty: difficulty,
	}
}

func record(slug, idKey string, solved bool, attempts int) models.ProgressRecord {
	return models.ProgressRecord{
		ProblemSlug:   slug,
		ProblemIDKey:  idKey,
		IsSolved:      solved,
		TotalAttempts: attempts,
	}
}

// --- Lookup ---

func TestLookupSlugTakesPriorityOverID(t *testing.T) {
	idx := BuildIndex([]models.ProgressRecord{
		record("x", "7", true, 3),
		record("other", "1", false, 1),
	})
	p := problem("x", "1", models.FrameworkReact, models.DifficultyBeginner)

	st := idx.Lookup(&p, true)
	if !st.IsSolved {
		t.Errorf("IsSolved = %v, want true (slug match must win over id match)", st.IsSolved)
	}
	if st.TotalAttempts != 3 {
		t.Errorf("TotalAttempts = %d, want 3", st.TotalAttempts)
	}
}

func TestLookupFallsBackToID(t *testing.T) {
	idx := BuildIndex([]models.ProgressRecord{record("", "42", true, 1)})
	p := problem("no-such-slug", "42", models.FrameworkReact, models.DifficultyBeginner)

	if st := idx.Lookup(&p, true); !st.IsSolved {
		t.Errorf("IsSolved = %v, want true via id fallback", st.IsSolved)
	}
}

func TestLookupFallsBackToProblemID(t *testing.T) {
	idx := BuildIndex([]models.ProgressRecord{record("", "p-9", true, 1)})
	p := problem("no-such-slug", "1", models.FrameworkReact, models.DifficultyBeginner)
	p.ProblemID = "p-9"

	if st := idx.Lookup(&p, true); !st.IsSolved {
		t.Errorf("IsSolved = %v, want true via problem_id fallback", st.IsSolved)
	}
}

func TestLookupAnonymousReadsUnattempted(t *testing.T) {
	idx := BuildIndex([]models.ProgressRecord{record("x", "1", true, 5)})
	p := problem("x", "1", models.FrameworkReact, models.DifficultyBeginner)

	st := idx.Lookup(&p, false)
	if st.IsSolved || st.IsAttempted || st.BestScore != 0 || st.TotalAttempts != 0 {
		t.Errorf("anonymous lookup = %+v, want zero-value status", st)
	}
}

func TestLookupMissReadsUnattempted(t *testing.T) {
	idx := BuildIndex(nil)
	p := problem("x", "1", models.FrameworkReact, models.DifficultyBeginner)

	if st := idx.Lookup(&p, true); st.IsAttempted {
		t.Errorf("IsAttempted = %v, want false for missing record", st.IsAttempted)
	}
}

func TestLookupSolvedRecordWithZeroAttemptsReadsAttempted(t *testing.T) {
	// A solved record with a zeroed attempts counter must not land in the
	// unattempted bucket.
	idx := BuildIndex([]models.ProgressRecord{record("x", "1", true, 0)})
	p := problem("x", "1", models.FrameworkReact, models.DifficultyBeginner)

	st := idx.Lookup(&p, true)
	if !st.IsSolved || !st.IsAttempted {
		t.Errorf("status = %+v, want solved and attempted", st)
	}
	if got := CountByState([]models.Problem{p}, idx, true); got.Unattempted != 0 || got.Solved != 1 {
		t.Errorf("counts = %+v, want 1 solved, 0 unattempted", got)
	}
}

func TestBuildIndexCollisionLastWriteWins(t *testing.T) {
	idx := BuildIndex([]models.ProgressRecord{
		record("x", "", false, 1),
		record("x", "", true, 4),
	})
	p := problem("x", "", models.FrameworkReact, models.DifficultyBeginner)

	st := idx.Lookup(&p, true)
	if !st.IsSolved || st.TotalAttempts != 4 {
		t.Errorf("collision lookup = %+v, want the later record", st)
	}
}

// --- Filtering and counts ---

func TestFilterByStateAttempted(t *testing.T) {
	problems := []models.Problem{
		problem("a", "1", models.FrameworkReact, models.DifficultyBeginner),
		problem("b", "2", models.FrameworkReact, models.DifficultyBeginner),
		problem("c", "3", models.FrameworkReact, models.DifficultyBeginner),
	}
	idx := BuildIndex([]models.ProgressRecord{
		record("a", "1", true, 1),
		record("b", "2", false, 2),
	})

	got := FilterByState(problems, idx, true, StateAttempted)
	if len(got) != 1 || got[0].Slug != "b" {
		t.Fatalf("FilterByState(attempted) = %v, want exactly [b]", slugs(got))
	}
	if got := FilterByState(problems, idx, true, StateSolved); len(got) != 1 || got[0].Slug != "a" {
		t.Errorf("FilterByState(solved) = %v, want [a]", slugs(got))
	}
	if got := FilterByState(problems, idx, true, StateUnattempted); len(got) != 1 || got[0].Slug != "c" {
		t.Errorf("FilterByState(unattempted) = %v, want [c]", slugs(got))
	}
	if got := FilterByState(problems, idx, true, StateAll); len(got) != 3 {
		t.Errorf("FilterByState(all) kept %d problems, want 3", len(got))
	}
}

func TestFilterByStatePreservesOrder(t *testing.T) {
	problems := []models.Problem{
		problem("z", "1", models.FrameworkReact, models.DifficultyBeginner),
		problem("a", "2", models.FrameworkReact, models.DifficultyBeginner),
		problem("m", "3", models.FrameworkReact, models.DifficultyBeginner),
	}
	got := FilterByState(problems, BuildIndex(nil), true, StateUnattempted)
	want := []string{"z", "a", "m"}
	for i, s := range slugs(got) {
		if s != want[i] {
			t.Fatalf("order = %v, want %v", slugs(got), want)
		}
	}
}

func TestCountByState(t *testing.T) {
	problems := []models.Problem{
		problem("a", "1", models.FrameworkReact, models.DifficultyBeginner),
		problem("b", "2", models.FrameworkReact, models.DifficultyBeginner),
		problem("c", "3", models.FrameworkReact, models.DifficultyBeginner),
	}
	idx := BuildIndex([]models.ProgressRecord{
		record("a", "1", true, 1),
		record("b", "2", false, 2),
	})

	c := CountByState(problems, idx, true)
	if c.Solved != 1 || c.Attempted != 1 || c.Unattempted != 1 || c.Total != 3 {
		t.Errorf("CountByState = %+v, want 1/1/1 of 3", c)
	}
}

// --- Aggregation ---

func TestByFrameworkScenario(t *testing.T) {
	problems := []models.Problem{
		problem("a", "1", models.FrameworkReact, models.DifficultyBeginner),
		problem("b", "2", models.FrameworkReact, models.DifficultyBeginner),
		problem("c", "3", models.FrameworkReact, models.DifficultyBeginner),
	}
	idx := BuildIndex([]models.ProgressRecord{
		record("a", "1", true, 1),
		record("b", "2", false, 2),
	})

	stats := ByFramework(problems, idx, true)
	if len(stats) != 1 {
		t.Fatalf("len(stats) = %d, want 1", len(stats))
	}
	got := stats[0]
	if got.Name != "react" || got.Solved != 1 || got.Total != 3 || got.Proficiency != 33 {
		t.Errorf("react stat = %+v, want {react 1 3 33}", got)
	}
	if got.Remaining != 2 {
		t.Errorf("Remaining = %d, want 2", got.Remaining)
	}
}

func TestByFrameworkCanonicalOrder(t *testing.T) {
	problems := []models.Problem{
		problem("e1", "1", models.FrameworkExpress, models.DifficultyBeginner),
		problem("r1", "2", models.FrameworkReact, models.DifficultyBeginner),
		problem("d1", "3", models.FrameworkDjango, models.DifficultyBeginner),
	}
	stats := ByFramework(problems, BuildIndex(nil), true)
	want := []string{"react", "django", "express"}
	if len(stats) != len(want) {
		t.Fatalf("len(stats) = %d, want %d", len(stats), len(want))
	}
	for i, w := range want {
		if stats[i].Name != w {
			t.Errorf("stats[%d].Name = %q, want %q", i, stats[i].Name, w)
		}
	}
}

func TestByFrameworkToleratesObjectShapedFramework(t *testing.T) {
	p := models.Problem{Slug: "a", Framework: models.FrameworkRef{Name: "React"}}
	stats := ByFramework([]models.Problem{p}, BuildIndex(nil), true)
	if len(stats) != 1 || stats[0].Name != "react" {
		t.Errorf("stats = %+v, want one normalized react entry", stats)
	}
}

func TestByFrameworkSkipsMissingFramework(t *testing.T) {
	p := models.Problem{Slug: "a"}
	if stats := ByFramework([]models.Problem{p}, BuildIndex(nil), true); len(stats) != 0 {
		t.Errorf("stats = %+v, want empty for a problem with no framework", stats)
	}
}

func TestByDifficultyColors(t *testing.T) {
	problems := []models.Problem{
		problem("a", "1", models.FrameworkReact, models.DifficultyBeginner),
		problem("b", "2", models.FrameworkReact, models.DifficultyIntermediate),
		problem("c", "3", models.FrameworkReact, models.DifficultyPro),
		problem("d", "4", models.FrameworkReact, models.DifficultyVeteran),
	}
	stats := ByDifficulty(problems, BuildIndex(nil), true)
	wantColors := map[string]string{
		"beginner":     "success",
		"intermediate": "warning",
		"pro":          "error",
		"veteran":      "error",
	}
	for _, st := range stats {
		if st.Color != wantColors[st.Level] {
			t.Errorf("%s color = %q, want %q", st.Level, st.Color, wantColors[st.Level])
		}
	}
}

func TestProficiencyBounds(t *testing.T) {
	cases := []struct {
		solved, total, want int
	}{
		{0, 0, 0},
		{0, 10, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 2, 50},
		{10, 10, 100},
	}
	for _, tc := range cases {
		got := percentage(tc.solved, tc.total)
		if got != tc.want {
			t.Errorf("percentage(%d, %d) = %d, want %d", tc.solved, tc.total, got, tc.want)
		}
		if got < 0 || got > 100 {
			t.Errorf("percentage(%d, %d) = %d, out of [0,100]", tc.solved, tc.total, got)
		}
	}
}

// --- Acceptance and overview ---

func TestAverageAcceptance(t *testing.T) {
	problems := []models.Problem{
		{Slug: "a", AcceptanceRate: 40},
		{Slug: "b", AcceptanceRate: 55},
	}
	if got := AverageAcceptance(problems); got != 48 {
		t.Errorf("AverageAcceptance = %d, want 48", got)
	}
	if got := AverageAcceptance(nil); got != 0 {
		t.Errorf("AverageAcceptance(empty) = %d, want 0", got)
	}
}

func TestBuildOverview(t *testing.T) {
	summary := &models.StatsSummary{}
	summary.Overview.TotalScore = 2500
	summary.Overview.TotalProblemsSolved = 10
	summary.Overview.TotalProblemsAttempted = 20

	summary.Streaks = models.Streaks{Current: 2, Longest: 7}

	o := BuildOverview(summary)
	if o.Level != 3 {
		t.Errorf("Level = %d, want 3", o.Level)
	}
	if o.TotalSolved != 10 || o.TotalAttempted != 20 {
		t.Errorf("totals = %d/%d, want 10/20", o.TotalSolved, o.TotalAttempted)
	}
	if o.Streaks.Longest != 7 {
		t.Errorf("Streaks.Longest = %d, want 7", o.Streaks.Longest)
	}
	if o.Experience != 2500 {
		t.Errorf("Experience = %d, want 2500", o.Experience)
	}
	if o.LevelProgress != 50 {
		t.Errorf("LevelProgress = %d, want 50", o.LevelProgress)
	}
	if o.SolvedPercentage != 50 {
		t.Errorf("SolvedPercentage = %d, want 50", o.SolvedPercentage)
	}
}

func TestBuildOverviewFallsBackToSolvedCount(t *testing.T) {
	summary := &models.StatsSummary{}
	summary.Overview.TotalProblemsSolved = 3

	o := BuildOverview(summary)
	if o.Experience != 300 {
		t.Errorf("Experience = %d, want 300 (100 per solved problem)", o.Experience)
	}
	if o.Level != 1 {
		t.Errorf("Level = %d, want 1", o.Level)
	}
	// With no attempted total the solved count stands in as denominator.
	if o.SolvedPercentage != 100 {
		t.Errorf("SolvedPercentage = %d, want 100 when only solves are reported", o.SolvedPercentage)
	}
}

func TestBuildOverviewNilSummary(t *testing.T) {
	if o := BuildOverview(nil); o.Level != 1 {
		t.Errorf("Level = %d, want 1 for nil summary", o.Level)
	}
}

func TestSlugIndexJoinsIDsToSlugs(t *testing.T) {
	withSecondary := problem("a", "1", models.FrameworkReact, models.DifficultyBeginner)
	withSecondary.ProblemID = "p-100"
	problems := []models.Problem{
		withSecondary,
		problem("b", "2", models.FrameworkDjango, models.DifficultyPro),
	}
	m := SlugIndex(problems)
	if m["1"] != "a" || m["p-100"] != "a" {
		t.Errorf("index = %v, want both id shapes of a mapping to its slug", m)
	}
	if m["2"] != "b" {
		t.Errorf("m[2] = %q, want b", m["2"])
	}
}

func slugs(problems []models.Problem) []string {
	out := make([]string, len(problems))
	for i := range problems {
		out[i] = problems[i].Slug
	}
	return out
}
