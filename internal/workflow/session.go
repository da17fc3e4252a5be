// Package workflow drives one problem-solving session: loading a problem
// with its starter code and framework track, editing a solution,
// revealing hints, submitting, and navigating between sibling problems.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/odai307/gagoforge-client/internal/apiclient"
	"github.com/odai307/gagoforge-client/internal/logger"
	"github.com/odai307/gagoforge-client/internal/models"
)

type State string

const (
	StateIdle       State = "idle"
	StateLoading    State = "loading"
	StateReady      State = "ready"
	StateSubmitting State = "submitting"
	StateResolved   State = "resolved"
	StateError      State = "error"
)

// Tabs of the problem detail view.
const (
	TabDescription = "description"
	TabHints       = "hints"
	TabResources   = "resources"
)

// Result messages shown on resolution.
const (
	MsgAccepted      = "Congratulations! Your solution passed all test cases."
	MsgPassedFmt     = "Your solution scored %.1f%% and meets the passing threshold!"
	MsgBelowFmt      = "Your solution scored %.1f%%. Keep trying!"
	MsgEmptyCode     = "Please write some code before submitting."
	MsgSubmitFailed  = "Submission failed. Please try again."
	MsgCannotReach   = "Cannot reach the server. Please check your connection and try again."
	MsgLoginRequired = "Please log in to submit solutions."
)

var (
	// ErrLoginRequired is returned by Submit for anonymous sessions; the
	// caller should route to the login screen instead of submitting.
	ErrLoginRequired = errors.New("login required")

	// ErrEndOfTrack is returned by Next on the last problem of a track;
	// the caller should route to the general problem list.
	ErrEndOfTrack = errors.New("end of framework track")

	ErrNoProblem = errors.New("no problem loaded")
)

// ProblemLoader supplies a problem, its starter code and its framework
// track. *services.ProblemService satisfies it.
type ProblemLoader interface {
	Get(ctx context.Context, slug string) (*models.Problem, error)
	StarterCode(ctx context.Context, slug string) (*models.StarterCode, error)
	Siblings(ctx context.Context, framework string) ([]models.Problem, error)
}

// Submitter sends a solution for validation. *services.SubmissionService
// satisfies it.
type Submitter interface {
	Submit(ctx context.Context, req models.SubmissionRequest) (*models.SubmissionResult, error)
}

// Authorizer reports whether the current session is authenticated.
// *session.Session satisfies it.
type Authorizer interface {
	IsLoggedIn() bool
}

// Resolution is the displayed outcome of one submission.
type Resolution struct {
	Success         bool
	Score           float64
	Verdict         string
	Message         string
	ExecutionTime   string
	Feedback        []models.FeedbackItem
	MatchedPatterns []string
}

// Session is the submission workflow state machine. All methods are safe
// for concurrent use; per-problem state is fully reset whenever the
// active problem changes.
type Session struct {
	problems ProblemLoader
	submit   Submitter
	auth     Authorizer

	// onResolve fires once per resolution so the UI can scroll the
	// results region into view. Optional.
	onResolve func()

	mu         sync.Mutex
	generation uint64
	state      State
	activeSlug string
	activeTab  string

	problem  *models.Problem
	starter  *models.StarterCode
	language string

	siblings   []models.Problem
	trackIndex int

	solutionCode  string
	hintsUsed     int
	expandedHints map[int]bool
	revealedEver  map[int]bool
	result        *Resolution
}

func New(problems ProblemLoader, submit Submitter, auth Authorizer) *Session {
	return &Session{
		problems:      problems,
		submit:        submit,
		auth:          auth,
		state:         StateIdle,
		activeTab:     TabDescription,
		trackIndex:    -1,
		expandedHints: make(map[int]bool),
		revealedEver:  make(map[int]bool),
	}
}

// OnResolve registers the scroll-into-view callback invoked exactly once
// per resolution.
func (s *Session) OnResolve(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onResolve = fn
}

// LoadProblem switches the session to slug. Per-problem state is cleared
// before any fetch goes out. The problem and its starter code are both
// required; the sibling track is best-effort and merely disables
// navigation when unavailable. A load superseded by a newer LoadProblem
// discards its results instead of overwriting the current session.
func (s *Session) LoadProblem(ctx context.Context, slug string) error {
	gen := s.beginLoad(slug)

	var (
		wg      sync.WaitGroup
		problem *models.Problem
		starter *models.StarterCode
		pErr    error
		scErr   error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		problem, pErr = s.problems.Get(ctx, slug)
	}()
	go func() {
		defer wg.Done()
		starter, scErr = s.problems.StarterCode(ctx, slug)
	}()
	wg.Wait()

	if pErr != nil {
		return s.failLoad(gen, slug, pErr)
	}
	if scErr != nil {
		return s.failLoad(gen, slug, scErr)
	}

	framework := problem.Framework.Framework()
	siblings, sErr := s.problems.Siblings(ctx, string(framework))
	if sErr != nil {
		logger.Log.Warn("Sibling track unavailable, navigation disabled",
			zap.String("slug", slug), zap.Error(sErr))
		siblings = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		// A newer load took over while this one was in flight.
		return nil
	}
	s.problem = problem
	s.starter = starter
	s.language = framework.Language()
	s.siblings = siblings
	s.trackIndex = trackPosition(siblings, slug)
	s.state = StateReady
	logger.Log.Debug("Problem session ready",
		zap.String("slug", slug), zap.String("language", s.language))
	return nil
}

func (s *Session) beginLoad(slug string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.resetSessionState()
	s.state = StateLoading
	s.activeSlug = slug
	return s.generation
}

// resetSessionState clears every per-problem variable in one place so a
// navigation can never leave the session partially reset. Callers hold
// the lock.
func (s *Session) resetSessionState() {
	s.problem = nil
	s.starter = nil
	s.language = ""
	s.siblings = nil
	s.trackIndex = -1
	s.solutionCode = ""
	s.hintsUsed = 0
	s.expandedHints = make(map[int]bool)
	s.revealedEver = make(map[int]bool)
	s.result = nil
	s.activeTab = TabDescription
}

func (s *Session) failLoad(gen uint64, slug string, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return nil
	}
	s.state = StateError
	logger.Log.Warn("Problem load failed", zap.String("slug", slug), zap.Error(err))
	return fmt.Errorf("loading problem %q: %w", slug, err)
}

// Retry reloads the active problem after a failed load.
func (s *Session) Retry(ctx context.Context) error {
	s.mu.Lock()
	slug := s.activeSlug
	state := s.state
	s.mu.Unlock()
	if state != StateError || slug == "" {
		return ErrNoProblem
	}
	return s.LoadProblem(ctx, slug)
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Problem() *models.Problem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.problem
}

// StarterPane returns the read-only editor pane content.
func (s *Session) StarterPane() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.starter == nil {
		return ""
	}
	return s.starter.Combined()
}

func (s *Session) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language
}

func (s *Session) SolutionCode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.solutionCode
}

// Edit replaces the solution code. Side-effect-free.
func (s *Session) Edit(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady && s.state != StateResolved {
		return
	}
	s.solutionCode = text
}

func (s *Session) ActiveTab() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeTab
}

func (s *Session) SetActiveTab(tab string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeTab = tab
}

// Siblings returns the framework track, in order. The slice is a copy.
func (s *Session) Siblings() []models.Problem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Problem, len(s.siblings))
	copy(out, s.siblings)
	return out
}

// ToggleHint flips the expansion of the hint at index. The hints-used
// counter moves only the first time a given index is revealed in this
// problem session; collapsing and re-expanding does not count twice.
func (s *Session) ToggleHint(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.problem == nil || index < 0 || index >= len(s.problem.Hints) {
		return
	}
	if s.expandedHints[index] {
		delete(s.expandedHints, index)
		return
	}
	s.expandedHints[index] = true
	if !s.revealedEver[index] {
		s.revealedEver[index] = true
		s.hintsUsed++
	}
}

func (s *Session) HintsUsed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hintsUsed
}

func (s *Session) HintExpanded(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expandedHints[index]
}

// Submit sends the current solution for validation. Anonymous sessions
// get ErrLoginRequired and no state change. Blank code resolves locally
// as a failure without touching the network. A submit while one is
// already in flight is a no-op.
func (s *Session) Submit(ctx context.Context) (*Resolution, error) {
	s.mu.Lock()
	if s.auth != nil && !s.auth.IsLoggedIn() {
		s.mu.Unlock()
		return nil, ErrLoginRequired
	}
	if s.problem == nil || (s.state != StateReady && s.state != StateResolved) {
		res := s.result
		s.mu.Unlock()
		return res, nil
	}
	if strings.TrimSpace(s.solutionCode) == "" {
		res := &Resolution{Message: MsgEmptyCode}
		notify := s.resolveLocked(res)
		s.mu.Unlock()
		if notify != nil {
			notify()
		}
		return res, nil
	}
	req := models.SubmissionRequest{
		Problem:   s.problem.ID.String(),
		Code:      s.solutionCode,
		Language:  s.language,
		HintsUsed: s.hintsUsed,
	}
	threshold := s.problem.PassingThreshold()
	gen := s.generation
	s.state = StateSubmitting
	s.mu.Unlock()

	result, err := s.submit.Submit(ctx, req)

	s.mu.Lock()
	if gen != s.generation {
		// The user navigated away mid-submission; drop the result.
		s.mu.Unlock()
		return nil, nil
	}
	var res *Resolution
	if err != nil {
		res = failureResolution(err)
	} else {
		res = resolve(result, threshold)
	}
	notify := s.resolveLocked(res)
	s.mu.Unlock()
	if notify != nil {
		notify()
	}
	return res, nil
}

// resolveLocked enters Resolved and hands back the scroll callback so
// callers can fire it exactly once after releasing the lock.
func (s *Session) resolveLocked(res *Resolution) func() {
	s.result = res
	s.state = StateResolved
	return s.onResolve
}

func (s *Session) Result() *Resolution {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// resolve maps a server verdict to a displayed resolution. Success means
// an accepted verdict or a score at or above the problem's threshold.
func resolve(result *models.SubmissionResult, threshold float64) *Resolution {
	score := result.Score.Float()
	res := &Resolution{
		Score:           score,
		Verdict:         result.Verdict,
		ExecutionTime:   formatExecutionTime(result.ExecutionTimeMs.Float()),
		Feedback:        result.Feedback,
		MatchedPatterns: result.MatchedPatterns,
	}
	switch {
	case result.Verdict == models.VerdictAccepted:
		res.Success = true
		res.Message = MsgAccepted
	case score >= threshold:
		res.Success = true
		res.Message = fmt.Sprintf(MsgPassedFmt, score)
	default:
		res.Message = fmt.Sprintf(MsgBelowFmt, score)
	}
	return res
}

// failureResolution builds the zero-score resolution for a failed submit
// call. Server-provided detail wins over the generic templates.
func failureResolution(err error) *Resolution {
	msg := MsgSubmitFailed
	if errors.Is(err, apiclient.ErrUnreachable) {
		msg = MsgCannotReach
	}
	if detail := apiclient.Detail(err); detail != "" {
		msg = detail
	}
	return &Resolution{Message: msg, ExecutionTime: "N/A"}
}

func formatExecutionTime(ms float64) string {
	if ms <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.2fs", ms/1000)
}

// Reset returns a resolved session to Ready: solution code, hints and
// the last result are cleared while the loaded problem and starter code
// stay untouched.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateResolved && s.state != StateReady {
		return
	}
	s.solutionCode = ""
	s.hintsUsed = 0
	s.expandedHints = make(map[int]bool)
	s.revealedEver = make(map[int]bool)
	s.result = nil
	s.state = StateReady
}

// ShowSolution copies the primary reference pattern into the editor.
// Only available after a successful resolution.
func (s *Session) ShowSolution() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateResolved || s.result == nil || !s.result.Success {
		return false
	}
	if s.problem == nil {
		return false
	}
	pattern := s.problem.PrimaryPattern()
	if pattern == nil || pattern.ExampleCode == "" {
		return false
	}
	s.solutionCode = pattern.ExampleCode
	return true
}

// Position reports the one-based track position and track length, or
// ok=false when no sibling track is loaded.
func (s *Session) Position() (pos, total int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.trackIndex < 0 || len(s.siblings) == 0 {
		return 0, 0, false
	}
	return s.trackIndex + 1, len(s.siblings), true
}

func (s *Session) CanPrev() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trackIndex > 0
}

func (s *Session) CanNext() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trackIndex >= 0 && s.trackIndex < len(s.siblings)-1
}

// Prev loads the previous problem in the framework track. No-op at the
// first problem.
func (s *Session) Prev(ctx context.Context) error {
	s.mu.Lock()
	if s.trackIndex <= 0 {
		s.mu.Unlock()
		return nil
	}
	slug := s.siblings[s.trackIndex-1].Slug
	s.mu.Unlock()
	return s.LoadProblem(ctx, slug)
}

// Next loads the next problem in the framework track. At the last
// problem it returns ErrEndOfTrack so the caller can route to the
// general problem list instead.
func (s *Session) Next(ctx context.Context) error {
	s.mu.Lock()
	if s.trackIndex < 0 || len(s.siblings) == 0 {
		s.mu.Unlock()
		return ErrNoProblem
	}
	if s.trackIndex >= len(s.siblings)-1 {
		s.mu.Unlock()
		return ErrEndOfTrack
	}
	slug := s.siblings[s.trackIndex+1].Slug
	s.mu.Unlock()
	return s.LoadProblem(ctx, slug)
}

func trackPosition(siblings []models.Problem, slug string) int {
	for i := range siblings {
		if siblings[i].Slug == slug {
			return i
		}
	}
	return -1
}
