package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/odai307/gagoforge-client/internal/apiclient"
	"github.com/odai307/gagoforge-client/internal/logger"
	"github.com/odai307/gagoforge-client/internal/models"
)

const recentActivityLimit = 10

type ProfileService struct {
	api         *apiclient.Client
	submissions *SubmissionService
}

// NewProfileService creates a profile client. The submission service
// backs the recent-activity fallback path.
func NewProfileService(api *apiclient.Client, submissions *SubmissionService) *ProfileService {
	return &ProfileService{api: api, submissions: submissions}
}

func (s *ProfileService) Me(ctx context.Context) (*models.Profile, error) {
	var profile models.Profile
	if err := s.api.Get(ctx, "/api/users/profiles/me/", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *ProfileService) UpdatePreferences(ctx context.Context, update models.PreferencesUpdate) (*models.Profile, error) {
	var profile models.Profile
	if err := s.api.Patch(ctx, "/api/users/profiles/update_preferences/", update, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *ProfileService) EditableFields(ctx context.Context) (*models.EditableFields, error) {
	var fields models.EditableFields
	if err := s.api.Get(ctx, "/api/users/profiles/editable_fields/", &fields); err != nil {
		return nil, err
	}
	return &fields, nil
}

// StatsSummary fetches the comprehensive stats summary, falling back to
// the legacy stats endpoint when the summary endpoint fails. Older
// backends only expose the legacy shape, which lacks per-framework and
// per-difficulty tables.
func (s *ProfileService) StatsSummary(ctx context.Context) (*models.StatsSummary, error) {
	var summary models.StatsSummary
	err := s.api.Get(ctx, "/api/users/profiles/stats_summary/", &summary)
	if err == nil {
		return &summary, nil
	}
	logger.Log.Warn("Stats summary unavailable, falling back to legacy stats", zap.Error(err))

	var legacy struct {
		TotalProblemsSolved    int            `json:"total_problems_solved"`
		TotalProblemsAttempted int            `json:"total_problems_attempted"`
		TotalSubmissions       int            `json:"total_submissions"`
		TotalScore             models.Number  `json:"total_score"`
		Streaks                models.Streaks `json:"streaks"`
	}
	if err := s.api.Get(ctx, "/api/users/profiles/stats/", &legacy); err != nil {
		return nil, err
	}
	return &models.StatsSummary{
		Overview: models.StatsOverview{
			TotalProblemsSolved:    legacy.TotalProblemsSolved,
			TotalProblemsAttempted: legacy.TotalProblemsAttempted,
			TotalSubmissions:       legacy.TotalSubmissions,
			TotalScore:             legacy.TotalScore,
		},
		Streaks: legacy.Streaks,
	}, nil
}

// RecentActivity returns the user's latest submissions, falling back to
// the general submissions listing when the dedicated endpoint fails.
func (s *ProfileService) RecentActivity(ctx context.Context) ([]models.Submission, error) {
	var activity models.RecentActivity
	err := s.api.Get(ctx, "/api/users/profiles/recent_activity/", &activity)
	if err == nil {
		return activity.RecentSubmissions, nil
	}
	logger.Log.Warn("Recent activity unavailable, falling back to submissions list", zap.Error(err))

	page, err := s.submissions.List(ctx, SubmissionFilters{Ordering: "-submitted_at"})
	if err != nil {
		return nil, err
	}
	results := page.Results
	if len(results) > recentActivityLimit {
		results = results[:recentActivityLimit]
	}
	return results, nil
}
