package services

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/odai307/gagoforge-client/internal/apiclient"
	"github.com/odai307/gagoforge-client/internal/logger"
	"github.com/odai307/gagoforge-client/internal/models"
)

const (
	DefaultPageSize = 20

	problemStatsCacheKey = "problems:stats"
	problemStatsCacheTTL = 5 * time.Minute

	// Framework tracks are small; one oversized page fetches the whole
	// sibling list for navigation.
	siblingPageSize = 100
)

type ProblemFilters struct {
	Framework  string
	Category   string
	Difficulty string
	Search     string
	IsSolved   *bool
	IsPremium  *bool
	Ordering   string
}

func (f ProblemFilters) values() url.Values {
	params := url.Values{}
	if f.Framework != "" {
		params.Set("framework__name", f.Framework)
	}
	if f.Category != "" {
		params.Set("category__name", f.Category)
	}
	if f.Difficulty != "" {
		params.Set("difficulty", f.Difficulty)
	}
	if f.Search != "" {
		params.Set("search", f.Search)
	}
	if f.IsSolved != nil {
		params.Set("is_solved", strconv.FormatBool(*f.IsSolved))
	}
	if f.IsPremium != nil {
		params.Set("is_premium", strconv.FormatBool(*f.IsPremium))
	}
	if f.Ordering != "" {
		params.Set("ordering", f.Ordering)
	}
	return params
}

type ProblemService struct {
	api   *apiclient.Client
	cache Cache
}

// NewProblemService creates a problem client. cache may be nil.
func NewProblemService(api *apiclient.Client, cache Cache) *ProblemService {
	return &ProblemService{api: api, cache: cache}
}

func (s *ProblemService) List(ctx context.Context, filters ProblemFilters, page, pageSize int) (*models.Page[models.Problem], error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	params := filters.values()
	params.Set("page", strconv.Itoa(page))
	params.Set("page_size", strconv.Itoa(pageSize))

	var out models.Page[models.Problem]
	if err := s.api.Get(ctx, "/api/problems/?"+params.Encode(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ProblemService) Get(ctx context.Context, slug string) (*models.Problem, error) {
	var problem models.Problem
	if err := s.api.Get(ctx, "/api/problems/"+url.PathEscape(slug)+"/", &problem); err != nil {
		return nil, err
	}
	return &problem, nil
}

func (s *ProblemService) StarterCode(ctx context.Context, slug string) (*models.StarterCode, error) {
	var starter models.StarterCode
	if err := s.api.Get(ctx, "/api/problems/"+url.PathEscape(slug)+"/starter_code/", &starter); err != nil {
		return nil, err
	}
	return &starter, nil
}

func (s *ProblemService) Random(ctx context.Context, filters ProblemFilters) (*models.Problem, error) {
	path := "/api/problems/random/"
	if params := filters.values(); len(params) > 0 {
		path += "?" + params.Encode()
	}
	var problem models.Problem
	if err := s.api.Get(ctx, path, &problem); err != nil {
		return nil, err
	}
	return &problem, nil
}

func (s *ProblemService) Stats(ctx context.Context) (*models.ProblemStats, error) {
	if s.cache != nil {
		var cached models.ProblemStats
		if err := s.cache.Get(ctx, problemStatsCacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	var stats models.ProblemStats
	if err := s.api.Get(ctx, "/api/problems/stats/", &stats); err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, problemStatsCacheKey, stats, problemStatsCacheTTL); err != nil {
			logger.Log.Warn("Failed to cache problem stats", zap.Error(err))
		}
	}
	return &stats, nil
}

// Siblings returns the framework track for prev/next navigation and the
// track progress bar. The result is re-filtered client-side because some
// backend versions ignore the framework filter.
func (s *ProblemService) Siblings(ctx context.Context, framework string) ([]models.Problem, error) {
	page, err := s.List(ctx, ProblemFilters{Framework: framework}, 1, siblingPageSize)
	if err != nil {
		return nil, err
	}
	want := models.Framework(framework)
	siblings := make([]models.Problem, 0, len(page.Results))
	for _, p := range page.Results {
		if p.Framework.Framework() == want {
			siblings = append(siblings, p)
		}
	}
	return siblings, nil
}
