package services

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/odai307/gagoforge-client/internal/apiclient"
	"github.com/odai307/gagoforge-client/internal/models"
)

type SubmissionFilters struct {
	Problem  string
	Verdict  string
	Search   string
	Ordering string
	Page     int
}

func (f SubmissionFilters) values() url.Values {
	params := url.Values{}
	if f.Problem != "" {
		params.Set("problem", f.Problem)
	}
	if f.Verdict != "" {
		params.Set("verdict", f.Verdict)
	}
	if f.Search != "" {
		params.Set("search", f.Search)
	}
	if f.Ordering != "" {
		params.Set("ordering", f.Ordering)
	}
	if f.Page > 1 {
		params.Set("page", strconv.Itoa(f.Page))
	}
	return params
}

type SubmissionService struct {
	api *apiclient.Client
}

func NewSubmissionService(api *apiclient.Client) *SubmissionService {
	return &SubmissionService{api: api}
}

func (s *SubmissionService) Submit(ctx context.Context, req models.SubmissionRequest) (*models.SubmissionResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var result models.SubmissionResult
	if err := s.api.Post(ctx, "/api/submissions/", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *SubmissionService) List(ctx context.Context, filters SubmissionFilters) (*models.Page[models.Submission], error) {
	path := "/api/submissions/"
	if params := filters.values(); len(params) > 0 {
		path += "?" + params.Encode()
	}
	var page models.Page[models.Submission]
	if err := s.api.Get(ctx, path, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *SubmissionService) Get(ctx context.Context, id string) (*models.Submission, error) {
	var submission models.Submission
	if err := s.api.Get(ctx, "/api/submissions/"+url.PathEscape(id)+"/", &submission); err != nil {
		return nil, err
	}
	return &submission, nil
}

func (s *SubmissionService) Recent(ctx context.Context, limit int) ([]models.Submission, error) {
	if limit <= 0 {
		limit = 10
	}
	var page models.Page[models.Submission]
	if err := s.api.Get(ctx, "/api/submissions/recent/?limit="+strconv.Itoa(limit), &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

func (s *SubmissionService) Statistics(ctx context.Context) (*models.SubmissionStats, error) {
	var stats models.SubmissionStats
	if err := s.api.Get(ctx, "/api/submissions/statistics/", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *SubmissionService) Dispute(ctx context.Context, id, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return errors.New("dispute reason is required")
	}
	body := map[string]string{"dispute_reason": reason}
	return s.api.Post(ctx, "/api/submissions/"+url.PathEscape(id)+"/dispute/", body, nil)
}
