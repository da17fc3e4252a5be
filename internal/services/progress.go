package services

import (
	"context"
	"net/url"
	"strconv"
	"sync"

	"github.com/odai307/gagoforge-client/internal/apiclient"
	"github.com/odai307/gagoforge-client/internal/models"
	"github.com/odai307/gagoforge-client/internal/workerpool"
)

// progressFetchWorkers bounds concurrent page fetches in ListAll.
const progressFetchWorkers = 4

type ProgressFilters struct {
	IsSolved    *bool
	IsAttempted *bool
	Framework   string
	Difficulty  string
	Ordering    string
}

func (f ProgressFilters) values() url.Values {
	params := url.Values{}
	if f.IsSolved != nil {
		params.Set("is_solved", strconv.FormatBool(*f.IsSolved))
	}
	if f.IsAttempted != nil {
		params.Set("is_attempted", strconv.FormatBool(*f.IsAttempted))
	}
	if f.Framework != "" {
		params.Set("problem__framework__name", f.Framework)
	}
	if f.Difficulty != "" {
		params.Set("problem__difficulty", f.Difficulty)
	}
	if f.Ordering != "" {
		params.Set("ordering", f.Ordering)
	}
	return params
}

type ProgressService struct {
	api *apiclient.Client
}

func NewProgressService(api *apiclient.Client) *ProgressService {
	return &ProgressService{api: api}
}

// List returns the first page of progress records, flattened out of the
// pagination envelope.
func (s *ProgressService) List(ctx context.Context, filters ProgressFilters) ([]models.ProgressRecord, error) {
	page, err := s.listPage(ctx, filters, 1)
	if err != nil {
		return nil, err
	}
	return page.Results, nil
}

// ListAll fetches every page of progress records. The reconciliation
// index needs the full corpus, not a single page; remaining pages are
// fetched through a bounded worker pool once page one reveals the total.
func (s *ProgressService) ListAll(ctx context.Context, filters ProgressFilters) ([]models.ProgressRecord, error) {
	first, err := s.listPage(ctx, filters, 1)
	if err != nil {
		return nil, err
	}
	if first.Next == nil || len(first.Results) == 0 {
		return first.Results, nil
	}

	pageSize := len(first.Results)
	totalPages := (first.Count + pageSize - 1) / pageSize
	pages := make([][]models.ProgressRecord, totalPages+1)
	pages[1] = first.Results

	var (
		mu       sync.Mutex
		fetchErr error
	)
	pool := workerpool.NewPool(progressFetchWorkers, totalPages)
	pool.Start(ctx)
	for n := 2; n <= totalPages; n++ {
		n := n // per-iteration copy; go directive is below 1.22
		pool.Submit(func(ctx context.Context) error {
			page, err := s.listPage(ctx, filters, n)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if fetchErr == nil {
					fetchErr = err
				}
				return err
			}
			pages[n] = page.Results
			return nil
		})
	}
	pool.Stop()

	if fetchErr != nil {
		return nil, fetchErr
	}
	records := make([]models.ProgressRecord, 0, first.Count)
	for n := 1; n <= totalPages; n++ {
		records = append(records, pages[n]...)
	}
	return records, nil
}

func (s *ProgressService) listPage(ctx context.Context, filters ProgressFilters, page int) (*models.Page[models.ProgressRecord], error) {
	params := filters.values()
	if page > 1 {
		params.Set("page", strconv.Itoa(page))
	}
	path := "/api/progress/"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	var out models.Page[models.ProgressRecord]
	if err := s.api.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
