package services

import (
	"context"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/odai307/gagoforge-client/internal/apiclient"
	"github.com/odai307/gagoforge-client/internal/logger"
	"github.com/odai307/gagoforge-client/internal/models"
)

const leaderboardCacheTTL = time.Minute

type LeaderboardService struct {
	api   *apiclient.Client
	cache Cache
}

// NewLeaderboardService creates a leaderboard client. cache may be nil.
func NewLeaderboardService(api *apiclient.Client, cache Cache) *LeaderboardService {
	return &LeaderboardService{api: api, cache: cache}
}

func (s *LeaderboardService) Global(ctx context.Context) ([]models.LeaderboardEntry, error) {
	return s.board(ctx, "/api/leaderboard/global/", "leaderboard:global")
}

func (s *LeaderboardService) Weekly(ctx context.Context) ([]models.LeaderboardEntry, error) {
	return s.board(ctx, "/api/leaderboard/weekly/", "leaderboard:weekly")
}

func (s *LeaderboardService) ByFramework(ctx context.Context, framework string) ([]models.LeaderboardEntry, error) {
	path := "/api/leaderboard/frameworks/" + url.PathEscape(framework) + "/"
	return s.board(ctx, path, "leaderboard:framework:"+framework)
}

// CurrentUserRank is per-user and therefore never cached.
func (s *LeaderboardService) CurrentUserRank(ctx context.Context) (*models.LeaderboardRank, error) {
	var rank models.LeaderboardRank
	if err := s.api.Get(ctx, "/api/leaderboard/current-user/", &rank); err != nil {
		return nil, err
	}
	return &rank, nil
}

func (s *LeaderboardService) board(ctx context.Context, path, cacheKey string) ([]models.LeaderboardEntry, error) {
	if s.cache != nil {
		var cached []models.LeaderboardEntry
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	var page models.Page[models.LeaderboardEntry]
	if err := s.api.Get(ctx, path, &page); err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, page.Results, leaderboardCacheTTL); err != nil {
			logger.Log.Warn("Failed to cache leaderboard", zap.String("key", cacheKey), zap.Error(err))
		}
	}
	return page.Results, nil
}
