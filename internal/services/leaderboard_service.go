package services

import (
	"context"
	"strings"
	"time"

	"github.com/dmello/typetrack/internal/errors"
	"github.com/dmello/typetrack/internal/logger"
	"github.com/dmello/typetrack/internal/metrics"
	"github.com/dmello/typetrack/internal/models"
	"github.com/dmello/typetrack/internal/repository"
)

// LeaderboardService handles cross-user ranking business logic
type LeaderboardService interface {
	GetLeaderboard(ctx context.Context, mode string, timeLimit *int, period string, limit int) ([]models.LeaderboardEntry, error)
}

type leaderboardService struct {
	testRepo     repository.TestRepository
	defaultLimit int
	maxLimit     int
	now          func() time.Time
}

// NewLeaderboardService creates a new LeaderboardService
func NewLeaderboardService(testRepo repository.TestRepository, defaultLimit, maxLimit int) LeaderboardService {
	if defaultLimit <= 0 {
		defaultLimit = 50
	}
	if maxLimit < defaultLimit {
		maxLimit = defaultLimit
	}
	return &leaderboardService{
		testRepo:     testRepo,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
		now:          time.Now,
	}
}

// periodCutoff maps a period name to its lower created_at bound. Anything
// unrecognized falls back to the 30-day window; "all" has no bound.
func (s *leaderboardService) periodCutoff(period string) *time.Time {
	switch period {
	case models.PeriodAll:
		return nil
	case models.Period7Days:
		t := s.now().Add(-7 * 24 * time.Hour)
		return &t
	default:
		t := s.now().Add(-30 * 24 * time.Hour)
		return &t
	}
}

func (s *leaderboardService) GetLeaderboard(ctx context.Context, mode string, timeLimit *int, period string, limit int) ([]models.LeaderboardEntry, error) {
	log := logger.FromContext(ctx)

	if !models.ValidMode(mode) {
		return nil, errors.NewValidationError("mode", "must be a known test mode")
	}
	// The time-limit filter only applies to timed tests.
	if mode != models.ModeTime {
		timeLimit = nil
	}
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	filter := models.LeaderboardFilter{
		Mode:      mode,
		TimeLimit: timeLimit,
		Since:     s.periodCutoff(period),
		Limit:     limit,
	}

	log.Debug("fetching leaderboard: mode=%s, period=%s, limit=%d", mode, period, limit)
	rows, err := s.testRepo.Leaderboard(ctx, filter)
	if err != nil {
		log.Error("failed to query leaderboard: %v", err)
		return nil, errors.NewStorageError(err)
	}

	entries := make([]models.LeaderboardEntry, 0, len(rows))
	for i, row := range rows {
		entries = append(entries, models.LeaderboardEntry{
			Rank:        i + 1,
			TestID:      row.TestID,
			UserID:      row.UserID,
			DisplayName: resolveDisplayName(row.DisplayName, row.Email),
			WPM:         row.WPM,
			RawWPM:      row.RawWPM,
			Accuracy:    row.Accuracy,
			Consistency: row.Consistency,
			TestMode:    row.TestMode,
			TimeLimit:   row.TimeLimit,
			Errors:      metrics.DerivedErrors(row.TotalChars, row.Accuracy),
			CreatedAt:   row.CreatedAt,
		})
	}
	return entries, nil
}

// resolveDisplayName prefers the explicit display name, falls back to the
// local part of the email address, then to "Anonymous".
func resolveDisplayName(displayName, email *string) string {
	if displayName != nil && *displayName != "" {
		return *displayName
	}
	if email != nil {
		if local, _, found := strings.Cut(*email, "@"); found && local != "" {
			return local
		}
	}
	return "Anonymous"
}
