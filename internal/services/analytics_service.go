package services

import (
	"context"
	"unicode/utf8"

	"github.com/dmello/typetrack/internal/analytics"
	"github.com/dmello/typetrack/internal/errors"
	"github.com/dmello/typetrack/internal/logger"
	"github.com/dmello/typetrack/internal/models"
	"github.com/dmello/typetrack/internal/repository"
	"github.com/dmello/typetrack/internal/session"
)

// AnalyticsService handles per-character performance aggregation, both the
// live session view and the persisted cross-session view.
type AnalyticsService interface {
	GetCharacterAnalytics(ctx context.Context, externalID string) ([]models.CharacterAnalyticsEntry, error)
	RecordKeystrokes(ctx context.Context, sessionID string, events []session.Keystroke) error
	GetSessionAnalytics(ctx context.Context, sessionID string) ([]models.CharacterAnalyticsEntry, error)
	EndSession(ctx context.Context, sessionID string) error
}

type analyticsService struct {
	userRepo repository.UserRepository
	charRepo repository.CharacterStatsRepository
	sessions *session.Store
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(userRepo repository.UserRepository, charRepo repository.CharacterStatsRepository,
	sessions *session.Store) AnalyticsService {
	return &analyticsService{userRepo: userRepo, charRepo: charRepo, sessions: sessions}
}

func (s *analyticsService) GetCharacterAnalytics(ctx context.Context, externalID string) ([]models.CharacterAnalyticsEntry, error) {
	log := logger.FromContext(ctx)

	if externalID == "" {
		return nil, errors.NewValidationError("external_id", "is required")
	}
	user, err := s.userRepo.GetByExternalID(ctx, externalID)
	if err != nil {
		log.Error("failed to resolve user: %v", err)
		return nil, errors.NewStorageError(err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user", externalID)
	}

	accs, err := s.charRepo.ListByUser(ctx, user.ID)
	if err != nil {
		log.Error("failed to list character stats: %v", err)
		return nil, errors.NewStorageError(err)
	}

	return analytics.Compute(analytics.FromAccumulators(accs)), nil
}

func (s *analyticsService) RecordKeystrokes(ctx context.Context, sessionID string, events []session.Keystroke) error {
	log := logger.FromContext(ctx)

	if sessionID == "" {
		return errors.NewValidationError("session_id", "is required")
	}
	for _, e := range events {
		if utf8.RuneCountInString(e.Character) != 1 {
			return errors.NewValidationError("character", "must be a single character")
		}
	}

	log.Debug("recording %d keystrokes: session_id=%s", len(events), sessionID)
	for _, e := range events {
		s.sessions.Record(sessionID, e)
	}
	return nil
}

func (s *analyticsService) GetSessionAnalytics(ctx context.Context, sessionID string) ([]models.CharacterAnalyticsEntry, error) {
	if sessionID == "" {
		return nil, errors.NewValidationError("session_id", "is required")
	}
	stats, ok := s.sessions.Snapshot(sessionID)
	if !ok {
		return nil, errors.NewNotFoundError("session", sessionID)
	}
	return analytics.Compute(stats), nil
}

func (s *analyticsService) EndSession(ctx context.Context, sessionID string) error {
	log := logger.FromContext(ctx)

	if sessionID == "" {
		return errors.NewValidationError("session_id", "is required")
	}
	if !s.sessions.Evict(sessionID) {
		return errors.NewNotFoundError("session", sessionID)
	}
	log.Debug("session evicted: session_id=%s", sessionID)
	return nil
}
