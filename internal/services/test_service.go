package services

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/dmello/typetrack/internal/errors"
	"github.com/dmello/typetrack/internal/logger"
	"github.com/dmello/typetrack/internal/metrics"
	"github.com/dmello/typetrack/internal/models"
	"github.com/dmello/typetrack/internal/repository"
	"github.com/dmello/typetrack/internal/session"
)

// RecordTestRequest is the validated boundary schema for submitting a
// completed test. Counters are what the capture layer measured; the server
// recomputes every derived metric instead of trusting client math.
type RecordTestRequest struct {
	SessionID           string    `json:"session_id,omitempty"`
	TestMode            string    `json:"test_mode"`
	TimeLimit           int       `json:"time_limit"`
	WordLimit           int       `json:"word_limit"`
	TotalCharacters     int       `json:"total_characters"`
	CorrectCharacters   int       `json:"correct_characters"`
	IncorrectCharacters int       `json:"incorrect_characters"`
	ActualDuration      float64   `json:"actual_duration"`
	WPMSamples          []float64 `json:"wpm_samples,omitempty"`
	Consistency         *float64  `json:"consistency,omitempty"`
}

// TestService handles test submission and history business logic
type TestService interface {
	RecordTest(ctx context.Context, identity models.Identity, req RecordTestRequest) (*models.TestRecord, error)
	GetHistory(ctx context.Context, externalID string, page, limit int, mode string, timeLimit *int) (*models.HistoryPage, error)
	GetSummary(ctx context.Context, externalID string) (*models.UserSummary, error)
	ListAllForExport(ctx context.Context, externalID string, mode string, timeLimit *int) (*models.User, []models.TestRecord, error)
}

type testService struct {
	userRepo repository.UserRepository
	testRepo repository.TestRepository
	charRepo repository.CharacterStatsRepository
	sessions *session.Store
	pageSize int
	now      func() time.Time
}

// NewTestService creates a new TestService
func NewTestService(userRepo repository.UserRepository, testRepo repository.TestRepository,
	charRepo repository.CharacterStatsRepository, sessions *session.Store, pageSize int) TestService {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &testService{
		userRepo: userRepo,
		testRepo: testRepo,
		charRepo: charRepo,
		sessions: sessions,
		pageSize: pageSize,
		now:      time.Now,
	}
}

func validateRecordTest(req RecordTestRequest) error {
	if !models.ValidMode(req.TestMode) {
		return errors.NewValidationError("test_mode", "must be one of time, words, quote, custom, punctuation, numbers, zen")
	}
	if req.TimeLimit < 0 {
		return errors.NewValidationError("time_limit", "must be non-negative")
	}
	if req.WordLimit < 0 {
		return errors.NewValidationError("word_limit", "must be non-negative")
	}
	if req.TotalCharacters < 0 {
		return errors.NewValidationError("total_characters", "must be non-negative")
	}
	if req.CorrectCharacters < 0 {
		return errors.NewValidationError("correct_characters", "must be non-negative")
	}
	if req.IncorrectCharacters < 0 {
		return errors.NewValidationError("incorrect_characters", "must be non-negative")
	}
	if req.ActualDuration < 0 {
		return errors.NewValidationError("actual_duration", "must be non-negative")
	}
	// Zen mode has no target, so a zero duration is possible there; every
	// other mode must have run for some time.
	if req.ActualDuration == 0 && req.TestMode != models.ModeZen {
		return errors.NewValidationError("actual_duration", "must be positive outside zen mode")
	}
	if req.TotalCharacters != req.CorrectCharacters+req.IncorrectCharacters {
		return errors.NewValidationError("total_characters", "must equal correct_characters + incorrect_characters")
	}
	return nil
}

func (s *testService) RecordTest(ctx context.Context, identity models.Identity, req RecordTestRequest) (*models.TestRecord, error) {
	log := logger.FromContext(ctx)

	if identity.ExternalID == "" {
		return nil, errors.NewValidationError("external_id", "is required")
	}
	if err := validateRecordTest(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.Upsert(ctx, identity.ExternalID, identity.Email, identity.DisplayName)
	if err != nil {
		log.Error("failed to upsert user for test: %v", err)
		return nil, errors.NewStorageError(err)
	}

	rec := models.TestRecord{
		ID:                  uuid.NewString(),
		UserID:              user.ID,
		WPM:                 metrics.Round2(metrics.WPM(req.CorrectCharacters, req.ActualDuration)),
		RawWPM:              metrics.Round2(metrics.RawWPM(req.TotalCharacters, req.ActualDuration)),
		Accuracy:            metrics.Accuracy(req.CorrectCharacters, req.TotalCharacters),
		TestMode:            req.TestMode,
		TimeLimit:           req.TimeLimit,
		WordLimit:           req.WordLimit,
		TotalCharacters:     req.TotalCharacters,
		CorrectCharacters:   req.CorrectCharacters,
		IncorrectCharacters: req.IncorrectCharacters,
		ActualDuration:      req.ActualDuration,
		CreatedAt:           s.now().UTC(),
	}

	// Consistency comes from per-interval samples when the client sent
	// them, from the precomputed value otherwise, and is null when neither
	// is available.
	if len(req.WPMSamples) >= 2 {
		c := metrics.Consistency(req.WPMSamples)
		rec.Consistency = &c
	} else if req.Consistency != nil {
		c := metrics.Round2(clampPercent(*req.Consistency))
		rec.Consistency = &c
	}

	log.Debug("recording test: id=%s, user_id=%d, wpm=%.2f", rec.ID, rec.UserID, rec.WPM)
	if err := s.testRepo.Insert(ctx, rec); err != nil {
		log.Error("failed to insert test record: %v", err)
		return nil, errors.NewStorageError(err)
	}

	// Fold the session's character counters into the user's accumulators
	// and release the session. A missing session is not an error; the
	// client may not have streamed keystrokes.
	if req.SessionID != "" && s.sessions != nil {
		if stats, ok := s.sessions.Snapshot(req.SessionID); ok {
			if err := s.charRepo.Merge(ctx, user.ID, stats); err != nil {
				log.Warn("failed to merge session character stats: %v", err)
			}
			s.sessions.Evict(req.SessionID)
		}
	}

	rec.ErrorRate = metrics.ErrorRate(rec.IncorrectCharacters, rec.TotalCharacters)
	return &rec, nil
}

func (s *testService) GetHistory(ctx context.Context, externalID string, page, limit int, mode string, timeLimit *int) (*models.HistoryPage, error) {
	log := logger.FromContext(ctx)

	user, err := s.resolveUser(ctx, externalID)
	if err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = s.pageSize
	}
	if limit > 100 {
		limit = 100
	}
	if mode == "all" {
		mode = ""
	}

	filter := models.TestFilter{
		UserID:    user.ID,
		Mode:      mode,
		TimeLimit: timeLimit,
		Limit:     limit,
		Offset:    (page - 1) * limit,
	}

	// Count and page share the same filter so totals line up with what the
	// page window can actually reach.
	total, err := s.testRepo.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count history: %v", err)
		return nil, errors.NewStorageError(err)
	}

	records, err := s.testRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list history: %v", err)
		return nil, errors.NewStorageError(err)
	}
	if records == nil {
		records = []models.TestRecord{}
	}

	// Derived metrics are recomputed at read time from the stored counters
	// so rows written by older formula versions stay consistent.
	for i := range records {
		records[i].RawWPM = metrics.Round2(metrics.RawWPM(records[i].TotalCharacters, records[i].ActualDuration))
		records[i].ErrorRate = metrics.ErrorRate(records[i].IncorrectCharacters, records[i].TotalCharacters)
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	return &models.HistoryPage{
		Tests: records,
		Pagination: models.Pagination{
			CurrentPage:     page,
			TotalPages:      totalPages,
			TotalTests:      total,
			HasNextPage:     page < totalPages,
			HasPreviousPage: page > 1,
		},
	}, nil
}

func (s *testService) GetSummary(ctx context.Context, externalID string) (*models.UserSummary, error) {
	log := logger.FromContext(ctx)

	user, err := s.resolveUser(ctx, externalID)
	if err != nil {
		return nil, err
	}

	sum, err := s.testRepo.Summary(ctx, user.ID)
	if err != nil {
		log.Error("failed to query summary: %v", err)
		return nil, errors.NewStorageError(err)
	}
	sum.BestWPM = metrics.Round2(sum.BestWPM)
	sum.AvgWPM = metrics.Round2(sum.AvgWPM)
	sum.AvgAccuracy = metrics.Round2(sum.AvgAccuracy)
	return sum, nil
}

// ListAllForExport returns the user's full filtered history, newest first,
// for the spreadsheet export.
func (s *testService) ListAllForExport(ctx context.Context, externalID string, mode string, timeLimit *int) (*models.User, []models.TestRecord, error) {
	log := logger.FromContext(ctx)

	user, err := s.resolveUser(ctx, externalID)
	if err != nil {
		return nil, nil, err
	}
	if mode == "all" {
		mode = ""
	}

	const exportPageSize = 500
	var all []models.TestRecord
	for offset := 0; ; offset += exportPageSize {
		batch, err := s.testRepo.List(ctx, models.TestFilter{
			UserID:    user.ID,
			Mode:      mode,
			TimeLimit: timeLimit,
			Limit:     exportPageSize,
			Offset:    offset,
		})
		if err != nil {
			log.Error("failed to list history for export: %v", err)
			return nil, nil, errors.NewStorageError(err)
		}
		for i := range batch {
			batch[i].RawWPM = metrics.Round2(metrics.RawWPM(batch[i].TotalCharacters, batch[i].ActualDuration))
			batch[i].ErrorRate = metrics.ErrorRate(batch[i].IncorrectCharacters, batch[i].TotalCharacters)
		}
		all = append(all, batch...)
		if len(batch) < exportPageSize {
			break
		}
	}
	return user, all, nil
}

func (s *testService) resolveUser(ctx context.Context, externalID string) (*models.User, error) {
	if externalID == "" {
		return nil, errors.NewValidationError("external_id", "is required")
	}
	user, err := s.userRepo.GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, errors.NewStorageError(err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user", externalID)
	}
	return user, nil
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
