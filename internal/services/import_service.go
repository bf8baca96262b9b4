package services

import (
	"context"

	"github.com/dmello/typetrack/internal/errors"
	"github.com/dmello/typetrack/internal/fieldmap"
	"github.com/dmello/typetrack/internal/logger"
	"github.com/dmello/typetrack/internal/repository"
	"github.com/dmello/typetrack/internal/worker"
)

// ImportResult reports how a legacy import request was queued.
type ImportResult struct {
	Queued  int `json:"queued"`
	Batches int `json:"batches"`
}

// ImportService handles legacy record import business logic. The actual
// row conversion and insertion runs on the worker pool; this service
// validates, batches, and submits.
type ImportService interface {
	ImportLegacyRecords(ctx context.Context, externalID string, records []map[string]any) (*ImportResult, error)
}

type importService struct {
	userRepo  repository.UserRepository
	testRepo  repository.TestRepository
	pool      *worker.Pool
	mapping   fieldmap.Mapping
	batchSize int
}

// NewImportService creates a new ImportService
func NewImportService(userRepo repository.UserRepository, testRepo repository.TestRepository,
	pool *worker.Pool, batchSize int) ImportService {
	if batchSize <= 0 {
		batchSize = 200
	}
	return &importService{
		userRepo:  userRepo,
		testRepo:  testRepo,
		pool:      pool,
		mapping:   fieldmap.Default(),
		batchSize: batchSize,
	}
}

func (s *importService) ImportLegacyRecords(ctx context.Context, externalID string, records []map[string]any) (*ImportResult, error) {
	log := logger.FromContext(ctx)

	if externalID == "" {
		return nil, errors.NewValidationError("external_id", "is required")
	}
	if len(records) == 0 {
		return nil, errors.NewValidationError("records", "must not be empty")
	}

	user, err := s.userRepo.GetByExternalID(ctx, externalID)
	if err != nil {
		log.Error("failed to resolve user for import: %v", err)
		return nil, errors.NewStorageError(err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user", externalID)
	}

	queued, batches := 0, 0
	for start := 0; start < len(records); start += s.batchSize {
		end := start + s.batchSize
		if end > len(records) {
			end = len(records)
		}
		ok := s.pool.TrySubmit(&worker.ImportRecordsJob{
			TestRepo: s.testRepo,
			Mapping:  s.mapping,
			UserID:   user.ID,
			Records:  records[start:end],
		})
		if !ok {
			log.Warn("import queue full: user_id=%d, queued=%d of %d", user.ID, queued, len(records))
			return nil, errors.NewUnavailableError("import queue is full, retry later")
		}
		queued += end - start
		batches++
	}

	log.Info("queued legacy import: user_id=%d, records=%d, batches=%d", user.ID, queued, batches)
	return &ImportResult{Queued: queued, Batches: batches}, nil
}
