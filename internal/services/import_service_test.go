package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/dmello/typetrack/internal/errors"
	"github.com/dmello/typetrack/internal/models"
	"github.com/dmello/typetrack/internal/testutil/mocks"
	"github.com/dmello/typetrack/internal/worker"
)

func newImportFixture(t *testing.T, batchSize int) (*mocks.MockUserRepository, *mocks.MockTestRepository, ImportService, *worker.Pool) {
	t.Helper()
	userRepo := new(mocks.MockUserRepository)
	testRepo := new(mocks.MockTestRepository)
	pool := worker.NewPool(1, 64)
	pool.Start(context.Background())
	t.Cleanup(pool.Stop)
	return userRepo, testRepo, NewImportService(userRepo, testRepo, pool, batchSize), pool
}

func legacyRecord(wpm float64) map[string]any {
	return map[string]any{
		"wpm":            wpm,
		"acc":            95.0,
		"mode":           "time",
		"duration":       60.0,
		"totalChars":     300,
		"correctChars":   285,
		"incorrectChars": 15,
		"timestamp":      float64(time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC).Unix()),
	}
}

func TestImportLegacyRecordsBatches(t *testing.T) {
	userRepo, testRepo, svc, _ := newImportFixture(t, 2)

	userRepo.On("GetByExternalID", mock.Anything, "ext-1").
		Return(&models.User{ID: 7, ExternalID: "ext-1"}, nil)
	testRepo.On("Insert", mock.Anything, mock.Anything).Return(nil)

	records := []map[string]any{
		legacyRecord(80), legacyRecord(81), legacyRecord(82), legacyRecord(83), legacyRecord(84),
	}

	res, err := svc.ImportLegacyRecords(context.Background(), "ext-1", records)
	require.NoError(t, err)
	assert.Equal(t, 5, res.Queued)
	assert.Equal(t, 3, res.Batches)
}

func TestImportLegacyRecordsUnknownUser(t *testing.T) {
	userRepo, _, svc, _ := newImportFixture(t, 2)
	userRepo.On("GetByExternalID", mock.Anything, "ghost").Return(nil, nil)

	_, err := svc.ImportLegacyRecords(context.Background(), "ghost", []map[string]any{legacyRecord(80)})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeNotFound, err.(*apperrors.AppError).Code)
}

func TestImportLegacyRecordsQueueFull(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	testRepo := new(mocks.MockTestRepository)
	// Pool is never started, so the single queue slot fills and stays full.
	pool := worker.NewPool(1, 1)
	svc := NewImportService(userRepo, testRepo, pool, 1)

	userRepo.On("GetByExternalID", mock.Anything, "ext-1").
		Return(&models.User{ID: 7, ExternalID: "ext-1"}, nil)

	_, err := svc.ImportLegacyRecords(context.Background(), "ext-1",
		[]map[string]any{legacyRecord(80), legacyRecord(81), legacyRecord(82)})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeUnavailable, err.(*apperrors.AppError).Code)
}

func TestImportLegacyRecordsEmpty(t *testing.T) {
	_, _, svc, _ := newImportFixture(t, 2)

	_, err := svc.ImportLegacyRecords(context.Background(), "ext-1", nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeValidation, err.(*apperrors.AppError).Code)
}
