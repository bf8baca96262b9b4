package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dmello/typetrack/internal/models"
)

// MockCharacterStatsRepository is a mock implementation of
// repository.CharacterStatsRepository
type MockCharacterStatsRepository struct {
	mock.Mock
}

func (m *MockCharacterStatsRepository) Merge(ctx context.Context, userID int64, stats []models.CharacterStat) error {
	args := m.Called(ctx, userID, stats)
	return args.Error(0)
}

func (m *MockCharacterStatsRepository) ListByUser(ctx context.Context, userID int64) ([]models.CharacterAccumulator, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CharacterAccumulator), args.Error(1)
}
