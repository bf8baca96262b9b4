package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dmello/typetrack/internal/models"
)

// MockTestRepository is a mock implementation of repository.TestRepository
type MockTestRepository struct {
	mock.Mock
}

func (m *MockTestRepository) Insert(ctx context.Context, rec models.TestRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockTestRepository) Get(ctx context.Context, id string) (*models.TestRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TestRecord), args.Error(1)
}

func (m *MockTestRepository) List(ctx context.Context, filter models.TestFilter) ([]models.TestRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TestRecord), args.Error(1)
}

func (m *MockTestRepository) Count(ctx context.Context, filter models.TestFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockTestRepository) Leaderboard(ctx context.Context, filter models.LeaderboardFilter) ([]models.LeaderboardRow, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LeaderboardRow), args.Error(1)
}

func (m *MockTestRepository) Summary(ctx context.Context, userID int64) (*models.UserSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserSummary), args.Error(1)
}
