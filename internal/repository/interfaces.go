package repository

import (
	"context"

	"github.com/dmello/typetrack/internal/models"
)

// UserRepository handles user identity data access
type UserRepository interface {
	Upsert(ctx context.Context, externalID string, email, displayName *string) (*models.User, error)
	GetByExternalID(ctx context.Context, externalID string) (*models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
}

// TestRepository handles test record data access. Records are append-only;
// there is no update or delete.
type TestRepository interface {
	Insert(ctx context.Context, rec models.TestRecord) error
	Get(ctx context.Context, id string) (*models.TestRecord, error)
	List(ctx context.Context, filter models.TestFilter) ([]models.TestRecord, error)
	Count(ctx context.Context, filter models.TestFilter) (int, error)
	Leaderboard(ctx context.Context, filter models.LeaderboardFilter) ([]models.LeaderboardRow, error)
	Summary(ctx context.Context, userID int64) (*models.UserSummary, error)
}

// CharacterStatsRepository handles the persisted per-user character
// accumulators
type CharacterStatsRepository interface {
	Merge(ctx context.Context, userID int64, stats []models.CharacterStat) error
	ListByUser(ctx context.Context, userID int64) ([]models.CharacterAccumulator, error)
}
