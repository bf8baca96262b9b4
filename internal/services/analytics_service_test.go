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
	"github.com/dmello/typetrack/internal/session"
	"github.com/dmello/typetrack/internal/testutil/mocks"
)

func TestGetCharacterAnalyticsFromAccumulators(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	charRepo := new(mocks.MockCharacterStatsRepository)

	userRepo.On("GetByExternalID", mock.Anything, "ext-1").
		Return(&models.User{ID: 7, ExternalID: "ext-1"}, nil)
	charRepo.On("ListByUser", mock.Anything, int64(7)).Return([]models.CharacterAccumulator{
		{Character: "a", TotalTyped: 10, CorrectTyped: 9, IncorrectTyped: 1, SpeedSum: 400, SpeedCount: 10},
		{Character: "q", TotalTyped: 10, CorrectTyped: 5, IncorrectTyped: 5, SpeedSum: 200, SpeedCount: 10},
	}, nil)

	svc := NewAnalyticsService(userRepo, charRepo, session.NewStore(time.Minute))

	entries, err := svc.GetCharacterAnalytics(context.Background(), "ext-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// "q" is weaker than "a" so it ranks first.
	assert.Equal(t, "q", entries[0].Character)
	assert.Equal(t, "a", entries[1].Character)
	assert.Equal(t, 90.0, entries[1].Accuracy)
	assert.Equal(t, 40.0, entries[1].AverageSpeed)
	assert.Greater(t, entries[0].WeaknessScore, entries[1].WeaknessScore)
}

func TestGetCharacterAnalyticsUnknownUser(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	userRepo.On("GetByExternalID", mock.Anything, "ghost").Return(nil, nil)

	svc := NewAnalyticsService(userRepo, new(mocks.MockCharacterStatsRepository), session.NewStore(time.Minute))

	_, err := svc.GetCharacterAnalytics(context.Background(), "ghost")
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
}

func TestSessionKeystrokeRoundTrip(t *testing.T) {
	store := session.NewStore(time.Minute)
	svc := NewAnalyticsService(new(mocks.MockUserRepository),
		new(mocks.MockCharacterStatsRepository), store)
	ctx := context.Background()

	err := svc.RecordKeystrokes(ctx, "sess-1", []session.Keystroke{
		{Character: "t", Correct: true, Speed: 55},
		{Character: "h", Correct: true, Speed: 50},
		{Character: "t", Correct: false},
	})
	require.NoError(t, err)

	entries, err := svc.GetSessionAnalytics(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byChar := map[string]int{}
	for _, e := range entries {
		byChar[e.Character] = e.TotalTyped
	}
	assert.Equal(t, 2, byChar["t"])
	assert.Equal(t, 1, byChar["h"])

	require.NoError(t, svc.EndSession(ctx, "sess-1"))
	_, err = svc.GetSessionAnalytics(ctx, "sess-1")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeNotFound, err.(*apperrors.AppError).Code)
}

func TestRecordKeystrokesValidation(t *testing.T) {
	svc := NewAnalyticsService(new(mocks.MockUserRepository),
		new(mocks.MockCharacterStatsRepository), session.NewStore(time.Minute))
	ctx := context.Background()

	err := svc.RecordKeystrokes(ctx, "", []session.Keystroke{{Character: "a"}})
	require.Error(t, err)

	// Exactly one character per keystroke; multi-byte runes still count as one.
	for _, bad := range []string{"", "ab", "th"} {
		err = svc.RecordKeystrokes(ctx, "sess-1", []session.Keystroke{{Character: bad}})
		require.Error(t, err, "character %q should be rejected", bad)
		assert.Equal(t, apperrors.ErrCodeValidation, err.(*apperrors.AppError).Code)
	}

	err = svc.RecordKeystrokes(ctx, "sess-1", []session.Keystroke{{Character: "é", Correct: true}})
	require.NoError(t, err)
}

func TestEndUnknownSession(t *testing.T) {
	svc := NewAnalyticsService(new(mocks.MockUserRepository),
		new(mocks.MockCharacterStatsRepository), session.NewStore(time.Minute))

	err := svc.EndSession(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeNotFound, err.(*apperrors.AppError).Code)
}
