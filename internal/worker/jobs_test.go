package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmello/typetrack/internal/fieldmap"
	"github.com/dmello/typetrack/internal/models"
	"github.com/dmello/typetrack/internal/testutil/mocks"
)

func TestImportRecordsJobSkipsBadRows(t *testing.T) {
	testRepo := new(mocks.MockTestRepository)

	var inserted []models.TestRecord
	testRepo.On("Insert", mock.Anything, mock.AnythingOfType("models.TestRecord")).
		Run(func(args mock.Arguments) { inserted = append(inserted, args.Get(1).(models.TestRecord)) }).
		Return(nil)

	job := &ImportRecordsJob{
		TestRepo: testRepo,
		Mapping:  fieldmap.Default(),
		UserID:   7,
		Records: []map[string]any{
			{ // good: all counters, wpm carried over
				"mode": "time", "wpm": 88.0, "duration": 60.0,
				"totalChars": 300, "correctChars": 285, "incorrectChars": 15,
				"timestamp": 1680000000.0,
			},
			{ // good: correct derived from total - incorrect, wpm recomputed
				"mode": "words", "duration": 30.0,
				"totalChars": 150, "incorrectChars": 10,
				"timestamp": "2023-05-01 12:00:00",
			},
			{ // skipped: unknown mode
				"mode": "sprint", "totalChars": 100, "correctChars": 100,
				"timestamp": 1680000000.0,
			},
			{ // skipped: no timestamp
				"mode": "time", "totalChars": 100, "correctChars": 100,
			},
			{ // skipped: counters inconsistent
				"mode": "time", "totalChars": 100, "correctChars": 90, "incorrectChars": 20,
				"timestamp": 1680000000.0,
			},
		},
	}

	require.NoError(t, job.Run(context.Background()))
	require.Len(t, inserted, 2)

	assert.Equal(t, 88.0, inserted[0].WPM)
	assert.Equal(t, 95.0, inserted[0].Accuracy)
	assert.Equal(t, int64(7), inserted[0].UserID)

	assert.Equal(t, 140, inserted[1].CorrectCharacters)
	// 140 correct chars over 30s is 56 WPM, recomputed because the export
	// carried no wpm field.
	assert.Equal(t, 56.0, inserted[1].WPM)
}

func TestImportRecordsJobInsertFailureCountsAsSkip(t *testing.T) {
	testRepo := new(mocks.MockTestRepository)
	testRepo.On("Insert", mock.Anything, mock.Anything).Return(assert.AnError)

	job := &ImportRecordsJob{
		TestRepo: testRepo,
		Mapping:  fieldmap.Default(),
		UserID:   7,
		Records: []map[string]any{
			{
				"mode": "time", "duration": 60.0,
				"totalChars": 300, "correctChars": 285, "incorrectChars": 15,
				"timestamp": 1680000000.0,
			},
		},
	}

	// A failed insert is skipped, not fatal for the batch.
	require.NoError(t, job.Run(context.Background()))
	testRepo.AssertExpectations(t)
}
