package worker

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmello/typetrack/internal/fieldmap"
	"github.com/dmello/typetrack/internal/logger"
	"github.com/dmello/typetrack/internal/metrics"
	"github.com/dmello/typetrack/internal/models"
	"github.com/dmello/typetrack/internal/repository"
)

// ImportRecordsJob inserts one batch of legacy test records for a user.
// Each raw record is resolved through the versioned field-mapping table;
// rows that fail validation are counted and skipped, never fatal.
type ImportRecordsJob struct {
	TestRepo repository.TestRepository
	Mapping  fieldmap.Mapping
	UserID   int64
	Records  []map[string]any
}

func (j *ImportRecordsJob) Name() string { return "import_records" }

func (j *ImportRecordsJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"user_id":         j.UserID,
		"mapping_version": j.Mapping.Version,
	})
	log.Info("importing %d legacy records", len(j.Records))

	imported, skipped := 0, 0
	for _, raw := range j.Records {
		rec, ok := j.convert(raw)
		if !ok {
			skipped++
			continue
		}
		if err := j.TestRepo.Insert(ctx, rec); err != nil {
			log.Warn("failed to insert legacy record: %v", err)
			skipped++
			continue
		}
		imported++
	}

	log.Info("legacy import batch done: imported=%d skipped=%d", imported, skipped)
	return nil
}

// convert resolves a raw legacy record into a TestRecord. It reports false
// when the record lacks the fields needed to satisfy the schema invariants.
func (j *ImportRecordsJob) convert(raw map[string]any) (models.TestRecord, bool) {
	resolved := j.Mapping.Resolve(raw)

	mode := fieldmap.String(resolved, fieldmap.TargetTestMode)
	if !models.ValidMode(mode) {
		return models.TestRecord{}, false
	}

	total := fieldmap.Int(resolved, fieldmap.TargetTotalCharacters)
	correct := fieldmap.Int(resolved, fieldmap.TargetCorrectCharacters)
	incorrect := fieldmap.Int(resolved, fieldmap.TargetIncorrectCharacters)
	if total < 0 || correct < 0 || incorrect < 0 {
		return models.TestRecord{}, false
	}
	// Tolerate exports that only carried two of the three counters.
	if total == 0 {
		total = correct + incorrect
	} else if correct == 0 && incorrect <= total {
		correct = total - incorrect
	}
	if total != correct+incorrect {
		return models.TestRecord{}, false
	}

	createdAt := fieldmap.Time(resolved, fieldmap.TargetCreatedAt)
	if createdAt.IsZero() {
		return models.TestRecord{}, false
	}

	duration := fieldmap.Float(resolved, fieldmap.TargetActualDuration)

	rec := models.TestRecord{
		ID:                  uuid.NewString(),
		UserID:              j.UserID,
		WPM:                 fieldmap.Float(resolved, fieldmap.TargetWPM),
		RawWPM:              fieldmap.Float(resolved, fieldmap.TargetRawWPM),
		Accuracy:            metrics.Accuracy(correct, total),
		TestMode:            mode,
		TimeLimit:           fieldmap.Int(resolved, fieldmap.TargetTimeLimit),
		WordLimit:           fieldmap.Int(resolved, fieldmap.TargetWordLimit),
		TotalCharacters:     total,
		CorrectCharacters:   correct,
		IncorrectCharacters: incorrect,
		ActualDuration:      duration,
		CreatedAt:           createdAt,
	}

	// Recompute what the legacy export didn't carry.
	if rec.WPM == 0 {
		rec.WPM = metrics.Round2(metrics.WPM(correct, duration))
	}
	if rec.RawWPM == 0 {
		rec.RawWPM = metrics.Round2(metrics.RawWPM(total, duration))
	}
	if _, ok := resolved[fieldmap.TargetConsistency]; ok {
		c := metrics.Round2(fieldmap.Float(resolved, fieldmap.TargetConsistency))
		rec.Consistency = &c
	}
	return rec, true
}
