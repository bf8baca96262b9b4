package sqlite

import (
	"context"
	"database/sql"

	"github.com/dmello/typetrack/internal/logger"
	"github.com/dmello/typetrack/internal/models"
	"github.com/dmello/typetrack/internal/repository"
)

type charStatsRepository struct {
	db *sql.DB
}

// NewCharacterStatsRepository creates a new CharacterStatsRepository implementation
func NewCharacterStatsRepository(db *sql.DB) repository.CharacterStatsRepository {
	return &charStatsRepository{db: db}
}

// Merge folds a session's character counters into the user's persisted
// accumulators. Speed samples collapse into sum/count; a fresh
// difficulty score overrides the stored one, zero leaves it alone.
func (r *charStatsRepository) Merge(ctx context.Context, userID int64, stats []models.CharacterStat) error {
	log := logger.FromContext(ctx).WithPrefix("charstats_repo")
	log.Debug("merging %d character stats: user_id=%d", len(stats), userID)

	if len(stats) == 0 {
		return nil
	}

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
INSERT INTO character_stats (
    user_id, character, total_typed, correct_typed, incorrect_typed,
    speed_sum, speed_count, difficulty_score
) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(user_id, character) DO UPDATE SET
    total_typed = total_typed + excluded.total_typed,
    correct_typed = correct_typed + excluded.correct_typed,
    incorrect_typed = incorrect_typed + excluded.incorrect_typed,
    speed_sum = speed_sum + excluded.speed_sum,
    speed_count = speed_count + excluded.speed_count,
    difficulty_score = CASE WHEN excluded.difficulty_score > 0
                            THEN excluded.difficulty_score
                            ELSE difficulty_score END,
    updated_at = CURRENT_TIMESTAMP
`)
		if err != nil {
			log.Error("failed to prepare merge statement: %v", err)
			return err
		}
		defer stmt.Close()

		for _, st := range stats {
			var speedSum float64
			for _, s := range st.Speeds {
				speedSum += s
			}
			if _, err := stmt.ExecContext(ctx, userID, st.Character, st.TotalTyped,
				st.CorrectTyped, st.IncorrectTyped, speedSum, len(st.Speeds), st.DifficultyScore); err != nil {
				log.Error("failed to merge character %q: %v", st.Character, err)
				return err
			}
		}
		return nil
	})
}

func (r *charStatsRepository) ListByUser(ctx context.Context, userID int64) ([]models.CharacterAccumulator, error) {
	log := logger.FromContext(ctx).WithPrefix("charstats_repo")
	log.Debug("listing character stats: user_id=%d", userID)

	rows, err := r.db.QueryContext(ctx, `
SELECT user_id, character, total_typed, correct_typed, incorrect_typed,
       speed_sum, speed_count, difficulty_score, updated_at
FROM character_stats
WHERE user_id = ?
ORDER BY character ASC
`, userID)
	if err != nil {
		log.Error("failed to list character stats: %v", err)
		return nil, err
	}
	defer rows.Close()

	var accs []models.CharacterAccumulator
	for rows.Next() {
		var a models.CharacterAccumulator
		if err := rows.Scan(&a.UserID, &a.Character, &a.TotalTyped, &a.CorrectTyped,
			&a.IncorrectTyped, &a.SpeedSum, &a.SpeedCount, &a.DifficultyScore, &a.UpdatedAt); err != nil {
			log.Error("failed to scan character stats row: %v", err)
			return nil, err
		}
		accs = append(accs, a)
	}
	log.Debug("found %d character stats", len(accs))
	return accs, rows.Err()
}
