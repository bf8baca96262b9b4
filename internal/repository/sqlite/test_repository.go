package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"

	"github.com/dmello/typetrack/internal/logger"
	"github.com/dmello/typetrack/internal/models"
	"github.com/dmello/typetrack/internal/repository"
)

type testRepository struct {
	db *sql.DB
}

// NewTestRepository creates a new TestRepository implementation
func NewTestRepository(db *sql.DB) repository.TestRepository {
	return &testRepository{db: db}
}

const testRecordColumns = `id, user_id, wpm, raw_wpm, accuracy, consistency, test_mode, time_limit, word_limit,
       total_characters, correct_characters, incorrect_characters, actual_duration, created_at`

func scanTestRecord(row interface{ Scan(...any) error }) (models.TestRecord, error) {
	var rec models.TestRecord
	err := row.Scan(&rec.ID, &rec.UserID, &rec.WPM, &rec.RawWPM, &rec.Accuracy, &rec.Consistency,
		&rec.TestMode, &rec.TimeLimit, &rec.WordLimit, &rec.TotalCharacters, &rec.CorrectCharacters,
		&rec.IncorrectCharacters, &rec.ActualDuration, &rec.CreatedAt)
	return rec, err
}

func (r *testRepository) Insert(ctx context.Context, rec models.TestRecord) error {
	log := logger.FromContext(ctx).WithPrefix("test_repo")
	log.Debug("inserting test record: id=%s, user_id=%d, mode=%s", rec.ID, rec.UserID, rec.TestMode)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO test_records (
    id, user_id, wpm, raw_wpm, accuracy, consistency, test_mode, time_limit, word_limit,
    total_characters, correct_characters, incorrect_characters, actual_duration, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, rec.ID, rec.UserID, rec.WPM, rec.RawWPM, rec.Accuracy, rec.Consistency, rec.TestMode,
		rec.TimeLimit, rec.WordLimit, rec.TotalCharacters, rec.CorrectCharacters,
		rec.IncorrectCharacters, rec.ActualDuration, rec.CreatedAt)
	if err != nil {
		log.Error("failed to insert test record: %v", err)
	}
	return err
}

func (r *testRepository) Get(ctx context.Context, id string) (*models.TestRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("test_repo")
	log.Debug("getting test record: id=%s", id)

	rec, err := scanTestRecord(r.db.QueryRowContext(ctx, `
SELECT `+testRecordColumns+`
FROM test_records
WHERE id = ?
`, id))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("test record not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get test record: %v", err)
		return nil, err
	}
	return &rec, nil
}

// testFilterWhere applies the user scope and the optional mode/time_limit
// equality filters. List and Count share it so the total count always
// reflects the same restrictions as the page window.
func testFilterWhere(query squirrel.SelectBuilder, filter models.TestFilter) squirrel.SelectBuilder {
	query = query.Where(squirrel.Eq{"user_id": filter.UserID})
	if filter.Mode != "" {
		query = query.Where(squirrel.Eq{"test_mode": filter.Mode})
	}
	if filter.TimeLimit != nil {
		query = query.Where(squirrel.Eq{"time_limit": *filter.TimeLimit})
	}
	return query
}

func (r *testRepository) List(ctx context.Context, filter models.TestFilter) ([]models.TestRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("test_repo")
	log.Debug("listing test records: user_id=%d, mode=%s, limit=%d, offset=%d",
		filter.UserID, filter.Mode, filter.Limit, filter.Offset)

	query := testFilterWhere(sqlBuilder.Select(
		"id", "user_id", "wpm", "raw_wpm", "accuracy", "consistency", "test_mode",
		"time_limit", "word_limit", "total_characters", "correct_characters",
		"incorrect_characters", "actual_duration", "created_at",
	).From("test_records"), filter)

	// History is strictly newest-first.
	query = query.OrderBy("created_at DESC")

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.Limit(uint64(limit)).Offset(uint64(offset))

	sqlText, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlText, args...)
	if err != nil {
		log.Error("failed to list test records: %v", err)
		return nil, err
	}
	defer rows.Close()

	var records []models.TestRecord
	for rows.Next() {
		rec, err := scanTestRecord(rows)
		if err != nil {
			log.Error("failed to scan test record row: %v", err)
			return nil, err
		}
		records = append(records, rec)
	}
	log.Debug("found %d test records", len(records))
	return records, rows.Err()
}

func (r *testRepository) Count(ctx context.Context, filter models.TestFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("test_repo")
	log.Debug("counting test records: user_id=%d, mode=%s", filter.UserID, filter.Mode)

	query := testFilterWhere(sqlBuilder.Select("COUNT(*)").From("test_records"), filter)

	sqlText, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlText, args...).Scan(&count); err != nil {
		log.Error("failed to count test records: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *testRepository) Leaderboard(ctx context.Context, filter models.LeaderboardFilter) ([]models.LeaderboardRow, error) {
	log := logger.FromContext(ctx).WithPrefix("test_repo")
	log.Debug("querying leaderboard: mode=%s, limit=%d", filter.Mode, filter.Limit)

	query := sqlBuilder.Select(
		"t.id", "t.user_id", "u.email", "u.display_name", "t.wpm", "t.raw_wpm",
		"t.accuracy", "t.consistency", "t.test_mode", "t.time_limit",
		"t.total_characters", "t.created_at",
	).From("test_records t").
		Join("users u ON u.id = t.user_id").
		Where(squirrel.Eq{"t.test_mode": filter.Mode})

	if filter.TimeLimit != nil {
		query = query.Where(squirrel.Eq{"t.time_limit": *filter.TimeLimit})
	}
	if filter.Since != nil {
		query = query.Where(squirrel.GtOrEq{"t.created_at": *filter.Since})
	}

	// Ties at equal wpm+accuracy go to the earlier submission.
	query = query.OrderBy("t.wpm DESC", "t.accuracy DESC", "t.created_at ASC")

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query = query.Limit(uint64(limit))

	sqlText, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlText, args...)
	if err != nil {
		log.Error("failed to query leaderboard: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.LeaderboardRow
	for rows.Next() {
		var row models.LeaderboardRow
		if err := rows.Scan(&row.TestID, &row.UserID, &row.Email, &row.DisplayName, &row.WPM,
			&row.RawWPM, &row.Accuracy, &row.Consistency, &row.TestMode, &row.TimeLimit,
			&row.TotalChars, &row.CreatedAt); err != nil {
			log.Error("failed to scan leaderboard row: %v", err)
			return nil, err
		}
		out = append(out, row)
	}
	log.Debug("found %d leaderboard rows", len(out))
	return out, rows.Err()
}

func (r *testRepository) Summary(ctx context.Context, userID int64) (*models.UserSummary, error) {
	log := logger.FromContext(ctx).WithPrefix("test_repo")
	log.Debug("querying summary: user_id=%d", userID)

	var s models.UserSummary
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*),
       COALESCE(MAX(wpm), 0),
       COALESCE(AVG(wpm), 0),
       COALESCE(AVG(accuracy), 0),
       COALESCE(SUM(actual_duration), 0)
FROM test_records
WHERE user_id = ?
`, userID).Scan(&s.TotalTests, &s.BestWPM, &s.AvgWPM, &s.AvgAccuracy, &s.TimeTypedSecs)
	if err != nil {
		log.Error("failed to query summary: %v", err)
		return nil, err
	}
	return &s, nil
}
