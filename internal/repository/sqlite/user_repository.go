package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmello/typetrack/internal/logger"
	"github.com/dmello/typetrack/internal/models"
	"github.com/dmello/typetrack/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository implementation
func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// Upsert inserts or refreshes the user keyed on the external identity id.
// Profile fields are last-write-wins; a nil field leaves the stored value
// untouched.
func (r *userRepository) Upsert(ctx context.Context, externalID string, email, displayName *string) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("upserting user: external_id=%s", externalID)

	var u models.User
	err := r.db.QueryRowContext(ctx, `
INSERT INTO users (external_id, email, display_name)
VALUES (?, ?, ?)
ON CONFLICT(external_id) DO UPDATE SET
    email = COALESCE(excluded.email, email),
    display_name = COALESCE(excluded.display_name, display_name),
    updated_at = CURRENT_TIMESTAMP
RETURNING id, external_id, email, display_name, created_at, updated_at
`, externalID, email, displayName).Scan(&u.ID, &u.ExternalID, &u.Email, &u.DisplayName, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		log.Error("failed to upsert user: %v", err)
		return nil, err
	}
	log.Debug("user upserted: id=%d", u.ID)
	return &u, nil
}

func (r *userRepository) GetByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("getting user: external_id=%s", externalID)

	var u models.User
	err := r.db.QueryRowContext(ctx, `
SELECT id, external_id, email, display_name, created_at, updated_at
FROM users
WHERE external_id = ?
`, externalID).Scan(&u.ID, &u.ExternalID, &u.Email, &u.DisplayName, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("user not found: external_id=%s", externalID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Get(ctx context.Context, id int64) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("getting user: id=%d", id)

	var u models.User
	err := r.db.QueryRowContext(ctx, `
SELECT id, external_id, email, display_name, created_at, updated_at
FROM users
WHERE id = ?
`, id).Scan(&u.ID, &u.ExternalID, &u.Email, &u.DisplayName, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("user not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, err
	}
	return &u, nil
}
