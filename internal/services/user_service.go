package services

import (
	"context"

	"github.com/dmello/typetrack/internal/errors"
	"github.com/dmello/typetrack/internal/logger"
	"github.com/dmello/typetrack/internal/models"
	"github.com/dmello/typetrack/internal/repository"
)

// UserService handles identity resolution and user upserts
type UserService interface {
	UpsertUser(ctx context.Context, identity models.Identity) (*models.User, error)
	ResolveUser(ctx context.Context, externalID string) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) UpsertUser(ctx context.Context, identity models.Identity) (*models.User, error) {
	log := logger.FromContext(ctx)

	if identity.ExternalID == "" {
		return nil, errors.NewValidationError("external_id", "is required")
	}

	log.Debug("upserting user: external_id=%s", identity.ExternalID)
	user, err := s.userRepo.Upsert(ctx, identity.ExternalID, identity.Email, identity.DisplayName)
	if err != nil {
		log.Error("failed to upsert user: %v", err)
		return nil, errors.NewStorageError(err)
	}
	return user, nil
}

// ResolveUser maps an external identity id to the internal user row,
// failing with NOT_FOUND when no such user exists.
func (s *userService) ResolveUser(ctx context.Context, externalID string) (*models.User, error) {
	log := logger.FromContext(ctx)

	if externalID == "" {
		return nil, errors.NewValidationError("external_id", "is required")
	}

	user, err := s.userRepo.GetByExternalID(ctx, externalID)
	if err != nil {
		log.Error("failed to resolve user: %v", err)
		return nil, errors.NewStorageError(err)
	}
	if user == nil {
		log.Debug("user not found: external_id=%s", externalID)
		return nil, errors.NewNotFoundError("user", externalID)
	}
	return user, nil
}
