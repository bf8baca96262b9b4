package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/dmello/typetrack/internal/errors"
	"github.com/dmello/typetrack/internal/models"
	"github.com/dmello/typetrack/internal/testutil/mocks"
)

func TestUpsertUser(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	email := "typist@example.com"
	userRepo.On("Upsert", mock.Anything, "ext-1", &email, (*string)(nil)).
		Return(&models.User{ID: 1, ExternalID: "ext-1", Email: &email}, nil)

	svc := NewUserService(userRepo)

	user, err := svc.UpsertUser(context.Background(), models.Identity{ExternalID: "ext-1", Email: &email})
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	userRepo.AssertExpectations(t)
}

func TestUpsertUserRequiresExternalID(t *testing.T) {
	svc := NewUserService(new(mocks.MockUserRepository))

	_, err := svc.UpsertUser(context.Background(), models.Identity{})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeValidation, err.(*apperrors.AppError).Code)
}

func TestResolveUserNotFound(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	userRepo.On("GetByExternalID", mock.Anything, "ghost").Return(nil, nil)

	svc := NewUserService(userRepo)

	_, err := svc.ResolveUser(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeNotFound, err.(*apperrors.AppError).Code)
}
