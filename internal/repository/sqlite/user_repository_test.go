package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/dmello/typetrack/internal/repository"
	"github.com/dmello/typetrack/internal/repository/sqlite"
	"github.com/dmello/typetrack/internal/testutil"
)

type UserRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.UserRepository
}

func (s *UserRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewUserRepository(s.db)
}

func (s *UserRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func strPtr(v string) *string { return &v }

func (s *UserRepositorySuite) TestUpsert_CreatesUser() {
	ctx := context.Background()

	u, err := s.repo.Upsert(ctx, "auth0|abc123", strPtr("alice@example.com"), strPtr("Alice"))
	s.Require().NoError(err)
	s.Assert().Greater(u.ID, int64(0))
	s.Assert().Equal("auth0|abc123", u.ExternalID)
	s.Require().NotNil(u.Email)
	s.Assert().Equal("alice@example.com", *u.Email)
}

func (s *UserRepositorySuite) TestUpsert_SameExternalIDIsIdempotent() {
	ctx := context.Background()

	first, err := s.repo.Upsert(ctx, "auth0|abc123", strPtr("alice@example.com"), nil)
	s.Require().NoError(err)

	second, err := s.repo.Upsert(ctx, "auth0|abc123", nil, strPtr("Alice"))
	s.Require().NoError(err)

	s.Assert().Equal(first.ID, second.ID)
	// nil email must not wipe the stored one
	s.Require().NotNil(second.Email)
	s.Assert().Equal("alice@example.com", *second.Email)
	s.Require().NotNil(second.DisplayName)
	s.Assert().Equal("Alice", *second.DisplayName)
}

func (s *UserRepositorySuite) TestUpsert_LastWriteWinsOnProfileFields() {
	ctx := context.Background()

	_, err := s.repo.Upsert(ctx, "ext1", strPtr("old@example.com"), strPtr("Old"))
	s.Require().NoError(err)

	updated, err := s.repo.Upsert(ctx, "ext1", strPtr("new@example.com"), strPtr("New"))
	s.Require().NoError(err)
	s.Assert().Equal("new@example.com", *updated.Email)
	s.Assert().Equal("New", *updated.DisplayName)
}

func (s *UserRepositorySuite) TestGetByExternalID_NotFound() {
	ctx := context.Background()

	u, err := s.repo.GetByExternalID(ctx, "missing")
	s.Require().NoError(err)
	s.Assert().Nil(u)
}

func (s *UserRepositorySuite) TestGet_RoundTrip() {
	ctx := context.Background()

	created, err := s.repo.Upsert(ctx, "ext2", nil, nil)
	s.Require().NoError(err)

	got, err := s.repo.Get(ctx, created.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal("ext2", got.ExternalID)
	s.Assert().Nil(got.Email)
	s.Assert().Nil(got.DisplayName)
}

func TestUserRepositorySuite(t *testing.T) {
	suite.Run(t, new(UserRepositorySuite))
}
