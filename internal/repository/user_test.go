package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/pngfun/backend/internal/entity"
	"github.com/pngfun/backend/internal/repository"
	"github.com/pngfun/backend/pkg/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type UserTestSuite struct {
	suite.Suite

	ctx      context.Context
	userRepo repository.UserRepository
}

func TestUserSuite(t *testing.T) {
	suite.Run(t, new(UserTestSuite))
}

func (suite *UserTestSuite) SetupTest() {
	suite.ctx = testutil.MockContext()
	testutil.CreateFixtureDb(suite.ctx)
	suite.userRepo = repository.NewUserRepository()
}

func (suite *UserTestSuite) TestGetUser() {
	t := suite.T()

	user, err := suite.userRepo.GetByWalletAddress(suite.ctx, testutil.User1.WalletAddress)
	require.NoError(t, err)
	require.Equal(t, testutil.User1.ID, user.ID)
	require.True(t, user.TotalWLDEarned.Equal(decimal.NewFromInt(5)))

	user, err = suite.userRepo.GetByUsername(suite.ctx, "bob")
	require.NoError(t, err)
	require.Equal(t, testutil.User2.ID, user.ID)

	user, err = suite.userRepo.GetByNullifier(suite.ctx, "0xnullifier1")
	require.NoError(t, err)
	require.Equal(t, testutil.User1.ID, user.ID)

	_, err = suite.userRepo.GetByUsername(suite.ctx, "nobody")
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	users, err := suite.userRepo.GetByIDs(suite.ctx, []string{"user1", "user3", "user9"})
	require.NoError(t, err)
	require.Len(t, users, 2)
}

func (suite *UserTestSuite) TestCreateDuplicatedWallet() {
	err := suite.userRepo.Create(suite.ctx, &entity.User{
		Base:          entity.Base{ID: uuid.NewString()},
		WalletAddress: testutil.User1.WalletAddress,
	})
	require.ErrorIs(suite.T(), err, gorm.ErrDuplicatedKey)
}

func (suite *UserTestSuite) TestUpsert() {
	t := suite.T()

	// Existing wallet keeps its stats and gets the new username.
	user, err := suite.userRepo.Upsert(suite.ctx, &entity.User{
		Base:          entity.Base{ID: uuid.NewString()},
		WalletAddress: testutil.User2.WalletAddress,
		Username:      sql.NullString{Valid: true, String: "bobby"},
	})
	require.NoError(t, err)
	require.Equal(t, testutil.User2.ID, user.ID)
	require.Equal(t, "bobby", user.Username.String)
	require.Equal(t, 1, user.TotalWins)

	// Empty fields do not overwrite stored ones.
	user, err = suite.userRepo.Upsert(suite.ctx, &entity.User{
		Base:          entity.Base{ID: uuid.NewString()},
		WalletAddress: testutil.User2.WalletAddress,
	})
	require.NoError(t, err)
	require.Equal(t, "bobby", user.Username.String)

	// New wallet is inserted.
	user, err = suite.userRepo.Upsert(suite.ctx, &entity.User{
		Base:          entity.Base{ID: "user4"},
		WalletAddress: "0x4000000000000000000000000000000000000004",
	})
	require.NoError(t, err)
	require.Equal(t, "user4", user.ID)
	require.False(t, user.Username.Valid)
}

func (suite *UserTestSuite) TestLeaderboard() {
	t := suite.T()

	users, err := suite.userRepo.GetLeaderboard(suite.ctx, 10)
	require.NoError(t, err)
	require.Len(t, users, 3)
	require.Equal(t, []string{"user1", "user2", "user3"}, []string{users[0].ID, users[1].ID, users[2].ID})

	users, err = suite.userRepo.GetLeaderboard(suite.ctx, 1)
	require.NoError(t, err)
	require.Len(t, users, 1)
}

func (suite *UserTestSuite) TestUpdateStats() {
	t := suite.T()

	require.NoError(t, suite.userRepo.UpdateWorldID(suite.ctx, "user3", "0xnullifier3", "device"))
	require.NoError(t, suite.userRepo.CompleteOnboarding(suite.ctx, "user3", true))
	require.NoError(t, suite.userRepo.AddWin(suite.ctx, "user3", decimal.RequireFromString("3.75")))
	require.NoError(t, suite.userRepo.ResetStreak(suite.ctx, []string{"user1", "user2"}))
	require.NoError(t, suite.userRepo.ResetStreak(suite.ctx, nil))

	user, err := suite.userRepo.GetByID(suite.ctx, "user3")
	require.NoError(t, err)
	require.True(t, user.WorldIDVerified)
	require.Equal(t, "0xnullifier3", user.WorldIDNullifier.String)
	require.Equal(t, "device", user.VerificationLevel)
	require.True(t, user.OnboardingCompleted)
	require.True(t, user.NotificationsEnabled)
	require.Equal(t, 1, user.TotalWins)
	require.Equal(t, 1, user.CurrentStreak)
	require.True(t, user.TotalWLDEarned.Equal(decimal.RequireFromString("3.75")), user.TotalWLDEarned.String())

	user, err = suite.userRepo.GetByID(suite.ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, 0, user.CurrentStreak)
	require.Equal(t, 2, user.TotalWins)

	// A nullifier backs one wallet only.
	err = suite.userRepo.UpdateWorldID(suite.ctx, "user2", "0xnullifier1", "orb")
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
