package repository_test

import (
	"errors"
	"testing"
	"time"

	"github.com/pngfun/backend/internal/entity"
	"github.com/pngfun/backend/internal/repository"
	"github.com/pngfun/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_challengeRepository_GetActive(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	challengeRepo := repository.NewChallengeRepository()

	challenge, err := challengeRepo.GetActive(ctx, time.Now())
	require.NoError(t, err)
	require.Equal(t, testutil.Challenge1.ID, challenge.ID)

	// A later started active challenge takes over.
	require.NoError(t, challengeRepo.Create(ctx, &entity.Challenge{
		Base:      entity.Base{ID: "challenge4"},
		Title:     "Late",
		StartTime: time.Now().Add(-time.Minute),
		EndTime:   time.Now().Add(time.Hour),
		Status:    entity.ChallengeActive,
	}))

	challenge, err = challengeRepo.GetActive(ctx, time.Now())
	require.NoError(t, err)
	require.Equal(t, "challenge4", challenge.ID)

	_, err = challengeRepo.GetActive(ctx, time.Now().Add(48*time.Hour))
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func Test_challengeRepository_Status(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	challengeRepo := repository.NewChallengeRepository()

	challenges, err := challengeRepo.GetByStatus(ctx, entity.ChallengeActive, entity.ChallengeVoting)
	require.NoError(t, err)
	require.Len(t, challenges, 2)

	challenges, err = challengeRepo.GetEndedBefore(ctx, entity.ChallengeVoting, time.Now())
	require.NoError(t, err)
	require.Len(t, challenges, 1)
	require.Equal(t, testutil.Challenge2.ID, challenges[0].ID)

	challenges, err = challengeRepo.GetEndedBefore(ctx, entity.ChallengeActive, time.Now())
	require.NoError(t, err)
	require.Empty(t, challenges)

	ok, err := challengeRepo.UpdateStatus(ctx, testutil.Challenge2.ID, entity.ChallengeVoting, entity.ChallengeCompleted)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = challengeRepo.UpdateStatus(ctx, testutil.Challenge2.ID, entity.ChallengeVoting, entity.ChallengeCompleted)
	require.NoError(t, err)
	require.False(t, ok)

	challenge, err := challengeRepo.GetByID(ctx, testutil.Challenge2.ID)
	require.NoError(t, err)
	require.Equal(t, entity.ChallengeCompleted, challenge.Status)
}
