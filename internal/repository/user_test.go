package repository_test

import (
	"testing"
	"time"

	"github.com/rewardlab/backend/internal/repository"
	"github.com/rewardlab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_userRepository_RecordAdView_RelativeIncrements(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	userRepo := repository.NewUserRepository()

	// Each call moves the counters relative to the stored row, so interleaved
	// views can never overwrite each other's progress with a stale value.
	require.NoError(t, userRepo.RecordAdView(ctx, testutil.User1.ID, 100))
	require.NoError(t, userRepo.RecordAdView(ctx, testutil.User1.ID, 100))

	user, err := userRepo.GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, uint64(2), user.AdStreak)
	require.Equal(t, uint64(2), user.AdsWatched)
	require.Equal(t, uint64(200), user.Balance)
}

func Test_userRepository_StartBoost_SingleWinner(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	userRepo := repository.NewUserRepository()

	until := time.Now().Add(2 * time.Hour)

	// Below the threshold the flip must not fire.
	require.NoError(t, userRepo.RecordAdView(ctx, testutil.User1.ID, 100))
	started, err := userRepo.StartBoost(ctx, testutil.User1.ID, 3, until)
	require.NoError(t, err)
	require.False(t, started)

	require.NoError(t, userRepo.RecordAdView(ctx, testutil.User1.ID, 100))
	require.NoError(t, userRepo.RecordAdView(ctx, testutil.User1.ID, 100))

	started, err = userRepo.StartBoost(ctx, testutil.User1.ID, 3, until)
	require.NoError(t, err)
	require.True(t, started)

	// The guard already consumed the streak; a racing second flip loses.
	started, err = userRepo.StartBoost(ctx, testutil.User1.ID, 3, until)
	require.NoError(t, err)
	require.False(t, started)

	user, err := userRepo.GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, uint64(0), user.AdStreak)
	require.Equal(t, uint64(1), user.BoostCount)
	require.True(t, user.BoostActiveUntil.Valid)
}
