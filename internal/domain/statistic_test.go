package domain

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rewardlab/backend/internal/model"
	"github.com/rewardlab/backend/internal/repository"
	"github.com/rewardlab/backend/pkg/testutil"
	"github.com/rewardlab/backend/pkg/xredis"
	"github.com/stretchr/testify/require"
)

func Test_statisticDomain_GetLeaderBoard(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	userRepo := repository.NewUserRepository()

	require.NoError(t, userRepo.IncreaseBalance(ctx, testutil.User1.ID, 300))
	require.NoError(t, userRepo.IncreaseBalance(ctx, testutil.User2.ID, 500))
	require.NoError(t, userRepo.IncreaseBalance(ctx, testutil.Reviewer.ID, 100))

	d := NewStatisticDomain(userRepo, nil)

	resp, err := d.GetLeaderBoard(ctx, &model.GetLeaderBoardRequest{Type: "balance"})
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(resp.Data), 3)
	require.Equal(t, "bob", resp.Data[0].Name)
	require.Equal(t, uint64(500), resp.Data[0].Value)
	require.Equal(t, 1, resp.Data[0].Rank)
	require.Equal(t, "alice", resp.Data[1].Name)
	require.Equal(t, "carol", resp.Data[2].Name)

	// Pagination keeps the absolute rank.
	resp, err = d.GetLeaderBoard(ctx, &model.GetLeaderBoardRequest{
		Type:   "balance",
		Offset: 1,
		Limit:  1,
	})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	require.Equal(t, "alice", resp.Data[0].Name)
	require.Equal(t, 2, resp.Data[0].Rank)
}

func Test_statisticDomain_GetLeaderBoard_InvalidRequest(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	d := NewStatisticDomain(repository.NewUserRepository(), nil)

	_, err := d.GetLeaderBoard(ctx, &model.GetLeaderBoardRequest{Type: "karma"})
	require.Error(t, err)

	_, err = d.GetLeaderBoard(ctx, &model.GetLeaderBoardRequest{Type: "balance", Limit: 1000})
	require.Error(t, err)
}

func Test_statisticDomain_GetLeaderBoard_CachesPages(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	userRepo := repository.NewUserRepository()
	require.NoError(t, userRepo.IncreaseBalance(ctx, testutil.User1.ID, 300))

	cache := map[string][]byte{}
	redisClient := &testutil.MockRedisClient{
		SetObjFunc: func(ctx context.Context, key string, obj any, ttl time.Duration) error {
			b, err := json.Marshal(obj)
			if err != nil {
				return err
			}

			cache[key] = b
			return nil
		},
		GetObjFunc: func(ctx context.Context, key string, v any) error {
			b, ok := cache[key]
			if !ok {
				return xredis.ErrNil
			}

			return json.Unmarshal(b, v)
		},
	}

	d := NewStatisticDomain(userRepo, redisClient)

	resp, err := d.GetLeaderBoard(ctx, &model.GetLeaderBoardRequest{Type: "balance"})
	require.NoError(t, err)
	require.NotEmpty(t, cache)

	// The next page read skips the database and must not change.
	require.NoError(t, userRepo.IncreaseBalance(ctx, testutil.User2.ID, 9000))
	cached, err := d.GetLeaderBoard(ctx, &model.GetLeaderBoardRequest{Type: "balance"})
	require.NoError(t, err)
	require.Equal(t, resp.Data, cached.Data)
}
