package domain

import (
	"context"

	"github.com/rewardlab/backend/internal/common"
	"github.com/rewardlab/backend/internal/model"
	"github.com/rewardlab/backend/internal/repository"
	"github.com/rewardlab/backend/pkg/errorx"
	"github.com/rewardlab/backend/pkg/xcontext"
	"github.com/rewardlab/backend/pkg/xredis"
)

var leaderBoardColumns = map[string]string{
	"balance":        "balance",
	"ads_watched":    "ads_watched",
	"referral_count": "referral_count",
	"boost_count":    "boost_count",
}

type StatisticDomain interface {
	GetLeaderBoard(context.Context, *model.GetLeaderBoardRequest) (*model.GetLeaderBoardResponse, error)
}

type statisticDomain struct {
	userRepo    repository.UserRepository
	redisClient xredis.Client
}

func NewStatisticDomain(userRepo repository.UserRepository, redisClient xredis.Client) *statisticDomain {
	return &statisticDomain{userRepo: userRepo, redisClient: redisClient}
}

// GetLeaderBoard ranks users by one of the reward metrics. Pages are served
// from redis when possible; the database is the fallback, not the cache.
func (d *statisticDomain) GetLeaderBoard(
	ctx context.Context, req *model.GetLeaderBoardRequest,
) (*model.GetLeaderBoardResponse, error) {
	if req.Type == "" {
		req.Type = "balance"
	}

	column, ok := leaderBoardColumns[req.Type]
	if !ok {
		return nil, errorx.New(errorx.BadRequest, "Not supported leaderboard type %s", req.Type)
	}

	cfg := xcontext.Configs(ctx)
	if req.Limit == 0 {
		req.Limit = cfg.ApiServer.DefaultLimit
	}

	if req.Limit < 0 || req.Offset < 0 {
		return nil, errorx.New(errorx.BadRequest, "Limit and offset must not be negative")
	}

	if req.Limit > cfg.ApiServer.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit (%d)", cfg.ApiServer.MaxLimit)
	}

	key := common.RedisKeyLeaderBoard(req.Type, req.Offset, req.Limit)
	if d.redisClient != nil {
		var cached []model.LeaderBoardEntry
		if err := d.redisClient.GetObj(ctx, key, &cached); err == nil {
			return &model.GetLeaderBoardResponse{Data: cached}, nil
		} else if err != xredis.ErrNil {
			xcontext.Logger(ctx).Warnf("Cannot read the leaderboard cache: %v", err)
		}
	}

	users, err := d.userRepo.GetLeaderBoard(ctx, column, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the leaderboard: %v", err)
		return nil, errorx.Unknown
	}

	entries := make([]model.LeaderBoardEntry, 0, len(users))
	for i := range users {
		var value uint64
		switch req.Type {
		case "balance":
			value = users[i].Balance
		case "ads_watched":
			value = users[i].AdsWatched
		case "referral_count":
			value = users[i].ReferralCount
		case "boost_count":
			value = users[i].BoostCount
		}

		entries = append(entries, model.LeaderBoardEntry{
			Rank:  req.Offset + i + 1,
			Name:  users[i].Name,
			Value: value,
		})
	}

	if d.redisClient != nil {
		if err := d.redisClient.SetObj(ctx, key, entries, cfg.Redis.LeaderboardTTL); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot cache the leaderboard: %v", err)
		}
	}

	return &model.GetLeaderBoardResponse{Data: entries}, nil
}
