package testutil

import (
	"context"
	"time"

	"github.com/rewardlab/backend/config"
	"github.com/rewardlab/backend/migration"
	"github.com/rewardlab/backend/pkg/authenticator"
	"github.com/rewardlab/backend/pkg/logger"
	"github.com/rewardlab/backend/pkg/xcontext"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func NewMockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	cfg := &config.Configs{
		Env: "testing",
		ApiServer: config.ServerConfigs{
			MaxLimit:     50,
			DefaultLimit: 20,
		},
		Auth: config.AuthConfigs{
			TokenSecret: "secret",
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: time.Minute,
			},
		},
		Telegram: config.TelegramConfigs{
			BotToken:    "12345:mock-bot-token",
			BotUsername: "mock_bot",
			ChannelID:   "@mock_channel",
			ChannelLink: "https://t.me/mock_channel",
			SupportLink: "https://t.me/mock_support",
		},
		Reward: config.RewardConfigs{
			AdReward:          100,
			DailyReward:       50,
			ReferralReward:    100,
			AdStreakThreshold: 3,
			BoostDuration:     2 * time.Hour,
			ProofIntentTTL:    15 * time.Minute,
		},
		File: config.FileConfigs{
			MaxSize:        5 * 1024 * 1024,
			ThumbnailWidth: 64,
		},
		Redis: config.RedisConfigs{
			LeaderboardTTL: time.Minute,
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithTokenEngine(ctx, authenticator.NewTokenEngine(cfg.Auth.TokenSecret))
	ctx = xcontext.WithDB(ctx, db)

	if err := migration.AutoMigrate(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func NewMockContextWithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = NewMockContext()
	}

	return xcontext.WithRequestUserID(ctx, userID)
}
