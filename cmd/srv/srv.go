package main

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rewardlab/backend/config"
	"github.com/rewardlab/backend/internal/domain"
	"github.com/rewardlab/backend/internal/repository"
	"github.com/rewardlab/backend/pkg/api/telegram"
	"github.com/rewardlab/backend/pkg/authenticator"
	"github.com/rewardlab/backend/pkg/logger"
	"github.com/rewardlab/backend/pkg/router"
	"github.com/rewardlab/backend/pkg/storage"
	"github.com/rewardlab/backend/pkg/xcontext"
	"github.com/rewardlab/backend/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App
	ctx context.Context

	configs *config.Configs

	userRepo        repository.UserRepository
	taskRepo        repository.TaskRepository
	submissionRepo  repository.SubmissionRepository
	proofIntentRepo repository.ProofIntentRepository
	settingRepo     repository.SettingRepository

	authDomain       domain.AuthDomain
	userDomain       domain.UserDomain
	rewardDomain     domain.RewardDomain
	taskDomain       domain.TaskDomain
	submissionDomain domain.SubmissionDomain
	statisticDomain  domain.StatisticDomain
	settingDomain    domain.SettingDomain

	storage          storage.Storage
	redisClient      xredis.Client
	telegramEndpoint telegram.IEndpoint

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig() {
	// Values from .env fill in whatever the environment leaves unset.
	godotenv.Load()

	s.configs = &config.Configs{
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnvAsInt("LOG_LEVEL", logger.INFO),
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			User:     getEnv("MYSQL_USER", "rewardlab"),
			Password: getEnv("MYSQL_PASSWORD", "rewardlab"),
			Database: getEnv("MYSQL_DATABASE", "rewardlab"),
		},
		ApiServer: config.ServerConfigs{
			Host:         getEnv("API_HOST", "localhost"),
			Port:         getEnv("API_PORT", "8080"),
			Cert:         getEnv("API_CERT", ""),
			Key:          getEnv("API_KEY", ""),
			MaxLimit:     getEnvAsInt("API_MAX_LIMIT", 100),
			DefaultLimit: getEnvAsInt("API_DEFAULT_LIMIT", 20),
		},
		Auth: config.AuthConfigs{
			TokenSecret: getEnv("TOKEN_SECRET", "token_secret"),
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: getEnvAsDuration("ACCESS_TOKEN_DURATION", 24*time.Hour),
			},
			SkipVerification: getEnvAsBool("SKIP_INITDATA_VERIFICATION", false),
		},
		Telegram: config.TelegramConfigs{
			BotToken:            getEnv("TELEGRAM_BOT_TOKEN", ""),
			BotUsername:         getEnv("TELEGRAM_BOT_USERNAME", ""),
			ChannelID:           getEnv("TELEGRAM_CHANNEL_ID", ""),
			ChannelLink:         getEnv("TELEGRAM_CHANNEL_LINK", ""),
			SupportLink:         getEnv("TELEGRAM_SUPPORT_LINK", ""),
			RequestTimeout:      getEnvAsDuration("TELEGRAM_REQUEST_TIMEOUT", 10*time.Second),
			SkipMembershipCheck: getEnvAsBool("SKIP_MEMBERSHIP_CHECK", false),
		},
		Reward: config.RewardConfigs{
			AdReward:          uint64(getEnvAsInt("AD_REWARD", 100)),
			DailyReward:       uint64(getEnvAsInt("DAILY_REWARD", 50)),
			ReferralReward:    uint64(getEnvAsInt("REFERRAL_REWARD", 200)),
			AdStreakThreshold: getEnvAsInt("AD_STREAK_THRESHOLD", 3),
			BoostDuration:     getEnvAsDuration("BOOST_DURATION", 2*time.Hour),
			ProofIntentTTL:    getEnvAsDuration("PROOF_INTENT_TTL", 15*time.Minute),
		},
		File: config.FileConfigs{
			MaxSize:        int64(getEnvAsInt("MAX_UPLOAD_SIZE", 5*1024*1024)),
			ThumbnailWidth: uint(getEnvAsInt("THUMBNAIL_WIDTH", 512)),
		},
		Storage: config.StorageConfigs{
			Backend:  getEnv("STORAGE_BACKEND", "local"),
			LocalDir: getEnv("STORAGE_LOCAL_DIR", "./uploads"),
			S3: storage.S3Configs{
				Region:         getEnv("S3_REGION", ""),
				Endpoint:       getEnv("S3_ENDPOINT", ""),
				PublicEndpoint: getEnv("S3_PUBLIC_ENDPOINT", ""),
				AccessKey:      getEnv("S3_ACCESS_KEY", ""),
				SecretKey:      getEnv("S3_SECRET_KEY", ""),
				Bucket:         getEnv("S3_BUCKET", ""),
				SSLDisabled:    getEnvAsBool("S3_SSL_DISABLED", false),
			},
		},
		Redis: config.RedisConfigs{
			Addr:           getEnv("REDIS_ADDR", "localhost:6379"),
			LeaderboardTTL: getEnvAsDuration("LEADERBOARD_TTL", time.Minute),
		},
	}

	if s.configs.IsProduction() {
		if s.configs.Telegram.BotToken == "" {
			panic("refuse to start in production without a telegram bot token")
		}

		if s.configs.Auth.SkipVerification {
			panic("refuse to skip init data verification in production")
		}

		if s.configs.Telegram.SkipMembershipCheck {
			panic("refuse to skip the membership check in production")
		}
	}

	s.ctx = xcontext.WithConfigs(context.Background(), s.configs)
}

func (s *srv) loadLogger() {
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(s.configs.LogLevel))
}

func (s *srv) loadDatabase() {
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       s.configs.Database.ConnectionString(),
		DefaultStringSize:         256,
		DisableDatetimePrecision:  true,
		DontSupportRenameIndex:    true,
		DontSupportRenameColumn:   true,
		SkipInitializeWithVersion: false,
	}), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithDB(s.ctx, db)
}

func (s *srv) loadEndpoint() {
	s.ctx = xcontext.WithHTTPClient(s.ctx, &http.Client{
		Timeout: s.configs.Telegram.RequestTimeout,
	})

	s.telegramEndpoint = telegram.New(s.configs.Telegram.BotToken)
}

func (s *srv) loadStorage() {
	switch s.configs.Storage.Backend {
	case "s3":
		s.storage = storage.NewS3Storage(s.configs.Storage.S3)
	default:
		localStorage, err := storage.NewLocalStorage(s.configs.Storage.LocalDir)
		if err != nil {
			panic(err)
		}

		s.storage = localStorage
	}
}

func (s *srv) loadRedis() {
	redisClient, err := xredis.NewClient(s.ctx)
	if err != nil {
		// The leaderboard cache is an optimization, not a dependency.
		xcontext.Logger(s.ctx).Warnf("Cannot connect to redis: %v", err)
		return
	}

	s.redisClient = redisClient
}

func (s *srv) loadTokenEngine() {
	s.ctx = xcontext.WithTokenEngine(s.ctx,
		authenticator.NewTokenEngine(s.configs.Auth.TokenSecret))
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.taskRepo = repository.NewTaskRepository()
	s.submissionRepo = repository.NewSubmissionRepository()
	s.proofIntentRepo = repository.NewProofIntentRepository()
	s.settingRepo = repository.NewSettingRepository()
}

func (s *srv) loadDomains() {
	s.authDomain = domain.NewAuthDomain(s.userRepo)
	s.userDomain = domain.NewUserDomain(s.userRepo, s.settingRepo, s.telegramEndpoint)
	s.rewardDomain = domain.NewRewardDomain(s.userRepo, s.settingRepo, s.telegramEndpoint)
	s.taskDomain = domain.NewTaskDomain(s.taskRepo, s.userRepo)
	s.submissionDomain = domain.NewSubmissionDomain(
		s.submissionRepo, s.taskRepo, s.userRepo, s.proofIntentRepo,
		s.settingRepo, s.storage, s.telegramEndpoint)
	s.statisticDomain = domain.NewStatisticDomain(s.userRepo, s.redisClient)
	s.settingDomain = domain.NewSettingDomain(s.settingRepo, s.userRepo)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}

	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}

	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}

	return fallback
}
