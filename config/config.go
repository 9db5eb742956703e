package config

import (
	"fmt"
	"time"

	"github.com/rewardlab/backend/pkg/storage"
)

type Configs struct {
	Env      string
	LogLevel int

	Database  DatabaseConfigs
	ApiServer ServerConfigs
	Auth      AuthConfigs
	Telegram  TelegramConfigs
	Reward    RewardConfigs
	File      FileConfigs
	Storage   StorageConfigs
	Redis     RedisConfigs
}

// IsProduction reports whether the service runs with production hardening:
// no signature bypass, no membership-check bypass.
func (c Configs) IsProduction() bool {
	return c.Env == "production"
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host         string
	Port         string
	Cert         string
	Key          string
	MaxLimit     int
	DefaultLimit int
}

type AuthConfigs struct {
	TokenSecret string
	AccessToken TokenConfigs

	// SkipVerification trusts the init data claims without checking the
	// signature. It is refused at boot when Env is production.
	SkipVerification bool
}

type TokenConfigs struct {
	Name       string
	Expiration time.Duration
}

type TelegramConfigs struct {
	BotToken       string
	BotUsername    string
	ChannelID      string
	ChannelLink    string
	SupportLink    string
	RequestTimeout time.Duration

	// SkipMembershipCheck treats every user as a channel member. Dev only.
	SkipMembershipCheck bool
}

type RewardConfigs struct {
	AdReward          uint64
	DailyReward       uint64
	ReferralReward    uint64
	AdStreakThreshold int
	BoostDuration     time.Duration
	ProofIntentTTL    time.Duration
}

type FileConfigs struct {
	MaxSize        int64
	ThumbnailWidth uint
}

type StorageConfigs struct {
	// Backend selects the proof store: "s3" or "local".
	Backend  string
	LocalDir string
	S3       storage.S3Configs
}

type RedisConfigs struct {
	Addr string

	// LeaderboardTTL bounds the staleness of cached leaderboard pages.
	LeaderboardTTL time.Duration
}
