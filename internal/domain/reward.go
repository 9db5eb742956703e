package domain

import (
	"context"
	"errors"
	"time"

	"github.com/rewardlab/backend/internal/common"
	"github.com/rewardlab/backend/internal/model"
	"github.com/rewardlab/backend/internal/repository"
	"github.com/rewardlab/backend/pkg/api/telegram"
	"github.com/rewardlab/backend/pkg/dateutil"
	"github.com/rewardlab/backend/pkg/errorx"
	"github.com/rewardlab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type RewardDomain interface {
	WatchAd(context.Context, *model.WatchAdRequest) (*model.WatchAdResponse, error)
	GetAdOffer(context.Context, *model.GetAdOfferRequest) (*model.GetAdOfferResponse, error)
	ClaimDaily(context.Context, *model.ClaimDailyRequest) (*model.ClaimDailyResponse, error)
	RegisterReferral(context.Context, *model.RegisterReferralRequest) (*model.RegisterReferralResponse, error)
}

type rewardDomain struct {
	userRepo         repository.UserRepository
	settingRepo      repository.SettingRepository
	telegramEndpoint telegram.IEndpoint
}

func NewRewardDomain(
	userRepo repository.UserRepository,
	settingRepo repository.SettingRepository,
	telegramEndpoint telegram.IEndpoint,
) *rewardDomain {
	return &rewardDomain{
		userRepo:         userRepo,
		settingRepo:      settingRepo,
		telegramEndpoint: telegramEndpoint,
	}
}

// WatchAd credits one rewarded ad view. Every N consecutive views start a
// time-limited boost and reset the streak counter.
func (d *rewardDomain) WatchAd(ctx context.Context, req *model.WatchAdRequest) (*model.WatchAdResponse, error) {
	cfg := xcontext.Configs(ctx)

	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the user: %v", err)
		return nil, errorx.Unknown
	}

	if !common.IsChannelMember(ctx, d.telegramEndpoint, d.settingRepo, user.TelegramID) {
		return nil, errorx.New(errorx.MembershipRequired, "You need to join our channel first")
	}

	if req.Receipt != "" {
		xcontext.Logger(ctx).Debugf("Ad receipt from user %s: %s", user.ID, req.Receipt)
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	reward := cfg.Reward.AdReward
	if err := d.userRepo.RecordAdView(ctx, user.ID, reward); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot record the ad view: %v", err)
		return nil, errorx.Unknown
	}

	until := time.Now().Add(cfg.Reward.BoostDuration)
	boostStarted, err := d.userRepo.StartBoost(ctx, user.ID, cfg.Reward.AdStreakThreshold, until)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot start the boost: %v", err)
		return nil, errorx.Unknown
	}

	user, err = d.userRepo.GetByID(ctx, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the user in transaction: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	resp := &model.WatchAdResponse{
		Reward:         reward,
		Balance:        user.Balance,
		AdStreak:       user.AdStreak,
		AdsToNextBoost: cfg.Reward.AdStreakThreshold - int(user.AdStreak),
		BoostStarted:   boostStarted,
	}

	if boostStarted {
		resp.BoostUntil = until.Format(time.RFC3339)
	}

	return resp, nil
}

// GetAdOffer tells the client whether a rewarded ad is worth showing. The
// actual ad playback happens in the client SDK.
func (d *rewardDomain) GetAdOffer(ctx context.Context, req *model.GetAdOfferRequest) (*model.GetAdOfferResponse, error) {
	return &model.GetAdOfferResponse{
		Available: true,
		Reward:    xcontext.Configs(ctx).Reward.AdReward,
	}, nil
}

// ClaimDaily credits the daily reward at most once per UTC day.
func (d *rewardDomain) ClaimDaily(ctx context.Context, req *model.ClaimDailyRequest) (*model.ClaimDailyResponse, error) {
	cfg := xcontext.Configs(ctx)
	now := time.Now()
	dayStart := dateutil.BeginningOfUTCDay(now)

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the user: %v", err)
		return nil, errorx.Unknown
	}

	if user.LastDailyClaim.Valid && !user.LastDailyClaim.Time.Before(dayStart) {
		return nil, errorx.New(errorx.AlreadyClaimed, "Daily reward already claimed today")
	}

	reward := cfg.Reward.DailyReward
	err = d.userRepo.ClaimDaily(ctx, user.ID, reward, dayStart, now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.AlreadyClaimed, "Daily reward already claimed today")
		}

		xcontext.Logger(ctx).Errorf("Cannot claim the daily reward: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.ClaimDailyResponse{
		Reward:  reward,
		Balance: user.Balance + reward,
	}, nil
}

// RegisterReferral binds the caller to the owner of the given code and pays
// both sides. A user can be referred at most once in their lifetime.
func (d *rewardDomain) RegisterReferral(
	ctx context.Context, req *model.RegisterReferralRequest,
) (*model.RegisterReferralResponse, error) {
	if req.Code == "" {
		return nil, errorx.New(errorx.InvalidCode, "Unknown referral code")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	referrer, err := d.userRepo.GetByReferralCode(ctx, req.Code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.InvalidCode, "Unknown referral code")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the referrer: %v", err)
		return nil, errorx.Unknown
	}

	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the user: %v", err)
		return nil, errorx.Unknown
	}

	if referrer.ID == user.ID {
		return nil, errorx.New(errorx.SelfReferral, "You cannot refer yourself")
	}

	if user.ReferredBy.Valid {
		return nil, errorx.New(errorx.AlreadyReferred, "You have already been referred")
	}

	reward := xcontext.Configs(ctx).Reward.ReferralReward
	if err := d.userRepo.SetReferredBy(ctx, user.ID, referrer.ID, reward); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.AlreadyReferred, "You have already been referred")
		}

		xcontext.Logger(ctx).Errorf("Cannot bind the referral: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.userRepo.CreditReferrer(ctx, referrer.ID, reward); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot credit the referrer: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.RegisterReferralResponse{
		Reward:  reward,
		Balance: user.Balance + reward,
	}, nil
}
