package domain

import (
	"context"
	"fmt"

	"github.com/rewardlab/backend/internal/common"
	"github.com/rewardlab/backend/internal/model"
	"github.com/rewardlab/backend/internal/repository"
	"github.com/rewardlab/backend/pkg/api/telegram"
	"github.com/rewardlab/backend/pkg/errorx"
	"github.com/rewardlab/backend/pkg/xcontext"
)

type UserDomain interface {
	GetMe(context.Context, *model.GetMeRequest) (*model.GetMeResponse, error)
}

type userDomain struct {
	userRepo         repository.UserRepository
	settingRepo      repository.SettingRepository
	telegramEndpoint telegram.IEndpoint
}

func NewUserDomain(
	userRepo repository.UserRepository,
	settingRepo repository.SettingRepository,
	telegramEndpoint telegram.IEndpoint,
) *userDomain {
	return &userDomain{
		userRepo:         userRepo,
		settingRepo:      settingRepo,
		telegramEndpoint: telegramEndpoint,
	}
}

func (d *userDomain) GetMe(ctx context.Context, req *model.GetMeRequest) (*model.GetMeResponse, error) {
	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetMeResponse{
		User: common.ConvertUser(user),
		ReferralLink: fmt.Sprintf("https://t.me/%s?start=%s",
			xcontext.Configs(ctx).Telegram.BotUsername, user.ReferralCode),
		IsMember: common.IsChannelMember(ctx, d.telegramEndpoint, d.settingRepo, user.TelegramID),
	}, nil
}
