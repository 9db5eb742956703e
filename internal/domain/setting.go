package domain

import (
	"context"

	"github.com/rewardlab/backend/internal/common"
	"github.com/rewardlab/backend/internal/entity"
	"github.com/rewardlab/backend/internal/model"
	"github.com/rewardlab/backend/internal/repository"
	"github.com/rewardlab/backend/pkg/errorx"
	"github.com/rewardlab/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
)

var editableSettings = []string{
	entity.SettingChannelID,
	entity.SettingChannelLink,
	entity.SettingSupportLink,
}

type SettingDomain interface {
	GetSettings(context.Context, *model.GetSettingsRequest) (*model.GetSettingsResponse, error)
	UpdateSetting(context.Context, *model.UpdateSettingRequest) (*model.UpdateSettingResponse, error)
}

type settingDomain struct {
	settingRepo  repository.SettingRepository
	roleVerifier *common.GlobalRoleVerifier
}

func NewSettingDomain(
	settingRepo repository.SettingRepository,
	userRepo repository.UserRepository,
) *settingDomain {
	return &settingDomain{
		settingRepo:  settingRepo,
		roleVerifier: common.NewGlobalRoleVerifier(userRepo),
	}
}

func (d *settingDomain) GetSettings(
	ctx context.Context, req *model.GetSettingsRequest,
) (*model.GetSettingsResponse, error) {
	settings, err := d.settingRepo.GetAll(ctx)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot get the settings: %v", err)
		settings = map[string]string{}
	}

	cfg := xcontext.Configs(ctx)
	return &model.GetSettingsResponse{
		ChannelLink: pick(settings, entity.SettingChannelLink, cfg.Telegram.ChannelLink),
		SupportLink: pick(settings, entity.SettingSupportLink, cfg.Telegram.SupportLink),
	}, nil
}

func pick(settings map[string]string, key, fallback string) string {
	if value, ok := settings[key]; ok && value != "" {
		return value
	}

	return fallback
}

func (d *settingDomain) UpdateSetting(
	ctx context.Context, req *model.UpdateSettingRequest,
) (*model.UpdateSettingResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.AdminRole); err != nil {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if !slices.Contains(editableSettings, req.Key) {
		return nil, errorx.New(errorx.BadRequest, "Not supported setting %s", req.Key)
	}

	if err := d.settingRepo.Set(ctx, req.Key, req.Value); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update the setting: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateSettingResponse{}, nil
}
