package common

import (
	"context"

	"github.com/rewardlab/backend/internal/entity"
	"github.com/rewardlab/backend/internal/repository"
	"github.com/rewardlab/backend/pkg/api/telegram"
	"github.com/rewardlab/backend/pkg/xcontext"
)

// IsChannelMember asks Telegram whether the user belongs to the required
// channel. Any oracle failure counts as not a member, so a Telegram outage
// can never hand out rewards to outsiders.
func IsChannelMember(
	ctx context.Context,
	telegramEndpoint telegram.IEndpoint,
	settingRepo repository.SettingRepository,
	telegramID int64,
) bool {
	cfg := xcontext.Configs(ctx)
	if cfg.Telegram.SkipMembershipCheck {
		return true
	}

	channelID, err := settingRepo.Get(ctx, entity.SettingChannelID)
	if err != nil || channelID == "" {
		channelID = cfg.Telegram.ChannelID
	}

	// No channel configured means there is nothing to gate on.
	if channelID == "" {
		return true
	}

	member, err := telegramEndpoint.GetChatMember(ctx, channelID, telegramID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot check the channel membership: %v", err)
		return false
	}

	return member.IsActive()
}
