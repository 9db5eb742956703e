package migration

import (
	"context"

	"github.com/rewardlab/backend/internal/entity"
	"github.com/rewardlab/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

// migrate0001 seeds the editable settings with the configured defaults.
func migrate0001(ctx context.Context) error {
	cfg := xcontext.Configs(ctx)
	defaults := []entity.Setting{
		{Key: entity.SettingChannelID, Value: cfg.Telegram.ChannelID},
		{Key: entity.SettingChannelLink, Value: cfg.Telegram.ChannelLink},
		{Key: entity.SettingSupportLink, Value: cfg.Telegram.SupportLink},
	}

	for _, setting := range defaults {
		err := xcontext.DB(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&setting).Error
		if err != nil {
			return err
		}
	}

	return nil
}
