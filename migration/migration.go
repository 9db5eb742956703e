package migration

import (
	"context"
	"errors"

	"github.com/rewardlab/backend/internal/entity"
	"github.com/rewardlab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// Migrators run in order. Append only; never reorder or edit a released one.
var migrators = []func(context.Context) error{
	migrate0000,
	migrate0001,
}

func Migrate(ctx context.Context) error {
	if err := xcontext.DB(ctx).AutoMigrate(&entity.Migration{}); err != nil {
		return err
	}

	start := 0
	var latest entity.Migration
	err := xcontext.DB(ctx).Order("version DESC").Take(&latest).Error
	if err == nil {
		start = latest.Version + 1
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	for version := start; version < len(migrators); version++ {
		if err := migrators[version](ctx); err != nil {
			return err
		}

		if err := xcontext.DB(ctx).Create(&entity.Migration{Version: version}).Error; err != nil {
			return err
		}

		xcontext.Logger(ctx).Infof("Applied migration %04d", version)
	}

	return nil
}
