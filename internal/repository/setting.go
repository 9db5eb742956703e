package repository

import (
	"context"

	"github.com/rewardlab/backend/internal/entity"
	"github.com/rewardlab/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type SettingRepository interface {
	Get(ctx context.Context, key string) (string, error)
	GetAll(ctx context.Context) (map[string]string, error)
	Set(ctx context.Context, key, value string) error
}

type settingRepository struct{}

func NewSettingRepository() *settingRepository {
	return &settingRepository{}
}

func (r *settingRepository) Get(ctx context.Context, key string) (string, error) {
	var record entity.Setting
	if err := xcontext.DB(ctx).Where("`key`=?", key).Take(&record).Error; err != nil {
		return "", err
	}

	return record.Value, nil
}

func (r *settingRepository) GetAll(ctx context.Context) (map[string]string, error) {
	var records []entity.Setting
	if err := xcontext.DB(ctx).Find(&records).Error; err != nil {
		return nil, err
	}

	result := make(map[string]string, len(records))
	for _, record := range records {
		result[record.Key] = record.Value
	}

	return result, nil
}

func (r *settingRepository) Set(ctx context.Context, key, value string) error {
	return xcontext.DB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entity.Setting{Key: key, Value: value}).Error
}
