package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rewardlab/backend/internal/entity"
	"github.com/rewardlab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, data *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*entity.User, error)
	GetByReferralCode(ctx context.Context, code string) (*entity.User, error)
	UpdateName(ctx context.Context, id, name string) error
	RecordAdView(ctx context.Context, id string, reward uint64) error
	StartBoost(ctx context.Context, id string, threshold int, until time.Time) (bool, error)
	ClaimDaily(ctx context.Context, id string, reward uint64, dayStart, now time.Time) error
	SetReferredBy(ctx context.Context, id, referrerID string, reward uint64) error
	CreditReferrer(ctx context.Context, id string, reward uint64) error
	IncreaseBalance(ctx context.Context, id string, amount uint64) error
	GetLeaderBoard(ctx context.Context, orderField string, offset, limit int) ([]entity.User, error)
	Count(ctx context.Context) (int64, error)
}

type userRepository struct{}

func NewUserRepository() *userRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, data *entity.User) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Where("telegram_id=?", telegramID).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) GetByReferralCode(ctx context.Context, code string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Where("referral_code=?", code).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) UpdateName(ctx context.Context, id, name string) error {
	return xcontext.DB(ctx).Model(&entity.User{}).Where("id=?", id).Update("name", name).Error
}

// RecordAdView credits one ad view. All columns move relatively, so
// concurrent views never overwrite each other's streak progress.
func (r *userRepository) RecordAdView(ctx context.Context, id string, reward uint64) error {
	tx := xcontext.DB(ctx).Model(&entity.User{}).Where("id=?", id).
		Updates(map[string]any{
			"balance":     gorm.Expr("balance+?", reward),
			"ads_watched": gorm.Expr("ads_watched+1"),
			"ad_streak":   gorm.Expr("ad_streak+1"),
		})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// StartBoost flips the boost on and resets the streak once it reached the
// threshold. The guard in the WHERE clause picks a single winner among
// concurrent views; losers see false.
func (r *userRepository) StartBoost(
	ctx context.Context, id string, threshold int, until time.Time,
) (bool, error) {
	tx := xcontext.DB(ctx).Model(&entity.User{}).
		Where("id=? AND ad_streak >= ?", id, threshold).
		Updates(map[string]any{
			"ad_streak":          0,
			"boost_active_until": until,
			"boost_count":        gorm.Expr("boost_count+1"),
		})

	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

// ClaimDaily credits the daily reward only if no claim was recorded today.
// The guard in the WHERE clause makes concurrent claims credit exactly once.
func (r *userRepository) ClaimDaily(
	ctx context.Context, id string, reward uint64, dayStart, now time.Time,
) error {
	tx := xcontext.DB(ctx).Model(&entity.User{}).
		Where("id=? AND (last_daily_claim IS NULL OR last_daily_claim < ?)", id, dayStart).
		Updates(map[string]any{
			"balance":          gorm.Expr("balance+?", reward),
			"last_daily_claim": now,
		})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// SetReferredBy binds the user to a referrer and credits the referee reward.
// The IS NULL guard rejects a second referral no matter how racy the calls.
func (r *userRepository) SetReferredBy(ctx context.Context, id, referrerID string, reward uint64) error {
	tx := xcontext.DB(ctx).Model(&entity.User{}).
		Where("id=? AND referred_by IS NULL", id).
		Updates(map[string]any{
			"referred_by": referrerID,
			"balance":     gorm.Expr("balance+?", reward),
		})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *userRepository) CreditReferrer(ctx context.Context, id string, reward uint64) error {
	tx := xcontext.DB(ctx).Model(&entity.User{}).
		Where("id=?", id).
		Updates(map[string]any{
			"balance":        gorm.Expr("balance+?", reward),
			"referral_count": gorm.Expr("referral_count+1"),
		})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *userRepository) IncreaseBalance(ctx context.Context, id string, amount uint64) error {
	tx := xcontext.DB(ctx).Model(&entity.User{}).
		Where("id=?", id).
		Update("balance", gorm.Expr("balance+?", amount))

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *userRepository) GetLeaderBoard(
	ctx context.Context, orderField string, offset, limit int,
) ([]entity.User, error) {
	var result []entity.User
	err := xcontext.DB(ctx).Model(&entity.User{}).
		Order(orderField + " DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := xcontext.DB(ctx).Model(&entity.User{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}
