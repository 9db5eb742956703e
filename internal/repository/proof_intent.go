package repository

import (
	"context"
	"time"

	"github.com/rewardlab/backend/internal/entity"
	"github.com/rewardlab/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type ProofIntentRepository interface {
	Upsert(ctx context.Context, data *entity.ProofIntent) error
	Get(ctx context.Context, userID string) (*entity.ProofIntent, error)
	Delete(ctx context.Context, userID string) error
}

type proofIntentRepository struct{}

func NewProofIntentRepository() *proofIntentRepository {
	return &proofIntentRepository{}
}

// Upsert overwrites any previous marker of the user. Last write wins.
func (r *proofIntentRepository) Upsert(ctx context.Context, data *entity.ProofIntent) error {
	return xcontext.DB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"task_id", "expired_at", "updated_at"}),
	}).Create(data).Error
}

// Get returns the marker only while it has not expired.
func (r *proofIntentRepository) Get(ctx context.Context, userID string) (*entity.ProofIntent, error) {
	var record entity.ProofIntent
	err := xcontext.DB(ctx).
		Where("user_id=? AND expired_at > ?", userID, time.Now()).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *proofIntentRepository) Delete(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).Where("user_id=?", userID).Delete(&entity.ProofIntent{}).Error
}
