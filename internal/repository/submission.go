package repository

import (
	"context"
	"time"

	"github.com/rewardlab/backend/internal/entity"
	"github.com/rewardlab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type SubmissionRepository interface {
	Create(ctx context.Context, data *entity.Submission) error
	GetByID(ctx context.Context, id string) (*entity.Submission, error)
	GetListByUserID(ctx context.Context, userID string) ([]entity.Submission, error)
	GetPendingList(ctx context.Context, offset, limit int) ([]entity.Submission, error)
	UpdateReviewByID(ctx context.Context, id string, data *entity.Submission) error
}

type submissionRepository struct{}

func NewSubmissionRepository() *submissionRepository {
	return &submissionRepository{}
}

func (r *submissionRepository) Create(ctx context.Context, data *entity.Submission) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *submissionRepository) GetByID(ctx context.Context, id string) (*entity.Submission, error) {
	var record entity.Submission
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *submissionRepository) GetListByUserID(ctx context.Context, userID string) ([]entity.Submission, error) {
	var result []entity.Submission
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *submissionRepository) GetPendingList(ctx context.Context, offset, limit int) ([]entity.Submission, error) {
	var result []entity.Submission
	err := xcontext.DB(ctx).
		Where("status=?", entity.Pending).
		Order("created_at ASC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// UpdateReviewByID records the verdict only while the submission is still
// pending. A zero row count means another reviewer got there first.
func (r *submissionRepository) UpdateReviewByID(ctx context.Context, id string, data *entity.Submission) error {
	if data.ReviewedAt.IsZero() {
		data.ReviewedAt = time.Now()
	}

	tx := xcontext.DB(ctx).Model(&entity.Submission{}).
		Where("id=? AND status=?", id, entity.Pending).
		Updates(map[string]any{
			"status":        data.Status,
			"reviewer_id":   data.ReviewerID,
			"review_reason": data.ReviewReason,
			"reviewed_at":   data.ReviewedAt,
		})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
