package repository

import (
	"context"

	"github.com/rewardlab/backend/internal/entity"
	"github.com/rewardlab/backend/pkg/xcontext"
)

type TaskRepository interface {
	Create(ctx context.Context, data *entity.Task) error
	GetByID(ctx context.Context, id string) (*entity.Task, error)
	GetActiveList(ctx context.Context) ([]entity.Task, error)
	UpdateByID(ctx context.Context, id string, data map[string]any) error
	DeleteByID(ctx context.Context, id string) error
}

type taskRepository struct{}

func NewTaskRepository() *taskRepository {
	return &taskRepository{}
}

func (r *taskRepository) Create(ctx context.Context, data *entity.Task) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	var record entity.Task
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *taskRepository) GetActiveList(ctx context.Context) ([]entity.Task, error) {
	var result []entity.Task
	err := xcontext.DB(ctx).Where("active=?", true).Order("created_at ASC").Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *taskRepository) UpdateByID(ctx context.Context, id string, data map[string]any) error {
	return xcontext.DB(ctx).Model(&entity.Task{}).Where("id=?", id).Updates(data).Error
}

// DeleteByID removes the task together with its submissions. Callers run it
// inside a transaction. Both deletes are hard: a deleted task must not leave
// soft-deleted submission rows behind.
func (r *taskRepository) DeleteByID(ctx context.Context, id string) error {
	err := xcontext.DB(ctx).Unscoped().Where("task_id=?", id).Delete(&entity.Submission{}).Error
	if err != nil {
		return err
	}

	return xcontext.DB(ctx).Unscoped().Where("id=?", id).Delete(&entity.Task{}).Error
}
