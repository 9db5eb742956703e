package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rewardlab/backend/internal/common"
	"github.com/rewardlab/backend/internal/entity"
	"github.com/rewardlab/backend/internal/model"
	"github.com/rewardlab/backend/internal/repository"
	"github.com/rewardlab/backend/pkg/errorx"
	"github.com/rewardlab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type TaskDomain interface {
	GetTasks(context.Context, *model.GetTasksRequest) (*model.GetTasksResponse, error)
	Create(context.Context, *model.CreateTaskRequest) (*model.CreateTaskResponse, error)
	Update(context.Context, *model.UpdateTaskRequest) (*model.UpdateTaskResponse, error)
	Delete(context.Context, *model.DeleteTaskRequest) (*model.DeleteTaskResponse, error)
}

type taskDomain struct {
	taskRepo     repository.TaskRepository
	roleVerifier *common.GlobalRoleVerifier
}

func NewTaskDomain(
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
) *taskDomain {
	return &taskDomain{
		taskRepo:     taskRepo,
		roleVerifier: common.NewGlobalRoleVerifier(userRepo),
	}
}

func (d *taskDomain) GetTasks(ctx context.Context, req *model.GetTasksRequest) (*model.GetTasksResponse, error) {
	tasks, err := d.taskRepo.GetActiveList(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the task list: %v", err)
		return nil, errorx.Unknown
	}

	result := make([]model.Task, 0, len(tasks))
	for i := range tasks {
		result = append(result, common.ConvertTask(&tasks[i]))
	}

	return &model.GetTasksResponse{Tasks: result}, nil
}

func (d *taskDomain) Create(ctx context.Context, req *model.CreateTaskRequest) (*model.CreateTaskResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.AdminRole); err != nil {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty title")
	}

	task := &entity.Task{
		Base:        entity.Base{ID: uuid.NewString()},
		Title:       req.Title,
		Description: req.Description,
		Link:        req.Link,
		Reward:      req.Reward,
		Active:      true,
	}

	if err := d.taskRepo.Create(ctx, task); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create the task: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateTaskResponse{ID: task.ID}, nil
}

func (d *taskDomain) Update(ctx context.Context, req *model.UpdateTaskRequest) (*model.UpdateTaskResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.AdminRole); err != nil {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if _, err := d.taskRepo.GetByID(ctx, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found task")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the task: %v", err)
		return nil, errorx.Unknown
	}

	updateMap := map[string]any{}
	if req.Title != nil {
		updateMap["title"] = *req.Title
	}

	if req.Description != nil {
		updateMap["description"] = *req.Description
	}

	if req.Link != nil {
		updateMap["link"] = *req.Link
	}

	if req.Reward != nil {
		updateMap["reward"] = *req.Reward
	}

	if req.Active != nil {
		updateMap["active"] = *req.Active
	}

	if len(updateMap) == 0 {
		return &model.UpdateTaskResponse{}, nil
	}

	if err := d.taskRepo.UpdateByID(ctx, req.ID, updateMap); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update the task: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateTaskResponse{}, nil
}

// Delete removes the task and every submission referring to it.
func (d *taskDomain) Delete(ctx context.Context, req *model.DeleteTaskRequest) (*model.DeleteTaskResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.AdminRole); err != nil {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if _, err := d.taskRepo.GetByID(ctx, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found task")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the task: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.taskRepo.DeleteByID(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete the task: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.DeleteTaskResponse{}, nil
}
