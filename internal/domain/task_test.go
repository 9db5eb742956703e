package domain

import (
	"testing"

	"github.com/rewardlab/backend/internal/entity"
	"github.com/rewardlab/backend/internal/model"
	"github.com/rewardlab/backend/internal/repository"
	"github.com/rewardlab/backend/pkg/testutil"
	"github.com/rewardlab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_taskDomain_GetTasks_OnlyActive(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	d := NewTaskDomain(repository.NewTaskRepository(), repository.NewUserRepository())

	resp, err := d.GetTasks(ctx, &model.GetTasksRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Tasks, 1)
	require.Equal(t, testutil.Task1.ID, resp.Tasks[0].ID)
}

func Test_taskDomain_Create(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	d := NewTaskDomain(repository.NewTaskRepository(), repository.NewUserRepository())

	// Only admins manage tasks.
	_, err := d.Create(testutil.NewMockContextWithUserID(ctx, testutil.User1.ID),
		&model.CreateTaskRequest{Title: "New task", Reward: 10})
	require.Error(t, err)
	require.Equal(t, "Permission denied", err.Error())

	adminCtx := testutil.NewMockContextWithUserID(ctx, testutil.Admin.ID)
	_, err = d.Create(adminCtx, &model.CreateTaskRequest{Reward: 10})
	require.Error(t, err)
	require.Equal(t, "Not allow an empty title", err.Error())

	resp, err := d.Create(adminCtx, &model.CreateTaskRequest{
		Title:  "Invite three friends",
		Reward: 150,
	})
	require.NoError(t, err)

	task, err := repository.NewTaskRepository().GetByID(ctx, resp.ID)
	require.NoError(t, err)
	require.Equal(t, "Invite three friends", task.Title)
	require.Equal(t, uint64(150), task.Reward)
	require.True(t, task.Active)
}

func Test_taskDomain_Update(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	d := NewTaskDomain(repository.NewTaskRepository(), repository.NewUserRepository())
	adminCtx := testutil.NewMockContextWithUserID(ctx, testutil.Admin.ID)

	newReward := uint64(999)
	inactive := false
	_, err := d.Update(adminCtx, &model.UpdateTaskRequest{
		ID:     testutil.Task1.ID,
		Reward: &newReward,
		Active: &inactive,
	})
	require.NoError(t, err)

	task, err := repository.NewTaskRepository().GetByID(ctx, testutil.Task1.ID)
	require.NoError(t, err)
	require.Equal(t, uint64(999), task.Reward)
	require.False(t, task.Active)
	require.Equal(t, testutil.Task1.Title, task.Title)

	_, err = d.Update(adminCtx, &model.UpdateTaskRequest{ID: "missing", Reward: &newReward})
	require.Error(t, err)
	require.Equal(t, "Not found task", err.Error())
}

func Test_taskDomain_Delete_CascadesSubmissions(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	taskRepo := repository.NewTaskRepository()
	submissionRepo := repository.NewSubmissionRepository()
	d := NewTaskDomain(taskRepo, repository.NewUserRepository())

	require.NoError(t, submissionRepo.Create(ctx, &entity.Submission{
		Base:   entity.Base{ID: "submission1"},
		TaskID: testutil.Task1.ID,
		UserID: testutil.User1.ID,
		Status: entity.Pending,
	}))

	adminCtx := testutil.NewMockContextWithUserID(ctx, testutil.Admin.ID)
	_, err := d.Delete(adminCtx, &model.DeleteTaskRequest{ID: testutil.Task1.ID})
	require.NoError(t, err)

	_, err = taskRepo.GetByID(ctx, testutil.Task1.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = submissionRepo.GetByID(ctx, "submission1")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// The rows must be physically gone, not hidden behind deleted_at.
	var count int64
	err = xcontext.DB(ctx).Unscoped().Model(&entity.Submission{}).
		Where("task_id=?", testutil.Task1.ID).Count(&count).Error
	require.NoError(t, err)
	require.Equal(t, int64(0), count)

	err = xcontext.DB(ctx).Unscoped().Model(&entity.Task{}).
		Where("id=?", testutil.Task1.ID).Count(&count).Error
	require.NoError(t, err)
	require.Equal(t, int64(0), count)
}
