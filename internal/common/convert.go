package common

import (
	"time"

	"github.com/rewardlab/backend/internal/entity"
	"github.com/rewardlab/backend/internal/model"
)

func ConvertUser(user *entity.User) model.User {
	result := model.User{
		ID:            user.ID,
		TelegramID:    user.TelegramID,
		Name:          user.Name,
		Role:          user.Role,
		Balance:       user.Balance,
		AdsWatched:    user.AdsWatched,
		AdStreak:      user.AdStreak,
		BoostCount:    user.BoostCount,
		ReferralCode:  user.ReferralCode,
		ReferralCount: user.ReferralCount,
	}

	if user.BoostActiveUntil.Valid {
		result.BoostActiveUntil = user.BoostActiveUntil.Time.Format(time.RFC3339)
	}

	if user.LastDailyClaim.Valid {
		result.LastDailyClaim = user.LastDailyClaim.Time.Format(time.RFC3339)
	}

	return result
}

func ConvertTask(task *entity.Task) model.Task {
	return model.Task{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Link:        task.Link,
		Reward:      task.Reward,
		Active:      task.Active,
		CreatedAt:   task.CreatedAt.Format(time.RFC3339),
	}
}

func ConvertSubmission(submission *entity.Submission) model.Submission {
	result := model.Submission{
		ID:           submission.ID,
		TaskID:       submission.TaskID,
		UserID:       submission.UserID,
		ProofURL:     submission.ProofURL,
		Status:       string(submission.Status),
		ReviewReason: submission.ReviewReason,
		CreatedAt:    submission.CreatedAt.Format(time.RFC3339),
	}

	if !submission.ReviewedAt.IsZero() {
		result.ReviewedAt = submission.ReviewedAt.Format(time.RFC3339)
	}

	return result
}
