package testutil

import (
	"context"

	"github.com/rewardlab/backend/internal/entity"
	"github.com/rewardlab/backend/internal/repository"
)

var (
	User1 = entity.User{
		Base:         entity.Base{ID: "user1"},
		TelegramID:   1001,
		Name:         "alice",
		Role:         entity.UserRole,
		ReferralCode: "ALICE123",
	}

	User2 = entity.User{
		Base:         entity.Base{ID: "user2"},
		TelegramID:   1002,
		Name:         "bob",
		Role:         entity.UserRole,
		ReferralCode: "BOB45678",
	}

	Reviewer = entity.User{
		Base:         entity.Base{ID: "reviewer"},
		TelegramID:   1003,
		Name:         "carol",
		Role:         entity.ReviewerRole,
		ReferralCode: "CAROL999",
	}

	Admin = entity.User{
		Base:         entity.Base{ID: "admin"},
		TelegramID:   1004,
		Name:         "dave",
		Role:         entity.AdminRole,
		ReferralCode: "DAVE0000",
	}

	Task1 = entity.Task{
		Base:        entity.Base{ID: "task1"},
		Title:       "Follow our channel",
		Description: "Join the announcement channel and take a screenshot",
		Link:        "https://t.me/mock_channel",
		Reward:      200,
		Active:      true,
	}

	Task2 = entity.Task{
		Base:   entity.Base{ID: "task2"},
		Title:  "Retired task",
		Reward: 500,
		Active: false,
	}
)

func CreateFixtureDb(ctx context.Context) {
	userRepo := repository.NewUserRepository()
	for _, user := range []entity.User{User1, User2, Reviewer, Admin} {
		if err := userRepo.Create(ctx, &user); err != nil {
			panic(err)
		}
	}

	taskRepo := repository.NewTaskRepository()
	for _, task := range []entity.Task{Task1, Task2} {
		if err := taskRepo.Create(ctx, &task); err != nil {
			panic(err)
		}
	}
}
