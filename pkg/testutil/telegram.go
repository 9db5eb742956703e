package testutil

import (
	"context"

	"github.com/rewardlab/backend/pkg/api/telegram"
)

type MockTelegramEndpoint struct {
	GetChatMemberFunc func(ctx context.Context, chatID string, userID int64) (telegram.ChatMember, error)
}

func (m *MockTelegramEndpoint) GetChatMember(
	ctx context.Context, chatID string, userID int64,
) (telegram.ChatMember, error) {
	if m.GetChatMemberFunc != nil {
		return m.GetChatMemberFunc(ctx, chatID, userID)
	}

	return telegram.ChatMember{ID: userID, Status: "member"}, nil
}
