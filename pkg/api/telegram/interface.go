package telegram

import "context"

type ChatMember struct {
	ID       int64
	Username string
	Status   string
}

// IsActive reports whether the member currently belongs to the chat.
// Restricted and left members do not count.
func (m ChatMember) IsActive() bool {
	switch m.Status {
	case "creator", "administrator", "member":
		return true
	}

	return false
}

type IEndpoint interface {
	GetChatMember(ctx context.Context, chatID string, userID int64) (ChatMember, error)
}
