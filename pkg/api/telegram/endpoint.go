package telegram

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rewardlab/backend/pkg/api"
)

const apiURL = "https://api.telegram.org"

type Endpoint struct {
	BotToken string

	apiGenerator api.Generator
}

func New(botToken string) *Endpoint {
	return &Endpoint{
		BotToken:     botToken,
		apiGenerator: api.NewGenerator(),
	}
}

func (e *Endpoint) GetChatMember(ctx context.Context, chatID string, userID int64) (ChatMember, error) {
	resp, err := e.apiGenerator.New(apiURL, "/bot%s/getChatMember", e.BotToken).
		Query(api.Parameter{
			"chat_id": chatID,
			"user_id": strconv.FormatInt(userID, 10),
		}).GET(ctx)
	if err != nil {
		return ChatMember{}, err
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return ChatMember{}, fmt.Errorf("invalid response body (%T)", resp.Body)
	}

	if ok, err := body.GetBool("ok"); err != nil || !ok {
		desc, _ := body.GetString("description")
		return ChatMember{}, fmt.Errorf("telegram api responded not ok: %s", desc)
	}

	result, err := body.GetJSON("result")
	if err != nil {
		return ChatMember{}, err
	}

	status, err := result.GetString("status")
	if err != nil {
		return ChatMember{}, err
	}

	member := ChatMember{Status: status}
	if user, err := result.GetJSON("user"); err == nil && user != nil {
		member.ID, _ = user.GetInt("id")
		member.Username, _ = user.GetString("username")
	}

	return member, nil
}
