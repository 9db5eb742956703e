package model

type AccessToken struct {
	ID         string `json:"id"`
	TelegramID int64  `json:"telegram_id"`
	Name       string `json:"name"`
}

type LoginRequest struct {
	InitData string `json:"init_data"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}
