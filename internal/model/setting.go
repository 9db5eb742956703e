package model

type GetSettingsRequest struct{}

type GetSettingsResponse struct {
	ChannelLink string `json:"channel_link"`
	SupportLink string `json:"support_link"`
}

type UpdateSettingRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type UpdateSettingResponse struct{}
