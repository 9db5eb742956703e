package entity

import "time"

type Setting struct {
	Key   string `gorm:"primaryKey"`
	Value string

	CreatedAt time.Time
	UpdatedAt time.Time
}

const (
	SettingChannelID   = "channel_id"
	SettingChannelLink = "channel_link"
	SettingSupportLink = "support_link"
)
