package entity

import (
	"database/sql"
	"time"
)

type User struct {
	Base

	TelegramID int64 `gorm:"unique"`
	Name       string
	Role       string `gorm:"default:USER"`

	Balance    uint64
	AdsWatched uint64
	AdStreak   uint64
	BoostCount uint64

	BoostActiveUntil sql.NullTime
	LastDailyClaim   sql.NullTime

	ReferralCode   string `gorm:"unique"`
	ReferralCount  uint64
	ReferredBy     sql.NullString
	ReferredByUser *User `gorm:"foreignKey:ReferredBy"`
}

const (
	AdminRole    = "ADMIN"
	ReviewerRole = "REVIEWER"
	UserRole     = "USER"
)

// BoostActive reports whether a streak boost is running at the given time.
func (u User) BoostActive(now time.Time) bool {
	return u.BoostActiveUntil.Valid && now.Before(u.BoostActiveUntil.Time)
}
