package entity

import "time"

// ProofIntent marks that a user has opened a task for proof upload. A user
// holds at most one marker, which a newer intent overwrites.
type ProofIntent struct {
	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	TaskID string
	Task   Task `gorm:"foreignKey:TaskID"`

	CreatedAt time.Time
	UpdatedAt time.Time
	ExpiredAt time.Time
}
