package entity

import (
	"time"

	"github.com/rewardlab/backend/pkg/enum"
)

type SubmissionStatus string

var (
	Pending  = enum.New(SubmissionStatus("pending"))
	Approved = enum.New(SubmissionStatus("approved"))
	Rejected = enum.New(SubmissionStatus("rejected"))
)

type Submission struct {
	Base

	TaskID string
	Task   Task `gorm:"foreignKey:TaskID"`

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	ProofFile string
	ProofURL  string

	Status       SubmissionStatus
	ReviewerID   string
	ReviewReason string
	ReviewedAt   time.Time
}
