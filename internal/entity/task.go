package entity

type Task struct {
	Base

	Title       string
	Description string
	Link        string
	Reward      uint64
	Active      bool `gorm:"default:true"`
}
