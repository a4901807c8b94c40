package models

import "time"

// Task is one unit of work on a board.
type Task struct {
	ID            uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Item          string     `gorm:"not null" json:"item"`
	Developer     string     `gorm:"size:255" json:"developer"`
	Support       string     `gorm:"size:255" json:"support"`
	RequestedBy   string     `gorm:"size:255" json:"requested_by"`
	StatusLabel   string     `gorm:"size:64" json:"status_label"`
	StatusColor   string     `gorm:"size:16" json:"status_color"`
	PriorityLabel string     `gorm:"size:64" json:"priority_label"`
	PriorityColor string     `gorm:"size:16" json:"priority_color"`
	Section       string     `gorm:"size:128;index" json:"section"`
	WorkplaceID   uint       `gorm:"index" json:"workplace_id"`
	DueDate       *time.Time `json:"due_date"`
	Position      int        `gorm:"default:0" json:"position"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Updates []TaskUpdate `gorm:"foreignKey:TaskID" json:"-"`
	Files   []TaskFile   `gorm:"foreignKey:TaskID" json:"-"`
}
