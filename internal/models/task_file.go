package models

import "time"

// TaskFile records an uploaded attachment for a task. The bytes live on
// disk under the configured upload directory; this row holds the metadata.
type TaskFile struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TaskID       uint      `gorm:"not null;index" json:"task_id"`
	Filename     string    `gorm:"size:255;not null" json:"filename"`
	OriginalName string    `gorm:"size:255;not null" json:"original_name"`
	FilePath     string    `gorm:"size:512;not null" json:"file_path"`
	Description  string    `gorm:"type:text" json:"description"`
	FileSize     int64     `json:"file_size"`
	CreatedAt    time.Time `json:"created_at"`
}
