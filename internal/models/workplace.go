package models

import "time"

// Workplace is a named container of tasks (a board). Deleting a workplace
// does not cascade to its tasks; list filters tolerate dangling references.
type Workplace struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Favorite marks a workplace as a favorite for one user.
type Favorite struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_fav_user_workspace" json:"user_id"`
	WorkspaceID uint      `gorm:"not null;uniqueIndex:idx_fav_user_workspace" json:"workspace_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// SectionOrder persists the display order of sections within a workspace
// as a JSON-encoded array of section names.
type SectionOrder struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	WorkspaceID uint      `gorm:"index" json:"workspace_id"`
	OrderJSON   string    `gorm:"type:text" json:"order_json"`
	UpdatedAt   time.Time `json:"updated_at"`
}
