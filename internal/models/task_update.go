package models

import "time"

// TaskUpdate is a free-text note posted on a task.
type TaskUpdate struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TaskID    uint      `gorm:"not null;index" json:"task_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`

	Comments  []UpdateComment  `gorm:"foreignKey:UpdateID" json:"-"`
	Reactions []UpdateReaction `gorm:"foreignKey:UpdateID" json:"-"`
	Likes     []UpdateLike     `gorm:"foreignKey:UpdateID" json:"-"`
}

// UpdateComment is a threaded comment under a task update.
type UpdateComment struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UpdateID  uint      `gorm:"not null;index" json:"update_id"`
	UserID    uint      `json:"user_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// UpdateReaction is one user's reaction to an update. A user has at most
// one reaction per update; posting a different type replaces it.
type UpdateReaction struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UpdateID     uint      `gorm:"not null;uniqueIndex:idx_reaction_update_user" json:"update_id"`
	UserID       uint      `gorm:"not null;uniqueIndex:idx_reaction_update_user" json:"user_id"`
	ReactionType string    `gorm:"size:32;not null" json:"reaction_type"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UpdateLike is a simple per-user like toggle on an update.
type UpdateLike struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UpdateID  uint      `gorm:"not null;uniqueIndex:idx_like_update_user" json:"update_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_update_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
