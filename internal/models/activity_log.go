package models

import "time"

// Action types recorded in the activity log.
const (
	ActionTaskCreated    = "task_created"
	ActionStatusChange   = "status_change"
	ActionPriorityChange = "priority_change"
	ActionTaskUpdated    = "task_updated"
	ActionDueDateChange  = "due_date_change"
)

// ActivityLog is an immutable audit record of a single field-level change.
// Rows are only ever inserted; they survive deletion of their task.
type ActivityLog struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TaskID     uint      `gorm:"not null;index" json:"task_id"`
	ActionType string    `gorm:"size:32;not null" json:"action_type"`
	FieldName  string    `gorm:"size:64;not null" json:"field_name"`
	OldValue   *string   `json:"old_value"`
	NewValue   *string   `json:"new_value"`
	UserID     uint      `gorm:"index" json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
}
