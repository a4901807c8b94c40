// Package activity provides the append-only audit log for task changes.
package activity

import (
	"fmt"

	"github.com/pinboardhq/pinboard/internal/apperr"
	"github.com/pinboardhq/pinboard/internal/models"
	"gorm.io/gorm"
)

// Entry holds the fields of one audit record to append.
type Entry struct {
	TaskID     uint
	ActionType string
	FieldName  string
	OldValue   *string
	NewValue   *string
	UserID     uint
}

// TaskEntry is an audit row joined with the acting user's display fields.
// Username and Email are nil when the user record no longer exists.
type TaskEntry struct {
	models.ActivityLog
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

// WorkspaceEntry additionally carries the task's item text.
type WorkspaceEntry struct {
	TaskEntry
	TaskName *string `json:"task_name"`
}

// Append inserts one audit record with a server-assigned timestamp.
// Duplicates are allowed: the same field can change many times. Rows are
// never updated or deleted afterwards.
func Append(db *gorm.DB, e Entry) (*models.ActivityLog, error) {
	if e.TaskID == 0 || e.ActionType == "" || e.FieldName == "" {
		return nil, fmt.Errorf("activity: %w: task_id, action_type, and field_name are required", apperr.ErrValidation)
	}
	row := models.ActivityLog{
		TaskID:     e.TaskID,
		ActionType: e.ActionType,
		FieldName:  e.FieldName,
		OldValue:   e.OldValue,
		NewValue:   e.NewValue,
		UserID:     e.UserID,
	}
	if err := db.Create(&row).Error; err != nil {
		return nil, fmt.Errorf("activity: append: %w", err)
	}
	return &row, nil
}

// ListForTask returns a task's audit entries newest first, left-joined with
// the acting user so a missing user yields null display fields rather than
// dropping the row.
func ListForTask(db *gorm.DB, taskID uint) ([]TaskEntry, error) {
	var entries []TaskEntry
	err := db.Model(&models.ActivityLog{}).
		Select("activity_logs.*, users.username, users.email").
		Joins("LEFT JOIN users ON activity_logs.user_id = users.id").
		Where("activity_logs.task_id = ?", taskID).
		Order("activity_logs.created_at DESC, activity_logs.id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("activity: list for task %d: %w", taskID, err)
	}
	return entries, nil
}

// ListForWorkspace returns audit entries joined with user display fields
// and the task's item name. A zero workspaceID returns entries across all
// workspaces.
func ListForWorkspace(db *gorm.DB, workspaceID uint) ([]WorkspaceEntry, error) {
	q := db.Model(&models.ActivityLog{}).
		Select("activity_logs.*, users.username, users.email, tasks.item AS task_name").
		Joins("LEFT JOIN users ON activity_logs.user_id = users.id").
		Joins("LEFT JOIN tasks ON activity_logs.task_id = tasks.id")
	if workspaceID != 0 {
		q = q.Where("tasks.workplace_id = ?", workspaceID)
	}

	var entries []WorkspaceEntry
	if err := q.Order("activity_logs.created_at DESC, activity_logs.id DESC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("activity: list for workspace %d: %w", workspaceID, err)
	}
	return entries, nil
}
