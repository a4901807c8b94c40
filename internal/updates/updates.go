// Package updates provides task updates (free-text notes) and their
// comments, reactions, and likes.
package updates

import (
	"fmt"

	"github.com/pinboardhq/pinboard/internal/apperr"
	"github.com/pinboardhq/pinboard/internal/models"
	"gorm.io/gorm"
)

// Post adds a new update to a task.
func Post(db *gorm.DB, taskID uint, text string) (*models.TaskUpdate, error) {
	if taskID == 0 || text == "" {
		return nil, fmt.Errorf("updates: %w: task_id and text are required", apperr.ErrValidation)
	}
	u := models.TaskUpdate{TaskID: taskID, Text: text}
	if err := db.Create(&u).Error; err != nil {
		return nil, fmt.Errorf("updates: post: %w", err)
	}
	return &u, nil
}

// ListForTask returns a task's updates, newest first.
func ListForTask(db *gorm.DB, taskID uint) ([]models.TaskUpdate, error) {
	var rows []models.TaskUpdate
	if err := db.Where("task_id = ?", taskID).
		Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("updates: list for task %d: %w", taskID, err)
	}
	return rows, nil
}

// FeedRow is an update joined with its task's display fields, for the
// cross-board search feed.
type FeedRow struct {
	ID            uint   `json:"id"`
	Text          string `json:"text"`
	CreatedAt     string `json:"created_at"`
	TaskID        uint   `json:"task_id"`
	TaskName      string `json:"task_name"`
	StatusLabel   string `json:"status_label"`
	PriorityLabel string `json:"priority_label"`
}

// Feed returns all updates with task info, newest first. Updates whose
// task is gone are excluded by the inner join.
func Feed(db *gorm.DB) ([]FeedRow, error) {
	var rows []FeedRow
	err := db.Model(&models.TaskUpdate{}).
		Select(`task_updates.id, task_updates.text, task_updates.created_at,
			tasks.id AS task_id, tasks.item AS task_name,
			tasks.status_label, tasks.priority_label`).
		Joins("JOIN tasks ON task_updates.task_id = tasks.id").
		Order("task_updates.created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("updates: feed: %w", err)
	}
	return rows, nil
}
