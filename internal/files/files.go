package files

import (
	"errors"
	"fmt"

	"github.com/pinboardhq/pinboard/internal/apperr"
	"github.com/pinboardhq/pinboard/internal/models"
	"gorm.io/gorm"
)

// Record inserts a metadata row for a stored upload.
func Record(db *gorm.DB, f models.TaskFile) (*models.TaskFile, error) {
	if f.TaskID == 0 || f.Filename == "" {
		return nil, fmt.Errorf("files: %w: task_id and file are required", apperr.ErrValidation)
	}
	if err := db.Create(&f).Error; err != nil {
		return nil, fmt.Errorf("files: record: %w", err)
	}
	return &f, nil
}

// Get returns one file record by id.
func Get(db *gorm.DB, id uint) (*models.TaskFile, error) {
	var f models.TaskFile
	if err := db.Where("id = ?", id).First(&f).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("files: %w: file %d", apperr.ErrNotFound, id)
		}
		return nil, fmt.Errorf("files: get %d: %w", id, err)
	}
	return &f, nil
}

// ListForTask returns a task's file records, newest first.
func ListForTask(db *gorm.DB, taskID uint) ([]models.TaskFile, error) {
	var rows []models.TaskFile
	if err := db.Where("task_id = ?", taskID).
		Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("files: list for task %d: %w", taskID, err)
	}
	return rows, nil
}

// Delete removes a file's metadata row and its bytes from the store.
func Delete(db *gorm.DB, store *Store, id uint) error {
	f, err := Get(db, id)
	if err != nil {
		return err
	}
	if err := store.Remove(f.FilePath); err != nil {
		return err
	}
	if err := db.Where("id = ?", id).Delete(&models.TaskFile{}).Error; err != nil {
		return fmt.Errorf("files: delete %d: %w", id, err)
	}
	return nil
}

// FeedRow is a file record joined with its task's display fields.
type FeedRow struct {
	ID            uint   `json:"id"`
	Filename      string `json:"filename"`
	OriginalName  string `json:"original_name"`
	FileSize      int64  `json:"file_size"`
	CreatedAt     string `json:"created_at"`
	TaskID        uint   `json:"task_id"`
	TaskName      string `json:"task_name"`
	StatusLabel   string `json:"status_label"`
	PriorityLabel string `json:"priority_label"`
}

// Feed returns all files with task info for cross-board search, newest
// first.
func Feed(db *gorm.DB) ([]FeedRow, error) {
	var rows []FeedRow
	err := db.Model(&models.TaskFile{}).
		Select(`task_files.id, task_files.filename, task_files.original_name,
			task_files.file_size, task_files.created_at,
			tasks.id AS task_id, tasks.item AS task_name,
			tasks.status_label, tasks.priority_label`).
		Joins("JOIN tasks ON task_files.task_id = tasks.id").
		Order("task_files.created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("files: feed: %w", err)
	}
	return rows, nil
}
