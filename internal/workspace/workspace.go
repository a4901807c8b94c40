// Package workspace provides workplace (board) management, favorites, and
// section ordering.
package workspace

import (
	"errors"
	"fmt"

	"github.com/pinboardhq/pinboard/internal/apperr"
	"github.com/pinboardhq/pinboard/internal/models"
	"gorm.io/gorm"
)

// List returns all workplaces.
func List(db *gorm.DB) ([]models.Workplace, error) {
	var wps []models.Workplace
	if err := db.Order("id ASC").Find(&wps).Error; err != nil {
		return nil, fmt.Errorf("workspace: list: %w", err)
	}
	return wps, nil
}

// Get retrieves a workplace by id.
func Get(db *gorm.DB, id uint) (*models.Workplace, error) {
	var wp models.Workplace
	if err := db.Where("id = ?", id).First(&wp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("workspace: %w: %d", apperr.ErrNotFound, id)
		}
		return nil, fmt.Errorf("workspace: get %d: %w", id, err)
	}
	return &wp, nil
}

// Create adds a new named workplace.
func Create(db *gorm.DB, name string) (*models.Workplace, error) {
	if name == "" {
		return nil, fmt.Errorf("workspace: %w: name is required", apperr.ErrValidation)
	}
	wp := models.Workplace{Name: name}
	if err := db.Create(&wp).Error; err != nil {
		return nil, fmt.Errorf("workspace: create: %w", err)
	}
	return &wp, nil
}

// Rename updates a workplace's name.
func Rename(db *gorm.DB, id uint, name string) (*models.Workplace, error) {
	if name == "" {
		return nil, fmt.Errorf("workspace: %w: name is required", apperr.ErrValidation)
	}
	if _, err := Get(db, id); err != nil {
		return nil, err
	}
	if err := db.Model(&models.Workplace{}).Where("id = ?", id).Update("name", name).Error; err != nil {
		return nil, fmt.Errorf("workspace: rename %d: %w", id, err)
	}
	return Get(db, id)
}

// Delete removes a workplace. Tasks are deliberately not cascaded: they
// keep their workplace_id and remain reachable by direct filters.
func Delete(db *gorm.DB, id uint) error {
	if err := db.Where("id = ?", id).Delete(&models.Workplace{}).Error; err != nil {
		return fmt.Errorf("workspace: delete %d: %w", id, err)
	}
	return nil
}

// BoardSummary aggregates task counts for one workplace.
type BoardSummary struct {
	ID             uint   `json:"id"`
	BoardName      string `json:"board_name"`
	TaskCount      int    `json:"task_count"`
	CompletedTasks int    `json:"completed_tasks"`
	ActiveTasks    int    `json:"active_tasks"`
}

// Summaries returns every workplace with its task counts, for cross-board
// search.
func Summaries(db *gorm.DB) ([]BoardSummary, error) {
	var rows []BoardSummary
	err := db.Model(&models.Workplace{}).
		Select(`workplaces.id,
			workplaces.name AS board_name,
			COUNT(tasks.id) AS task_count,
			COUNT(CASE WHEN tasks.status_label = 'Completed' THEN 1 END) AS completed_tasks,
			COUNT(CASE WHEN tasks.status_label != 'Completed' THEN 1 END) AS active_tasks`).
		Joins("LEFT JOIN tasks ON workplaces.id = tasks.workplace_id").
		Group("workplaces.id, workplaces.name").
		Order("workplaces.name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("workspace: summaries: %w", err)
	}
	return rows, nil
}
