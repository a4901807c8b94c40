// Package task provides task lifecycle operations and the mutation
// pipeline that couples row writes to activity-log entries.
package task

import (
	"errors"
	"fmt"

	"github.com/pinboardhq/pinboard/internal/activity"
	"github.com/pinboardhq/pinboard/internal/apperr"
	"github.com/pinboardhq/pinboard/internal/models"
	"gorm.io/gorm"
)

// Fields holds the mutable task columns as submitted by the caller.
// Update has full-row replacement semantics: every field is written
// verbatim, omitted strings become empty.
type Fields struct {
	Item          string
	Developer     string
	Support       string
	RequestedBy   string
	StatusLabel   string
	StatusColor   string
	PriorityLabel string
	PriorityColor string
	Section       string
	WorkplaceID   uint
	DueDate       *DueDate
}

// ListFilters holds optional filters for listing tasks.
type ListFilters struct {
	Section     string
	WorkplaceID uint
}

// List returns tasks matching the filters, ordered by position then id so
// ties break deterministically for stable board ordering.
func List(db *gorm.DB, filters ListFilters) ([]models.Task, error) {
	q := db.Model(&models.Task{})
	if filters.Section != "" {
		q = q.Where("section = ?", filters.Section)
	}
	if filters.WorkplaceID != 0 {
		q = q.Where("workplace_id = ?", filters.WorkplaceID)
	}

	var tasks []models.Task
	if err := q.Order("position ASC, id ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("task: list: %w", err)
	}
	return tasks, nil
}

// Get retrieves a task by id.
func Get(db *gorm.DB, id uint) (*models.Task, error) {
	var t models.Task
	if err := db.Where("id = ?", id).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("task: %w: %d", apperr.ErrNotFound, id)
		}
		return nil, fmt.Errorf("task: get %d: %w", id, err)
	}
	return &t, nil
}

// Create inserts a new task and appends exactly one task_created activity
// entry attributed to actorID, in a single transaction. Position defaults
// to the end of the board.
func Create(db *gorm.DB, fields Fields, actorID uint) (*models.Task, error) {
	if fields.Item == "" {
		return nil, fmt.Errorf("task: %w: item is required", apperr.ErrValidation)
	}

	t := applyFields(models.Task{}, fields)
	err := db.Transaction(func(tx *gorm.DB) error {
		var maxPos int
		row := tx.Model(&models.Task{}).
			Where("workplace_id = ?", fields.WorkplaceID).
			Select("COALESCE(MAX(position), -1)").Row()
		if err := row.Scan(&maxPos); err != nil {
			return fmt.Errorf("task: next position: %w", err)
		}
		t.Position = maxPos + 1

		if err := tx.Create(&t).Error; err != nil {
			return fmt.Errorf("task: create: %w", err)
		}
		entry := activity.Entry{
			TaskID:     t.ID,
			ActionType: models.ActionTaskCreated,
			FieldName:  "item",
			NewValue:   strPtr(fields.Item),
			UserID:     actorID,
		}
		if _, err := activity.Append(tx, entry); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return Get(db, t.ID)
}

// Update replaces all mutable fields of a task and appends one activity
// entry per tracked field whose value changed. The diff is computed against
// the row as it stood before the write; the row write and the audit appends
// commit or roll back together. The returned changes let callers forward
// the same events elsewhere.
func Update(db *gorm.DB, id uint, fields Fields, actorID uint) (*models.Task, []Change, error) {
	var changes []Change
	err := db.Transaction(func(tx *gorm.DB) error {
		prev, err := Get(tx, id)
		if err != nil {
			return err
		}

		changes = TrackedChanges(*prev, fields)

		next := applyFields(*prev, fields)
		if err := tx.Model(&models.Task{}).Where("id = ?", id).
			Select("item", "developer", "support", "requested_by",
				"status_label", "status_color", "priority_label",
				"priority_color", "section", "due_date").
			Updates(map[string]interface{}{
				"item":           next.Item,
				"developer":      next.Developer,
				"support":        next.Support,
				"requested_by":   next.RequestedBy,
				"status_label":   next.StatusLabel,
				"status_color":   next.StatusColor,
				"priority_label": next.PriorityLabel,
				"priority_color": next.PriorityColor,
				"section":        next.Section,
				"due_date":       next.DueDate,
			}).Error; err != nil {
			return fmt.Errorf("task: update %d: %w", id, err)
		}

		for _, ch := range changes {
			entry := activity.Entry{
				TaskID:     id,
				ActionType: ch.ActionType,
				FieldName:  ch.FieldName,
				OldValue:   ch.OldValue,
				NewValue:   ch.NewValue,
				UserID:     actorID,
			}
			if _, err := activity.Append(tx, entry); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	t, err := Get(db, id)
	if err != nil {
		return nil, nil, err
	}
	return t, changes, nil
}

// Delete removes a task and cascades its updates (with their comments,
// reactions and likes) and file records. Activity-log rows stay behind:
// the audit trail outlives the task.
func Delete(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := Get(tx, id); err != nil {
			return err
		}

		var updateIDs []uint
		if err := tx.Model(&models.TaskUpdate{}).Where("task_id = ?", id).
			Pluck("id", &updateIDs).Error; err != nil {
			return fmt.Errorf("task: collect updates of %d: %w", id, err)
		}
		if len(updateIDs) > 0 {
			for _, m := range []interface{}{
				&models.UpdateComment{}, &models.UpdateReaction{}, &models.UpdateLike{},
			} {
				if err := tx.Where("update_id IN ?", updateIDs).Delete(m).Error; err != nil {
					return fmt.Errorf("task: cascade update children of %d: %w", id, err)
				}
			}
		}
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskUpdate{}).Error; err != nil {
			return fmt.Errorf("task: cascade updates of %d: %w", id, err)
		}
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskFile{}).Error; err != nil {
			return fmt.Errorf("task: cascade files of %d: %w", id, err)
		}
		if err := tx.Where("id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return fmt.Errorf("task: delete %d: %w", id, err)
		}
		return nil
	})
}

// applyFields copies the submitted fields onto a task row. WorkplaceID is
// only written on create; updates keep the task on its board.
func applyFields(t models.Task, f Fields) models.Task {
	t.Item = f.Item
	t.Developer = f.Developer
	t.Support = f.Support
	t.RequestedBy = f.RequestedBy
	t.StatusLabel = f.StatusLabel
	t.StatusColor = f.StatusColor
	t.PriorityLabel = f.PriorityLabel
	t.PriorityColor = f.PriorityColor
	t.Section = f.Section
	if t.ID == 0 {
		t.WorkplaceID = f.WorkplaceID
	}
	t.DueDate = f.DueDate.timePtr()
	return t
}

func strPtr(s string) *string { return &s }
