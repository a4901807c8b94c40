package task

import (
	"fmt"

	"github.com/pinboardhq/pinboard/internal/apperr"
	"github.com/pinboardhq/pinboard/internal/models"
	"gorm.io/gorm"
)

// Reorder rewrites task positions so that position equals the index of the
// id in orderedIDs. The writes run in one transaction: if any id does not
// exist, the whole operation rolls back and the error names that id. No
// partial reorder is ever observable.
func Reorder(db *gorm.DB, orderedIDs []uint) error {
	if len(orderedIDs) == 0 {
		return fmt.Errorf("task: %w: orderedIds must be a non-empty array", apperr.ErrValidation)
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for i, id := range orderedIDs {
			res := tx.Model(&models.Task{}).Where("id = ?", id).Update("position", i)
			if res.Error != nil {
				return fmt.Errorf("task: reorder %d: %w", id, res.Error)
			}
			if res.RowsAffected == 0 {
				// Position may already equal i; distinguish a no-op
				// write from a missing row before failing.
				var count int64
				if err := tx.Model(&models.Task{}).Where("id = ?", id).Count(&count).Error; err != nil {
					return fmt.Errorf("task: reorder check %d: %w", id, err)
				}
				if count == 0 {
					return fmt.Errorf("task: %w: task %d", apperr.ErrNotFound, id)
				}
			}
		}
		return nil
	})
}
