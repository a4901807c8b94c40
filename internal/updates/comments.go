package updates

import (
	"errors"
	"fmt"

	"github.com/pinboardhq/pinboard/internal/apperr"
	"github.com/pinboardhq/pinboard/internal/models"
	"gorm.io/gorm"
)

// AddComment posts a comment under an update.
func AddComment(db *gorm.DB, updateID, userID uint, text string) (*models.UpdateComment, error) {
	if updateID == 0 || text == "" {
		return nil, fmt.Errorf("updates: %w: update_id and text are required", apperr.ErrValidation)
	}
	c := models.UpdateComment{UpdateID: updateID, UserID: userID, Text: text}
	if err := db.Create(&c).Error; err != nil {
		return nil, fmt.Errorf("updates: add comment: %w", err)
	}
	return &c, nil
}

// ListComments returns an update's comments, oldest first.
func ListComments(db *gorm.DB, updateID uint) ([]models.UpdateComment, error) {
	var rows []models.UpdateComment
	if err := db.Where("update_id = ?", updateID).
		Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("updates: list comments for %d: %w", updateID, err)
	}
	return rows, nil
}

// EditComment replaces a comment's text.
func EditComment(db *gorm.DB, commentID uint, text string) (*models.UpdateComment, error) {
	if text == "" {
		return nil, fmt.Errorf("updates: %w: text is required", apperr.ErrValidation)
	}
	if err := db.Model(&models.UpdateComment{}).Where("id = ?", commentID).
		Update("text", text).Error; err != nil {
		return nil, fmt.Errorf("updates: edit comment %d: %w", commentID, err)
	}

	var c models.UpdateComment
	if err := db.Where("id = ?", commentID).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("updates: %w: comment %d", apperr.ErrNotFound, commentID)
		}
		return nil, fmt.Errorf("updates: get comment %d: %w", commentID, err)
	}
	return &c, nil
}

// DeleteComment removes a comment.
func DeleteComment(db *gorm.DB, commentID uint) error {
	if err := db.Where("id = ?", commentID).Delete(&models.UpdateComment{}).Error; err != nil {
		return fmt.Errorf("updates: delete comment %d: %w", commentID, err)
	}
	return nil
}
