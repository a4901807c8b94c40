package updates

import (
	"errors"
	"fmt"

	"github.com/pinboardhq/pinboard/internal/apperr"
	"github.com/pinboardhq/pinboard/internal/models"
	"gorm.io/gorm"
)

// ReactionResult reports the state of a user's reaction after a toggle.
type ReactionResult struct {
	Reacted      bool    `json:"reacted"`
	ReactionType *string `json:"reaction_type"`
}

// ToggleReaction applies Facebook-style semantics: reacting with the same
// type removes the reaction, a different type replaces it, and no prior
// reaction inserts one.
func ToggleReaction(db *gorm.DB, updateID, userID uint, reactionType string) (*ReactionResult, error) {
	if updateID == 0 {
		return nil, fmt.Errorf("updates: %w: update_id is required", apperr.ErrValidation)
	}
	if reactionType == "" {
		reactionType = "like"
	}

	var result ReactionResult
	err := db.Transaction(func(tx *gorm.DB) error {
		var existing models.UpdateReaction
		err := tx.Where("update_id = ? AND user_id = ?", updateID, userID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			r := models.UpdateReaction{UpdateID: updateID, UserID: userID, ReactionType: reactionType}
			if err := tx.Create(&r).Error; err != nil {
				return fmt.Errorf("updates: add reaction: %w", err)
			}
			result = ReactionResult{Reacted: true, ReactionType: &reactionType}
		case err != nil:
			return fmt.Errorf("updates: find reaction: %w", err)
		case existing.ReactionType == reactionType:
			if err := tx.Delete(&existing).Error; err != nil {
				return fmt.Errorf("updates: remove reaction: %w", err)
			}
			result = ReactionResult{Reacted: false}
		default:
			if err := tx.Model(&existing).Update("reaction_type", reactionType).Error; err != nil {
				return fmt.Errorf("updates: change reaction: %w", err)
			}
			result = ReactionResult{Reacted: true, ReactionType: &reactionType}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ReactionCount is a reaction type with its tally for one update.
type ReactionCount struct {
	ReactionType string `json:"reaction_type"`
	Count        int    `json:"count"`
}

// CountReactions tallies reactions on an update grouped by type.
func CountReactions(db *gorm.DB, updateID uint) ([]ReactionCount, error) {
	var rows []ReactionCount
	err := db.Model(&models.UpdateReaction{}).
		Select("reaction_type, COUNT(*) as count").
		Where("update_id = ?", updateID).
		Group("reaction_type").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("updates: count reactions for %d: %w", updateID, err)
	}
	return rows, nil
}

// UserReaction returns the user's reaction type on an update, nil when the
// user has not reacted.
func UserReaction(db *gorm.DB, updateID, userID uint) (*string, error) {
	var r models.UpdateReaction
	err := db.Where("update_id = ? AND user_id = ?", updateID, userID).First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("updates: user reaction for %d: %w", updateID, err)
	}
	return &r.ReactionType, nil
}

// RemoveReaction deletes a user's reaction from an update.
func RemoveReaction(db *gorm.DB, updateID, userID uint) error {
	if err := db.Where("update_id = ? AND user_id = ?", updateID, userID).
		Delete(&models.UpdateReaction{}).Error; err != nil {
		return fmt.Errorf("updates: remove reaction for %d: %w", updateID, err)
	}
	return nil
}

// LikeResult reports the like count and state after a toggle.
type LikeResult struct {
	Success bool  `json:"success"`
	Count   int64 `json:"count"`
	Liked   bool  `json:"liked"`
}

// ToggleLike flips the user's like on an update and returns the new count.
func ToggleLike(db *gorm.DB, updateID, userID uint) (*LikeResult, error) {
	var result LikeResult
	err := db.Transaction(func(tx *gorm.DB) error {
		var existing models.UpdateLike
		err := tx.Where("update_id = ? AND user_id = ?", updateID, userID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			like := models.UpdateLike{UpdateID: updateID, UserID: userID}
			if err := tx.Create(&like).Error; err != nil {
				return fmt.Errorf("updates: like: %w", err)
			}
			result.Liked = true
		case err != nil:
			return fmt.Errorf("updates: find like: %w", err)
		default:
			if err := tx.Delete(&existing).Error; err != nil {
				return fmt.Errorf("updates: unlike: %w", err)
			}
		}

		if err := tx.Model(&models.UpdateLike{}).
			Where("update_id = ?", updateID).Count(&result.Count).Error; err != nil {
			return fmt.Errorf("updates: count likes: %w", err)
		}
		result.Success = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// CountLikes returns the number of likes on an update.
func CountLikes(db *gorm.DB, updateID uint) (int64, error) {
	var count int64
	if err := db.Model(&models.UpdateLike{}).
		Where("update_id = ?", updateID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("updates: count likes for %d: %w", updateID, err)
	}
	return count, nil
}
