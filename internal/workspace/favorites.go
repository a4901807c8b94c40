package workspace

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/pinboardhq/pinboard/internal/apperr"
	"github.com/pinboardhq/pinboard/internal/models"
	"gorm.io/gorm"
)

// FavoriteRow is a favorite joined with the workplace name.
type FavoriteRow struct {
	WorkspaceID uint   `json:"workspace_id"`
	Name        string `json:"name"`
}

// ListFavorites returns the user's favorite workplaces, most recently
// added first.
func ListFavorites(db *gorm.DB, userID uint) ([]FavoriteRow, error) {
	var rows []FavoriteRow
	err := db.Model(&models.Favorite{}).
		Select("favorites.workspace_id, workplaces.name").
		Joins("JOIN workplaces ON favorites.workspace_id = workplaces.id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("workspace: list favorites: %w", err)
	}
	return rows, nil
}

// AddFavorite marks a workplace as a favorite for the user. Adding twice
// is a conflict, enforced by the unique index.
func AddFavorite(db *gorm.DB, userID, workspaceID uint) error {
	if _, err := Get(db, workspaceID); err != nil {
		return err
	}
	fav := models.Favorite{UserID: userID, WorkspaceID: workspaceID}
	if err := db.Create(&fav).Error; err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return fmt.Errorf("workspace: %w: already in favorites", apperr.ErrConflict)
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("workspace: %w: already in favorites", apperr.ErrConflict)
		}
		return fmt.Errorf("workspace: add favorite: %w", err)
	}
	return nil
}

// RemoveFavorite unmarks a workplace for the user.
func RemoveFavorite(db *gorm.DB, userID, workspaceID uint) error {
	res := db.Where("user_id = ? AND workspace_id = ?", userID, workspaceID).
		Delete(&models.Favorite{})
	if res.Error != nil {
		return fmt.Errorf("workspace: remove favorite: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("workspace: %w: favorite", apperr.ErrNotFound)
	}
	return nil
}
