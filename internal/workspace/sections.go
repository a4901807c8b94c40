package workspace

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pinboardhq/pinboard/internal/apperr"
	"github.com/pinboardhq/pinboard/internal/models"
	"gorm.io/gorm"
)

// DefaultSectionOrder is served for workspaces that never saved an order.
var DefaultSectionOrder = []string{
	"Priority", "In Progress", "Next", "AWS", "Event Platform", "On Hold", "Completed",
}

// GetSectionOrder returns the saved section order for a workspace, or the
// default order when none was saved.
func GetSectionOrder(db *gorm.DB, workspaceID uint) ([]string, error) {
	var row models.SectionOrder
	err := db.Where("workspace_id = ?", workspaceID).
		Order("updated_at DESC").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return append([]string(nil), DefaultSectionOrder...), nil
	}
	if err != nil {
		return nil, fmt.Errorf("workspace: get section order %d: %w", workspaceID, err)
	}

	var order []string
	if err := json.Unmarshal([]byte(row.OrderJSON), &order); err != nil {
		return nil, fmt.Errorf("workspace: decode section order %d: %w", workspaceID, err)
	}
	return order, nil
}

// SaveSectionOrder replaces the section order for a workspace.
func SaveSectionOrder(db *gorm.DB, workspaceID uint, order []string) error {
	if order == nil {
		return fmt.Errorf("workspace: %w: order must be an array", apperr.ErrValidation)
	}
	encoded, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("workspace: encode section order: %w", err)
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("workspace_id = ?", workspaceID).
			Delete(&models.SectionOrder{}).Error; err != nil {
			return fmt.Errorf("workspace: clear section order %d: %w", workspaceID, err)
		}
		row := models.SectionOrder{WorkspaceID: workspaceID, OrderJSON: string(encoded)}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("workspace: save section order %d: %w", workspaceID, err)
		}
		return nil
	})
}
