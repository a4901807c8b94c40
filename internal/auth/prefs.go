package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/pinboardhq/pinboard/internal/apperr"
	"github.com/pinboardhq/pinboard/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultPreferences returns the preferences served before a user saves any.
func DefaultPreferences(userID uint) models.UserPreferences {
	return models.UserPreferences{
		UserID:         userID,
		Language:       "en",
		Timezone:       "(GMT+05:00) Islamabad",
		TimeFormat:     "12h",
		DateFormat:     "MMM DD, YYYY",
		FirstDayOfWeek: "monday",
	}
}

// GetPreferences returns the user's saved preferences, or the defaults when
// none exist yet.
func GetPreferences(db *gorm.DB, userID uint) (*models.UserPreferences, error) {
	var prefs models.UserPreferences
	err := db.Where("user_id = ?", userID).First(&prefs).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		defaults := DefaultPreferences(userID)
		return &defaults, nil
	}
	if err != nil {
		return nil, fmt.Errorf("auth: get preferences %d: %w", userID, err)
	}
	return &prefs, nil
}

// SavePreferences upserts the user's preferences. All fields are required.
func SavePreferences(db *gorm.DB, prefs models.UserPreferences) error {
	if prefs.Language == "" || prefs.Timezone == "" || prefs.TimeFormat == "" ||
		prefs.DateFormat == "" || prefs.FirstDayOfWeek == "" {
		return fmt.Errorf("auth: %w: all preference fields are required", apperr.ErrValidation)
	}
	res := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"language", "timezone", "time_format", "date_format", "first_day_of_week",
		}),
	}).Create(&prefs)
	if res.Error != nil {
		return fmt.Errorf("auth: save preferences %d: %w", prefs.UserID, res.Error)
	}
	return nil
}

// GetWorkingStatus returns the user's working status, defaulting to
// in-office for today when none is saved.
func GetWorkingStatus(db *gorm.DB, userID uint) (*models.WorkingStatus, error) {
	var ws models.WorkingStatus
	err := db.Where("user_id = ?", userID).Order("created_at DESC").First(&ws).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		today := time.Now().Format("2006-01-02")
		return &models.WorkingStatus{
			UserID:    userID,
			Status:    "in-office",
			StartDate: today,
			EndDate:   today,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("auth: get working status %d: %w", userID, err)
	}
	return &ws, nil
}

// SaveWorkingStatus upserts the user's working status window.
func SaveWorkingStatus(db *gorm.DB, ws models.WorkingStatus) (*models.WorkingStatus, error) {
	if ws.Status == "" || ws.StartDate == "" || ws.EndDate == "" {
		return nil, fmt.Errorf("auth: %w: status, start_date, and end_date are required", apperr.ErrValidation)
	}
	res := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"status", "start_date", "end_date",
			"disable_notifications", "disable_online_indication",
		}),
	}).Create(&ws)
	if res.Error != nil {
		return nil, fmt.Errorf("auth: save working status %d: %w", ws.UserID, res.Error)
	}
	return GetWorkingStatus(db, ws.UserID)
}
