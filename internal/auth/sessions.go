package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/pinboardhq/pinboard/internal/apperr"
	"github.com/pinboardhq/pinboard/internal/models"
	"gorm.io/gorm"
)

// SessionInfo describes the client that opened a session.
type SessionInfo struct {
	Device    string
	Browser   string
	Location  string
	IPAddress string
	UserAgent string
}

// DetectClient derives a coarse device/browser pair from a User-Agent
// string. Order matters: Chrome and Edge UAs also contain "Safari".
func DetectClient(userAgent string) (device, browser string) {
	device, browser = "Unknown Device", "Unknown Browser"
	switch {
	case strings.Contains(userAgent, "Edg"):
		return "Generic Windows edge", "Edge"
	case strings.Contains(userAgent, "Chrome"):
		return "Generic Linux chrome", "Chrome"
	case strings.Contains(userAgent, "Firefox"):
		return "Generic Linux firefox", "Firefox"
	case strings.Contains(userAgent, "Safari"):
		return "Generic Mac safari", "Safari"
	}
	return device, browser
}

// RecordSession inserts a session-history row for an issued token.
func RecordSession(db *gorm.DB, userID uint, token string, info SessionInfo) (*models.Session, error) {
	s := models.Session{
		UserID:       userID,
		SessionToken: token,
		Device:       info.Device,
		Browser:      info.Browser,
		Location:     info.Location,
		IPAddress:    info.IPAddress,
		UserAgent:    info.UserAgent,
		IsActive:     true,
		LastActivity: time.Now(),
	}
	if err := db.Create(&s).Error; err != nil {
		return nil, fmt.Errorf("auth: record session: %w", err)
	}
	return &s, nil
}

// ListSessions returns the user's session history, most recent activity
// first.
func ListSessions(db *gorm.DB, userID uint) ([]models.Session, error) {
	var sessions []models.Session
	if err := db.Where("user_id = ?", userID).
		Order("last_activity DESC").Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("auth: list sessions: %w", err)
	}
	return sessions, nil
}

// LogoutSession marks one of the user's sessions inactive. A session id
// belonging to a different user is reported as not found.
func LogoutSession(db *gorm.DB, userID, sessionID uint) error {
	var count int64
	if err := db.Model(&models.Session{}).
		Where("id = ? AND user_id = ?", sessionID, userID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("auth: find session %d: %w", sessionID, err)
	}
	if count == 0 {
		return fmt.Errorf("auth: %w: session %d", apperr.ErrNotFound, sessionID)
	}
	if err := db.Model(&models.Session{}).Where("id = ?", sessionID).
		Update("is_active", false).Error; err != nil {
		return fmt.Errorf("auth: logout session %d: %w", sessionID, err)
	}
	return nil
}

// LogoutOthers marks all of the user's sessions inactive except the one
// holding currentToken.
func LogoutOthers(db *gorm.DB, userID uint, currentToken string) error {
	if err := db.Model(&models.Session{}).
		Where("user_id = ? AND session_token != ?", userID, currentToken).
		Update("is_active", false).Error; err != nil {
		return fmt.Errorf("auth: logout others for %d: %w", userID, err)
	}
	return nil
}

// TouchSession bumps last_activity for the session holding token.
func TouchSession(db *gorm.DB, token string) error {
	if err := db.Model(&models.Session{}).
		Where("session_token = ? AND is_active = ?", token, true).
		Update("last_activity", time.Now()).Error; err != nil {
		return fmt.Errorf("auth: touch session: %w", err)
	}
	return nil
}

// SweepInactive marks active sessions whose last activity predates the
// cutoff as inactive and returns how many were swept.
func SweepInactive(db *gorm.DB, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	res := db.Model(&models.Session{}).
		Where("is_active = ? AND last_activity < ?", true, cutoff).
		Update("is_active", false)
	if res.Error != nil {
		return 0, fmt.Errorf("auth: sweep sessions: %w", res.Error)
	}
	return res.RowsAffected, nil
}
