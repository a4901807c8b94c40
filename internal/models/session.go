package models

import "time"

// Session is one login's session-history row, keyed by the issued token.
type Session struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	SessionToken string    `gorm:"size:512;not null" json:"-"`
	Device       string    `gorm:"size:128" json:"device"`
	Browser      string    `gorm:"size:64" json:"browser"`
	Location     string    `gorm:"size:128" json:"location"`
	IPAddress    string    `gorm:"size:64" json:"ip_address"`
	UserAgent    string    `gorm:"size:512" json:"-"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	LastActivity time.Time `json:"last_activity"`
	CreatedAt    time.Time `json:"created_at"`
}
