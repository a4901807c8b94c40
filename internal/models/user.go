package models

import "time"

// User is an account that can authenticate against the API.
type User struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username    string    `gorm:"size:64;not null;uniqueIndex" json:"username"`
	Email       string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password    string    `gorm:"size:128;not null" json:"-"`
	Picture     string    `gorm:"size:255" json:"picture"`
	Phone       string    `gorm:"size:32" json:"phone"`
	MobilePhone string    `gorm:"size:32" json:"mobile_phone"`
	Location    string    `gorm:"size:128" json:"location"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserPreferences holds display settings, one row per user.
type UserPreferences struct {
	ID             uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         uint   `gorm:"not null;uniqueIndex" json:"user_id"`
	Language       string `gorm:"size:8" json:"language"`
	Timezone       string `gorm:"size:64" json:"timezone"`
	TimeFormat     string `gorm:"size:8" json:"time_format"`
	DateFormat     string `gorm:"size:32" json:"date_format"`
	FirstDayOfWeek string `gorm:"size:16" json:"first_day_of_week"`
}

// WorkingStatus is a user's self-reported availability window.
type WorkingStatus struct {
	ID                      uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID                  uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	Status                  string    `gorm:"size:32;not null" json:"status"`
	StartDate               string    `gorm:"size:10" json:"start_date"`
	EndDate                 string    `gorm:"size:10" json:"end_date"`
	DisableNotifications    bool      `gorm:"default:false" json:"disable_notifications"`
	DisableOnlineIndication bool      `gorm:"default:false" json:"disable_online_indication"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}
