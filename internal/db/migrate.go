package db

import (
	"errors"
	"fmt"

	"github.com/pinboardhq/pinboard/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AllModels returns the list of all GORM models for migration.
func AllModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.UserPreferences{},
		&models.WorkingStatus{},
		&models.Workplace{},
		&models.Favorite{},
		&models.SectionOrder{},
		&models.Task{},
		&models.ActivityLog{},
		&models.TaskUpdate{},
		&models.UpdateComment{},
		&models.UpdateReaction{},
		&models.UpdateLike{},
		&models.TaskFile{},
		&models.Session{},
	}
}

// AutoMigrate creates or updates all tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}

// SeedAdminUser creates the named admin account if no user with that
// username exists yet. The password is stored bcrypt-hashed.
func SeedAdminUser(db *gorm.DB, username, email, password string) (*models.User, error) {
	var existing models.User
	err := db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("db: check admin user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("db: hash admin password: %w", err)
	}
	user := models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("db: seed admin user %q: %w", username, err)
	}
	return &user, nil
}
