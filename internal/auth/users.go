package auth

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/pinboardhq/pinboard/internal/apperr"
	"github.com/pinboardhq/pinboard/internal/models"
	"gorm.io/gorm"
)

// mysqlDuplicateEntry is the server error code for unique-key violations.
const mysqlDuplicateEntry = 1062

// IsDuplicate reports whether err is a MySQL duplicate-entry error.
func IsDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}

// Register creates a new account and returns it with a signed access token.
func Register(db *gorm.DB, issuer *TokenIssuer, username, email, password string) (*models.User, string, error) {
	if username == "" || email == "" || password == "" {
		return nil, "", fmt.Errorf("auth: %w: username, email, and password required", apperr.ErrValidation)
	}

	var count int64
	if err := db.Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error; err != nil {
		return nil, "", fmt.Errorf("auth: check existing user: %w", err)
	}
	if count > 0 {
		return nil, "", fmt.Errorf("auth: %w: user already exists", apperr.ErrConflict)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, "", err
	}
	user := models.User{Username: username, Email: email, Password: hash}
	if err := db.Create(&user).Error; err != nil {
		if IsDuplicate(err) {
			return nil, "", fmt.Errorf("auth: %w: user already exists", apperr.ErrConflict)
		}
		return nil, "", fmt.Errorf("auth: create user: %w", err)
	}

	token, err := issuer.Issue(&user)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// Login verifies credentials by username or email and returns the user with
// a signed access token. Bad credentials map to ErrUnauthorized without
// distinguishing unknown user from wrong password.
func Login(db *gorm.DB, issuer *TokenIssuer, username, email, password string) (*models.User, string, error) {
	if password == "" || (username == "" && email == "") {
		return nil, "", fmt.Errorf("auth: %w: username/email and password required", apperr.ErrValidation)
	}

	var user models.User
	err := db.Where("username = ? OR email = ?", username, email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", fmt.Errorf("auth: %w: invalid credentials", apperr.ErrUnauthorized)
		}
		return nil, "", fmt.Errorf("auth: find user: %w", err)
	}
	if !CheckPassword(user.Password, password) {
		return nil, "", fmt.Errorf("auth: %w: invalid credentials", apperr.ErrUnauthorized)
	}

	token, err := issuer.Issue(&user)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// GetUser returns a user by id.
func GetUser(db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	if err := db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("auth: %w: user %d", apperr.ErrNotFound, id)
		}
		return nil, fmt.Errorf("auth: get user %d: %w", id, err)
	}
	return &user, nil
}

// ListUsers returns all users.
func ListUsers(db *gorm.DB) ([]models.User, error) {
	var users []models.User
	if err := db.Order("id ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("auth: list users: %w", err)
	}
	return users, nil
}

// ProfilePatch holds the partially updatable profile fields. Nil means
// "leave unchanged" — unlike task updates, the profile endpoint patches.
type ProfilePatch struct {
	Username    *string
	Phone       *string
	MobilePhone *string
	Location    *string
}

// UpdateProfile applies a partial profile patch. Taking a username that
// belongs to another user is a conflict.
func UpdateProfile(db *gorm.DB, userID uint, patch ProfilePatch) (*models.User, error) {
	updates := map[string]interface{}{}
	if patch.Username != nil {
		var count int64
		if err := db.Model(&models.User{}).
			Where("username = ? AND id != ?", *patch.Username, userID).
			Count(&count).Error; err != nil {
			return nil, fmt.Errorf("auth: check username: %w", err)
		}
		if count > 0 {
			return nil, fmt.Errorf("auth: %w: username already taken", apperr.ErrConflict)
		}
		updates["username"] = *patch.Username
	}
	if patch.Phone != nil {
		updates["phone"] = *patch.Phone
	}
	if patch.MobilePhone != nil {
		updates["mobile_phone"] = *patch.MobilePhone
	}
	if patch.Location != nil {
		updates["location"] = *patch.Location
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("auth: %w: no fields to update", apperr.ErrValidation)
	}

	if err := db.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		if IsDuplicate(err) {
			return nil, fmt.Errorf("auth: %w: username already taken", apperr.ErrConflict)
		}
		return nil, fmt.Errorf("auth: update profile %d: %w", userID, err)
	}
	return GetUser(db, userID)
}

// ChangeEmail verifies the current email and password before writing the
// new address. A new email belonging to another user is a conflict.
func ChangeEmail(db *gorm.DB, userID uint, currentEmail, newEmail, currentPassword string) (*models.User, error) {
	if currentEmail == "" || newEmail == "" || currentPassword == "" {
		return nil, fmt.Errorf("auth: %w: current email, new email, and current password are required", apperr.ErrValidation)
	}

	user, err := GetUser(db, userID)
	if err != nil {
		return nil, err
	}
	if user.Email != currentEmail {
		return nil, fmt.Errorf("auth: %w: current email does not match", apperr.ErrValidation)
	}
	if !CheckPassword(user.Password, currentPassword) {
		return nil, fmt.Errorf("auth: %w: current password is incorrect", apperr.ErrValidation)
	}

	var count int64
	if err := db.Model(&models.User{}).
		Where("email = ? AND id != ?", newEmail, userID).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("auth: check email: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("auth: %w: email already taken", apperr.ErrConflict)
	}

	if err := db.Model(&models.User{}).Where("id = ?", userID).Update("email", newEmail).Error; err != nil {
		return nil, fmt.Errorf("auth: change email %d: %w", userID, err)
	}
	return GetUser(db, userID)
}

// ChangePassword verifies the current password before storing a new hash.
func ChangePassword(db *gorm.DB, userID uint, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return fmt.Errorf("auth: %w: current password and new password are required", apperr.ErrValidation)
	}
	user, err := GetUser(db, userID)
	if err != nil {
		return err
	}
	if !CheckPassword(user.Password, currentPassword) {
		return fmt.Errorf("auth: %w: invalid current password", apperr.ErrUnauthorized)
	}
	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := db.Model(&models.User{}).Where("id = ?", userID).Update("password", hash).Error; err != nil {
		return fmt.Errorf("auth: change password %d: %w", userID, err)
	}
	return nil
}

// ForgotPassword issues a short-lived reset token for the account with the
// given email. Delivery is the caller's concern.
func ForgotPassword(db *gorm.DB, issuer *TokenIssuer, email string) (string, error) {
	if email == "" {
		return "", fmt.Errorf("auth: %w: email required", apperr.ErrValidation)
	}
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("auth: %w: user", apperr.ErrNotFound)
		}
		return "", fmt.Errorf("auth: find user by email: %w", err)
	}
	return issuer.IssueReset(&user)
}

// ResetPassword verifies a reset token and stores the new password hash.
func ResetPassword(db *gorm.DB, issuer *TokenIssuer, token, newPassword string) error {
	if token == "" || newPassword == "" {
		return fmt.Errorf("auth: %w: token and new password required", apperr.ErrValidation)
	}
	claims, err := issuer.Verify(token)
	if err != nil {
		return fmt.Errorf("auth: %w: invalid or expired token", apperr.ErrValidation)
	}
	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := db.Model(&models.User{}).Where("id = ?", claims.UserID).Update("password", hash).Error; err != nil {
		return fmt.Errorf("auth: reset password %d: %w", claims.UserID, err)
	}
	return nil
}

// SetPicture stores the user's profile-picture path and returns the old one.
func SetPicture(db *gorm.DB, userID uint, path string) (string, error) {
	user, err := GetUser(db, userID)
	if err != nil {
		return "", err
	}
	old := user.Picture
	if err := db.Model(&models.User{}).Where("id = ?", userID).Update("picture", path).Error; err != nil {
		return "", fmt.Errorf("auth: set picture %d: %w", userID, err)
	}
	return old, nil
}
