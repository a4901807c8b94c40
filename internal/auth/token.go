// Package auth provides password hashing, signed tokens, and account
// operations for Pinboard users.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pinboardhq/pinboard/internal/apperr"
	"github.com/pinboardhq/pinboard/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Claims is the JWT payload for both access and reset tokens.
type Claims struct {
	UserID   uint   `json:"id"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies Pinboard tokens with an HMAC secret.
type TokenIssuer struct {
	Secret   []byte
	TokenTTL time.Duration
	ResetTTL time.Duration
}

// NewTokenIssuer builds a TokenIssuer from config values.
func NewTokenIssuer(secret string, tokenTTLHours, resetTTLMins int) *TokenIssuer {
	return &TokenIssuer{
		Secret:   []byte(secret),
		TokenTTL: time.Duration(tokenTTLHours) * time.Hour,
		ResetTTL: time.Duration(resetTTLMins) * time.Minute,
	}
}

// Issue signs an access token for the user.
func (ti *TokenIssuer) Issue(u *models.User) (string, error) {
	return ti.sign(u, ti.TokenTTL)
}

// IssueReset signs a short-lived password-reset token for the user.
func (ti *TokenIssuer) IssueReset(u *models.User) (string, error) {
	return ti.sign(&models.User{ID: u.ID, Email: u.Email}, ti.ResetTTL)
}

func (ti *TokenIssuer) sign(u *models.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(ti.Secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Verify parses a token and returns its claims. Expired or malformed
// tokens map to ErrUnauthorized.
func (ti *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	var claims Claims
	tok, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return ti.Secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, fmt.Errorf("auth: %w: invalid token", apperr.ErrUnauthorized)
	}
	return &claims, nil
}

// HashPassword hashes a plaintext password with bcrypt at the default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("auth: hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
