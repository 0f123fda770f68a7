package services

import (
	"errors"
	"os"
	"time"

	"task-board/backend/internal/models"

	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

type AuthService interface {
	GenerateToken(db *gorm.DB, userID string) (string, string, error)
	RefreshToken(db *gorm.DB, refreshToken string) (string, string, int64, error)
	RevokeToken(db *gorm.DB, refreshToken string) error
}

type AuthServiceImpl struct {
	accessTokenTTL time.Duration
}

func NewAuthService(accessTokenTTL time.Duration) *AuthServiceImpl {
	if accessTokenTTL <= 0 {
		accessTokenTTL = time.Hour
	}
	return &AuthServiceImpl{accessTokenTTL: accessTokenTTL}
}

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default_secret"
	}
	return []byte(secret)
}

// GenerateToken issues an HS256 access token carrying the user id and a
// persisted refresh token. The user id is whatever opaque identifier the
// identity provider handed us; the task store trusts it as-is.
func (s *AuthServiceImpl) GenerateToken(db *gorm.DB, userID string) (string, string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(s.accessTokenTTL).Unix(),
	}
	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessTokenString, err := accessToken.SignedString(jwtSecret())
	if err != nil {
		return "", "", err
	}

	refreshTokenUUID, err := uuid.NewV4()
	if err != nil {
		return "", "", err
	}

	token := models.Token{
		ID:           uuid.Must(uuid.NewV4()),
		UserID:       userID,
		RefreshToken: refreshTokenUUID,
		ExpiresAt:    time.Now().Add(s.accessTokenTTL),
	}
	if err := db.Create(&token).Error; err != nil {
		return "", "", err
	}

	return accessTokenString, refreshTokenUUID.String(), nil
}

func (s *AuthServiceImpl) RefreshToken(db *gorm.DB, refreshToken string) (string, string, int64, error) {
	var token models.Token
	err := db.Where("refresh_token = ? AND expires_at > ?", refreshToken, time.Now()).First(&token).Error
	if err != nil {
		return "", "", 0, err
	}

	accessToken, newRefreshToken, err := s.GenerateToken(db, token.UserID)
	if err != nil {
		return "", "", 0, err
	}

	db.Delete(&token)

	return accessToken, newRefreshToken, int64(s.accessTokenTTL.Seconds()), nil
}

func (s *AuthServiceImpl) RevokeToken(db *gorm.DB, refreshToken string) error {
	result := db.Where("refresh_token = ?", refreshToken).Delete(&models.Token{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("refresh token not found")
	}
	return nil
}

// CleanupExpiredTokens deletes refresh tokens whose expiry has passed and
// reports how many rows went away. Runs from the background worker.
func CleanupExpiredTokens(db *gorm.DB) (int64, error) {
	result := db.Where("expires_at <= ?", time.Now()).Delete(&models.Token{})
	return result.RowsAffected, result.Error
}
