package models

import (
	"time"

	"github.com/gofrs/uuid"
)

// Token is a persisted refresh token. Expired rows are purged by the
// background worker.
type Token struct {
	ID           uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	UserID       string    `json:"user_id" gorm:"column:user_id;not null"`
	RefreshToken uuid.UUID `json:"refresh_token" gorm:"not null"`
	ExpiresAt    time.Time `json:"expires_at" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
}
