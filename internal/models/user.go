package models

import "time"

const DefaultPhotoURL = "https://randomuser.me/api/portraits/men/1.jpg"

// UserInfo is a registered account. Authentication happens upstream; the
// task store only ever sees the UserID string as an opaque owner id.
type UserInfo struct {
	UserID      string    `json:"userId" gorm:"primaryKey;column:user_id"`
	Email       string    `json:"email" gorm:"unique;not null"`
	DisplayName string    `json:"displayName"`
	PhotoURL    string    `json:"photoURL"`
	CreatedAt   time.Time `json:"createdAt"`
}
