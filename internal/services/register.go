package services

import (
	"errors"
	"math/rand"
	"strconv"
	"time"

	"task-board/backend/internal/models"

	"gorm.io/gorm"
)

var ErrEmailExists = errors.New("email already exists")

type RegistrationRequest struct {
	UserID      string `json:"uid"`
	Email       string `json:"email" binding:"required,email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
}

type RegisterService interface {
	RegisterUser(db *gorm.DB, req RegistrationRequest) (*models.UserInfo, error)
}

type RegisterServiceImpl struct{}

func NewRegisterService() *RegisterServiceImpl {
	return &RegisterServiceImpl{}
}

// RegisterUser stores a UserInfo record. The identity provider usually
// supplies the uid; when it does not, a short random one is minted so the
// account still gets a stable owner id.
func (s *RegisterServiceImpl) RegisterUser(db *gorm.DB, req RegistrationRequest) (*models.UserInfo, error) {
	var existing models.UserInfo
	if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	userID := req.UserID
	if userID == "" {
		userID = strconv.FormatInt(rand.Int63(), 36)
	}
	displayName := req.DisplayName
	if displayName == "" {
		displayName = "Unknown User"
	}
	photoURL := req.PhotoURL
	if photoURL == "" {
		photoURL = models.DefaultPhotoURL
	}

	user := models.UserInfo{
		UserID:      userID,
		Email:       req.Email,
		DisplayName: displayName,
		PhotoURL:    photoURL,
		CreatedAt:   time.Now(),
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}
