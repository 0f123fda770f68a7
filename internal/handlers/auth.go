package handlers

import (
	"net/http"

	"task-board/backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthHandler struct {
	db          *gorm.DB
	authService services.AuthService
	secureMode  bool
}

type TokenRequest struct {
	UserID string `json:"uid" binding:"required"`
	Email  string `json:"email"`
}

func NewAuthHandler(db *gorm.DB, authService services.AuthService, secureMode bool) *AuthHandler {
	return &AuthHandler{db: db, authService: authService, secureMode: secureMode}
}

// Token handles POST /api/jwt: it trusts the upstream identity provider's
// uid and mints our own access/refresh pair for it. The access token is
// also set as an http-only cookie for browser clients.
func (h *AuthHandler) Token(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accessToken, refreshToken, err := h.authService.GenerateToken(h.db, req.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("token", accessToken, 24*60*60, "/", "", h.secureMode, true)

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"token":         accessToken,
		"refresh_token": refreshToken,
	})
}
