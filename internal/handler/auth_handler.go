package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/orchid-haven/orchid-backend/internal/dto"
	"github.com/orchid-haven/orchid-backend/internal/middleware"
	"github.com/orchid-haven/orchid-backend/internal/models"
	"github.com/orchid-haven/orchid-backend/internal/service"
	"github.com/orchid-haven/orchid-backend/internal/validation"
	"github.com/orchid-haven/orchid-backend/pkg/logger"
	"go.uber.org/zap"
)

type AuthHandler struct {
	errorResponder
	authService *service.AuthService
	validator   *validation.Validator
}

func NewAuthHandler(authService *service.AuthService, v *validation.Validator) *AuthHandler {
	return &AuthHandler{
		errorResponder: errorResponder{isProduction: authService.IsProduction()},
		authService:    authService,
		validator:      v,
	}
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest

	// 1. Parse and check the request
	if !bindJSON(c, &req) {
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		h.respondError(c, err, "")
		return
	}

	logger.Log.Info("Admin login attempt",
		zap.String("username", req.Username),
		zap.String("ip", c.ClientIP()),
	)

	// 2. Call service
	user, token, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			logger.Log.Warn("Login failed",
				zap.String("username", req.Username),
				zap.String("ip", c.ClientIP()),
			)
			// Same body for unknown users and wrong passwords
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid credentials",
			})
			return
		}
		h.respondError(c, err, "")
		return
	}

	logger.Log.Info("Admin logged in",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
	)

	// 3. Token goes in the body; the dashboard sends it back as a bearer header
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"user":    userJSON(user),
	})
}

// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Access token required",
		})
		return
	}

	user, err := h.authService.CurrentUser(claims.UserID)
	if err != nil {
		h.respondError(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    userJSON(user),
	})
}

func userJSON(user *models.User) gin.H {
	return gin.H{
		"id":       user.ID,
		"username": user.Username,
		"role":     user.Role,
	}
}
