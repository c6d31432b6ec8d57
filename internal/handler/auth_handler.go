package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medidir/doctor-directory-api/internal/database/models"
	"github.com/medidir/doctor-directory-api/internal/database/repository"
	"github.com/medidir/doctor-directory-api/internal/database/service"
)

// AuthHandler handles HTTP requests for authentication
type AuthHandler struct {
	service service.AuthService
	logger  *slog.Logger
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(service service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger,
	}
}

// Request DTOs
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("❌ [Handler] Invalid registration request", "error", err)
		respondError(c, http.StatusBadRequest, "Invalid request. Name, email and password (min 6 chars) required.")
		return
	}

	user, token, err := h.service.Register(req.Name, req.Email, req.Password)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	respond(c, http.StatusCreated, "Registration Successfull.", gin.H{
		"accessToken": token.AccessToken,
		"expiresAt":   token.ExpiresAt,
		"user":        user,
	})
}

// Login handles POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("❌ [Handler] Invalid login request", "error", err)
		respondError(c, http.StatusBadRequest, "Invalid request. Email and password required.")
		return
	}

	user, token, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, "Login Successfull.", gin.H{
		"accessToken": token.AccessToken,
		"expiresAt":   token.ExpiresAt,
		"user":        user,
	})
}

// Me handles GET /me. The middleware has already resolved the caller.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := authenticatedUser(c)
	if !ok {
		h.logger.Error("❌ [Handler] Authenticated user not found in context")
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	respond(c, http.StatusOK, "Authenticate user information.", gin.H{
		"user": user,
	})
}

// Logout handles POST /logout by revoking the presented token.
func (h *AuthHandler) Logout(c *gin.Context) {
	tokenID, ok := c.Get("authTokenID")
	if !ok {
		h.logger.Error("❌ [Handler] Token ID not found in context")
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.service.Logout(tokenID.(string)); err != nil {
		h.handleServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, "Logged out successfully.", nil)
}

// handleServiceError maps service errors to HTTP responses
func (h *AuthHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmailAlreadyExists):
		respondError(c, http.StatusConflict, "Email already registered.")
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "Credentials do not match. Please try again.")
	case errors.Is(err, service.ErrInvalidToken), errors.Is(err, repository.ErrTokenNotFound), errors.Is(err, repository.ErrTokenExpired):
		respondError(c, http.StatusUnauthorized, "Invalid or expired token.")
	case errors.Is(err, repository.ErrUserNotFound):
		respondError(c, http.StatusNotFound, "User not found.")
	default:
		h.logger.Error("❌ [Handler] Internal server error", "error", err)
		respondError(c, http.StatusInternalServerError, "Internal server error.")
	}
}

// authenticatedUser pulls the user the auth middleware resolved.
func authenticatedUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get("authUser")
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}
