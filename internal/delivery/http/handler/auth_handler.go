package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/matchpoint-app/backend/internal/usecase/auth"
	"github.com/matchpoint-app/backend/internal/usecase/user"
)

type AuthHandler struct {
	authUseCase *auth.AuthUseCase
	userUseCase *user.UserUseCase
}

func NewAuthHandler(authUseCase *auth.AuthUseCase, userUseCase *user.UserUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		userUseCase: userUseCase,
	}
}

// Register handles local signup
// @Summary Register
// @Description Create a local account with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body auth.RegisterRequest true "Signup data"
// @Success 201 {object} auth.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.authUseCase.Register(c.Request.Context(), &req, c.GetHeader("User-Agent"), c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// Login handles local login
// @Summary Login
// @Description Authenticate with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body auth.LoginRequest true "Credentials"
// @Success 200 {object} auth.AuthResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.authUseCase.Login(c.Request.Context(), &req, c.GetHeader("User-Agent"), c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ProviderLogin handles OAuth provider login
// @Summary Provider login
// @Description Authenticate with a Google ID token or Facebook access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body auth.ProviderLoginRequest true "Provider credential"
// @Success 200 {object} auth.AuthResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/provider [post]
func (h *AuthHandler) ProviderLogin(c *gin.Context) {
	var req auth.ProviderLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.authUseCase.LoginWithProvider(c.Request.Context(), &req, c.GetHeader("User-Agent"), c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Logout deletes the current session
// @Summary Logout
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if token == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing authorization token"})
		return
	}

	if err := h.authUseCase.Logout(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "logout failed"})
		return
	}

	_ = h.userUseCase.SetOffline(c.Request.Context(), userID(c))
	c.JSON(http.StatusOK, SuccessResponse{Message: "logged out successfully"})
}

// Me returns the authenticated user with their sports
// @Summary Get current user
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	u, sports, err := h.userUseCase.GetProfile(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u, "sports": sports})
}
