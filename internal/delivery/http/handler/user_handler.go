package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/matchpoint-app/backend/internal/usecase/user"
)

type UserHandler struct {
	userUseCase *user.UserUseCase
}

func NewUserHandler(userUseCase *user.UserUseCase) *UserHandler {
	return &UserHandler{userUseCase: userUseCase}
}

// GetMyProfile returns the caller's profile with their sports.
func (h *UserHandler) GetMyProfile(c *gin.Context) {
	u, sports, err := h.userUseCase.GetProfile(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u, "sports": sports})
}

// UpdateMyProfile applies a partial profile update.
func (h *UserHandler) UpdateMyProfile(c *gin.Context) {
	var req user.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	u, err := h.userUseCase.UpdateProfile(c.Request.Context(), userID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// GetProfileByUserID returns another user's public profile.
func (h *UserHandler) GetProfileByUserID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user id"})
		return
	}

	u, sports, err := h.userUseCase.GetProfile(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u, "sports": sports})
}

// ListSports returns the sports catalog.
func (h *UserHandler) ListSports(c *gin.Context) {
	sports, err := h.userUseCase.ListSports(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sports)
}

// AddSport adds a sport to the caller's interests.
func (h *UserHandler) AddSport(c *gin.Context) {
	sportID, err := strconv.Atoi(c.Param("sport_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid sport id"})
		return
	}

	if err := h.userUseCase.AddSport(c.Request.Context(), userID(c), sportID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "sport added"})
}

// RemoveSport removes a sport from the caller's interests.
func (h *UserHandler) RemoveSport(c *gin.Context) {
	sportID, err := strconv.Atoi(c.Param("sport_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid sport id"})
		return
	}

	if err := h.userUseCase.RemoveSport(c.Request.Context(), userID(c), sportID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "sport removed"})
}

// AvatarUploadRequest asks for a presigned avatar upload URL
type AvatarUploadRequest struct {
	FileName    string `json:"file_name" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

// PresignAvatar returns a presigned PUT URL for a new avatar.
func (h *UserHandler) PresignAvatar(c *gin.Context) {
	var req AvatarUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	resp, err := h.userUseCase.PresignAvatarUpload(c.Request.Context(), userID(c), req.FileName, req.ContentType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
