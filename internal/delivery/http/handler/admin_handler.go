package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/matchpoint-app/backend/internal/domain"
	"github.com/matchpoint-app/backend/internal/usecase/admin"
)

type AdminHandler struct {
	adminUseCase *admin.AdminUseCase
}

func NewAdminHandler(adminUseCase *admin.AdminUseCase) *AdminHandler {
	return &AdminHandler{adminUseCase: adminUseCase}
}

// Stats returns the dashboard counters.
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminUseCase.GetStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ListUsers pages through all users.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	limit, offset := pagination(c)
	users, err := h.adminUseCase.ListUsers(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// BanRequest carries the ban reason
type BanRequest struct {
	Reason string `json:"reason" binding:"omitempty,max=500"`
}

// BanUser bans a user and kills their sessions.
func (h *AdminHandler) BanUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user id"})
		return
	}

	var req BanRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.adminUseCase.BanUser(c.Request.Context(), id, req.Reason); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "user banned"})
}

// UnbanUser lifts a ban.
func (h *AdminHandler) UnbanUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user id"})
		return
	}

	if err := h.adminUseCase.UnbanUser(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "user unbanned"})
}

// DeleteUser hard-deletes a user.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user id"})
		return
	}

	if err := h.adminUseCase.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "user deleted"})
}

// CreateReport files a report against another user. Any authenticated user.
func (h *AdminHandler) CreateReport(c *gin.Context) {
	var req admin.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	report, err := h.adminUseCase.CreateReport(c.Request.Context(), userID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}

// ListReports pages through reports by status (default OPEN).
func (h *AdminHandler) ListReports(c *gin.Context) {
	status := domain.ReportStatus(c.DefaultQuery("status", string(domain.ReportOpen)))
	limit, offset := pagination(c)

	reports, err := h.adminUseCase.ListReports(c.Request.Context(), status, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reports)
}

// ResolveReportRequest closes a report
type ResolveReportRequest struct {
	Status domain.ReportStatus `json:"status" binding:"required,oneof=RESOLVED DISMISSED"`
}

// ResolveReport closes a report as RESOLVED or DISMISSED.
func (h *AdminHandler) ResolveReport(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("report_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid report id"})
		return
	}

	var req ResolveReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.adminUseCase.ResolveReport(c.Request.Context(), id, req.Status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "report closed"})
}
