package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/matchpoint-app/backend/internal/domain"
)

// ErrorResponse represents error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// statusFor maps domain errors to HTTP status codes. Unknown errors are 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrMatchNotFound),
		errors.Is(err, domain.ErrChatNotFound),
		errors.Is(err, domain.ErrNotificationNotFound),
		errors.Is(err, domain.ErrEventNotFound),
		errors.Is(err, domain.ErrTournamentNotFound),
		errors.Is(err, domain.ErrTeamNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrReviewNotFound),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrReportNotFound),
		errors.Is(err, domain.ErrSportNotFound),
		errors.Is(err, domain.ErrCartItemNotFound),
		errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrMatchAlreadyExists),
		errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrReviewExists),
		errors.Is(err, domain.ErrAlreadyJoined),
		errors.Is(err, domain.ErrMatchNotPending),
		errors.Is(err, domain.ErrEventFull),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrNotJoined):
		return http.StatusConflict

	case errors.Is(err, domain.ErrNotMatchParticipant),
		errors.Is(err, domain.ErrNotChatMember),
		errors.Is(err, domain.ErrCannotAcceptOwnMatch),
		errors.Is(err, domain.ErrNotTeamCaptain),
		errors.Is(err, domain.ErrNotProductSeller),
		errors.Is(err, domain.ErrUserBanned):
		return http.StatusForbidden

	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrSessionExpired):
		return http.StatusUnauthorized

	case errors.Is(err, domain.ErrCannotMatchSelf),
		errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest

	case errors.Is(err, domain.ErrPaymentDeclined):
		return http.StatusPaymentRequired

	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the domain error as JSON. Internal errors are masked.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	c.JSON(status, ErrorResponse{Error: msg})
}

// userID returns the authenticated user id set by the auth middleware.
func userID(c *gin.Context) int {
	return c.GetInt("user_id")
}
