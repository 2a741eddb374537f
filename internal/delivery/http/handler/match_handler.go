package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/matchpoint-app/backend/internal/usecase/match"
)

type MatchHandler struct {
	matchUseCase *match.MatchUseCase
}

func NewMatchHandler(matchUseCase *match.MatchUseCase) *MatchHandler {
	return &MatchHandler{matchUseCase: matchUseCase}
}

// FindMatches returns candidates sharing at least one sport
// @Summary Find match candidates
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Success 200 {array} domain.MatchCandidate
// @Failure 403 {object} ErrorResponse
// @Router /matches/candidates [get]
func (h *MatchHandler) FindMatches(c *gin.Context) {
	candidates, err := h.matchUseCase.FindMatches(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, candidates)
}

// CreateMatch proposes a match to another user
// @Summary Propose a match
// @Tags matches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body match.CreateMatchRequest true "Target user"
// @Success 201 {object} domain.Match
// @Failure 409 {object} ErrorResponse
// @Router /matches [post]
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	var req match.CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	m, err := h.matchUseCase.CreateMatch(c.Request.Context(), userID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// AcceptMatch accepts a pending match and opens its chat
// @Summary Accept a match
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param match_id path int true "Match ID"
// @Success 200 {object} match.AcceptMatchResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /matches/{match_id}/accept [post]
func (h *MatchHandler) AcceptMatch(c *gin.Context) {
	matchID, err := strconv.Atoi(c.Param("match_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid match id"})
		return
	}

	resp, err := h.matchUseCase.AcceptMatch(c.Request.Context(), userID(c), matchID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RejectMatch rejects a pending match
// @Summary Reject a match
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param match_id path int true "Match ID"
// @Success 200 {object} domain.Match
// @Router /matches/{match_id}/reject [post]
func (h *MatchHandler) RejectMatch(c *gin.Context) {
	matchID, err := strconv.Atoi(c.Param("match_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid match id"})
		return
	}

	m, err := h.matchUseCase.RejectMatch(c.Request.Context(), userID(c), matchID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// ListMatches returns the caller's matches.
func (h *MatchHandler) ListMatches(c *gin.Context) {
	limit, offset := pagination(c)
	matches, err := h.matchUseCase.GetUserMatches(c.Request.Context(), userID(c), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, matches)
}

// pagination reads limit/offset query params with sane bounds.
func pagination(c *gin.Context) (int, int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
