package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/matchpoint-app/backend/internal/usecase/tournament"
)

type TournamentHandler struct {
	tournamentUseCase *tournament.TournamentUseCase
}

func NewTournamentHandler(tournamentUseCase *tournament.TournamentUseCase) *TournamentHandler {
	return &TournamentHandler{tournamentUseCase: tournamentUseCase}
}

// Create creates a tournament. Admin only, enforced in the router.
func (h *TournamentHandler) Create(c *gin.Context) {
	var req tournament.CreateTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	t, err := h.tournamentUseCase.CreateTournament(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// List lists tournaments, optionally filtered by sport_id.
func (h *TournamentHandler) List(c *gin.Context) {
	sportID, _ := strconv.Atoi(c.DefaultQuery("sport_id", "0"))
	limit, offset := pagination(c)

	tournaments, err := h.tournamentUseCase.ListTournaments(c.Request.Context(), sportID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tournaments)
}

// Get returns one tournament.
func (h *TournamentHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("tournament_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid tournament id"})
		return
	}

	t, err := h.tournamentUseCase.GetTournament(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// CreateTeam creates a team captained by the caller.
func (h *TournamentHandler) CreateTeam(c *gin.Context) {
	var req tournament.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	team, err := h.tournamentUseCase.CreateTeam(c.Request.Context(), userID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, team)
}

// AddTeamMemberRequest adds a user to a team
type AddTeamMemberRequest struct {
	UserID int `json:"user_id" binding:"required"`
}

// AddTeamMember adds a user to a team. Captain only.
func (h *TournamentHandler) AddTeamMember(c *gin.Context) {
	teamID, err := strconv.Atoi(c.Param("team_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid team id"})
		return
	}

	var req AddTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.tournamentUseCase.AddTeamMember(c.Request.Context(), teamID, userID(c), req.UserID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "member added"})
}

// TeamMembers returns a team's roster.
func (h *TournamentHandler) TeamMembers(c *gin.Context) {
	teamID, err := strconv.Atoi(c.Param("team_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid team id"})
		return
	}

	members, err := h.tournamentUseCase.ListTeamMembers(c.Request.Context(), teamID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

// RegisterTeamRequest registers a team for a tournament
type RegisterTeamRequest struct {
	TeamID int `json:"team_id" binding:"required"`
}

// RegisterTeam registers a team for a tournament. Captain only.
func (h *TournamentHandler) RegisterTeam(c *gin.Context) {
	tournamentID, err := strconv.Atoi(c.Param("tournament_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid tournament id"})
		return
	}

	var req RegisterTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.tournamentUseCase.RegisterTeam(c.Request.Context(), tournamentID, req.TeamID, userID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "team registered"})
}

// RegisteredTeams lists the teams registered for a tournament.
func (h *TournamentHandler) RegisteredTeams(c *gin.Context) {
	tournamentID, err := strconv.Atoi(c.Param("tournament_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid tournament id"})
		return
	}

	teams, err := h.tournamentUseCase.ListRegisteredTeams(c.Request.Context(), tournamentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, teams)
}
