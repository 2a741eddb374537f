package repository

import (
	"context"

	"github.com/matchpoint-app/backend/internal/domain"
)

type TournamentRepository interface {
	Create(ctx context.Context, t *domain.Tournament) error
	GetByID(ctx context.Context, id int) (*domain.Tournament, error)
	List(ctx context.Context, sportID int, limit, offset int) ([]*domain.Tournament, error)

	CreateTeam(ctx context.Context, team *domain.Team) error
	GetTeam(ctx context.Context, id int) (*domain.Team, error)
	AddTeamMember(ctx context.Context, teamID, userID int) error
	ListTeamMembers(ctx context.Context, teamID int) ([]*domain.TeamMember, error)

	RegisterTeam(ctx context.Context, tournamentID, teamID int) error
	ListRegisteredTeams(ctx context.Context, tournamentID int) ([]*domain.Team, error)
}
