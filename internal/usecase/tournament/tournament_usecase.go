package tournament

import (
	"context"
	"fmt"
	"time"

	"github.com/matchpoint-app/backend/internal/domain"
	"github.com/matchpoint-app/backend/internal/repository"
)

type TournamentUseCase struct {
	tournamentRepo repository.TournamentRepository
	sportRepo      repository.SportRepository
	userRepo       repository.UserRepository
}

func NewTournamentUseCase(
	tournamentRepo repository.TournamentRepository,
	sportRepo repository.SportRepository,
	userRepo repository.UserRepository,
) *TournamentUseCase {
	return &TournamentUseCase{
		tournamentRepo: tournamentRepo,
		sportRepo:      sportRepo,
		userRepo:       userRepo,
	}
}

// CreateTournamentRequest represents a new tournament
type CreateTournamentRequest struct {
	SportID  int       `json:"sport_id" binding:"required"`
	Name     string    `json:"name" binding:"required,min=3,max=120"`
	StartsAt time.Time `json:"starts_at" binding:"required,future"`
	EndsAt   time.Time `json:"ends_at" binding:"required,gtfield=StartsAt"`
}

// CreateTeamRequest represents a new team
type CreateTeamRequest struct {
	Name string `json:"name" binding:"required,min=2,max=80"`
}

// CreateTournament creates a tournament for a sport.
func (uc *TournamentUseCase) CreateTournament(ctx context.Context, req *CreateTournamentRequest) (*domain.Tournament, error) {
	if _, err := uc.sportRepo.GetByID(ctx, req.SportID); err != nil {
		return nil, err
	}

	t := &domain.Tournament{
		SportID:  req.SportID,
		Name:     req.Name,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
	}
	if err := uc.tournamentRepo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	return t, nil
}

// GetTournament returns one tournament.
func (uc *TournamentUseCase) GetTournament(ctx context.Context, id int) (*domain.Tournament, error) {
	return uc.tournamentRepo.GetByID(ctx, id)
}

// ListTournaments lists tournaments, optionally filtered by sport (0 means all).
func (uc *TournamentUseCase) ListTournaments(ctx context.Context, sportID int, limit, offset int) ([]*domain.Tournament, error) {
	return uc.tournamentRepo.List(ctx, sportID, limit, offset)
}

// CreateTeam creates a team with the caller as captain and first member.
func (uc *TournamentUseCase) CreateTeam(ctx context.Context, captainID int, req *CreateTeamRequest) (*domain.Team, error) {
	captain, err := uc.userRepo.GetByID(ctx, captainID)
	if err != nil {
		return nil, err
	}
	if !captain.CanParticipate() {
		return nil, domain.ErrUserBanned
	}

	team := &domain.Team{Name: req.Name, CaptainID: captainID}
	if err := uc.tournamentRepo.CreateTeam(ctx, team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return team, nil
}

// AddTeamMember adds a user to a team. Only the captain may do this.
func (uc *TournamentUseCase) AddTeamMember(ctx context.Context, teamID, captainID, userID int) error {
	team, err := uc.tournamentRepo.GetTeam(ctx, teamID)
	if err != nil {
		return err
	}
	if team.CaptainID != captainID {
		return domain.ErrNotTeamCaptain
	}
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	return uc.tournamentRepo.AddTeamMember(ctx, teamID, userID)
}

// ListTeamMembers returns a team's roster.
func (uc *TournamentUseCase) ListTeamMembers(ctx context.Context, teamID int) ([]*domain.TeamMember, error) {
	if _, err := uc.tournamentRepo.GetTeam(ctx, teamID); err != nil {
		return nil, err
	}
	return uc.tournamentRepo.ListTeamMembers(ctx, teamID)
}

// RegisterTeam registers a team for a tournament. Only the captain may do this.
func (uc *TournamentUseCase) RegisterTeam(ctx context.Context, tournamentID, teamID, captainID int) error {
	if _, err := uc.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		return err
	}
	team, err := uc.tournamentRepo.GetTeam(ctx, teamID)
	if err != nil {
		return err
	}
	if team.CaptainID != captainID {
		return domain.ErrNotTeamCaptain
	}
	return uc.tournamentRepo.RegisterTeam(ctx, tournamentID, teamID)
}

// ListRegisteredTeams returns the teams registered for a tournament.
func (uc *TournamentUseCase) ListRegisteredTeams(ctx context.Context, tournamentID int) ([]*domain.Team, error) {
	if _, err := uc.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		return nil, err
	}
	return uc.tournamentRepo.ListRegisteredTeams(ctx, tournamentID)
}
