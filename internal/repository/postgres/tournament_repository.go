package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/matchpoint-app/backend/internal/domain"
	"github.com/matchpoint-app/backend/internal/repository"
)

type tournamentRepository struct {
	db *sqlx.DB
}

func NewTournamentRepository(db *sqlx.DB) repository.TournamentRepository {
	return &tournamentRepository{db: db}
}

func (r *tournamentRepository) Create(ctx context.Context, t *domain.Tournament) error {
	query := `
		INSERT INTO tournaments (sport_id, name, starts_at, ends_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query, t.SportID, t.Name, t.StartsAt, t.EndsAt).
		Scan(&t.ID, &t.CreatedAt)
}

func (r *tournamentRepository) GetByID(ctx context.Context, id int) (*domain.Tournament, error) {
	var t domain.Tournament
	err := r.db.GetContext(ctx, &t, `SELECT * FROM tournaments WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTournamentNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *tournamentRepository) List(ctx context.Context, sportID int, limit, offset int) ([]*domain.Tournament, error) {
	var tournaments []*domain.Tournament

	query := `SELECT * FROM tournaments`
	args := []interface{}{limit, offset}
	if sportID > 0 {
		query += ` WHERE sport_id = $3`
		args = append(args, sportID)
	}
	query += ` ORDER BY starts_at ASC LIMIT $1 OFFSET $2`

	err := r.db.SelectContext(ctx, &tournaments, query, args...)
	return tournaments, err
}

func (r *tournamentRepository) CreateTeam(ctx context.Context, team *domain.Team) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx,
		`INSERT INTO teams (name, captain_id) VALUES ($1, $2) RETURNING id, created_at`,
		team.Name, team.CaptainID).Scan(&team.ID, &team.CreatedAt)
	if err != nil {
		return err
	}

	// Captain is always a member.
	_, err = tx.ExecContext(ctx,
		`INSERT INTO team_members (team_id, user_id) VALUES ($1, $2)`,
		team.ID, team.CaptainID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *tournamentRepository) GetTeam(ctx context.Context, id int) (*domain.Team, error) {
	var team domain.Team
	err := r.db.GetContext(ctx, &team, `SELECT * FROM teams WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

func (r *tournamentRepository) AddTeamMember(ctx context.Context, teamID, userID int) error {
	query := `INSERT INTO team_members (team_id, user_id) VALUES ($1, $2)`
	_, err := r.db.ExecContext(ctx, query, teamID, userID)
	if err != nil && isUniqueViolation(err) {
		return domain.ErrAlreadyJoined
	}
	return err
}

func (r *tournamentRepository) ListTeamMembers(ctx context.Context, teamID int) ([]*domain.TeamMember, error) {
	var members []*domain.TeamMember
	query := `SELECT * FROM team_members WHERE team_id = $1 ORDER BY joined_at`
	err := r.db.SelectContext(ctx, &members, query, teamID)
	return members, err
}

func (r *tournamentRepository) RegisterTeam(ctx context.Context, tournamentID, teamID int) error {
	query := `INSERT INTO tournament_teams (tournament_id, team_id) VALUES ($1, $2)`
	_, err := r.db.ExecContext(ctx, query, tournamentID, teamID)
	if err != nil && isUniqueViolation(err) {
		return domain.ErrAlreadyJoined
	}
	return err
}

func (r *tournamentRepository) ListRegisteredTeams(ctx context.Context, tournamentID int) ([]*domain.Team, error) {
	var teams []*domain.Team
	query := `
		SELECT t.* FROM teams t
		JOIN tournament_teams tt ON tt.team_id = t.id
		WHERE tt.tournament_id = $1
		ORDER BY tt.registered_at
	`
	err := r.db.SelectContext(ctx, &teams, query, tournamentID)
	return teams, err
}
