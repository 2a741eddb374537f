package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/matchpoint-app/backend/internal/domain"
	"github.com/matchpoint-app/backend/internal/repository"
)

type sportRepository struct {
	db *sqlx.DB
}

func NewSportRepository(db *sqlx.DB) repository.SportRepository {
	return &sportRepository{db: db}
}

func (r *sportRepository) Create(ctx context.Context, sport *domain.Sport) error {
	query := `INSERT INTO sports (name, icon_url) VALUES ($1, $2) RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query, sport.Name, sport.IconURL).
		Scan(&sport.ID, &sport.CreatedAt)
}

func (r *sportRepository) GetByID(ctx context.Context, id int) (*domain.Sport, error) {
	var sport domain.Sport
	err := r.db.GetContext(ctx, &sport, `SELECT * FROM sports WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSportNotFound
		}
		return nil, err
	}
	return &sport, nil
}

func (r *sportRepository) List(ctx context.Context) ([]*domain.Sport, error) {
	var sports []*domain.Sport
	err := r.db.SelectContext(ctx, &sports, `SELECT * FROM sports ORDER BY name`)
	return sports, err
}

func (r *sportRepository) AddUserSport(ctx context.Context, userID, sportID int) error {
	query := `
		INSERT INTO user_sports (user_id, sport_id) VALUES ($1, $2)
		ON CONFLICT (user_id, sport_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, userID, sportID)
	return err
}

func (r *sportRepository) RemoveUserSport(ctx context.Context, userID, sportID int) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM user_sports WHERE user_id = $1 AND sport_id = $2`, userID, sportID)
	return err
}

func (r *sportRepository) GetUserSports(ctx context.Context, userID int) ([]*domain.Sport, error) {
	var sports []*domain.Sport
	query := `
		SELECT s.* FROM sports s
		JOIN user_sports us ON us.sport_id = s.id
		WHERE us.user_id = $1
		ORDER BY s.name
	`
	err := r.db.SelectContext(ctx, &sports, query, userID)
	return sports, err
}
