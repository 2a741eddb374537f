package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/matchpoint-app/backend/internal/domain"
	"github.com/matchpoint-app/backend/internal/repository"
)

type eventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) repository.EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO events (creator_id, sport_id, title, description, location, starts_at, capacity)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		event.CreatorID, event.SportID, event.Title, event.Description,
		event.Location, event.StartsAt, event.Capacity,
	).Scan(&event.ID, &event.CreatedAt)
}

func (r *eventRepository) GetByID(ctx context.Context, id int) (*domain.Event, error) {
	var event domain.Event
	query := `
		SELECT e.*, COUNT(ep.user_id) AS participant_count
		FROM events e
		LEFT JOIN event_participants ep ON ep.event_id = e.id
		WHERE e.id = $1
		GROUP BY e.id
	`
	err := r.db.GetContext(ctx, &event, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) List(ctx context.Context, sportID int, limit, offset int) ([]*domain.Event, error) {
	var events []*domain.Event

	query := `
		SELECT e.*, COUNT(ep.user_id) AS participant_count
		FROM events e
		LEFT JOIN event_participants ep ON ep.event_id = e.id
	`
	args := []interface{}{limit, offset}
	if sportID > 0 {
		query += ` WHERE e.sport_id = $3`
		args = append(args, sportID)
	}
	query += `
		GROUP BY e.id
		ORDER BY e.starts_at ASC
		LIMIT $1 OFFSET $2
	`
	err := r.db.SelectContext(ctx, &events, query, args...)
	return events, err
}

func (r *eventRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *eventRepository) AddParticipant(ctx context.Context, eventID, userID int) error {
	query := `INSERT INTO event_participants (event_id, user_id) VALUES ($1, $2)`
	_, err := r.db.ExecContext(ctx, query, eventID, userID)
	if err != nil && isUniqueViolation(err) {
		return domain.ErrAlreadyJoined
	}
	return err
}

func (r *eventRepository) RemoveParticipant(ctx context.Context, eventID, userID int) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM event_participants WHERE event_id = $1 AND user_id = $2`, eventID, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotJoined
	}
	return nil
}

func (r *eventRepository) IsParticipant(ctx context.Context, eventID, userID int) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM event_participants WHERE event_id = $1 AND user_id = $2)`
	err := r.db.GetContext(ctx, &exists, query, eventID, userID)
	return exists, err
}

func (r *eventRepository) ListParticipants(ctx context.Context, eventID int) ([]*domain.EventParticipant, error) {
	var participants []*domain.EventParticipant
	query := `SELECT * FROM event_participants WHERE event_id = $1 ORDER BY joined_at`
	err := r.db.SelectContext(ctx, &participants, query, eventID)
	return participants, err
}
