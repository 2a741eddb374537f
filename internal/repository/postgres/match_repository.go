package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/matchpoint-app/backend/internal/domain"
	"github.com/matchpoint-app/backend/internal/repository"
)

type matchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) repository.MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) Create(ctx context.Context, match *domain.Match) error {
	// Ensure user1_id < user2_id for the unique constraint
	user1ID, user2ID := match.User1ID, match.User2ID
	if user1ID > user2ID {
		user1ID, user2ID = user2ID, user1ID
	}

	query := `
		INSERT INTO matches (user1_id, user2_id, requester_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, user1ID, user2ID, match.RequesterID, match.Status).
		Scan(&match.ID, &match.CreatedAt, &match.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrMatchAlreadyExists
		}
		return err
	}

	match.User1ID = user1ID
	match.User2ID = user2ID
	return nil
}

func (r *matchRepository) GetByID(ctx context.Context, id int) (*domain.Match, error) {
	var match domain.Match
	query := `SELECT * FROM matches WHERE id = $1`
	err := r.db.GetContext(ctx, &match, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) GetByUsers(ctx context.Context, user1ID, user2ID int) (*domain.Match, error) {
	// Ensure user1_id < user2_id
	if user1ID > user2ID {
		user1ID, user2ID = user2ID, user1ID
	}

	var match domain.Match
	query := `SELECT * FROM matches WHERE user1_id = $1 AND user2_id = $2`
	err := r.db.GetContext(ctx, &match, query, user1ID, user2ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) GetUserMatches(ctx context.Context, userID int, limit, offset int) ([]*domain.Match, error) {
	var matches []*domain.Match
	query := `
		SELECT * FROM matches
		WHERE (user1_id = $1 OR user2_id = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	err := r.db.SelectContext(ctx, &matches, query, userID, limit, offset)
	return matches, err
}

func (r *matchRepository) UpdateStatus(ctx context.Context, id int, status domain.MatchStatus) error {
	query := `UPDATE matches SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrMatchNotFound
	}
	return nil
}

func (r *matchRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM matches WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrMatchNotFound
	}
	return nil
}

func (r *matchRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM matches`)
	return count, err
}

func (r *matchRepository) FindCandidates(ctx context.Context, userID int) ([]*domain.MatchCandidate, error) {
	// Users sharing at least one sport, deduplicated by identity. Shared sport
	// names are aggregated for display.
	query := `
		SELECT u.id AS user_id, u.display_name, u.avatar_url, u.city,
		       array_agg(DISTINCT s.name) AS shared_sports
		FROM user_sports us
		JOIN user_sports other ON other.sport_id = us.sport_id AND other.user_id <> us.user_id
		JOIN users u ON u.id = other.user_id
		JOIN sports s ON s.id = us.sport_id
		WHERE us.user_id = $1
		GROUP BY u.id, u.display_name, u.avatar_url, u.city
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find candidates: %w", err)
	}
	defer rows.Close()

	var candidates []*domain.MatchCandidate
	for rows.Next() {
		var c domain.MatchCandidate
		if err := rows.Scan(&c.UserID, &c.DisplayName, &c.AvatarURL, &c.City, pq.Array(&c.SharedSports)); err != nil {
			return nil, err
		}
		candidates = append(candidates, &c)
	}
	return candidates, rows.Err()
}

func (r *matchRepository) AcceptAndCreateChat(ctx context.Context, matchID int) (*domain.Chat, *domain.Message, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback()

	var match domain.Match
	err = tx.GetContext(ctx, &match, `SELECT * FROM matches WHERE id = $1 FOR UPDATE`, matchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, domain.ErrMatchNotFound
		}
		return nil, nil, err
	}
	if match.Status != domain.MatchPending {
		return nil, nil, domain.ErrMatchNotPending
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE matches SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		domain.MatchAccepted, matchID)
	if err != nil {
		return nil, nil, err
	}

	chat := &domain.Chat{IsGroup: false, MatchID: &matchID}
	err = tx.QueryRowContext(ctx,
		`INSERT INTO chats (is_group, match_id) VALUES ($1, $2) RETURNING id, created_at`,
		chat.IsGroup, chat.MatchID).Scan(&chat.ID, &chat.CreatedAt)
	if err != nil {
		return nil, nil, err
	}

	for _, userID := range []int{match.User1ID, match.User2ID} {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO chat_members (chat_id, user_id) VALUES ($1, $2)`,
			chat.ID, userID)
		if err != nil {
			return nil, nil, err
		}
	}

	welcome := &domain.Message{
		ChatID:      chat.ID,
		MessageType: domain.MessageSystem,
		Content:     domain.WelcomeMessage,
	}
	err = tx.QueryRowContext(ctx,
		`INSERT INTO messages (chat_id, sender_id, message_type, content) VALUES ($1, NULL, $2, $3)
		 RETURNING id, sent_at`,
		chat.ID, welcome.MessageType, welcome.Content).Scan(&welcome.ID, &welcome.SentAt)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}
	return chat, welcome, nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint error.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
