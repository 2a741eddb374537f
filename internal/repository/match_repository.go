package repository

import (
	"context"

	"github.com/matchpoint-app/backend/internal/domain"
)

type MatchRepository interface {
	Create(ctx context.Context, match *domain.Match) error
	GetByID(ctx context.Context, id int) (*domain.Match, error)
	GetByUsers(ctx context.Context, user1ID, user2ID int) (*domain.Match, error)
	GetUserMatches(ctx context.Context, userID int, limit, offset int) ([]*domain.Match, error)
	UpdateStatus(ctx context.Context, id int, status domain.MatchStatus) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)

	// FindCandidates returns users sharing at least one sport with userID,
	// deduplicated, self excluded, in no particular order.
	FindCandidates(ctx context.Context, userID int) ([]*domain.MatchCandidate, error)

	// AcceptAndCreateChat flips a PENDING match to ACCEPTED and creates its chat,
	// two member rows and the SYSTEM welcome message in a single transaction.
	AcceptAndCreateChat(ctx context.Context, matchID int) (*domain.Chat, *domain.Message, error)
}
