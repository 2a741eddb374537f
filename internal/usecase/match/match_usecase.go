package match

import (
	"context"
	"fmt"

	"github.com/matchpoint-app/backend/internal/domain"
	"github.com/matchpoint-app/backend/internal/realtime"
	"github.com/matchpoint-app/backend/internal/repository"
)

// Notifier persists a notification and pushes it to the user's personal room.
type Notifier interface {
	Notify(ctx context.Context, userID int, typ domain.NotificationType, content string, actionURL *string) error
}

type MatchUseCase struct {
	matchRepo repository.MatchRepository
	userRepo  repository.UserRepository
	notifier  Notifier
	publisher realtime.Publisher
}

func NewMatchUseCase(
	matchRepo repository.MatchRepository,
	userRepo repository.UserRepository,
	notifier Notifier,
	publisher realtime.Publisher,
) *MatchUseCase {
	return &MatchUseCase{
		matchRepo: matchRepo,
		userRepo:  userRepo,
		notifier:  notifier,
		publisher: publisher,
	}
}

// CreateMatchRequest represents a match proposal
type CreateMatchRequest struct {
	TargetUserID int `json:"target_user_id" binding:"required"`
}

// AcceptMatchResponse represents the result of accepting a match
type AcceptMatchResponse struct {
	Match          *domain.Match   `json:"match"`
	Chat           *domain.Chat    `json:"chat"`
	WelcomeMessage *domain.Message `json:"welcome_message"`
}

// MatchUpdate is the match_update event payload pushed to personal rooms.
type MatchUpdate struct {
	MatchID int                `json:"match_id"`
	Status  domain.MatchStatus `json:"status"`
	ChatID  *int               `json:"chat_id,omitempty"`
}

// FindMatches returns users sharing at least one sport with userID.
func (uc *MatchUseCase) FindMatches(ctx context.Context, userID int) ([]*domain.MatchCandidate, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.CanParticipate() {
		return nil, domain.ErrUserBanned
	}

	candidates, err := uc.matchRepo.FindCandidates(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find candidates: %w", err)
	}
	return candidates, nil
}

// CreateMatch proposes a match to another user. The pair is unique regardless
// of who proposes first; a second proposal in either direction fails with
// ErrMatchAlreadyExists.
func (uc *MatchUseCase) CreateMatch(ctx context.Context, requesterID int, req *CreateMatchRequest) (*domain.Match, error) {
	if requesterID == req.TargetUserID {
		return nil, domain.ErrCannotMatchSelf
	}

	requester, err := uc.userRepo.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if !requester.CanParticipate() {
		return nil, domain.ErrUserBanned
	}

	if _, err := uc.userRepo.GetByID(ctx, req.TargetUserID); err != nil {
		return nil, err
	}

	match := &domain.Match{
		User1ID:     requesterID,
		User2ID:     req.TargetUserID,
		RequesterID: requesterID,
		Status:      domain.MatchPending,
	}
	if err := uc.matchRepo.Create(ctx, match); err != nil {
		return nil, err
	}

	content := fmt.Sprintf("%s wants to match with you", requester.DisplayName)
	if err := uc.notifier.Notify(ctx, req.TargetUserID, domain.NotificationMatch, content, nil); err != nil {
		return nil, fmt.Errorf("failed to notify target: %w", err)
	}
	uc.publisher.PublishToUser(req.TargetUserID, realtime.EventMatchUpdate, &MatchUpdate{
		MatchID: match.ID,
		Status:  match.Status,
	})

	return match, nil
}

// AcceptMatch flips a pending match to ACCEPTED and creates its chat with the
// welcome message, atomically. Only the non-requesting participant may accept.
func (uc *MatchUseCase) AcceptMatch(ctx context.Context, userID, matchID int) (*AcceptMatchResponse, error) {
	match, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.HasUser(userID) {
		return nil, domain.ErrNotMatchParticipant
	}
	if userID == match.RequesterID {
		return nil, domain.ErrCannotAcceptOwnMatch
	}
	if match.Status != domain.MatchPending {
		return nil, domain.ErrMatchNotPending
	}

	chat, welcome, err := uc.matchRepo.AcceptAndCreateChat(ctx, matchID)
	if err != nil {
		return nil, err
	}
	match.Status = domain.MatchAccepted

	update := &MatchUpdate{MatchID: match.ID, Status: domain.MatchAccepted, ChatID: &chat.ID}
	for _, participantID := range []int{match.User1ID, match.User2ID} {
		uc.publisher.PublishToUser(participantID, realtime.EventMatchUpdate, update)
	}
	// The requester additionally gets the answer to their proposal.
	uc.publisher.PublishToUser(match.RequesterID, realtime.EventMatchResponse, update)

	actionURL := fmt.Sprintf("/chats/%d", chat.ID)
	if err := uc.notifier.Notify(ctx, match.RequesterID, domain.NotificationMatch, "Your match was accepted", &actionURL); err != nil {
		return nil, fmt.Errorf("failed to notify requester: %w", err)
	}

	return &AcceptMatchResponse{Match: match, Chat: chat, WelcomeMessage: welcome}, nil
}

// RejectMatch flips a pending match to REJECTED. No chat is created. Either
// participant except the requester may reject.
func (uc *MatchUseCase) RejectMatch(ctx context.Context, userID, matchID int) (*domain.Match, error) {
	match, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.HasUser(userID) {
		return nil, domain.ErrNotMatchParticipant
	}
	if userID == match.RequesterID {
		return nil, domain.ErrCannotAcceptOwnMatch
	}
	if match.Status != domain.MatchPending {
		return nil, domain.ErrMatchNotPending
	}

	if err := uc.matchRepo.UpdateStatus(ctx, matchID, domain.MatchRejected); err != nil {
		return nil, err
	}
	match.Status = domain.MatchRejected

	update := &MatchUpdate{MatchID: match.ID, Status: domain.MatchRejected}
	for _, participantID := range []int{match.User1ID, match.User2ID} {
		uc.publisher.PublishToUser(participantID, realtime.EventMatchUpdate, update)
	}
	uc.publisher.PublishToUser(match.RequesterID, realtime.EventMatchResponse, update)

	return match, nil
}

// GetUserMatches lists the user's matches, newest first.
func (uc *MatchUseCase) GetUserMatches(ctx context.Context, userID int, limit, offset int) ([]*domain.Match, error) {
	return uc.matchRepo.GetUserMatches(ctx, userID, limit, offset)
}
