package domain

import "errors"

var (
	// users / auth
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
	ErrUserBanned         = errors.New("user is banned")
	ErrInvalidInput       = errors.New("invalid input")

	// sports
	ErrSportNotFound = errors.New("sport not found")

	// matches
	ErrMatchNotFound        = errors.New("match not found")
	ErrMatchAlreadyExists   = errors.New("match already exists between these users")
	ErrCannotMatchSelf      = errors.New("cannot create a match with yourself")
	ErrMatchNotPending      = errors.New("match is not pending")
	ErrNotMatchParticipant  = errors.New("user is not a participant of this match")
	ErrCannotAcceptOwnMatch = errors.New("match requester cannot respond to it")

	// chats
	ErrChatNotFound  = errors.New("chat not found")
	ErrNotChatMember = errors.New("user is not a member of this chat")

	// notifications
	ErrNotificationNotFound = errors.New("notification not found")

	// events / tournaments
	ErrEventNotFound      = errors.New("event not found")
	ErrEventFull          = errors.New("event is full")
	ErrAlreadyJoined      = errors.New("already joined")
	ErrNotJoined          = errors.New("not a participant")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrNotTeamCaptain     = errors.New("only the team captain can do this")

	// marketplace
	ErrProductNotFound    = errors.New("product not found")
	ErrNotProductSeller   = errors.New("user is not the seller of this product")
	ErrReviewExists       = errors.New("product already reviewed by this user")
	ErrReviewNotFound     = errors.New("review not found")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrOrderNotFound      = errors.New("order not found")
	ErrPaymentDeclined    = errors.New("payment declined")
	ErrCartItemNotFound   = errors.New("cart item not found")

	// moderation
	ErrReportNotFound = errors.New("report not found")
)
