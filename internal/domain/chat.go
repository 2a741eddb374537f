package domain

import "time"

type MessageType string

const (
	MessageText   MessageType = "TEXT"
	MessageSystem MessageType = "SYSTEM"
)

// WelcomeMessage is the SYSTEM message seeded into every match-derived chat.
const WelcomeMessage = "You can now start your discussion!"

// Chat is a message thread. Match-derived chats are never groups and are
// created exactly once, when their match is accepted.
type Chat struct {
	ID        int       `json:"id" db:"id"`
	IsGroup   bool      `json:"is_group" db:"is_group"`
	MatchID   *int      `json:"match_id" db:"match_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ChatMember links a user to a chat and is the authorization record for
// sending and reading messages.
type ChatMember struct {
	ChatID   int       `json:"chat_id" db:"chat_id"`
	UserID   int       `json:"user_id" db:"user_id"`
	JoinedAt time.Time `json:"joined_at" db:"joined_at"`
}

// Message belongs to exactly one chat. SenderID is nil for SYSTEM messages.
type Message struct {
	ID          int         `json:"id" db:"id"`
	ChatID      int         `json:"chat_id" db:"chat_id"`
	SenderID    *int        `json:"sender_id" db:"sender_id"`
	MessageType MessageType `json:"message_type" db:"message_type"`
	Content     string      `json:"content" db:"content"`
	SentAt      time.Time   `json:"sent_at" db:"sent_at"`

	// joined in for display
	SenderName *string `json:"sender_name,omitempty" db:"sender_name"`
}

// ChatSummary is the list view of a chat for one user.
type ChatSummary struct {
	ChatID      int       `json:"chat_id" db:"chat_id"`
	IsGroup     bool      `json:"is_group" db:"is_group"`
	OtherUserID *int      `json:"other_user_id" db:"other_user_id"`
	OtherName   *string   `json:"other_name" db:"other_name"`
	LastMessage *string   `json:"last_message" db:"last_message"`
	LastSentAt  *time.Time `json:"last_sent_at" db:"last_sent_at"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
