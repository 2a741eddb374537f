package domain

import "time"

type MatchStatus string

const (
	MatchPending  MatchStatus = "PENDING"
	MatchAccepted MatchStatus = "ACCEPTED"
	MatchRejected MatchStatus = "REJECTED"
)

// Match is a pairing proposal between exactly two distinct users.
// User1ID < User2ID is normalized at the repository boundary and backed by a
// unique index, so at most one match can exist per unordered pair.
type Match struct {
	ID          int         `json:"id" db:"id"`
	User1ID     int         `json:"user1_id" db:"user1_id"`
	User2ID     int         `json:"user2_id" db:"user2_id"`
	RequesterID int         `json:"requester_id" db:"requester_id"`
	Status      MatchStatus `json:"status" db:"status"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

func (m *Match) HasUser(userID int) bool {
	return m.User1ID == userID || m.User2ID == userID
}

func (m *Match) GetOtherUserID(userID int) (int, bool) {
	if m.User1ID == userID {
		return m.User2ID, true
	}
	if m.User2ID == userID {
		return m.User1ID, true
	}
	return 0, false
}

// IsTerminal reports whether the match reached a final state. Terminal matches
// are immutable.
func (m *Match) IsTerminal() bool {
	return m.Status == MatchAccepted || m.Status == MatchRejected
}

// MatchCandidate is a row of FindMatches: a user sharing at least one sport.
type MatchCandidate struct {
	UserID       int      `json:"user_id" db:"user_id"`
	DisplayName  string   `json:"display_name" db:"display_name"`
	AvatarURL    *string  `json:"avatar_url" db:"avatar_url"`
	City         *string  `json:"city" db:"city"`
	SharedSports []string `json:"shared_sports"`
}
