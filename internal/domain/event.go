package domain

import "time"

type Event struct {
	ID          int       `json:"id" db:"id"`
	CreatorID   int       `json:"creator_id" db:"creator_id"`
	SportID     int       `json:"sport_id" db:"sport_id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description" db:"description"`
	Location    string    `json:"location" db:"location"`
	StartsAt    time.Time `json:"starts_at" db:"starts_at"`
	Capacity    int       `json:"capacity" db:"capacity"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	// joined in for list views
	ParticipantCount int `json:"participant_count" db:"participant_count"`
}

// HasRoom reports whether another participant fits. Capacity 0 means unlimited.
func (e *Event) HasRoom() bool {
	return e.Capacity == 0 || e.ParticipantCount < e.Capacity
}

type EventParticipant struct {
	EventID  int       `json:"event_id" db:"event_id"`
	UserID   int       `json:"user_id" db:"user_id"`
	JoinedAt time.Time `json:"joined_at" db:"joined_at"`
}
