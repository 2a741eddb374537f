package domain

import "time"

type Sport struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	IconURL   *string   `json:"icon_url" db:"icon_url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// UserSport expresses "user is interested in sport". Many-to-many, unordered.
type UserSport struct {
	UserID    int       `json:"user_id" db:"user_id"`
	SportID   int       `json:"sport_id" db:"sport_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
