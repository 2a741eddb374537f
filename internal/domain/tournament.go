package domain

import "time"

type Tournament struct {
	ID        int       `json:"id" db:"id"`
	SportID   int       `json:"sport_id" db:"sport_id"`
	Name      string    `json:"name" db:"name"`
	StartsAt  time.Time `json:"starts_at" db:"starts_at"`
	EndsAt    time.Time `json:"ends_at" db:"ends_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Team struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CaptainID int       `json:"captain_id" db:"captain_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type TeamMember struct {
	TeamID   int       `json:"team_id" db:"team_id"`
	UserID   int       `json:"user_id" db:"user_id"`
	JoinedAt time.Time `json:"joined_at" db:"joined_at"`
}

// TournamentTeam registers a team for a tournament.
type TournamentTeam struct {
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	TeamID       int       `json:"team_id" db:"team_id"`
	RegisteredAt time.Time `json:"registered_at" db:"registered_at"`
}
