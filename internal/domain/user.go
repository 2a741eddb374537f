package domain

import "time"

// Auth providers selectable at startup.
const (
	ProviderLocal    = "local"
	ProviderGoogle   = "google"
	ProviderFacebook = "facebook"
)

type User struct {
	ID           int        `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	PasswordHash *string    `json:"-" db:"password_hash"`
	Provider     string     `json:"provider" db:"provider"`
	ProviderID   *string    `json:"-" db:"provider_id"`
	DisplayName  string     `json:"display_name" db:"display_name"`
	AvatarURL    *string    `json:"avatar_url" db:"avatar_url"`
	Bio          *string    `json:"bio" db:"bio"`
	City         *string    `json:"city" db:"city"`
	Points       int        `json:"points" db:"points"`
	IsAdmin      bool       `json:"is_admin" db:"is_admin"`
	IsBanned     bool       `json:"is_banned" db:"is_banned"`
	IsBlocked    bool       `json:"is_blocked" db:"is_blocked"`
	IsOnline     bool       `json:"is_online" db:"is_online"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// CanParticipate reports whether the user may take part in matches, chats and events.
func (u *User) CanParticipate() bool {
	return !u.IsBanned && !u.IsBlocked
}

type Session struct {
	ID         int       `json:"id" db:"id"`
	UserID     int       `json:"user_id" db:"user_id"`
	Token      string    `json:"-" db:"token"`
	DeviceInfo *string   `json:"device_info" db:"device_info"`
	IPAddress  *string   `json:"ip_address" db:"ip_address"`
	ExpiresAt  time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
