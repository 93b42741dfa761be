package entities

import (
	"strings"
	"time"
)

// User represents an app user with their push address and profile fields
type User struct {
	ID          string    `db:"id"`
	DisplayName string    `db:"display_name"`
	AvatarURL   string    `db:"avatar_url"`
	PushToken   *string   `db:"push_token"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// HasPushToken reports whether a push address is on file for the user
func (u *User) HasPushToken() bool {
	return u.PushToken != nil && strings.TrimSpace(*u.PushToken) != ""
}

// GameAccount links a user to their account on a game's stats provider
type GameAccount struct {
	UserID     string    `db:"user_id"`
	Game       Game      `db:"game"`
	AccountRef string    `db:"account_ref"`
	LinkedAt   time.Time `db:"linked_at"`
}
