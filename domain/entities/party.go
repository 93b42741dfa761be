package entities

import "time"

// Party is a small friend group sharing per-game leaderboards
type Party struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	OwnerID   string    `db:"owner_id"`
	CreatedAt time.Time `db:"created_at"`
}

// PartyMember is one member of a party, joined with the lightweight profile
// fields leaderboard rendering needs.
type PartyMember struct {
	PartyID     string    `db:"party_id"`
	UserID      string    `db:"user_id"`
	DisplayName string    `db:"display_name"`
	AvatarURL   string    `db:"avatar_url"`
	JoinedAt    time.Time `db:"joined_at"`
}
