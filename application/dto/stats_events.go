package dto

import "time"

// StatsUpdatedDTO is the application-level shape of the "this user's stats
// document for this game changed" trigger signal.
type StatsUpdatedDTO struct {
	UserID    string
	Game      string
	UpdatedAt time.Time
}
