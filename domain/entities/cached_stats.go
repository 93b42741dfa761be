package entities

import "time"

// RawStats is the tier/division/points triple fetched from the stats provider
// for one linked account. Tier and Division are kept as the provider sent them;
// parsing into a scored value happens in the scorer, never here.
type RawStats struct {
	Tier     string `json:"tier"`
	Division string `json:"division"`
	Points   int    `json:"points"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
}

// RankLabel returns the human-readable rank, e.g. "Gold II" or "Unranked"
func (s RawStats) RankLabel() string {
	if s.Tier == "" {
		return "Unranked"
	}
	if s.Division == "" {
		return s.Tier
	}
	return s.Tier + " " + s.Division
}

// CachedStatEntry is the persisted per-user-per-game stats snapshot.
// LastUpdatedAt only moves forward: an entry is overwritten solely on a
// successful provider fetch.
type CachedStatEntry struct {
	UserID        string    `db:"user_id"`
	Game          Game      `db:"game"`
	Stats         RawStats  `db:"stats"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
}

// IsFresh reports whether the entry is still within the game's TTL window
func (e *CachedStatEntry) IsFresh(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.LastUpdatedAt) <= ttl
}

// StatsResult is what the stats cache hands back to callers: the stats plus
// how they were obtained. Stale implies Cached.
type StatsResult struct {
	Stats  RawStats
	Cached bool
	Stale  bool
}
