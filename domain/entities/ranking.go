package entities

import "time"

// MemberStat is one party member's scored stats for a single ranking pass.
// It is derived per invocation from the stats cache (or a fallback profile)
// and never persisted on its own.
type MemberStat struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
	RankLabel   string `json:"rank_label"`
	Points      int    `json:"points"`
	Score       int64  `json:"score"`
}

// RankedMember is a MemberStat with its 1-based leaderboard position
type RankedMember struct {
	MemberStat
	Position int `json:"position"`
}

// RankingSnapshot is the persisted leaderboard for one party and game.
// Exactly one current snapshot exists per (party, game); it is replaced
// wholesale on every recomputation, never patched in place.
type RankingSnapshot struct {
	PartyID   string         `db:"party_id"`
	Game      Game           `db:"game"`
	Members   []RankedMember `db:"members"`
	CreatedAt time.Time      `db:"created_at"`
}

// PositionOf returns the member's position in the snapshot, or 0 if absent
func (s *RankingSnapshot) PositionOf(userID string) int {
	if s == nil {
		return 0
	}
	for _, m := range s.Members {
		if m.UserID == userID {
			return m.Position
		}
	}
	return 0
}
