package services

import (
	"strings"

	"partyboard/domain/entities"
)

// Scoring composition: tierWeight*tierStep + divisionWeight*divisionStep + points.
// tierStep is large enough that any tier difference dominates any combination
// of division and point differences, and divisionStep large enough that any
// division difference dominates point differences within a tier.
const (
	tierStep     int64 = 100_000
	divisionStep int64 = 1_000
)

// lolTiers is the closed tier set for League of Legends, weakest first
var lolTiers = map[string]int64{
	"IRON":        0,
	"BRONZE":      1,
	"SILVER":      2,
	"GOLD":        3,
	"PLATINUM":    4,
	"EMERALD":     5,
	"DIAMOND":     6,
	"MASTER":      7,
	"GRANDMASTER": 8,
	"CHALLENGER":  9,
}

// lolDivisions follow the descending roman numeral convention: IV is the
// weakest division within a tier, I the strongest.
var lolDivisions = map[string]int64{
	"IV":  0,
	"III": 1,
	"II":  2,
	"I":   3,
}

// valorantTiers is the closed tier set for Valorant, weakest first
var valorantTiers = map[string]int64{
	"IRON":      0,
	"BRONZE":    1,
	"SILVER":    2,
	"GOLD":      3,
	"PLATINUM":  4,
	"DIAMOND":   5,
	"ASCENDANT": 6,
	"IMMORTAL":  7,
	"RADIANT":   8,
}

// valorantDivisions use ascending numerals: 1 is the weakest division
var valorantDivisions = map[string]int64{
	"1": 0,
	"2": 1,
	"3": 2,
}

// Score converts a tier/division/points triple into one monotonic comparable
// value for the given game. An unparsable tier scores 0; an unparsable
// division contributes nothing. It never fails: garbage in, zero out.
func Score(game entities.Game, tier, division string, points int) int64 {
	switch game {
	case entities.GameLeagueOfLegends:
		return scoreWithTables(lolTiers, lolDivisions, tier, division, points)
	case entities.GameValorant:
		return scoreWithTables(valorantTiers, valorantDivisions, tier, division, points)
	default:
		return 0
	}
}

// ScoreStats scores a provider stats payload for the given game
func ScoreStats(game entities.Game, stats entities.RawStats) int64 {
	return Score(game, stats.Tier, stats.Division, stats.Points)
}

func scoreWithTables(tiers, divisions map[string]int64, tier, division string, points int) int64 {
	tierWeight, ok := tiers[normalizeRankToken(tier)]
	if !ok {
		return 0
	}

	// Apex tiers carry no division; an absent or unknown division simply
	// contributes zero rather than invalidating the tier.
	divisionWeight := divisions[normalizeRankToken(division)]

	score := tierWeight*tierStep + divisionWeight*divisionStep + int64(points)
	if score < 0 {
		return 0
	}
	return score
}

func normalizeRankToken(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}
