package services

import (
	"testing"

	"partyboard/domain/entities"

	"github.com/stretchr/testify/assert"
)

func TestScore_TierDominatesDivisionAndPoints(t *testing.T) {
	// A one-tier advantage must beat any division/points combination below it
	lowTierMaxed := Score(entities.GameLeagueOfLegends, "GOLD", "I", 99)
	highTierFloor := Score(entities.GameLeagueOfLegends, "PLATINUM", "IV", 0)
	assert.Greater(t, highTierFloor, lowTierMaxed)

	valLow := Score(entities.GameValorant, "SILVER", "3", 99)
	valHigh := Score(entities.GameValorant, "GOLD", "1", 0)
	assert.Greater(t, valHigh, valLow)
}

func TestScore_DivisionDominatesPoints(t *testing.T) {
	lowDivMaxed := Score(entities.GameLeagueOfLegends, "GOLD", "III", 99)
	highDivFloor := Score(entities.GameLeagueOfLegends, "GOLD", "II", 0)
	assert.Greater(t, highDivFloor, lowDivMaxed)
}

func TestScore_PointsBreakTiesWithinDivision(t *testing.T) {
	fewer := Score(entities.GameValorant, "PLATINUM", "2", 10)
	more := Score(entities.GameValorant, "PLATINUM", "2", 55)
	assert.Greater(t, more, fewer)
}

func TestScore_LolDivisionsDescendRomanNumerals(t *testing.T) {
	// IV is the weakest division within a League tier, I the strongest
	iv := Score(entities.GameLeagueOfLegends, "DIAMOND", "IV", 0)
	iii := Score(entities.GameLeagueOfLegends, "DIAMOND", "III", 0)
	ii := Score(entities.GameLeagueOfLegends, "DIAMOND", "II", 0)
	i := Score(entities.GameLeagueOfLegends, "DIAMOND", "I", 0)
	assert.Less(t, iv, iii)
	assert.Less(t, iii, ii)
	assert.Less(t, ii, i)
}

func TestScore_ValorantDivisionsAscend(t *testing.T) {
	one := Score(entities.GameValorant, "ASCENDANT", "1", 0)
	two := Score(entities.GameValorant, "ASCENDANT", "2", 0)
	three := Score(entities.GameValorant, "ASCENDANT", "3", 0)
	assert.Less(t, one, two)
	assert.Less(t, two, three)
}

func TestScore_TierLadderIsStrictlyIncreasing(t *testing.T) {
	lolLadder := []string{"IRON", "BRONZE", "SILVER", "GOLD", "PLATINUM", "EMERALD", "DIAMOND", "MASTER", "GRANDMASTER", "CHALLENGER"}
	for i := 1; i < len(lolLadder); i++ {
		lower := Score(entities.GameLeagueOfLegends, lolLadder[i-1], "I", 99)
		higher := Score(entities.GameLeagueOfLegends, lolLadder[i], "IV", 0)
		assert.Greater(t, higher, lower, "%s should outrank %s", lolLadder[i], lolLadder[i-1])
	}

	valLadder := []string{"IRON", "BRONZE", "SILVER", "GOLD", "PLATINUM", "DIAMOND", "ASCENDANT", "IMMORTAL", "RADIANT"}
	for i := 1; i < len(valLadder); i++ {
		lower := Score(entities.GameValorant, valLadder[i-1], "3", 99)
		higher := Score(entities.GameValorant, valLadder[i], "1", 0)
		assert.Greater(t, higher, lower, "%s should outrank %s", valLadder[i], valLadder[i-1])
	}
}

func TestScore_UnknownInputsScoreZero(t *testing.T) {
	tests := []struct {
		name     string
		game     entities.Game
		tier     string
		division string
		points   int
		expected int64
	}{
		{
			name:     "unknown tier",
			game:     entities.GameLeagueOfLegends,
			tier:     "OBSIDIAN",
			division: "II",
			points:   50,
			expected: 0,
		},
		{
			name:     "empty tier",
			game:     entities.GameLeagueOfLegends,
			tier:     "",
			division: "I",
			points:   80,
			expected: 0,
		},
		{
			name:     "unknown game",
			game:     entities.Game("fortnite"),
			tier:     "GOLD",
			division: "II",
			points:   50,
			expected: 0,
		},
		{
			name:     "valorant roman division contributes nothing",
			game:     entities.GameValorant,
			tier:     "GOLD",
			division: "II",
			points:   10,
			expected: 3*100_000 + 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Score(tt.game, tt.tier, tt.division, tt.points))
		})
	}
}

func TestScore_ApexTiersCarryNoDivision(t *testing.T) {
	withDivision := Score(entities.GameLeagueOfLegends, "CHALLENGER", "", 750)
	assert.Equal(t, int64(9*100_000+750), withDivision)

	radiant := Score(entities.GameValorant, "RADIANT", "", 320)
	assert.Equal(t, int64(8*100_000+320), radiant)
}

func TestScore_NormalizesCasingAndWhitespace(t *testing.T) {
	canonical := Score(entities.GameLeagueOfLegends, "GOLD", "II", 42)
	assert.Equal(t, canonical, Score(entities.GameLeagueOfLegends, "gold", "ii", 42))
	assert.Equal(t, canonical, Score(entities.GameLeagueOfLegends, " Gold ", " II ", 42))
}

func TestScoreStats_MatchesScore(t *testing.T) {
	stats := entities.RawStats{Tier: "EMERALD", Division: "III", Points: 67}
	assert.Equal(t,
		Score(entities.GameLeagueOfLegends, "EMERALD", "III", 67),
		ScoreStats(entities.GameLeagueOfLegends, stats),
	)
}
