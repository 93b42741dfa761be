package services

import (
	"testing"

	"partyboard/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func member(userID string, score int64) entities.MemberStat {
	return entities.MemberStat{
		UserID:      userID,
		DisplayName: userID,
		Score:       score,
	}
}

func TestRank_SortsDescendingWithContiguousPositions(t *testing.T) {
	members := []entities.MemberStat{
		member("mid", 500),
		member("top", 900),
		member("bottom", 100),
	}

	ranked := Rank(members)

	require.Len(t, ranked, 3)
	assert.Equal(t, "top", ranked[0].UserID)
	assert.Equal(t, "mid", ranked[1].UserID)
	assert.Equal(t, "bottom", ranked[2].UserID)
	for i, r := range ranked {
		assert.Equal(t, i+1, r.Position)
	}
}

func TestRank_TiesKeepInputOrder(t *testing.T) {
	members := []entities.MemberStat{
		member("first", 400),
		member("second", 400),
		member("third", 400),
	}

	ranked := Rank(members)

	require.Len(t, ranked, 3)
	assert.Equal(t, "first", ranked[0].UserID)
	assert.Equal(t, "second", ranked[1].UserID)
	assert.Equal(t, "third", ranked[2].UserID)
	// Ties do not share positions
	assert.Equal(t, 1, ranked[0].Position)
	assert.Equal(t, 2, ranked[1].Position)
	assert.Equal(t, 3, ranked[2].Position)
}

func TestRank_IsDeterministicAcrossRecomputations(t *testing.T) {
	members := []entities.MemberStat{
		member("a", 300),
		member("b", 300),
		member("c", 700),
		member("d", 300),
	}

	first := Rank(members)
	second := Rank(members)

	assert.Equal(t, first, second)
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	members := []entities.MemberStat{
		member("low", 10),
		member("high", 90),
	}

	Rank(members)

	assert.Equal(t, "low", members[0].UserID)
	assert.Equal(t, "high", members[1].UserID)
}

func TestRank_UnrankedMembersSortLast(t *testing.T) {
	members := []entities.MemberStat{
		member("unranked", 0),
		member("ranked", 250_000),
	}

	ranked := Rank(members)

	require.Len(t, ranked, 2)
	assert.Equal(t, "ranked", ranked[0].UserID)
	assert.Equal(t, "unranked", ranked[1].UserID)
}

func TestRank_EmptyInput(t *testing.T) {
	ranked := Rank(nil)
	assert.NotNil(t, ranked)
	assert.Empty(t, ranked)
}

func TestRank_SingleMember(t *testing.T) {
	ranked := Rank([]entities.MemberStat{member("solo", 123)})
	require.Len(t, ranked, 1)
	assert.Equal(t, 1, ranked[0].Position)
}
