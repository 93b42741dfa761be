package services

import (
	"sort"

	"partyboard/domain/entities"
)

// Rank sorts members by score descending and assigns 1-based positions.
// The sort is stable: equal-score members keep their input order, which is
// what makes tie-breaks deterministic across recomputations.
func Rank(members []entities.MemberStat) []entities.RankedMember {
	if len(members) == 0 {
		return []entities.RankedMember{}
	}

	sorted := make([]entities.MemberStat, len(members))
	copy(sorted, members)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	ranked := make([]entities.RankedMember, len(sorted))
	for i, m := range sorted {
		ranked[i] = entities.RankedMember{
			MemberStat: m,
			Position:   i + 1,
		}
	}
	return ranked
}
