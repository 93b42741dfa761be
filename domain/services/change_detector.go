package services

import (
	"partyboard/domain/entities"
)

// notifyRankThreshold bounds which positions are worth telling anyone about.
// Movement entirely below this rank notifies nobody.
const notifyRankThreshold = 3

// Diff compares the previous ranking to the new one and emits the minimal,
// deduplicated set of notification-worthy events. oldMembers nil means no
// snapshot existed yet (bootstrap). All comparisons use positions, never raw
// scores, so the detector is unaffected by rescaling of the scorer.
//
// Events carry only member-level fields; the caller stamps party and game.
func Diff(oldMembers, newMembers []entities.RankedMember) []entities.NotificationEvent {
	events := make([]entities.NotificationEvent, 0)
	seen := make(map[string]bool)
	emit := func(e entities.NotificationEvent) {
		// The same overtake can be discovered from both directions; the
		// composite key collapses it to one event.
		key := e.DedupKey()
		if seen[key] {
			return
		}
		seen[key] = true
		events = append(events, e)
	}

	if oldMembers == nil {
		// Bootstrap: no prior snapshot, announce the initial top ranks only.
		for _, m := range newMembers {
			if m.Position <= notifyRankThreshold {
				emit(entities.NotificationEvent{
					RecipientID: m.UserID,
					SubjectID:   m.UserID,
					SubjectName: m.DisplayName,
					Direction:   entities.DirectionNewEntry,
					NewRank:     m.Position,
				})
			}
		}
		return events
	}

	oldPos := make(map[string]int, len(oldMembers))
	for _, m := range oldMembers {
		oldPos[m.UserID] = m.Position
	}
	newPos := make(map[string]int, len(newMembers))
	for _, m := range newMembers {
		newPos[m.UserID] = m.Position
	}

	for _, m := range newMembers {
		op, existed := oldPos[m.UserID]
		np := m.Position

		if !existed {
			// First stats ever recorded for this member: bootstrap treatment
			// for the individual, not the whole group.
			if np <= notifyRankThreshold {
				emit(entities.NotificationEvent{
					RecipientID: m.UserID,
					SubjectID:   m.UserID,
					SubjectName: m.DisplayName,
					Direction:   entities.DirectionNewEntry,
					NewRank:     np,
				})
			}
			continue
		}

		if np == op {
			continue
		}
		if op > notifyRankThreshold && np > notifyRankThreshold {
			continue
		}

		if np < op {
			emit(entities.NotificationEvent{
				RecipientID: m.UserID,
				SubjectID:   m.UserID,
				SubjectName: m.DisplayName,
				Direction:   entities.DirectionMovedUp,
				NewRank:     np,
				OldRank:     op,
			})
			emitOvertaken(emit, m, op, oldMembers, newPos)
			continue
		}

		// Worsened: one event for the member, attributed to the improver
		// that crossed them. The mover side is produced above when that
		// member's own improvement is processed.
		subjectID, subjectName := findOvertaker(m, op, oldPos, newMembers)
		emit(entities.NotificationEvent{
			RecipientID: m.UserID,
			SubjectID:   subjectID,
			SubjectName: subjectName,
			Direction:   entities.DirectionOvertaken,
			NewRank:     np,
			OldRank:     op,
		})
	}

	return events
}

// emitOvertaken scans the old snapshot for members the mover climbed past:
// anyone whose old position was better than the mover's old position and
// whose new position is now at or worse than the mover's new position.
func emitOvertaken(emit func(entities.NotificationEvent), mover entities.RankedMember, moverOld int, oldMembers []entities.RankedMember, newPos map[string]int) {
	for _, o := range oldMembers {
		if o.UserID == mover.UserID || o.Position >= moverOld {
			continue
		}
		np, present := newPos[o.UserID]
		if !present {
			// Left the party; membership changes are handled upstream.
			continue
		}
		if np < mover.Position {
			continue
		}
		if o.Position > notifyRankThreshold && np > notifyRankThreshold {
			continue
		}
		emit(entities.NotificationEvent{
			RecipientID: o.UserID,
			SubjectID:   mover.UserID,
			SubjectName: mover.DisplayName,
			Direction:   entities.DirectionOvertaken,
			NewRank:     np,
			OldRank:     o.Position,
		})
	}
}

// findOvertaker picks the best-placed improver that crossed the worsened
// member, so the self-discovered event carries the same subject as the one
// discovered from the mover's side and the dedup key collapses the pair.
// Falls back to the member themself when no crossing improver exists.
func findOvertaker(member entities.RankedMember, oldRank int, oldPos map[string]int, newMembers []entities.RankedMember) (string, string) {
	for _, c := range newMembers {
		if c.UserID == member.UserID {
			continue
		}
		cop, existed := oldPos[c.UserID]
		if !existed {
			continue
		}
		if c.Position < cop && cop > oldRank && c.Position <= member.Position {
			return c.UserID, c.DisplayName
		}
	}
	return member.UserID, member.DisplayName
}
