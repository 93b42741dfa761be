package application

import (
	"context"
	"fmt"
	"time"

	"partyboard/application/dto"
	"partyboard/domain/entities"
	"partyboard/domain/interfaces"
	"partyboard/domain/services"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// gatherConcurrency caps concurrent stats reads while gathering one party
const gatherConcurrency = 4

// PartyUpdateOrchestrator ties one stats-update signal to the full pipeline:
// locate affected parties, gather member stats cache-aware, rank, diff,
// dispatch, persist the new snapshot. Each invocation is self-contained;
// concurrent invocations share no mutable state and last-write-wins on the
// snapshot is acceptable because it is idempotently recomputable.
type PartyUpdateOrchestrator struct {
	partyRepo    interfaces.PartyRepository
	snapshotRepo interfaces.SnapshotRepository
	statsCache   interfaces.StatsCacheService
	dispatcher   interfaces.NotificationDispatcher
}

// NewPartyUpdateOrchestrator creates the orchestrator
func NewPartyUpdateOrchestrator(
	partyRepo interfaces.PartyRepository,
	snapshotRepo interfaces.SnapshotRepository,
	statsCache interfaces.StatsCacheService,
	dispatcher interfaces.NotificationDispatcher,
) *PartyUpdateOrchestrator {
	return &PartyUpdateOrchestrator{
		partyRepo:    partyRepo,
		snapshotRepo: snapshotRepo,
		statsCache:   statsCache,
		dispatcher:   dispatcher,
	}
}

// HandleStatsUpdated processes one trigger signal. A returned error means the
// affected parties could not even be located, so the message is worth
// redelivering; every failure past that point is recovered per party or per
// member and logged instead.
func (o *PartyUpdateOrchestrator) HandleStatsUpdated(ctx context.Context, update dto.StatsUpdatedDTO) error {
	game, err := entities.ParseGame(update.Game)
	if err != nil {
		// A malformed signal will not improve on redelivery
		log.WithFields(log.Fields{
			"userId": update.UserID,
			"game":   update.Game,
		}).Warn("Dropping stats update for unsupported game")
		return nil
	}

	log.WithFields(log.Fields{
		"userId": update.UserID,
		"game":   game,
	}).Info("Handling stats update")

	parties, err := o.partyRepo.GetPartiesByMember(ctx, update.UserID)
	if err != nil {
		return fmt.Errorf("failed to find parties for user %s: %w", update.UserID, err)
	}
	if len(parties) == 0 {
		log.WithField("userId", update.UserID).Debug("User belongs to no parties")
		return nil
	}

	for _, party := range parties {
		if err := o.processParty(ctx, party, game); err != nil {
			log.WithFields(log.Fields{
				"partyId": party.ID,
				"game":    game,
				"error":   err,
			}).Error("Failed to recompute party leaderboard")
			// Continue with the remaining parties
		}
	}
	return nil
}

// processParty recomputes one party's leaderboard for one game and replaces
// its snapshot. A dispatch failure never blocks snapshot persistence: the
// snapshot is the source of truth for the next diff, not a delivery ledger.
func (o *PartyUpdateOrchestrator) processParty(ctx context.Context, party *entities.Party, game entities.Game) error {
	members, err := o.partyRepo.GetMembers(ctx, party.ID)
	if err != nil {
		return fmt.Errorf("failed to load members: %w", err)
	}
	if len(members) == 0 {
		return nil
	}

	stats := o.gatherMemberStats(ctx, members, game)
	ranked := services.Rank(stats)

	prev, err := o.snapshotRepo.GetCurrent(ctx, party.ID, game)
	if err != nil {
		// Without the previous snapshot a diff would replay bootstrap
		// notifications, so give up on this party and let the next signal
		// recompute it.
		return fmt.Errorf("failed to load current snapshot: %w", err)
	}

	var oldMembers []entities.RankedMember
	if prev != nil {
		oldMembers = prev.Members
	}
	events := services.Diff(oldMembers, ranked)
	for i := range events {
		events[i].PartyID = party.ID
		events[i].PartyName = party.Name
		events[i].Game = game
	}

	if len(events) > 0 {
		results := o.dispatcher.Dispatch(ctx, events)
		sent, skipped, failed := 0, 0, 0
		for _, r := range results {
			switch r.Status {
			case entities.DispatchSent:
				sent++
			case entities.DispatchSkipped:
				skipped++
			case entities.DispatchFailed:
				failed++
			}
		}
		log.WithFields(log.Fields{
			"partyId": party.ID,
			"game":    game,
			"events":  len(events),
			"sent":    sent,
			"skipped": skipped,
			"failed":  failed,
		}).Info("Dispatched rank change notifications")
	}

	snapshot := &entities.RankingSnapshot{
		PartyID:   party.ID,
		Game:      game,
		Members:   ranked,
		CreatedAt: time.Now().UTC(),
	}
	if err := o.snapshotRepo.Replace(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to persist snapshot: %w", err)
	}
	return nil
}

// gatherMemberStats reads every member's stats concurrently. This is the only
// parallel step in an invocation and is fully joined before ranking. A member
// whose stats cannot be obtained is downgraded to an unranked placeholder so
// one bad account never aborts the group.
func (o *PartyUpdateOrchestrator) gatherMemberStats(ctx context.Context, members []*entities.PartyMember, game entities.Game) []entities.MemberStat {
	stats := make([]entities.MemberStat, len(members))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(gatherConcurrency)
	for i, member := range members {
		g.Go(func() error {
			result, err := o.statsCache.GetStats(gctx, member.UserID, game, false)
			if err != nil {
				log.WithFields(log.Fields{
					"userId": member.UserID,
					"game":   game,
					"error":  err,
				}).Warn("Ranking member as unranked, stats unobtainable")
				stats[i] = unrankedPlaceholder(member)
				return nil
			}
			if result.Stale {
				log.WithFields(log.Fields{
					"userId": member.UserID,
					"game":   game,
				}).Debug("Ranking member from stale cached stats")
			}
			stats[i] = entities.MemberStat{
				UserID:      member.UserID,
				DisplayName: member.DisplayName,
				AvatarURL:   member.AvatarURL,
				RankLabel:   result.Stats.RankLabel(),
				Points:      result.Stats.Points,
				Score:       services.ScoreStats(game, result.Stats),
			}
			return nil
		})
	}
	// Workers recover their own failures, the join can only return nil
	_ = g.Wait()

	return stats
}

func unrankedPlaceholder(member *entities.PartyMember) entities.MemberStat {
	return entities.MemberStat{
		UserID:      member.UserID,
		DisplayName: member.DisplayName,
		AvatarURL:   member.AvatarURL,
		RankLabel:   "Unranked",
		Score:       0,
	}
}
