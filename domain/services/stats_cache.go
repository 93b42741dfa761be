package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"partyboard/domain/entities"
	"partyboard/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// defaultStatsTTL applies to games without a configured TTL
const defaultStatsTTL = 10 * time.Minute

type statsCacheService struct {
	userRepo  interfaces.UserRepository
	cacheRepo interfaces.CachedStatsRepository
	provider  interfaces.StatsProvider
	ttls      map[entities.Game]time.Duration
	now       func() time.Time
}

// NewStatsCacheService creates the get-or-refresh stats service. ttls holds
// the per-game freshness window; games missing from the map use the default.
func NewStatsCacheService(
	userRepo interfaces.UserRepository,
	cacheRepo interfaces.CachedStatsRepository,
	provider interfaces.StatsProvider,
	ttls map[entities.Game]time.Duration,
) interfaces.StatsCacheService {
	return &statsCacheService{
		userRepo:  userRepo,
		cacheRepo: cacheRepo,
		provider:  provider,
		ttls:      ttls,
		now:       time.Now,
	}
}

// GetStats serves the cached entry when it is fresh and no refresh is forced,
// otherwise fetches from the provider. A provider failure downgrades to the
// cached entry, whatever its age, rather than failing; only the no-cache,
// provider-down case surfaces an error. Cached data is never fabricated.
func (s *statsCacheService) GetStats(ctx context.Context, userID string, game entities.Game, forceRefresh bool) (entities.StatsResult, error) {
	entry, err := s.cacheRepo.Get(ctx, userID, game)
	if err != nil {
		return entities.StatsResult{}, fmt.Errorf("failed to read cached stats: %w", err)
	}

	if entry != nil && !forceRefresh && entry.IsFresh(s.now(), s.ttlFor(game)) {
		return entities.StatsResult{Stats: entry.Stats, Cached: true}, nil
	}

	account, err := s.userRepo.GetGameAccount(ctx, userID, game)
	if err != nil {
		return entities.StatsResult{}, fmt.Errorf("failed to look up game account: %w", err)
	}
	if account == nil {
		return entities.StatsResult{}, fmt.Errorf("user %s: %w", userID, entities.ErrNoLinkedAccount)
	}

	stats, err := s.provider.Fetch(ctx, account.AccountRef, game)
	if err != nil {
		if errors.Is(err, entities.ErrAccountNotFound) {
			// Precondition failure, not recovered from cache and not retried
			return entities.StatsResult{}, err
		}
		if entry != nil {
			// Availability beats strict freshness against a rate-limited
			// upstream: serve whatever we have and flag it stale.
			log.WithFields(log.Fields{
				"userId": userID,
				"game":   game,
				"age":    s.now().Sub(entry.LastUpdatedAt).String(),
				"error":  err,
			}).Warn("Stats provider unavailable, serving cached stats")
			return entities.StatsResult{Stats: entry.Stats, Cached: true, Stale: true}, nil
		}
		return entities.StatsResult{}, fmt.Errorf("user %s: %w: %w", userID, entities.ErrNoCachedStats, err)
	}

	fetched := &entities.CachedStatEntry{
		UserID:        userID,
		Game:          game,
		Stats:         stats,
		LastUpdatedAt: s.now(),
	}
	if err := s.cacheRepo.Upsert(ctx, fetched); err != nil {
		// The fetch succeeded; a cache write failure costs freshness on the
		// next read, not correctness on this one.
		log.WithFields(log.Fields{
			"userId": userID,
			"game":   game,
			"error":  err,
		}).Error("Failed to persist fetched stats")
	}

	return entities.StatsResult{Stats: stats}, nil
}

func (s *statsCacheService) ttlFor(game entities.Game) time.Duration {
	if ttl, ok := s.ttls[game]; ok && ttl > 0 {
		return ttl
	}
	return defaultStatsTTL
}
