package interfaces

import (
	"context"

	"partyboard/domain/entities"
)

// StatsProvider defines the interface to the third-party stats API.
// The provider is rate limited; callers go through the stats cache so it is
// hit at most once per TTL window per user unless a refresh is forced.
type StatsProvider interface {
	// Fetch retrieves current stats for a linked account
	Fetch(ctx context.Context, accountRef string, game entities.Game) (entities.RawStats, error)
}

// PushSender defines the interface to the push delivery collaborator
type PushSender interface {
	// SendBatch delivers a batch of messages and returns one result per
	// message, in order. The result classifies permanent address failures.
	SendBatch(ctx context.Context, messages []entities.PushMessage) ([]entities.PushResult, error)

	// MaxBatchSize returns the largest batch the provider accepts
	MaxBatchSize() int
}

// StatsCacheService defines the get-or-refresh stats operation exposed to
// the rest of the system.
type StatsCacheService interface {
	// GetStats returns the user's stats for a game, serving fresh cache when
	// possible and falling back to stale cache when the provider is down.
	GetStats(ctx context.Context, userID string, game entities.Game, forceRefresh bool) (entities.StatsResult, error)
}

// NotificationDispatcher defines the interface for delivering rank-change events
type NotificationDispatcher interface {
	// Dispatch sends push messages and persists in-app records for the
	// events, returning one result per event. It never returns an error:
	// every failure is downgraded to a per-event failed result.
	Dispatch(ctx context.Context, events []entities.NotificationEvent) []entities.DispatchResult
}
