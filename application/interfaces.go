package application

import (
	"context"

	"partyboard/application/dto"
)

// StatsUpdateHandler defines the interface for handling stats-update signals.
// It is implemented by the application layer and called by the infrastructure
// layer when a trigger message arrives.
type StatsUpdateHandler interface {
	// HandleStatsUpdated recomputes the leaderboards of every party the
	// user belongs to. Safe under at-least-once redelivery: recomputing
	// against the stored snapshot and re-diffing is always idempotent.
	HandleStatsUpdated(ctx context.Context, update dto.StatsUpdatedDTO) error
}
