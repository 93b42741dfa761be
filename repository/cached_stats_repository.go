package repository

import (
	"context"
	"errors"
	"fmt"

	"partyboard/database"
	"partyboard/domain/entities"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
)

// CachedStatsRepository implements the CachedStatsRepository interface
type CachedStatsRepository struct {
	q Queryable
}

// NewCachedStatsRepository creates a new cached stats repository
func NewCachedStatsRepository(db *database.DB) *CachedStatsRepository {
	return &CachedStatsRepository{q: db.Pool}
}

// NewCachedStatsRepositoryWithTx creates a new cached stats repository bound to a transaction
func NewCachedStatsRepositoryWithTx(tx Queryable) *CachedStatsRepository {
	return &CachedStatsRepository{q: tx}
}

// Get returns the cached entry for a user and game
func (r *CachedStatsRepository) Get(ctx context.Context, userID string, game entities.Game) (*entities.CachedStatEntry, error) {
	query := `
		SELECT user_id, game, stats, last_updated_at
		FROM cached_stats
		WHERE user_id = $1 AND game = $2`

	var entry entities.CachedStatEntry
	var rawStats []byte
	err := r.q.QueryRow(ctx, query, userID, game).Scan(
		&entry.UserID, &entry.Game, &rawStats, &entry.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached stats for user %s game %s: %w", userID, game, err)
	}

	if err := json.Unmarshal(rawStats, &entry.Stats); err != nil {
		return nil, fmt.Errorf("failed to decode cached stats for user %s game %s: %w", userID, game, err)
	}
	return &entry, nil
}

// Upsert creates or overwrites the cached entry for a user and game.
// last_updated_at never moves backwards: a concurrent writer with an older
// fetch loses to the row already in place.
func (r *CachedStatsRepository) Upsert(ctx context.Context, entry *entities.CachedStatEntry) error {
	rawStats, err := json.Marshal(entry.Stats)
	if err != nil {
		return fmt.Errorf("failed to encode stats: %w", err)
	}

	query := `
		INSERT INTO cached_stats (user_id, game, stats, last_updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, game)
		DO UPDATE SET stats = EXCLUDED.stats, last_updated_at = EXCLUDED.last_updated_at
		WHERE cached_stats.last_updated_at <= EXCLUDED.last_updated_at`

	if _, err := r.q.Exec(ctx, query, entry.UserID, entry.Game, rawStats, entry.LastUpdatedAt); err != nil {
		return fmt.Errorf("failed to upsert cached stats for user %s game %s: %w", entry.UserID, entry.Game, err)
	}
	return nil
}
