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

// SnapshotRepository implements the SnapshotRepository interface
type SnapshotRepository struct {
	q Queryable
}

// NewSnapshotRepository creates a new ranking snapshot repository
func NewSnapshotRepository(db *database.DB) *SnapshotRepository {
	return &SnapshotRepository{q: db.Pool}
}

// NewSnapshotRepositoryWithTx creates a new ranking snapshot repository bound to a transaction
func NewSnapshotRepositoryWithTx(tx Queryable) *SnapshotRepository {
	return &SnapshotRepository{q: tx}
}

// GetCurrent returns the current snapshot for a party and game
func (r *SnapshotRepository) GetCurrent(ctx context.Context, partyID string, game entities.Game) (*entities.RankingSnapshot, error) {
	query := `
		SELECT party_id, game, members, created_at
		FROM ranking_snapshots
		WHERE party_id = $1 AND game = $2`

	var snapshot entities.RankingSnapshot
	var rawMembers []byte
	err := r.q.QueryRow(ctx, query, partyID, game).Scan(
		&snapshot.PartyID, &snapshot.Game, &rawMembers, &snapshot.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get snapshot for party %s game %s: %w", partyID, game, err)
	}

	if err := json.Unmarshal(rawMembers, &snapshot.Members); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot for party %s game %s: %w", partyID, game, err)
	}
	return &snapshot, nil
}

// Replace atomically replaces the current snapshot for a party and game.
// The snapshot is a recomputable cache of derived state, so last-write-wins
// between concurrent recomputations is acceptable.
func (r *SnapshotRepository) Replace(ctx context.Context, snapshot *entities.RankingSnapshot) error {
	rawMembers, err := json.Marshal(snapshot.Members)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot members: %w", err)
	}

	query := `
		INSERT INTO ranking_snapshots (party_id, game, members, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (party_id, game)
		DO UPDATE SET members = EXCLUDED.members, created_at = EXCLUDED.created_at`

	if _, err := r.q.Exec(ctx, query, snapshot.PartyID, snapshot.Game, rawMembers, snapshot.CreatedAt); err != nil {
		return fmt.Errorf("failed to replace snapshot for party %s game %s: %w", snapshot.PartyID, snapshot.Game, err)
	}
	return nil
}
