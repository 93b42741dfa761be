package repository

import (
	"context"
	"errors"
	"fmt"

	"partyboard/database"
	"partyboard/domain/entities"

	"github.com/jackc/pgx/v5"
)

// PartyRepository implements the PartyRepository interface
type PartyRepository struct {
	q Queryable
}

// NewPartyRepository creates a new party repository
func NewPartyRepository(db *database.DB) *PartyRepository {
	return &PartyRepository{q: db.Pool}
}

// NewPartyRepositoryWithTx creates a new party repository bound to a transaction
func NewPartyRepositoryWithTx(tx Queryable) *PartyRepository {
	return &PartyRepository{q: tx}
}

// GetByID retrieves a party by its id
func (r *PartyRepository) GetByID(ctx context.Context, partyID string) (*entities.Party, error) {
	query := `
		SELECT id, name, owner_id, created_at
		FROM parties
		WHERE id = $1`

	var party entities.Party
	err := r.q.QueryRow(ctx, query, partyID).Scan(
		&party.ID, &party.Name, &party.OwnerID, &party.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get party %s: %w", partyID, err)
	}
	return &party, nil
}

// GetPartiesByMember returns all parties the user belongs to
func (r *PartyRepository) GetPartiesByMember(ctx context.Context, userID string) ([]*entities.Party, error) {
	query := `
		SELECT p.id, p.name, p.owner_id, p.created_at
		FROM parties p
		JOIN party_members pm ON pm.party_id = p.id
		WHERE pm.user_id = $1
		ORDER BY pm.joined_at`

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get parties for user %s: %w", userID, err)
	}
	defer rows.Close()

	var parties []*entities.Party
	for rows.Next() {
		var party entities.Party
		if err := rows.Scan(&party.ID, &party.Name, &party.OwnerID, &party.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan party: %w", err)
		}
		parties = append(parties, &party)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over party rows: %w", err)
	}
	return parties, nil
}

// GetMembers returns a party's members in join order
func (r *PartyRepository) GetMembers(ctx context.Context, partyID string) ([]*entities.PartyMember, error) {
	query := `
		SELECT pm.party_id, pm.user_id, u.display_name, u.avatar_url, pm.joined_at
		FROM party_members pm
		JOIN users u ON u.id = pm.user_id
		WHERE pm.party_id = $1
		ORDER BY pm.joined_at`

	rows, err := r.q.Query(ctx, query, partyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get members of party %s: %w", partyID, err)
	}
	defer rows.Close()

	var members []*entities.PartyMember
	for rows.Next() {
		var member entities.PartyMember
		err := rows.Scan(
			&member.PartyID, &member.UserID, &member.DisplayName,
			&member.AvatarURL, &member.JoinedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan party member: %w", err)
		}
		members = append(members, &member)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over member rows: %w", err)
	}
	return members, nil
}
