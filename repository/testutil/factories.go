package testutil

import (
	"context"
	"testing"
	"time"

	"partyboard/database"
	"partyboard/domain/entities"

	"github.com/stretchr/testify/require"
)

// CreateTestUser creates a test user with default values
func CreateTestUser(id, displayName string) *entities.User {
	now := time.Now()
	return &entities.User{
		ID:          id,
		DisplayName: displayName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// CreateTestUserWithPushToken creates a test user with a push address on file
func CreateTestUserWithPushToken(id, displayName, token string) *entities.User {
	user := CreateTestUser(id, displayName)
	user.PushToken = &token
	return user
}

// CreateTestStats creates a raw stats payload with the given rank
func CreateTestStats(tier, division string, points int) entities.RawStats {
	return entities.RawStats{
		Tier:     tier,
		Division: division,
		Points:   points,
		Wins:     10,
		Losses:   5,
	}
}

// InsertTestUser persists a user row for integration tests
func InsertTestUser(t *testing.T, db *database.DB, user *entities.User) {
	t.Helper()
	_, err := db.Pool.Exec(context.Background(),
		`INSERT INTO users (id, display_name, avatar_url, push_token, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.DisplayName, user.AvatarURL, user.PushToken, user.CreatedAt, user.UpdatedAt,
	)
	require.NoError(t, err)
}

// InsertTestGameAccount links a user to a provider account for integration tests
func InsertTestGameAccount(t *testing.T, db *database.DB, userID string, game entities.Game, accountRef string) {
	t.Helper()
	_, err := db.Pool.Exec(context.Background(),
		`INSERT INTO game_accounts (user_id, game, account_ref) VALUES ($1, $2, $3)`,
		userID, game, accountRef,
	)
	require.NoError(t, err)
}

// InsertTestParty persists a party row for integration tests
func InsertTestParty(t *testing.T, db *database.DB, partyID, name, ownerID string) {
	t.Helper()
	_, err := db.Pool.Exec(context.Background(),
		`INSERT INTO parties (id, name, owner_id) VALUES ($1, $2, $3)`,
		partyID, name, ownerID,
	)
	require.NoError(t, err)
}

// InsertTestPartyMember persists a party membership row for integration tests
func InsertTestPartyMember(t *testing.T, db *database.DB, partyID, userID string) {
	t.Helper()
	_, err := db.Pool.Exec(context.Background(),
		`INSERT INTO party_members (party_id, user_id) VALUES ($1, $2)`,
		partyID, userID,
	)
	require.NoError(t, err)
}
