package repository

import (
	"context"
	"testing"

	"partyboard/domain/entities"
	"partyboard/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	testutil.InsertTestUser(t, testDB.DB, testutil.CreateTestUserWithPushToken("alice", "Alice", "token-alice"))
	testutil.InsertTestUser(t, testDB.DB, testutil.CreateTestUser("bob", "Bob"))
	testutil.InsertTestGameAccount(t, testDB.DB, "alice", entities.GameLeagueOfLegends, "alice#EUW")

	t.Run("get by id", func(t *testing.T) {
		user, err := repo.GetByID(ctx, "alice")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "Alice", user.DisplayName)
		assert.True(t, user.HasPushToken())
	})

	t.Run("get by id returns nil for unknown user", func(t *testing.T) {
		user, err := repo.GetByID(ctx, "nobody")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("get by ids returns only known users", func(t *testing.T) {
		users, err := repo.GetByIDs(ctx, []string{"alice", "bob", "nobody"})
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Contains(t, users, "alice")
		assert.Contains(t, users, "bob")
		assert.False(t, users["bob"].HasPushToken())
	})

	t.Run("get by ids with empty input", func(t *testing.T) {
		users, err := repo.GetByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("get game account", func(t *testing.T) {
		account, err := repo.GetGameAccount(ctx, "alice", entities.GameLeagueOfLegends)
		require.NoError(t, err)
		require.NotNil(t, account)
		assert.Equal(t, "alice#EUW", account.AccountRef)
	})

	t.Run("get game account returns nil when not linked", func(t *testing.T) {
		account, err := repo.GetGameAccount(ctx, "bob", entities.GameValorant)
		require.NoError(t, err)
		assert.Nil(t, account)
	})

	t.Run("set and clear push token", func(t *testing.T) {
		err := repo.SetPushToken(ctx, "bob", "token-bob")
		require.NoError(t, err)

		user, err := repo.GetByID(ctx, "bob")
		require.NoError(t, err)
		assert.True(t, user.HasPushToken())

		err = repo.ClearPushToken(ctx, "bob")
		require.NoError(t, err)

		user, err = repo.GetByID(ctx, "bob")
		require.NoError(t, err)
		assert.False(t, user.HasPushToken())
	})

	t.Run("clear push token twice is a no-op", func(t *testing.T) {
		require.NoError(t, repo.ClearPushToken(ctx, "bob"))
		require.NoError(t, repo.ClearPushToken(ctx, "bob"))
	})

	t.Run("set push token on unknown user fails", func(t *testing.T) {
		err := repo.SetPushToken(ctx, "nobody", "token")
		assert.Error(t, err)
	})
}
