package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"partyboard/domain/entities"
	"partyboard/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type statsCacheFixture struct {
	userRepo  *testhelpers.MockUserRepository
	cacheRepo *testhelpers.MockCachedStatsRepository
	provider  *testhelpers.MockStatsProvider
	service   *statsCacheService
	now       time.Time
}

func newStatsCacheFixture(t *testing.T) *statsCacheFixture {
	t.Helper()
	f := &statsCacheFixture{
		userRepo:  new(testhelpers.MockUserRepository),
		cacheRepo: new(testhelpers.MockCachedStatsRepository),
		provider:  new(testhelpers.MockStatsProvider),
		now:       time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	svc := NewStatsCacheService(f.userRepo, f.cacheRepo, f.provider, map[entities.Game]time.Duration{
		entities.GameLeagueOfLegends: 10 * time.Minute,
		entities.GameValorant:        15 * time.Minute,
	})
	f.service = svc.(*statsCacheService)
	f.service.now = func() time.Time { return f.now }
	return f
}

func (f *statsCacheFixture) assertExpectations(t *testing.T) {
	f.userRepo.AssertExpectations(t)
	f.cacheRepo.AssertExpectations(t)
	f.provider.AssertExpectations(t)
}

func cachedEntry(age time.Duration, at time.Time) *entities.CachedStatEntry {
	return &entities.CachedStatEntry{
		UserID:        "user-1",
		Game:          entities.GameLeagueOfLegends,
		Stats:         entities.RawStats{Tier: "GOLD", Division: "II", Points: 40},
		LastUpdatedAt: at.Add(-age),
	}
}

func TestGetStats_FreshCacheHitSkipsProvider(t *testing.T) {
	f := newStatsCacheFixture(t)
	entry := cachedEntry(5*time.Minute, f.now)
	f.cacheRepo.On("Get", mock.Anything, "user-1", entities.GameLeagueOfLegends).Return(entry, nil)

	result, err := f.service.GetStats(context.Background(), "user-1", entities.GameLeagueOfLegends, false)

	require.NoError(t, err)
	assert.True(t, result.Cached)
	assert.False(t, result.Stale)
	assert.Equal(t, entry.Stats, result.Stats)
	f.provider.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestGetStats_EntryExactlyAtTTLIsStillFresh(t *testing.T) {
	f := newStatsCacheFixture(t)
	entry := cachedEntry(10*time.Minute, f.now)
	f.cacheRepo.On("Get", mock.Anything, "user-1", entities.GameLeagueOfLegends).Return(entry, nil)

	result, err := f.service.GetStats(context.Background(), "user-1", entities.GameLeagueOfLegends, false)

	require.NoError(t, err)
	assert.True(t, result.Cached)
	f.provider.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetStats_ExpiredEntryTriggersRefresh(t *testing.T) {
	f := newStatsCacheFixture(t)
	entry := cachedEntry(10*time.Minute+time.Second, f.now)
	fetched := entities.RawStats{Tier: "PLATINUM", Division: "IV", Points: 12}

	f.cacheRepo.On("Get", mock.Anything, "user-1", entities.GameLeagueOfLegends).Return(entry, nil)
	f.userRepo.On("GetGameAccount", mock.Anything, "user-1", entities.GameLeagueOfLegends).
		Return(&entities.GameAccount{UserID: "user-1", AccountRef: "acct-1"}, nil)
	f.provider.On("Fetch", mock.Anything, "acct-1", entities.GameLeagueOfLegends).Return(fetched, nil)
	f.cacheRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(e *entities.CachedStatEntry) bool {
		return e.UserID == "user-1" && e.Stats == fetched && e.LastUpdatedAt.Equal(f.now)
	})).Return(nil)

	result, err := f.service.GetStats(context.Background(), "user-1", entities.GameLeagueOfLegends, false)

	require.NoError(t, err)
	assert.False(t, result.Cached)
	assert.Equal(t, fetched, result.Stats)
	f.assertExpectations(t)
}

func TestGetStats_ForceRefreshBypassesFreshCache(t *testing.T) {
	f := newStatsCacheFixture(t)
	entry := cachedEntry(time.Minute, f.now)
	fetched := entities.RawStats{Tier: "GOLD", Division: "I", Points: 5}

	f.cacheRepo.On("Get", mock.Anything, "user-1", entities.GameLeagueOfLegends).Return(entry, nil)
	f.userRepo.On("GetGameAccount", mock.Anything, "user-1", entities.GameLeagueOfLegends).
		Return(&entities.GameAccount{UserID: "user-1", AccountRef: "acct-1"}, nil)
	f.provider.On("Fetch", mock.Anything, "acct-1", entities.GameLeagueOfLegends).Return(fetched, nil)
	f.cacheRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	result, err := f.service.GetStats(context.Background(), "user-1", entities.GameLeagueOfLegends, true)

	require.NoError(t, err)
	assert.False(t, result.Cached)
	assert.Equal(t, fetched, result.Stats)
	f.assertExpectations(t)
}

func TestGetStats_NoLinkedAccount(t *testing.T) {
	f := newStatsCacheFixture(t)
	f.cacheRepo.On("Get", mock.Anything, "user-1", entities.GameValorant).Return(nil, nil)
	f.userRepo.On("GetGameAccount", mock.Anything, "user-1", entities.GameValorant).Return(nil, nil)

	_, err := f.service.GetStats(context.Background(), "user-1", entities.GameValorant, false)

	assert.ErrorIs(t, err, entities.ErrNoLinkedAccount)
	f.provider.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetStats_ProviderDownFallsBackToStaleCache(t *testing.T) {
	f := newStatsCacheFixture(t)
	// Well past the TTL, but a stale answer beats no answer
	entry := cachedEntry(3*time.Hour, f.now)

	f.cacheRepo.On("Get", mock.Anything, "user-1", entities.GameLeagueOfLegends).Return(entry, nil)
	f.userRepo.On("GetGameAccount", mock.Anything, "user-1", entities.GameLeagueOfLegends).
		Return(&entities.GameAccount{UserID: "user-1", AccountRef: "acct-1"}, nil)
	f.provider.On("Fetch", mock.Anything, "acct-1", entities.GameLeagueOfLegends).
		Return(entities.RawStats{}, entities.ErrProviderUnavailable)

	result, err := f.service.GetStats(context.Background(), "user-1", entities.GameLeagueOfLegends, false)

	require.NoError(t, err)
	assert.True(t, result.Cached)
	assert.True(t, result.Stale)
	assert.Equal(t, entry.Stats, result.Stats)
	f.cacheRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestGetStats_ProviderDownWithoutCacheSurfacesError(t *testing.T) {
	f := newStatsCacheFixture(t)
	f.cacheRepo.On("Get", mock.Anything, "user-1", entities.GameLeagueOfLegends).Return(nil, nil)
	f.userRepo.On("GetGameAccount", mock.Anything, "user-1", entities.GameLeagueOfLegends).
		Return(&entities.GameAccount{UserID: "user-1", AccountRef: "acct-1"}, nil)
	f.provider.On("Fetch", mock.Anything, "acct-1", entities.GameLeagueOfLegends).
		Return(entities.RawStats{}, entities.ErrProviderUnavailable)

	_, err := f.service.GetStats(context.Background(), "user-1", entities.GameLeagueOfLegends, false)

	assert.ErrorIs(t, err, entities.ErrNoCachedStats)
	assert.ErrorIs(t, err, entities.ErrProviderUnavailable)
}

func TestGetStats_AccountNotFoundNeverServedFromCache(t *testing.T) {
	f := newStatsCacheFixture(t)
	entry := cachedEntry(time.Hour, f.now)

	f.cacheRepo.On("Get", mock.Anything, "user-1", entities.GameLeagueOfLegends).Return(entry, nil)
	f.userRepo.On("GetGameAccount", mock.Anything, "user-1", entities.GameLeagueOfLegends).
		Return(&entities.GameAccount{UserID: "user-1", AccountRef: "acct-1"}, nil)
	f.provider.On("Fetch", mock.Anything, "acct-1", entities.GameLeagueOfLegends).
		Return(entities.RawStats{}, entities.ErrAccountNotFound)

	_, err := f.service.GetStats(context.Background(), "user-1", entities.GameLeagueOfLegends, false)

	assert.ErrorIs(t, err, entities.ErrAccountNotFound)
}

func TestGetStats_CacheWriteFailureDoesNotFailTheRead(t *testing.T) {
	f := newStatsCacheFixture(t)
	fetched := entities.RawStats{Tier: "SILVER", Division: "I", Points: 80}

	f.cacheRepo.On("Get", mock.Anything, "user-1", entities.GameLeagueOfLegends).Return(nil, nil)
	f.userRepo.On("GetGameAccount", mock.Anything, "user-1", entities.GameLeagueOfLegends).
		Return(&entities.GameAccount{UserID: "user-1", AccountRef: "acct-1"}, nil)
	f.provider.On("Fetch", mock.Anything, "acct-1", entities.GameLeagueOfLegends).Return(fetched, nil)
	f.cacheRepo.On("Upsert", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

	result, err := f.service.GetStats(context.Background(), "user-1", entities.GameLeagueOfLegends, false)

	require.NoError(t, err)
	assert.Equal(t, fetched, result.Stats)
}

func TestGetStats_CacheReadFailureSurfacesError(t *testing.T) {
	f := newStatsCacheFixture(t)
	f.cacheRepo.On("Get", mock.Anything, "user-1", entities.GameLeagueOfLegends).
		Return(nil, errors.New("connection refused"))

	_, err := f.service.GetStats(context.Background(), "user-1", entities.GameLeagueOfLegends, false)

	assert.Error(t, err)
	f.userRepo.AssertNotCalled(t, "GetGameAccount", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetStats_PerGameTTL(t *testing.T) {
	f := newStatsCacheFixture(t)
	// 12 minutes is expired for League (10m TTL) but fresh for Valorant (15m)
	entry := &entities.CachedStatEntry{
		UserID:        "user-1",
		Game:          entities.GameValorant,
		Stats:         entities.RawStats{Tier: "DIAMOND", Division: "2", Points: 30},
		LastUpdatedAt: f.now.Add(-12 * time.Minute),
	}
	f.cacheRepo.On("Get", mock.Anything, "user-1", entities.GameValorant).Return(entry, nil)

	result, err := f.service.GetStats(context.Background(), "user-1", entities.GameValorant, false)

	require.NoError(t, err)
	assert.True(t, result.Cached)
	f.provider.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything, mock.Anything)
}
