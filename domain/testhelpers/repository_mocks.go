package testhelpers

import (
	"context"
	"time"

	"partyboard/domain/entities"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, userID string) (*entities.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByIDs(ctx context.Context, userIDs []string) (map[string]*entities.User, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetGameAccount(ctx context.Context, userID string, game entities.Game) (*entities.GameAccount, error) {
	args := m.Called(ctx, userID, game)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.GameAccount), args.Error(1)
}

func (m *MockUserRepository) SetPushToken(ctx context.Context, userID string, token string) error {
	args := m.Called(ctx, userID, token)
	return args.Error(0)
}

func (m *MockUserRepository) ClearPushToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockPartyRepository is a mock implementation of PartyRepository
type MockPartyRepository struct {
	mock.Mock
}

func (m *MockPartyRepository) GetByID(ctx context.Context, partyID string) (*entities.Party, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Party), args.Error(1)
}

func (m *MockPartyRepository) GetPartiesByMember(ctx context.Context, userID string) ([]*entities.Party, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Party), args.Error(1)
}

func (m *MockPartyRepository) GetMembers(ctx context.Context, partyID string) ([]*entities.PartyMember, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.PartyMember), args.Error(1)
}

// MockCachedStatsRepository is a mock implementation of CachedStatsRepository
type MockCachedStatsRepository struct {
	mock.Mock
}

func (m *MockCachedStatsRepository) Get(ctx context.Context, userID string, game entities.Game) (*entities.CachedStatEntry, error) {
	args := m.Called(ctx, userID, game)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.CachedStatEntry), args.Error(1)
}

func (m *MockCachedStatsRepository) Upsert(ctx context.Context, entry *entities.CachedStatEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// MockSnapshotRepository is a mock implementation of SnapshotRepository
type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) GetCurrent(ctx context.Context, partyID string, game entities.Game) (*entities.RankingSnapshot, error) {
	args := m.Called(ctx, partyID, game)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.RankingSnapshot), args.Error(1)
}

func (m *MockSnapshotRepository) Replace(ctx context.Context, snapshot *entities.RankingSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

// MockNotificationRepository is a mock implementation of NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *entities.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) GetByRecipient(ctx context.Context, userID string, limit int) ([]*entities.Notification, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, notificationID string) error {
	args := m.Called(ctx, notificationID)
	return args.Error(0)
}

func (m *MockNotificationRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockStatsProvider is a mock implementation of StatsProvider
type MockStatsProvider struct {
	mock.Mock
}

func (m *MockStatsProvider) Fetch(ctx context.Context, accountRef string, game entities.Game) (entities.RawStats, error) {
	args := m.Called(ctx, accountRef, game)
	return args.Get(0).(entities.RawStats), args.Error(1)
}

// MockPushSender is a mock implementation of PushSender
type MockPushSender struct {
	mock.Mock
}

func (m *MockPushSender) SendBatch(ctx context.Context, messages []entities.PushMessage) ([]entities.PushResult, error) {
	args := m.Called(ctx, messages)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.PushResult), args.Error(1)
}

func (m *MockPushSender) MaxBatchSize() int {
	args := m.Called()
	return args.Int(0)
}

// MockStatsCacheService is a mock implementation of StatsCacheService
type MockStatsCacheService struct {
	mock.Mock
}

func (m *MockStatsCacheService) GetStats(ctx context.Context, userID string, game entities.Game, forceRefresh bool) (entities.StatsResult, error) {
	args := m.Called(ctx, userID, game, forceRefresh)
	return args.Get(0).(entities.StatsResult), args.Error(1)
}

// MockNotificationDispatcher is a mock implementation of NotificationDispatcher
type MockNotificationDispatcher struct {
	mock.Mock
}

func (m *MockNotificationDispatcher) Dispatch(ctx context.Context, events []entities.NotificationEvent) []entities.DispatchResult {
	args := m.Called(ctx, events)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]entities.DispatchResult)
}
