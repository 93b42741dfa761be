package interfaces

import (
	"context"
	"time"

	"partyboard/domain/entities"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// GetByID retrieves a user by their id; returns nil when not found
	GetByID(ctx context.Context, userID string) (*entities.User, error)

	// GetByIDs retrieves multiple users keyed by id
	GetByIDs(ctx context.Context, userIDs []string) (map[string]*entities.User, error)

	// GetGameAccount returns the user's linked account for a game; nil when none
	GetGameAccount(ctx context.Context, userID string, game entities.Game) (*entities.GameAccount, error)

	// SetPushToken stores or replaces a user's push address
	SetPushToken(ctx context.Context, userID string, token string) error

	// ClearPushToken removes a user's push address after a permanent delivery failure
	ClearPushToken(ctx context.Context, userID string) error
}

// PartyRepository defines the interface for party and membership data access
type PartyRepository interface {
	// GetByID retrieves a party by its id; returns nil when not found
	GetByID(ctx context.Context, partyID string) (*entities.Party, error)

	// GetPartiesByMember returns all parties the user belongs to
	GetPartiesByMember(ctx context.Context, userID string) ([]*entities.Party, error)

	// GetMembers returns a party's members in join order
	GetMembers(ctx context.Context, partyID string) ([]*entities.PartyMember, error)
}

// CachedStatsRepository defines the interface for the per-user-per-game stats cache
type CachedStatsRepository interface {
	// Get returns the cached entry for a user and game; nil when none exists
	Get(ctx context.Context, userID string, game entities.Game) (*entities.CachedStatEntry, error)

	// Upsert creates or overwrites the cached entry for a user and game
	Upsert(ctx context.Context, entry *entities.CachedStatEntry) error
}

// SnapshotRepository defines the interface for persisted party rankings
type SnapshotRepository interface {
	// GetCurrent returns the current snapshot for a party and game; nil when none
	GetCurrent(ctx context.Context, partyID string, game entities.Game) (*entities.RankingSnapshot, error)

	// Replace atomically replaces the current snapshot for a party and game
	Replace(ctx context.Context, snapshot *entities.RankingSnapshot) error
}

// NotificationRepository defines the interface for in-app notification records
type NotificationRepository interface {
	// Create persists a notification record; a repeated dedup key is a no-op
	Create(ctx context.Context, notification *entities.Notification) error

	// GetByRecipient returns the newest notifications for a user
	GetByRecipient(ctx context.Context, userID string, limit int) ([]*entities.Notification, error)

	// MarkRead marks a notification as read
	MarkRead(ctx context.Context, notificationID string) error

	// DeleteOlderThan prunes records created before the cutoff
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
