package entities

import (
	"fmt"
	"time"
)

// NotificationDirection classifies why a member is being notified
type NotificationDirection string

const (
	// DirectionNewEntry fires when a member first appears in the top 3
	DirectionNewEntry NotificationDirection = "new_entry"
	// DirectionMovedUp fires for the member whose position improved
	DirectionMovedUp NotificationDirection = "moved_up"
	// DirectionOvertaken fires for a member whose position was crossed
	DirectionOvertaken NotificationDirection = "overtaken"
)

// NotificationEvent is one notification-worthy rank change discovered by a
// diff pass. It lives only for the duration of that pass and its dispatch.
type NotificationEvent struct {
	RecipientID string
	SubjectID   string
	SubjectName string
	PartyID     string
	PartyName   string
	Game        Game
	Direction   NotificationDirection
	NewRank     int
	OldRank     int // 0 when the member had no prior position
}

// DedupKey is the composite key used to collapse the same rank change when
// it is discovered from both sides of an overtake.
func (e NotificationEvent) DedupKey() string {
	return fmt.Sprintf("%s|%s|%d", e.RecipientID, e.SubjectID, e.NewRank)
}

// Title returns the push title for the event's direction
func (e NotificationEvent) Title() string {
	switch e.Direction {
	case DirectionNewEntry:
		return fmt.Sprintf("%s leaderboard", e.Game.DisplayName())
	case DirectionMovedUp:
		return "You climbed the leaderboard!"
	case DirectionOvertaken:
		return "You got overtaken!"
	default:
		return "Leaderboard update"
	}
}

// Body returns the push body for the event's direction
func (e NotificationEvent) Body() string {
	switch e.Direction {
	case DirectionNewEntry:
		return fmt.Sprintf("%s entered the top 3 at #%d", e.SubjectName, e.NewRank)
	case DirectionMovedUp:
		return fmt.Sprintf("You moved up to #%d in %s", e.NewRank, e.PartyName)
	case DirectionOvertaken:
		return fmt.Sprintf("%s passed you, you are now #%d", e.SubjectName, e.NewRank)
	default:
		return fmt.Sprintf("You are now #%d", e.NewRank)
	}
}

// Notification is the persisted in-app record of a dispatched event
type Notification struct {
	ID          string                `db:"id"`
	RecipientID string                `db:"recipient_id"`
	SubjectID   string                `db:"subject_id"`
	SubjectName string                `db:"subject_name"`
	PartyID     string                `db:"party_id"`
	Game        Game                  `db:"game"`
	Direction   NotificationDirection `db:"direction"`
	NewRank     int                   `db:"new_rank"`
	OldRank     int                   `db:"old_rank"`
	DedupKey    string                `db:"dedup_key"`
	Read        bool                  `db:"read"`
	CreatedAt   time.Time             `db:"created_at"`
}

// DispatchStatus is the per-event outcome of a dispatch pass
type DispatchStatus string

const (
	DispatchSent    DispatchStatus = "sent"
	DispatchSkipped DispatchStatus = "skipped"
	DispatchFailed  DispatchStatus = "failed"
)

// DispatchResult pairs an event with its delivery outcome so callers and
// tests can assert on what actually happened.
type DispatchResult struct {
	Event  NotificationEvent
	Status DispatchStatus
	Reason string
}

// PushMessage is one message handed to the push delivery collaborator
type PushMessage struct {
	Address string            `json:"address"`
	Title   string            `json:"title"`
	Body    string            `json:"body"`
	Payload map[string]string `json:"payload,omitempty"`
}

// PushResult is the delivery outcome for one PushMessage
type PushResult struct {
	Address          string
	Delivered        bool
	PermanentFailure bool
	Error            string
}
