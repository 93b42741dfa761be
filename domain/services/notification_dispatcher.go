package services

import (
	"context"
	"strconv"
	"time"

	"partyboard/domain/entities"
	"partyboard/domain/interfaces"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type notificationDispatcher struct {
	userRepo         interfaces.UserRepository
	notificationRepo interfaces.NotificationRepository
	sender           interfaces.PushSender
}

// NewNotificationDispatcher creates the dispatcher that turns rank-change
// events into push messages and in-app notification records.
func NewNotificationDispatcher(
	userRepo interfaces.UserRepository,
	notificationRepo interfaces.NotificationRepository,
	sender interfaces.PushSender,
) interfaces.NotificationDispatcher {
	return &notificationDispatcher{
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		sender:           sender,
	}
}

// queued ties a push message back to the event it was built from
type queued struct {
	eventIndex int
	message    entities.PushMessage
}

// Dispatch is best effort and non-throwing: every failure is downgraded to a
// per-event result. In-app records are persisted for every event regardless
// of delivery outcome; de-duplication happened upstream in the diff pass.
func (d *notificationDispatcher) Dispatch(ctx context.Context, events []entities.NotificationEvent) []entities.DispatchResult {
	results := make([]entities.DispatchResult, len(events))
	for i, e := range events {
		results[i] = entities.DispatchResult{Event: e, Status: entities.DispatchSkipped}
	}
	if len(events) == 0 {
		return results
	}

	d.persistRecords(ctx, events)

	recipientIDs := make([]string, 0, len(events))
	for _, e := range events {
		recipientIDs = append(recipientIDs, e.RecipientID)
	}
	users, err := d.userRepo.GetByIDs(ctx, recipientIDs)
	if err != nil {
		log.WithError(err).Error("Failed to resolve notification recipients")
		for i := range results {
			results[i].Status = entities.DispatchFailed
			results[i].Reason = "recipient lookup failed"
		}
		return results
	}

	var queue []queued
	for i, e := range events {
		user, ok := users[e.RecipientID]
		if !ok || !user.HasPushToken() {
			// No push address on file: silently skipped, the in-app record
			// is already written.
			results[i].Reason = "no push token"
			continue
		}
		queue = append(queue, queued{
			eventIndex: i,
			message: entities.PushMessage{
				Address: *user.PushToken,
				Title:   e.Title(),
				Body:    e.Body(),
				Payload: map[string]string{
					"party_id":  e.PartyID,
					"game":      string(e.Game),
					"direction": string(e.Direction),
					"new_rank":  strconv.Itoa(e.NewRank),
				},
			},
		})
	}

	d.sendBatches(ctx, queue, results)
	return results
}

// sendBatches delivers the queue in provider-sized chunks. An address that
// comes back permanently dead is cleared from the recipient's record and
// never retried by later chunks in the same pass.
func (d *notificationDispatcher) sendBatches(ctx context.Context, queue []queued, results []entities.DispatchResult) {
	batchSize := d.sender.MaxBatchSize()
	if batchSize <= 0 {
		batchSize = 100
	}
	deadAddresses := make(map[string]bool)

	for start := 0; start < len(queue); start += batchSize {
		end := start + batchSize
		if end > len(queue) {
			end = len(queue)
		}

		batch := make([]queued, 0, end-start)
		for _, q := range queue[start:end] {
			if deadAddresses[q.message.Address] {
				results[q.eventIndex].Status = entities.DispatchSkipped
				results[q.eventIndex].Reason = "push address retired"
				continue
			}
			batch = append(batch, q)
		}
		if len(batch) == 0 {
			continue
		}

		messages := make([]entities.PushMessage, len(batch))
		for i, q := range batch {
			messages[i] = q.message
		}

		pushResults, err := d.sender.SendBatch(ctx, messages)
		if err != nil {
			log.WithFields(log.Fields{
				"batchSize": len(batch),
				"error":     err,
			}).Error("Push batch delivery failed")
			for _, q := range batch {
				results[q.eventIndex].Status = entities.DispatchFailed
				results[q.eventIndex].Reason = "push delivery failed"
			}
			continue
		}

		for i, pr := range pushResults {
			if i >= len(batch) {
				break
			}
			q := batch[i]
			if pr.Delivered {
				results[q.eventIndex].Status = entities.DispatchSent
				continue
			}
			results[q.eventIndex].Status = entities.DispatchFailed
			results[q.eventIndex].Reason = pr.Error
			if pr.PermanentFailure {
				deadAddresses[q.message.Address] = true
				d.retireAddress(ctx, results[q.eventIndex].Event.RecipientID, q.message.Address)
			}
		}
	}
}

// retireAddress clears a permanently dead push address so future dispatch
// passes stop resolving it. Self-healing, never surfaced to the party.
func (d *notificationDispatcher) retireAddress(ctx context.Context, userID, address string) {
	if err := d.userRepo.ClearPushToken(ctx, userID); err != nil {
		log.WithFields(log.Fields{
			"userId": userID,
			"error":  err,
		}).Error("Failed to clear dead push token")
		return
	}
	log.WithFields(log.Fields{
		"userId":  userID,
		"address": truncateAddress(address),
	}).Info("Cleared dead push token")
}

// persistRecords writes one in-app notification per event. Creation is
// idempotent on the event's dedup key, so redelivered signals do not stack
// duplicate records. The key carries a day stamp so the same overtake
// recurring weeks later still produces a fresh record.
func (d *notificationDispatcher) persistRecords(ctx context.Context, events []entities.NotificationEvent) {
	now := time.Now().UTC()
	for _, e := range events {
		record := &entities.Notification{
			ID:          uuid.NewString(),
			RecipientID: e.RecipientID,
			SubjectID:   e.SubjectID,
			SubjectName: e.SubjectName,
			PartyID:     e.PartyID,
			Game:        e.Game,
			Direction:   e.Direction,
			NewRank:     e.NewRank,
			OldRank:     e.OldRank,
			DedupKey:    e.PartyID + "|" + string(e.Game) + "|" + e.DedupKey() + "|" + now.Format("2006-01-02"),
			CreatedAt:   now,
		}
		if err := d.notificationRepo.Create(ctx, record); err != nil {
			log.WithFields(log.Fields{
				"recipient": e.RecipientID,
				"direction": e.Direction,
				"error":     err,
			}).Error("Failed to persist notification record")
		}
	}
}

func truncateAddress(address string) string {
	if len(address) <= 12 {
		return address
	}
	return address[:12] + "..."
}
