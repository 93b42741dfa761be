package repository

import (
	"context"
	"fmt"
	"time"

	"partyboard/database"
	"partyboard/domain/entities"
)

// NotificationRepository implements the NotificationRepository interface
type NotificationRepository struct {
	q Queryable
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *database.DB) *NotificationRepository {
	return &NotificationRepository{q: db.Pool}
}

// NewNotificationRepositoryWithTx creates a new notification repository bound to a transaction
func NewNotificationRepositoryWithTx(tx Queryable) *NotificationRepository {
	return &NotificationRepository{q: tx}
}

// Create persists a notification record. Creation is idempotent on the dedup
// key: a redelivered signal re-creating the same record is a silent no-op.
func (r *NotificationRepository) Create(ctx context.Context, notification *entities.Notification) error {
	query := `
		INSERT INTO notifications (
			id, recipient_id, subject_id, subject_name, party_id, game,
			direction, new_rank, old_rank, dedup_key, read, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, FALSE, $11)
		ON CONFLICT (dedup_key) DO NOTHING`

	_, err := r.q.Exec(ctx, query,
		notification.ID, notification.RecipientID, notification.SubjectID,
		notification.SubjectName, notification.PartyID, notification.Game,
		notification.Direction, notification.NewRank, notification.OldRank,
		notification.DedupKey, notification.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create notification for user %s: %w", notification.RecipientID, err)
	}
	return nil
}

// GetByRecipient returns the newest notifications for a user
func (r *NotificationRepository) GetByRecipient(ctx context.Context, userID string, limit int) ([]*entities.Notification, error) {
	query := `
		SELECT id, recipient_id, subject_id, subject_name, party_id, game,
			direction, new_rank, old_rank, dedup_key, read, created_at
		FROM notifications
		WHERE recipient_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications for user %s: %w", userID, err)
	}
	defer rows.Close()

	var notifications []*entities.Notification
	for rows.Next() {
		var n entities.Notification
		err := rows.Scan(
			&n.ID, &n.RecipientID, &n.SubjectID, &n.SubjectName, &n.PartyID,
			&n.Game, &n.Direction, &n.NewRank, &n.OldRank, &n.DedupKey,
			&n.Read, &n.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, &n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over notification rows: %w", err)
	}
	return notifications, nil
}

// MarkRead marks a notification as read
func (r *NotificationRepository) MarkRead(ctx context.Context, notificationID string) error {
	query := `UPDATE notifications SET read = TRUE WHERE id = $1`

	result, err := r.q.Exec(ctx, query, notificationID)
	if err != nil {
		return fmt.Errorf("failed to mark notification %s read: %w", notificationID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("no notification found with id %s", notificationID)
	}
	return nil
}

// DeleteOlderThan prunes records created before the cutoff
func (r *NotificationRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM notifications WHERE created_at < $1`

	result, err := r.q.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune notifications: %w", err)
	}
	return result.RowsAffected(), nil
}
