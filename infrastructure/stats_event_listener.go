package infrastructure

import (
	"context"
	"fmt"
	"time"

	"partyboard/application"
	"partyboard/application/dto"

	"github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"
)

// statsUpdatedMessage is the wire shape of a stats-update trigger signal
type statsUpdatedMessage struct {
	UserID    string    `json:"user_id"`
	Game      string    `json:"game"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StatsEventListener handles stats-update NATS messages and converts them to
// application DTOs
type StatsEventListener struct {
	handler application.StatsUpdateHandler
}

// NewStatsEventListener creates a new stats event listener
func NewStatsEventListener(handler application.StatsUpdateHandler) *StatsEventListener {
	return &StatsEventListener{
		handler: handler,
	}
}

// HandleStatsUpdated processes one stats-update message from NATS. Returning
// an error NAKs the message for redelivery; the handler is idempotent under
// redelivery so that is always safe.
func (l *StatsEventListener) HandleStatsUpdated(ctx context.Context, data []byte) error {
	var msg statsUpdatedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return fmt.Errorf("failed to unmarshal stats update message: %w", err)
	}
	if msg.UserID == "" {
		log.Warn("Dropping stats update message with empty user id")
		return nil
	}

	log.WithFields(log.Fields{
		"userId": msg.UserID,
		"game":   msg.Game,
	}).Debug("Processing stats update signal")

	return l.handler.HandleStatsUpdated(ctx, dto.StatsUpdatedDTO{
		UserID:    msg.UserID,
		Game:      msg.Game,
		UpdatedAt: msg.UpdatedAt,
	})
}
