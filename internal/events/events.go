// Package events describes the feed events the services publish to the message broker.
package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
)

// Event types.
const (
	TypeUserRegistered = "user.registered"
	TypePostCreated    = "post.created"
	TypePostDeleted    = "post.deleted"
	TypePostLiked      = "post.liked"
	TypePostUnliked    = "post.unliked"
	TypeCommentCreated = "comment.created"
)

// Event is the JSON envelope of every feed event.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	UserID     uint      `json:"userId"`
	PostID     uint      `json:"postId,omitempty"`
	CommentID  uint      `json:"commentId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// New builds an event of the given type with a fresh ID.
func New(eventType string, userID uint) Event {
	return Event{
		ID:         uuid.New().String(),
		Type:       eventType,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher sends an encoded event. *rabbitmq.Client implements it.
type Publisher interface {
	Publish(routingKey string, body []byte) error
}

// Emit publishes ev through p. A nil publisher disables events. Failures are only logged.
func Emit(p Publisher, logger *slog.Logger, ev Event) {
	if p == nil {
		return
	}
	if logger == nil {
		logger = slog.Default()
	}
	body, err := json.Marshal(ev)
	if err != nil {
		logger.Error("failed to marshal event", "type", ev.Type, "error", err)
		return
	}
	if err := p.Publish(ev.Type, body); err != nil {
		logger.Warn("failed to publish event", "type", ev.Type, "event_id", ev.ID, "error", err)
		return
	}
	logger.Debug("event published", "type", ev.Type, "event_id", ev.ID)
}

// Decode parses an event body.
func Decode(body []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return Event{}, fmt.Errorf("failed to decode event: %w", err)
	}
	if ev.Type == "" {
		return Event{}, fmt.Errorf("failed to decode event: missing type")
	}
	return ev, nil
}

// LogHandler returns a delivery handler that records each event in the log.
func LogHandler(logger *slog.Logger) func(msg amqp.Delivery) error {
	return func(msg amqp.Delivery) error {
		ev, err := Decode(msg.Body)
		if err != nil {
			return err
		}
		logger.Info("feed event received",
			"type", ev.Type,
			"event_id", ev.ID,
			"user_id", ev.UserID,
			"post_id", ev.PostID,
			"comment_id", ev.CommentID,
			"occurred_at", ev.OccurredAt,
		)
		return nil
	}
}
