// Package notifications publishes domain events into Redis channels.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strconv"
	"time"

	"stylmou/internal/middleware"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Event types published by the write coordinator.
const (
	EventPostCreated    = "post.created"
	EventPostDeleted    = "post.deleted"
	EventAccountDeleted = "account.deleted"
)

// EventsChannel carries every domain event.
const EventsChannel = "events:domain"

// Event is the JSON payload published for a domain change.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	UserID     uint      `json:"user_id"`
	PostID     uint      `json:"post_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Notifier provides helpers to publish notifications into Redis channels
type Notifier struct {
	rdb *redis.Client
	now func() time.Time
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
// A nil client turns every publish into a no-op.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb, now: time.Now}
}

// PublishPostCreated announces a post on the events channel and the author's channel.
func (n *Notifier) PublishPostCreated(ctx context.Context, userID, postID uint) error {
	return n.publish(ctx, Event{Type: EventPostCreated, UserID: userID, PostID: postID})
}

// PublishPostDeleted announces a removed post.
func (n *Notifier) PublishPostDeleted(ctx context.Context, userID, postID uint) error {
	return n.publish(ctx, Event{Type: EventPostDeleted, UserID: userID, PostID: postID})
}

// PublishAccountDeleted announces a soft-deleted account.
func (n *Notifier) PublishAccountDeleted(ctx context.Context, userID uint) error {
	return n.publish(ctx, Event{Type: EventAccountDeleted, UserID: userID})
}

func (n *Notifier) publish(ctx context.Context, event Event) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	event.ID = uuid.NewString()
	event.OccurredAt = n.now().UTC()

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	pipe := n.rdb.Pipeline()
	pipe.Publish(ctx, EventsChannel, payload)
	if event.UserID != 0 {
		pipe.Publish(ctx, UserChannel(event.UserID), payload)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	return nil
}

// StartEventSubscriber subscribes to the events channel and calls onEvent for
// each decoded event until ctx is cancelled.
func (n *Notifier) StartEventSubscriber(ctx context.Context, onEvent func(Event)) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	sub := n.rdb.Subscribe(ctx, EventsChannel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("subscribe %s: %w", EventsChannel, err)
	}
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event Event
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					middleware.Logger.Warn("dropping malformed event", slog.String("error", err.Error()))
					continue
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							middleware.Logger.Error("panic in event subscriber",
								slog.Any("panic", r), slog.String("stack", string(debug.Stack())))
						}
					}()
					onEvent(event)
				}()
			}
		}
	}()

	return nil
}

// UserChannel derives the Redis channel name for a user.
func UserChannel(userID uint) string {
	return "notifications:user:" + strconv.FormatUint(uint64(userID), 10)
}
