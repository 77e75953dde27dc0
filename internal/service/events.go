package service

import (
	"context"
	"log/slog"

	"stylmou/internal/middleware"
)

// EventPublisher announces completed writes. Implemented by notifications.Notifier.
type EventPublisher interface {
	PublishPostCreated(ctx context.Context, userID, postID uint) error
	PublishPostDeleted(ctx context.Context, userID, postID uint) error
	PublishAccountDeleted(ctx context.Context, userID uint) error
}

// logPublishFailure records a best-effort publish that did not reach Redis.
func logPublishFailure(ctx context.Context, event string, err error) {
	if err == nil {
		return
	}
	middleware.Logger.WarnContext(ctx, "event publish failed",
		slog.String("event", event),
		slog.String("error", err.Error()),
	)
}

type noopEvents struct{}

func (noopEvents) PublishPostCreated(context.Context, uint, uint) error { return nil }
func (noopEvents) PublishPostDeleted(context.Context, uint, uint) error { return nil }
func (noopEvents) PublishAccountDeleted(context.Context, uint) error    { return nil }

func orNoopEvents(p EventPublisher) EventPublisher {
	if p == nil {
		return noopEvents{}
	}
	return p
}
