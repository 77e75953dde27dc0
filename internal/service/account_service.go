package service

import (
	"context"
	"log/slog"
	"time"

	"stylmou/internal/cache"
	"stylmou/internal/middleware"
	"stylmou/internal/models"
	"stylmou/internal/observability"
	"stylmou/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// AccountService removes accounts together with everything they own.
type AccountService struct {
	cascade repository.CascadeRepository
	writes  *WriteCoordinator
	events  EventPublisher
	cache   *cache.Cache
	now     func() time.Time
}

func NewAccountService(cascade repository.CascadeRepository, writes *WriteCoordinator, events EventPublisher, c *cache.Cache) *AccountService {
	return &AccountService{
		cascade: cascade,
		writes:  writes,
		events:  orNoopEvents(events),
		cache:   c,
		now:     time.Now,
	}
}

// CascadeSoftDelete flags the user row and then every dependent row, one table
// at a time, stopping at the first failed table. A user already flagged by an
// earlier partial run goes through the whole plan again.
func (s *AccountService) CascadeSoftDelete(ctx context.Context, userID uint) (err error) {
	ctx, span := observability.StartSpan(ctx, "fanout", "delete_account", attribute.Int64("user_id", int64(userID)))
	record := observability.TrackFanout("delete_account")
	defer func() {
		record(err)
		observability.EndSpan(span, err)
	}()

	if userID == 0 {
		return models.NewValidationError("userId is required.")
	}
	ctx = middleware.WithUserID(ctx, userID)

	peers, peerErr := s.cascade.FollowPeers(ctx, userID)
	if peerErr != nil {
		middleware.Logger.WarnContext(ctx, "follow peers lookup failed", slog.String("error", peerErr.Error()))
	}
	defer s.invalidateProfiles(ctx, userID, peers)

	err = s.writes.run(ctx, userID, func(ctx context.Context, _ writeMode) error {
		at := s.now()
		affected, err := s.cascade.SoftDeleteUser(ctx, userID, at)
		if err != nil {
			return err
		}
		if affected == 0 {
			return models.NewNotFoundError("User", userID)
		}
		return applyPlan(ctx, s.cascade, "delete_account", repository.AccountCascadePlan(), userID, at)
	})
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "account deletion failed", slog.String("error", err.Error()))
		return err
	}

	logPublishFailure(ctx, "account.deleted", s.events.PublishAccountDeleted(ctx, userID))
	middleware.Logger.InfoContext(ctx, "account deleted")
	return nil
}

// invalidateProfiles drops the cached profile of userID and of every user whose
// follow counts included userID.
func (s *AccountService) invalidateProfiles(ctx context.Context, userID uint, peers []uint) {
	keys := make([]string, 0, len(peers)+1)
	keys = append(keys, cache.ProfileKey(userID))
	for _, peer := range peers {
		keys = append(keys, cache.ProfileKey(peer))
	}
	s.cache.Invalidate(ctx, keys...)
}
