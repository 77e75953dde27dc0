package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"stylmou/internal/featureflags"
	"stylmou/internal/middleware"
	"stylmou/internal/observability"
	"stylmou/internal/repository"

	"golang.org/x/sync/errgroup"
)

// fanOut runs fn for every index in [0, n) with at most limit calls in flight.
// It succeeds only when exactly n calls returned nil. The first failure cancels
// the context passed to the remaining calls and is returned; side effects of
// calls that already succeeded are kept.
func fanOut(ctx context.Context, branch string, limit, n int, fn func(ctx context.Context, i int) error) error {
	if n == 0 {
		return nil
	}
	if limit < 1 {
		limit = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	var completed atomic.Int64
	for i := 0; i < n; i++ {
		i := i
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			err := fn(gctx, i)
			observability.FanoutSubWrites.WithLabelValues(branch, observability.Outcome(err)).Inc()
			if err != nil {
				return err
			}
			completed.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if got := completed.Load(); got != int64(n) {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fmt.Errorf("%s: %d of %d sub-writes completed", branch, got, n)
	}
	return nil
}

// FanoutOptions configures how multi-entity writes are dispatched.
type FanoutOptions struct {
	Parallelism         int
	Transactional       bool
	AbortOnVideoFailure bool
}

// writeMode is the dispatch mode chosen for one coordinated write.
type writeMode struct {
	parallelism   int
	transactional bool
}

// WriteCoordinator decides per call whether a write sequence runs inside one
// transaction or as independent sub-writes.
type WriteCoordinator struct {
	uow   repository.UnitOfWork
	flags *featureflags.Manager
	opts  FanoutOptions
}

func NewWriteCoordinator(uow repository.UnitOfWork, flags *featureflags.Manager, opts FanoutOptions) *WriteCoordinator {
	if opts.Parallelism < 1 {
		opts.Parallelism = 1
	}
	return &WriteCoordinator{uow: uow, flags: flags, opts: opts}
}

func (c *WriteCoordinator) transactional(userID uint) bool {
	if c.uow == nil {
		return false
	}
	return c.opts.Transactional || c.flags.Enabled(featureflags.TransactionalFanout, userID)
}

// run executes fn for userID. Transactional runs are sequential and roll back on any failure.
func (c *WriteCoordinator) run(ctx context.Context, userID uint, fn func(ctx context.Context, mode writeMode) error) error {
	if c.transactional(userID) {
		return c.uow.Do(ctx, func(txCtx context.Context) error {
			return fn(txCtx, writeMode{parallelism: 1, transactional: true})
		})
	}
	return fn(ctx, writeMode{parallelism: c.opts.Parallelism})
}

// applyPlan runs a soft-delete plan in order for id, stopping at the first failed step.
func applyPlan(ctx context.Context, repo repository.CascadeRepository, branch string, plan []repository.CascadeStep, id uint, at time.Time) error {
	return fanOut(ctx, branch, 1, len(plan), func(ctx context.Context, i int) error {
		step := plan[i]
		affected, err := repo.Apply(ctx, step, id, at)
		if err != nil {
			return fmt.Errorf("soft-delete %s: %w", step.Table, err)
		}
		middleware.Logger.DebugContext(ctx, "cascade step applied",
			slog.String("table", step.Table),
			slog.Int64("rows_affected", affected),
		)
		return nil
	})
}
