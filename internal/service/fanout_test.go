package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"stylmou/internal/featureflags"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFanOut_Empty(t *testing.T) {
	t.Parallel()

	err := fanOut(context.Background(), "images", 4, 0, func(context.Context, int) error {
		t.Fatal("fn must not run for an empty batch")
		return nil
	})
	require.NoError(t, err)
}

func TestFanOut_RunsEveryIndexOnce(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	seen := make(map[int]int)
	err := fanOut(context.Background(), "images", 3, 10, func(_ context.Context, i int) error {
		mu.Lock()
		seen[i]++
		mu.Unlock()
		return nil
	})
	require.NoError(t, err)
	require.Len(t, seen, 10)
	for i := 0; i < 10; i++ {
		assert.Equal(t, 1, seen[i], "index %d", i)
	}
}

func TestFanOut_RespectsLimit(t *testing.T) {
	t.Parallel()

	var inFlight, peak atomic.Int64
	err := fanOut(context.Background(), "tags", 2, 12, func(context.Context, int) error {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		inFlight.Add(-1)
		return nil
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, peak.Load(), int64(2))
}

func TestFanOut_StopsDispatchingAfterFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	var calls atomic.Int64
	err := fanOut(context.Background(), "images", 1, 5, func(_ context.Context, i int) error {
		calls.Add(1)
		if i == 2 {
			return boom
		}
		return nil
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, int64(3), calls.Load(), "calls after the failure must not run")
}

func TestFanOut_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var calls atomic.Int64
	err := fanOut(ctx, "images", 2, 3, func(context.Context, int) error {
		calls.Add(1)
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls.Load())
}

func TestWriteCoordinator_Mode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		uow           *unitOfWorkStub
		flags         *featureflags.Manager
		opts          FanoutOptions
		transactional bool
		parallelism   int
	}{
		{name: "independent by default", uow: &unitOfWorkStub{}, opts: FanoutOptions{Parallelism: 4}, parallelism: 4},
		{name: "config enables transactions", uow: &unitOfWorkStub{}, opts: FanoutOptions{Parallelism: 4, Transactional: true}, transactional: true, parallelism: 1},
		{name: "flag enables transactions", uow: &unitOfWorkStub{}, flags: featureflags.NewManager(featureflags.TransactionalFanout + "=on"), opts: FanoutOptions{Parallelism: 4}, transactional: true, parallelism: 1},
		{name: "no unit of work", opts: FanoutOptions{Transactional: true}, parallelism: 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var c *WriteCoordinator
			if tt.uow != nil {
				c = NewWriteCoordinator(tt.uow, tt.flags, tt.opts)
			} else {
				c = NewWriteCoordinator(nil, tt.flags, tt.opts)
			}

			var got writeMode
			require.NoError(t, c.run(context.Background(), 1, func(_ context.Context, mode writeMode) error {
				got = mode
				return nil
			}))
			assert.Equal(t, tt.transactional, got.transactional)
			assert.Equal(t, tt.parallelism, got.parallelism)
			if tt.uow != nil {
				want := 0
				if tt.transactional {
					want = 1
				}
				assert.Equal(t, want, tt.uow.calls)
			}
		})
	}
}
