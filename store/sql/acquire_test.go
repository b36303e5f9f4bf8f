package sql_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/queuectl/queuectl/job"
	"github.com/queuectl/queuectl/store"
)

func TestAcquireEmptyQueue(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	got, err := s.Acquire(ctx, "worker-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAcquireLocksJob(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Enqueue(ctx, store.Fields{ID: "j1", Command: "echo hi"})
	require.NoError(t, err)

	got, err := s.Acquire(ctx, "worker-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "j1", got.ID)
	assert.Equal(t, job.Processing, got.State)
	require.NotNil(t, got.LockedBy)
	assert.Equal(t, "worker-1", *got.LockedBy)
	assert.EqualValues(t, 1, got.Attempts)

	again, err := s.Acquire(ctx, "worker-2")
	require.NoError(t, err)
	assert.Nil(t, again)
}

// TestAcquireMutualExclusion fires many concurrent Acquire calls
// against a single pending job and checks exactly one succeeds.
func TestAcquireMutualExclusion(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Enqueue(ctx, store.Fields{ID: "only", Command: "echo hi"})
	require.NoError(t, err)

	const workers = 16
	var wg sync.WaitGroup
	var mu sync.Mutex
	var winners []string

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			got, err := s.Acquire(ctx, "worker")
			assert.NoError(t, err)
			if got != nil {
				mu.Lock()
				winners = append(winners, got.ID)
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Len(t, winners, 1)
}

// TestAcquireOrdersByEffectivePriorityThenAge checks that among
// eligible jobs, the one with the higher Priority+WaitingTime wins,
// and ties break to the oldest created_at.
func TestAcquireOrdersByEffectivePriorityThenAge(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Enqueue(ctx, store.Fields{ID: "low", Command: "echo low", Priority: 1})
	require.NoError(t, err)
	_, err = s.Enqueue(ctx, store.Fields{ID: "high", Command: "echo high", Priority: 9})
	require.NoError(t, err)

	got, err := s.Acquire(ctx, "worker-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "high", got.ID)

	// "low" ages to 1+2 = 3 as "tie" (priority 3) arrives, so the two
	// tie on effective priority and the older one must win.
	_, err = s.Enqueue(ctx, store.Fields{ID: "tie", Command: "echo tie", Priority: 3})
	require.NoError(t, err)

	got, err = s.Acquire(ctx, "worker-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "low", got.ID)
}

func TestAcquireSkipsFutureRetry(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Enqueue(ctx, store.Fields{ID: "j1", Command: "exit 1", BackoffBase: 60})
	require.NoError(t, err)
	got, err := s.Acquire(ctx, "worker-1")
	require.NoError(t, err)
	require.NotNil(t, got)

	require.NoError(t, s.Fail(ctx, "j1", "boom", time.Millisecond))

	again, err := s.Acquire(ctx, "worker-2")
	require.NoError(t, err)
	assert.Nil(t, again, "job should not be eligible before next_retry_at elapses")
}

func TestAcquireKeepsFreshLease(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Enqueue(ctx, store.Fields{ID: "j1", Command: "sleep 1", Timeout: 0})
	require.NoError(t, err)

	first, err := s.Acquire(ctx, "worker-1")
	require.NoError(t, err)
	require.NotNil(t, first)

	// The job's timeout defaulted to 20s; its lease horizon is 2x that,
	// so immediately after acquiring it is not yet reclaimable.
	again, err := s.Acquire(ctx, "worker-2")
	require.NoError(t, err)
	assert.Nil(t, again)
}
