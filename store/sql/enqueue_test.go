package sql_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/queuectl/queuectl/job"
	"github.com/queuectl/queuectl/store"
)

func TestEnqueueDefaults(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	j, err := s.Enqueue(ctx, store.Fields{ID: "j1", Command: "echo hi"})
	require.NoError(t, err)
	assert.Equal(t, job.Pending, j.State)
	assert.EqualValues(t, 3, j.MaxRetries)
	assert.Equal(t, 2, j.BackoffBase)
	assert.Equal(t, 5, j.Priority)
	assert.Equal(t, 0, j.WaitingTime)
	assert.EqualValues(t, 0, j.Attempts)
}

func TestEnqueueDuplicateID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Enqueue(ctx, store.Fields{ID: "dup", Command: "echo hi"})
	require.NoError(t, err)

	_, err = s.Enqueue(ctx, store.Fields{ID: "dup", Command: "echo hi"})
	assert.ErrorIs(t, err, store.ErrDuplicateID)
}

func TestEnqueueInvalid(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Enqueue(ctx, store.Fields{ID: "", Command: "echo hi"})
	assert.ErrorIs(t, err, store.ErrInvalidJob)

	_, err = s.Enqueue(ctx, store.Fields{ID: "no-command"})
	assert.ErrorIs(t, err, store.ErrInvalidJob)
}

func TestEnqueueUsesConfigDefaults(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetConfig(ctx, "max-retries", "7"))
	require.NoError(t, s.SetConfig(ctx, "backoff-base", "3"))

	j, err := s.Enqueue(ctx, store.Fields{ID: "j1", Command: "echo hi"})
	require.NoError(t, err)
	assert.EqualValues(t, 7, j.MaxRetries)
	assert.Equal(t, 3, j.BackoffBase)
}

// TestEnqueueAging checks that an old job's WaitingTime grows by one
// for every later enqueue, so its effective priority keeps climbing
// even though its static Priority never changes.
func TestEnqueueAging(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	old, err := s.Enqueue(ctx, store.Fields{ID: "old", Command: "echo old", Priority: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, old.Priority)

	for i := 0; i < 9; i++ {
		_, err := s.Enqueue(ctx, store.Fields{ID: "sibling-" + string(rune('a'+i)), Command: "echo hi"})
		require.NoError(t, err)
	}

	got, err := s.Get(ctx, "old")
	require.NoError(t, err)
	assert.Equal(t, 9, got.WaitingTime)
	assert.Equal(t, 10, got.Effective())
}

// TestEnqueueAgingSkipsLocked verifies that a processing job (locked)
// is never aged: only pending and failed jobs accumulate waiting time.
func TestEnqueueAgingSkipsLocked(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Enqueue(ctx, store.Fields{ID: "locked", Command: "sleep 5"})
	require.NoError(t, err)

	acquired, err := s.Acquire(ctx, "worker-1")
	require.NoError(t, err)
	require.NotNil(t, acquired)

	_, err = s.Enqueue(ctx, store.Fields{ID: "fresh", Command: "echo hi"})
	require.NoError(t, err)

	got, err := s.Get(ctx, "locked")
	require.NoError(t, err)
	assert.Equal(t, 0, got.WaitingTime)
}
