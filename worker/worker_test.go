package worker_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/queuectl/queuectl/job"
	"github.com/queuectl/queuectl/store"
	"github.com/queuectl/queuectl/store/sql"
	"github.com/queuectl/queuectl/worker"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	db, err := sql.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sql.NewStore(db)
}

func silentLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func waitForState(t *testing.T, s store.Store, id string, want job.State, timeout time.Duration) *job.Job {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		got, err := s.Get(context.Background(), id)
		require.NoError(t, err)
		if got != nil && got.State == want {
			return got
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("job %s did not reach state %s within %s", id, want, timeout)
	return nil
}

func TestWorkerCompletesJob(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := s.Enqueue(ctx, store.Fields{ID: "ok", Command: "echo hello"})
	require.NoError(t, err)

	w := worker.NewWorker(s, worker.Config{ID: "test-worker"}, silentLogger())
	require.NoError(t, w.Start(ctx))
	defer w.Stop(time.Second)

	got := waitForState(t, s, "ok", job.Completed, 2*time.Second)
	assert.Equal(t, "hello", got.Output)
	require.NotNil(t, got.ExecutionTime)
}

func TestWorkerFailsJob(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := s.Enqueue(ctx, store.Fields{ID: "bad", Command: "exit 3", MaxRetries: 2, BackoffBase: 60})
	require.NoError(t, err)

	w := worker.NewWorker(s, worker.Config{ID: "test-worker"}, silentLogger())
	require.NoError(t, w.Start(ctx))
	defer w.Stop(time.Second)

	got := waitForState(t, s, "bad", job.Failed, 2*time.Second)
	assert.Contains(t, got.ErrorMessage, "Exit code 3")
}

func TestWorkerTimesOutJob(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := s.Enqueue(ctx, store.Fields{
		ID:      "slow",
		Command: "sleep 5",
		Timeout: 200 * time.Millisecond,
	})
	require.NoError(t, err)

	w := worker.NewWorker(s, worker.Config{}, silentLogger())
	require.NoError(t, w.Start(ctx))
	defer w.Stop(time.Second)

	got := waitForState(t, s, "slow", job.Failed, 2*time.Second)
	assert.Contains(t, got.ErrorMessage, "Timeout exceeded")
}

func TestWorkerDoubleStart(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := worker.NewWorker(s, worker.Config{}, silentLogger())
	require.NoError(t, w.Start(ctx))
	defer w.Stop(time.Second)

	assert.ErrorIs(t, w.Start(ctx), worker.ErrDoubleStarted)
}

func TestWorkerDoubleStop(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := worker.NewWorker(s, worker.Config{}, silentLogger())
	require.NoError(t, w.Start(ctx))
	require.NoError(t, w.Stop(time.Second))

	assert.ErrorIs(t, w.Stop(time.Second), worker.ErrDoubleStopped)
}

func TestWorkerGeneratesIDWhenEmpty(t *testing.T) {
	s := newTestStore(t)
	w := worker.NewWorker(s, worker.Config{}, silentLogger())
	assert.NotEmpty(t, w.ID())
}
