package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/queuectl/queuectl/internal"
	"github.com/queuectl/queuectl/store"
)

// PollInterval is how long a worker sleeps between acquire attempts
// when the queue is empty.
const PollInterval = time.Second

// heartbeatEvery is the number of consecutive empty polls between
// "still waiting" log lines.
const heartbeatEvery = 10

// Config configures a Worker.
type Config struct {
	// ID identifies this worker to the store's Acquire and appears in
	// logs. If empty, NewWorker generates one.
	ID string
}

// Worker repeatedly acquires a single job from a store, runs it as a
// shell subprocess, and reports the outcome, one job at a time.
//
// Worker has a strict lifecycle: Start may only be called once, and
// Stop gracefully waits for any in-flight job to finish or report
// ErrStopTimeout.
type Worker struct {
	lcBase
	id    string
	store store.Store
	log   *slog.Logger
	stop  chan struct{}
	wg    sync.WaitGroup
}

// NewWorker creates a Worker over store, identified by config.ID.
func NewWorker(s store.Store, config Config, log *slog.Logger) *Worker {
	id := config.ID
	if id == "" {
		id = "worker-" + uuid.NewString()[:8]
	}
	return &Worker{
		id:    id,
		store: s,
		log:   log.With("worker_id", id),
		stop:  make(chan struct{}),
	}
}

// ID returns the worker's identifier.
func (w *Worker) ID() string {
	return w.id
}

// Start begins the poll-acquire-execute loop in a background
// goroutine. Start returns ErrDoubleStarted if already running.
func (w *Worker) Start(ctx context.Context) error {
	if err := w.tryStart(); err != nil {
		return err
	}
	w.log.Info("worker started")
	w.wg.Add(1)
	go w.loop(ctx)
	return nil
}

// Stop signals the loop to exit after its current job, if any,
// finishes, and waits up to timeout. Stop returns ErrStopTimeout if
// shutdown does not complete in time, and ErrDoubleStopped if the
// worker is not running.
func (w *Worker) Stop(timeout time.Duration) error {
	return w.tryStop(timeout, func() internal.DoneChan {
		close(w.stop)
		return internal.WrapWaitGroup(&w.wg)
	})
}

func (w *Worker) loop(ctx context.Context) {
	defer w.wg.Done()
	idle := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stop:
			return
		default:
		}

		j, err := w.store.Acquire(ctx, w.id)
		if err != nil {
			w.log.Error("acquire failed", "err", err)
			if !w.sleep(ctx, PollInterval) {
				return
			}
			continue
		}
		if j == nil {
			idle++
			if idle%heartbeatEvery == 0 {
				w.log.Info("waiting for jobs", "idle_polls", idle)
			}
			if !w.sleep(ctx, PollInterval) {
				return
			}
			continue
		}

		idle = 0
		w.execute(ctx, j.ID, j.Command, j.Timeout, j.Attempts, j.MaxRetries)
	}
}

func (w *Worker) sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-w.stop:
		return false
	case <-timer.C:
		return true
	}
}

func (w *Worker) execute(ctx context.Context, id, command string, timeout time.Duration, attempts, maxRetries uint32) {
	log := w.log.With("job_id", id, "attempt", attempts, "max_attempts", maxRetries)
	log.Info("job started", "command", command, "timeout", timeout)

	result := runCommand(ctx, command, timeout)

	if result.ok {
		log.Info("job completed", "execution_time", result.executionTime)
		if err := w.store.Complete(ctx, id, result.output, result.executionTime); err != nil {
			log.Error("cannot complete job", "err", err)
		}
		return
	}

	log.Warn("job failed", "err", result.errMessage, "execution_time", result.executionTime)
	if err := w.store.Fail(ctx, id, result.errMessage, result.executionTime); err != nil {
		log.Error("cannot report job failure", "err", err)
	}
}
