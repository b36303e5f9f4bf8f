package store

import (
	"context"
	"time"

	"github.com/queuectl/queuectl/job"
)

// Counts summarizes the number of jobs in each lifecycle state, as
// returned by Observer.Status.
type Counts struct {
	Total      int64
	Pending    int64
	Processing int64
	Completed  int64
	Failed     int64
	Dead       int64
}

// Enqueuer inserts new jobs into the queue.
type Enqueuer interface {

	// Enqueue inserts a job built from fields in the pending state.
	//
	// As a side effect, within the same transaction as the insert,
	// Enqueue increments WaitingTime by 1 for every job currently in
	// state pending or failed with no lock held. This implements the
	// aging policy described in job.EffectivePriority: a job's
	// effective priority grows by one for every sibling enqueued while
	// it waits.
	//
	// Enqueue returns ErrDuplicateID if a job with fields.ID already
	// exists, and ErrInvalidJob if ID or Command is empty.
	Enqueue(ctx context.Context, fields Fields) (*job.Job, error)
}

// Acquirer manages the acquire/execute/report lifecycle of jobs.
type Acquirer interface {

	// Acquire atomically selects and locks the highest-ranked eligible
	// job for workerID. A job with no lock held is eligible in state
	// pending, or in state failed with NextRetryAt not in the future;
	// the sql implementation also treats a processing job whose lock
	// has gone stale as eligible. Ranking is (priority+waiting_time)
	// DESC, created_at ASC.
	//
	// The selected job transitions to processing, with Attempts
	// incremented, LockedBy and LockedAt set and UpdatedAt refreshed.
	// Acquire returns (nil, nil) if no eligible job exists.
	//
	// Acquire must be race-free: two concurrent callers never receive
	// the same job.
	Acquire(ctx context.Context, workerID string) (*job.Job, error)

	// Complete transitions a processing job to completed, recording
	// output and the attempt's execution time and clearing lock
	// fields. Complete is idempotent: calling it again on an already
	// completed job leaves it completed, re-applying the given output
	// and execution time.
	Complete(ctx context.Context, id, output string, executionTime time.Duration) error

	// Fail invokes the retry/DLQ controller: using the Attempts count
	// already incremented by Acquire, it either reschedules the job as
	// failed with a computed NextRetryAt, or, once the retry budget is
	// exhausted, transitions it to dead. Lock fields are cleared either way. Fail is a no-op
	// if id does not exist.
	Fail(ctx context.Context, id, errMessage string, executionTime time.Duration) error
}

// Observer provides read-only access to job state.
type Observer interface {

	// Get returns the job identified by id, or (nil, nil) if no such
	// job exists.
	Get(ctx context.Context, id string) (*job.Job, error)

	// List returns jobs ordered by CreatedAt descending. If state is
	// job.Unknown, jobs in every state are returned.
	List(ctx context.Context, state job.State) ([]*job.Job, error)

	// Status summarizes job counts by state.
	Status(ctx context.Context) (Counts, error)
}

// Admin provides administrative operations: deletion, bulk clearing,
// and dead-letter-queue management.
type Admin interface {

	// Delete removes a job by id, reporting whether a row was removed.
	Delete(ctx context.Context, id string) (bool, error)

	// ClearAll removes every job from the store.
	ClearAll(ctx context.Context) error

	// DLQList returns every job currently in the dead state.
	DLQList(ctx context.Context) ([]*job.Job, error)

	// DLQRetry resets a dead job to pending: Attempts becomes 0,
	// ErrorMessage, NextRetryAt and lock fields are cleared, and
	// UpdatedAt is refreshed. It does not re-trigger the aging bump;
	// that is strictly an Enqueue-time event. DLQRetry returns
	// ErrJobNotFound if id does not exist and ErrNotDead if the job is
	// not currently dead.
	DLQRetry(ctx context.Context, id string) error
}

// Configurer stores the small key/value configuration consulted by
// Enqueue for default MaxRetries and BackoffBase values.
type Configurer interface {

	// GetConfig returns the value for key and whether it was set.
	GetConfig(ctx context.Context, key string) (string, bool, error)

	// SetConfig upserts the value for key.
	SetConfig(ctx context.Context, key, value string) error
}

// Store is the full contract of the coordination engine's persistence
// layer: the union of Enqueuer, Acquirer, Observer, Admin and
// Configurer. It is the only coordinator of concurrent access between
// workers — all worker-visible atomicity is provided by the store.
type Store interface {
	Enqueuer
	Acquirer
	Observer
	Admin
	Configurer
}
