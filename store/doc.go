// Package store defines the storage-agnostic contract of the queuectl
// coordination engine: durable job persistence, atomic acquisition,
// retry/DLQ transitions and small configuration storage.
//
// # Overview
//
// store models a durable job queue with explicit state transitions. It
// does not mandate a particular backend; the sql subpackage provides a
// single-file relational implementation built on bun and suitable for
// SQLite.
//
// # State Machine
//
// Jobs follow this lifecycle:
//
//	pending    -> processing
//	processing -> completed
//	processing -> failed       (retry budget remains)
//	failed     -> processing   (re-acquired once next_retry_at has passed)
//	processing -> dead         (retry budget exhausted)
//	dead       -> pending      (via DLQRetry)
//
// Terminal states (completed, dead) are not mutated by Acquire; only
// explicit administrative action (Delete, ClearAll, DLQRetry) touches
// them.
//
// # Scheduling
//
// Acquire selects the highest-ranked eligible job: eligibility requires
// no lock and state pending, or state failed with next_retry_at in the
// past. The sql implementation also reclaims processing jobs whose lock
// has gone stale. Ranking is (priority+waiting_time) DESC, created_at
// ASC. See job.EffectivePriority.
//
// # Retry / DLQ
//
// Acquire increments attempts when it hands out a job. On Fail, if that
// attempt count has reached max_retries the job becomes dead, otherwise
// it becomes failed with next_retry_at set backoff_base^attempts seconds
// in the future.
//
// # Concurrency
//
// Store implementations are the sole coordinator of concurrent access
// between workers: Acquire must be race-free, never handing the same
// job to two callers. Implementations are expected to provide this
// using a single atomic conditional UPDATE rather than a SELECT
// followed by an UPDATE.
//
// # Interfaces
//
// store defines the following primary interfaces, composed into Store:
//
//	Enqueuer — insert new jobs, with the aging side effect
//	Acquirer — acquire, complete and fail jobs
//	Observer — inspect job state without mutating it
//	Admin    — delete, clear, and DLQ management
//	Configurer — small key/value configuration used for enqueue defaults
package store
