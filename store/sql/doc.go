// Package sql provides a bun-based SQL storage implementation of
// store.Store.
//
// # Overview
//
// The SQL backend provides:
//
//   - durable persistence of jobs and configuration
//   - atomic state transitions, including the aging bump at Enqueue
//   - race-free Acquire using UPDATE ... WHERE id IN (subquery)
//   - retry/backoff and dead-letter routing inside Fail
//
// It is built for SQLite via modernc.org/sqlite, the only dialect this
// package ships a dialect import for, though bun itself is
// dialect-agnostic.
//
// # Concurrency Model
//
// Acquire is implemented as a single atomic UPDATE statement with a
// subquery, to avoid races between row selection and the state
// transition: the eligibility predicate is evaluated inside the same
// statement that claims the row, so a caller that finds nothing
// eligible updates zero rows and Acquire returns no job.
//
// Open configures WAL journaling and a busy timeout of at least 30
// seconds, so that contention under many workers is retried
// transparently by SQLite rather than surfaced as an error.
//
// # Schema
//
// Open runs goose migrations embedded in this package (see migrate.go)
// against the jobs and config tables. Migrations are idempotent and
// additive: later versions add columns rather than rewriting history.
//
// # Lease-based recovery
//
// Acquire's eligibility predicate also reclaims processing jobs whose
// lock has gone stale: locked_at older than 2x that job's own timeout.
// This recovers jobs orphaned by a worker process that died mid-run
// without ever calling Complete or Fail.
package sql
