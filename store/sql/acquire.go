package sql

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/queuectl/queuectl/job"
)

// leaseMultiplier is the lease horizon, expressed as a multiple of a
// job's own timeout, after which a stale processing lock is treated as
// orphaned and eligible for reclaim. A worker that dies mid-execution
// leaves its lock behind; nothing short of this horizon frees it.
const leaseMultiplier = 2

// eligibility is the predicate Acquire's selection subquery uses to
// decide which rows may be claimed.
//
// A job is eligible when:
//   - it holds no lock and is pending, or
//   - it holds no lock and is failed with next_retry_at in the past, or
//   - it is processing but its lock has gone stale: locked_at is older
//     than leaseMultiplier times its own timeout.
const eligibility = `
	(locked_by IS NULL AND (state = ? OR (state = ? AND next_retry_at <= ?)))
	OR (state = ? AND locked_at IS NOT NULL
	    AND (julianday('now') - julianday(locked_at)) * 86400.0 >= timeout_seconds * ?)
`

// Acquire implements store.Acquirer. It is expressed as a single
// atomic UPDATE ... WHERE id IN (subquery) statement: the subquery
// ranks eligible jobs and the outer UPDATE transitions only the
// highest-ranked one. Because both run as one SQL statement, no other
// caller can observe the row between selection and transition, so two
// workers racing to acquire can never claim the same job.
func (s *Store) Acquire(ctx context.Context, workerID string) (*job.Job, error) {
	now := time.Now().UTC()

	subQuery := s.db.NewSelect().
		Model((*jobModel)(nil)).
		Column("id").
		Where(eligibility, job.Pending, job.Failed, now, job.Processing, leaseMultiplier).
		Order("(priority + waiting_time) DESC").
		OrderExpr("created_at ASC").
		Limit(1)

	var jobs []jobModel
	err := s.db.NewUpdate().
		Model((*jobModel)(nil)).
		Set("state = ?", job.Processing).
		Set("attempts = attempts + 1").
		Set("locked_by = ?", workerID).
		Set("locked_at = ?", now).
		Set("updated_at = ?", now).
		Where("id IN (?)", subQuery).
		Returning("*").
		Scan(ctx, &jobs)
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, nil
	}
	return jobs[0].toJob(), nil
}

// Complete implements store.Acquirer. It is idempotent: calling it
// again on an already-completed job simply re-applies the same fields.
func (s *Store) Complete(ctx context.Context, id, output string, executionTime time.Duration) error {
	now := time.Now().UTC()
	seconds := executionTime.Seconds()
	_, err := s.db.NewUpdate().
		Model((*jobModel)(nil)).
		Set("state = ?", job.Completed).
		Set("output = ?", output).
		Set("execution_time_seconds = ?", seconds).
		Set("locked_by = NULL").
		Set("locked_at = NULL").
		Set("updated_at = ?", now).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

// Fail implements store.Acquirer, running the retry/dead-letter
// decision inside a single transaction: read the current attempt
// count (already bumped by Acquire), decide retry vs. dead, and write
// the outcome.
func (s *Store) Fail(ctx context.Context, id, errMessage string, executionTime time.Duration) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var jm jobModel
		if err := tx.NewSelect().Model(&jm).Where("id = ?", id).Scan(ctx); err != nil {
			if isNoRows(err) {
				return nil
			}
			return err
		}

		now := time.Now().UTC()
		attempts := jm.Attempts
		seconds := executionTime.Seconds()

		upd := tx.NewUpdate().
			Model((*jobModel)(nil)).
			Set("error_message = ?", errMessage).
			Set("execution_time_seconds = ?", seconds).
			Set("locked_by = NULL").
			Set("locked_at = NULL").
			Set("updated_at = ?", now).
			Where("id = ?", id)

		if attempts >= jm.MaxRetries {
			upd = upd.Set("state = ?", job.Dead).Set("next_retry_at = NULL")
		} else {
			delay := nextRetryDelay(jm.BackoffBase, attempts)
			upd = upd.Set("state = ?", job.Failed).Set("next_retry_at = ?", now.Add(delay))
		}

		_, err := upd.Exec(ctx)
		return err
	})
}
