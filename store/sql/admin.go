package sql

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/queuectl/queuectl/job"
	"github.com/queuectl/queuectl/store"
)

// Delete implements store.Admin.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.NewDelete().Model((*jobModel)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return false, err
	}
	return isAffected(res), nil
}

// ClearAll implements store.Admin.
func (s *Store) ClearAll(ctx context.Context) error {
	_, err := s.db.NewDelete().Model((*jobModel)(nil)).Where("1 = 1").Exec(ctx)
	return err
}

// DLQList implements store.Admin.
func (s *Store) DLQList(ctx context.Context) ([]*job.Job, error) {
	return s.List(ctx, job.Dead)
}

// DLQRetry implements store.Admin. It resets a dead job to pending
// without re-triggering the aging bump, which only happens on Enqueue.
func (s *Store) DLQRetry(ctx context.Context, id string) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var jm jobModel
		if err := tx.NewSelect().Model(&jm).Where("id = ?", id).Scan(ctx); err != nil {
			if isNoRows(err) {
				return store.ErrJobNotFound
			}
			return err
		}
		if jm.State != job.Dead {
			return store.ErrNotDead
		}

		now := time.Now().UTC()
		_, err := tx.NewUpdate().
			Model((*jobModel)(nil)).
			Set("state = ?", job.Pending).
			Set("attempts = 0").
			Set("error_message = ''").
			Set("next_retry_at = NULL").
			Set("locked_by = NULL").
			Set("locked_at = NULL").
			Set("updated_at = ?", now).
			Where("id = ?", id).
			Exec(ctx)
		return err
	})
}
