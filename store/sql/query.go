package sql

import (
	"context"

	"github.com/queuectl/queuectl/job"
	"github.com/queuectl/queuectl/store"
)

// Get implements store.Observer.
func (s *Store) Get(ctx context.Context, id string) (*job.Job, error) {
	var jm jobModel
	err := s.db.NewSelect().Model(&jm).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return jm.toJob(), nil
}

// List implements store.Observer. Results are ordered by CreatedAt
// descending.
func (s *Store) List(ctx context.Context, state job.State) ([]*job.Job, error) {
	var rows []jobModel
	q := s.db.NewSelect().Model(&rows).Order("created_at DESC")
	if state != job.Unknown {
		q = q.Where("state = ?", state)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	jobs := make([]*job.Job, len(rows))
	for i := range rows {
		jobs[i] = rows[i].toJob()
	}
	return jobs, nil
}

// Status implements store.Observer.
func (s *Store) Status(ctx context.Context) (store.Counts, error) {
	var rows []struct {
		State job.State `bun:"state"`
		Count int64      `bun:"count"`
	}
	err := s.db.NewSelect().
		Model((*jobModel)(nil)).
		ColumnExpr("state").
		ColumnExpr("count(*) AS count").
		Group("state").
		Scan(ctx, &rows)
	if err != nil {
		return store.Counts{}, err
	}

	var counts store.Counts
	for _, row := range rows {
		counts.Total += row.Count
		switch row.State {
		case job.Pending:
			counts.Pending = row.Count
		case job.Processing:
			counts.Processing = row.Count
		case job.Completed:
			counts.Completed = row.Count
		case job.Failed:
			counts.Failed = row.Count
		case job.Dead:
			counts.Dead = row.Count
		}
	}
	return counts, nil
}
