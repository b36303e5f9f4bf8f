package sql

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/queuectl/queuectl/job"
	"github.com/queuectl/queuectl/store"
)

const (
	keyMaxRetries  = "max-retries"
	keyBackoffBase = "backoff-base"

	defaultMaxRetries  uint32 = 3
	defaultBackoffBase        = 2
	defaultTimeout            = 20 * time.Second
	defaultPriority           = 5
)

// Store is a bun-backed implementation of store.Store.
type Store struct {
	db *bun.DB
}

var _ store.Store = (*Store)(nil)

// NewStore wraps an already-opened, already-migrated *bun.DB. Use Open
// to obtain one configured for queuectl's schema and pragmas.
func NewStore(db *bun.DB) *Store {
	return &Store{db: db}
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint")
}

// Enqueue implements store.Enqueuer.
func (s *Store) Enqueue(ctx context.Context, fields store.Fields) (*job.Job, error) {
	if fields.ID == "" || fields.Command == "" {
		return nil, store.ErrInvalidJob
	}

	maxRetries := fields.MaxRetries
	if maxRetries == 0 {
		maxRetries = defaultMaxRetries
		if v, ok, err := s.GetConfig(ctx, keyMaxRetries); err == nil && ok {
			if n, err := strconv.ParseUint(v, 10, 32); err == nil {
				maxRetries = uint32(n)
			}
		}
	}

	timeout := fields.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	backoffBase := fields.BackoffBase
	if backoffBase == 0 {
		backoffBase = defaultBackoffBase
		if v, ok, err := s.GetConfig(ctx, keyBackoffBase); err == nil && ok {
			if n, err := strconv.Atoi(v); err == nil {
				backoffBase = n
			}
		}
	}

	priority := fields.Priority
	if priority == 0 {
		priority = defaultPriority
	}

	now := time.Now().UTC()
	jm := &jobModel{
		ID:             fields.ID,
		Command:        fields.Command,
		State:          job.Pending,
		Attempts:       0,
		MaxRetries:     maxRetries,
		TimeoutSeconds: int64((timeout + time.Second - 1) / time.Second),
		BackoffBase:    backoffBase,
		Priority:       priority,
		WaitingTime:    0,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		// Aging bump: every job that is currently waiting gets older
		// by one the moment a new sibling shows up.
		if _, err := tx.NewUpdate().
			Model((*jobModel)(nil)).
			Set("waiting_time = waiting_time + 1").
			Where("locked_by IS NULL").
			Where("state IN (?, ?)", job.Pending, job.Failed).
			Exec(ctx); err != nil {
			return err
		}
		_, err := tx.NewInsert().Model(jm).Exec(ctx)
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrDuplicateID
		}
		return nil, err
	}
	return jm.toJob(), nil
}

// GetConfig implements store.Configurer.
func (s *Store) GetConfig(ctx context.Context, key string) (string, bool, error) {
	var cm configModel
	err := s.db.NewSelect().Model(&cm).Where("key = ?", key).Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return cm.Value, true, nil
}

// SetConfig implements store.Configurer.
func (s *Store) SetConfig(ctx context.Context, key, value string) error {
	cm := &configModel{Key: key, Value: value}
	_, err := s.db.NewInsert().
		Model(cm).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Exec(ctx)
	return err
}
