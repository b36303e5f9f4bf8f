package sql

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/queuectl/queuectl/job"
)

type jobModel struct {
	bun.BaseModel `bun:"table:jobs"`

	ID      string `bun:"id,pk"`
	Command string `bun:"command,notnull"`

	State job.State `bun:"state,notnull,default:0"`

	Attempts       uint32 `bun:"attempts,notnull,default:0"`
	MaxRetries     uint32 `bun:"max_retries,notnull"`
	TimeoutSeconds int64  `bun:"timeout_seconds,notnull"`
	BackoffBase    int    `bun:"backoff_base,notnull"`
	Priority       int    `bun:"priority,notnull"`
	WaitingTime    int    `bun:"waiting_time,notnull,default:0"`

	NextRetryAt *time.Time `bun:"next_retry_at,nullzero,default:null"`
	LockedBy    *string    `bun:"locked_by,nullzero,default:null"`
	LockedAt    *time.Time `bun:"locked_at,nullzero,default:null"`

	Output               string   `bun:"output,notnull,default:''"`
	ErrorMessage         string   `bun:"error_message,notnull,default:''"`
	ExecutionTimeSeconds *float64 `bun:"execution_time_seconds,nullzero,default:null"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

func (jm *jobModel) toJob() *job.Job {
	j := &job.Job{
		ID:            jm.ID,
		Command:       jm.Command,
		State:         jm.State,
		Attempts:      jm.Attempts,
		MaxRetries:    jm.MaxRetries,
		Timeout:       time.Duration(jm.TimeoutSeconds) * time.Second,
		BackoffBase:   jm.BackoffBase,
		Priority:      jm.Priority,
		WaitingTime:   jm.WaitingTime,
		NextRetryAt:   jm.NextRetryAt,
		LockedBy:      jm.LockedBy,
		LockedAt:      jm.LockedAt,
		Output:        jm.Output,
		ErrorMessage:  jm.ErrorMessage,
		CreatedAt:     jm.CreatedAt,
		UpdatedAt:     jm.UpdatedAt,
	}
	if jm.ExecutionTimeSeconds != nil {
		d := time.Duration(*jm.ExecutionTimeSeconds * float64(time.Second))
		j.ExecutionTime = &d
	}
	return j
}

type configModel struct {
	bun.BaseModel `bun:"table:config"`

	Key   string `bun:"key,pk"`
	Value string `bun:"value,notnull"`
}
