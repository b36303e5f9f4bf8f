package store

import "errors"

var (
	// ErrDuplicateID is returned by Enqueue when a job with the same ID
	// already exists. No state is mutated.
	ErrDuplicateID = errors.New("store: duplicate job id")

	// ErrInvalidJob is returned by Enqueue when required fields (ID,
	// Command) are missing.
	ErrInvalidJob = errors.New("store: invalid job fields")

	// ErrJobNotFound is returned by DLQRetry when no job with the given
	// ID exists. Delete reports a missing job by returning false instead.
	ErrJobNotFound = errors.New("store: job not found")

	// ErrNotDead is returned by DLQRetry when the target job is not
	// currently in the dead state.
	ErrNotDead = errors.New("store: job is not dead")
)
