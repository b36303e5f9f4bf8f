package store

import "time"

// Fields carries the producer-supplied data for a new job. Zero values
// for the optional fields mean "use the default": MaxRetries falls
// back to the store's "max-retries" configuration key (or 3), Timeout
// falls back to 20 seconds, BackoffBase falls back to the store's
// "backoff-base" configuration key (or 2), and Priority falls back to
// 5.
type Fields struct {
	ID      string
	Command string

	MaxRetries  uint32
	Timeout     time.Duration
	BackoffBase int
	Priority    int
}
