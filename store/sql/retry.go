package sql

import (
	"math"
	"time"
)

// nextRetryDelay computes backoffBase^attempts seconds, the delay
// before a failed job becomes eligible for re-acquisition again.
// attempts is the attempt count after the failed run, so the first
// retry (attempts=1) waits backoffBase seconds, the second
// backoffBase^2, and so on.
//
// Unlike the jittered, capped backoff a concurrent worker pool might
// use, this formula has no randomization and no ceiling: the sequence
// is fixed so operators can predict exactly when a job retries next.
func nextRetryDelay(backoffBase int, attempts uint32) time.Duration {
	seconds := math.Pow(float64(backoffBase), float64(attempts))
	return time.Duration(seconds * float64(time.Second))
}
