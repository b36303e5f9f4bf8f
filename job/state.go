package job

import "fmt"

// State represents the current lifecycle state of a Job.
//
// The state machine is:
//
//	Pending    -> Processing
//	Processing -> Completed
//	Processing -> Failed       (retry budget remains)
//	Failed     -> Processing   (re-acquired after next_retry_at)
//	Processing -> Dead         (retry budget exhausted)
//	Dead       -> Pending      (via DLQRetry)
//
// Unknown is reserved as a zero value and may be used to indicate an
// unspecified state in filtering contexts (e.g. List with no filter).
type State uint8

const (
	// Unknown represents an unspecified or invalid job state.
	// It is the zero value of State.
	Unknown State = iota

	// Pending indicates the job is eligible for acquisition: either
	// freshly enqueued or returned from the dead-letter queue by
	// DLQRetry. A job awaiting a retry stays Failed until re-acquired.
	Pending

	// Processing indicates a worker currently holds the job. LockedBy
	// and LockedAt are non-nil while in this state.
	Processing

	// Completed indicates the job finished with exit code 0. Terminal:
	// not mutated again except by explicit administrative action.
	Completed

	// Failed indicates the job's last attempt did not succeed but the
	// retry budget is not exhausted. NextRetryAt is non-nil.
	Failed

	// Dead indicates the job exhausted its retry budget. Terminal:
	// only DLQRetry returns it to Pending.
	Dead
)

func stateToString(s State) string {
	switch s {
	case Pending:
		return "pending"
	case Processing:
		return "processing"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	case Dead:
		return "dead"
	default:
		return "unknown"
	}
}

func stateFromString(s string) (State, error) {
	switch s {
	case "pending":
		return Pending, nil
	case "processing":
		return Processing, nil
	case "completed":
		return Completed, nil
	case "failed":
		return Failed, nil
	case "dead":
		return Dead, nil
	case "unknown", "":
		return Unknown, nil
	default:
		return 0, fmt.Errorf("unknown job state: %s", s)
	}
}

// ParseState converts a string representation of a state into a State
// value. Recognized values are "pending", "processing", "completed",
// "failed", "dead" and "unknown"; the empty string also yields Unknown.
// An error is returned for anything else.
func ParseState(s string) (State, error) {
	return stateFromString(s)
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(stateToString(s)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	state, err := stateFromString(string(text))
	if err != nil {
		return err
	}
	*s = state
	return nil
}

// String returns the canonical string representation of the state.
func (s State) String() string {
	return stateToString(s)
}
