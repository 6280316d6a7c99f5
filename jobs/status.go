// SPDX-License-Identifier: AGPL-3.0-only
package jobs

import "fmt"

// Status is the lifecycle position of a job within a single run.
//
// The zero value equals BlockedStatus; every job is seeded with either
// Pending or Blocked before the scheduler's worker pool starts.
type Status struct {
	kind   statusKind
	before string
	after  string
}

type statusKind int

const (
	// Blocked means some prerequisite has not yet reached a done status.
	Blocked statusKind = iota
	// Pending means the job is ready to run but has not been taken by a worker.
	Pending
	// InProgress means a worker has taken the job and is executing it.
	InProgress
	// Done is a generic success with no before/after detail.
	Done
	// Changed is a success that observed a state transition.
	Changed
	// NoChange is a success that observed no change; carries a detail string.
	NoChange
	// Skipped means When() evaluated false; this is always terminal.
	Skipped
)

// BlockedStatus, PendingStatus, InProgressStat, DoneStatus and
// SkippedStatus are the payload-less statuses.
var (
	BlockedStatus  = Status{kind: Blocked}
	PendingStatus  = Status{kind: Pending}
	InProgressStat = Status{kind: InProgress}
	DoneStatus     = Status{kind: Done}
	SkippedStatus  = Status{kind: Skipped}
)

// NewChanged builds a Changed status carrying the before/after description.
func NewChanged(before, after string) Status {
	return Status{kind: Changed, before: before, after: after}
}

// NewNoChange builds a NoChange status carrying the detail description.
func NewNoChange(detail string) Status {
	return Status{kind: NoChange, after: detail}
}

// Equal reports whether two statuses have the same tag and payload.
func (s Status) Equal(other Status) bool {
	return s.kind == other.kind && s.before == other.before && s.after == other.after
}

// IsDone reports whether s represents a successful, completed job:
// Done, Changed, or NoChange.
func (s Status) IsDone() bool {
	switch s.kind {
	case Done, Changed, NoChange:
		return true
	default:
		return false
	}
}

// IsSettled reports whether s is a status from which no further transition
// happens within the current run: any done status, Blocked, or Skipped.
// An error is always settled (see Result.IsSettled).
func (s Status) IsSettled() bool {
	if s.IsDone() {
		return true
	}
	switch s.kind {
	case Blocked, Skipped:
		return true
	default:
		return false
	}
}

// IsChanged reports whether s is a Changed status specifically, as
// opposed to Done or NoChange — used to pick status-line styling.
func (s Status) IsChanged() bool {
	return s.kind == Changed
}

func (s Status) String() string {
	switch s.kind {
	case Blocked:
		return "blocked"
	case Pending:
		return "pending"
	case InProgress:
		return "in progress"
	case Done:
		return "done"
	case Changed:
		return fmt.Sprintf("changed (%s -> %s)", s.before, s.after)
	case NoChange:
		return fmt.Sprintf("no change (%s)", s.after)
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Result is the outcome of attempting to read or settle a job's status:
// either a Status, or an execution error. Results are what the scheduler
// stores in its status map.
type Result struct {
	status Status
	err    error
}

// Ok wraps a Status as a successful Result.
func Ok(s Status) Result { return Result{status: s} }

// Err wraps an error as a failed Result.
func Err(err error) Result { return Result{err: err} }

// Status returns the wrapped status and whether the result was an error.
func (r Result) Status() (Status, bool) {
	if r.err != nil {
		return Status{}, false
	}
	return r.status, true
}

// Error returns the wrapped error, or nil if the result was a status.
func (r Result) Error() error { return r.err }

// IsDone reports whether this result is a successfully-done status.
func (r Result) IsDone() bool {
	return r.err == nil && r.status.IsDone()
}

// IsSettled reports whether this result is settled: any error, or a
// settled status.
func (r Result) IsSettled() bool {
	if r.err != nil {
		return true
	}
	return r.status.IsSettled()
}

// Equal reports whether this result equals a given status (never true
// for error results).
func (r Result) Equal(s Status) bool {
	return r.err == nil && r.status.Equal(s)
}

func (r Result) String() string {
	if r.err != nil {
		return fmt.Sprintf("error: %s", r.err)
	}
	return r.status.String()
}
