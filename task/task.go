// Package task implements a git-backed personal task tracker.
//
// Tasks are stored one-per-file as TOML records inside a directory that is
// itself a git repository; every mutation produces a commit, so the full
// history of the tracker is recoverable and syncable with a remote.
//
// The public API mirrors the CLI commands:
//   - Add, MarkDone, Edit, Start, Stop, Abort for the task lifecycle
//   - List for querying with filters and sort criteria
//   - Clean for batch deletion
//   - CloneRepo, Sync for remote synchronization
package task

import "time"

// Task represents a single tracked task.
type Task struct {
	// ID is a unique identifier (UUID string).
	ID string `toml:"id"`

	// Description is the free-form text of the task, possibly multi-line.
	Description string `toml:"description"`

	// Priority is the importance level of the task.
	Priority Priority `toml:"priority"`

	// Scope is an optional project-like tag (empty when unset).
	Scope string `toml:"scope,omitempty"`

	// Type is an optional category tag (empty when unset).
	Type string `toml:"task_type,omitempty"`

	// Status is the current lifecycle state.
	Status Status `toml:"status"`

	// CreatedAt is when the task was created. Never mutated afterwards.
	CreatedAt time.Time `toml:"created_at"`

	// UpdatedAt is when the task content last changed (nil until the first
	// mutation after creation).
	UpdatedAt *time.Time `toml:"updated_at,omitempty"`

	// CompletedAt is when the task was marked done or aborted (nil while
	// the task is still todo).
	CompletedAt *time.Time `toml:"completed_at,omitempty"`

	// TimeSpent is the cumulative seconds accrued across work sessions
	// (nil until the first session ends).
	TimeSpent *int64 `toml:"time_spent,omitempty"`
}

// ActiveTask records which task is currently being timed.
// At most one exists, stored in a single file outside the task directory.
type ActiveTask struct {
	// TaskID refers to a task in status todo.
	TaskID string `toml:"task_id"`

	// StartedAt is when the current work session began.
	StartedAt time.Time `toml:"started_at"`
}

// AddSeconds accrues elapsed seconds into the task's cumulative counter.
// Negative amounts are ignored so a skewed clock can never reduce the total.
func (t *Task) AddSeconds(seconds int64) {
	if seconds < 0 {
		return
	}
	total := seconds
	if t.TimeSpent != nil {
		total += *t.TimeSpent
	}
	t.TimeSpent = &total
}
