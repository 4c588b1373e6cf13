package task

import "errors"

var (
	// ErrTaskNotFound is returned when no task matches an id prefix.
	ErrTaskNotFound = errors.New("task not found")

	// ErrAmbiguousIDPrefix is returned when an id prefix matches multiple tasks.
	ErrAmbiguousIDPrefix = errors.New("ambiguous task id prefix")

	// ErrAlreadyCompleted is returned when marking an already-done task done.
	ErrAlreadyCompleted = errors.New("task is already done")

	// ErrAlreadyAborted is returned when aborting an already-aborted task.
	ErrAlreadyAborted = errors.New("task is already aborted")

	// ErrCannotStartCompleted is returned when starting a done task.
	ErrCannotStartCompleted = errors.New("cannot start a done task")

	// ErrCannotStartAborted is returned when starting an aborted task.
	ErrCannotStartAborted = errors.New("cannot start an aborted task")

	// ErrCannotAbortCompleted is returned when aborting a done task.
	ErrCannotAbortCompleted = errors.New("cannot abort a done task")

	// ErrAlreadyActive is returned when starting a task while another is active.
	ErrAlreadyActive = errors.New("another task is already active")

	// ErrNoActiveTask is returned when stop or abort is requested with an empty slot.
	ErrNoActiveTask = errors.New("no active task")

	// ErrInvalidPriority is returned when a priority alias doesn't parse.
	ErrInvalidPriority = errors.New("invalid priority")

	// ErrInvalidStatus is returned when a status alias doesn't parse.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidSortSpec is returned when a sort criteria spec doesn't parse.
	ErrInvalidSortSpec = errors.New("invalid sort spec")

	// ErrUnknownField is returned when a record contains unrecognized keys.
	ErrUnknownField = errors.New("record contains unknown fields")
)
