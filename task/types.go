package task

import (
	"fmt"
	"strings"
)

// Priority represents the importance level of a task.
// The numeric order is the sort order: low sorts before urgent.
type Priority int

const (
	// PriorityLow is for tasks that can wait indefinitely.
	PriorityLow Priority = iota

	// PriorityNormal is the default priority.
	PriorityNormal

	// PriorityHigh is for tasks that should be handled soon.
	PriorityHigh

	// PriorityUrgent is for tasks that need immediate attention.
	PriorityUrgent
)

// Priorities returns all valid priority values in ascending order.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent}
}

// priorityAliases maps each priority to the strings that parse to it.
// The first alias is the canonical rendering.
var priorityAliases = map[Priority][]string{
	PriorityLow:    {"low", "l"},
	PriorityNormal: {"normal", "n"},
	PriorityHigh:   {"high", "h"},
	PriorityUrgent: {"urgent", "u"},
}

// String returns the canonical lowercase name for the priority.
func (p Priority) String() string {
	if aliases, ok := priorityAliases[p]; ok {
		return aliases[0]
	}
	return "unknown"
}

// ParsePriority parses a short or long priority alias, case-insensitively.
func ParsePriority(s string) (Priority, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, p := range Priorities() {
		for _, alias := range priorityAliases[p] {
			if alias == needle {
				return p, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidPriority, s)
}

// MarshalText renders the canonical name, used by the record codec.
func (p Priority) MarshalText() ([]byte, error) {
	if _, ok := priorityAliases[p]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPriority, int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText parses any alias, used by the record codec.
func (p *Priority) UnmarshalText(text []byte) error {
	parsed, err := ParsePriority(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Status represents the lifecycle state of a task.
// The numeric order is the sort order: aborted sorts before todo.
type Status int

const (
	// StatusAborted indicates the task was cancelled without completion.
	StatusAborted Status = iota

	// StatusDone indicates the task was completed.
	StatusDone

	// StatusTodo indicates the task is still open.
	StatusTodo
)

// Statuses returns all valid status values in ascending sort order.
func Statuses() []Status {
	return []Status{StatusAborted, StatusDone, StatusTodo}
}

var statusAliases = map[Status][]string{
	StatusAborted: {"aborted", "a"},
	StatusDone:    {"done", "d"},
	StatusTodo:    {"todo", "t"},
}

// String returns the canonical lowercase name for the status.
func (s Status) String() string {
	if aliases, ok := statusAliases[s]; ok {
		return aliases[0]
	}
	return "unknown"
}

// ParseStatus parses a short or long status alias, case-insensitively.
func ParseStatus(str string) (Status, error) {
	needle := strings.ToLower(strings.TrimSpace(str))
	for _, s := range Statuses() {
		for _, alias := range statusAliases[s] {
			if alias == needle {
				return s, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidStatus, str)
}

// IsCompleted reports whether the status is a terminal state.
func (s Status) IsCompleted() bool {
	return s == StatusDone || s == StatusAborted
}

// MarshalText renders the canonical name, used by the record codec.
func (s Status) MarshalText() ([]byte, error) {
	if _, ok := statusAliases[s]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStatus, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText parses any alias, used by the record codec.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
