package task

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Direction orders a sort criterion ascending or descending.
type Direction int

const (
	// Ascending sorts smallest first.
	Ascending Direction = iota

	// Descending reverses the criterion's comparison.
	Descending
)

// Criterion names a task attribute to sort by.
type Criterion int

const (
	// ByPriority orders low < normal < high < urgent.
	ByPriority Criterion = iota

	// ByScope orders set scopes lexicographically before absent ones.
	ByScope

	// ByType orders set types lexicographically before absent ones.
	ByType

	// ByStatus orders aborted < done < todo.
	ByStatus

	// ByCreationTime orders by creation instant.
	ByCreationTime

	// ByUpdateTime orders by update instant, set before absent.
	ByUpdateTime

	// ByCompletionTime orders by completion instant, set before absent.
	ByCompletionTime

	// ByTimeSpent orders by accumulated seconds, set before absent.
	ByTimeSpent
)

var criterionNames = map[string]Criterion{
	"priority":        ByPriority,
	"scope":           ByScope,
	"type":            ByType,
	"status":          ByStatus,
	"created":         ByCreationTime,
	"creation-time":   ByCreationTime,
	"updated":         ByUpdateTime,
	"update-time":     ByUpdateTime,
	"completed":       ByCompletionTime,
	"completion-time": ByCompletionTime,
	"time-spent":      ByTimeSpent,
}

// SortOption pairs a criterion with a direction.
type SortOption struct {
	Criterion Criterion
	Direction Direction
}

// SortOptions is an ordered list of criteria compared lexicographically.
type SortOptions []SortOption

// DefaultSortOptions is the order used when the caller specifies none:
// open tasks first, most important first, grouped by scope, newest first.
func DefaultSortOptions() SortOptions {
	return SortOptions{
		{ByStatus, Descending},
		{ByPriority, Descending},
		{ByScope, Ascending},
		{ByCreationTime, Descending},
	}
}

// ParseSortOptions parses a comma-separated spec like
// "priority:desc,scope,created:asc" into sort options.
func ParseSortOptions(spec string) (SortOptions, error) {
	var opts SortOptions
	for _, field := range strings.Split(spec, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		name, direction, _ := strings.Cut(field, ":")
		criterion, ok := criterionNames[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("%w: unknown criterion %q", ErrInvalidSortSpec, name)
		}

		opt := SortOption{Criterion: criterion}
		switch strings.ToLower(direction) {
		case "", "asc", "ascending":
		case "desc", "descending":
			opt.Direction = Descending
		default:
			return nil, fmt.Errorf("%w: unknown direction %q", ErrInvalidSortSpec, direction)
		}
		opts = append(opts, opt)
	}
	if len(opts) == 0 {
		return nil, fmt.Errorf("%w: empty spec", ErrInvalidSortSpec)
	}
	return opts, nil
}

// Sort stably orders tasks by the criteria list. Tasks comparing equal on
// every criterion keep their input order.
func (opts SortOptions) Sort(tasks []Task) {
	criteria := opts
	if len(criteria) == 0 {
		criteria = DefaultSortOptions()
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		for _, opt := range criteria {
			cmp := compareBy(opt.Criterion, tasks[i], tasks[j])
			if opt.Direction == Descending {
				cmp = -cmp
			}
			if cmp != 0 {
				return cmp < 0
			}
		}
		return false
	})
}

func compareBy(criterion Criterion, a, b Task) int {
	switch criterion {
	case ByPriority:
		return compareInt(int(a.Priority), int(b.Priority))
	case ByScope:
		return compareOptionalString(a.Scope, b.Scope)
	case ByType:
		return compareOptionalString(a.Type, b.Type)
	case ByStatus:
		return compareInt(int(a.Status), int(b.Status))
	case ByCreationTime:
		return compareTime(a.CreatedAt, b.CreatedAt)
	case ByUpdateTime:
		return compareOptionalTime(a.UpdatedAt, b.UpdatedAt)
	case ByCompletionTime:
		return compareOptionalTime(a.CompletedAt, b.CompletedAt)
	case ByTimeSpent:
		return compareOptionalInt(a.TimeSpent, b.TimeSpent)
	}
	return 0
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// compareOptionalString orders set values lexicographically before absent
// ones (the empty string is absent).
func compareOptionalString(a, b string) int {
	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return 1
	case b == "":
		return -1
	}
	return strings.Compare(a, b)
}

func compareTime(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	}
	return 0
}

func compareOptionalTime(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return compareTime(*a, *b)
}

func compareOptionalInt(a, b *int64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	}
	return 0
}
