package task

import (
	"github.com/sahilm/fuzzy"

	"github.com/rutd/rutd/internal/daterange"
)

// Filter is the conjunction of optional predicates over a task.
// The zero filter matches everything.
type Filter struct {
	// Priority matches exactly when set.
	Priority *Priority

	// Scope matches exactly when set; a task without a scope never matches.
	Scope *string

	// Type matches exactly when set; a task without a type never matches.
	Type *string

	// Status matches exactly when set.
	Status *Status

	// CreationTime is a half-open interval over created_at.
	CreationTime daterange.Range

	// UpdateTime is a half-open interval over updated_at; tasks that were
	// never updated fail the predicate.
	UpdateTime daterange.Range

	// CompletionTime is a half-open interval over completed_at; tasks that
	// were never completed fail the predicate.
	CompletionTime daterange.Range

	// Fuzzy is matched loosely against the description, case-insensitively.
	// The empty query matches everything.
	Fuzzy string
}

// Matches reports whether the task satisfies every set predicate.
func (f Filter) Matches(t Task) bool {
	if f.Priority != nil && t.Priority != *f.Priority {
		return false
	}
	if f.Scope != nil && (t.Scope == "" || t.Scope != *f.Scope) {
		return false
	}
	if f.Type != nil && (t.Type == "" || t.Type != *f.Type) {
		return false
	}
	if f.Status != nil && t.Status != *f.Status {
		return false
	}
	if !f.CreationTime.IsZero() && !f.CreationTime.Contains(t.CreatedAt) {
		return false
	}
	if !f.UpdateTime.IsZero() {
		if t.UpdatedAt == nil || !f.UpdateTime.Contains(*t.UpdatedAt) {
			return false
		}
	}
	if !f.CompletionTime.IsZero() {
		if t.CompletedAt == nil || !f.CompletionTime.Contains(*t.CompletedAt) {
			return false
		}
	}
	if f.Fuzzy != "" {
		if len(fuzzy.Find(f.Fuzzy, []string{t.Description})) == 0 {
			return false
		}
	}
	return true
}

// Apply returns the tasks matching the filter, preserving input order.
func (f Filter) Apply(tasks []Task) []Task {
	matched := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Matches(t) {
			matched = append(matched, t)
		}
	}
	return matched
}
