package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rutd/rutd/internal/daterange"
)

func ptr[T any](v T) *T { return &v }

func rangeBetween(from, to time.Time) daterange.Range {
	return daterange.Range{From: &from, To: &to}
}

func TestFilterZeroMatchesEverything(t *testing.T) {
	var f Filter
	assert.True(t, f.Matches(Task{Description: "anything", CreatedAt: time.Now()}))
	assert.True(t, f.Matches(Task{Status: StatusAborted}))
}

func TestFilterPriority(t *testing.T) {
	f := Filter{Priority: ptr(PriorityHigh)}
	assert.True(t, f.Matches(Task{Priority: PriorityHigh}))
	assert.False(t, f.Matches(Task{Priority: PriorityLow}))
}

func TestFilterStatus(t *testing.T) {
	f := Filter{Status: ptr(StatusDone)}
	assert.True(t, f.Matches(Task{Status: StatusDone}))
	assert.False(t, f.Matches(Task{Status: StatusTodo}))
}

func TestFilterScope(t *testing.T) {
	f := Filter{Scope: ptr("backend")}
	assert.True(t, f.Matches(Task{Scope: "backend"}))
	assert.False(t, f.Matches(Task{Scope: "frontend"}))
	assert.False(t, f.Matches(Task{}), "a task without a scope never matches a scope filter")
}

func TestFilterType(t *testing.T) {
	f := Filter{Type: ptr("bugfix")}
	assert.True(t, f.Matches(Task{Type: "bugfix"}))
	assert.False(t, f.Matches(Task{}), "a task without a type never matches a type filter")
}

func TestFilterCreationTime(t *testing.T) {
	from := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	f := Filter{CreationTime: rangeBetween(from, to)}

	assert.True(t, f.Matches(Task{CreatedAt: from}), "lower bound is inclusive")
	assert.False(t, f.Matches(Task{CreatedAt: to}), "upper bound is exclusive")
	assert.True(t, f.Matches(Task{CreatedAt: from.AddDate(0, 0, 15)}))
}

func TestFilterUpdateTimeRequiresUpdatedAt(t *testing.T) {
	from := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	f := Filter{UpdateTime: rangeBetween(from, from.AddDate(0, 1, 0))}

	inside := from.AddDate(0, 0, 3)
	assert.True(t, f.Matches(Task{UpdatedAt: &inside}))
	assert.False(t, f.Matches(Task{}), "a never-updated task fails an update range")
}

func TestFilterCompletionTimeRequiresCompletedAt(t *testing.T) {
	from := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	f := Filter{CompletionTime: rangeBetween(from, from.AddDate(0, 1, 0))}

	inside := from.AddDate(0, 0, 3)
	assert.True(t, f.Matches(Task{CompletedAt: &inside}))
	assert.False(t, f.Matches(Task{}), "a never-completed task fails a completion range")
}

func TestFilterFuzzy(t *testing.T) {
	task := Task{Description: "Fix login page CSS"}

	assert.True(t, Filter{Fuzzy: "login"}.Matches(task))
	assert.True(t, Filter{Fuzzy: "flpc"}.Matches(task), "subsequence matches")
	assert.False(t, Filter{Fuzzy: "database"}.Matches(task))
	assert.True(t, Filter{Fuzzy: ""}.Matches(task), "empty query matches everything")
}

func TestFilterConjunction(t *testing.T) {
	task := Task{Priority: PriorityHigh, Scope: "backend", Status: StatusTodo}

	both := Filter{Priority: ptr(PriorityHigh), Scope: ptr("backend")}
	assert.True(t, both.Matches(task))

	oneOff := Filter{Priority: ptr(PriorityHigh), Scope: ptr("frontend")}
	assert.False(t, oneOff.Matches(task), "every set predicate must hold")
}

func TestFilterApplyPreservesOrder(t *testing.T) {
	tasks := []Task{
		{ID: "1", Scope: "a"},
		{ID: "2", Scope: "b"},
		{ID: "3", Scope: "a"},
		{ID: "4", Scope: "a"},
	}

	got := Filter{Scope: ptr("a")}.Apply(tasks)

	ids := make([]string, 0, len(got))
	for _, task := range got {
		ids = append(ids, task.ID)
	}
	assert.Equal(t, []string{"1", "3", "4"}, ids)
}
