package task

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rutd/rutd/internal/git"
)

// Manager exposes the user-level task operations. It composes the store,
// the active-task slot, and the git client, and enforces the status
// transition rules.
type Manager struct {
	store  *Store
	slot   *ActiveSlot
	git    *git.Client
	logger *slog.Logger

	// now is the clock source, replaceable in tests.
	now func() time.Time
}

// NewManager creates a manager over the given task directory and
// active-task file.
func NewManager(taskDir, activeTaskPath string, client *git.Client) *Manager {
	return &Manager{
		store:  NewStore(taskDir, client),
		slot:   NewActiveSlot(activeTaskPath),
		git:    client,
		logger: slog.With("target", "manager"),
		now:    time.Now,
	}
}

// Store exposes the underlying store for read-side helpers such as shell
// completion.
func (m *Manager) Store() *Store {
	return m.store
}

// Add creates a new todo task and returns it.
func (m *Manager) Add(description string, priority Priority, scope, taskType string) (Task, error) {
	t := Task{
		ID:          uuid.NewString(),
		Description: description,
		Priority:    priority,
		Scope:       scope,
		Type:        taskType,
		Status:      StatusTodo,
		CreatedAt:   m.now(),
	}
	if err := m.store.Save(t, git.ActionCreate, summarize(description)); err != nil {
		return Task{}, err
	}
	m.logger.Info("added task", "id", t.ID)
	return t, nil
}

// List returns the tasks matching the filter in the given sort order.
// A nil sort spec applies the default order.
func (m *Manager) List(f Filter, opts SortOptions) ([]Task, error) {
	tasks, err := m.store.LoadAll()
	if err != nil {
		return nil, err
	}
	matched := f.Apply(tasks)
	opts.Sort(matched)
	return matched, nil
}

// MarkDone transitions a todo task to done, accruing any running session.
func (m *Manager) MarkDone(idOrPrefix string) (Task, error) {
	t, err := m.store.Load(idOrPrefix)
	if err != nil {
		return Task{}, err
	}
	switch t.Status {
	case StatusDone:
		return Task{}, fmt.Errorf("%w: %s", ErrAlreadyCompleted, shortID(t.ID))
	case StatusAborted:
		return Task{}, fmt.Errorf("%w: %s", ErrAlreadyAborted, shortID(t.ID))
	}

	now := m.now()
	clearSlot, err := m.accrueIfActive(&t, now)
	if err != nil {
		return Task{}, err
	}

	t.Status = StatusDone
	t.UpdatedAt = &now
	t.CompletedAt = &now
	if err := m.store.Save(t, git.ActionFinish, summarize(t.Description)); err != nil {
		return Task{}, err
	}
	if clearSlot {
		if err := m.slot.Clear(); err != nil {
			return Task{}, err
		}
	}
	m.logger.Info("finished task", "id", t.ID)
	return t, nil
}

// Start begins a timed work session on a todo task. Only one task can be
// active at a time.
func (m *Manager) Start(idOrPrefix string) (Task, error) {
	active, err := m.slot.Load()
	if err != nil {
		return Task{}, err
	}
	if active != nil {
		current, loadErr := m.store.Load(active.TaskID)
		if loadErr != nil {
			return Task{}, fmt.Errorf("%w: %s", ErrAlreadyActive, shortID(active.TaskID))
		}
		return Task{}, fmt.Errorf("%w: %s %q", ErrAlreadyActive, shortID(current.ID), summarize(current.Description))
	}

	t, err := m.store.Load(idOrPrefix)
	if err != nil {
		return Task{}, err
	}
	switch t.Status {
	case StatusDone:
		return Task{}, fmt.Errorf("%w: %s", ErrCannotStartCompleted, shortID(t.ID))
	case StatusAborted:
		return Task{}, fmt.Errorf("%w: %s", ErrCannotStartAborted, shortID(t.ID))
	}

	if err := m.slot.Save(ActiveTask{TaskID: t.ID, StartedAt: m.now()}); err != nil {
		return Task{}, err
	}
	m.logger.Info("started task", "id", t.ID)
	return t, nil
}

// Stop ends the current work session, accruing elapsed time into the task.
// The task stays todo.
func (m *Manager) Stop() (Task, error) {
	active, err := m.slot.Load()
	if err != nil {
		return Task{}, err
	}
	if active == nil {
		return Task{}, ErrNoActiveTask
	}

	t, err := m.store.Load(active.TaskID)
	if err != nil {
		return Task{}, err
	}

	now := m.now()
	t.AddSeconds(elapsedSeconds(active.StartedAt, now))
	t.UpdatedAt = &now
	if err := m.store.Save(t, git.ActionUpdate, summarize(t.Description)); err != nil {
		return Task{}, err
	}
	if err := m.slot.Clear(); err != nil {
		return Task{}, err
	}
	m.logger.Info("stopped task", "id", t.ID, "time_spent", derefSeconds(t.TimeSpent))
	return t, nil
}

// Abort cancels a task. With an empty idOrPrefix the active task is
// aborted; either way a running session on the task is accrued first.
func (m *Manager) Abort(idOrPrefix string) (Task, error) {
	if idOrPrefix == "" {
		active, err := m.slot.Load()
		if err != nil {
			return Task{}, err
		}
		if active == nil {
			return Task{}, ErrNoActiveTask
		}
		idOrPrefix = active.TaskID
	}

	t, err := m.store.Load(idOrPrefix)
	if err != nil {
		return Task{}, err
	}
	switch t.Status {
	case StatusAborted:
		return Task{}, fmt.Errorf("%w: %s", ErrAlreadyAborted, shortID(t.ID))
	case StatusDone:
		return Task{}, fmt.Errorf("%w: %s", ErrCannotAbortCompleted, shortID(t.ID))
	}

	now := m.now()
	clearSlot, err := m.accrueIfActive(&t, now)
	if err != nil {
		return Task{}, err
	}

	t.Status = StatusAborted
	t.UpdatedAt = &now
	t.CompletedAt = &now
	if err := m.store.Save(t, git.ActionCancel, summarize(t.Description)); err != nil {
		return Task{}, err
	}
	if clearSlot {
		if err := m.slot.Clear(); err != nil {
			return Task{}, err
		}
	}
	m.logger.Info("aborted task", "id", t.ID)
	return t, nil
}

// Edit hands the task description to the display's editor and saves the
// result when it actually changed.
func (m *Manager) Edit(idOrPrefix string, display Display) (Task, error) {
	t, err := m.store.Load(idOrPrefix)
	if err != nil {
		return Task{}, err
	}

	replacement, changed, err := display.Edit(t.Description)
	if err != nil {
		return Task{}, fmt.Errorf("edit description: %w", err)
	}
	if !changed || strings.TrimSpace(replacement) == "" ||
		strings.TrimSpace(replacement) == strings.TrimSpace(t.Description) {
		return t, nil
	}

	now := m.now()
	t.Description = replacement
	t.UpdatedAt = &now
	if err := m.store.Save(t, git.ActionUpdate, summarize(t.Description)); err != nil {
		return Task{}, err
	}
	m.logger.Info("edited task", "id", t.ID)
	return t, nil
}

// Clean deletes every task matching the filter in one batch, asking the
// display for confirmation unless forced. Returns the number deleted.
func (m *Manager) Clean(f Filter, force bool, display Display) (int, error) {
	matched, err := m.List(f, nil)
	if err != nil {
		return 0, err
	}
	if len(matched) == 0 {
		return 0, nil
	}

	if !force {
		ok, err := display.Confirm(fmt.Sprintf("Delete %d task(s)?", len(matched)))
		if err != nil {
			return 0, fmt.Errorf("confirm deletion: %w", err)
		}
		if !ok {
			return 0, nil
		}
	}

	ids := make([]string, 0, len(matched))
	for _, t := range matched {
		ids = append(ids, t.ID)
	}
	if err := m.store.Delete(ids); err != nil {
		return 0, err
	}
	m.logger.Info("cleaned tasks", "count", len(ids))
	return len(ids), nil
}

// CloneRepo clones a remote task repository into the task directory.
func (m *Manager) CloneRepo(url string) error {
	return m.git.Clone(m.store.Dir(), url)
}

// Sync reconciles the task repository with its remote.
func (m *Manager) Sync(pref git.Preference) error {
	if err := m.git.OpenOrInit(m.store.Dir()); err != nil {
		return err
	}
	return m.git.Sync(m.store.Dir(), pref)
}

// accrueIfActive folds a running session on t into its time counter.
// Returns true when the caller must clear the slot after saving.
func (m *Manager) accrueIfActive(t *Task, now time.Time) (bool, error) {
	active, err := m.slot.Load()
	if err != nil {
		return false, err
	}
	if active == nil || active.TaskID != t.ID {
		return false, nil
	}
	t.AddSeconds(elapsedSeconds(active.StartedAt, now))
	return true, nil
}

func elapsedSeconds(from, to time.Time) int64 {
	seconds := int64(to.Sub(from).Seconds())
	if seconds < 0 {
		return 0
	}
	return seconds
}

func derefSeconds(seconds *int64) int64 {
	if seconds == nil {
		return 0
	}
	return *seconds
}

// summarize reduces a description to its first line for commit messages
// and error text.
func summarize(description string) string {
	line, _, _ := strings.Cut(description, "\n")
	return strings.TrimSpace(line)
}

// shortID returns the display form of a task id, its first eight characters.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
