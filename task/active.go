package task

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ActiveSlot is the single-occupancy file recording the currently-timed
// task. It lives outside the task directory so slot churn never produces
// commits in the task repository.
type ActiveSlot struct {
	path string
}

// NewActiveSlot creates a slot backed by the file at path.
func NewActiveSlot(path string) *ActiveSlot {
	return &ActiveSlot{path: path}
}

// Save writes the descriptor, overwriting any existing one.
func (s *ActiveSlot) Save(a ActiveTask) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create active-task directory: %w", err)
	}
	data, err := EncodeActiveTask(a)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("write active task: %w", err)
	}
	return nil
}

// Load returns the current descriptor, or nil when the slot is empty.
func (s *ActiveSlot) Load() (*ActiveTask, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read active task: %w", err)
	}
	a, err := DecodeActiveTask(data)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Clear empties the slot. Clearing an empty slot is a no-op.
func (s *ActiveSlot) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("clear active task: %w", err)
	}
	return nil
}
