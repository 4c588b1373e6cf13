package task

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/rutd/rutd/internal/git"
)

// Store persists task records as one TOML file per task inside a directory
// that is also the root of a git repository. Every mutation is committed.
type Store struct {
	dir    string
	git    *git.Client
	logger *slog.Logger
}

// NewStore creates a store over dir. The directory and its repository are
// created lazily on the first write, so read paths work against a store
// that does not exist yet.
func NewStore(dir string, client *git.Client) *Store {
	return &Store{
		dir:    dir,
		git:    client,
		logger: slog.With("target", "store"),
	}
}

// Dir returns the task directory.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) recordPath(id string) string {
	return filepath.Join(s.dir, id+RecordExt)
}

func (s *Store) ensureRepo() error {
	return s.git.OpenOrInit(s.dir)
}

// Save writes the task record (create-or-replace) and commits the change.
func (s *Store) Save(t Task, action git.Action, description string) error {
	if err := s.ensureRepo(); err != nil {
		return err
	}

	data, err := EncodeTask(t)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(s.recordPath(t.ID), data); err != nil {
		return fmt.Errorf("write task %s: %w", t.ID, err)
	}

	message := git.CommitMessage(action, t.Scope, t.Type, description, t.ID)
	if err := s.git.CommitAll(s.dir, message); err != nil {
		return err
	}

	s.logger.Debug("saved task", "id", t.ID, "action", string(action))
	return nil
}

// Load resolves an id prefix to exactly one task record.
func (s *Store) Load(idOrPrefix string) (Task, error) {
	paths, err := s.LocateAll(idOrPrefix)
	if err != nil {
		return Task{}, err
	}
	switch len(paths) {
	case 0:
		return Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, idOrPrefix)
	case 1:
	default:
		return Task{}, fmt.Errorf("%w: %s", ErrAmbiguousIDPrefix, idOrPrefix)
	}

	data, err := os.ReadFile(paths[0])
	if err != nil {
		return Task{}, fmt.Errorf("read task record: %w", err)
	}
	return DecodeTask(data)
}

// LoadAll reads every task record in the directory. Files that fail to
// decode are skipped; a missing directory yields an empty result.
func (s *Store) LoadAll() ([]Task, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read task directory: %w", err)
	}

	var tasks []Task
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), RecordExt) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			s.logger.Debug("skipping unreadable record", "file", entry.Name(), "error", err)
			continue
		}
		t, err := DecodeTask(data)
		if err != nil {
			s.logger.Debug("skipping undecodable record", "file", entry.Name(), "error", err)
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// LocateAll returns the paths of all records whose file stem starts with
// prefix. An empty prefix matches nothing.
func (s *Store) LocateAll(prefix string) ([]string, error) {
	if prefix == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read task directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, RecordExt) {
			continue
		}
		stem := strings.TrimSuffix(name, RecordExt)
		if strings.HasPrefix(stem, prefix) {
			paths = append(paths, filepath.Join(s.dir, name))
		}
	}
	return paths, nil
}

// Delete removes the given tasks (full ids, already resolved) and records
// the batch in a single commit listing every removed id.
func (s *Store) Delete(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := s.ensureRepo(); err != nil {
		return err
	}

	for _, id := range ids {
		// Load first so a bogus id fails the batch before anything is
		// removed, and so the id is known-good for the commit trailer.
		if _, err := s.Load(id); err != nil {
			return err
		}
		if err := os.Remove(s.recordPath(id)); err != nil {
			return fmt.Errorf("remove task %s: %w", id, err)
		}
	}

	message := git.CommitMessage(git.ActionDelete, "", "", "remove tasks", ids...)
	if err := s.git.CommitAll(s.dir, message); err != nil {
		return err
	}

	s.logger.Debug("deleted tasks", "count", len(ids))
	return nil
}

// writeFileAtomic writes data to path through a temp file and rename so a
// crash mid-write never leaves a truncated record.
func writeFileAtomic(path string, data []byte) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
