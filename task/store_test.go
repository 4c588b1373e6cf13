package task

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rutd/rutd/internal/git"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	requireGit(t)
	return NewStore(filepath.Join(t.TempDir(), "tasks"), git.New(git.Credentials{}))
}

func sampleTask(id, description string) Task {
	return Task{
		ID:          id,
		Description: description,
		Priority:    PriorityNormal,
		Status:      StatusTodo,
		CreatedAt:   time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestStoreSaveAndLoad(t *testing.T) {
	store := newTestStore(t)

	saved := sampleTask("1f0e8a9c-7a45-4f2b-9dd0-3f6b2b8f4a11", "write the parser")
	saved.Scope = "parser"
	saved.Type = "feat"
	require.NoError(t, store.Save(saved, git.ActionCreate, "write the parser"))

	loaded, err := store.Load(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)

	byPrefix, err := store.Load(saved.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, saved.ID, byPrefix.ID)
}

func TestStoreSaveCommits(t *testing.T) {
	store := newTestStore(t)
	client := git.New(git.Credentials{})

	saved := sampleTask("2b1c3d4e-0000-4000-8000-000000000001", "first task")
	saved.Scope = "backend"
	require.NoError(t, store.Save(saved, git.ActionCreate, "first task"))

	message, err := client.HeadMessage(store.Dir())
	require.NoError(t, err)
	assert.Equal(t, "create(backend|-): first task\n\n"+saved.ID, message)

	count, err := client.CommitCount(store.Dir())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStoreLoadMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Load("deadbeef")
	assert.ErrorIs(t, err, ErrTaskNotFound)

	_, err = store.Load("")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestStoreLoadAmbiguousPrefix(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save(sampleTask("aaa10000-0000-4000-8000-000000000001", "one"), git.ActionCreate, "one"))
	require.NoError(t, store.Save(sampleTask("aaa20000-0000-4000-8000-000000000002", "two"), git.ActionCreate, "two"))

	_, err := store.Load("aaa")
	assert.ErrorIs(t, err, ErrAmbiguousIDPrefix)

	// A longer prefix disambiguates.
	loaded, err := store.Load("aaa1")
	require.NoError(t, err)
	assert.Equal(t, "one", loaded.Description)
}

func TestStoreLoadAllOnMissingDir(t *testing.T) {
	store := newTestStore(t)

	tasks, err := store.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestStoreLoadAllSkipsForeignFiles(t *testing.T) {
	store := newTestStore(t)

	good := sampleTask("bbb10000-0000-4000-8000-000000000001", "keep me")
	require.NoError(t, store.Save(good, git.ActionCreate, "keep me"))

	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "junk.toml"), []byte("= not toml ="), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "notes.txt"), []byte("not a record"), 0o644))

	tasks, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, good.ID, tasks[0].ID)
}

func TestStoreDelete(t *testing.T) {
	store := newTestStore(t)
	client := git.New(git.Credentials{})

	first := sampleTask("ccc10000-0000-4000-8000-000000000001", "first")
	second := sampleTask("ccc20000-0000-4000-8000-000000000002", "second")
	require.NoError(t, store.Save(first, git.ActionCreate, "first"))
	require.NoError(t, store.Save(second, git.ActionCreate, "second"))

	require.NoError(t, store.Delete([]string{first.ID, second.ID}))

	tasks, err := store.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, tasks)

	message, err := client.HeadMessage(store.Dir())
	require.NoError(t, err)
	assert.Equal(t, "delete(-|-): remove tasks\n\n"+first.ID+"\n"+second.ID, message)
}

func TestStoreDeleteUnknownID(t *testing.T) {
	store := newTestStore(t)

	kept := sampleTask("ddd10000-0000-4000-8000-000000000001", "kept")
	require.NoError(t, store.Save(kept, git.ActionCreate, "kept"))

	err := store.Delete([]string{"deadbeef"})
	assert.ErrorIs(t, err, ErrTaskNotFound)

	tasks, err := store.LoadAll()
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestStoreDeleteNothing(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Delete(nil))
}
