package task

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActiveSlotRoundTrip(t *testing.T) {
	slot := NewActiveSlot(filepath.Join(t.TempDir(), "state", "active_task.toml"))

	active := ActiveTask{
		TaskID:    "1f0e8a9c-7a45-4f2b-9dd0-3f6b2b8f4a11",
		StartedAt: time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, slot.Save(active))

	loaded, err := slot.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, active, *loaded)
}

func TestActiveSlotEmpty(t *testing.T) {
	slot := NewActiveSlot(filepath.Join(t.TempDir(), "active_task.toml"))

	loaded, err := slot.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)

	assert.NoError(t, slot.Clear(), "clearing an empty slot is a no-op")
}

func TestActiveSlotClear(t *testing.T) {
	slot := NewActiveSlot(filepath.Join(t.TempDir(), "active_task.toml"))

	require.NoError(t, slot.Save(ActiveTask{TaskID: "x", StartedAt: time.Now()}))
	require.NoError(t, slot.Clear())

	loaded, err := slot.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestActiveSlotSaveOverwrites(t *testing.T) {
	slot := NewActiveSlot(filepath.Join(t.TempDir(), "active_task.toml"))

	first := ActiveTask{TaskID: "first", StartedAt: time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)}
	second := ActiveTask{TaskID: "second", StartedAt: time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)}
	require.NoError(t, slot.Save(first))
	require.NoError(t, slot.Save(second))

	loaded, err := slot.Load()
	require.NoError(t, err)
	assert.Equal(t, second, *loaded)
}
