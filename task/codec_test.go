package task

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskRecordRoundTrip(t *testing.T) {
	updated := time.Date(2024, time.March, 2, 9, 30, 0, 0, time.UTC)
	spent := int64(125)
	original := Task{
		ID:          "1f0e8a9c-7a45-4f2b-9dd0-3f6b2b8f4a11",
		Description: "refactor the parser\n\nsplit lexing from evaluation",
		Priority:    PriorityHigh,
		Scope:       "parser",
		Type:        "refactor",
		Status:      StatusTodo,
		CreatedAt:   time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:   &updated,
		TimeSpent:   &spent,
	}

	data, err := EncodeTask(original)
	require.NoError(t, err)

	decoded, err := DecodeTask(data)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestEncodeTaskOmitsUnsetOptionals(t *testing.T) {
	data, err := EncodeTask(Task{
		ID:          "a",
		Description: "minimal",
		Priority:    PriorityNormal,
		Status:      StatusTodo,
		CreatedAt:   time.Now(),
	})
	require.NoError(t, err)

	record := string(data)
	assert.NotContains(t, record, "scope")
	assert.NotContains(t, record, "task_type")
	assert.NotContains(t, record, "updated_at")
	assert.NotContains(t, record, "completed_at")
	assert.NotContains(t, record, "time_spent")
}

func TestEncodeTaskUsesLongEnumNames(t *testing.T) {
	data, err := EncodeTask(Task{
		ID:          "a",
		Description: "enum rendering",
		Priority:    PriorityUrgent,
		Status:      StatusAborted,
		CreatedAt:   time.Now(),
	})
	require.NoError(t, err)

	record := string(data)
	assert.Contains(t, record, `priority = "urgent"`)
	assert.Contains(t, record, `status = "aborted"`)
}

func TestDecodeTaskAcceptsShortEnumAliases(t *testing.T) {
	record := strings.Join([]string{
		`id = "b"`,
		`description = "short aliases"`,
		`priority = "u"`,
		`status = "d"`,
		`created_at = 2024-03-01T12:00:00Z`,
	}, "\n")

	decoded, err := DecodeTask([]byte(record))
	require.NoError(t, err)
	assert.Equal(t, PriorityUrgent, decoded.Priority)
	assert.Equal(t, StatusDone, decoded.Status)
}

func TestDecodeTaskRejectsUnknownKeys(t *testing.T) {
	record := strings.Join([]string{
		`id = "c"`,
		`description = "has a stray key"`,
		`priority = "low"`,
		`status = "todo"`,
		`created_at = 2024-03-01T12:00:00Z`,
		`favourite_colour = "green"`,
	}, "\n")

	_, err := DecodeTask([]byte(record))
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestDecodeTaskRejectsBadEnum(t *testing.T) {
	record := strings.Join([]string{
		`id = "d"`,
		`description = "bad status"`,
		`priority = "low"`,
		`status = "paused"`,
		`created_at = 2024-03-01T12:00:00Z`,
	}, "\n")

	_, err := DecodeTask([]byte(record))
	assert.Error(t, err)
}

func TestActiveTaskRoundTrip(t *testing.T) {
	original := ActiveTask{
		TaskID:    "1f0e8a9c-7a45-4f2b-9dd0-3f6b2b8f4a11",
		StartedAt: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC),
	}

	data, err := EncodeActiveTask(original)
	require.NoError(t, err)
	assert.Contains(t, string(data), "task_id")
	assert.Contains(t, string(data), "started_at")

	decoded, err := DecodeActiveTask(data)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}
