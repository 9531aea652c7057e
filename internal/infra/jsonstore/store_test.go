package jsonstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/FelipeCJSEP/todo/internal/domain"
	"github.com/FelipeCJSEP/todo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.json")
	return New(path, nil), path
}

func sampleTasks() []*domain.Task {
	created := time.Date(2025, 1, 2, 3, 4, 5, 123456789, time.UTC)
	closed := created.Add(2 * time.Hour)

	open := domain.NewTask(1, "Write report", "desc", "Alice", domain.PriorityHigh, created)
	done := domain.NewTask(2, "Ship <it> & \"go\"", "ünïcode ✓", "Bob", domain.PriorityLow, created)
	done.Status = domain.StatusCompleted
	done.UpdatedAt = closed
	done.ClosedAt = &closed
	return []*domain.Task{open, done}
}

func TestStore_LoadMissingFile(t *testing.T) {
	store, _ := newTestStore(t)

	tasks, err := store.Load()

	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestStore_SaveAndLoad_RoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	want := sampleTasks()

	require.NoError(t, store.Save(want))
	got, err := store.Load()

	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i], got[i])
	}
}

func TestStore_SaveEmpty(t *testing.T) {
	store, path := newTestStore(t)

	require.NoError(t, store.Save(nil))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(content))
}

func TestStore_SaveFormat(t *testing.T) {
	store, path := newTestStore(t)
	require.NoError(t, store.Save(sampleTasks()))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(content, &raw))
	require.Len(t, raw, 2)

	first := raw[0]
	assert.Equal(t, float64(1), first["id"])
	assert.Equal(t, "In Progress", first["status"])
	assert.Equal(t, "High", first["priority"])
	assert.Equal(t, "2025-01-02T03:04:05.123456789Z", first["created_at"])
	assert.Nil(t, first["closed_at"])
	assert.Contains(t, first, "closed_at")

	second := raw[1]
	assert.Equal(t, "Completed", second["status"])
	assert.Equal(t, "2025-01-02T05:04:05.123456789Z", second["closed_at"])

	// Four-space indentation, keys in canonical order, no HTML escaping
	assert.Contains(t, string(content), "[\n    {\n        \"id\": 1,\n        \"title\": \"Write report\",")
	assert.Contains(t, string(content), `"Ship <it> & \"go\""`)
	assert.Contains(t, string(content), "ünïcode ✓")
}

func TestStore_SaveReplacesContent(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Save(sampleTasks()))

	only := sampleTasks()[:1]
	require.NoError(t, store.Save(only))

	got, err := store.Load()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ID)
}

func TestStore_SaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data", "tasks.json")
	store := New(path, nil)

	require.NoError(t, store.Save(sampleTasks()))

	_, err := os.Stat(path)
	assert.NoError(t, err)
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")
}

func TestStore_SaveNotWritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))
	store := New(filepath.Join(blocker, "tasks.json"), nil)

	err := store.Save(sampleTasks())

	assert.ErrorIs(t, err, domain.ErrIOFailure)
}

func TestStore_LoadReadError(t *testing.T) {
	dir := t.TempDir()
	store := New(dir, nil) // a directory cannot be read as a file

	tasks, err := store.Load()

	assert.ErrorIs(t, err, domain.ErrIOFailure)
	assert.Nil(t, tasks)
}

func TestStore_LoadCorrupt(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", `not json`},
		{"json string", `"not json"`},
		{"object instead of array", `{"tasks": []}`},
		{"unknown status", `[{"id": 1, "title": "a", "description": "", "responsible": "", "status": "Done", "priority": "Low", "created_at": "2025-01-01T00:00:00Z", "updated_at": "2025-01-01T00:00:00Z", "closed_at": null}]`},
		{"unknown priority", `[{"id": 1, "title": "a", "description": "", "responsible": "", "status": "Completed", "priority": "Urgent", "created_at": "2025-01-01T00:00:00Z", "updated_at": "2025-01-01T00:00:00Z", "closed_at": "2025-01-01T00:00:00Z"}]`},
		{"missing key", `[{"id": 1, "title": "a", "status": "In Progress", "priority": "Low", "created_at": "2025-01-01T00:00:00Z", "updated_at": "2025-01-01T00:00:00Z", "closed_at": null}]`},
		{"bad timestamp", `[{"id": 1, "title": "a", "description": "", "responsible": "", "status": "In Progress", "priority": "Low", "created_at": "yesterday", "updated_at": "2025-01-01T00:00:00Z", "closed_at": null}]`},
		{"duplicate id", `[{"id": 1, "title": "a", "description": "", "responsible": "", "status": "In Progress", "priority": "Low", "created_at": "2025-01-01T00:00:00Z", "updated_at": "2025-01-01T00:00:00Z", "closed_at": null}, {"id": 1, "title": "b", "description": "", "responsible": "", "status": "In Progress", "priority": "Low", "created_at": "2025-01-01T00:00:00Z", "updated_at": "2025-01-01T00:00:00Z", "closed_at": null}]`},
		{"completed without closed_at", `[{"id": 1, "title": "a", "description": "", "responsible": "", "status": "Completed", "priority": "Low", "created_at": "2025-01-01T00:00:00Z", "updated_at": "2025-01-01T00:00:00Z", "closed_at": null}]`},
		{"in progress with closed_at", `[{"id": 1, "title": "a", "description": "", "responsible": "", "status": "In Progress", "priority": "Low", "created_at": "2025-01-01T00:00:00Z", "updated_at": "2025-01-01T00:00:00Z", "closed_at": "2025-01-01T00:00:00Z"}]`},
		{"updated before created", `[{"id": 1, "title": "a", "description": "", "responsible": "", "status": "In Progress", "priority": "Low", "created_at": "2025-01-02T00:00:00Z", "updated_at": "2025-01-01T00:00:00Z", "closed_at": null}]`},
		{"non-positive id", `[{"id": 0, "title": "a", "description": "", "responsible": "", "status": "In Progress", "priority": "Low", "created_at": "2025-01-01T00:00:00Z", "updated_at": "2025-01-01T00:00:00Z", "closed_at": null}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tasks.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))
			logger := testutil.NewMockLogger()
			store := New(path, logger)

			tasks, err := store.Load()

			require.NoError(t, err)
			assert.NotNil(t, tasks)
			assert.Empty(t, tasks)
			assert.True(t, logger.Has("WARN", "ignoring unreadable tasks file"))

			backup, err := os.ReadFile(domain.CorruptBackupPath(path))
			require.NoError(t, err)
			assert.Equal(t, tt.content, string(backup))
		})
	}
}

func TestStore_LoadEmptyFile(t *testing.T) {
	store, path := newTestStore(t)
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	tasks, err := store.Load()

	require.NoError(t, err)
	assert.Empty(t, tasks)
	_, err = os.Stat(domain.CorruptBackupPath(path))
	assert.True(t, os.IsNotExist(err), "empty file should not be backed up")
}

func TestStore_LoadNaiveTimestamps(t *testing.T) {
	store, path := newTestStore(t)
	content := `[
    {
        "id": 3,
        "title": "Legacy",
        "description": "written by an older version",
        "responsible": "Carol",
        "status": "Cancelled",
        "priority": "Medium",
        "created_at": "2024-05-01T09:30:00.123456",
        "updated_at": "2024-05-02T10:00:00",
        "closed_at": "2024-05-02T10:00:00"
    }
]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	tasks, err := store.Load()

	require.NoError(t, err)
	require.Len(t, tasks, 1)
	task := tasks[0]
	assert.Equal(t, 3, task.ID)
	assert.Equal(t, domain.StatusCancelled, task.Status)
	assert.Equal(t, domain.PriorityMedium, task.Priority)
	assert.True(t, task.CreatedAt.Equal(time.Date(2024, 5, 1, 9, 30, 0, 123456000, time.Local)))
	require.NotNil(t, task.ClosedAt)
	assert.True(t, task.ClosedAt.Equal(time.Date(2024, 5, 2, 10, 0, 0, 0, time.Local)))
}

func TestStore_Path(t *testing.T) {
	store := New("/tmp/x/tasks.json", nil)
	assert.Equal(t, "/tmp/x/tasks.json", store.Path())
}
