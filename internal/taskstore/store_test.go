package taskstore

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/FelipeCJSEP/todo/internal/domain"
	"github.com/FelipeCJSEP/todo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T, tasks ...*domain.Task) (*Store, *testutil.MockTaskStorage, *testutil.MockClock) {
	t.Helper()
	storage := testutil.NewMockTaskStorage(tasks...)
	clock := &testutil.MockClock{NowTime: baseTime, Step: time.Second}
	store, err := New(storage, clock, testutil.NewMockLogger())
	require.NoError(t, err)
	return store, storage, clock
}

func addTask(t *testing.T, s *Store, title string) *domain.Task {
	t.Helper()
	task, err := s.Add(AddInput{Title: title, Description: "d", Responsible: "r", Priority: "Medium"})
	require.NoError(t, err)
	return task
}

func strPtr(s string) *string { return &s }

func TestNew_EmptyStorage(t *testing.T) {
	store, _, _ := newTestStore(t)

	assert.Equal(t, 1, store.NextID())
	assert.NotNil(t, store.ListAll())
	assert.Empty(t, store.ListAll())
}

func TestNew_NextIDFromMax(t *testing.T) {
	store, _, _ := newTestStore(t,
		domain.NewTask(3, "a", "", "", domain.PriorityLow, baseTime),
		domain.NewTask(7, "b", "", "", domain.PriorityLow, baseTime),
		domain.NewTask(5, "c", "", "", domain.PriorityLow, baseTime),
	)

	assert.Equal(t, 8, store.NextID())
}

func TestNew_LoadError(t *testing.T) {
	storage := &testutil.MockTaskStorage{LoadErr: fmt.Errorf("%w: disk gone", domain.ErrIOFailure)}

	store, err := New(storage, &testutil.MockClock{}, nil)

	assert.Nil(t, store)
	assert.ErrorIs(t, err, domain.ErrIOFailure)
}

func TestStore_Add_IDsExhausted(t *testing.T) {
	store, storage, _ := newTestStore(t,
		domain.NewTask(math.MaxInt, "last", "", "", domain.PriorityLow, baseTime),
	)

	task, err := store.Add(AddInput{Title: "one too many", Priority: "Low"})

	assert.Nil(t, task)
	assert.ErrorIs(t, err, domain.ErrIDsExhausted)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.Equal(t, 0, storage.SaveCalls)
	require.Len(t, store.ListAll(), 1)
	assert.Equal(t, math.MaxInt, store.ListAll()[0].ID)

	found, err := store.FindByID(math.MaxInt)
	require.NoError(t, err)
	assert.Equal(t, "last", found.Title)
}

func TestStore_Add(t *testing.T) {
	store, storage, _ := newTestStore(t)

	task, err := store.Add(AddInput{
		Title:       "Buy milk",
		Description: "2 liters",
		Responsible: "Ana",
		Priority:    "high",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, task.ID)
	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, domain.StatusInProgress, task.Status)
	assert.Equal(t, domain.PriorityHigh, task.Priority)
	assert.Equal(t, baseTime, task.CreatedAt)
	assert.Equal(t, task.CreatedAt, task.UpdatedAt)
	assert.Nil(t, task.ClosedAt)

	assert.Equal(t, 1, storage.SaveCalls)
	require.Len(t, storage.Tasks, 1)
	assert.Equal(t, task, storage.Tasks[0])
}

func TestStore_Add_InvalidPriority(t *testing.T) {
	store, storage, _ := newTestStore(t)

	task, err := store.Add(AddInput{Title: "x", Priority: "Urgent"})

	assert.Nil(t, task)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.Equal(t, 0, storage.SaveCalls)
	assert.Equal(t, 1, store.NextID())
}

func TestStore_Add_IDsMonotonic(t *testing.T) {
	store, _, _ := newTestStore(t)

	a := addTask(t, store, "A")
	b := addTask(t, store, "B")
	require.NoError(t, func() error { _, err := store.Remove(b.ID, true); return err }())
	c := addTask(t, store, "C")

	assert.Equal(t, 1, a.ID)
	assert.Equal(t, 2, b.ID)
	assert.Equal(t, 3, c.ID, "ids of removed tasks are not reused within a session")
}

func TestStore_Add_SaveFailureRollsBack(t *testing.T) {
	store, storage, _ := newTestStore(t)
	storage.SaveErr = fmt.Errorf("%w: read-only", domain.ErrIOFailure)

	task, err := store.Add(AddInput{Title: "x", Priority: "Low"})

	assert.Nil(t, task)
	assert.ErrorIs(t, err, domain.ErrIOFailure)
	assert.Empty(t, store.ListAll())
	assert.Equal(t, 1, store.NextID())

	storage.SaveErr = nil
	again := addTask(t, store, "y")
	assert.Equal(t, 1, again.ID)
}

func TestStore_FindByID(t *testing.T) {
	store, _, _ := newTestStore(t)
	added := addTask(t, store, "A")

	got, err := store.FindByID(added.ID)

	require.NoError(t, err)
	assert.Equal(t, added, got)
}

func TestStore_FindByID_Errors(t *testing.T) {
	store, _, _ := newTestStore(t)
	addTask(t, store, "A")

	_, err := store.FindByID(99)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	_, err = store.FindByID(0)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = store.FindByID(-4)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestStore_FindByID_ReturnsCopy(t *testing.T) {
	store, _, _ := newTestStore(t)
	added := addTask(t, store, "A")

	got, err := store.FindByID(added.ID)
	require.NoError(t, err)
	got.Title = "mutated"

	again, err := store.FindByID(added.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", again.Title)
}

func TestStore_ListAll_InsertionOrder(t *testing.T) {
	store, _, _ := newTestStore(t)
	addTask(t, store, "A")
	addTask(t, store, "B")
	addTask(t, store, "C")

	tasks := store.ListAll()

	require.Len(t, tasks, 3)
	assert.Equal(t, []string{"A", "B", "C"}, []string{tasks[0].Title, tasks[1].Title, tasks[2].Title})
}

func TestStore_Complete(t *testing.T) {
	store, storage, _ := newTestStore(t)
	added := addTask(t, store, "A")

	task, err := store.Complete(added.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, task.Status)
	require.NotNil(t, task.ClosedAt)
	assert.Equal(t, task.UpdatedAt, *task.ClosedAt)
	assert.True(t, task.UpdatedAt.After(task.CreatedAt))
	assert.Equal(t, domain.StatusCompleted, storage.Get(added.ID).Status)
}

func TestStore_Cancel(t *testing.T) {
	store, storage, _ := newTestStore(t)
	added := addTask(t, store, "A")

	task, err := store.Cancel(added.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, task.Status)
	require.NotNil(t, task.ClosedAt)
	assert.Equal(t, domain.StatusCancelled, storage.Get(added.ID).Status)
}

func TestStore_Close_Twice(t *testing.T) {
	store, storage, _ := newTestStore(t)
	added := addTask(t, store, "A")
	first, err := store.Complete(added.ID)
	require.NoError(t, err)
	saves := storage.SaveCalls

	_, err = store.Complete(added.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = store.Cancel(added.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	after, err := store.FindByID(added.ID)
	require.NoError(t, err)
	assert.Equal(t, first, after, "a rejected close leaves the task unchanged")
	assert.Equal(t, saves, storage.SaveCalls)
}

func TestStore_Close_NotFoundBeforeState(t *testing.T) {
	store, _, _ := newTestStore(t)

	_, err := store.Complete(42)

	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	assert.NotErrorIs(t, err, domain.ErrInvalidState)
}

func TestStore_Close_NonTerminalTarget(t *testing.T) {
	store, _, _ := newTestStore(t)
	added := addTask(t, store, "A")

	_, err := store.Close(added.ID, domain.StatusInProgress)

	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestStore_Close_SaveFailureRollsBack(t *testing.T) {
	store, storage, _ := newTestStore(t)
	added := addTask(t, store, "A")
	storage.SaveErr = errors.Join(domain.ErrIOFailure, errors.New("disk full"))

	_, err := store.Complete(added.ID)

	assert.ErrorIs(t, err, domain.ErrIOFailure)
	got, err := store.FindByID(added.ID)
	require.NoError(t, err)
	assert.Equal(t, added, got)
}

func TestStore_Edit(t *testing.T) {
	store, storage, _ := newTestStore(t)
	added := addTask(t, store, "A")

	task, err := store.Edit(EditInput{
		TaskID:      added.ID,
		Title:       strPtr("A2"),
		Responsible: strPtr("Zoe"),
		Priority:    strPtr("LOW"),
	})

	require.NoError(t, err)
	assert.Equal(t, "A2", task.Title)
	assert.Equal(t, "d", task.Description)
	assert.Equal(t, "Zoe", task.Responsible)
	assert.Equal(t, domain.PriorityLow, task.Priority)
	assert.Equal(t, added.CreatedAt, task.CreatedAt)
	assert.True(t, task.UpdatedAt.After(added.UpdatedAt))
	assert.Equal(t, "A2", storage.Get(added.ID).Title)
}

func TestStore_Edit_BlankKeepsValues(t *testing.T) {
	store, storage, _ := newTestStore(t)
	added := addTask(t, store, "A")
	saves := storage.SaveCalls

	task, err := store.Edit(EditInput{
		TaskID:      added.ID,
		Title:       strPtr(""),
		Description: strPtr("   "),
		Priority:    strPtr(""),
	})

	require.NoError(t, err)
	assert.Equal(t, added.Title, task.Title)
	assert.Equal(t, added.Description, task.Description)
	assert.Equal(t, added.Responsible, task.Responsible)
	assert.Equal(t, added.Priority, task.Priority)
	assert.True(t, task.UpdatedAt.After(added.UpdatedAt), "updated_at is refreshed")
	assert.Equal(t, saves+1, storage.SaveCalls)
}

func TestStore_Edit_ClosedTask(t *testing.T) {
	store, _, _ := newTestStore(t)
	added := addTask(t, store, "A")
	_, err := store.Cancel(added.ID)
	require.NoError(t, err)

	_, err = store.Edit(EditInput{TaskID: added.ID, Title: strPtr("B")})

	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestStore_Edit_StateCheckedBeforePriority(t *testing.T) {
	store, _, _ := newTestStore(t)
	added := addTask(t, store, "A")
	_, err := store.Complete(added.ID)
	require.NoError(t, err)

	_, err = store.Edit(EditInput{TaskID: added.ID, Priority: strPtr("bogus")})

	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestStore_Edit_Errors(t *testing.T) {
	store, _, _ := newTestStore(t)
	added := addTask(t, store, "A")

	_, err := store.Edit(EditInput{TaskID: 99, Title: strPtr("B")})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	_, err = store.Edit(EditInput{TaskID: added.ID, Priority: strPtr("Critical")})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	got, err := store.FindByID(added.ID)
	require.NoError(t, err)
	assert.Equal(t, added, got)
}

func TestStore_Edit_SaveFailureRollsBack(t *testing.T) {
	store, storage, _ := newTestStore(t)
	added := addTask(t, store, "A")
	storage.SaveErr = domain.ErrIOFailure

	_, err := store.Edit(EditInput{TaskID: added.ID, Title: strPtr("B")})

	assert.ErrorIs(t, err, domain.ErrIOFailure)
	got, err := store.FindByID(added.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Title)
	assert.Equal(t, added.UpdatedAt, got.UpdatedAt)
}

func TestStore_Remove(t *testing.T) {
	store, storage, _ := newTestStore(t)
	a := addTask(t, store, "A")
	b := addTask(t, store, "B")

	out, err := store.Remove(a.ID, true)

	require.NoError(t, err)
	assert.True(t, out.Removed)
	assert.Equal(t, "A", out.Task.Title)
	_, err = store.FindByID(a.ID)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	require.Len(t, storage.Tasks, 1)
	assert.Equal(t, b.ID, storage.Tasks[0].ID)
}

func TestStore_Remove_ClosedTask(t *testing.T) {
	store, _, _ := newTestStore(t)
	a := addTask(t, store, "A")
	_, err := store.Complete(a.ID)
	require.NoError(t, err)

	out, err := store.Remove(a.ID, true)

	require.NoError(t, err)
	assert.True(t, out.Removed)
	assert.Empty(t, store.ListAll())
}

func TestStore_Remove_NotConfirmed(t *testing.T) {
	store, storage, _ := newTestStore(t)
	a := addTask(t, store, "A")
	saves := storage.SaveCalls

	out, err := store.Remove(a.ID, false)

	require.NoError(t, err)
	assert.False(t, out.Removed)
	assert.Len(t, store.ListAll(), 1)
	assert.Equal(t, saves, storage.SaveCalls)
}

func TestStore_Remove_NotFound(t *testing.T) {
	store, _, _ := newTestStore(t)

	_, err := store.Remove(7, true)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	_, err = store.Remove(7, false)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestStore_Remove_SaveFailureRollsBack(t *testing.T) {
	store, storage, _ := newTestStore(t)
	addTask(t, store, "A")
	b := addTask(t, store, "B")
	addTask(t, store, "C")
	storage.SaveErr = domain.ErrIOFailure

	_, err := store.Remove(b.ID, true)

	assert.ErrorIs(t, err, domain.ErrIOFailure)
	tasks := store.ListAll()
	require.Len(t, tasks, 3)
	assert.Equal(t, "B", tasks[1].Title)
}

func TestStore_Summary(t *testing.T) {
	store, _, _ := newTestStore(t)
	a := addTask(t, store, "A")
	b := addTask(t, store, "B")
	addTask(t, store, "C")
	_, err := store.Complete(a.ID)
	require.NoError(t, err)
	_, err = store.Cancel(b.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.TaskSummary{InProgress: 1, Completed: 1, Cancelled: 1, Total: 3}, store.Summary())
}

func TestStore_ReloadSeesMutations(t *testing.T) {
	store, storage, _ := newTestStore(t)
	a := addTask(t, store, "A")
	_, err := store.Complete(a.ID)
	require.NoError(t, err)

	reloaded, err := New(storage, &testutil.MockClock{NowTime: baseTime}, nil)
	require.NoError(t, err)

	got, err := reloaded.FindByID(a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, got.Status)
	assert.Equal(t, 2, reloaded.NextID())
}
