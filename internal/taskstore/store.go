// Package taskstore holds the in-memory task collection and enforces the
// task lifecycle. Every mutation is persisted before it returns.
package taskstore

import (
	"fmt"
	"slices"
	"strings"

	"github.com/FelipeCJSEP/todo/internal/domain"
)

// Store is the authoritative task collection.
// It is not safe for concurrent use.
type Store struct {
	storage domain.TaskStorage
	clock   domain.Clock
	logger  domain.Logger
	tasks   []*domain.Task // Insertion order
	nextID  int
}

// New loads the collection from storage and returns a Store over it.
func New(storage domain.TaskStorage, clock domain.Clock, logger domain.Logger) (*Store, error) {
	if logger == nil {
		logger = domain.NopLogger{}
	}

	tasks, err := storage.Load()
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	nextID := 1
	for _, t := range tasks {
		if t.ID >= nextID {
			nextID = t.ID + 1
		}
	}

	logger.Debug(0, "store", fmt.Sprintf("loaded %d tasks, next id %d", len(tasks), nextID))

	return &Store{
		storage: storage,
		clock:   clock,
		logger:  logger,
		tasks:   tasks,
		nextID:  nextID,
	}, nil
}

// AddInput contains the parameters for creating a task.
type AddInput struct {
	Title       string
	Description string
	Responsible string
	Priority    string // Low, Medium or High (case-insensitive)
}

// Add creates an InProgress task and persists the collection.
func (s *Store) Add(in AddInput) (*domain.Task, error) {
	priority, err := domain.ParsePriorityInput(in.Priority)
	if err != nil {
		return nil, err
	}
	// nextID wraps negative once the largest int is taken
	if s.nextID <= 0 {
		return nil, fmt.Errorf("add task: %w", domain.ErrIDsExhausted)
	}

	task := domain.NewTask(s.nextID, in.Title, in.Description, in.Responsible, priority, s.clock.Now())
	s.tasks = append(s.tasks, task)

	if err := s.persist(); err != nil {
		s.tasks = s.tasks[:len(s.tasks)-1]
		return nil, err
	}
	s.nextID++

	s.logger.Info(task.ID, "task", fmt.Sprintf("created: %q", task.Title))
	return task.Clone(), nil
}

// FindByID returns a copy of the task with id.
func (s *Store) FindByID(id int) (*domain.Task, error) {
	_, task, err := s.find(id)
	if err != nil {
		return nil, err
	}
	return task.Clone(), nil
}

// ListAll returns copies of every task in insertion order.
// An empty store yields an empty, non-nil slice.
func (s *Store) ListAll() []*domain.Task {
	out := make([]*domain.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t.Clone())
	}
	return out
}

// Summary counts tasks per status.
func (s *Store) Summary() domain.TaskSummary {
	return domain.NewTaskSummary(s.tasks)
}

// NextID returns the id the next added task will get.
func (s *Store) NextID() int {
	return s.nextID
}

// Close moves an InProgress task to target (Completed or Cancelled).
func (s *Store) Close(id int, target domain.Status) (*domain.Task, error) {
	if !target.IsTerminal() {
		return nil, fmt.Errorf("%w: cannot close a task as %q", domain.ErrInvalidStatus, target)
	}

	_, task, err := s.find(id)
	if err != nil {
		return nil, err
	}

	before := task.Clone()
	if err := task.Close(target, s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.persist(); err != nil {
		*task = *before
		return nil, err
	}

	s.logger.Info(task.ID, "task", fmt.Sprintf("marked as %s", target.Verb()))
	return task.Clone(), nil
}

// Complete marks an InProgress task as Completed.
func (s *Store) Complete(id int) (*domain.Task, error) {
	return s.Close(id, domain.StatusCompleted)
}

// Cancel marks an InProgress task as Cancelled.
func (s *Store) Cancel(id int) (*domain.Task, error) {
	return s.Close(id, domain.StatusCancelled)
}

// EditInput contains the parameters for editing a task.
// Nil or blank fields keep the current value.
type EditInput struct {
	Title       *string
	Description *string
	Responsible *string
	Priority    *string // Low, Medium or High (case-insensitive)
	TaskID      int
}

// Edit updates the provided fields of an InProgress task.
// UpdatedAt is refreshed even when no field changes.
func (s *Store) Edit(in EditInput) (*domain.Task, error) {
	_, task, err := s.find(in.TaskID)
	if err != nil {
		return nil, err
	}
	if task.Status != domain.StatusInProgress {
		return nil, fmt.Errorf("task #%d is %s: %w", task.ID, task.Status, domain.ErrNotEditable)
	}

	edit := domain.TaskEdit{
		Title:       deref(in.Title),
		Description: deref(in.Description),
		Responsible: deref(in.Responsible),
	}
	if p := deref(in.Priority); strings.TrimSpace(p) != "" {
		priority, err := domain.ParsePriorityInput(p)
		if err != nil {
			return nil, err
		}
		edit.Priority = priority
	}

	before := task.Clone()
	if err := task.Apply(edit, s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.persist(); err != nil {
		*task = *before
		return nil, err
	}

	s.logger.Info(task.ID, "task", fmt.Sprintf("edited: %q", task.Title))
	return task.Clone(), nil
}

// RemoveOutput contains the result of a removal.
type RemoveOutput struct {
	Task    *domain.Task // The task that was (or would have been) removed
	Removed bool         // false when the removal was not confirmed
}

// Remove deletes a task. Without confirmation nothing changes and the
// output reports the removal as cancelled.
func (s *Store) Remove(id int, confirmed bool) (*RemoveOutput, error) {
	idx, task, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if !confirmed {
		return &RemoveOutput{Task: task.Clone(), Removed: false}, nil
	}

	s.tasks = slices.Delete(s.tasks, idx, idx+1)
	if err := s.persist(); err != nil {
		s.tasks = slices.Insert(s.tasks, idx, task)
		return nil, err
	}

	s.logger.Info(task.ID, "task", fmt.Sprintf("removed: %q", task.Title))
	return &RemoveOutput{Task: task.Clone(), Removed: true}, nil
}

// find returns the index and the stored task with id.
func (s *Store) find(id int) (int, *domain.Task, error) {
	if id <= 0 {
		return -1, nil, fmt.Errorf("%w: %d (must be positive)", domain.ErrInvalidTaskID, id)
	}
	for i, t := range s.tasks {
		if t.ID == id {
			return i, t, nil
		}
	}
	return -1, nil, fmt.Errorf("no task found with ID %d: %w", id, domain.ErrTaskNotFound)
}

// persist writes the whole collection.
func (s *Store) persist() error {
	if err := s.storage.Save(s.tasks); err != nil {
		s.logger.Error(0, "store", fmt.Sprintf("save failed: %v", err))
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
