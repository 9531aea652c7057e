// Package domain contains core business entities and interfaces.
package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Task represents a single to-do item.
// Fields are ordered to minimize memory padding.
type Task struct {
	CreatedAt   time.Time  // Creation time (fixed)
	UpdatedAt   time.Time  // Refreshed on every mutation
	ClosedAt    *time.Time // Set once when the task leaves InProgress
	Title       string
	Description string
	Responsible string
	Status      Status
	Priority    Priority
	ID          int
}

// NewTask creates an InProgress task stamped with now.
func NewTask(id int, title, description, responsible string, priority Priority, now time.Time) *Task {
	return &Task{
		ID:          id,
		Title:       title,
		Description: description,
		Responsible: responsible,
		Status:      StatusInProgress,
		Priority:    priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ParseTaskID parses a user-supplied task ID. A leading "#" is accepted.
func ParseTaskID(s string) (int, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTaskID, s)
	}
	if id <= 0 {
		return 0, fmt.Errorf("%w: %d (must be positive)", ErrInvalidTaskID, id)
	}
	return id, nil
}

// IsClosed returns true if the task reached a terminal status.
func (t *Task) IsClosed() bool {
	return t.Status.IsTerminal()
}

// Validate checks the invariants a stored task must satisfy.
func (t *Task) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("%w: id %d is not positive", ErrInvalidTask, t.ID)
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("%w: task #%d has status %q", ErrInvalidTask, t.ID, t.Status)
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: task #%d has priority %q", ErrInvalidTask, t.ID, t.Priority)
	}
	if t.UpdatedAt.Before(t.CreatedAt) {
		return fmt.Errorf("%w: task #%d was updated before it was created", ErrInvalidTask, t.ID)
	}
	if t.IsClosed() != (t.ClosedAt != nil) {
		return fmt.Errorf("%w: task #%d is %s but closed_at is %s", ErrInvalidTask, t.ID, t.Status, closedAtState(t.ClosedAt))
	}
	return nil
}

func closedAtState(closedAt *time.Time) string {
	if closedAt == nil {
		return "unset"
	}
	return "set"
}

// Close transitions the task to a terminal status.
func (t *Task) Close(target Status, now time.Time) error {
	if !target.IsTerminal() {
		return fmt.Errorf("%w: %q is not a closing status", ErrInvalidStatus, target)
	}
	if !t.Status.CanTransitionTo(target) {
		return fmt.Errorf("task #%d is %s: %w", t.ID, t.Status, ErrNotInProgress)
	}
	t.Status = target
	t.touch(now)
	closed := t.UpdatedAt
	t.ClosedAt = &closed
	return nil
}

// TaskEdit holds the replacement values for an edit.
// Empty or whitespace-only strings keep the current value.
type TaskEdit struct {
	Title       string
	Description string
	Responsible string
	Priority    Priority // Empty keeps the current priority
}

// Apply applies the edit. Only InProgress tasks may be edited.
// UpdatedAt is refreshed even when every field is blank.
func (t *Task) Apply(edit TaskEdit, now time.Time) error {
	if t.Status != StatusInProgress {
		return fmt.Errorf("task #%d is %s: %w", t.ID, t.Status, ErrNotEditable)
	}
	if edit.Priority != "" && !edit.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, edit.Priority)
	}

	if strings.TrimSpace(edit.Title) != "" {
		t.Title = edit.Title
	}
	if strings.TrimSpace(edit.Description) != "" {
		t.Description = edit.Description
	}
	if strings.TrimSpace(edit.Responsible) != "" {
		t.Responsible = edit.Responsible
	}
	if edit.Priority != "" {
		t.Priority = edit.Priority
	}
	t.touch(now)
	return nil
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	if t.ClosedAt != nil {
		closed := *t.ClosedAt
		c.ClosedAt = &closed
	}
	return &c
}

// touch refreshes UpdatedAt, never letting it fall behind CreatedAt.
func (t *Task) touch(now time.Time) {
	if now.Before(t.CreatedAt) {
		now = t.CreatedAt
	}
	t.UpdatedAt = now
}

// TaskSummary holds task counts per status.
type TaskSummary struct {
	InProgress int
	Completed  int
	Cancelled  int
	Total      int
}

// NewTaskSummary counts tasks per status.
func NewTaskSummary(tasks []*Task) TaskSummary {
	s := TaskSummary{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case StatusInProgress:
			s.InProgress++
		case StatusCompleted:
			s.Completed++
		case StatusCancelled:
			s.Cancelled++
		}
	}
	return s
}
