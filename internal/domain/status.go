package domain

import (
	"fmt"
	"strings"
)

// Status represents the lifecycle state of a task.
// The value is the display string stored in the tasks file.
type Status string

const (
	StatusInProgress Status = "In Progress" // Open, editable
	StatusCompleted  Status = "Completed"   // Closed: done
	StatusCancelled  Status = "Cancelled"   // Closed: abandoned
)

// AllStatuses returns all valid status values.
func AllStatuses() []Status {
	return []Status{
		StatusInProgress,
		StatusCompleted,
		StatusCancelled,
	}
}

// transitions defines the allowed status transitions.
// Flow: in progress → completed | cancelled (both terminal)
var transitions = map[Status][]Status{
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// CanTransitionTo returns true if the status can transition to the target status.
func (s Status) CanTransitionTo(target Status) bool {
	allowed, ok := transitions[s]
	if !ok {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if the status is a terminal state.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	switch s {
	case StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Verb returns the lower-case form used in messages ("marked as completed").
func (s Status) Verb() string {
	return strings.ToLower(string(s))
}

// ParseStatus converts a stored value string into a Status.
// Only the exact value strings are accepted.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return st, nil
}

// ParseStatusInput converts user input into a Status.
// Matching ignores case, surrounding spaces, and accepts the member names
// (in_progress, completed, cancelled) as well as the value strings.
func ParseStatusInput(s string) (Status, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", " ", "-", " ").Replace(norm)
	for _, st := range AllStatuses() {
		if norm == strings.ToLower(string(st)) {
			return st, nil
		}
	}
	if norm == "inprogress" || norm == "open" {
		return StatusInProgress, nil
	}
	return "", fmt.Errorf("%w: %q (expected In Progress, Completed or Cancelled)", ErrInvalidStatus, s)
}
