package domain

import (
	"fmt"
	"strings"
)

// Priority represents how urgent a task is.
// The value is the display string stored in the tasks file.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// AllPriorities returns all valid priority values, lowest first.
func AllPriorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// IsValid returns true if the priority is a known valid value.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// ParsePriority converts a stored value string into a Priority.
// Only the exact value strings are accepted.
func ParsePriority(s string) (Priority, error) {
	p := Priority(s)
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, s)
	}
	return p, nil
}

// ParsePriorityInput converts user input into a Priority, ignoring case and
// surrounding whitespace.
func ParsePriorityInput(s string) (Priority, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	for _, p := range AllPriorities() {
		if norm == strings.ToUpper(string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q (expected Low, Medium or High)", ErrInvalidPriority, s)
}
