package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy roots. Callers classify failures with errors.Is.
var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrInvalidState    = errors.New("operation not permitted in current status")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrIOFailure       = errors.New("storage failure")
)

// Domain errors.
var (
	ErrNotInProgress   = fmt.Errorf("only tasks that are 'In Progress' can be closed: %w", ErrInvalidState)
	ErrNotEditable     = fmt.Errorf("only tasks that are 'In Progress' can be edited: %w", ErrInvalidState)
	ErrInvalidPriority = fmt.Errorf("invalid priority: %w", ErrInvalidArgument)
	ErrInvalidStatus   = fmt.Errorf("invalid status: %w", ErrInvalidArgument)
	ErrInvalidTaskID   = fmt.Errorf("invalid task ID: %w", ErrInvalidArgument)
	ErrInvalidTask     = fmt.Errorf("invalid task: %w", ErrInvalidArgument)
	ErrIDsExhausted    = fmt.Errorf("no task IDs left: %w", ErrInvalidArgument)
	ErrConfigExists    = errors.New("config file already exists")
)
