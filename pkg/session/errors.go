package session

import "errors"

// Validation and lookup errors surfaced to the UI.
var (
	ErrTitleRequired         = errors.New("title is required")
	ErrDueDateRequired       = errors.New("due date is required")
	ErrInvalidPriority       = errors.New("priority must be Low, Medium or High")
	ErrRecurringTypeRequired = errors.New("recurring tasks need a valid recurring type")
	ErrTaskNotFound          = errors.New("no task with that id")
	ErrInfoNotFound          = errors.New("no info entry with that id")
)
