package models

import "errors"

var (
	// ErrNotFound means the addressed row does not exist
	ErrNotFound = errors.New("not found")

	// ErrPrecondition means the row exists but is not in the state the
	// operation requires
	ErrPrecondition = errors.New("precondition failed")

	// ErrDuplicate means a unique constraint rejected the write
	ErrDuplicate = errors.New("duplicate key")
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e ValidationError) Error() string {
	return e.Message
}
