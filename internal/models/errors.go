package models

import "errors"

// ErrTaskNotFound is returned when an operation targets a task id that does
// not exist. Handlers surface it as 404.
var ErrTaskNotFound = errors.New("task not found")

// ValidationError marks user-correctable input problems. Handlers surface
// it as 400.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
