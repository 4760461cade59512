package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// ValidationError describes a single malformed field in an input snapshot.
//
// The planning core assumes validated input (it is a total function over
// well-formed snapshots), so these errors are raised before any strategy runs
// and never from inside a simulation loop.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// SnapshotError indicates a structurally unusable optimization snapshot,
// e.g. an empty port list or a grade with no tank configuration.
type SnapshotError struct {
	*DomainError
}

func NewSnapshotError(message string) *SnapshotError {
	return &SnapshotError{DomainError: &DomainError{Message: message}}
}

// UnknownGradeError is returned when a snapshot references a grade outside
// the closed three-grade set.
type UnknownGradeError struct {
	*DomainError
	Grade Grade
}

func NewUnknownGradeError(grade Grade) *UnknownGradeError {
	return &UnknownGradeError{
		DomainError: &DomainError{Message: fmt.Sprintf("unknown oil grade: %s", grade)},
		Grade:       grade,
	}
}
