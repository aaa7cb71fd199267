package op

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrUnknownKind matches every *UnknownKindError.
	ErrUnknownKind = errors.New("unknown operation kind")
	// ErrInvalidConfig matches every *ValidationError.
	ErrInvalidConfig = errors.New("invalid operation config")
	// ErrExecution matches every *ExecutionError.
	ErrExecution = errors.New("operation execution failed")
)

// UnknownKindError reports a kind that is not in the registry.
type UnknownKindError struct {
	Kind Kind
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown operation kind %q", e.Kind)
}

func (e *UnknownKindError) Unwrap() error {
	return ErrUnknownKind
}

// Violation is one field-level configuration problem.
type Violation struct {
	Field  string
	Reason string
}

func (v Violation) String() string {
	return v.Field + ": " + v.Reason
}

// ValidationError reports a configuration that does not satisfy its
// operation kind's schema. The pipeline never commits such a config.
type ValidationError struct {
	Kind       Kind
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}

	return fmt.Sprintf("invalid config for %q: %s", e.Kind, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfig
}

// ExecutionError reports a transform that failed at run time despite a
// valid configuration. The executor isolates it per step.
type ExecutionError struct {
	Kind Kind
	Err  error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("operation %q failed: %v", e.Kind, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

func (e *ExecutionError) Is(target error) bool {
	return target == ErrExecution
}
