package textops

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrPipelineMustBeSet = errors.New("pipeline must be set")

	// ErrStepNotFound matches every *StepNotFoundError.
	ErrStepNotFound = errors.New("step not found")
	// ErrPipelineIntegrity matches every *IntegrityError.
	ErrPipelineIntegrity = errors.New("pipeline integrity violation")
)

// StepNotFoundError reports a step id absent from the pipeline.
type StepNotFoundError struct {
	ID string
}

func (e *StepNotFoundError) Error() string {
	return fmt.Sprintf("step %q not found", e.ID)
}

func (e *StepNotFoundError) Unwrap() error {
	return ErrStepNotFound
}

// IntegrityError reports a reorder request whose id multiset does not
// match the pipeline's. The pipeline is left unchanged.
type IntegrityError struct {
	// Missing are pipeline ids absent from the request.
	Missing []string
	// Duplicate are ids occurring more than once in the request.
	Duplicate []string
	// Unknown are request ids the pipeline does not contain.
	Unknown []string
}

func (e *IntegrityError) Error() string {
	parts := make([]string, 0, 3)

	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing ids %v", e.Missing))
	}

	if len(e.Duplicate) > 0 {
		parts = append(parts, fmt.Sprintf("duplicated ids %v", e.Duplicate))
	}

	if len(e.Unknown) > 0 {
		parts = append(parts, fmt.Sprintf("unknown ids %v", e.Unknown))
	}

	return "reorder does not permute the pipeline: " + strings.Join(parts, ", ")
}

func (e *IntegrityError) Unwrap() error {
	return ErrPipelineIntegrity
}
