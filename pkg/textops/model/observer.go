package model

import (
	"time"

	"github.com/askiada/go-textops/pkg/textops/op"
)

// Status is the outcome class of one step within a run.
type Status string

const (
	StatusOK      Status = "ok"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// StepInfo describes one pipeline step for observers.
type StepInfo struct {
	ID       string
	Kind     op.Kind
	Label    string
	Position int
	Enabled  bool
}

// RunInfo describes one executor run.
type RunInfo struct {
	// Seq increases by one for every run of the same executor.
	Seq int64
	// InputLen is the byte length of the run's input text.
	InputLen int
}

// StepOutcome is the per-step result reported to observers.
type StepOutcome struct {
	Status  Status
	Err     error
	Elapsed time.Duration
}

// Observer receives executor run hooks.
type Observer interface {
	// OnRunStart runs before the first step, with the run's step layout.
	OnRunStart(run *RunInfo, steps []*StepInfo) error
	// OnStepDone runs after each step, including skipped ones.
	OnStepDone(run *RunInfo, step *StepInfo, outcome StepOutcome) error
	// OnRunEnd runs after the last step.
	OnRunEnd(run *RunInfo, elapsed time.Duration) error
}
