package textops

import (
	"github.com/askiada/go-textops/pkg/textops/model"
	"github.com/askiada/go-textops/pkg/textops/op"
)

// Step is one configured, toggleable instance of an operation kind
// within a pipeline. Steps are created by Pipeline.AddStep only; the id
// stays stable across reordering, toggling and config updates and is
// never reused after removal.
//
// Step values handed out by the pipeline are snapshots: mutating the
// pipeline afterwards does not change them.
type Step struct {
	id        string
	operation op.Operation
	cfg       op.Config
	enabled   bool
}

func (s Step) ID() string {
	return s.id
}

func (s Step) Kind() op.Kind {
	return s.operation.Kind()
}

// Config is the step's typed configuration.
func (s Step) Config() op.Config {
	return s.cfg
}

func (s Step) Enabled() bool {
	return s.enabled
}

func (s Step) info(position int) *model.StepInfo {
	return &model.StepInfo{
		ID:       s.id,
		Kind:     s.operation.Kind(),
		Label:    s.operation.Label(),
		Position: position,
		Enabled:  s.enabled,
	}
}
