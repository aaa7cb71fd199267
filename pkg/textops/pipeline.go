package textops

import (
	"sync"

	"github.com/google/uuid"

	"github.com/askiada/go-textops/pkg/textops/op"
)

// Pipeline is an ordered collection of steps. Every mutation is atomic:
// it validates its arguments first and either commits or leaves the
// pipeline exactly as it was, returning a typed failure.
type Pipeline struct {
	mu       sync.Mutex
	registry *op.Registry
	steps    []*Step
}

// New creates an empty pipeline backed by the built-in operation
// registry unless PipelineRegistry overrides it.
func New(opts ...PipelineOption) *Pipeline {
	pipe := &Pipeline{}

	for _, opt := range opts {
		opt(pipe)
	}

	if pipe.registry == nil {
		pipe.registry = op.Builtin()
	}

	return pipe
}

// Registry returns the registry the pipeline validates against.
func (p *Pipeline) Registry() *op.Registry {
	return p.registry
}

// AddStep appends a new enabled step of the given kind. The initial
// config, if any, is merged over the kind's defaults and validated; on
// failure the pipeline is unchanged.
func (p *Pipeline) AddStep(kind op.Kind, initial map[string]any) (Step, error) {
	operation, err := p.registry.Lookup(kind)
	if err != nil {
		return Step{}, err
	}

	merged := operation.DefaultConfig().Raw()
	for name, value := range initial {
		merged[name] = value
	}

	cfg, err := operation.DecodeConfig(merged)
	if err != nil {
		return Step{}, err
	}

	step := &Step{
		id:        uuid.NewString(),
		operation: operation,
		cfg:       cfg,
		enabled:   true,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.steps = append(p.steps, step)

	return *step, nil
}

// RemoveStep removes the step with that id, preserving the relative
// order of the remaining steps.
func (p *Pipeline) RemoveStep(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, step := range p.steps {
		if step.id == id {
			p.steps = append(p.steps[:i], p.steps[i+1:]...)

			return nil
		}
	}

	return &StepNotFoundError{ID: id}
}

// ToggleStep flips the step's enabled flag and returns the new state.
// The configuration is untouched.
func (p *Pipeline) ToggleStep(id string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	step, err := p.find(id)
	if err != nil {
		return false, err
	}

	step.enabled = !step.enabled

	return step.enabled, nil
}

// UpdateStep shallow-merges partial over the step's current config:
// fields absent from partial keep their current value. The merge is
// validated against the step's operation kind before anything commits;
// on failure the step is unchanged.
func (p *Pipeline) UpdateStep(id string, partial map[string]any) (Step, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	step, err := p.find(id)
	if err != nil {
		return Step{}, err
	}

	merged := step.cfg.Raw()
	for name, value := range partial {
		merged[name] = value
	}

	cfg, err := step.operation.DecodeConfig(merged)
	if err != nil {
		return Step{}, err
	}

	step.cfg = cfg

	return *step, nil
}

// ReorderSteps repositions the steps to match order, which must be a
// permutation of the current step ids. A multiset mismatch is rejected
// with an *IntegrityError and the pipeline is unchanged.
func (p *Pipeline) ReorderSteps(order []string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	byID := make(map[string]*Step, len(p.steps))
	for _, step := range p.steps {
		byID[step.id] = step
	}

	intErr := &IntegrityError{}
	requested := make(map[string]struct{}, len(order))
	reordered := make([]*Step, 0, len(p.steps))

	for _, id := range order {
		if _, ok := requested[id]; ok {
			intErr.Duplicate = append(intErr.Duplicate, id)

			continue
		}

		requested[id] = struct{}{}

		step, ok := byID[id]
		if !ok {
			intErr.Unknown = append(intErr.Unknown, id)

			continue
		}

		reordered = append(reordered, step)
	}

	for _, step := range p.steps {
		if _, ok := requested[step.id]; !ok {
			intErr.Missing = append(intErr.Missing, step.id)
		}
	}

	if len(intErr.Missing) > 0 || len(intErr.Duplicate) > 0 || len(intErr.Unknown) > 0 {
		return intErr
	}

	p.steps = reordered

	return nil
}

// Step returns a snapshot of the step with that id.
func (p *Pipeline) Step(id string) (Step, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	step, err := p.find(id)
	if err != nil {
		return Step{}, err
	}

	return *step, nil
}

// Steps returns a consistent snapshot of all steps in execution order.
func (p *Pipeline) Steps() []Step {
	p.mu.Lock()
	defer p.mu.Unlock()

	steps := make([]Step, len(p.steps))
	for i, step := range p.steps {
		steps[i] = *step
	}

	return steps
}

// Len returns the number of steps.
func (p *Pipeline) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.steps)
}

// find must be called with the mutex held.
func (p *Pipeline) find(id string) (*Step, error) {
	for _, step := range p.steps {
		if step.id == id {
			return step, nil
		}
	}

	return nil, &StepNotFoundError{ID: id}
}
