package textops

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/askiada/go-textops/pkg/textops/model"
	"github.com/askiada/go-textops/pkg/textops/op"
)

// Diagnostic is the recorded outcome of one step within a run.
type Diagnostic struct {
	StepID  string
	Kind    op.Kind
	Status  model.Status
	Err     error
	Elapsed time.Duration
}

// Result is the outcome of one executor run. Diagnostics has one entry
// per pipeline step, in execution order, disabled steps included.
type Result struct {
	Output      string
	Diagnostics []Diagnostic
	Elapsed     time.Duration
}

// Executor applies a pipeline's enabled steps, in order, to an input
// text. A step whose transform fails is isolated: its diagnostic records
// the failure and the text carries over unchanged, so one misconfigured
// step degrades the result instead of blanking it.
type Executor struct {
	logger    zerolog.Logger
	observers []model.Observer
	seq       atomic.Int64
}

// NewExecutor creates an executor.
func NewExecutor(opts ...ExecutorOption) *Executor {
	exec := &Executor{
		logger: zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(exec)
	}

	return exec
}

// Execute runs the pipeline on input. Business-level step failures never
// surface as an error; the returned error is reserved for defects
// (a step whose kind vanished from the registry) and context
// cancellation between steps.
func (e *Executor) Execute(ctx context.Context, pipe *Pipeline, input string) (*Result, error) {
	if pipe == nil {
		return nil, ErrPipelineMustBeSet
	}

	steps := pipe.Steps()
	registry := pipe.Registry()

	run := &model.RunInfo{
		Seq:      e.seq.Add(1),
		InputLen: len(input),
	}

	infos := make([]*model.StepInfo, len(steps))
	for i, step := range steps {
		infos[i] = step.info(i)
	}

	if err := e.observe(func(obs model.Observer) error {
		return obs.OnRunStart(run, infos)
	}); err != nil {
		return nil, errors.Wrap(err, "run start observer")
	}

	start := time.Now()
	current := input
	diagnostics := make([]Diagnostic, 0, len(steps))

	for i, step := range steps {
		select {
		case <-ctx.Done():
			return nil, errors.Wrap(ctx.Err(), "execute")
		default:
		}

		diag := Diagnostic{
			StepID: step.ID(),
			Kind:   step.Kind(),
		}

		switch {
		case !step.Enabled():
			diag.Status = model.StatusSkipped
		default:
			stepStart := time.Now()
			output, err := registry.Apply(step.Kind(), step.Config(), current)
			diag.Elapsed = time.Since(stepStart)

			switch {
			case errors.Is(err, op.ErrUnknownKind):
				// The registry no longer knows a kind a step references.
				// AddStep is the sole entry point, so this is a defect.
				return nil, errors.Wrapf(err, "step %s", step.ID())
			case err != nil:
				diag.Status = model.StatusFailed
				diag.Err = err
			default:
				diag.Status = model.StatusOK
				current = output
			}
		}

		diagnostics = append(diagnostics, diag)

		e.logger.Debug().
			Str("step", diag.StepID).
			Str("kind", diag.Kind.String()).
			Str("status", string(diag.Status)).
			Dur("elapsed", diag.Elapsed).
			Msg("step done")

		outcome := model.StepOutcome{
			Status:  diag.Status,
			Err:     diag.Err,
			Elapsed: diag.Elapsed,
		}

		info := infos[i]
		if err := e.observe(func(obs model.Observer) error {
			return obs.OnStepDone(run, info, outcome)
		}); err != nil {
			return nil, errors.Wrap(err, "step observer")
		}
	}

	elapsed := time.Since(start)

	if err := e.observe(func(obs model.Observer) error {
		return obs.OnRunEnd(run, elapsed)
	}); err != nil {
		return nil, errors.Wrap(err, "run end observer")
	}

	e.logger.Debug().
		Int64("run", run.Seq).
		Int("steps", len(steps)).
		Dur("elapsed", elapsed).
		Msg("run done")

	return &Result{
		Output:      current,
		Diagnostics: diagnostics,
		Elapsed:     elapsed,
	}, nil
}

func (e *Executor) observe(fn func(model.Observer) error) error {
	for _, obs := range e.observers {
		if err := fn(obs); err != nil {
			return err
		}
	}

	return nil
}
