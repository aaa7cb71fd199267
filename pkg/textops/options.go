package textops

import (
	"github.com/rs/zerolog"

	"github.com/askiada/go-textops/pkg/textops/model"
	"github.com/askiada/go-textops/pkg/textops/op"
)

type PipelineOption func(p *Pipeline)

// PipelineRegistry replaces the built-in operation registry.
func PipelineRegistry(registry *op.Registry) PipelineOption {
	return func(p *Pipeline) {
		p.registry = registry
	}
}

type ExecutorOption func(e *Executor)

// ExecutorLogger sets the executor's logger.
func ExecutorLogger(logger zerolog.Logger) ExecutorOption {
	return func(e *Executor) {
		e.logger = logger
	}
}

// ExecutorObserver attaches run observers, e.g. measure or drawer.
func ExecutorObserver(observers ...model.Observer) ExecutorOption {
	return func(e *Executor) {
		e.observers = append(e.observers, observers...)
	}
}
