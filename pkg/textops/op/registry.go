package op

import (
	"iter"
	"sync"

	"github.com/pkg/errors"
)

// Registry is the catalog of known operation kinds. The zero value is
// not usable, call NewRegistry or Builtin.
type Registry struct {
	mu    sync.RWMutex
	ops   map[Kind]Operation
	order []Kind
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		ops: make(map[Kind]Operation),
	}
}

// Builtin creates a registry holding every built-in operation.
func Builtin() *Registry {
	reg := NewRegistry()

	for _, operation := range []Operation{
		Trim(),
		Dedupe(),
		ChangeCase(),
		SortLines(),
		Replace(),
		FilterLines(),
	} {
		if err := reg.Register(operation); err != nil {
			// Built-in kinds are pairwise distinct, a clash here is a defect.
			panic(err)
		}
	}

	return reg
}

// Register adds an operation kind. Registering the same kind twice is an
// error.
func (r *Registry) Register(operation Operation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kind := operation.Kind()
	if _, ok := r.ops[kind]; ok {
		return errors.Errorf("operation kind %q already registered", kind)
	}

	r.ops[kind] = operation
	r.order = append(r.order, kind)

	return nil
}

// Lookup returns the operation registered for kind.
func (r *Registry) Lookup(kind Kind) (Operation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	operation, ok := r.ops[kind]
	if !ok {
		return nil, &UnknownKindError{Kind: kind}
	}

	return operation, nil
}

// List yields a descriptor for every registered kind in registration
// order. The sequence is restartable: ranging over it again starts over.
func (r *Registry) List() iter.Seq[Descriptor] {
	return func(yield func(Descriptor) bool) {
		r.mu.RLock()
		kinds := make([]Kind, len(r.order))
		copy(kinds, r.order)
		r.mu.RUnlock()

		for _, kind := range kinds {
			operation, err := r.Lookup(kind)
			if err != nil {
				continue
			}

			desc := Descriptor{
				Kind:          operation.Kind(),
				Label:         operation.Label(),
				DefaultConfig: operation.DefaultConfig().Raw(),
			}
			if !yield(desc) {
				return
			}
		}
	}
}

// DefaultConfig returns the canonical configuration for kind.
func (r *Registry) DefaultConfig(kind Kind) (Config, error) {
	operation, err := r.Lookup(kind)
	if err != nil {
		return nil, err
	}

	return operation.DefaultConfig(), nil
}

// Validate checks a wire config against the kind's schema and returns
// the field-level violations, empty when the config is valid.
func (r *Registry) Validate(kind Kind, raw map[string]any) ([]Violation, error) {
	operation, err := r.Lookup(kind)
	if err != nil {
		return nil, err
	}

	_, err = operation.DecodeConfig(raw)
	if err == nil {
		return nil, nil
	}

	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Violations, nil
	}

	return nil, err
}

// Apply runs the kind's transform on text.
func (r *Registry) Apply(kind Kind, cfg Config, text string) (string, error) {
	operation, err := r.Lookup(kind)
	if err != nil {
		return "", err
	}

	return operation.Apply(cfg, text)
}
