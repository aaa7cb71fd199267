// Package codec provides the storage representation of a pipeline: a
// schema-versioned YAML document listing {op, config, enabled} in order.
// Step ids are not stored; decoding rebuilds the pipeline through its
// own mutation API, so ids are regenerated and every config is
// re-validated against the registry.
package codec

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/askiada/go-textops/pkg/textops"
	"github.com/askiada/go-textops/pkg/textops/op"
)

// SupportedSchema is the only schema version this build reads.
const SupportedSchema = "v1"

// File is the on-disk document.
type File struct {
	SchemaVersion string     `yaml:"schema_version"`
	Steps         []StepSpec `yaml:"steps"`
}

// StepSpec is one persisted step.
type StepSpec struct {
	Op      string         `yaml:"op"`
	Config  map[string]any `yaml:"config,omitempty"`
	Enabled *bool          `yaml:"enabled,omitempty"`
}

// Encode serializes the pipeline's ordered steps.
func Encode(pipe *textops.Pipeline) ([]byte, error) {
	if pipe == nil {
		return nil, textops.ErrPipelineMustBeSet
	}

	steps := pipe.Steps()

	doc := File{
		SchemaVersion: SupportedSchema,
		Steps:         make([]StepSpec, 0, len(steps)),
	}

	for _, step := range steps {
		spec := StepSpec{
			Op:     step.Kind().String(),
			Config: step.Config().Raw(),
		}

		if !step.Enabled() {
			enabled := false
			spec.Enabled = &enabled
		}

		doc.Steps = append(doc.Steps, spec)
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "unable to marshal pipeline")
	}

	return out, nil
}

// Decode builds a pipeline from a document. An omitted schema_version
// means v1; any other version is rejected. Every step goes through
// Pipeline.AddStep, so an unknown kind or invalid config fails the
// decode with the position of the offending step.
func Decode(data []byte, opts ...textops.PipelineOption) (*textops.Pipeline, error) {
	var doc File

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "unable to unmarshal pipeline")
	}

	if doc.SchemaVersion == "" {
		doc.SchemaVersion = SupportedSchema
	}

	if doc.SchemaVersion != SupportedSchema {
		return nil, errors.Errorf("pipeline schema_version %q not supported (want %q)", doc.SchemaVersion, SupportedSchema)
	}

	pipe := textops.New(opts...)

	for i, spec := range doc.Steps {
		step, err := pipe.AddStep(op.Kind(spec.Op), spec.Config)
		if err != nil {
			return nil, errors.Wrapf(err, "step %d", i+1)
		}

		if spec.Enabled != nil && !*spec.Enabled {
			if _, err := pipe.ToggleStep(step.ID()); err != nil {
				return nil, errors.Wrapf(err, "step %d", i+1)
			}
		}
	}

	return pipe, nil
}
