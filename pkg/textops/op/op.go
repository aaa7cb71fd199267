package op

// Kind identifies an operation kind.
type Kind string

func (k Kind) String() string {
	return string(k)
}

// Built-in operation kinds.
const (
	KindTrim        Kind = "trim"
	KindDedupe      Kind = "dedupe"
	KindChangeCase  Kind = "change-case"
	KindSortLines   Kind = "sort-lines"
	KindReplace     Kind = "replace"
	KindFilterLines Kind = "filter-lines"
)

// Config is the typed configuration of one operation kind.
//
// Raw returns the wire/storage representation: a flat map of field name
// to value. It is the only shape that crosses the pipeline boundary;
// inside the module every config is one of the typed variants.
type Config interface {
	Kind() Kind
	Raw() map[string]any
}

// Operation is one registered operation kind.
type Operation interface {
	Kind() Kind
	// Label is the display name for an operation picker.
	Label() string
	DefaultConfig() Config

	// DecodeConfig builds the typed configuration from its wire
	// representation. Missing fields fall back to the defaults, unknown
	// fields and out-of-domain values are rejected with a *ValidationError.
	DecodeConfig(raw map[string]any) (Config, error)

	// Apply transforms text. It must be pure: deterministic for identical
	// (config, text) and free of observable side effects. A runtime
	// failure is reported as a *ExecutionError.
	Apply(cfg Config, text string) (string, error)
}

// Descriptor describes a registered kind for selection surfaces.
type Descriptor struct {
	Kind          Kind
	Label         string
	DefaultConfig map[string]any
}
