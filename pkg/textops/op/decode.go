package op

import (
	"fmt"
	"sort"
)

// decoder reads typed fields out of a wire config map, collecting
// field-level violations instead of failing fast so a caller sees every
// problem at once.
type decoder struct {
	kind       Kind
	raw        map[string]any
	seen       map[string]struct{}
	violations []Violation
}

func newDecoder(kind Kind, raw map[string]any) *decoder {
	return &decoder{
		kind: kind,
		raw:  raw,
		seen: make(map[string]struct{}, len(raw)),
	}
}

func (d *decoder) violation(field, reason string) {
	d.violations = append(d.violations, Violation{Field: field, Reason: reason})
}

func (d *decoder) boolField(name string, def bool) bool {
	d.seen[name] = struct{}{}

	val, ok := d.raw[name]
	if !ok {
		return def
	}

	b, ok := val.(bool)
	if !ok {
		d.violation(name, fmt.Sprintf("must be a boolean, got %T", val))

		return def
	}

	return b
}

func (d *decoder) stringField(name, def string) string {
	d.seen[name] = struct{}{}

	val, ok := d.raw[name]
	if !ok {
		return def
	}

	s, ok := val.(string)
	if !ok {
		d.violation(name, fmt.Sprintf("must be a string, got %T", val))

		return def
	}

	return s
}

func (d *decoder) enumField(name, def string, allowed ...string) string {
	d.seen[name] = struct{}{}

	val, ok := d.raw[name]
	if !ok {
		return def
	}

	s, ok := val.(string)
	if !ok {
		d.violation(name, fmt.Sprintf("must be a string, got %T", val))

		return def
	}

	for _, a := range allowed {
		if s == a {
			return s
		}
	}

	d.violation(name, fmt.Sprintf("must be one of %v, got %q", allowed, s))

	return def
}

// err reports the collected violations plus any field the schema does
// not know about. It returns nil when the config is valid.
func (d *decoder) err() error {
	unknown := make([]string, 0)

	for name := range d.raw {
		if _, ok := d.seen[name]; !ok {
			unknown = append(unknown, name)
		}
	}

	sort.Strings(unknown)

	violations := d.violations
	for _, name := range unknown {
		violations = append(violations, Violation{Field: name, Reason: "unknown field"})
	}

	if len(violations) == 0 {
		return nil
	}

	return &ValidationError{Kind: d.kind, Violations: violations}
}
