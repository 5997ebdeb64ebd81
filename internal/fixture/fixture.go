// Package fixture provides test-data builders. Each builder seeds
// type-specific defaults, accumulates overrides through chainable setters,
// and validates the merged field set when Build materializes the value.
// Builders are transient, caller-owned accumulators; built values are
// independent of the builder and of each other.
//
//	e, err := fixture.Entity().WithName("Important Item").Build()
//	batch, err := fixture.Entity().BuildMany(10, nil)
//	resp, err := fixture.Response().Success(map[string]any{"id": "123"}).Build()
package fixture

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Fields is the pending field set of a builder, keyed by schema field name.
type Fields map[string]any

// Modifier customizes one item of a BuildMany batch. It receives a copy of
// the accumulated base fields and the item index, and returns the fields to
// materialize for that index. Keys it leaves out keep the base value.
type Modifier func(base Fields, i int) Fields

// BuildError reports a fixture that does not conform to its target schema.
// It indicates a broken test, not a domain condition to branch on.
type BuildError struct {
	Target      string
	FieldErrors map[string]string
}

func (e *BuildError) Error() string {
	fields := make([]string, 0, len(e.FieldErrors))
	for name, msg := range e.FieldErrors {
		fields = append(fields, fmt.Sprintf("%s: %s", name, msg))
	}
	sort.Strings(fields)
	return fmt.Sprintf("invalid %s fixture: %s", e.Target, strings.Join(fields, "; "))
}

// base is embedded by every builder; concrete builders re-expose set through
// typed chainable methods.
type base struct {
	fields Fields
}

func (b *base) set(name string, value any) {
	b.fields[name] = value
}

// snapshot copies the accumulated fields one map level deep, so built values
// and batch items never share mutable state with the builder.
func (b *base) snapshot() Fields {
	return copyFields(b.fields)
}

func copyFields(fields Fields) Fields {
	out := make(Fields, len(fields))
	for k, v := range fields {
		switch m := v.(type) {
		case map[string]any:
			c := make(map[string]any, len(m))
			for mk, mv := range m {
				c[mk] = mv
			}
			out[k] = c
		case map[string]string:
			c := make(map[string]string, len(m))
			for mk, mv := range m {
				c[mk] = mv
			}
			out[k] = c
		case map[string]bool:
			c := make(map[string]bool, len(m))
			for mk, mv := range m {
				c[mk] = mv
			}
			out[k] = c
		default:
			out[k] = v
		}
	}
	return out
}

// buildMany materializes count items eagerly. Each index starts from a fresh
// copy of base; modifier output is merged over it so omitted keys fall back
// to the accumulated value. Every item is validated independently. A count
// of zero or less yields an empty batch.
func buildMany[T any](base Fields, count int, modifier Modifier, build func(Fields) (T, error)) ([]T, error) {
	if count < 0 {
		count = 0
	}
	out := make([]T, 0, count)
	for i := 0; i < count; i++ {
		fields := copyFields(base)
		if modifier != nil {
			for k, v := range modifier(copyFields(base), i) {
				fields[k] = v
			}
		}
		item, err := build(fields)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, item)
	}
	return out, nil
}

// decoder pulls typed values out of a field set, collecting every schema
// violation instead of stopping at the first one.
type decoder struct {
	target string
	fields Fields
	known  map[string]bool
	errs   map[string]string
}

func newDecoder(target string, fields Fields, knownFields ...string) *decoder {
	known := make(map[string]bool, len(knownFields))
	for _, f := range knownFields {
		known[f] = true
	}
	d := &decoder{target: target, fields: fields, known: known, errs: make(map[string]string)}
	for name := range fields {
		if !known[name] {
			d.errs[name] = "field not recognized by schema"
		}
	}
	return d
}

func (d *decoder) fail(name, msg string) {
	d.errs[name] = msg
}

func (d *decoder) str(name string) string {
	v, ok := d.fields[name].(string)
	if !ok {
		d.fail(name, fmt.Sprintf("expected string, got %T", d.fields[name]))
	}
	return v
}

func (d *decoder) boolean(name string) bool {
	v, ok := d.fields[name].(bool)
	if !ok {
		d.fail(name, fmt.Sprintf("expected bool, got %T", d.fields[name]))
	}
	return v
}

// integer accepts the numeric types a test is likely to pass literally.
func (d *decoder) integer(name string) int64 {
	switch v := d.fields[name].(type) {
	case int:
		return int64(v)
	case int64:
		return v
	case float64:
		if v == float64(int64(v)) {
			return int64(v)
		}
		d.fail(name, "expected integer, got fractional number")
	default:
		d.fail(name, fmt.Sprintf("expected integer, got %T", d.fields[name]))
	}
	return 0
}

func (d *decoder) float(name string) float64 {
	switch v := d.fields[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		d.fail(name, fmt.Sprintf("expected number, got %T", d.fields[name]))
	}
	return 0
}

func (d *decoder) instant(name string) time.Time {
	v, ok := d.fields[name].(time.Time)
	if !ok {
		d.fail(name, fmt.Sprintf("expected time.Time, got %T", d.fields[name]))
	}
	return v
}

func (d *decoder) duration(name string) time.Duration {
	v, ok := d.fields[name].(time.Duration)
	if !ok {
		d.fail(name, fmt.Sprintf("expected time.Duration, got %T", d.fields[name]))
	}
	return v
}

func (d *decoder) anyMap(name string) map[string]any {
	v, ok := d.fields[name].(map[string]any)
	if !ok {
		d.fail(name, fmt.Sprintf("expected map[string]any, got %T", d.fields[name]))
	}
	return v
}

func (d *decoder) stringMap(name string) map[string]string {
	v, ok := d.fields[name].(map[string]string)
	if !ok {
		d.fail(name, fmt.Sprintf("expected map[string]string, got %T", d.fields[name]))
	}
	return v
}

func (d *decoder) boolMap(name string) map[string]bool {
	v, ok := d.fields[name].(map[string]bool)
	if !ok {
		d.fail(name, fmt.Sprintf("expected map[string]bool, got %T", d.fields[name]))
	}
	return v
}

func (d *decoder) finish() error {
	if len(d.errs) == 0 {
		return nil
	}
	return &BuildError{Target: d.target, FieldErrors: d.errs}
}

func oneOf(value string, allowed ...string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}
