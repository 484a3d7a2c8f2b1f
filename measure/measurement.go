// Package measure provides measurements of metrics and the JSON object
// graph that links them to evidentiary blobs.
//
// A Measurement pairs a metric definition with an observed quantity, plus
// optional input parameters, derived extras, and links to blob.Blob
// evidence. On the wire a measurement stores only the identifiers of its
// linked blobs; the blobs themselves are serialized once in a shared
// top-level list. Decode rebuilds the graph in two phases so that
// measurements linking the same blob share one *blob.Blob.
package measure

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/verakit/vera/blob"
	"github.com/verakit/vera/datum"
	"github.com/verakit/vera/errs"
	"github.com/verakit/vera/internal/options"
	"github.com/verakit/vera/metric"
	"github.com/verakit/vera/spec"
	"github.com/verakit/vera/units"
)

// Measurement is one observation of a metric. Its identifier is minted at
// construction and preserved across serialization round trips.
type Measurement struct {
	id     string
	metric *metric.Metric
	value  units.Quantity

	parameters map[string]*datum.Datum
	extras     map[string]*datum.Datum

	blobs      map[string]*blob.Blob
	unresolved map[string]string

	specName   string
	filterName string
}

// Option configures a Measurement during construction.
type Option = options.Option[Measurement]

// WithParameter records an input parameter of the measurement.
func WithParameter(key string, d *datum.Datum) Option {
	return options.New(func(m *Measurement) error {
		return m.SetParameter(key, d)
	})
}

// WithExtra records a derived by-product of the measurement.
func WithExtra(key string, d *datum.Datum) Option {
	return options.New(func(m *Measurement) error {
		return m.SetExtra(key, d)
	})
}

// WithBlob links an evidence blob under its own name.
func WithBlob(b *blob.Blob) Option {
	return options.New(func(m *Measurement) error {
		return m.LinkBlob(b)
	})
}

// WithSpecName tags the measurement with the specification it was made
// against.
func WithSpecName(name string) Option {
	return options.NoError(func(m *Measurement) { m.specName = name })
}

// WithFilterName tags the measurement with the optical filter it was made
// in.
func WithFilterName(name string) Option {
	return options.NoError(func(m *Measurement) { m.filterName = name })
}

// New builds a measurement of the named metric. The metric is resolved in
// the given set, and the value's unit must be convertible to the metric's
// unit.
func New(metrics *metric.Set, name string, value units.Quantity, opts ...Option) (*Measurement, error) {
	if metrics == nil {
		return nil, errs.ErrMissingMetricSet
	}
	def, err := metrics.ByName(name)
	if err != nil {
		return nil, err
	}

	return NewOfMetric(def, value, opts...)
}

// NewOfMetric builds a measurement of an already-resolved metric.
func NewOfMetric(def *metric.Metric, value units.Quantity, opts ...Option) (*Measurement, error) {
	return fromParts(uuid.NewString(), def, value, opts...)
}

// fromParts builds a measurement with a caller-supplied identifier. Only the
// deserialization path uses it; minting and restoring are separate
// constructors so a measurement never exists with the wrong identity.
func fromParts(id string, def *metric.Metric, value units.Quantity, opts ...Option) (*Measurement, error) {
	if def == nil {
		return nil, errs.ErrNilMetric
	}
	if !def.CheckUnit(value) {
		return nil, fmt.Errorf("%w: metric %s expects %q, got %q",
			errs.ErrUnitMismatch, def.Name(), def.UnitString(), value.Unit.String())
	}

	m := &Measurement{
		id:         id,
		metric:     def,
		value:      value,
		parameters: make(map[string]*datum.Datum),
		extras:     make(map[string]*datum.Datum),
		blobs:      make(map[string]*blob.Blob),
		unresolved: make(map[string]string),
	}
	if err := options.Apply(m, opts...); err != nil {
		return nil, err
	}

	return m, nil
}

// Identifier returns the measurement's unique identifier.
func (m *Measurement) Identifier() string { return m.id }

// Metric returns the measured metric's definition.
func (m *Measurement) Metric() *metric.Metric { return m.metric }

// Value returns the observed quantity.
func (m *Measurement) Value() units.Quantity { return m.value }

// SpecName returns the specification tag, if any.
func (m *Measurement) SpecName() string { return m.specName }

// FilterName returns the optical filter tag, if any.
func (m *Measurement) FilterName() string { return m.filterName }

// Parameter returns the named input parameter.
func (m *Measurement) Parameter(key string) (*datum.Datum, error) {
	d, ok := m.parameters[key]
	if !ok {
		return nil, fmt.Errorf("%w: parameter %q", errs.ErrDatumNotFound, key)
	}

	return d, nil
}

// SetParameter records an input parameter.
func (m *Measurement) SetParameter(key string, d *datum.Datum) error {
	if d == nil {
		return fmt.Errorf("%w: parameter %q", errs.ErrNilDatum, key)
	}
	m.parameters[key] = d

	return nil
}

// ParameterKeys returns the parameter keys, sorted.
func (m *Measurement) ParameterKeys() []string { return sortedKeys(m.parameters) }

// Extra returns the named derived by-product.
func (m *Measurement) Extra(key string) (*datum.Datum, error) {
	d, ok := m.extras[key]
	if !ok {
		return nil, fmt.Errorf("%w: extra %q", errs.ErrDatumNotFound, key)
	}

	return d, nil
}

// SetExtra records a derived by-product.
func (m *Measurement) SetExtra(key string, d *datum.Datum) error {
	if d == nil {
		return fmt.Errorf("%w: extra %q", errs.ErrNilDatum, key)
	}
	m.extras[key] = d

	return nil
}

// ExtraKeys returns the extra keys, sorted.
func (m *Measurement) ExtraKeys() []string { return sortedKeys(m.extras) }

// LinkBlob links an evidence blob under its name.
func (m *Measurement) LinkBlob(b *blob.Blob) error {
	if b == nil {
		return errs.ErrNilBlob
	}
	m.blobs[b.Name()] = b
	delete(m.unresolved, b.Name())

	return nil
}

// Blob returns the linked blob with the given link name.
func (m *Measurement) Blob(name string) (*blob.Blob, error) {
	b, ok := m.blobs[name]
	if !ok {
		return nil, fmt.Errorf("%w: link %q", errs.ErrBlobNotFound, name)
	}

	return b, nil
}

// Blobs returns the linked blobs in link-name order.
func (m *Measurement) Blobs() []*blob.Blob {
	names := sortedKeys(m.blobs)
	blobs := make([]*blob.Blob, 0, len(names))
	for _, name := range names {
		blobs = append(blobs, m.blobs[name])
	}

	return blobs
}

// Unresolved returns blob links that could not be resolved during decoding,
// as a link-name to blob-identifier map. Empty after a fully-resolved
// decode and for freshly built measurements.
func (m *Measurement) Unresolved() map[string]string {
	out := make(map[string]string, len(m.unresolved))
	for name, id := range m.unresolved {
		out[name] = id
	}

	return out
}

// CheckSpec checks the measured value against a named threshold in specs.
func (m *Measurement) CheckSpec(specs *spec.Set, name string) (bool, error) {
	if specs == nil {
		return false, fmt.Errorf("%w: no specification set", errs.ErrSpecNotFound)
	}
	t, err := specs.ByName(name)
	if err != nil {
		return false, err
	}

	return t.Check(m.value)
}

// String renders the measurement as "name: value unit".
func (m *Measurement) String() string {
	return fmt.Sprintf("%s: %s", m.metric.Name(), m.value)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}
