package measure

import (
	"fmt"
	"sort"
	"strings"

	"github.com/verakit/vera/errs"
	"github.com/verakit/vera/metric"
	"github.com/verakit/vera/naming"
	"github.com/verakit/vera/units"
)

// Set is a named collection of measurements keyed by metric name.
type Set struct {
	name         string
	measurements map[naming.Name]*Measurement
}

// NewSet builds a measurement set from a map of metric name strings to
// observed quantities, resolving each name in metrics.
func NewSet(name string, values map[string]units.Quantity, metrics *metric.Set) (*Set, error) {
	if metrics == nil {
		return nil, errs.ErrMissingMetricSet
	}

	s := EmptySet(name)
	for key, value := range values {
		m, err := New(metrics, key, value)
		if err != nil {
			return nil, err
		}
		s.Add(m)
	}

	return s, nil
}

// EmptySet builds an empty measurement set with the given name.
func EmptySet(name string) *Set {
	return &Set{name: name, measurements: make(map[naming.Name]*Measurement)}
}

// Name returns the set's name.
func (s *Set) Name() string { return s.name }

// Add inserts a measurement, replacing any existing measurement of the
// same metric.
func (s *Set) Add(m *Measurement) {
	if m != nil {
		s.measurements[m.Metric().Name()] = m
	}
}

// Get returns the measurement of the given metric.
func (s *Set) Get(n naming.Name) (*Measurement, error) {
	m, ok := s.measurements[n]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errs.ErrMeasurementNotFound, n)
	}

	return m, nil
}

// ByName returns the measurement for a metric name string.
func (s *Set) ByName(key string) (*Measurement, error) {
	n, err := naming.New(naming.Metric(key))
	if err != nil {
		return nil, err
	}

	return s.Get(n)
}

// Contains reports whether the set holds a measurement of the given metric.
func (s *Set) Contains(n naming.Name) bool {
	_, ok := s.measurements[n]
	return ok
}

// Len returns the number of measurements in the set.
func (s *Set) Len() int { return len(s.measurements) }

// Names returns the measured metric names, sorted by their rendered form.
func (s *Set) Names() []naming.Name {
	names := make([]naming.Name, 0, len(s.measurements))
	for n := range s.measurements {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i].String() < names[j].String() })

	return names
}

// Measurements returns the measurements in metric-name order.
func (s *Set) Measurements() []*Measurement {
	names := s.Names()
	out := make([]*Measurement, 0, len(names))
	for _, n := range names {
		out = append(out, s.measurements[n])
	}

	return out
}

// String renders the set as its name followed by one "metric: value"
// line per measurement, in metric-name order.
func (s *Set) String() string {
	var sb strings.Builder
	sb.WriteString(s.name)
	sb.WriteString(": {\n")
	for _, n := range s.Names() {
		sb.WriteString(s.measurements[n].String())
		sb.WriteString(",\n")
	}
	sb.WriteString("}")

	return sb.String()
}
