package metric

import (
	"fmt"
	"sort"

	"github.com/verakit/vera/errs"
	"github.com/verakit/vera/internal/collision"
	"github.com/verakit/vera/internal/hash"
	"github.com/verakit/vera/naming"
)

// Set is a collection of metric definitions keyed by name. Fully-qualified
// names additionally get a 64-bit hash index so callers that carry compact
// metric IDs can resolve them without the string name.
type Set struct {
	metrics map[naming.Name]*Metric
	ids     map[uint64]naming.Name
	tracker *collision.Tracker
}

// NewSet builds a set from the given metrics. Later metrics with the same
// name replace earlier ones.
func NewSet(metrics ...*Metric) (*Set, error) {
	s := &Set{
		metrics: make(map[naming.Name]*Metric, len(metrics)),
		ids:     make(map[uint64]naming.Name, len(metrics)),
		tracker: collision.NewTracker(),
	}
	for _, m := range metrics {
		if err := s.Add(m); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Add inserts a metric, replacing any existing definition with the same
// name. Metrics with fully-qualified names are also registered in the hash
// index; a hash collision between two different names is an error.
func (s *Set) Add(m *Metric) error {
	if m == nil {
		return errs.ErrNilMetric
	}

	name := m.Name()
	if name.IsFullyQualified() {
		fqn, err := name.FQN()
		if err != nil {
			return err
		}
		id := hash.ID(fqn)
		if _, err := s.tracker.Track(fqn, id); err != nil {
			return err
		}
		s.ids[id] = name
	}
	s.metrics[name] = m

	return nil
}

// Get returns the metric with the given name.
func (s *Set) Get(n naming.Name) (*Metric, error) {
	m, ok := s.metrics[n]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errs.ErrMetricNotFound, n)
	}

	return m, nil
}

// ByName returns the metric for a name string, coerced through the metric
// slot of the name algebra.
func (s *Set) ByName(key string) (*Metric, error) {
	n, err := naming.New(naming.Metric(key))
	if err != nil {
		return nil, err
	}

	return s.Get(n)
}

// ByID returns the metric whose fully-qualified name hashes to id.
func (s *Set) ByID(id uint64) (*Metric, error) {
	n, ok := s.ids[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %#x", errs.ErrMetricNotFound, id)
	}

	return s.Get(n)
}

// IDOf returns the hash ID of a metric name. The name must be fully
// qualified.
func (s *Set) IDOf(n naming.Name) (uint64, error) {
	fqn, err := n.FQN()
	if err != nil {
		return 0, err
	}

	return hash.ID(fqn), nil
}

// Contains reports whether the set holds a metric with the given name.
func (s *Set) Contains(n naming.Name) bool {
	_, ok := s.metrics[n]
	return ok
}

// Len returns the number of metrics in the set.
func (s *Set) Len() int { return len(s.metrics) }

// Names returns all metric names, sorted by their rendered form.
func (s *Set) Names() []naming.Name {
	names := make([]naming.Name, 0, len(s.metrics))
	for n := range s.metrics {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i].String() < names[j].String() })

	return names
}

// Metrics returns all metrics in name order.
func (s *Set) Metrics() []*Metric {
	names := s.Names()
	metrics := make([]*Metric, 0, len(names))
	for _, n := range names {
		metrics = append(metrics, s.metrics[n])
	}

	return metrics
}
