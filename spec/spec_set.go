package spec

import (
	"fmt"
	"sort"

	"github.com/verakit/vera/errs"
	"github.com/verakit/vera/naming"
)

// Set is a collection of threshold specifications keyed by name.
type Set struct {
	specs map[naming.Name]*Threshold
}

// NewSet builds a set from the given thresholds. Later thresholds with the
// same name replace earlier ones.
func NewSet(thresholds ...*Threshold) *Set {
	s := &Set{specs: make(map[naming.Name]*Threshold, len(thresholds))}
	for _, t := range thresholds {
		if t != nil {
			s.specs[t.Name()] = t
		}
	}

	return s
}

// Add inserts a threshold, replacing any existing one with the same name.
func (s *Set) Add(t *Threshold) {
	if t != nil {
		s.specs[t.Name()] = t
	}
}

// Get returns the threshold with the given name.
func (s *Set) Get(n naming.Name) (*Threshold, error) {
	t, ok := s.specs[n]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errs.ErrSpecNotFound, n)
	}

	return t, nil
}

// ByName returns the threshold for a name string, coerced through the spec
// slot of the name algebra.
func (s *Set) ByName(key string) (*Threshold, error) {
	n, err := naming.New(naming.Spec(key))
	if err != nil {
		return nil, err
	}
	if !n.HasSpec() {
		return nil, fmt.Errorf("%w: %q is not a spec name", errs.ErrSpecNotFound, key)
	}

	return s.Get(n)
}

// Contains reports whether the set holds a threshold with the given name.
func (s *Set) Contains(n naming.Name) bool {
	_, ok := s.specs[n]
	return ok
}

// Len returns the number of thresholds in the set.
func (s *Set) Len() int { return len(s.specs) }

// Names returns all threshold names, sorted by their rendered form.
func (s *Set) Names() []naming.Name {
	names := make([]naming.Name, 0, len(s.specs))
	for n := range s.specs {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i].String() < names[j].String() })

	return names
}
