// Package metric provides metric definitions and the sets that index them.
//
// A Metric records what a named quality measure means: its unit, a
// description, grouping tags, and the document reference that defined it.
// Definitions are typically loaded from YAML definition files, one file per
// package, and collected into a Set keyed by name. The Set also maintains a
// 64-bit hash index over fully-qualified names for ID-based lookup.
package metric

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/verakit/vera/internal/options"
	"github.com/verakit/vera/naming"
	"github.com/verakit/vera/units"
)

// Metric is the definition of a named quality measure. The name,
// description, and tags are fixed at construction; the unit and reference
// fields have typed setters that preserve validation.
type Metric struct {
	name        naming.Name
	description string
	unit        units.Unit
	tags        map[string]struct{}

	refDoc  string
	refPage int
	refURL  string
}

// Option configures a Metric during construction.
type Option = options.Option[Metric]

// WithTags adds grouping tags to the metric. Duplicates collapse.
func WithTags(tags ...string) Option {
	return options.NoError(func(m *Metric) {
		for _, t := range tags {
			m.tags[t] = struct{}{}
		}
	})
}

// WithReference sets the document reference that defined the metric. Pass
// zero values for fields that do not apply.
func WithReference(doc string, page int, url string) Option {
	return options.NoError(func(m *Metric) {
		m.refDoc = doc
		m.refPage = page
		m.refURL = url
	})
}

// New builds a metric definition. The name may be bare ("PA1") or
// package-qualified ("validate_drp.PA1").
func New(name, description string, unit units.Unit, opts ...Option) (*Metric, error) {
	n, err := naming.New(naming.Metric(name))
	if err != nil {
		return nil, err
	}

	m := &Metric{
		name:        n,
		description: description,
		unit:        unit,
		tags:        make(map[string]struct{}),
	}
	if err := options.Apply(m, opts...); err != nil {
		return nil, err
	}

	return m, nil
}

// Name returns the metric's name.
func (m *Metric) Name() naming.Name { return m.name }

// Description returns the metric's short description.
func (m *Metric) Description() string { return m.description }

// Unit returns the metric's semantic unit.
func (m *Metric) Unit() units.Unit { return m.unit }

// SetUnit replaces the metric's unit.
func (m *Metric) SetUnit(u units.Unit) { m.unit = u }

// UnitString returns the metric's unit string.
func (m *Metric) UnitString() string { return m.unit.String() }

// SetUnitString replaces the metric's unit by re-parsing a unit string.
func (m *Metric) SetUnitString(s string) error {
	u, err := units.Parse(s)
	if err != nil {
		return err
	}
	m.unit = u

	return nil
}

// Tags returns the metric's tags, sorted.
func (m *Metric) Tags() []string {
	tags := make([]string, 0, len(m.tags))
	for t := range m.tags {
		tags = append(tags, t)
	}
	sort.Strings(tags)

	return tags
}

// HasTag reports whether the metric carries the given tag.
func (m *Metric) HasTag(tag string) bool {
	_, ok := m.tags[tag]
	return ok
}

// ReferenceDoc returns the handle of the defining document.
func (m *Metric) ReferenceDoc() string { return m.refDoc }

// ReferencePage returns the page in the defining document, 0 if unset.
func (m *Metric) ReferencePage() int { return m.refPage }

// ReferenceURL returns the defining document's URL.
func (m *Metric) ReferenceURL() string { return m.refURL }

// SetReference replaces the document reference fields.
func (m *Metric) SetReference(doc string, page int, url string) {
	m.refDoc = doc
	m.refPage = page
	m.refURL = url
}

// Reference formats the document reference as human-readable text, e.g.
// "LPM-17, p. 32, https://example.com", using whichever fields are set.
func (m *Metric) Reference() string {
	var ref string
	switch {
	case m.refDoc != "" && m.refPage != 0:
		ref = fmt.Sprintf("%s, p. %d", m.refDoc, m.refPage)
	case m.refDoc != "":
		ref = m.refDoc
	}

	switch {
	case m.refURL != "" && m.refDoc != "":
		ref += ", " + m.refURL
	case m.refURL != "":
		ref = m.refURL
	}

	return ref
}

// CheckUnit reports whether a quantity's unit is convertible to this
// metric's unit, i.e. whether the quantity can be presented in the metric's
// unit.
func (m *Metric) CheckUnit(q units.Quantity) bool {
	return q.Unit.ConvertibleTo(m.unit)
}

// Equal reports whether two metrics agree on every field: name,
// description, unit, tags, and all reference fields.
func (m *Metric) Equal(other *Metric) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.name != other.name ||
		m.description != other.description ||
		m.unit != other.unit ||
		m.refDoc != other.refDoc ||
		m.refPage != other.refPage ||
		m.refURL != other.refURL {
		return false
	}
	if len(m.tags) != len(other.tags) {
		return false
	}
	for t := range m.tags {
		if _, ok := other.tags[t]; !ok {
			return false
		}
	}

	return true
}

// String renders the metric as `name (unit): "description"`.
func (m *Metric) String() string {
	unit := m.unit.String()
	if unit == "" {
		unit = "dimensionless"
	}

	return fmt.Sprintf("%s (%s): %q", m.name, unit, m.description)
}

// referenceDoc is the reference object of the metric wire form.
type referenceDoc struct {
	Doc  string `json:"doc,omitempty" yaml:"doc"`
	Page int    `json:"page,omitempty" yaml:"page"`
	URL  string `json:"url,omitempty" yaml:"url"`
}

// metricDoc is the JSON wire form:
// {name, description, unit, tags, reference:{doc,page,url}}.
type metricDoc struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Unit        string        `json:"unit"`
	Tags        []string      `json:"tags,omitempty"`
	Reference   *referenceDoc `json:"reference,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (m *Metric) MarshalJSON() ([]byte, error) {
	doc := metricDoc{
		Name:        m.name.String(),
		Description: m.description,
		Unit:        m.unit.String(),
		Tags:        m.Tags(),
	}
	if m.refDoc != "" || m.refPage != 0 || m.refURL != "" {
		doc.Reference = &referenceDoc{Doc: m.refDoc, Page: m.refPage, URL: m.refURL}
	}

	return json.Marshal(doc)
}

// UnmarshalJSON implements json.Unmarshaler. A single trailing newline left
// by block-folded YAML descriptions is stripped.
func (m *Metric) UnmarshalJSON(data []byte) error {
	var doc metricDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	rebuilt, err := fromDoc(doc)
	if err != nil {
		return err
	}
	*m = *rebuilt

	return nil
}

// fromDoc builds a Metric from the shared wire form.
func fromDoc(doc metricDoc) (*Metric, error) {
	unit, err := units.Parse(doc.Unit)
	if err != nil {
		return nil, fmt.Errorf("metric %q: %w", doc.Name, err)
	}

	opts := []Option{WithTags(doc.Tags...)}
	if doc.Reference != nil {
		opts = append(opts, WithReference(doc.Reference.Doc, doc.Reference.Page, doc.Reference.URL))
	}

	return New(doc.Name, strings.TrimSuffix(doc.Description, "\n"), unit, opts...)
}
