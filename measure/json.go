package measure

import (
	"encoding/json"
	"fmt"

	"github.com/verakit/vera/blob"
	"github.com/verakit/vera/datum"
	"github.com/verakit/vera/metric"
	"github.com/verakit/vera/units"
)

// measurementDoc is the JSON wire form. The metric definition is embedded
// whole, while linked blobs appear only as link-name to identifier pairs;
// the blob contents live in a shared top-level list.
type measurementDoc struct {
	Metric     *metric.Metric          `json:"metric"`
	Identifier string                  `json:"identifier"`
	Value      float64                 `json:"value"`
	Unit       string                  `json:"unit"`
	Parameters map[string]*datum.Datum `json:"parameters,omitempty"`
	Extras     map[string]*datum.Datum `json:"extras,omitempty"`
	Blobs      map[string]string       `json:"blobs,omitempty"`
	SpecName   string                  `json:"spec_name,omitempty"`
	FilterName string                  `json:"filter_name,omitempty"`
}

// MarshalJSON implements json.Marshaler. Unresolved links from an earlier
// partial decode keep their identifiers so the reference survives a round
// trip even when the blob itself was absent.
func (m *Measurement) MarshalJSON() ([]byte, error) {
	doc := measurementDoc{
		Metric:     m.metric,
		Identifier: m.id,
		Value:      m.value.Value,
		Unit:       m.value.Unit.String(),
		SpecName:   m.specName,
		FilterName: m.filterName,
	}
	if len(m.parameters) > 0 {
		doc.Parameters = m.parameters
	}
	if len(m.extras) > 0 {
		doc.Extras = m.extras
	}
	if len(m.blobs) > 0 || len(m.unresolved) > 0 {
		doc.Blobs = make(map[string]string, len(m.blobs)+len(m.unresolved))
		for name, b := range m.blobs {
			doc.Blobs[name] = b.Identifier()
		}
		for name, id := range m.unresolved {
			doc.Blobs[name] = id
		}
	}

	return json.Marshal(doc)
}

// Decode rebuilds a measurement from its wire form. Blob links are resolved
// against blobs; links whose identifier is absent from the set (or a nil
// set) are recorded as unresolved rather than failing the decode, and are
// reported by Unresolved.
func Decode(data []byte, blobs *blob.Set) (*Measurement, error) {
	var doc measurementDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Metric == nil {
		return nil, fmt.Errorf("measurement %q: missing metric", doc.Identifier)
	}
	if doc.Identifier == "" {
		return nil, fmt.Errorf("measurement of %s: missing identifier", doc.Metric.Name())
	}

	unit, err := units.Parse(doc.Unit)
	if err != nil {
		return nil, fmt.Errorf("measurement %q: %w", doc.Identifier, err)
	}

	m, err := fromParts(doc.Identifier, doc.Metric, units.New(doc.Value, unit),
		WithSpecName(doc.SpecName), WithFilterName(doc.FilterName))
	if err != nil {
		return nil, err
	}

	for key, d := range doc.Parameters {
		if err := m.SetParameter(key, d); err != nil {
			return nil, err
		}
	}
	for key, d := range doc.Extras {
		if err := m.SetExtra(key, d); err != nil {
			return nil, err
		}
	}

	for name, id := range doc.Blobs {
		if blobs != nil {
			if b, ok := blobs.Lookup(id); ok {
				m.blobs[name] = b
				continue
			}
		}
		m.unresolved[name] = id
	}

	return m, nil
}
