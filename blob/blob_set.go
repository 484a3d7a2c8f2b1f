package blob

import (
	"encoding/json"
	"fmt"
)

// Set is an identifier-keyed collection of blobs. Adding a blob whose
// identifier is already present is a no-op, so every identifier resolves to
// exactly one shared *Blob object. That sharing is what lets two
// measurements referencing the same identifier end up linked to the same
// blob after deserialization.
type Set struct {
	byID  map[string]*Blob
	order []string
}

// NewSet creates a Set holding the given blobs, deduplicated by identifier.
func NewSet(blobs ...*Blob) *Set {
	s := &Set{byID: make(map[string]*Blob, len(blobs))}
	for _, b := range blobs {
		s.Add(b)
	}

	return s
}

// Add inserts a blob unless its identifier is already present. It reports
// whether the blob was inserted. Nil blobs are ignored. The zero Set is
// ready to use.
func (s *Set) Add(b *Blob) bool {
	if b == nil {
		return false
	}
	if s.byID == nil {
		s.byID = make(map[string]*Blob)
	}
	if _, exists := s.byID[b.id]; exists {
		return false
	}
	s.byID[b.id] = b
	s.order = append(s.order, b.id)

	return true
}

// Lookup returns the blob with the given identifier.
func (s *Set) Lookup(id string) (*Blob, bool) {
	if s == nil {
		return nil, false
	}
	b, ok := s.byID[id]

	return b, ok
}

// Len returns the number of blobs in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}

	return len(s.byID)
}

// Blobs returns the blobs in insertion order.
func (s *Set) Blobs() []*Blob {
	if s == nil {
		return nil
	}
	out := make([]*Blob, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}

	return out
}

// DecodeSet reconstructs a Set from a flat list of blob JSON records, such
// as the top-level blobs array of a job document. Records sharing an
// identifier collapse to a single blob object.
func DecodeSet(docs []json.RawMessage) (*Set, error) {
	s := NewSet()
	for i, doc := range docs {
		var b Blob
		if err := json.Unmarshal(doc, &b); err != nil {
			return nil, fmt.Errorf("blob record %d: %w", i, err)
		}
		s.Add(&b)
	}

	return s, nil
}

// MarshalJSON implements json.Marshaler, emitting the flat blob list in
// insertion order.
func (s *Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Blobs())
}
