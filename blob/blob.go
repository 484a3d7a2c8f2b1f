// Package blob provides identified containers of evidentiary data shared
// between measurements.
//
// A Blob is a named mapping of string keys to datums, identified by an
// opaque unique identifier minted at creation. Identity is defined solely by
// the identifier: two blobs holding identical data are still distinct, and a
// blob deserialized from JSON carries the identifier recorded in the
// document so identity survives a round trip.
//
// A Set is an identifier-keyed collection of blobs. It is what measurement
// deserialization resolves blob references against, and it guarantees that
// one identifier maps to one shared *Blob object.
package blob

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/verakit/vera/datum"
	"github.com/verakit/vera/errs"
)

// Blob is a named, identified bag of datums. Keys iterate in insertion
// order.
type Blob struct {
	id     string
	name   string
	datums map[string]*datum.Datum
	keys   []string
}

// New creates an empty blob with a freshly minted identifier. Blobs sharing
// a name generally share the same schema of datum keys.
func New(name string) *Blob {
	return &Blob{
		id:     uuid.NewString(),
		name:   name,
		datums: make(map[string]*datum.Datum),
	}
}

// fromParts restores a blob with a caller-supplied identifier. Only the
// deserialization path uses it; minting and restoring are separate
// constructors so a blob never exists with the wrong identity.
func fromParts(id, name string, datums map[string]*datum.Datum, keys []string) *Blob {
	b := &Blob{id: id, name: name, datums: make(map[string]*datum.Datum, len(datums))}
	for _, k := range keys {
		b.datums[k] = datums[k]
		b.keys = append(b.keys, k)
	}

	return b
}

// Identifier returns the blob's opaque unique identifier.
func (b *Blob) Identifier() string { return b.id }

// Name returns the blob's schema name.
func (b *Blob) Name() string { return b.name }

// Set stores a datum under key, replacing any existing value in place.
// A nil datum is rejected with ErrNilDatum.
func (b *Blob) Set(key string, d *datum.Datum) error {
	if d == nil {
		return fmt.Errorf("%w: key %q", errs.ErrNilDatum, key)
	}
	if _, exists := b.datums[key]; !exists {
		b.keys = append(b.keys, key)
	}
	b.datums[key] = d

	return nil
}

// Get returns the datum stored under key, or ErrDatumNotFound.
func (b *Blob) Get(key string) (*datum.Datum, error) {
	d, ok := b.datums[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q in blob %q", errs.ErrDatumNotFound, key, b.name)
	}

	return d, nil
}

// Delete removes the datum stored under key, or returns ErrDatumNotFound.
func (b *Blob) Delete(key string) error {
	if _, ok := b.datums[key]; !ok {
		return fmt.Errorf("%w: %q in blob %q", errs.ErrDatumNotFound, key, b.name)
	}
	delete(b.datums, key)
	for i, k := range b.keys {
		if k == key {
			b.keys = append(b.keys[:i], b.keys[i+1:]...)
			break
		}
	}

	return nil
}

// Len returns the number of stored datums.
func (b *Blob) Len() int { return len(b.datums) }

// Contains reports whether a datum is stored under key.
func (b *Blob) Contains(key string) bool {
	_, ok := b.datums[key]
	return ok
}

// Keys returns the datum keys in insertion order.
func (b *Blob) Keys() []string {
	keys := make([]string, len(b.keys))
	copy(keys, b.keys)

	return keys
}

// Equal reports identifier equality. Contained data does not participate in
// blob identity.
func (b *Blob) Equal(other *Blob) bool {
	if b == nil || other == nil {
		return b == other
	}

	return b.id == other.id
}

// blobDoc is the JSON wire form: {identifier, name, data:{key: datum}}.
type blobDoc struct {
	Identifier string                  `json:"identifier"`
	Name       string                  `json:"name"`
	Data       map[string]*datum.Datum `json:"data"`
}

// MarshalJSON implements json.Marshaler.
func (b *Blob) MarshalJSON() ([]byte, error) {
	return json.Marshal(blobDoc{
		Identifier: b.id,
		Name:       b.name,
		Data:       b.datums,
	})
}

// UnmarshalJSON implements json.Unmarshaler. The identifier from the
// document is restored verbatim, never re-minted.
func (b *Blob) UnmarshalJSON(data []byte) error {
	var doc blobDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	if doc.Identifier == "" {
		return fmt.Errorf("blob %q: missing identifier", doc.Name)
	}

	// JSON objects carry no order; iterate sorted for determinism.
	keys := make([]string, 0, len(doc.Data))
	for k := range doc.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	*b = *fromParts(doc.Identifier, doc.Name, doc.Data, keys)

	return nil
}
