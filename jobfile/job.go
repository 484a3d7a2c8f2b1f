// Package jobfile serializes whole verification runs to disk.
//
// A Job gathers the measurements of one run together with any standalone
// evidence blobs. Encode writes a single JSON document in which every blob,
// whether linked from a measurement or standalone, appears exactly once in
// a shared top-level list; measurements reference blobs by identifier.
// Decode reverses this, rebuilding the object graph so that measurements
// linking the same blob share one *blob.Blob.
//
// The document may optionally be compressed. Compressed files start with a
// small envelope (magic, format version, codec) so Decode can sniff the
// codec; uncompressed files are plain JSON.
package jobfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/verakit/vera/blob"
	"github.com/verakit/vera/errs"
	"github.com/verakit/vera/measure"
)

// Job is the collected output of one verification run.
type Job struct {
	measurements []*measure.Measurement
	blobs        []*blob.Blob
}

// NewJob builds an empty job.
func NewJob() *Job {
	return &Job{}
}

// AddMeasurement appends a measurement to the job.
func (j *Job) AddMeasurement(m *measure.Measurement) error {
	if m == nil {
		return errors.New("jobfile: nil measurement")
	}
	j.measurements = append(j.measurements, m)

	return nil
}

// AddBlob appends a standalone blob not linked from any measurement.
func (j *Job) AddBlob(b *blob.Blob) error {
	if b == nil {
		return errs.ErrNilBlob
	}
	j.blobs = append(j.blobs, b)

	return nil
}

// Measurements returns the job's measurements in insertion order.
func (j *Job) Measurements() []*measure.Measurement { return j.measurements }

// Blobs returns the job's standalone blobs in insertion order.
func (j *Job) Blobs() []*blob.Blob { return j.blobs }

// Len returns the number of measurements in the job.
func (j *Job) Len() int { return len(j.measurements) }

// blobUnion collects every blob reachable from the job, deduplicated by
// identifier and sorted by identifier for a stable wire order.
func (j *Job) blobUnion() []*blob.Blob {
	seen := make(map[string]*blob.Blob)
	for _, m := range j.measurements {
		for _, b := range m.Blobs() {
			seen[b.Identifier()] = b
		}
	}
	for _, b := range j.blobs {
		seen[b.Identifier()] = b
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	union := make([]*blob.Blob, 0, len(ids))
	for _, id := range ids {
		union = append(union, seen[id])
	}

	return union
}

// jobDoc is the JSON wire form of a job.
type jobDoc struct {
	Measurements []json.RawMessage `json:"measurements"`
	Blobs        []json.RawMessage `json:"blobs"`
}

// marshalDoc serializes the job's object graph into the wire form.
func (j *Job) marshalDoc() ([]byte, error) {
	doc := jobDoc{
		Measurements: make([]json.RawMessage, 0, len(j.measurements)),
		Blobs:        make([]json.RawMessage, 0),
	}
	for _, m := range j.measurements {
		raw, err := json.Marshal(m)
		if err != nil {
			return nil, err
		}
		doc.Measurements = append(doc.Measurements, raw)
	}
	for _, b := range j.blobUnion() {
		raw, err := json.Marshal(b)
		if err != nil {
			return nil, err
		}
		doc.Blobs = append(doc.Blobs, raw)
	}

	return json.Marshal(doc)
}

// unmarshalDoc rebuilds the job's object graph from the wire form. Blobs
// decode first so measurement links resolve against the shared set. With
// strict enabled, any link naming a blob identifier absent from the
// document fails the decode.
func unmarshalDoc(data []byte, strict bool) (*Job, error) {
	var doc jobDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	blobs, err := blob.DecodeSet(doc.Blobs)
	if err != nil {
		return nil, err
	}

	job := NewJob()
	linked := make(map[string]struct{})
	var dangling []error
	for _, raw := range doc.Measurements {
		m, err := measure.Decode(raw, blobs)
		if err != nil {
			return nil, err
		}
		for _, b := range m.Blobs() {
			linked[b.Identifier()] = struct{}{}
		}
		if strict {
			for name, id := range m.Unresolved() {
				dangling = append(dangling, fmt.Errorf("%w: measurement %s links %q to missing blob %s",
					errs.ErrDanglingBlobRef, m.Metric().Name(), name, id))
			}
		}
		job.measurements = append(job.measurements, m)
	}
	if len(dangling) > 0 {
		return nil, errors.Join(dangling...)
	}

	// Blobs nothing links to are the standalone ones.
	for _, b := range blobs.Blobs() {
		if _, ok := linked[b.Identifier()]; !ok {
			job.blobs = append(job.blobs, b)
		}
	}

	return job, nil
}
