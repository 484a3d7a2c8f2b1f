// Package vera is a data layer for quality metrics: metric definitions,
// threshold specifications, measurements of metrics, and the evidentiary
// data blobs that back them.
//
// The focused subpackages carry the functionality:
//
//   - naming: the three-component metric name algebra
//   - units: the unit vocabulary and convertibility oracle
//   - datum: self-describing scalar values
//   - blob: identity-bearing evidence containers and sets
//   - metric: metric definitions, YAML loading, and indexed sets
//   - spec: pass/fail threshold specifications
//   - measure: measurements and their blob-linked object graph
//   - jobfile: whole-run serialization with optional compression
//
// This package re-exports the common entry points so most callers need
// only one import.
package vera

import (
	"io"

	"github.com/verakit/vera/internal/hash"
	"github.com/verakit/vera/jobfile"
	"github.com/verakit/vera/metric"
)

// MetricID returns the 64-bit hash ID of a fully-qualified metric name
// string, as used by metric.Set's ID index.
func MetricID(fqn string) uint64 {
	return hash.ID(fqn)
}

// LoadMetricSet loads every metric definition file in a directory into one
// set. See metric.LoadDir.
func LoadMetricSet(dir string) (*metric.Set, error) {
	return metric.LoadDir(dir)
}

// NewJob builds an empty verification job. See jobfile.NewJob.
func NewJob() *jobfile.Job {
	return jobfile.NewJob()
}

// EncodeJob writes a job document, optionally compressed. See Job.Encode.
func EncodeJob(w io.Writer, job *jobfile.Job, opts ...jobfile.EncodeOption) error {
	return job.Encode(w, opts...)
}

// DecodeJob reads a job document, compressed or plain. See jobfile.Decode.
func DecodeJob(r io.Reader, opts ...jobfile.DecodeOption) (*jobfile.Job, error) {
	return jobfile.Decode(r, opts...)
}
