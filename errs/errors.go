// Package errs defines the sentinel errors shared across vera packages.
//
// Callers should test errors with errors.Is; packages wrap these sentinels
// with fmt.Errorf("%w: ...") to add context without breaking matching.
package errs

import "errors"

// Name construction and parsing errors.
var (
	// ErrNameParse indicates a dotted name string whose part count does not
	// fit the slot it was supplied for.
	ErrNameParse = errors.New("invalid name string")

	// ErrNameConflict indicates that two sources supplied different values
	// for the same name component.
	ErrNameConflict = errors.New("conflicting name components")

	// ErrIncompleteName indicates a package-qualified specification name
	// with no metric component to anchor it.
	ErrIncompleteName = errors.New("specification name requires a metric component")

	// ErrWrongNameKind indicates a Name supplied for a slot whose kind of
	// information it does not carry.
	ErrWrongNameKind = errors.New("name does not carry the required component")

	// ErrNotFullyQualified indicates a request for the fully-qualified form
	// of a name that is missing required components.
	ErrNotFullyQualified = errors.New("name is not fully qualified")

	// ErrNotRelative indicates a request for the metric-relative form of a
	// name that is not a specification qualified by a metric.
	ErrNotRelative = errors.New("name is not a relative specification name")
)

// Unit and quantity errors.
var (
	// ErrUnitParse indicates an unrecognized unit string.
	ErrUnitParse = errors.New("invalid unit string")

	// ErrUnitMismatch indicates a quantity whose unit is not convertible to
	// the required unit.
	ErrUnitMismatch = errors.New("unit is not convertible")
)

// Lookup errors.
var (
	// ErrDatumNotFound indicates a missing key in a blob or datum mapping.
	ErrDatumNotFound = errors.New("datum not found")

	// ErrMetricNotFound indicates a metric name absent from a metric set.
	ErrMetricNotFound = errors.New("metric not found")

	// ErrMeasurementNotFound indicates a metric name with no measurement in
	// a measurement set.
	ErrMeasurementNotFound = errors.New("measurement not found")

	// ErrSpecNotFound indicates a specification name absent from a
	// specification set, or a lookup key that is not a specification name.
	ErrSpecNotFound = errors.New("specification not found")

	// ErrBlobNotFound indicates a blob link key absent from a measurement.
	ErrBlobNotFound = errors.New("blob not found")
)

// Construction and value errors.
var (
	// ErrNilDatum indicates an attempt to store a nil datum.
	ErrNilDatum = errors.New("datum must not be nil")

	// ErrNilMetric indicates an attempt to register a nil metric.
	ErrNilMetric = errors.New("metric must not be nil")

	// ErrNilBlob indicates an attempt to link a nil blob.
	ErrNilBlob = errors.New("blob must not be nil")

	// ErrMissingMetricSet indicates a measurement constructed without the
	// metric set it must resolve its definition from.
	ErrMissingMetricSet = errors.New("metric set is required")

	// ErrBadOperator indicates an unknown threshold comparison operator.
	ErrBadOperator = errors.New("invalid comparison operator")

	// ErrHashCollision indicates two distinct fully-qualified metric names
	// hashing to the same 64-bit ID.
	ErrHashCollision = errors.New("metric name hash collision")

	// ErrDanglingBlobRef indicates a measurement blob reference whose
	// identifier is absent from the supplied blob list.
	ErrDanglingBlobRef = errors.New("dangling blob reference")
)
