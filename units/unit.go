// Package units provides the unit vocabulary for metric definitions and
// measured quantities.
//
// The package answers two questions for the rest of the module: whether two
// units are convertible, and how to rescale a value between convertible
// units. It is a closed, table-driven vocabulary of the units that appear in
// metric definition files; it is not a general unit-arithmetic system.
package units

import (
	"fmt"
	"math"
	"strconv"

	"github.com/verakit/vera/errs"
)

// dimension is the physical dimension of a unit. Two units are convertible
// exactly when their dimensions are equal.
type dimension uint8

const (
	dimless dimension = iota
	dimAngle
	dimMagnitude
	dimTime
	dimLength
	dimFrequency
	dimFlux
	dimPixel
	dimCount
)

// Unit is a named measurement unit with a linear scale relative to the base
// unit of its dimension. The zero value is the dimensionless unit, rendered
// as an empty string.
type Unit struct {
	name  string
	dim   dimension
	scale float64
}

// Dimensionless is the unit of bare numbers. Metric definition files use an
// empty unit string for it.
var Dimensionless = Unit{name: "", dim: dimless, scale: 1}

var table = map[string]Unit{
	"":  Dimensionless,
	"%": {name: "%", dim: dimless, scale: 0.01},

	"rad":    {name: "rad", dim: dimAngle, scale: 1},
	"deg":    {name: "deg", dim: dimAngle, scale: math.Pi / 180},
	"arcmin": {name: "arcmin", dim: dimAngle, scale: math.Pi / 180 / 60},
	"arcsec": {name: "arcsec", dim: dimAngle, scale: math.Pi / 180 / 3600},
	"mas":    {name: "mas", dim: dimAngle, scale: math.Pi / 180 / 3600 / 1e3},
	"uas":    {name: "uas", dim: dimAngle, scale: math.Pi / 180 / 3600 / 1e6},

	"mag":  {name: "mag", dim: dimMagnitude, scale: 1},
	"mmag": {name: "mmag", dim: dimMagnitude, scale: 1e-3},
	"umag": {name: "umag", dim: dimMagnitude, scale: 1e-6},

	"s":   {name: "s", dim: dimTime, scale: 1},
	"ms":  {name: "ms", dim: dimTime, scale: 1e-3},
	"us":  {name: "us", dim: dimTime, scale: 1e-6},
	"ns":  {name: "ns", dim: dimTime, scale: 1e-9},
	"min": {name: "min", dim: dimTime, scale: 60},
	"h":   {name: "h", dim: dimTime, scale: 3600},
	"d":   {name: "d", dim: dimTime, scale: 86400},

	"m":  {name: "m", dim: dimLength, scale: 1},
	"km": {name: "km", dim: dimLength, scale: 1e3},
	"cm": {name: "cm", dim: dimLength, scale: 1e-2},
	"mm": {name: "mm", dim: dimLength, scale: 1e-3},
	"um": {name: "um", dim: dimLength, scale: 1e-6},
	"nm": {name: "nm", dim: dimLength, scale: 1e-9},

	"Hz":  {name: "Hz", dim: dimFrequency, scale: 1},
	"kHz": {name: "kHz", dim: dimFrequency, scale: 1e3},
	"MHz": {name: "MHz", dim: dimFrequency, scale: 1e6},
	"GHz": {name: "GHz", dim: dimFrequency, scale: 1e9},

	"Jy":  {name: "Jy", dim: dimFlux, scale: 1},
	"mJy": {name: "mJy", dim: dimFlux, scale: 1e-3},
	"uJy": {name: "uJy", dim: dimFlux, scale: 1e-6},

	"pix": {name: "pix", dim: dimPixel, scale: 1},

	"ct":       {name: "ct", dim: dimCount, scale: 1},
	"electron": {name: "electron", dim: dimCount, scale: 1},
}

// Parse resolves a unit string from the vocabulary. The empty string parses
// to Dimensionless. Unknown strings return ErrUnitParse.
func Parse(s string) (Unit, error) {
	u, ok := table[s]
	if !ok {
		return Unit{}, fmt.Errorf("%w: %q", errs.ErrUnitParse, s)
	}

	return u, nil
}

// MustParse is Parse for unit strings known at compile time; it panics on
// unknown input.
func MustParse(s string) Unit {
	u, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return u
}

// String returns the unit string, empty for the dimensionless unit.
func (u Unit) String() string {
	return u.name
}

// IsDimensionless reports whether the unit carries no physical dimension.
// The percent unit is dimensionless.
func (u Unit) IsDimensionless() bool {
	return u.dim == dimless
}

// ConvertibleTo reports whether values in this unit can be rescaled to the
// other unit. Convertibility is symmetric.
func (u Unit) ConvertibleTo(other Unit) bool {
	return u.dim == other.dim
}

// factor returns the multiplier that converts a value in u to a value in
// other. Both units must share a dimension.
func (u Unit) factor(other Unit) float64 {
	return u.scale / other.scale
}

// Quantity is a value tagged with a Unit.
type Quantity struct {
	Value float64
	Unit  Unit
}

// New builds a Quantity from a value and unit.
func New(value float64, unit Unit) Quantity {
	return Quantity{Value: value, Unit: unit}
}

// ConvertTo rescales the quantity into the target unit. It returns
// ErrUnitMismatch when the units are not convertible.
func (q Quantity) ConvertTo(unit Unit) (Quantity, error) {
	if !q.Unit.ConvertibleTo(unit) {
		return Quantity{}, fmt.Errorf("%w: %q to %q", errs.ErrUnitMismatch, q.Unit, unit)
	}

	return Quantity{Value: q.Value * q.Unit.factor(unit), Unit: unit}, nil
}

// String renders the quantity as "value unit", or just the value for
// dimensionless quantities.
func (q Quantity) String() string {
	v := strconv.FormatFloat(q.Value, 'g', -1, 64)
	if q.Unit.name == "" {
		return v
	}

	return v + " " + q.Unit.name
}
