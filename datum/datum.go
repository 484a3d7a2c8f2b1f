// Package datum provides the labeled, unit-tagged values held by blobs and
// measurements.
//
// A Datum wraps one of three value kinds: a Quantity (value plus unit), a
// string, or a bool, together with an optional plot label and description.
// Datums are immutable once constructed and round-trip losslessly through
// JSON, including the unit string.
package datum

import (
	"encoding/json"
	"fmt"

	"github.com/verakit/vera/units"
)

// Kind discriminates the value held by a Datum.
type Kind uint8

const (
	// KindQuantity is a numeric value with a unit.
	KindQuantity Kind = iota + 1

	// KindString is a bare string value.
	KindString

	// KindBool is a boolean value.
	KindBool
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindQuantity:
		return "quantity"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Datum is a single labeled value. The zero value is not a valid Datum; use
// one of the constructors.
type Datum struct {
	kind        Kind
	quantity    units.Quantity
	str         string
	boolean     bool
	label       string
	description string
}

// NewQuantity builds a quantity-valued Datum.
func NewQuantity(q units.Quantity, label, description string) *Datum {
	return &Datum{kind: KindQuantity, quantity: q, label: label, description: description}
}

// NewString builds a string-valued Datum.
func NewString(value, label, description string) *Datum {
	return &Datum{kind: KindString, str: value, label: label, description: description}
}

// NewBool builds a boolean-valued Datum.
func NewBool(value bool, label, description string) *Datum {
	return &Datum{kind: KindBool, boolean: value, label: label, description: description}
}

// Kind returns the value kind.
func (d *Datum) Kind() Kind { return d.kind }

// Quantity returns the quantity value; ok is false for non-quantity datums.
func (d *Datum) Quantity() (units.Quantity, bool) {
	return d.quantity, d.kind == KindQuantity
}

// StringValue returns the string value; ok is false for non-string datums.
func (d *Datum) StringValue() (string, bool) {
	return d.str, d.kind == KindString
}

// Bool returns the boolean value; ok is false for non-bool datums.
func (d *Datum) Bool() (value, ok bool) {
	return d.boolean, d.kind == KindBool
}

// Unit returns the quantity's unit; the zero (dimensionless) unit for
// non-quantity datums.
func (d *Datum) Unit() units.Unit { return d.quantity.Unit }

// Label returns the plot label, possibly empty.
func (d *Datum) Label() string { return d.label }

// Description returns the extended description, possibly empty.
func (d *Datum) Description() string { return d.description }

// Equal reports whether two datums hold the same kind, value, unit, label,
// and description.
func (d *Datum) Equal(other *Datum) bool {
	if d == nil || other == nil {
		return d == other
	}

	return *d == *other
}

// datumDoc is the JSON wire form: {value, unit, label, description}. The
// unit field is emitted only for quantity datums, where it may be the empty
// string for dimensionless values.
type datumDoc struct {
	Value       json.RawMessage `json:"value"`
	Unit        *string         `json:"unit,omitempty"`
	Label       string          `json:"label,omitempty"`
	Description string          `json:"description,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (d *Datum) MarshalJSON() ([]byte, error) {
	doc := datumDoc{Label: d.label, Description: d.description}

	var (
		raw []byte
		err error
	)
	switch d.kind {
	case KindQuantity:
		raw, err = json.Marshal(d.quantity.Value)
		unit := d.quantity.Unit.String()
		doc.Unit = &unit
	case KindString:
		raw, err = json.Marshal(d.str)
	case KindBool:
		raw, err = json.Marshal(d.boolean)
	default:
		return nil, fmt.Errorf("cannot marshal datum of kind %d", d.kind)
	}
	if err != nil {
		return nil, err
	}
	doc.Value = raw

	return json.Marshal(doc)
}

// UnmarshalJSON implements json.Unmarshaler. The value's JSON type selects
// the kind: numbers become quantities (with the unit field, defaulting to
// dimensionless), strings become string datums, and booleans become bool
// datums.
func (d *Datum) UnmarshalJSON(data []byte) error {
	var doc datumDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	var value any
	if err := json.Unmarshal(doc.Value, &value); err != nil {
		return err
	}

	switch v := value.(type) {
	case float64:
		unitStr := ""
		if doc.Unit != nil {
			unitStr = *doc.Unit
		}
		unit, err := units.Parse(unitStr)
		if err != nil {
			return err
		}
		*d = Datum{kind: KindQuantity, quantity: units.New(v, unit)}
	case string:
		*d = Datum{kind: KindString, str: v}
	case bool:
		*d = Datum{kind: KindBool, boolean: v}
	default:
		return fmt.Errorf("cannot unmarshal datum value %s", doc.Value)
	}
	d.label = doc.Label
	d.description = doc.Description

	return nil
}
