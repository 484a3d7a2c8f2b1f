// Package spec provides pass/fail threshold specifications for metrics.
//
// A Threshold binds a spec-kind name to a comparison operator and a
// threshold quantity. Checking a measured quantity against a threshold
// converts the quantity into the threshold's unit first, so a threshold in
// mmag accepts values measured in mag.
package spec

import (
	"encoding/json"
	"fmt"

	"github.com/verakit/vera/errs"
	"github.com/verakit/vera/naming"
	"github.com/verakit/vera/units"
)

// Operator is a threshold comparison operator.
type Operator string

// Supported comparison operators. The measured value sits on the left of
// the comparison, the threshold on the right.
const (
	OpLess         Operator = "<"
	OpLessEqual    Operator = "<="
	OpGreater      Operator = ">"
	OpGreaterEqual Operator = ">="
	OpEqual        Operator = "=="
	OpNotEqual     Operator = "!="
)

// Valid reports whether op is one of the supported operators.
func (op Operator) Valid() bool {
	switch op {
	case OpLess, OpLessEqual, OpGreater, OpGreaterEqual, OpEqual, OpNotEqual:
		return true
	}

	return false
}

// compare applies the operator with the measured value on the left.
func (op Operator) compare(measured, threshold float64) bool {
	switch op {
	case OpLess:
		return measured < threshold
	case OpLessEqual:
		return measured <= threshold
	case OpGreater:
		return measured > threshold
	case OpGreaterEqual:
		return measured >= threshold
	case OpEqual:
		return measured == threshold
	case OpNotEqual:
		return measured != threshold
	}

	return false
}

// Threshold is a named pass/fail criterion over a measured quantity.
type Threshold struct {
	name      naming.Name
	operator  Operator
	threshold units.Quantity
}

// NewThreshold builds a threshold specification. The name must parse as a
// spec-kind name, e.g. "validate_drp.PA1.design".
func NewThreshold(name string, op Operator, threshold units.Quantity) (*Threshold, error) {
	n, err := naming.New(naming.Spec(name))
	if err != nil {
		return nil, err
	}
	if !n.HasSpec() {
		return nil, fmt.Errorf("%w: %q has no spec component", errs.ErrWrongNameKind, name)
	}
	if !op.Valid() {
		return nil, fmt.Errorf("%w: %q", errs.ErrBadOperator, op)
	}

	return &Threshold{name: n, operator: op, threshold: threshold}, nil
}

// Name returns the specification's name.
func (t *Threshold) Name() naming.Name { return t.name }

// Operator returns the comparison operator.
func (t *Threshold) Operator() Operator { return t.operator }

// Threshold returns the threshold quantity.
func (t *Threshold) Threshold() units.Quantity { return t.threshold }

// Check reports whether a measured quantity satisfies the threshold. The
// quantity is converted into the threshold's unit before comparing; a
// quantity in an incompatible unit is an error.
func (t *Threshold) Check(q units.Quantity) (bool, error) {
	converted, err := q.ConvertTo(t.threshold.Unit)
	if err != nil {
		return false, fmt.Errorf("spec %s: %w", t.name, err)
	}

	return t.operator.compare(converted.Value, t.threshold.Value), nil
}

// String renders the threshold as e.g. "validate_drp.PA1.design: x <= 10 mmag".
func (t *Threshold) String() string {
	return fmt.Sprintf("%s: x %s %s", t.name, t.operator, t.threshold)
}

// thresholdDoc is the JSON wire form.
type thresholdDoc struct {
	Name     string   `json:"name"`
	Operator Operator `json:"operator"`
	Value    float64  `json:"value"`
	Unit     string   `json:"unit"`
}

// MarshalJSON implements json.Marshaler.
func (t *Threshold) MarshalJSON() ([]byte, error) {
	return json.Marshal(thresholdDoc{
		Name:     t.name.String(),
		Operator: t.operator,
		Value:    t.threshold.Value,
		Unit:     t.threshold.Unit.String(),
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Threshold) UnmarshalJSON(data []byte) error {
	var doc thresholdDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	unit, err := units.Parse(doc.Unit)
	if err != nil {
		return fmt.Errorf("spec %q: %w", doc.Name, err)
	}
	rebuilt, err := NewThreshold(doc.Name, doc.Operator, units.New(doc.Value, unit))
	if err != nil {
		return err
	}
	*t = *rebuilt

	return nil
}
