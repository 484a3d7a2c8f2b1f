// Package naming implements the hierarchical dotted names that identify
// packages, metrics, and specifications.
//
// A name carries up to three components: package, metric, and specification.
// Which components are present determines the kind of the name:
//
//   - "validate_drp" is a package name
//   - "PA1" or "validate_drp.PA1" is a metric name
//   - "design_gri", "PA1.design_gri", or "validate_drp.PA1.design_gri" is a
//     specification name
//
// Names are built with New from field arguments. Each field accepts either a
// raw dotted string, parsed positionally by dot count, or an existing Name
// whose components are merged in. Supplying conflicting values for the same
// component fails construction; so does a package-qualified specification
// with no metric to anchor it.
//
// Name is a comparable value type: it can key maps directly, and == is
// structural equality over the component triple.
package naming

import (
	"fmt"
	"strings"

	"github.com/verakit/vera/errs"
)

// Name identifies a package, metric, or specification. The zero value is the
// empty name. Absent components are empty strings.
type Name struct {
	pkg    string
	metric string
	spec   string
}

// Field supplies components for one slot of New. Fields are created with
// Package, Metric, Spec, or their *Of variants.
type Field func() (Name, error)

// splitName splits a dotted name string, rejecting empty segments such as
// "a..b" or a leading/trailing dot.
func splitName(slot, s string) ([]string, error) {
	parts := strings.Split(s, ".")
	for _, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("%w: empty segment in %s name %q", errs.ErrNameParse, slot, s)
		}
	}

	return parts, nil
}

// Package supplies the package slot from a dotted string.
//
// One part names a package; two parts name package.metric; three parts name
// package.metric.spec. The empty string supplies nothing.
func Package(s string) Field {
	return func() (Name, error) {
		if s == "" {
			return Name{}, nil
		}
		parts, err := splitName("package", s)
		if err != nil {
			return Name{}, err
		}
		switch len(parts) {
		case 1:
			return Name{pkg: parts[0]}, nil
		case 2:
			return Name{pkg: parts[0], metric: parts[1]}, nil
		case 3:
			return Name{pkg: parts[0], metric: parts[1], spec: parts[2]}, nil
		default:
			return Name{}, fmt.Errorf("%w: package name %q has %d parts", errs.ErrNameParse, s, len(parts))
		}
	}
}

// Metric supplies the metric slot from a dotted string.
//
// One part names a bare metric; two parts name package.metric. The empty
// string supplies nothing.
func Metric(s string) Field {
	return func() (Name, error) {
		if s == "" {
			return Name{}, nil
		}
		parts, err := splitName("metric", s)
		if err != nil {
			return Name{}, err
		}
		switch len(parts) {
		case 1:
			return Name{metric: parts[0]}, nil
		case 2:
			return Name{pkg: parts[0], metric: parts[1]}, nil
		default:
			return Name{}, fmt.Errorf("%w: metric name %q has %d parts", errs.ErrNameParse, s, len(parts))
		}
	}
}

// Spec supplies the specification slot from a dotted string.
//
// One part names a bare specification; two parts name metric.spec; three
// parts name package.metric.spec. The empty string supplies nothing.
func Spec(s string) Field {
	return func() (Name, error) {
		if s == "" {
			return Name{}, nil
		}
		parts, err := splitName("spec", s)
		if err != nil {
			return Name{}, err
		}
		switch len(parts) {
		case 1:
			return Name{spec: parts[0]}, nil
		case 2:
			return Name{metric: parts[0], spec: parts[1]}, nil
		case 3:
			return Name{pkg: parts[0], metric: parts[1], spec: parts[2]}, nil
		default:
			return Name{}, fmt.Errorf("%w: spec name %q has %d parts", errs.ErrNameParse, s, len(parts))
		}
	}
}

// PackageOf supplies the package slot from an existing Name, which must
// carry a package component.
func PackageOf(n Name) Field {
	return func() (Name, error) {
		if !n.HasPackage() {
			return Name{}, fmt.Errorf("%w: %s carries no package", errs.ErrWrongNameKind, n)
		}

		return Name{pkg: n.pkg}, nil
	}
}

// MetricOf supplies the metric slot from an existing Name, which must carry
// a metric component. Its package component, if any, is merged in as well.
func MetricOf(n Name) Field {
	return func() (Name, error) {
		if !n.HasMetric() {
			return Name{}, fmt.Errorf("%w: %s carries no metric", errs.ErrWrongNameKind, n)
		}

		return Name{pkg: n.pkg, metric: n.metric}, nil
	}
}

// SpecOf supplies the specification slot from an existing Name, which must
// carry a specification component. Its package and metric components, if
// any, are merged in as well.
func SpecOf(n Name) Field {
	return func() (Name, error) {
		if !n.HasSpec() {
			return Name{}, fmt.Errorf("%w: %s carries no specification", errs.ErrWrongNameKind, n)
		}

		return Name{pkg: n.pkg, metric: n.metric, spec: n.spec}, nil
	}
}

// mergeComponent reconciles one component supplied by two sources. A
// component may be supplied more than once only with the same value.
func mergeComponent(what, a, b string) (string, error) {
	switch {
	case a == "":
		return b, nil
	case b == "" || a == b:
		return a, nil
	default:
		return "", fmt.Errorf("%w: %s %q vs %q", errs.ErrNameConflict, what, a, b)
	}
}

// New builds a Name from field arguments, merging their components with
// consistency checking.
//
// Errors:
//   - ErrNameParse: a dotted string does not fit its slot
//   - ErrWrongNameKind: a Name argument lacks its slot's component
//   - ErrNameConflict: two fields supply different values for one component
//   - ErrIncompleteName: package and spec present without a metric
func New(fields ...Field) (Name, error) {
	var merged Name
	for _, f := range fields {
		part, err := f()
		if err != nil {
			return Name{}, err
		}
		if merged.pkg, err = mergeComponent("package", merged.pkg, part.pkg); err != nil {
			return Name{}, err
		}
		if merged.metric, err = mergeComponent("metric", merged.metric, part.metric); err != nil {
			return Name{}, err
		}
		if merged.spec, err = mergeComponent("spec", merged.spec, part.spec); err != nil {
			return Name{}, err
		}
	}

	// A package-qualified specification must be anchored by a metric.
	if merged.pkg != "" && merged.spec != "" && merged.metric == "" {
		return Name{}, fmt.Errorf("%w: package %q with spec %q", errs.ErrIncompleteName, merged.pkg, merged.spec)
	}

	return merged, nil
}

// MustNew is New for names known at compile time; it panics on error.
func MustNew(fields ...Field) Name {
	n, err := New(fields...)
	if err != nil {
		panic(err)
	}

	return n
}

// Package returns the package component, empty if absent.
func (n Name) Package() string { return n.pkg }

// Metric returns the metric component, empty if absent.
func (n Name) Metric() string { return n.metric }

// Spec returns the specification component, empty if absent.
func (n Name) Spec() string { return n.spec }

// IsZero reports whether the name has no components at all.
func (n Name) IsZero() bool {
	return n == Name{}
}

// HasPackage reports whether the name carries a package component.
func (n Name) HasPackage() bool { return n.pkg != "" }

// HasMetric reports whether the name carries a metric component, either
// relative or fully qualified.
func (n Name) HasMetric() bool { return n.metric != "" }

// HasSpec reports whether the name carries a specification component,
// either relative or fully qualified.
func (n Name) HasSpec() bool { return n.spec != "" }

// HasRelative reports whether a metric-relative specification name can be
// formed, i.e. both metric and spec components are present.
func (n Name) HasRelative() bool {
	return n.IsSpec() && n.HasMetric()
}

// IsPackage reports whether the name is a package name: a package component
// with neither metric nor specification.
func (n Name) IsPackage() bool {
	return n.HasPackage() && !n.IsMetric() && !n.IsSpec()
}

// IsMetric reports whether the name is a metric name, relative or fully
// qualified.
func (n Name) IsMetric() bool {
	return n.HasMetric() && !n.HasSpec()
}

// IsSpec reports whether the name is a specification name, bare, relative,
// or fully qualified.
func (n Name) IsSpec() bool {
	return n.HasSpec()
}

// IsFullyQualified reports whether the name carries every component its
// kind requires: a package alone, a metric with its package, or a
// specification with both package and metric.
func (n Name) IsFullyQualified() bool {
	switch {
	case n.IsPackage():
		// Package names are fully qualified by definition.
		return true
	case n.IsMetric():
		return n.HasPackage()
	case n.IsSpec():
		return n.HasPackage() && n.HasMetric()
	default:
		return false
	}
}

// IsRelative reports whether the name is a specification qualified by a
// metric but not a package. Package and metric names are never relative.
func (n Name) IsRelative() bool {
	return n.IsSpec() && n.HasMetric() && !n.HasPackage()
}

// Contains reports whether other falls under this name. Only package and
// metric names contain anything: a package contains the metrics and
// specifications of that package, and a metric contains its specifications.
// Specification names contain nothing.
func (n Name) Contains(other Name) bool {
	switch {
	case n.IsPackage():
		return !other.IsPackage() && other.pkg == n.pkg
	case n.IsMetric():
		if other.IsMetric() || other.IsPackage() {
			return false
		}
		if n.HasPackage() && other.HasPackage() && n.pkg != other.pkg {
			return false
		}

		return other.metric == n.metric
	default:
		return false
	}
}

// String renders the minimal unambiguous form for the name's kind and
// qualification: "pkg", "metric" or "pkg.metric", and "spec",
// "metric.spec", or "pkg.metric.spec".
func (n Name) String() string {
	switch {
	case n.IsPackage():
		return n.pkg
	case n.IsMetric() && !n.IsFullyQualified():
		return n.metric
	case n.IsMetric():
		return n.pkg + "." + n.metric
	case n.IsSpec() && !n.IsFullyQualified() && !n.IsRelative():
		return n.spec
	case n.IsSpec() && !n.IsFullyQualified():
		return n.metric + "." + n.spec
	case n.IsSpec():
		return n.pkg + "." + n.metric + "." + n.spec
	default:
		return ""
	}
}

// FQN returns the fully-qualified name string. It returns
// ErrNotFullyQualified when components required by the name's kind are
// missing.
func (n Name) FQN() (string, error) {
	if !n.IsFullyQualified() {
		return "", fmt.Errorf("%w: %s", errs.ErrNotFullyQualified, n)
	}

	return n.String(), nil
}

// RelativeName returns the metric-relative specification string
// "metric.spec". It returns ErrNotRelative when the name is not a
// specification qualified by a metric.
func (n Name) RelativeName() (string, error) {
	if !n.HasRelative() {
		return "", fmt.Errorf("%w: %s", errs.ErrNotRelative, n)
	}

	return n.metric + "." + n.spec, nil
}
